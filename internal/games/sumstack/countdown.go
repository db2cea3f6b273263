package sumstack

// Countdown turns fixed-rate ticks into whole seconds for the Timed mode
// clock. Stopping it throws away any partial second, so a countdown that is
// started again always waits a full second before firing.
type Countdown struct {
	ticksPerSecond int
	ticks          int
	running        bool
}

// NewCountdown creates a stopped countdown for the given tick rate.
func NewCountdown(tickRate int) *Countdown {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Countdown{ticksPerSecond: tickRate}
}

// Start begins counting. Starting a running countdown keeps its progress.
func (c *Countdown) Start() {
	if c.running {
		return
	}
	c.running = true
	c.ticks = 0
}

// Stop cancels the countdown and discards partial progress.
func (c *Countdown) Stop() {
	c.running = false
	c.ticks = 0
}

// Restart discards partial progress and keeps running.
func (c *Countdown) Restart() {
	c.Stop()
	c.Start()
}

// Running reports whether the countdown is active.
func (c *Countdown) Running() bool {
	return c.running
}

// Tick advances one tick and reports whether a full second has elapsed.
// A stopped countdown never fires.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.ticks++
	if c.ticks < c.ticksPerSecond {
		return false
	}
	c.ticks = 0
	return true
}
