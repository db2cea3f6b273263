package sumstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountdownFiresEverySecond(t *testing.T) {
	c := NewCountdown(3)
	c.Start()

	var fired []bool
	for i := 0; i < 6; i++ {
		fired = append(fired, c.Tick())
	}
	assert.Equal(t, []bool{false, false, true, false, false, true}, fired)
}

func TestCountdownStoppedNeverFires(t *testing.T) {
	c := NewCountdown(1)
	assert.False(t, c.Running())
	assert.False(t, c.Tick())

	c.Start()
	c.Stop()
	assert.False(t, c.Tick())
}

func TestCountdownStopDiscardsProgress(t *testing.T) {
	c := NewCountdown(4)
	c.Start()
	c.Tick()
	c.Tick()
	c.Tick()

	c.Stop()
	c.Start()
	assert.False(t, c.Tick())
	assert.False(t, c.Tick())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
}

func TestCountdownStartKeepsProgress(t *testing.T) {
	c := NewCountdown(2)
	c.Start()
	c.Tick()
	c.Start()
	assert.True(t, c.Tick())
}

func TestCountdownRestart(t *testing.T) {
	c := NewCountdown(2)
	c.Start()
	c.Tick()
	c.Restart()
	assert.True(t, c.Running())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
}
