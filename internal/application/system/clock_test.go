package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_AddEventFiresRepeatPlusOne(t *testing.T) {
	c := NewClock()
	calls := 0
	c.AddEvent(1000, 2, func() { calls++ })

	for i := 0; i < 10; i++ {
		c.Update(1000)
	}

	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, 10000.0, c.Now())
}

func TestClock_DelayedCall(t *testing.T) {
	c := NewClock()
	calls := 0
	c.DelayedCall(500, func() { calls++ })

	c.Update(499)
	assert.Equal(t, 0, calls)

	c.Update(1)
	assert.Equal(t, 1, calls)

	c.Update(5000)
	assert.Equal(t, 1, calls)
}

func TestClock_SmallSteps(t *testing.T) {
	c := NewClock()
	calls := 0
	c.AddEvent(1000, 14, func() { calls++ })

	// a little over 15 seconds of 60fps frames
	for i := 0; i <= 15*60; i++ {
		c.Update(1000.0 / 60.0)
	}

	assert.Equal(t, 15, calls)
}

func TestClock_LargeStepFiresEveryDueCall(t *testing.T) {
	c := NewClock()
	calls := 0
	c.AddEvent(100, 4, func() { calls++ })

	c.Update(350)
	assert.Equal(t, 3, calls)

	c.Update(1000)
	assert.Equal(t, 5, calls)
}

func TestClock_RepeatForever(t *testing.T) {
	c := NewClock()
	calls := 0
	e := c.AddEvent(10, -1, func() { calls++ })

	for i := 0; i < 100; i++ {
		c.Update(10)
	}
	assert.Equal(t, 100, calls)

	e.Remove()
	c.Update(10)
	assert.Equal(t, 100, calls)
	assert.True(t, e.Done())
}

func TestClock_OrderWithinUpdate(t *testing.T) {
	c := NewClock()
	var order []string
	c.AddEvent(1000, 0, func() { order = append(order, "countdown") })
	c.DelayedCall(1000, func() { order = append(order, "expire") })

	c.Update(1000)

	assert.Equal(t, []string{"countdown", "expire"}, order)
}

func TestClock_EventAddedByCallback(t *testing.T) {
	c := NewClock()
	calls := 0
	c.DelayedCall(100, func() {
		c.DelayedCall(100, func() { calls++ })
	})

	c.Update(100)
	assert.Equal(t, 0, calls, "new events start counting on the next update")
	assert.Equal(t, 1, c.Pending())

	c.Update(100)
	assert.Equal(t, 1, calls)
}

func TestClock_Reset(t *testing.T) {
	c := NewClock()
	calls := 0
	e := c.DelayedCall(100, func() { calls++ })
	c.Update(50)

	c.Reset()
	c.Update(100)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 100.0, c.Now())
	assert.True(t, e.Done())
}

func TestClock_FrameSteps(t *testing.T) {
	const frameMs = 1000.0 / 60.0
	c := NewClock()
	c.Update(frameMs * 7)

	var frames []int
	frame := 0
	c.AddEvent(1000, 2, func() { frames = append(frames, frame) })

	for frame = 1; frame <= 200; frame++ {
		c.Update(frameMs)
	}

	assert.Equal(t, []int{60, 120, 180}, frames)
}

func TestClock_SharedStartStaysInStep(t *testing.T) {
	c := NewClock()
	c.Update(1000.0 / 60.0 * 3)

	var order []string
	c.AddEvent(1000, 4, func() { order = append(order, "tick") })
	c.DelayedCall(5000, func() { order = append(order, "expire") })

	for i := 0; i < 5*60; i++ {
		c.Update(1000.0 / 60.0)
	}

	assert.Equal(t, []string{"tick", "tick", "tick", "tick", "tick", "expire"}, order)
}
