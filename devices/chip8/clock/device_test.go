package clock

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

type testTimers struct {
	calls int
}

func (t *testTimers) DecrementTimers() { t.calls++ }

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDevice(t *testing.T) (*Device, *testTimers, *testClock) {
	timers := &testTimers{}
	clk := &testClock{t: time.Unix(1000, 0)}
	d := New(timers)
	d.now = clk.now
	assert.NoError(t, d.Startup())
	return d, timers, clk
}

func TestUpdateNoTimeElapsed(t *testing.T) {
	d, timers, _ := newTestDevice(t)

	assert.Equal(t, 0, d.Update())
	assert.Equal(t, 0, timers.calls)
}

func TestUpdateCountsPeriods(t *testing.T) {
	d, timers, clk := newTestDevice(t)

	clk.advance(time.Second)
	assert.Equal(t, Rate, d.Update())
	assert.Equal(t, Rate, timers.calls)
	assert.Equal(t, uint64(Rate), d.Ticks())
}

func TestUpdateKeepsRemainder(t *testing.T) {
	d, timers, clk := newTestDevice(t)
	period := time.Second / Rate

	clk.advance(period + period/2)
	assert.Equal(t, 1, d.Update())

	clk.advance(period / 2)
	assert.Equal(t, 1, d.Update())
	assert.Equal(t, 2, timers.calls)
}

func TestUpdateBoundsCatchUp(t *testing.T) {
	d, timers, clk := newTestDevice(t)

	clk.advance(time.Hour)
	assert.Equal(t, int(time.Hour/(time.Second/Rate)), d.Update())
	assert.Equal(t, maxTicks, timers.calls)
}
