// Package clock implements the 60 Hz countdown of the delay and sound timers.
package clock

import (
	"time"

	"github.com/hexaflex/chip8/devices"
)

// Rate is the timer frequency in herz.
const Rate = 60

// maxTicks bounds the catch-up after a long pause. An 8-bit timer
// is drained after this many ticks.
const maxTicks = 0xff

// Timers is the part of the machine the clock counts down.
type Timers interface {
	DecrementTimers()
}

// Device paces the timers against wall-clock time. It has no goroutine
// of its own: the driver loop calls Update, so the timers are only ever
// touched from the thread executing instructions.
type Device struct {
	timers Timers           // Timers to count down.
	now    func() time.Time // Time source.
	period time.Duration    // Time between ticks.
	last   time.Time        // Time of the last accounted tick.
	ticks  uint64           // Ticks since startup.
}

var _ devices.Device = &Device{}

// New creates a clock driving the given timers.
func New(timers Timers) *Device {
	return &Device{
		timers: timers,
		now:    time.Now,
		period: time.Second / Rate,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0003)
}

// Startup starts counting from the current time.
func (d *Device) Startup() error {
	d.last = d.now()
	d.ticks = 0
	return nil
}

// Shutdown is a no-op.
func (d *Device) Shutdown() error {
	return nil
}

// Update decrements the timers once for every period elapsed since the
// last accounted tick and returns the number of elapsed periods.
// Drivers use the result to pace instruction execution as well.
func (d *Device) Update() int {
	now := d.now()
	n := int(now.Sub(d.last) / d.period)
	if n <= 0 {
		return 0
	}

	d.last = d.last.Add(time.Duration(n) * d.period)
	d.ticks += uint64(n)

	for i := 0; i < n && i < maxTicks; i++ {
		d.timers.DecrementTimers()
	}

	return n
}

// Ticks returns the number of ticks since startup.
func (d *Device) Ticks() uint64 {
	return d.ticks
}
