// Package machine drives a CHIP-8 CPU and its builtin peripherals
// against wall-clock time.
package machine

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/clock"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/keypad"
)

// DefaultCycles is the number of instructions executed per timer frame.
const DefaultCycles = 10

// maxFrames bounds the work done by a single Update after a stall.
const maxFrames = 4

// Controller controls the execution of a CPU.
type Controller struct {
	cpu        *cpu.CPU
	clock      *clock.Device
	keypad     *keypad.Device
	cycles     int
	start      time.Time
	cycleCount uint64
	running    bool
}

// New creates a new controller. cycles is the number of instructions run
// per 60 Hz frame. holdFrames is passed on to the keypad.
func New(trace cpu.TraceFunc, cycles, holdFrames int) *Controller {
	if cycles < 1 {
		cycles = DefaultCycles
	}

	c := cpu.New(trace)
	ctl := &Controller{
		cpu:    c,
		clock:  clock.New(c),
		keypad: keypad.New(c, holdFrames),
		cycles: cycles,
	}

	c.Connect(ctl.clock)
	c.Connect(ctl.keypad)
	return ctl
}

// CPU returns the controlled cpu.
func (c *Controller) CPU() *cpu.CPU {
	return c.cpu
}

// Keypad returns the keypad peripheral.
func (c *Controller) Keypad() *keypad.Device {
	return c.keypad
}

// Connect connects an additional peripheral.
func (c *Controller) Connect(dev devices.Device) bool {
	return c.cpu.Connect(dev)
}

// Cycles returns the number of instructions run per frame.
func (c *Controller) Cycles() int {
	return c.cycles
}

// Running returns true if the CPU is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the current clock frequency in herz.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Step performs a single exection step. Execution is stopped if
// it fails.
func (c *Controller) Step() error {
	c.cycleCount++

	err := c.cpu.Step()
	if err != nil {
		c.setRunning(false)
		if err != io.EOF {
			return err
		}
	}

	return nil
}

// Update advances the timers by the frames elapsed since the last call
// and runs the instructions due for them. Returns the number of frames
// which elapsed. Nothing happens while the cpu is stopped.
func (c *Controller) Update() (int, error) {
	if !c.running {
		return 0, nil
	}

	frames := c.clock.Update()
	if frames > maxFrames {
		frames = maxFrames
	}

	return frames, c.RunFrames(frames)
}

// RunFrames runs the instructions for the given number of frames
// and ages keys held by the keypad.
func (c *Controller) RunFrames(frames int) error {
	for f := 0; f < frames; f++ {
		for n := 0; n < c.cycles && c.running; n++ {
			if err := c.Step(); err != nil {
				return err
			}
		}
		c.keypad.Update()
	}
	return nil
}

// Load loads a program image from r and restarts the cpu.
// The cpu is left stopped. If the image can not be read, the
// machine is left as it was.
func (c *Controller) Load(r io.Reader) error {
	p, err := cpu.ReadProgram(r)
	if err != nil {
		return errors.Wrapf(err, "failed to load program")
	}

	c.Stop()

	if err := c.cpu.Shutdown(); err != nil {
		return err
	}

	if err := c.cpu.Load(p); err != nil {
		return errors.Wrapf(err, "failed to load program")
	}

	return c.cpu.Startup()
}

// Startup initializes the cpu and connected peripherals.
func (c *Controller) Startup() error {
	return c.cpu.Startup()
}

// Shutdown disposes of CPU and peripheral resources.
func (c *Controller) Shutdown() error {
	c.Stop()
	return c.cpu.Shutdown()
}

// setRunning determines if the CPU is running or is paused.
func (c *Controller) setRunning(v bool) {
	if v && !c.running {
		// Timers do not count down while paused.
		c.clock.Startup()
	}

	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
