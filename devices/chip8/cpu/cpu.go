// Package cpu implements the CHIP-8 interpreter core: the address space,
// the machine state and the fetch-decode-execute cycle.
package cpu

import (
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/display"
)

const (
	StackDepth  = 16 // Call stack slots. Slot 0 is never used.
	KeyCount    = 16 // Number of keys on the keypad.
	SpriteWidth = 8  // Width of a sprite row in pixels.
)

// TraceFunc represents a callback handler for diagnostic events.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	devices     devices.Map         // Connected peripherals.
	trace       TraceFunc           // Handler for diagnostic events.
	memory      Memory              // System memory.
	display     display.Framebuffer // Monochrome display.
	instr       Instruction         // Decoded instruction data.
	rng         *rand.Rand          // Random number generator.
	initialized uint32              // Is the machine started?

	pc      uint16                   // Program counter.
	i       uint16                   // Index register.
	v       [arch.RegisterCount]byte // General purpose registers.
	stack   [StackDepth]uint16       // Return addresses.
	sp      int                      // Stack pointer.
	dt      byte                     // Delay timer.
	st      byte                     // Sound timer.
	keys    [KeyCount]bool           // Keypad state.
	waiting bool                     // Blocked in LD Vx, K?
}

// New creates a new CPU. Optionally with the given diagnostic trace handler.
func New(trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace: trace,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	c.Reset()
	return c
}

// ID returns the cpu's device ID.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0001)
}

// Memory returns the cpu's address space.
func (c *CPU) Memory() *Memory {
	return &c.memory
}

// Display returns the framebuffer.
func (c *CPU) Display() *display.Framebuffer {
	return &c.display
}

// Connect connects the given peripheral to the system.
// Returns false if the given device type is already connected.
func (c *CPU) Connect(dev devices.Device) bool {
	return c.devices.Connect(dev)
}

// Seed reseeds the random number generator.
func (c *CPU) Seed(v int64) {
	c.rng = rand.New(rand.NewSource(v))
}

// Load loads the given program image. See Memory.Load.
func (c *CPU) Load(p []byte) error {
	return c.memory.Load(p)
}

// Startup resets the machine state and initializes connected peripherals.
// Returns an error if the machine is already running. Use Shutdown() first.
func (c *CPU) Startup() error {
	if !atomic.CompareAndSwapUint32(&c.initialized, 0, 1) {
		return errors.New(c.ID().String() + " is already running")
	}

	log.Println(c.ID(), "startup")
	c.Reset()
	return c.devices.Startup()
}

// Shutdown cleans up internal resources.
func (c *CPU) Shutdown() error {
	if !atomic.CompareAndSwapUint32(&c.initialized, 1, 0) {
		return nil
	}

	log.Println(c.ID(), "shutdown")
	return c.devices.Shutdown()
}

// Reset zeroes registers, stack, timers and keys, clears the display
// and points the program counter at the program region.
// The loaded program is kept.
func (c *CPU) Reset() {
	c.memory.Reset()
	c.display.Clear()

	c.pc = ProgramStart
	c.i = 0
	c.v = [arch.RegisterCount]byte{}
	c.stack = [StackDepth]uint16{}
	c.sp = 0
	c.dt = 0
	c.st = 0
	c.keys = [KeyCount]bool{}
	c.waiting = false
}

// Step performs a single execution step.
// Returns io.EOF if the machine has not been started.
// Any other error is fatal and of type *Error.
func (c *CPU) Step() error {
	if atomic.LoadUint32(&c.initialized) == 0 {
		return io.EOF
	}

	instr := &c.instr
	if err := instr.Decode(&c.memory, c.pc); err != nil {
		return NewError(instr, err)
	}

	c.trace(instr)

	x, y := instr.X, instr.Y
	vx, vy := c.v[x], c.v[y]
	next := c.pc + 2

	switch instr.Code {
	case arch.CLS:
		c.display.Clear()
	case arch.RET:
		addr, err := c.pop()
		if err != nil {
			return NewError(instr, err)
		}
		next = addr + 2

	case arch.JP:
		next = instr.NNN
	case arch.JPV0:
		next = instr.NNN + uint16(c.v[0])
	case arch.CALL:
		if err := c.push(c.pc); err != nil {
			return NewError(instr, err)
		}
		next = instr.NNN

	case arch.SEB:
		if vx == instr.KK {
			next += 2
		}
	case arch.SNEB:
		if vx != instr.KK {
			next += 2
		}
	case arch.SE:
		if vx == vy {
			next += 2
		}
	case arch.SNE:
		if vx != vy {
			next += 2
		}
	case arch.SKP:
		if c.Key(int(vx)) {
			next += 2
		}
	case arch.SKNP:
		if !c.Key(int(vx)) {
			next += 2
		}

	case arch.LDB:
		c.v[x] = instr.KK
	case arch.ADDB:
		c.v[x] = vx + instr.KK
	case arch.LD:
		c.v[x] = vy
	case arch.OR:
		c.v[x] = vx | vy
	case arch.AND:
		c.v[x] = vx & vy
	case arch.XOR:
		c.v[x] = vx ^ vy

	// The flag register is written last so it always holds the flag,
	// even when it is also the destination.
	case arch.ADD:
		sum := uint16(vx) + uint16(vy)
		c.v[x] = byte(sum)
		c.v[arch.VF] = flag(sum > 0xff)
	case arch.SUB:
		c.v[x] = vx - vy
		c.v[arch.VF] = flag(vx >= vy)
	case arch.SUBN:
		c.v[x] = vy - vx
		c.v[arch.VF] = flag(vy >= vx)
	case arch.SHR:
		c.v[x] = vx >> 1
		c.v[arch.VF] = vx & 1
	case arch.SHL:
		c.v[x] = vx << 1
		c.v[arch.VF] = vx >> 7

	case arch.RND:
		c.v[x] = byte(c.rng.Intn(256)) & instr.KK
	case arch.DRW:
		if err := c.draw(vx, vy, instr.N); err != nil {
			return NewError(instr, err)
		}

	case arch.LDI:
		c.i = instr.NNN
	case arch.ADDI:
		c.i += uint16(vx)
	case arch.LDF:
		c.i = FontStart + uint16(vx&0xf)*GlyphSize

	case arch.LDVDT:
		c.v[x] = c.dt
	case arch.LDDT:
		c.dt = vx
	case arch.LDST:
		c.st = vx
	case arch.LDK:
		key, ok := c.heldKey()
		if !ok {
			// Stay on this instruction until a key is held.
			c.waiting = true
			return nil
		}
		c.waiting = false
		c.v[x] = byte(key)

	case arch.BCD:
		if err := c.memory.Check(int(c.i), 3); err != nil {
			return NewError(instr, err)
		}
		c.memory.SetU8(int(c.i), vx/100)
		c.memory.SetU8(int(c.i)+1, vx/10%10)
		c.memory.SetU8(int(c.i)+2, vx%10)
	case arch.STM:
		if err := c.memory.Check(int(c.i), x+1); err != nil {
			return NewError(instr, err)
		}
		c.memory.Write(int(c.i), c.v[:x+1])
	case arch.LDM:
		if err := c.memory.Check(int(c.i), x+1); err != nil {
			return NewError(instr, err)
		}
		c.memory.Read(int(c.i), c.v[:x+1])

	default:
		// Unknown opcodes are skipped. The trace handler has seen them.
	}

	c.pc = next
	return nil
}

// draw composites an n-row sprite read from I onto the display at (vx, vy).
// Pixels falling outside the display are clipped. VF is set if any lit
// pixel was turned off.
func (c *CPU) draw(vx, vy byte, n int) error {
	if err := c.memory.Check(int(c.i), n); err != nil {
		return err
	}

	collision := false

	for row := 0; row < n; row++ {
		bits := c.memory.U8(int(c.i) + row)

		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}

			px := int(vx) + col
			py := int(vy) + row
			if !c.display.Contains(px, py) {
				continue
			}

			if !c.display.Toggle(px, py) {
				collision = true
			}
		}
	}

	c.v[arch.VF] = flag(collision)
	return nil
}

// push pushes the given return address onto the call stack.
func (c *CPU) push(addr uint16) error {
	if c.sp >= StackDepth-1 {
		return errors.Wrapf(ErrStackOverflow, "depth %d", c.sp)
	}
	c.sp++
	c.stack[c.sp] = addr
	return nil
}

// pop returns the top return address from the call stack.
func (c *CPU) pop() (uint16, error) {
	if c.sp <= 0 {
		return 0, ErrStackUnderflow
	}
	addr := c.stack[c.sp]
	c.sp--
	return addr, nil
}

// heldKey returns the lowest held key.
func (c *CPU) heldKey() (int, bool) {
	for k, down := range c.keys {
		if down {
			return k, true
		}
	}
	return 0, false
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
