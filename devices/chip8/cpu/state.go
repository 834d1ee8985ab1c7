package cpu

import (
	"fmt"
	"io"

	"github.com/hexaflex/chip8/arch"
)

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// V returns the value of register n.
func (c *CPU) V(n int) byte { return c.v[n&0xf] }

// Registers returns a copy of the general purpose registers.
func (c *CPU) Registers() [arch.RegisterCount]byte { return c.v }

// SP returns the stack pointer.
func (c *CPU) SP() int { return c.sp }

// Stack returns the pending return addresses, oldest first.
func (c *CPU) Stack() []uint16 {
	out := make([]uint16, c.sp)
	copy(out, c.stack[1:c.sp+1])
	return out
}

// Waiting returns true while the machine is blocked waiting for a key.
func (c *CPU) Waiting() bool { return c.waiting }

// DelayTimer returns the delay timer value.
func (c *CPU) DelayTimer() byte { return c.dt }

// SoundTimer returns the sound timer value.
func (c *CPU) SoundTimer() byte { return c.st }

// DecrementTimers counts both timers down by one, stopping at zero.
func (c *CPU) DecrementTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// SetKey sets the state of key k. Keys outside 0-F are ignored.
func (c *CPU) SetKey(k int, down bool) {
	if k >= 0 && k < KeyCount {
		c.keys[k] = down
	}
}

// Key returns true if key k is held. Keys outside 0-F are never held.
func (c *CPU) Key(k int) bool {
	return k >= 0 && k < KeyCount && c.keys[k]
}

// Dump writes a human readable rendering of the machine state to w.
func (c *CPU) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "PC %04x  I %04x  SP %d  DT %02x  ST %02x  program %d bytes\n",
		c.pc, c.i, c.sp, c.dt, c.st, c.memory.ProgramSize())
	if err != nil {
		return err
	}

	for n := 0; n < arch.RegisterCount; n++ {
		sep := " "
		if n%8 == 7 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s %02x%s", arch.RegisterName(n), c.v[n], sep); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "stack"); err != nil {
		return err
	}
	for _, addr := range c.Stack() {
		if _, err := fmt.Fprintf(w, " %04x", addr); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
