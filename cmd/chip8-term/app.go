package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/clock"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/display"
	"github.com/hexaflex/chip8/devices/chip8/keypad"
	"github.com/hexaflex/chip8/devices/chip8/machine"
)

// App defines application context.
type App struct {
	config  *Config
	screen  tcell.Screen
	machine *machine.Controller
	events  chan tcell.Event // Terminal events; closed when polling ends.
	quit    chan struct{}    // Closed when the event loop stops reading.
	logFile *os.File
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.machine = machine.New(a.printTrace, config.Cycles, config.HoldFrames)
	a.events = make(chan tcell.Event, 16)
	a.quit = make(chan struct{})
	return &a
}

// Run runs the application until it is quit or the program fails.
func (a *App) Run() error {
	if err := a.initLog(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.loadProgram(); err != nil {
		return err
	}

	var err error
	a.screen, err = tcell.NewScreen()
	if err != nil {
		return errors.Wrapf(err, "tcell.NewScreen failed")
	}

	if err = a.screen.Init(); err != nil {
		a.screen = nil
		return errors.Wrapf(err, "tcell.Init failed")
	}

	go a.pollEvents(a.screen)

	a.machine.Start()
	a.draw()

	ticker := time.NewTicker(time.Second / clock.Rate)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-a.events:
			if !ok || a.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if _, err := a.machine.Update(); err != nil {
				return err
			}

			fb := a.machine.CPU().Display()
			if fb.Dirty() {
				fb.ClearDirty()
				a.draw()
			} else {
				a.drawStatus()
				a.screen.Show()
			}
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized
// or the event loop has stopped.
func (a *App) pollEvents(s tcell.Screen) {
	defer close(a.events)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}

		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent processes a terminal event. Returns true if the
// application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == ' ' {
				a.machine.ToggleRun()
				break
			}
			if k, ok := keypad.KeyForRune(ev.Rune()); ok {
				a.machine.Keypad().Press(k)
			}
		}
	}

	return false
}

// Half blocks indexed by top pixel | bottom pixel<<1.
var blocks = [4]rune{' ', '▀', '▄', '█'}

// draw renders the framebuffer, two display rows per terminal row.
func (a *App) draw() {
	snap := a.machine.CPU().Display().Snapshot()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			i := 0
			if snap.At(x, y) {
				i |= 1
			}
			if snap.At(x, y+1) {
				i |= 2
			}
			a.screen.SetContent(x, y/2, blocks[i], nil, style)
		}
	}

	a.drawStatus()
	a.screen.Show()
}

// drawStatus renders the line below the display.
func (a *App) drawStatus() {
	state := "running"
	if !a.machine.Running() {
		state = "paused"
	}
	if a.machine.CPU().Waiting() {
		state = "waiting for key"
	}

	status := fmt.Sprintf("%s - %-16s", AppName, state)
	if a.machine.CPU().SoundTimer() > 0 {
		status += "[beep]"
	} else {
		status += "      "
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	y := display.Height/2 + 1
	for x, r := range status {
		a.screen.SetContent(x, y, r, nil, style)
	}
}

// dispose restores the terminal and releases machine resources.
func (a *App) dispose() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}

	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}

	if a.config.Dump {
		a.machine.CPU().Dump(os.Stdout)
	}

	if err := a.machine.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.logFile != nil {
		log.SetOutput(os.Stderr)
		a.logFile.Close()
		a.logFile = nil
	}
}

// initLog redirects log output away from the terminal.
func (a *App) initLog() error {
	if a.config.LogFile == "" {
		log.SetOutput(ioutil.Discard)
		return nil
	}

	fd, err := os.OpenFile(a.config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open log file")
	}

	a.logFile = fd
	log.SetOutput(fd)
	log.Println(Version())
	return nil
}

// loadProgram loads the program from disk and restarts the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	fd, err := os.Open(a.config.Program)
	if err != nil {
		return err
	}

	defer fd.Close()

	if err := a.machine.Load(fd); err != nil {
		return err
	}

	if a.config.Seed != 0 {
		a.machine.CPU().Seed(a.config.Seed)
	}

	return nil
}

// printTrace logs instruction trace data if enabled.
// Unknown opcodes are always logged.
func (a *App) printTrace(i *cpu.Instruction) {
	if i.Unknown() {
		log.Printf("unknown opcode %04x at %04x", i.Opcode, i.IP)
	}

	if a.config.PrintTrace {
		log.Printf("%04x  %04x  %s", i.IP, i.Opcode, i)
	}
}
