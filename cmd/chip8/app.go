package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/display"
	"github.com/hexaflex/chip8/devices/chip8/machine"
	"github.com/hexaflex/chip8/devices/chip8/screen"
)

// App defines application context.
type App struct {
	config       *Config             // Application configuration.
	window       *glfw.Window        // OpenGL/GLFW context.
	machine      *machine.Controller // VM with program to be run.
	screen       *screen.Device      // Presents the framebuffer.
	titleUpdated time.Time           // Value used to periodically update window title.
	beeping      bool                // Sound timer state shown in the title.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.screen = screen.New()
	a.machine = machine.New(a.printTrace, config.Cycles, 1)
	a.machine.Connect(a.screen)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.machine.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	glfw.PollEvents()

	frames, err := a.machine.Update()
	if err != nil {
		log.Println(err)
	}

	fb := a.machine.CPU().Display()
	if fb.Dirty() {
		snap := fb.Snapshot()
		a.screen.Update(&snap)
		fb.ClearDirty()
		frames++
	}

	if frames > 0 {
		a.render()
	} else {
		time.Sleep(time.Millisecond)
	}

	beeping := a.machine.CPU().SoundTimer() > 0
	if beeping != a.beeping || time.Since(a.titleUpdated) >= time.Second*2 {
		a.beeping = beeping
		a.updateTitle()
	}
}

func (a *App) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	a.screen.Draw()
	a.window.SwapBuffers()
}

// updateTitle shows the current cpu clock frequency and sound state.
func (a *App) updateTitle() {
	a.titleUpdated = time.Now()

	state := prettyFrequency(a.machine.Frequency())
	if !a.machine.Running() {
		state = "paused"
	}

	title := fmt.Sprintf("%s - %s", AppName, state)
	if a.beeping {
		title += " [beep]"
	}

	a.window.SetTitle(title)
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.config.Dump {
		a.machine.CPU().Dump(os.Stdout)
	}

	if err := a.machine.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if k, ok := keypadKey(key); ok {
		if action != glfw.Repeat {
			a.machine.Keypad().Set(k, action == glfw.Press)
		}
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		err = a.loadProgram()
		if err == nil {
			a.machine.Start()
		}
	case glfw.KeyF6:
		a.machine.Stop()
		err = a.machine.Step()
	case glfw.KeyF7:
		a.config.PrintTrace = !a.config.PrintTrace
	case glfw.KeyF8:
		err = a.machine.CPU().Dump(os.Stdout)
	case glfw.KeySpace:
		a.machine.ToggleRun()
	}

	if err != nil {
		log.Println(err)
	}

	a.updateTitle()
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		a.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
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

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace. Unknown opcodes are always logged.
func (a *App) printTrace(i *cpu.Instruction) {
	if i.Unknown() {
		log.Printf("unknown opcode %04x at %04x", i.Opcode, i.IP)
	}

	if !a.config.PrintTrace {
		return
	}

	fmt.Printf("%04x  %04x  %s\n", i.IP, i.Opcode, i)
}

// printHelp writes a short overview of supported shortcut keys.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Pause and perform a single execution step.\n")
	sb.WriteString(" F7       Enable/Disable trace output.\n")
	sb.WriteString(" F8       Print the machine state.\n")
	sb.WriteString(" SPACE    Start/Stop program execution.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4      1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F      7 8 9 E\n")
	sb.WriteString(" Z X C V      A 0 B F")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
