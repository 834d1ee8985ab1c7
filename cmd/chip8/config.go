package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/devices/chip8/machine"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program image to load.
	ScaleFactor int    // Amount by which each pixel is scaled.
	Cycles      int    // Instructions executed per 60 Hz frame.
	Seed        int64  // Random seed; 0 seeds from the wall clock.
	Fullscreen  bool   // Run in fullscreen?
	Debug       bool   // Start paused with trace output enabled.
	PrintTrace  bool   // Print instruction trace data?
	Dump        bool   // Print the machine state on exit?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Cycles = machine.DefaultCycles

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start paused, with trace output enabled.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print every executed instruction.")
	flag.BoolVar(&c.Dump, "dump", c.Dump, "Print the machine state on exit.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.Cycles, "cycles", c.Cycles, "Instructions executed per 60 Hz frame.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 uses the current time.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	c.PrintTrace = c.PrintTrace || c.Debug
	return &c
}
