package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/devices/chip8/machine"
)

// Config defines program configuration.
type Config struct {
	Program    string // Path to the program image to load.
	LogFile    string // Log output while the terminal is in use; discarded if empty.
	Cycles     int    // Instructions executed per 60 Hz frame.
	HoldFrames int    // Frames a key stays held after a key press.
	Seed       int64  // Random seed; 0 seeds from the wall clock.
	PrintTrace bool   // Log instruction trace data?
	Dump       bool   // Print the machine state on exit?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Cycles = machine.DefaultCycles
	c.HoldFrames = 10

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.LogFile, "log", c.LogFile, "Write log output to this file.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Log every executed instruction. Requires -log.")
	flag.BoolVar(&c.Dump, "dump", c.Dump, "Print the machine state on exit.")
	flag.IntVar(&c.Cycles, "cycles", c.Cycles, "Instructions executed per 60 Hz frame.")
	flag.IntVar(&c.HoldFrames, "hold", c.HoldFrames, "Frames a key stays held after it is pressed.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 uses the current time.")

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

	c.Program = flag.Arg(0)
	return &c
}
