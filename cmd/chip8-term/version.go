package main

import (
	"fmt"

	"github.com/retroenv/retrogolib/buildinfo"
)

// Various version related constants.
const (
	AppVendor = "hexaflex"
	AppName   = "chip8-term"
)

// Set through -ldflags at build time.
var (
	version = "v1.0.0"
	commit  = ""
	date    = ""
)

// Version returns program version information.
func Version() string {
	return fmt.Sprintf("%s %s %s", AppVendor, AppName, buildinfo.Version(version, commit, date))
}
