package main

import (
	"log"
	"runtime"
)

func init() {
	// glfw and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	err := NewApp(parseArgs()).Run()
	if err != nil {
		log.Fatal(err)
	}
}
