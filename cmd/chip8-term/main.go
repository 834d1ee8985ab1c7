package main

import (
	"log"
	"os"
)

func main() {
	err := NewApp(parseArgs()).Run()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
