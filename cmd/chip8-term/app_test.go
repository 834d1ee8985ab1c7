package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrogolib/assert"
)

func TestPollEventsStopsWithoutReader(t *testing.T) {
	a := NewApp(&Config{Cycles: 1, HoldFrames: 1})

	s := tcell.NewSimulationScreen("")
	assert.NoError(t, s.Init())
	a.screen = s

	done := make(chan struct{})
	go func() {
		a.pollEvents(s)
		close(done)
	}()

	// More events than the channel buffers, and nobody reading them.
	for i := 0; i < 2*cap(a.events); i++ {
		s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}

	a.dispose()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("event polling did not stop")
	}
}

func TestDisposeClosesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip8.log")
	a := NewApp(&Config{Cycles: 1, HoldFrames: 1, LogFile: path})

	assert.NoError(t, a.initLog())
	fd := a.logFile

	a.dispose()

	_, err := fd.WriteString("late\n")
	assert.Equal(t, true, err != nil)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, true, len(data) > 0)
}
