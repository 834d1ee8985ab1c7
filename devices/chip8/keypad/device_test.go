package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type testKeys [KeyCount]bool

func (k *testKeys) SetKey(n int, down bool) { k[n] = down }

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  int
		isOk bool
	}{
		{'1', 0x1, true},
		{'4', 0xc, true},
		{'q', 0x4, true},
		{'W', 0x5, true},
		{'x', 0x0, true},
		{'v', 0xf, true},
		{'p', 0, false},
	}

	for _, tt := range tests {
		key, ok := KeyForRune(tt.r)
		assert.Equal(t, tt.isOk, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestSet(t *testing.T) {
	var keys testKeys
	d := New(&keys, 3)
	assert.NoError(t, d.Startup())

	d.Set(0xa, true)
	assert.Equal(t, true, keys[0xa])
	assert.Equal(t, true, d.Held(0xa))

	// Explicitly held keys are not released by Update.
	d.Update()
	d.Update()
	d.Update()
	d.Update()
	assert.Equal(t, true, keys[0xa])

	d.Set(0xa, false)
	assert.Equal(t, false, keys[0xa])

	d.Set(16, true)
	d.Set(-1, true)
}

func TestPressReleasesAfterHold(t *testing.T) {
	var keys testKeys
	d := New(&keys, 2)

	d.Press(0x3)
	assert.Equal(t, true, keys[0x3])

	d.Update()
	assert.Equal(t, true, keys[0x3])

	d.Update()
	assert.Equal(t, false, keys[0x3])
	assert.Equal(t, false, d.Held(0x3))
}

func TestShutdownReleasesAll(t *testing.T) {
	var keys testKeys
	d := New(&keys, 2)
	d.Set(0x1, true)
	d.Press(0x2)

	assert.NoError(t, d.Shutdown())
	assert.Equal(t, testKeys{}, keys)
}
