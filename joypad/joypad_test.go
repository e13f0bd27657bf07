package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct{ mask uint8 }

func (f fakeSource) Poll() uint8 { return f.mask }

func TestSerialReadOrderIsLSBFirstThenOnes(t *testing.T) {
	j := New(nil)
	j.SetButtons(ButtonA | ButtonStart)

	j.Write(0x01) // strobe high
	j.Write(0x00) // strobe low, latch for reading

	var bits []uint8
	for i := 0; i < 10; i++ {
		bits = append(bits, j.Read())
	}

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0, 1, 1} // A, B, Select, Start, Up, Down, Left, Right, then all-ones
	assert.Equal(t, want, bits)
}

func TestStrobeHighAlwaysReportsButtonA(t *testing.T) {
	j := New(nil)
	j.SetButtons(ButtonA)
	j.Write(0x01)

	assert.Equal(t, uint8(1), j.Read())
	assert.Equal(t, uint8(1), j.Read(), "strobe held high never advances the shift index")
}

func TestPollSourceLatchesFromInputSource(t *testing.T) {
	j := New(fakeSource{mask: ButtonB})
	j.PollSource()
	assert.Equal(t, ButtonB, j.buttons)
}

func TestPollSourceIsNoOpWithoutASource(t *testing.T) {
	j := New(nil)
	j.SetButtons(ButtonUp)
	j.PollSource()
	assert.Equal(t, ButtonUp, j.buttons)
}
