package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoopySetGetFields(t *testing.T) {
	var l loopy
	l.setCoarseX(0x1F)
	l.setCoarseY(0x1F)
	l.setNametable(0x3)
	l.setFineY(0x7)

	assert.Equal(t, uint8(0x1F), l.coarseX())
	assert.Equal(t, uint8(0x1F), l.coarseY())
	assert.Equal(t, uint8(0x3), l.nametable())
	assert.Equal(t, uint8(0x7), l.fineY())
	assert.Equal(t, uint16(0x7FFF), l.addr())
}

func TestLoopySetHighMasksToSixBits(t *testing.T) {
	var l loopy
	l.setHigh(0xFF) // top two bits of the written byte are discarded
	assert.Equal(t, uint16(0x3F00), l.addr())
}

func TestLoopySetLowLeavesHighUntouched(t *testing.T) {
	var l loopy
	l.setHigh(0x3F)
	l.setLow(0xAB)
	assert.Equal(t, uint16(0x3FAB), l.addr())
}

func TestLoopyIncrementWrapsWithin15Bits(t *testing.T) {
	l := loopy(0x7FFF)
	l.increment(1)
	assert.Equal(t, uint16(0x0000), l.addr())
}
