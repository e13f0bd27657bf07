package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOAMFromBytesDecodesAttributeByte(t *testing.T) {
	cases := []struct {
		attrib         uint8
		wantPalette    uint8
		wantPriority   priority
		wantFH, wantFV bool
	}{
		{0b11111111, 0x03, BACK, true, true},
		{0b01111111, 0x03, BACK, true, false},
		{0b00111111, 0x03, BACK, false, false},
		{0b00111101, 0x01, BACK, false, false},
		{0b00011101, 0x01, FRONT, false, false},
		{0b10011101, 0x01, FRONT, false, true},
		{0b10011110, 0x02, FRONT, false, true},
	}

	for i, tc := range cases {
		o := oamFromBytes(i, []uint8{0, 0, tc.attrib, 0})
		assert.Equal(t, tc.wantPalette, o.palette, "case %d palette", i)
		assert.Equal(t, tc.wantPriority, o.renderP, "case %d priority", i)
		assert.Equal(t, tc.wantFH, o.flipH, "case %d flipH", i)
		assert.Equal(t, tc.wantFV, o.flipV, "case %d flipV", i)
		assert.Equal(t, i, o.index)
	}
}

func TestOAMAttributesRoundTrips(t *testing.T) {
	for _, attrib := range []uint8{0x00, 0x03, 0x20, 0x40, 0x80, 0xE3} {
		o := oamFromBytes(0, []uint8{10, 20, attrib, 30})
		assert.Equal(t, attrib&0xE3, o.attributes()&0xE3)
	}
}
