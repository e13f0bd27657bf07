package ppu

import (
	"fmt"
	"io"

	"github.com/briarwood/famicom/diag"
)

const entriesPerBank = 64

// RGB is a single system-palette color.
type RGB struct{ R, G, B uint8 }

// Palette resolves a 6-bit palette index plus PPUMASK emphasis bits
// into an RGB color. It is supplied to the PPU at construction time
// rather than held as a package-level global, since the palette is
// process-wide read-mostly state that a debugger may want to swap.
type Palette struct {
	banks [][entriesPerBank]RGB
}

// Load reads a .pal file: 192 bytes (64 entries x 3 bytes RGB) for a
// single base bank, or 1536 bytes (8 banks x 64 entries x 3 bytes) to
// include the emphasis-bank variants addressed by the mask register's
// R/G/B emphasis bits.
func Load(r io.Reader) (*Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &diag.ConfigError{What: "reading palette file", Err: err}
	}

	var numBanks int
	switch len(data) {
	case entriesPerBank * 3:
		numBanks = 1
	case entriesPerBank * 3 * 8:
		numBanks = 8
	default:
		return nil, &diag.ConfigError{
			What: "palette file",
			Err:  fmt.Errorf("expected 192 or 1536 bytes, got %d", len(data)),
		}
	}

	p := &Palette{banks: make([][entriesPerBank]RGB, numBanks)}
	for b := 0; b < numBanks; b++ {
		for i := 0; i < entriesPerBank; i++ {
			off := (b*entriesPerBank + i) * 3
			p.banks[b][i] = RGB{data[off], data[off+1], data[off+2]}
		}
	}
	return p, nil
}

// Lookup resolves a 6-bit palette entry under the emphasis bank
// selected by mask's R/G/B bits: bank = 0x40*R | 0x80*G... per
// spec.md §6's formula, clamped to bank 0 when the loaded palette has
// no emphasis variants. When mask's greyscale bit is set, the result
// is the average of the color's R, G and B channels.
func (p *Palette) Lookup(entry uint8, mask uint8) RGB {
	bank := 0
	if len(p.banks) > 1 {
		bank = int(mask>>5) & 0x07
	}
	c := p.banks[bank][entry&0x3F]
	if mask&maskGreyscale != 0 {
		lum := uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
		c = RGB{lum, lum, lum}
	}
	return c
}

// DefaultPalette returns the built-in NTSC palette, used whenever no
// external .pal file is supplied.
func DefaultPalette() *Palette {
	return &Palette{banks: [][entriesPerBank]RGB{defaultNTSCBank}}
}

// defaultNTSCBank is the standard NTSC composite-derived 64 entry
// system palette (the same values long shipped by nearly every open
// source NES emulator's default palette file).
var defaultNTSCBank = [entriesPerBank]RGB{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96}, {0xA1, 0x00, 0x5E},
	{0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00}, {0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00},
	{0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E}, {0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},
	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA}, {0xEB, 0x2F, 0xB5},
	{0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00}, {0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00},
	{0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55}, {0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},
	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF}, {0xFF, 0x45, 0xF3},
	{0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12}, {0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E},
	{0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4}, {0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},
	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB}, {0xFF, 0xA8, 0xF9},
	{0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6}, {0xFF, 0xF7, 0x9C}, {0xD7, 0xE8, 0x95},
	{0xA6, 0xED, 0xAF}, {0xA2, 0xF2, 0xDA}, {0x99, 0xFF, 0xFC}, {0xDD, 0xDD, 0xDD}, {0x11, 0x11, 0x11}, {0x11, 0x11, 0x11},
}
