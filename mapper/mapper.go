// Package mapper translates CPU- and PPU-visible addresses into offsets
// within a cartridge's PRG/CHR banks. Only the trivial fixed-bank
// (NROM-style) mapper is implemented; the broader mapper ecosystem is
// explicitly out of scope.
package mapper

import "github.com/briarwood/famicom/cartridge"

// Mapper is the address-translation contract the bus and PPU depend on.
type Mapper interface {
	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
}

// Fixed is the fixed-bank mapper (iNES mapper 0, "NROM"). A 16 KiB PRG
// bank is mirrored to fill the 32 KiB 0x8000-0xFFFF window; a 32 KiB
// bank fills it directly. CHR is ROM when the cartridge supplies it,
// else 8 KiB of CHR RAM.
type Fixed struct {
	prg       []byte
	chr       []byte
	chrRAM    bool
	mirroring cartridge.Mirroring
}

// New builds a Fixed mapper over the cartridge's banks.
func New(c *cartridge.Cartridge) *Fixed {
	chr := c.CHR
	chrRAM := c.UsesCHRRAM()
	if chrRAM {
		chr = make([]byte, 0x2000)
	}
	return &Fixed{prg: c.PRG, chr: chr, chrRAM: chrRAM, mirroring: c.Mirroring()}
}

// PrgRead resolves addr in 0x8000-0xFFFF against the PRG bank,
// mirroring a 16 KiB bank across the full 32 KiB window.
func (m *Fixed) PrgRead(addr uint16) uint8 {
	off := int(addr-0x8000) % len(m.prg)
	return m.prg[off]
}

// PrgWrite is a no-op: PRG is ROM. Callers (the bus) are expected to
// log an IgnoredWrite before calling this.
func (m *Fixed) PrgWrite(addr uint16, val uint8) {}

// ChrRead resolves a pattern-table address against CHR ROM/RAM.
func (m *Fixed) ChrRead(addr uint16) uint8 {
	return m.chr[int(addr)%len(m.chr)]
}

// ChrWrite is only meaningful when CHR is RAM; writes to CHR ROM are
// silently discarded by real NROM boards, so no error path exists here.
func (m *Fixed) ChrWrite(addr uint16, val uint8) {
	if !m.chrRAM {
		return
	}
	m.chr[int(addr)%len(m.chr)] = val
}

// Mirroring returns the cartridge-wired nametable mirroring mode; NROM
// has no mapper-controlled mirroring of its own, it just reports what
// the cartridge was wired for.
func (m *Fixed) Mirroring() cartridge.Mirroring {
	return m.mirroring
}
