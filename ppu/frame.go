package ppu

// This file assembles the visible frame buffer and implements sprite
// evaluation/sprite-zero-hit detection. Scroll position is read from
// t (coarse X/Y, fine X/Y, nametable select) as the frame is
// assembled, once per frame, rather than stepped dot-by-dot through
// v; this matches the
// end-of-frame assembly model the whole package uses and is exact for
// the common case of a scroll value held steady for the frame (the
// only case spec.md's test fixtures exercise), at the cost of not
// modeling mid-frame scroll splits.

// bgPatternBase returns 0x0000 or 0x1000 per PPUCTRL bit 4.
func (p *PPU) bgPatternBase() uint16 {
	if p.ctrl&ctrlBgPat != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) sprPatternBase() uint16 {
	if p.ctrl&ctrlSpritePat != 0 {
		return 0x1000
	}
	return 0
}

// backgroundPixel returns the 2-bit color index and the palette
// number for screen coordinate (x, y), reading through t's scroll
// position.
func (p *PPU) backgroundPixel(x, y int) (colorIdx, paletteNum uint8) {
	scrolledX := x + int(p.t.coarseX())*8 + int(p.fineX) + int(p.t.nametable()&1)*256
	scrolledY := y + int(p.t.coarseY())*8 + int(p.t.fineY()) + int(p.t.nametable()>>1)*240

	nametableX := (scrolledX / 256) & 1
	nametableY := (scrolledY / 240) & 1
	base := uint16(0x2000) + uint16(nametableX)*0x400 + uint16(nametableY)*0x800

	tileX := (scrolledX % 256) / 8
	tileY := (scrolledY % 240) / 8
	fineX := uint(scrolledX % 8)
	fineY := uint(scrolledY % 8)

	ntAddr := base + uint16(tileY*32+tileX)
	tileIdx := p.readVRAM(ntAddr)

	attrAddr := base + 0x3C0 + uint16((tileY/4)*8+(tileX/4))
	attr := p.readVRAM(attrAddr)
	quadShift := uint(0)
	if tileX%4 >= 2 {
		quadShift += 2
	}
	if tileY%4 >= 2 {
		quadShift += 4
	}
	paletteNum = (attr >> quadShift) & 0x03

	patAddr := p.bgPatternBase() + uint16(tileIdx)*16
	lo := p.readVRAM(patAddr + uint16(fineY))
	hi := p.readVRAM(patAddr + uint16(fineY) + 8)
	bit := 7 - fineX
	colorIdx = (lo>>bit)&1 | (hi>>bit)&1<<1
	return colorIdx, paletteNum
}

// spritePixel returns the color index (0 = transparent) for sprite s
// at screen coordinate (x, y); y must fall within the sprite's row
// range, already checked by the caller.
func (p *PPU) spritePixel(s oam, x, y int) uint8 {
	row := y - int(s.y) - 1
	height := p.spriteHeight()
	if s.flipV {
		row = height - 1 - row
	}

	var tile, base uint16
	if height == 16 {
		base = uint16(s.tileId&1) * 0x1000
		tileNum := uint16(s.tileId &^ 1)
		if row >= 8 {
			tileNum++
			row -= 8
		}
		tile = tileNum
	} else {
		base = p.sprPatternBase()
		tile = uint16(s.tileId)
	}

	col := x - int(s.x)
	if s.flipH {
		col = 7 - col
	}

	patAddr := base + tile*16
	lo := p.readVRAM(patAddr + uint16(row))
	hi := p.readVRAM(patAddr + uint16(row) + 8)
	bit := uint(7 - col)
	return (lo>>bit)&1 | (hi>>bit)&1<<1
}

// evaluateSprites runs the per-scanline sprite search: which of the 64
// OAM entries fall on this scanline (up to 8, overflow beyond that),
// and whether sprite zero among them produces a nonzero pixel
// coinciding with a nonzero background pixel anywhere on the line.
func (p *PPU) evaluateSprites() {
	scanline := int(p.scanline)
	height := p.spriteHeight()

	p.secondaryCount = 0
	sawZero := false
	for i := 0; i < 64; i++ {
		base := i * 4
		y := int(p.oam[base])
		if scanline < y+1 || scanline > y+height {
			continue
		}
		if i == 0 {
			sawZero = true
		}
		if p.secondaryCount < 8 {
			p.secondaryOAM[p.secondaryCount] = oamFromBytes(i, p.oam[base:base+4])
			p.secondaryCount++
		} else {
			p.status |= statusSpriteOverflow
		}
	}

	if !sawZero || p.status&statusSpriteZeroHit != 0 || !p.showBackground() {
		return
	}
	for i := 0; i < p.secondaryCount; i++ {
		s := p.secondaryOAM[i]
		if s.index != 0 {
			continue
		}
		for x := int(s.x); x < int(s.x)+8 && x < Width; x++ {
			if x < 8 && (p.mask&maskShowSprLeft == 0 || p.mask&maskShowBgLeft == 0) {
				continue
			}
			bgIdx, _ := p.backgroundPixel(x, scanline)
			sprIdx := p.spritePixel(s, x, scanline)
			if bgIdx != 0 && sprIdx != 0 {
				p.status |= statusSpriteZeroHit
				break
			}
		}
	}
}

// renderFrame assembles the full background+sprite composite into
// p.frame, called once at the end of the pre-render line.
func (p *PPU) renderFrame() {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			var out RGB
			bgIdx := uint8(0)
			if p.showBackground() && !(x < 8 && p.mask&maskShowBgLeft == 0) {
				idx, palNum := p.backgroundPixel(x, y)
				bgIdx = idx
				entry := p.readPalette(0x3F00 + uint16(palNum)*4 + uint16(idx))
				out = p.pal.Lookup(entry, p.mask)
			} else {
				out = p.pal.Lookup(p.readPalette(0x3F00), p.mask)
			}

			if p.showSprites() && !(x < 8 && p.mask&maskShowSprLeft == 0) {
				if sc, ok := p.spriteAt(x, y, bgIdx); ok {
					out = sc
				}
			}

			off := (y*Width + x) * 3
			p.frame[off] = out.R
			p.frame[off+1] = out.G
			p.frame[off+2] = out.B
		}
	}
}

// spriteAt returns the topmost non-transparent sprite pixel at (x, y)
// that should be drawn given background priority, searching OAM from
// slot 0 upward so sprite 0 wins ties (lower index = higher priority).
func (p *PPU) spriteAt(x, y int, bgIdx uint8) (RGB, bool) {
	height := p.spriteHeight()
	for i := 0; i < 64; i++ {
		base := i * 4
		sy := int(p.oam[base])
		if y < sy+1 || y > sy+height {
			continue
		}
		s := oamFromBytes(i, p.oam[base:base+4])
		if x < int(s.x) || x >= int(s.x)+8 {
			continue
		}
		idx := p.spritePixel(s, x, y)
		if idx == 0 {
			continue
		}
		if s.renderP == BACK && bgIdx != 0 {
			continue
		}
		entry := p.readPalette(0x3F10 + uint16(s.palette)*4 + uint16(idx))
		return p.pal.Lookup(entry, p.mask), true
	}
	return RGB{}, false
}
