package ppu

// loopy is the 15-bit "loopy" scroll register, used for both v
// (current VRAM address) and t (temporary address latch):
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy uint16

func (l loopy) addr() uint16      { return uint16(l) & 0x7FFF }
func (l loopy) coarseX() uint8    { return uint8(l & 0x001F) }
func (l loopy) coarseY() uint8    { return uint8(l >> 5 & 0x001F) }
func (l loopy) nametable() uint8  { return uint8(l >> 10 & 0x0003) }
func (l loopy) fineY() uint8      { return uint8(l >> 12 & 0x0007) }

func (l *loopy) setCoarseX(v uint8)   { *l = *l&^0x001F | loopy(v)&0x1F }
func (l *loopy) setCoarseY(v uint8)   { *l = *l&^(0x001F<<5) | loopy(v)&0x1F<<5 }
func (l *loopy) setNametable(v uint8) { *l = *l&^(0x0003<<10) | loopy(v)&0x03<<10 }
func (l *loopy) setFineY(v uint8)     { *l = *l&^(0x0007<<12) | loopy(v)&0x07<<12 }

func (l *loopy) setHigh(v uint8) { *l = *l&^0xFF00 | loopy(v&0x3F)<<8 }
func (l *loopy) setLow(v uint8)  { *l = *l&^0x00FF | loopy(v) }

// increment advances the address by n (1 across, 32 down), the way a
// PPUDATA access does, wrapping within the 15-bit address space.
func (l *loopy) increment(n uint16) { *l = loopy((uint16(*l) + n) & 0x7FFF) }
