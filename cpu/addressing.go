package cpu

// AddrMode identifies one of the 6502's addressing modes.
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// operandAddr resolves mode to an effective address, assuming PC
// currently points at the first operand byte (the opcode byte itself
// has already been consumed). It adds a page-cross penalty cycle for
// the indexed modes where hardware actually pays it; Accumulator and
// Implied must never be passed here.
func (c *CPU) operandAddr(mode AddrMode) uint16 {
	switch mode {
	case Immediate:
		return c.PC
	case ZeroPage:
		return uint16(c.read(c.PC))
	case ZeroPageX:
		return uint16(c.read(c.PC) + c.X)
	case ZeroPageY:
		return uint16(c.read(c.PC) + c.Y)
	case Absolute:
		return c.read16(c.PC)
	case AbsoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		if pagesDiffer(base, addr) {
			c.cycles++
		}
		return addr
	case AbsoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		if pagesDiffer(base, addr) {
			c.cycles++
		}
		return addr
	case Indirect:
		return c.read16bug(c.read16(c.PC))
	case IndirectX:
		zp := c.read(c.PC) + c.X
		return c.read16bug(uint16(zp))
	case IndirectY:
		zp := uint16(c.read(c.PC))
		base := c.read16bug(zp)
		addr := base + uint16(c.Y)
		if pagesDiffer(base, addr) {
			c.cycles++
		}
		return addr
	case Relative:
		return c.PC + 1 + uint16(int8(c.read(c.PC)))
	default:
		panic(&diagAddrModePanic{mode})
	}
}

// operandAddrNoPenalty resolves an address the same way operandAddr
// does but never charges a page-cross cycle, for the handful of
// illegal read-modify-write opcodes whose cycle count is fixed
// regardless of crossing.
func (c *CPU) operandAddrNoPenalty(mode AddrMode) uint16 {
	switch mode {
	case AbsoluteX:
		base := c.read16(c.PC)
		return base + uint16(c.X)
	case AbsoluteY:
		base := c.read16(c.PC)
		return base + uint16(c.Y)
	case IndirectY:
		zp := uint16(c.read(c.PC))
		base := c.read16bug(zp)
		return base + uint16(c.Y)
	default:
		return c.operandAddr(mode)
	}
}

type diagAddrModePanic struct{ mode AddrMode }

func (d *diagAddrModePanic) Error() string { return "invalid addressing mode for operandAddr" }
