package cpu

import "math/bits"

// addWithCarry implements ADC's flag semantics exactly: result = A+M+C,
// Carry from the 9th bit, Overflow from the signed-overflow formula.
func (c *CPU) addWithCarry(m uint8) {
	sum := uint16(c.A) + uint16(m) + uint16(c.Status&FlagCarry)
	res := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^res)&(m^res)&0x80 != 0)
	c.A = res
	c.setZN(c.A)
}

func (c *CPU) ADC(mode AddrMode) { c.addWithCarry(c.read(c.operandAddr(mode))) }
func (c *CPU) SBC(mode AddrMode) { c.addWithCarry(^c.read(c.operandAddr(mode))) }

func (c *CPU) AND(mode AddrMode) {
	c.A &= c.read(c.operandAddr(mode))
	c.setZN(c.A)
}

func (c *CPU) ASL(mode AddrMode) {
	var old, nv uint8
	if mode == Accumulator {
		old = c.A
		c.A <<= 1
		nv = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		nv = old << 1
		c.write(addr, nv)
	}
	c.setFlag(FlagCarry, old&0x80 != 0)
	c.setZN(nv)
}

func (c *CPU) branch(cond bool) {
	if !cond {
		return
	}
	addr := c.operandAddr(Relative)
	if pagesDiffer(addr, c.PC+1) {
		c.cycles += 2
	} else {
		c.cycles++
	}
	c.PC = addr
}

func (c *CPU) BCC(AddrMode) { c.branch(c.Status&FlagCarry == 0) }
func (c *CPU) BCS(AddrMode) { c.branch(c.Status&FlagCarry != 0) }
func (c *CPU) BEQ(AddrMode) { c.branch(c.Status&FlagZero != 0) }
func (c *CPU) BNE(AddrMode) { c.branch(c.Status&FlagZero == 0) }
func (c *CPU) BMI(AddrMode) { c.branch(c.Status&FlagNegative != 0) }
func (c *CPU) BPL(AddrMode) { c.branch(c.Status&FlagNegative == 0) }
func (c *CPU) BVC(AddrMode) { c.branch(c.Status&FlagOverflow == 0) }
func (c *CPU) BVS(AddrMode) { c.branch(c.Status&FlagOverflow != 0) }

func (c *CPU) BIT(mode AddrMode) {
	m := c.read(c.operandAddr(mode))
	c.setFlag(FlagZero, m&c.A == 0)
	c.setFlag(FlagNegative, m&0x80 != 0)
	c.setFlag(FlagOverflow, m&0x40 != 0)
}

func (c *CPU) BRK(AddrMode) {
	c.lastWasBRK = true
	c.PC++ // BRK is treated as a 2-byte instruction; skip the padding byte
	c.serviceInterrupt(vectorBRK, true)
}

func (c *CPU) CLC(AddrMode) { c.setFlag(FlagCarry, false) }
func (c *CPU) CLD(AddrMode) { c.setFlag(FlagDecimal, false) }
func (c *CPU) CLI(AddrMode) { c.setFlag(FlagInterruptDisable, false) }
func (c *CPU) CLV(AddrMode) { c.setFlag(FlagOverflow, false) }
func (c *CPU) SEC(AddrMode) { c.setFlag(FlagCarry, true) }
func (c *CPU) SED(AddrMode) { c.setFlag(FlagDecimal, true) }
func (c *CPU) SEI(AddrMode) { c.setFlag(FlagInterruptDisable, true) }

func (c *CPU) compare(reg uint8, mode AddrMode) {
	m := c.read(c.operandAddr(mode))
	c.setFlag(FlagCarry, reg >= m)
	c.setZN(reg - m)
}

func (c *CPU) CMP(mode AddrMode) { c.compare(c.A, mode) }
func (c *CPU) CPX(mode AddrMode) { c.compare(c.X, mode) }
func (c *CPU) CPY(mode AddrMode) { c.compare(c.Y, mode) }

func (c *CPU) DEC(mode AddrMode) {
	addr := c.operandAddr(mode)
	v := c.read(addr) - 1
	c.write(addr, v)
	c.setZN(v)
}

func (c *CPU) DEX(AddrMode) { c.X--; c.setZN(c.X) }
func (c *CPU) DEY(AddrMode) { c.Y--; c.setZN(c.Y) }
func (c *CPU) INX(AddrMode) { c.X++; c.setZN(c.X) }
func (c *CPU) INY(AddrMode) { c.Y++; c.setZN(c.Y) }

func (c *CPU) INC(mode AddrMode) {
	addr := c.operandAddr(mode)
	v := c.read(addr) + 1
	c.write(addr, v)
	c.setZN(v)
}

func (c *CPU) EOR(mode AddrMode) {
	c.A ^= c.read(c.operandAddr(mode))
	c.setZN(c.A)
}

func (c *CPU) ORA(mode AddrMode) {
	c.A |= c.read(c.operandAddr(mode))
	c.setZN(c.A)
}

func (c *CPU) JMP(mode AddrMode) { c.PC = c.operandAddr(mode) }

func (c *CPU) JSR(AddrMode) {
	target := c.operandAddr(Absolute)
	c.pushAddr(c.PC + 1) // return address is the last byte of JSR's operand
	c.PC = target
}

func (c *CPU) RTS(AddrMode) { c.PC = c.popAddr() + 1 }

func (c *CPU) RTI(AddrMode) {
	c.Status = (c.popByte() &^ FlagBreak) | FlagBreak2
	c.PC = c.popAddr()
}

func (c *CPU) LDA(mode AddrMode) { c.A = c.read(c.operandAddr(mode)); c.setZN(c.A) }
func (c *CPU) LDX(mode AddrMode) { c.X = c.read(c.operandAddr(mode)); c.setZN(c.X) }
func (c *CPU) LDY(mode AddrMode) { c.Y = c.read(c.operandAddr(mode)); c.setZN(c.Y) }
// STA/STX/STY are stores: their table entries are already the fixed
// total cycle count, so they must resolve indexed addresses without
// the page-cross penalty operandAddr charges read instructions.
func (c *CPU) STA(mode AddrMode) { c.write(c.operandAddrNoPenalty(mode), c.A) }
func (c *CPU) STX(mode AddrMode) { c.write(c.operandAddrNoPenalty(mode), c.X) }
func (c *CPU) STY(mode AddrMode) { c.write(c.operandAddrNoPenalty(mode), c.Y) }

func (c *CPU) LSR(mode AddrMode) {
	var old, nv uint8
	if mode == Accumulator {
		old = c.A
		c.A >>= 1
		nv = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		nv = old >> 1
		c.write(addr, nv)
	}
	c.setFlag(FlagCarry, old&0x01 != 0)
	c.setZN(nv)
}

func (c *CPU) ROL(mode AddrMode) {
	var old, nv uint8
	if mode == Accumulator {
		old = c.A
		c.A = bits.RotateLeft8(old, 1)&0xFE | c.Status&FlagCarry
		nv = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		nv = bits.RotateLeft8(old, 1)&0xFE | c.Status&FlagCarry
		c.write(addr, nv)
	}
	c.setFlag(FlagCarry, old&0x80 != 0)
	c.setZN(nv)
}

func (c *CPU) ROR(mode AddrMode) {
	var old, nv uint8
	carryIn := (c.Status & FlagCarry) << 7
	if mode == Accumulator {
		old = c.A
		c.A = old>>1 | carryIn
		nv = c.A
	} else {
		addr := c.operandAddr(mode)
		old = c.read(addr)
		nv = old>>1 | carryIn
		c.write(addr, nv)
	}
	c.setFlag(FlagCarry, old&0x01 != 0)
	c.setZN(nv)
}

func (c *CPU) NOP(mode AddrMode) {
	if mode != Implied {
		c.read(c.operandAddr(mode)) // consume and discard the operand for multi-byte NOPs
	}
}

func (c *CPU) PHA(AddrMode) { c.pushByte(c.A) }
func (c *CPU) PHP(AddrMode) { c.pushByte(c.Status | FlagBreak | FlagBreak2) }
func (c *CPU) PLA(AddrMode) { c.A = c.popByte(); c.setZN(c.A) }
func (c *CPU) PLP(AddrMode) { c.Status = (c.popByte() &^ FlagBreak) | FlagBreak2 }

func (c *CPU) TAX(AddrMode) { c.X = c.A; c.setZN(c.X) }
func (c *CPU) TAY(AddrMode) { c.Y = c.A; c.setZN(c.Y) }
func (c *CPU) TSX(AddrMode) { c.X = c.SP; c.setZN(c.X) }
func (c *CPU) TXA(AddrMode) { c.A = c.X; c.setZN(c.A) }
func (c *CPU) TXS(AddrMode) { c.SP = c.X }
func (c *CPU) TYA(AddrMode) { c.A = c.Y; c.setZN(c.A) }
