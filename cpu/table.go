package cpu

// opcode describes one of the 256 possible opcode bytes: its mnemonic
// (for tracing), addressing mode, total instruction length, base cycle
// count (before page-cross/branch penalties), and the function that
// executes it. A nil exec means the byte decodes to nothing real.
type opcode struct {
	name   string
	mode   AddrMode
	bytes  uint8
	cycles uint8
	exec   func(*CPU, AddrMode)
}

var opcodeTable [256]opcode

func op(b byte, name string, mode AddrMode, bytes, cycles uint8, fn func(*CPU, AddrMode)) {
	opcodeTable[b] = opcode{name, mode, bytes, cycles, fn}
}

func init() {
	// ADC
	op(0x69, "ADC", Immediate, 2, 2, (*CPU).ADC)
	op(0x65, "ADC", ZeroPage, 2, 3, (*CPU).ADC)
	op(0x75, "ADC", ZeroPageX, 2, 4, (*CPU).ADC)
	op(0x6D, "ADC", Absolute, 3, 4, (*CPU).ADC)
	op(0x7D, "ADC", AbsoluteX, 3, 4, (*CPU).ADC)
	op(0x79, "ADC", AbsoluteY, 3, 4, (*CPU).ADC)
	op(0x61, "ADC", IndirectX, 2, 6, (*CPU).ADC)
	op(0x71, "ADC", IndirectY, 2, 5, (*CPU).ADC)

	// AND
	op(0x29, "AND", Immediate, 2, 2, (*CPU).AND)
	op(0x25, "AND", ZeroPage, 2, 3, (*CPU).AND)
	op(0x35, "AND", ZeroPageX, 2, 4, (*CPU).AND)
	op(0x2D, "AND", Absolute, 3, 4, (*CPU).AND)
	op(0x3D, "AND", AbsoluteX, 3, 4, (*CPU).AND)
	op(0x39, "AND", AbsoluteY, 3, 4, (*CPU).AND)
	op(0x21, "AND", IndirectX, 2, 6, (*CPU).AND)
	op(0x31, "AND", IndirectY, 2, 5, (*CPU).AND)

	// ASL
	op(0x0A, "ASL", Accumulator, 1, 2, (*CPU).ASL)
	op(0x06, "ASL", ZeroPage, 2, 5, (*CPU).ASL)
	op(0x16, "ASL", ZeroPageX, 2, 6, (*CPU).ASL)
	op(0x0E, "ASL", Absolute, 3, 6, (*CPU).ASL)
	op(0x1E, "ASL", AbsoluteX, 3, 7, (*CPU).ASL)

	// Branches
	op(0x90, "BCC", Relative, 2, 2, (*CPU).BCC)
	op(0xB0, "BCS", Relative, 2, 2, (*CPU).BCS)
	op(0xF0, "BEQ", Relative, 2, 2, (*CPU).BEQ)
	op(0x30, "BMI", Relative, 2, 2, (*CPU).BMI)
	op(0xD0, "BNE", Relative, 2, 2, (*CPU).BNE)
	op(0x10, "BPL", Relative, 2, 2, (*CPU).BPL)
	op(0x50, "BVC", Relative, 2, 2, (*CPU).BVC)
	op(0x70, "BVS", Relative, 2, 2, (*CPU).BVS)

	op(0x24, "BIT", ZeroPage, 2, 3, (*CPU).BIT)
	op(0x2C, "BIT", Absolute, 3, 4, (*CPU).BIT)

	op(0x00, "BRK", Implied, 1, 7, (*CPU).BRK)

	op(0x18, "CLC", Implied, 1, 2, (*CPU).CLC)
	op(0xD8, "CLD", Implied, 1, 2, (*CPU).CLD)
	op(0x58, "CLI", Implied, 1, 2, (*CPU).CLI)
	op(0xB8, "CLV", Implied, 1, 2, (*CPU).CLV)
	op(0x38, "SEC", Implied, 1, 2, (*CPU).SEC)
	op(0xF8, "SED", Implied, 1, 2, (*CPU).SED)
	op(0x78, "SEI", Implied, 1, 2, (*CPU).SEI)

	op(0xC9, "CMP", Immediate, 2, 2, (*CPU).CMP)
	op(0xC5, "CMP", ZeroPage, 2, 3, (*CPU).CMP)
	op(0xD5, "CMP", ZeroPageX, 2, 4, (*CPU).CMP)
	op(0xCD, "CMP", Absolute, 3, 4, (*CPU).CMP)
	op(0xDD, "CMP", AbsoluteX, 3, 4, (*CPU).CMP)
	op(0xD9, "CMP", AbsoluteY, 3, 4, (*CPU).CMP)
	op(0xC1, "CMP", IndirectX, 2, 6, (*CPU).CMP)
	op(0xD1, "CMP", IndirectY, 2, 5, (*CPU).CMP)

	op(0xE0, "CPX", Immediate, 2, 2, (*CPU).CPX)
	op(0xE4, "CPX", ZeroPage, 2, 3, (*CPU).CPX)
	op(0xEC, "CPX", Absolute, 3, 4, (*CPU).CPX)
	op(0xC0, "CPY", Immediate, 2, 2, (*CPU).CPY)
	op(0xC4, "CPY", ZeroPage, 2, 3, (*CPU).CPY)
	op(0xCC, "CPY", Absolute, 3, 4, (*CPU).CPY)

	op(0xC6, "DEC", ZeroPage, 2, 5, (*CPU).DEC)
	op(0xD6, "DEC", ZeroPageX, 2, 6, (*CPU).DEC)
	op(0xCE, "DEC", Absolute, 3, 6, (*CPU).DEC)
	op(0xDE, "DEC", AbsoluteX, 3, 7, (*CPU).DEC)
	op(0xCA, "DEX", Implied, 1, 2, (*CPU).DEX)
	op(0x88, "DEY", Implied, 1, 2, (*CPU).DEY)
	op(0xE8, "INX", Implied, 1, 2, (*CPU).INX)
	op(0xC8, "INY", Implied, 1, 2, (*CPU).INY)

	op(0x49, "EOR", Immediate, 2, 2, (*CPU).EOR)
	op(0x45, "EOR", ZeroPage, 2, 3, (*CPU).EOR)
	op(0x55, "EOR", ZeroPageX, 2, 4, (*CPU).EOR)
	op(0x4D, "EOR", Absolute, 3, 4, (*CPU).EOR)
	op(0x5D, "EOR", AbsoluteX, 3, 4, (*CPU).EOR)
	op(0x59, "EOR", AbsoluteY, 3, 4, (*CPU).EOR)
	op(0x41, "EOR", IndirectX, 2, 6, (*CPU).EOR)
	op(0x51, "EOR", IndirectY, 2, 5, (*CPU).EOR)

	op(0xE6, "INC", ZeroPage, 2, 5, (*CPU).INC)
	op(0xF6, "INC", ZeroPageX, 2, 6, (*CPU).INC)
	op(0xEE, "INC", Absolute, 3, 6, (*CPU).INC)
	op(0xFE, "INC", AbsoluteX, 3, 7, (*CPU).INC)

	op(0x4C, "JMP", Absolute, 3, 3, (*CPU).JMP)
	op(0x6C, "JMP", Indirect, 3, 5, (*CPU).JMP)
	op(0x20, "JSR", Absolute, 3, 6, (*CPU).JSR)
	op(0x60, "RTS", Implied, 1, 6, (*CPU).RTS)
	op(0x40, "RTI", Implied, 1, 6, (*CPU).RTI)

	op(0xA9, "LDA", Immediate, 2, 2, (*CPU).LDA)
	op(0xA5, "LDA", ZeroPage, 2, 3, (*CPU).LDA)
	op(0xB5, "LDA", ZeroPageX, 2, 4, (*CPU).LDA)
	op(0xAD, "LDA", Absolute, 3, 4, (*CPU).LDA)
	op(0xBD, "LDA", AbsoluteX, 3, 4, (*CPU).LDA)
	op(0xB9, "LDA", AbsoluteY, 3, 4, (*CPU).LDA)
	op(0xA1, "LDA", IndirectX, 2, 6, (*CPU).LDA)
	op(0xB1, "LDA", IndirectY, 2, 5, (*CPU).LDA)

	op(0xA2, "LDX", Immediate, 2, 2, (*CPU).LDX)
	op(0xA6, "LDX", ZeroPage, 2, 3, (*CPU).LDX)
	op(0xB6, "LDX", ZeroPageY, 2, 4, (*CPU).LDX)
	op(0xAE, "LDX", Absolute, 3, 4, (*CPU).LDX)
	op(0xBE, "LDX", AbsoluteY, 3, 4, (*CPU).LDX)

	op(0xA0, "LDY", Immediate, 2, 2, (*CPU).LDY)
	op(0xA4, "LDY", ZeroPage, 2, 3, (*CPU).LDY)
	op(0xB4, "LDY", ZeroPageX, 2, 4, (*CPU).LDY)
	op(0xAC, "LDY", Absolute, 3, 4, (*CPU).LDY)
	op(0xBC, "LDY", AbsoluteX, 3, 4, (*CPU).LDY)

	op(0x4A, "LSR", Accumulator, 1, 2, (*CPU).LSR)
	op(0x46, "LSR", ZeroPage, 2, 5, (*CPU).LSR)
	op(0x56, "LSR", ZeroPageX, 2, 6, (*CPU).LSR)
	op(0x4E, "LSR", Absolute, 3, 6, (*CPU).LSR)
	op(0x5E, "LSR", AbsoluteX, 3, 7, (*CPU).LSR)

	op(0x09, "ORA", Immediate, 2, 2, (*CPU).ORA)
	op(0x05, "ORA", ZeroPage, 2, 3, (*CPU).ORA)
	op(0x15, "ORA", ZeroPageX, 2, 4, (*CPU).ORA)
	op(0x0D, "ORA", Absolute, 3, 4, (*CPU).ORA)
	op(0x1D, "ORA", AbsoluteX, 3, 4, (*CPU).ORA)
	op(0x19, "ORA", AbsoluteY, 3, 4, (*CPU).ORA)
	op(0x01, "ORA", IndirectX, 2, 6, (*CPU).ORA)
	op(0x11, "ORA", IndirectY, 2, 5, (*CPU).ORA)

	op(0x48, "PHA", Implied, 1, 3, (*CPU).PHA)
	op(0x08, "PHP", Implied, 1, 3, (*CPU).PHP)
	op(0x68, "PLA", Implied, 1, 4, (*CPU).PLA)
	op(0x28, "PLP", Implied, 1, 4, (*CPU).PLP)

	op(0x2A, "ROL", Accumulator, 1, 2, (*CPU).ROL)
	op(0x26, "ROL", ZeroPage, 2, 5, (*CPU).ROL)
	op(0x36, "ROL", ZeroPageX, 2, 6, (*CPU).ROL)
	op(0x2E, "ROL", Absolute, 3, 6, (*CPU).ROL)
	op(0x3E, "ROL", AbsoluteX, 3, 7, (*CPU).ROL)

	op(0x6A, "ROR", Accumulator, 1, 2, (*CPU).ROR)
	op(0x66, "ROR", ZeroPage, 2, 5, (*CPU).ROR)
	op(0x76, "ROR", ZeroPageX, 2, 6, (*CPU).ROR)
	op(0x6E, "ROR", Absolute, 3, 6, (*CPU).ROR)
	op(0x7E, "ROR", AbsoluteX, 3, 7, (*CPU).ROR)

	op(0xE9, "SBC", Immediate, 2, 2, (*CPU).SBC)
	op(0xE5, "SBC", ZeroPage, 2, 3, (*CPU).SBC)
	op(0xF5, "SBC", ZeroPageX, 2, 4, (*CPU).SBC)
	op(0xED, "SBC", Absolute, 3, 4, (*CPU).SBC)
	op(0xFD, "SBC", AbsoluteX, 3, 4, (*CPU).SBC)
	op(0xF9, "SBC", AbsoluteY, 3, 4, (*CPU).SBC)
	op(0xE1, "SBC", IndirectX, 2, 6, (*CPU).SBC)
	op(0xF1, "SBC", IndirectY, 2, 5, (*CPU).SBC)

	op(0x85, "STA", ZeroPage, 2, 3, (*CPU).STA)
	op(0x95, "STA", ZeroPageX, 2, 4, (*CPU).STA)
	op(0x8D, "STA", Absolute, 3, 4, (*CPU).STA)
	op(0x9D, "STA", AbsoluteX, 3, 5, (*CPU).STA)
	op(0x99, "STA", AbsoluteY, 3, 5, (*CPU).STA)
	op(0x81, "STA", IndirectX, 2, 6, (*CPU).STA)
	op(0x91, "STA", IndirectY, 2, 6, (*CPU).STA)

	op(0x86, "STX", ZeroPage, 2, 3, (*CPU).STX)
	op(0x96, "STX", ZeroPageY, 2, 4, (*CPU).STX)
	op(0x8E, "STX", Absolute, 3, 4, (*CPU).STX)
	op(0x84, "STY", ZeroPage, 2, 3, (*CPU).STY)
	op(0x94, "STY", ZeroPageX, 2, 4, (*CPU).STY)
	op(0x8C, "STY", Absolute, 3, 4, (*CPU).STY)

	op(0xAA, "TAX", Implied, 1, 2, (*CPU).TAX)
	op(0xA8, "TAY", Implied, 1, 2, (*CPU).TAY)
	op(0xBA, "TSX", Implied, 1, 2, (*CPU).TSX)
	op(0x8A, "TXA", Implied, 1, 2, (*CPU).TXA)
	op(0x9A, "TXS", Implied, 1, 2, (*CPU).TXS)
	op(0x98, "TYA", Implied, 1, 2, (*CPU).TYA)

	op(0xEA, "NOP", Implied, 1, 2, (*CPU).NOP)

	// --- illegal / unofficial opcodes ---

	// LAX
	op(0xA7, "LAX", ZeroPage, 2, 3, (*CPU).LAX)
	op(0xB7, "LAX", ZeroPageY, 2, 4, (*CPU).LAX)
	op(0xAF, "LAX", Absolute, 3, 4, (*CPU).LAX)
	op(0xBF, "LAX", AbsoluteY, 3, 4, (*CPU).LAX)
	op(0xA3, "LAX", IndirectX, 2, 6, (*CPU).LAX)
	op(0xB3, "LAX", IndirectY, 2, 5, (*CPU).LAX)

	// SAX
	op(0x87, "SAX", ZeroPage, 2, 3, (*CPU).SAX)
	op(0x97, "SAX", ZeroPageY, 2, 4, (*CPU).SAX)
	op(0x8F, "SAX", Absolute, 3, 4, (*CPU).SAX)
	op(0x83, "SAX", IndirectX, 2, 6, (*CPU).SAX)

	// DCP
	op(0xC7, "DCP", ZeroPage, 2, 5, (*CPU).DCP)
	op(0xD7, "DCP", ZeroPageX, 2, 6, (*CPU).DCP)
	op(0xCF, "DCP", Absolute, 3, 6, (*CPU).DCP)
	op(0xDF, "DCP", AbsoluteX, 3, 7, (*CPU).DCP)
	op(0xDB, "DCP", AbsoluteY, 3, 7, (*CPU).DCP)
	op(0xC3, "DCP", IndirectX, 2, 8, (*CPU).DCP)
	op(0xD3, "DCP", IndirectY, 2, 8, (*CPU).DCP)

	// ISC/ISB
	op(0xE7, "ISC", ZeroPage, 2, 5, (*CPU).ISC)
	op(0xF7, "ISC", ZeroPageX, 2, 6, (*CPU).ISC)
	op(0xEF, "ISC", Absolute, 3, 6, (*CPU).ISC)
	op(0xFF, "ISC", AbsoluteX, 3, 7, (*CPU).ISC)
	op(0xFB, "ISC", AbsoluteY, 3, 7, (*CPU).ISC)
	op(0xE3, "ISC", IndirectX, 2, 8, (*CPU).ISC)
	op(0xF3, "ISC", IndirectY, 2, 8, (*CPU).ISC)

	// SLO
	op(0x07, "SLO", ZeroPage, 2, 5, (*CPU).SLO)
	op(0x17, "SLO", ZeroPageX, 2, 6, (*CPU).SLO)
	op(0x0F, "SLO", Absolute, 3, 6, (*CPU).SLO)
	op(0x1F, "SLO", AbsoluteX, 3, 7, (*CPU).SLO)
	op(0x1B, "SLO", AbsoluteY, 3, 7, (*CPU).SLO)
	op(0x03, "SLO", IndirectX, 2, 8, (*CPU).SLO)
	op(0x13, "SLO", IndirectY, 2, 8, (*CPU).SLO)

	// RLA
	op(0x27, "RLA", ZeroPage, 2, 5, (*CPU).RLA)
	op(0x37, "RLA", ZeroPageX, 2, 6, (*CPU).RLA)
	op(0x2F, "RLA", Absolute, 3, 6, (*CPU).RLA)
	op(0x3F, "RLA", AbsoluteX, 3, 7, (*CPU).RLA)
	op(0x3B, "RLA", AbsoluteY, 3, 7, (*CPU).RLA)
	op(0x23, "RLA", IndirectX, 2, 8, (*CPU).RLA)
	op(0x33, "RLA", IndirectY, 2, 8, (*CPU).RLA)

	// SRE
	op(0x47, "SRE", ZeroPage, 2, 5, (*CPU).SRE)
	op(0x57, "SRE", ZeroPageX, 2, 6, (*CPU).SRE)
	op(0x4F, "SRE", Absolute, 3, 6, (*CPU).SRE)
	op(0x5F, "SRE", AbsoluteX, 3, 7, (*CPU).SRE)
	op(0x5B, "SRE", AbsoluteY, 3, 7, (*CPU).SRE)
	op(0x43, "SRE", IndirectX, 2, 8, (*CPU).SRE)
	op(0x53, "SRE", IndirectY, 2, 8, (*CPU).SRE)

	// RRA
	op(0x67, "RRA", ZeroPage, 2, 5, (*CPU).RRA)
	op(0x77, "RRA", ZeroPageX, 2, 6, (*CPU).RRA)
	op(0x6F, "RRA", Absolute, 3, 6, (*CPU).RRA)
	op(0x7F, "RRA", AbsoluteX, 3, 7, (*CPU).RRA)
	op(0x7B, "RRA", AbsoluteY, 3, 7, (*CPU).RRA)
	op(0x63, "RRA", IndirectX, 2, 8, (*CPU).RRA)
	op(0x73, "RRA", IndirectY, 2, 8, (*CPU).RRA)

	// ANC, ALR, ARR, SBX
	op(0x0B, "ANC", Immediate, 2, 2, (*CPU).ANC)
	op(0x2B, "ANC", Immediate, 2, 2, (*CPU).ANC)
	op(0x4B, "ALR", Immediate, 2, 2, (*CPU).ALR)
	op(0x6B, "ARR", Immediate, 2, 2, (*CPU).ARR)
	op(0xCB, "SBX", Immediate, 2, 2, (*CPU).SBX)

	// SHA/SHX/SHY/TAS/LAS
	op(0x9F, "SHA", AbsoluteY, 3, 5, (*CPU).SHA)
	op(0x93, "SHA", IndirectY, 2, 6, (*CPU).SHA)
	op(0x9E, "SHX", AbsoluteY, 3, 5, (*CPU).SHX)
	op(0x9C, "SHY", AbsoluteX, 3, 5, (*CPU).SHY)
	op(0x9B, "TAS", AbsoluteY, 3, 5, (*CPU).TAS)
	op(0xBB, "LAS", AbsoluteY, 3, 4, (*CPU).LAS)

	// SKB (immediate NOPs) / IGN (NOPs that read and discard)
	for _, b := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(b, "SKB", Immediate, 2, 2, (*CPU).SKB)
	}
	for _, b := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(b, "NOP", Implied, 1, 2, (*CPU).NOP)
	}
	for _, b := range []byte{0x04, 0x44, 0x64} {
		op(b, "IGN", ZeroPage, 2, 3, (*CPU).IGN)
	}
	for _, b := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(b, "IGN", ZeroPageX, 2, 4, (*CPU).IGN)
	}
	op(0x0C, "IGN", Absolute, 3, 4, (*CPU).IGN)
	for _, b := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(b, "IGN", AbsoluteX, 3, 4, (*CPU).IGN)
	}
	op(0xEB, "SBC", Immediate, 2, 2, (*CPU).SBC) // undocumented duplicate of 0xE9

	// HLT/JAM: every byte not otherwise assigned above in this
	// family locks the CPU.
	for _, b := range []byte{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		op(b, "HLT", Implied, 1, 2, (*CPU).HLT)
	}
}
