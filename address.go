// address.go - segment:offset -> physical address, and ModR/M decoding
// into a tagged Register(code) | Memory(offset) operand.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// phys computes the 20-bit linear address for a segment:offset pair.
// Memory.ReadByte/WriteByte perform the final 20-bit wrap; this function
// only does the shift-and-add.
func phys(segVal, offset uint16) uint32 {
	return (uint32(segVal) << 4) + uint32(offset)
}

// Operand is the tagged result of a ModR/M decode: either a register
// reference or a 16-bit effective address within the current data
// segment. The zero value is Register(0).
type Operand struct {
	memory bool
	reg    byte
	offset uint16
}

// RegOperand builds a Register(code) operand.
func RegOperand(code byte) Operand { return Operand{reg: code & 7} }

// MemOperand builds a Memory(offset) operand.
func MemOperand(offset uint16) Operand { return Operand{memory: true, offset: offset} }

// IsMemory reports whether the operand names an effective address rather
// than a register.
func (o Operand) IsMemory() bool { return o.memory }

// Reg returns the register code; valid only when !IsMemory().
func (o Operand) Reg() byte { return o.reg }

// Offset returns the effective address; valid only when IsMemory().
func (o Operand) Offset() uint16 { return o.offset }

// effectiveAddressBase maps a ModR/M "rm" field (mod != 3) onto the base
// registers summed to form the effective address, per the canonical
// 8086 table. For the mod==0,rm==6 absolute-displacement special case
// the base is 0; the caller then adds the immediate disp16.
func (s *State) effectiveAddressBase(mode, rm byte) uint16 {
	switch rm {
	case 0:
		return s.BX + s.SI
	case 1:
		return s.BX + s.DI
	case 2:
		return s.BP + s.SI
	case 3:
		return s.BP + s.DI
	case 4:
		return s.SI
	case 5:
		return s.DI
	case 6:
		if mode == 0 {
			return 0
		}
		return s.BP
	default: // 7
		return s.BX
	}
}

// decodeModRM consumes one ModR/M byte (and any displacement bytes it
// implies) via the executor's IP-advancing fetch helpers, and returns
// the decoded operand together with the unmodified "middle" field.
func (c *CPU) decodeModRM() (Operand, byte) {
	b := c.nextByte()
	mode := b >> 6
	center := (b >> 3) & 7
	rm := b & 7

	if mode == 3 {
		return RegOperand(rm), center
	}

	base := c.state.effectiveAddressBase(mode, rm)
	var disp uint16
	switch {
	case mode == 0 && rm == 6:
		disp = c.nextWord()
	case mode == 0:
		disp = 0
	case mode == 1:
		disp = uint16(int16(int8(c.nextByte())))
	case mode == 2:
		disp = c.nextWord()
	}
	offset := base + disp
	return MemOperand(offset), center
}
