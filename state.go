// state.go - 8086 architectural state: general registers, segment
// registers, instruction pointer and flags.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

import "fmt"

// General-purpose register encodings, per the canonical 8086 "reg"/"r/m"
// field (mod==3 case) and the index into State.regs16.
const (
	RegAX = 0
	RegCX = 1
	RegDX = 2
	RegBX = 3
	RegSP = 4
	RegBP = 5
	RegSI = 6
	RegDI = 7
)

// Segment register encodings, the index into State.segs16.
const (
	SegES = 0
	SegCS = 1
	SegSS = 2
	SegDS = 3
)

// Byte register ("r8") encodings. Low two bits name the word register,
// bit 2 selects the high half.
const (
	RegAL = 0
	RegCL = 1
	RegDL = 2
	RegBL = 3
	RegAH = 4
	RegCH = 5
	RegDH = 6
	RegBH = 7
)

// State holds the full architectural register file. Word registers are
// kept as named fields, mirroring the donor CPU_X86's named EAX/EBX/...
// layout; a parallel pointer array gives the decoder O(1) indexed access
// the same way CPU_X86.regs32 does.
type State struct {
	AX, CX, DX, BX uint16
	SP, BP, SI, DI uint16

	ES, CS, SS, DS uint16

	IP    uint16
	Flags uint16

	regs16 [8]*uint16
	segs16 [4]*uint16
}

// NewState returns a State satisfying the 8086 reset invariant: all
// general registers zero, ES=SS=DS=0, CS=0xFFFF, IP=0, FLAGS=0. This
// models the reset vector at FFFF:0000.
func NewState() *State {
	s := &State{}
	s.bindPointers()
	s.Reset()
	return s
}

// bindPointers wires regs16/segs16 to the named fields. It must be called
// once per State allocation; callers never call it directly.
func (s *State) bindPointers() {
	s.regs16 = [8]*uint16{&s.AX, &s.CX, &s.DX, &s.BX, &s.SP, &s.BP, &s.SI, &s.DI}
	s.segs16 = [4]*uint16{&s.ES, &s.CS, &s.SS, &s.DS}
}

// Reset restores the reset invariant.
func (s *State) Reset() {
	s.AX, s.CX, s.DX, s.BX = 0, 0, 0, 0
	s.SP, s.BP, s.SI, s.DI = 0, 0, 0, 0
	s.ES, s.SS, s.DS = 0, 0, 0
	s.CS = 0xFFFF
	s.IP = 0
	s.Flags = 0
}

// ReadWord returns registers[reg] for a 3-bit register code.
func (s *State) ReadWord(reg byte) uint16 {
	return *s.regs16[reg&7]
}

// WriteWord sets registers[reg] for a 3-bit register code.
func (s *State) WriteWord(reg byte, v uint16) {
	*s.regs16[reg&7] = v
}

// ReadByte returns the byte-aliased view of an r8 code: word_idx = c&3,
// high = (c&4)!=0; value = (word[word_idx] >> (high?8:0)) & 0xFF.
func (s *State) ReadByte(r8 byte) byte {
	word := s.regs16[r8&3]
	if r8&4 != 0 {
		return byte(*word >> 8)
	}
	return byte(*word)
}

// WriteByte sets the byte-aliased view of an r8 code, preserving the
// other half of the word.
func (s *State) WriteByte(r8 byte, v byte) {
	word := s.regs16[r8&3]
	if r8&4 != 0 {
		*word = (*word &^ 0xFF00) | (uint16(v) << 8)
	} else {
		*word = (*word &^ 0x00FF) | uint16(v)
	}
}

// ReadSeg returns segments[s] for a 2-bit segment code.
func (s *State) ReadSeg(seg byte) uint16 {
	return *s.segs16[seg&3]
}

// WriteSeg sets segments[s] for a 2-bit segment code.
func (s *State) WriteSeg(seg byte, v uint16) {
	*s.segs16[seg&3] = v
}

// ReadIP returns the instruction pointer.
func (s *State) ReadIP() uint16 { return s.IP }

// WriteIP sets the instruction pointer.
func (s *State) WriteIP(v uint16) { s.IP = v }

// AdvanceIP advances IP by delta with 16-bit wrapping semantics.
func (s *State) AdvanceIP(delta uint16) { s.IP += delta }

// Dump renders the stable three-line register dump described by the
// library's external interface: uppercase 4-digit hex, one space around
// each "=".
func (s *State) Dump() string {
	return fmt.Sprintf(
		"ax = %04X bx = %04X cx = %04X dx = %04X\n"+
			"sp = %04X bp = %04X si = %04X di = %04X ip = %04X\n"+
			"es = %04X cs = %04X ss = %04X ds = %04X",
		s.AX, s.BX, s.CX, s.DX,
		s.SP, s.BP, s.SI, s.DI, s.IP,
		s.ES, s.CS, s.SS, s.DS,
	)
}
