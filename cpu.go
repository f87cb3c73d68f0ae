// cpu.go - fetch/decode/execute loop for the MOV, PUSH and POP opcode
// families.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// CPU composes the four leaf components (State, Memory, the address
// resolver in address.go, and this file's dispatch table) into the
// library surface a host program drives one Step() at a time.
type CPU struct {
	state *State
	mem   *Memory

	opcode byte
	ops    [256]func(*CPU) error
}

// New returns a CPU with a fresh State and a zeroed 1 MiB Memory, both
// satisfying the reset invariant.
func New() *CPU {
	c := &CPU{
		state: NewState(),
		mem:   NewMemory(),
	}
	c.initOps()
	return c
}

// Reset restores the reset invariant on the register file. Memory
// contents are left untouched, matching the donor's CPU_X86.Reset
// (which re-arms register/flag state but never clears the backing RAM).
func (c *CPU) Reset() {
	c.state.Reset()
}

// Load copies bytes into memory starting at physAddr.
func (c *CPU) Load(physAddr uint32, bytes []byte) {
	c.mem.Load(physAddr, bytes)
}

// ReadMem and WriteMem give the host direct, unwrapped-by-segment access
// to physical memory for inspection and fixture setup.
func (c *CPU) ReadMem(addr uint32) byte     { return c.mem.ReadByte(addr) }
func (c *CPU) WriteMem(addr uint32, v byte) { c.mem.WriteByte(addr, v) }

// State and StateMut expose the register file for host observation and
// test fixture setup.
func (c *CPU) State() *State    { return c.state }
func (c *CPU) StateMut() *State { return c.state }

// Dump renders the stable three-line diagnostic dump (see State.Dump).
func (c *CPU) Dump() string { return c.state.Dump() }

// -----------------------------------------------------------------------
// Fetch helpers
// -----------------------------------------------------------------------

// nextByte fetches the byte at CS:IP and advances IP by 1.
func (c *CPU) nextByte() byte {
	b := c.mem.ReadByte(phys(c.state.CS, c.state.IP))
	c.state.IP++
	return b
}

// nextWord fetches the little-endian word at CS:IP and advances IP by 2.
func (c *CPU) nextWord() uint16 {
	lo := c.nextByte()
	hi := c.nextByte()
	return uint16(lo) | uint16(hi)<<8
}

// -----------------------------------------------------------------------
// Operand helpers (built on the address resolver's Operand type)
// -----------------------------------------------------------------------

func (c *CPU) readOperandWord(op Operand) uint16 {
	if op.IsMemory() {
		return c.mem.ReadWord(phys(c.state.DS, op.Offset()))
	}
	return c.state.ReadWord(op.Reg())
}

func (c *CPU) writeOperandWord(op Operand, v uint16) {
	if op.IsMemory() {
		c.mem.WriteWord(phys(c.state.DS, op.Offset()), v)
		return
	}
	c.state.WriteWord(op.Reg(), v)
}

func (c *CPU) readOperandByte(op Operand) byte {
	if op.IsMemory() {
		return c.mem.ReadByte(phys(c.state.DS, op.Offset()))
	}
	return c.state.ReadByte(op.Reg())
}

func (c *CPU) writeOperandByte(op Operand, v byte) {
	if op.IsMemory() {
		c.mem.WriteByte(phys(c.state.DS, op.Offset()), v)
		return
	}
	c.state.WriteByte(op.Reg(), v)
}

// -----------------------------------------------------------------------
// Stack helpers
// -----------------------------------------------------------------------

// push16 predecrements SP by 2, then stores v little-endian at SS:SP.
func (c *CPU) push16(v uint16) {
	c.state.SP -= 2
	c.mem.WriteWord(phys(c.state.SS, c.state.SP), v)
}

// pop16 reads the word at SS:SP, then post-increments SP by 2.
func (c *CPU) pop16() uint16 {
	v := c.mem.ReadWord(phys(c.state.SS, c.state.SP))
	c.state.SP += 2
	return v
}

// -----------------------------------------------------------------------
// Step
// -----------------------------------------------------------------------

// Step executes exactly one instruction: fetch the opcode at CS:IP,
// advance IP, dispatch to the handler for the supported MOV/PUSH/POP
// families. An opcode outside the dispatch table returns
// UnsupportedOpcode; a malformed ModR/M sub-opcode returns
// InvalidEncoding. Neither fault is retried; IP has already moved past
// the faulting bytes by the time Step returns.
func (c *CPU) Step() error {
	c.opcode = c.nextByte()
	handler := c.ops[c.opcode]
	if handler == nil {
		return errUnsupportedOpcode(c.opcode)
	}
	return handler(c)
}

// initOps populates the 256-entry dispatch table. Single opcodes are
// wired directly; opcode families that only differ by an embedded
// register or segment index are wired via small per-index closures,
// mirroring the donor's initBaseOps.
func (c *CPU) initOps() {
	// MOV r/m <-> r: 0x88-0x8B.
	c.ops[0x88] = opMOV_rm_r
	c.ops[0x89] = opMOV_rm_r
	c.ops[0x8A] = opMOV_rm_r
	c.ops[0x8B] = opMOV_rm_r

	// MOV imm -> r/m: 0xC6, 0xC7.
	c.ops[0xC6] = opMOV_rm_imm
	c.ops[0xC7] = opMOV_rm_imm

	// MOV imm -> reg: 0xB0-0xBF.
	for i := byte(0); i < 8; i++ {
		idx := i
		c.ops[0xB0+idx] = func(c *CPU) error { return opMOV_reg_imm8(c, idx) }
		c.ops[0xB8+idx] = func(c *CPU) error { return opMOV_reg_imm16(c, idx) }
	}

	// MOV mem <-> accumulator: 0xA0-0xA3.
	c.ops[0xA0] = opMOV_AL_moffs
	c.ops[0xA1] = opMOV_AX_moffs
	c.ops[0xA2] = opMOV_moffs_AL
	c.ops[0xA3] = opMOV_moffs_AX

	// MOV sreg <-> r/m: 0x8C, 0x8E.
	c.ops[0x8C] = opMOV_rm_sreg
	c.ops[0x8E] = opMOV_sreg_rm

	// PUSH/POP reg: 0x50-0x5F.
	for i := byte(0); i < 8; i++ {
		idx := i
		c.ops[0x50+idx] = func(c *CPU) error { c.push16(c.state.ReadWord(idx)); return nil }
		c.ops[0x58+idx] = func(c *CPU) error { c.state.WriteWord(idx, c.pop16()); return nil }
	}

	// PUSH/POP sreg: 0x06/0x0E/0x16/0x1E and 0x07/0x0F/0x17/0x1F.
	segPushOpcodes := [4]byte{0x06, 0x0E, 0x16, 0x1E}
	segPopOpcodes := [4]byte{0x07, 0x0F, 0x17, 0x1F}
	for i := byte(0); i < 4; i++ {
		seg := i
		c.ops[segPushOpcodes[seg]] = func(c *CPU) error { c.push16(c.state.ReadSeg(seg)); return nil }
		c.ops[segPopOpcodes[seg]] = func(c *CPU) error { c.state.WriteSeg(seg, c.pop16()); return nil }
	}

	// PUSH r/m16 (0xFF /6) and POP r/m16 (0x8F /0).
	c.ops[0xFF] = opPUSH_rm16
	c.ops[0x8F] = opPOP_rm16
}
