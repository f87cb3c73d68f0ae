// cpu_ops.go - MOV, PUSH and POP opcode bodies.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// =============================================================================
// MOV instructions
// =============================================================================

// opMOV_rm_r handles 0x88-0x8B: register/memory to/from register.
// w = op&1 selects byte (0) vs word (1); d = op&2 selects direction
// (0: dst=r/m, 1: dst=reg).
func opMOV_rm_r(c *CPU) error {
	w := c.opcode&1 != 0
	d := c.opcode&2 != 0
	rm, reg := c.decodeModRM()
	regOp := RegOperand(reg)

	if w {
		if d {
			c.writeOperandWord(regOp, c.readOperandWord(rm))
		} else {
			c.writeOperandWord(rm, c.readOperandWord(regOp))
		}
	} else {
		if d {
			c.writeOperandByte(regOp, c.readOperandByte(rm))
		} else {
			c.writeOperandByte(rm, c.readOperandByte(regOp))
		}
	}
	return nil
}

// opMOV_rm_imm handles 0xC6/0xC7: immediate to register/memory. The
// middle field of the ModR/M byte is a sub-opcode selector that must be
// zero for this family; the literal reference source never checks this,
// this implementation does.
func opMOV_rm_imm(c *CPU) error {
	w := c.opcode&1 != 0
	rm, center := c.decodeModRM()
	if center != 0 {
		return errInvalidEncoding("MOV r/m, imm: middle field must be 0")
	}
	// Effective address must be resolved before the immediate is
	// fetched: displacement bytes precede the immediate in the encoding
	// ([opcode][ModR/M][displacement][immediate]), and decodeModRM
	// already consumed the displacement above.
	if w {
		c.writeOperandWord(rm, c.nextWord())
	} else {
		c.writeOperandByte(rm, c.nextByte())
	}
	return nil
}

// opMOV_reg_imm8 handles 0xB0-0xB7: immediate byte to byte register.
func opMOV_reg_imm8(c *CPU, reg byte) error {
	c.state.WriteByte(reg, c.nextByte())
	return nil
}

// opMOV_reg_imm16 handles 0xB8-0xBF: immediate word to word register.
func opMOV_reg_imm16(c *CPU, reg byte) error {
	c.state.WriteWord(reg, c.nextWord())
	return nil
}

// opMOV_AL_moffs handles 0xA0: AL <- [DS:moffs16].
func opMOV_AL_moffs(c *CPU) error {
	offset := c.nextWord()
	c.state.WriteByte(RegAL, c.mem.ReadByte(phys(c.state.DS, offset)))
	return nil
}

// opMOV_AX_moffs handles 0xA1: AX <- [DS:moffs16].
func opMOV_AX_moffs(c *CPU) error {
	offset := c.nextWord()
	c.state.WriteWord(RegAX, c.mem.ReadWord(phys(c.state.DS, offset)))
	return nil
}

// opMOV_moffs_AL handles 0xA2: [DS:moffs16] <- AL.
func opMOV_moffs_AL(c *CPU) error {
	offset := c.nextWord()
	c.mem.WriteByte(phys(c.state.DS, offset), c.state.ReadByte(RegAL))
	return nil
}

// opMOV_moffs_AX handles 0xA3: [DS:moffs16] <- AX.
func opMOV_moffs_AX(c *CPU) error {
	offset := c.nextWord()
	c.mem.WriteWord(phys(c.state.DS, offset), c.state.ReadWord(RegAX))
	return nil
}

// opMOV_rm_sreg handles 0x8C: r/m16 <- sreg. The middle field is a 2-bit
// segment code; the top bit of the raw 3-bit field must be zero (use
// "& 3", not the "& 4" masking bug the reference source carries in one
// revision). A set top bit is undefined on the real CPU and is a decode
// error here.
func opMOV_rm_sreg(c *CPU) error {
	rm, center := c.decodeModRM()
	if center&4 != 0 {
		return errInvalidEncoding("MOV r/m, sreg: reserved middle-field bit set")
	}
	sreg := center & 3
	c.writeOperandWord(rm, c.state.ReadSeg(sreg))
	return nil
}

// opMOV_sreg_rm handles 0x8E: sreg <- r/m16.
func opMOV_sreg_rm(c *CPU) error {
	rm, center := c.decodeModRM()
	if center&4 != 0 {
		return errInvalidEncoding("MOV sreg, r/m: reserved middle-field bit set")
	}
	sreg := center & 3
	c.state.WriteSeg(sreg, c.readOperandWord(rm))
	return nil
}

// =============================================================================
// PUSH/POP instructions
// =============================================================================

// opPUSH_rm16 handles 0xFF /6: PUSH r/m16. The group opcode 0xFF also
// hosts INC/DEC/CALL/JMP/PUSH on the full x86; only the PUSH sub-opcode
// is in scope here, so any other middle-field value is InvalidEncoding.
func opPUSH_rm16(c *CPU) error {
	rm, center := c.decodeModRM()
	if center != 6 {
		return errInvalidEncoding("0xFF: only /6 (PUSH r/m16) is supported")
	}
	c.push16(c.readOperandWord(rm))
	return nil
}

// opPOP_rm16 handles 0x8F /0: POP r/m16.
func opPOP_rm16(c *CPU) error {
	rm, center := c.decodeModRM()
	if center != 0 {
		return errInvalidEncoding("0x8F: only /0 (POP r/m16) is supported")
	}
	c.writeOperandWord(rm, c.pop16())
	return nil
}
