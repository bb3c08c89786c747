package cpu

import "math/bits"

func addWithCarry(a, b uint32, carryIn bool) (result uint32, carry, overflow bool) {
	sum := uint64(a) + uint64(b)
	if carryIn {
		sum++
	}
	result = uint32(sum)
	carry = sum > 0xFFFFFFFF
	overflow = ((a^result)&(b^result))>>31 != 0
	return
}

// shifterOperand evaluates operand2 and its shifter carry-out.
func (cpu *CPU) shifterOperand(op ShifterOperand) (value uint32, carry bool, byRegister bool) {
	oldCarry := cpu.Flags().C
	switch op := op.(type) {
	case RotatedImmediate:
		value = op.Decode()
		if op.Rotate == 0 {
			return value, oldCarry, false
		}
		return value, value>>31 != 0, false
	case ShiftedRegister:
		RmVal := cpu.ReadReg(op.Rm)
		switch s := op.Shift.(type) {
		case ShiftByAmount:
			value, carry = s.Op.Apply(RmVal, uint32(s.Amount), oldCarry, false)
			return value, carry, false
		case ShiftByRegister:
			if op.Rm == RegPC {
				RmVal += 4
			}
			cpu.step++ // internal cycle
			value, carry = s.Op.Apply(RmVal, cpu.ReadReg(s.Rs), oldCarry, true)
			return value, carry, true
		}
	}
	return 0, oldCarry, false
}

// offsetDelta returns the signed amount an offset adds to the base.
func (cpu *CPU) offsetDelta(offset Offset) uint32 {
	switch o := offset.(type) {
	case ImmediateOffset:
		return uint32(int32(o))
	case RegisterOffset:
		var value uint32
		switch s := o.Shift.(type) {
		case ShiftByAmount:
			value, _ = s.Op.Apply(cpu.ReadReg(o.Rm), uint32(s.Amount), cpu.Flags().C, false)
		case ShiftByRegister:
			value, _ = s.Op.Apply(cpu.ReadReg(o.Rm), cpu.ReadReg(s.Rs), cpu.Flags().C, true)
		}
		if o.Added {
			return value
		}
		return -value
	}
	return 0
}

func (op BranchExchange) exec(cpu *CPU, _ *Instruction) {
	val := cpu.ReadReg(op.Rn)
	isThumb := (val & 1) != 0
	if isThumb {
		cpu.CPSR |= BitT
		cpu.WriteReg(15, val&0xFFFFFFFE)
	} else {
		cpu.CPSR &= ^BitT
		cpu.WriteReg(15, val)
	}
}

func (op Branch) exec(cpu *CPU, _ *Instruction) {
	pc := cpu.ReadReg(15) // PC+8
	if op.Link {
		cpu.WriteReg(14, pc-4) // PC+4
	}
	cpu.WriteReg(15, pc+uint32(op.Offset))
}

func (op DataProcessing) exec(cpu *CPU, _ *Instruction) {
	operand1 := cpu.ReadReg(op.Rn)
	operand2, shiftCarry, byRegister := cpu.shifterOperand(op.Operand2)
	if byRegister && op.Rn == RegPC {
		operand1 += 4
	}
	c := cpu.Flags().C

	var result uint32
	var carry, overflow bool
	logical := false
	switch op.Opcode {
	case AND, TST:
		result, logical = operand1&operand2, true
	case EOR, TEQ:
		result, logical = operand1^operand2, true
	case SUB, CMP:
		result, carry, overflow = addWithCarry(operand1, ^operand2, true)
	case RSB:
		result, carry, overflow = addWithCarry(operand2, ^operand1, true)
	case ADD, CMN:
		result, carry, overflow = addWithCarry(operand1, operand2, false)
	case ADC:
		result, carry, overflow = addWithCarry(operand1, operand2, c)
	case SBC:
		result, carry, overflow = addWithCarry(operand1, ^operand2, c)
	case RSC:
		result, carry, overflow = addWithCarry(operand2, ^operand1, c)
	case ORR:
		result, logical = operand1|operand2, true
	case MOV:
		result, logical = operand2, true
	case BIC:
		result, logical = operand1 & ^operand2, true
	case MVN:
		result, logical = ^operand2, true
	}

	if !op.Opcode.IsCompare() {
		cpu.WriteReg(op.Rd, result)
	}

	if op.SetFlags && op.Rd == RegPC {
		cpu.CPSR = cpu.ReadSPSR(cpu.Mode())
		return
	}
	if op.SetFlags || op.Opcode.IsCompare() {
		if logical {
			cpu.UpdateLogicalFlags(result, shiftCarry)
		} else {
			cpu.UpdateArithmeticFlags(result, carry, overflow)
		}
	}
}

func (op SingleTransfer) exec(cpu *CPU, _ *Instruction) {
	delta := cpu.offsetDelta(op.Offset)

	RnVal := cpu.ReadReg(op.Rn)
	addr := RnVal
	if op.PreIndex {
		addr += delta
	}
	RdVal := cpu.ReadReg(op.Rd)
	if op.Rd == RegPC {
		RdVal += 4
	}

	if op.WriteBack || !op.PreIndex {
		cpu.WriteReg(op.Rn, RnVal+delta)
	}

	if op.Load {
		cpu.step++ // internal cycle
		if op.Byte {
			cpu.WriteReg(op.Rd, uint32(cpu.read8(addr)))
		} else {
			val, _ := RotateRight(cpu.read32(addr&0xFFFFFFFC), uint(addr&0x3)*8)
			cpu.WriteReg(op.Rd, val)
		}
	} else {
		if op.Byte {
			cpu.write8(addr, byte(RdVal&0xFF))
		} else {
			cpu.write32(addr&0xFFFFFFFC, RdVal)
		}
	}
}

func (op HalfwordTransfer) exec(cpu *CPU, _ *Instruction) {
	typ, err := op.Type()
	if err != nil || (!op.Load && typ != UnsignedHalfword) {
		cpu.HandleException(ExceptUndefined)
		return
	}
	delta := cpu.offsetDelta(op.Offset)

	RnVal := cpu.ReadReg(op.Rn)
	addr := RnVal
	if op.PreIndex {
		addr += delta
	}
	RdVal := cpu.ReadReg(op.Rd)
	if op.Rd == RegPC {
		RdVal += 4
	}

	if op.WriteBack || !op.PreIndex {
		cpu.WriteReg(op.Rn, RnVal+delta)
	}

	if !op.Load {
		cpu.write16(addr&0xFFFFFFFE, uint16(RdVal&0xFFFF))
		return
	}

	cpu.step++ // internal cycle
	var val uint32
	switch typ {
	case UnsignedHalfword:
		val = uint32(cpu.read16(addr & 0xFFFFFFFE))
		if (addr & 0x1) != 0 {
			val, _ = RotateRight(val, 8)
		}
	case SignedByte:
		val = uint32(int32(int8(cpu.read8(addr))))
	case SignedHalfword:
		val = uint32(cpu.read16(addr & 0xFFFFFFFE))
		if (addr & 0x1) != 0 {
			val = uint32(int32(int8(val >> 8)))
		} else {
			val = uint32(int32(int16(val)))
		}
	}
	cpu.WriteReg(op.Rd, val)
}

func (op BlockTransfer) exec(cpu *CPU, _ *Instruction) {
	Rn := op.Rn
	Rlist := uint32(op.Registers)

	if Rlist == 0 {
		RnVal := cpu.ReadReg(Rn)
		var addr uint32
		if op.Up {
			if op.PreIndex {
				addr = RnVal + 0x4
			} else {
				addr = RnVal
			}
		} else {
			if op.PreIndex {
				addr = RnVal - 0x40
			} else {
				addr = RnVal - 0x3C
			}
		}
		if op.Load {
			cpu.WriteReg(15, cpu.read32(addr))
		} else {
			cpu.write32(addr, cpu.ReadReg(15)+4)
		}
		if op.WriteBack {
			if op.Up {
				cpu.WriteReg(Rn, RnVal+0x40)
			} else {
				cpu.WriteReg(Rn, RnVal-0x40)
			}
		}
		return
	}

	firstReg := bits.TrailingZeros32(Rlist)
	count := uint32(bits.OnesCount32(Rlist))
	RnVal := cpu.ReadReg(Rn)
	var addr uint32
	if op.Up { // up
		if op.PreIndex { // pre
			addr = RnVal + 4
		} else {
			addr = RnVal
		}
	} else {
		if op.PreIndex {
			addr = RnVal - 4*count
		} else {
			addr = RnVal - 4*(count-1)
		}
	}

	newBase := RnVal - 4*count
	if op.Up {
		newBase = RnVal + 4*count
	}
	if op.WriteBack && (op.Load || firstReg != Rn) {
		cpu.WriteReg(Rn, newBase)
	}

	// With r15 in a load list the S bit restores CPSR instead of
	// selecting the user bank.
	loadsPC := op.Load && (Rlist&(1<<15)) != 0
	userBank := op.PSR && !loadsPC

	for i := 0; i < 16; i++ {
		if (Rlist & (1 << i)) == 0 {
			continue
		}
		if op.Load { // load
			val := cpu.read32(addr)
			if userBank {
				cpu.WriteUserReg(i, val)
			} else {
				cpu.WriteReg(i, val)
			}
		} else { // store
			var val uint32
			if userBank {
				val = cpu.ReadUserReg(i)
			} else {
				val = cpu.ReadReg(i)
			}
			if i == 15 {
				val += 4
			}
			cpu.write32(addr, val)
		}
		addr += 4
	}

	if op.Load {
		cpu.step++ // internal cycle
		if loadsPC && op.PSR {
			cpu.CPSR = cpu.ReadSPSR(cpu.Mode())
		}
	}

	if op.WriteBack && (!op.Load && firstReg == Rn) {
		cpu.WriteReg(Rn, newBase)
	}
}

func (op MRS) exec(cpu *CPU, _ *Instruction) {
	psr := cpu.CPSR
	if op.SPSR {
		psr = cpu.ReadSPSR(cpu.Mode())
	}
	cpu.WriteReg(op.Rd, psr)
}

func (cpu *CPU) writePSR(spsr bool, val uint32, mask uint32) {
	if spsr {
		mode := cpu.Mode()
		cpu.WriteSPSR(mode, (cpu.ReadSPSR(mode) & ^mask)|(val&mask))
		return
	}
	if cpu.Mode() == ModeUSR {
		mask &= 0xFF000000
	}
	cpu.CPSR = (cpu.CPSR & ^mask) | (val & mask)
}

func (op MSRRegister) exec(cpu *CPU, _ *Instruction) {
	var mask uint32
	if (op.Fields & 0b1000) != 0 {
		mask |= 0xFF000000 // flags field
	}
	if (op.Fields & 0b0100) != 0 {
		mask |= 0x00FF0000 // status field
	}
	if (op.Fields & 0b0010) != 0 {
		mask |= 0x0000FF00 // extension field
	}
	if (op.Fields & 0b0001) != 0 {
		mask |= 0x000000FF // control field
	}
	cpu.writePSR(op.SPSR, cpu.ReadReg(op.Rm), mask)
}

func (op MSRFlags) exec(cpu *CPU, _ *Instruction) {
	var val uint32
	switch o := op.Operand.(type) {
	case RotatedImmediate:
		val = o.Decode()
	case ShiftedRegister:
		val = cpu.ReadReg(o.Rm)
	}
	cpu.writePSR(op.SPSR, val, BitN|BitZ|BitC|BitV)
}

// multiplierCycles is the number of internal cycles the multiplier array
// needs for the value of Rs.
func multiplierCycles(rs uint32, signed bool) int {
	for m, mask := range [3]uint32{0xFFFFFF00, 0xFFFF0000, 0xFF000000} {
		if rs&mask == 0 || (signed && rs&mask == mask) {
			return m + 1
		}
	}
	return 4
}

func (op Multiply) exec(cpu *CPU, _ *Instruction) {
	RsVal := cpu.ReadReg(op.Rs)
	result := cpu.ReadReg(op.Rm) * RsVal
	cpu.step += multiplierCycles(RsVal, true)
	if op.Accumulate {
		result += cpu.ReadReg(op.Rn)
		cpu.step++
	}
	cpu.WriteReg(op.Rd, result)
	if op.SetFlags {
		f := cpu.Flags()
		f.N = (result >> 31) != 0
		f.Z = result == 0
		cpu.SetFlags(f)
	}
}

func (op MultiplyLong) exec(cpu *CPU, _ *Instruction) {
	RmVal := cpu.ReadReg(op.Rm)
	RsVal := cpu.ReadReg(op.Rs)
	var result uint64
	if op.Signed {
		result = uint64(int64(int32(RmVal)) * int64(int32(RsVal)))
	} else {
		result = uint64(RmVal) * uint64(RsVal)
	}
	cpu.step += multiplierCycles(RsVal, op.Signed) + 1
	if op.Accumulate {
		result += uint64(cpu.ReadReg(op.RdHi))<<32 | uint64(cpu.ReadReg(op.RdLo))
		cpu.step++
	}
	hi := uint32(result >> 32)
	lo := uint32(result & 0xFFFFFFFF)
	cpu.WriteReg(op.RdLo, lo)
	cpu.WriteReg(op.RdHi, hi)
	if op.SetFlags {
		f := cpu.Flags()
		f.N = (hi >> 31) != 0
		f.Z = result == 0
		cpu.SetFlags(f)
	}
}

func (op Swap) exec(cpu *CPU, _ *Instruction) {
	addr := cpu.ReadReg(op.Rn)
	RmVal := cpu.ReadReg(op.Rm)
	var memVal uint32
	if op.Byte {
		memVal = uint32(cpu.read8(addr))
		cpu.write8(addr, byte(RmVal&0xFF))
	} else {
		memVal, _ = RotateRight(cpu.read32(addr&0xFFFFFFFC), uint(addr&0x3)*8)
		cpu.write32(addr&0xFFFFFFFC, RmVal)
	}
	cpu.step++ // internal cycle
	cpu.WriteReg(op.Rd, memVal)
}

func (SoftwareInterrupt) exec(cpu *CPU, _ *Instruction) {
	cpu.HandleException(ExceptSoftwareInterrupt)
}

func (Undefined) exec(cpu *CPU, _ *Instruction) {
	cpu.HandleException(ExceptUndefined)
}
