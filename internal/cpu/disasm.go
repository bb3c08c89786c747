package cpu

import (
	"fmt"
	"strings"
)

// String renders the instruction as "mnemonic\toperands", with comments
// introduced by "; ".
func (inst Instruction) String() string {
	return inst.Op.render(&inst)
}

func setFlagsMark(s bool) string {
	if s {
		return "s"
	}
	return ""
}

func writeBackMark(w bool) string {
	if w {
		return "!"
	}
	return ""
}

func psrName(spsr bool) string {
	if spsr {
		return "SPSR"
	}
	return "CPSR"
}

func loadStoreMnemonic(load bool) string {
	if load {
		return "ldr"
	}
	return "str"
}

// operand2String renders operand2 and, for an immediate, its decoded value.
func operand2String(op ShifterOperand) (string, uint32, bool) {
	switch op := op.(type) {
	case RotatedImmediate:
		value := op.Decode()
		return fmt.Sprintf("#%d\t; %#x", value, value), value, true
	case ShiftedRegister:
		return shiftString(op.Rm, op.Shift), 0, false
	}
	return "", 0, false
}

// addressString renders "[Rn, offset]" or "[Rn], offset". An immediate
// offset gets a comment with its value, or with the effective address when
// the base is the pipelined PC.
func addressString(inst *Instruction, rn int, preIndex, writeBack bool, offset Offset) string {
	var ofs, comment string
	switch o := offset.(type) {
	case ImmediateOffset:
		value := uint32(o)
		if rn == RegPC {
			value += inst.PC + 8
		}
		ofs = fmt.Sprintf("#%d", int32(o))
		comment = fmt.Sprintf("\t; %#x", value)
	case RegisterOffset:
		sign := "-"
		if o.Added {
			sign = ""
		}
		ofs = sign + shiftString(o.Rm, o.Shift)
	}

	if preIndex {
		return fmt.Sprintf("[%s, %s]%s%s", RegName(rn), ofs, writeBackMark(writeBack), comment)
	}
	return fmt.Sprintf("[%s], %s%s", RegName(rn), ofs, comment)
}

func (op BranchExchange) render(inst *Instruction) string {
	return fmt.Sprintf("bx%s\t%s", inst.Cond, RegName(op.Rn))
}

func (op Branch) render(inst *Instruction) string {
	link := ""
	if op.Link {
		link = "l"
	}
	return fmt.Sprintf("b%s%s\t%#x", link, inst.Cond, inst.PC+8+uint32(op.Offset))
}

func (op DataProcessing) render(inst *Instruction) string {
	operand2, _, _ := operand2String(op.Operand2)
	switch {
	case op.Opcode == MOV || op.Opcode == MVN:
		return fmt.Sprintf("%s%s%s\t%s, %s", op.Opcode, setFlagsMark(op.SetFlags), inst.Cond,
			RegName(op.Rd), operand2)
	case op.Opcode.IsCompare():
		return fmt.Sprintf("%s%s\t%s, %s", op.Opcode, inst.Cond, RegName(op.Rn), operand2)
	}
	return fmt.Sprintf("%s%s%s\t%s, %s, %s", op.Opcode, setFlagsMark(op.SetFlags), inst.Cond,
		RegName(op.Rd), RegName(op.Rn), operand2)
}

func (op SingleTransfer) render(inst *Instruction) string {
	b := ""
	if op.Byte {
		b = "b"
	}
	t := ""
	if !op.PreIndex && op.WriteBack {
		t = "t"
	}
	return fmt.Sprintf("%s%s%s%s\t%s, %s", loadStoreMnemonic(op.Load), b, t, inst.Cond,
		RegName(op.Rd), addressString(inst, op.Rn, op.PreIndex, op.WriteBack, op.Offset))
}

func (op BlockTransfer) render(inst *Instruction) string {
	var sb strings.Builder
	if op.Load {
		sb.WriteString("ldm")
	} else {
		sb.WriteString("stm")
	}
	if op.Up {
		sb.WriteByte('i')
	} else {
		sb.WriteByte('d')
	}
	if op.PreIndex {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('a')
	}
	fmt.Fprintf(&sb, "%s\t%s%s, {", inst.Cond, RegName(op.Rn), writeBackMark(op.WriteBack))
	for i, r := range op.RegisterList() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(RegName(r))
	}
	sb.WriteByte('}')
	if op.PSR {
		sb.WriteByte('^')
	}
	return sb.String()
}

func (op MRS) render(inst *Instruction) string {
	return fmt.Sprintf("mrs%s\t%s, %s", inst.Cond, RegName(op.Rd), psrName(op.SPSR))
}

func (op MSRRegister) render(inst *Instruction) string {
	return fmt.Sprintf("msr%s\t%s, %s", inst.Cond, psrName(op.SPSR), RegName(op.Rm))
}

func (op MSRFlags) render(inst *Instruction) string {
	operand, value, isImm := operand2String(op.Operand)
	s := fmt.Sprintf("msr%s\t%s_f, %s", inst.Cond, psrName(op.SPSR), operand)
	if isImm {
		f := FlagsFromPSR(value & 0xF0000000)
		s += fmt.Sprintf("\t; N=%t Z=%t C=%t V=%t", f.N, f.Z, f.C, f.V)
	}
	return s
}

func (op Multiply) render(inst *Instruction) string {
	if op.Accumulate {
		return fmt.Sprintf("mla%s%s\t%s, %s, %s, %s", setFlagsMark(op.SetFlags), inst.Cond,
			RegName(op.Rd), RegName(op.Rm), RegName(op.Rs), RegName(op.Rn))
	}
	return fmt.Sprintf("mul%s%s\t%s, %s, %s", setFlagsMark(op.SetFlags), inst.Cond,
		RegName(op.Rd), RegName(op.Rm), RegName(op.Rs))
}

func (op MultiplyLong) render(inst *Instruction) string {
	sign := "u"
	if op.Signed {
		sign = "s"
	}
	mnem := "mull"
	if op.Accumulate {
		mnem = "mlal"
	}
	return fmt.Sprintf("%s%s%s%s\t%s, %s, %s, %s", sign, mnem, setFlagsMark(op.SetFlags), inst.Cond,
		RegName(op.RdLo), RegName(op.RdHi), RegName(op.Rm), RegName(op.Rs))
}

func (op HalfwordTransfer) render(inst *Instruction) string {
	typ, err := op.Type()
	if err != nil {
		return "<undefined>"
	}
	return fmt.Sprintf("%s%s%s\t%s, %s", loadStoreMnemonic(op.Load), typ, inst.Cond,
		RegName(op.Rd), addressString(inst, op.Rn, op.PreIndex, op.WriteBack, op.Offset))
}

func (op Swap) render(inst *Instruction) string {
	b := ""
	if op.Byte {
		b = "b"
	}
	return fmt.Sprintf("swp%s%s\t%s, %s, [%s]", b, inst.Cond, RegName(op.Rd), RegName(op.Rm), RegName(op.Rn))
}

func (op SoftwareInterrupt) render(inst *Instruction) string {
	return fmt.Sprintf("swi%s\t#%#x", inst.Cond, op.Comment)
}

func (Undefined) render(*Instruction) string {
	return "<undefined>"
}
