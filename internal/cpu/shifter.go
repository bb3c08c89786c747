package cpu

import (
	"fmt"
	"math/bits"
)

// ShiftOp selects the barrel shifter operation.
type ShiftOp uint8

const (
	LSL ShiftOp = iota
	LSR
	ASR
	ROR
)

func (op ShiftOp) String() string {
	switch op {
	case LSL:
		return "lsl"
	case LSR:
		return "lsr"
	case ASR:
		return "asr"
	case ROR:
		return "ror"
	}
	return "?"
}

// Shift is how a register operand is shifted: ShiftByAmount or ShiftByRegister.
type Shift interface {
	ShiftOp() ShiftOp
	isShift()
}

// ShiftByAmount shifts by a literal 0-31. LSL #0 means no shift.
type ShiftByAmount struct {
	Amount uint8
	Op     ShiftOp
}

// ShiftByRegister shifts by the low byte of register Rs.
type ShiftByRegister struct {
	Rs int
	Op ShiftOp
}

func (s ShiftByAmount) ShiftOp() ShiftOp {
	return s.Op
}

func (s ShiftByRegister) ShiftOp() ShiftOp {
	return s.Op
}

func (ShiftByAmount) isShift() {}

func (ShiftByRegister) isShift() {}

// NoShift is the canonical unshifted register form.
var NoShift = ShiftByAmount{Amount: 0, Op: LSL}

// IsShift reports whether s changes its operand. Only LSL #0 does not.
func IsShift(s Shift) bool {
	if a, ok := s.(ShiftByAmount); ok {
		return !(a.Amount == 0 && a.Op == LSL)
	}
	return true
}

// ShifterOperand is operand2 of data-processing and MSR instructions:
// RotatedImmediate or ShiftedRegister.
type ShifterOperand interface {
	isShifterOperand()
}

// RotatedImmediate is an 8-bit value rotated right by twice Rotate.
type RotatedImmediate struct {
	Value  uint8
	Rotate uint8
}

// ShiftedRegister is register Rm passed through the barrel shifter.
type ShiftedRegister struct {
	Rm    int
	Shift Shift
}

func (RotatedImmediate) isShifterOperand() {}

func (ShiftedRegister) isShifterOperand() {}

func DecodeRotatedImmediate(value uint8, rotate uint8) uint32 {
	return bits.RotateLeft32(uint32(value), -2*int(rotate&0xF))
}

func (imm RotatedImmediate) Decode() uint32 {
	return DecodeRotatedImmediate(imm.Value, imm.Rotate)
}

// Offset is the offset of a single or halfword transfer:
// ImmediateOffset or RegisterOffset.
type Offset interface {
	isOffset()
}

// ImmediateOffset is already signed by the up/down bit.
type ImmediateOffset int32

// RegisterOffset is a shifted register added to or subtracted from the base.
type RegisterOffset struct {
	Rm    int
	Shift Shift
	Added bool
}

func (ImmediateOffset) isOffset() {}

func (RegisterOffset) isOffset() {}

// Apply runs value through the barrel shifter. byRegister selects the
// rules for an amount read from a register, where 0 leaves value and
// carry untouched and amounts of 32 and above are meaningful.
func (op ShiftOp) Apply(value uint32, amount uint32, carry bool, byRegister bool) (uint32, bool) {
	if byRegister {
		amount &= 0xFF
		if amount == 0 {
			return value, carry
		}
		switch op {
		case LSL:
			if amount < 32 {
				return value << amount, (value>>(32-amount))&1 != 0
			}
			if amount == 32 {
				return 0, value&1 != 0
			}
			return 0, false
		case LSR:
			if amount < 32 {
				return value >> amount, (value>>(amount-1))&1 != 0
			}
			if amount == 32 {
				return 0, value>>31 != 0
			}
			return 0, false
		case ASR:
			if amount < 32 {
				return uint32(int32(value) >> amount), (value>>(amount-1))&1 != 0
			}
			if value>>31 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		case ROR:
			amount &= 0x1F
			if amount == 0 {
				return value, value>>31 != 0
			}
			return RotateRight(value, uint(amount))
		}
		return value, carry
	}

	amount &= 0x1F
	switch op {
	case LSL:
		if amount == 0 {
			return value, carry
		}
		return value << amount, (value>>(32-amount))&1 != 0
	case LSR:
		if amount == 0 { // LSR #32
			return 0, value>>31 != 0
		}
		return value >> amount, (value>>(amount-1))&1 != 0
	case ASR:
		if amount == 0 { // ASR #32
			if value>>31 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		return uint32(int32(value) >> amount), (value>>(amount-1))&1 != 0
	case ROR:
		if amount == 0 { // RRX
			result := value >> 1
			if carry {
				result |= 1 << 31
			}
			return result, value&1 != 0
		}
		return RotateRight(value, uint(amount))
	}
	return value, carry
}

// RotateRight returns val rotated right and the last bit rotated out.
func RotateRight(val uint32, amount uint) (result uint32, carry bool) {
	amount &= 0x1F
	if amount == 0 {
		return val, (val & (1 << 31)) != 0
	}
	result = bits.RotateLeft32(val, -int(amount))
	carry = (val>>(amount-1))&1 != 0
	return
}

func shiftString(reg int, shift Shift) string {
	name := RegName(reg)
	if !IsShift(shift) {
		return name
	}
	switch s := shift.(type) {
	case ShiftByAmount:
		return fmt.Sprintf("%s, %s #%d", name, s.Op, s.Amount)
	case ShiftByRegister:
		return fmt.Sprintf("%s, %s %s", name, s.Op, RegName(s.Rs))
	}
	return name
}
