package cpu

import (
	"errors"
	"math/bits"
)

// ErrUndefinedEncoding is returned for a halfword transfer whose SH field
// names no transfer type.
var ErrUndefinedEncoding = errors.New("undefined instruction encoding")

const (
	RegSP = 13
	RegLR = 14
	RegPC = 15
)

var regNames = [16]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc",
}

func RegName(reg int) string {
	return regNames[reg&0xF]
}

type Format int

const (
	FormatUndefined Format = iota
	FormatBX
	FormatBranch
	FormatDataProcessing
	FormatLoadStore
	FormatBlockTransfer
	FormatMRS
	FormatMSRReg
	FormatMSRFlags
	FormatMultiply
	FormatMultiplyLong
	FormatHalfwordImm
	FormatHalfwordReg
	FormatSWI
	FormatSwap
)

func (f Format) String() string {
	switch f {
	case FormatBX:
		return "BX"
	case FormatBranch:
		return "B/BL"
	case FormatDataProcessing:
		return "DP"
	case FormatLoadStore:
		return "LDR/STR"
	case FormatBlockTransfer:
		return "LDM/STM"
	case FormatMRS:
		return "MRS"
	case FormatMSRReg:
		return "MSR"
	case FormatMSRFlags:
		return "MSR_f"
	case FormatMultiply:
		return "MUL/MLA"
	case FormatMultiplyLong:
		return "MULL/MLAL"
	case FormatHalfwordImm:
		return "LDR/STR HS imm"
	case FormatHalfwordReg:
		return "LDR/STR HS reg"
	case FormatSWI:
		return "SWI"
	case FormatSwap:
		return "SWP"
	}
	return "undefined"
}

// AluOp is the opcode field of a data-processing instruction.
type AluOp uint8

const (
	AND AluOp = iota
	EOR
	SUB
	RSB
	ADD
	ADC
	SBC
	RSC
	TST
	TEQ
	CMP
	CMN
	ORR
	MOV
	BIC
	MVN
)

var aluMnemonics = [16]string{
	"and", "eor", "sub", "rsb", "add", "adc", "sbc", "rsc",
	"tst", "teq", "cmp", "cmn", "orr", "mov", "bic", "mvn",
}

func (op AluOp) String() string {
	return aluMnemonics[op&0xF]
}

// IsCompare reports whether op only sets flags.
func (op AluOp) IsCompare() bool {
	return op >= TST && op <= CMN
}

// HalfwordType is the SH field of a halfword or signed transfer.
type HalfwordType uint8

const (
	HalfwordSwap HalfwordType = iota // not a transfer
	UnsignedHalfword
	SignedByte
	SignedHalfword
)

func (t HalfwordType) String() string {
	switch t {
	case UnsignedHalfword:
		return "h"
	case SignedHalfword:
		return "sh"
	case SignedByte:
		return "sb"
	}
	return "?"
}

// Instruction is a decoded ARM instruction. It is never modified after Decode.
type Instruction struct {
	Cond Cond
	// PC is the address the word was fetched from. Reads of r15 see PC+8.
	PC   uint32
	Word uint32
	Op   Operation
}

func (inst Instruction) Format() Format {
	return inst.Op.Format()
}

// Operation carries the fields of exactly one instruction format. Every
// format must be renderable and executable.
type Operation interface {
	Format() Format
	render(inst *Instruction) string
	exec(cpu *CPU, inst *Instruction)
}

type BranchExchange struct {
	Rn int
}

type Branch struct {
	Link bool
	// Offset is the sign-extended byte offset from PC+8.
	Offset int32
}

type DataProcessing struct {
	Opcode   AluOp
	SetFlags bool
	Rn       int
	Rd       int
	Operand2 ShifterOperand
}

type SingleTransfer struct {
	Load      bool
	Byte      bool
	PreIndex  bool
	WriteBack bool
	Rn        int
	Rd        int
	Offset    Offset
}

type BlockTransfer struct {
	Load      bool
	PreIndex  bool
	Up        bool
	PSR       bool // S bit: user bank transfer, or CPSR restore with r15 in a load
	WriteBack bool
	Rn        int
	Registers uint16
}

type MRS struct {
	SPSR bool
	Rd   int
}

type MSRRegister struct {
	SPSR bool
	// Fields is the c/x/s/f field mask from bits 16-19.
	Fields uint8
	Rm     int
}

// MSRFlags writes only the N, Z, C and V bits.
type MSRFlags struct {
	SPSR    bool
	Operand ShifterOperand
}

type Multiply struct {
	Accumulate bool
	SetFlags   bool
	Rd         int
	Rn         int
	Rs         int
	Rm         int
}

type MultiplyLong struct {
	Signed     bool
	Accumulate bool
	SetFlags   bool
	RdHi       int
	RdLo       int
	Rs         int
	Rm         int
}

type HalfwordTransfer struct {
	Load      bool
	PreIndex  bool
	WriteBack bool
	SH        HalfwordType
	Rn        int
	Rd        int
	Offset    Offset
}

type Swap struct {
	Byte bool
	Rn   int
	Rd   int
	Rm   int
}

type SoftwareInterrupt struct {
	Comment uint32
}

type Undefined struct{}

func (BranchExchange) Format() Format {
	return FormatBX
}

func (Branch) Format() Format {
	return FormatBranch
}

func (DataProcessing) Format() Format {
	return FormatDataProcessing
}

func (SingleTransfer) Format() Format {
	return FormatLoadStore
}

func (BlockTransfer) Format() Format {
	return FormatBlockTransfer
}

func (MRS) Format() Format {
	return FormatMRS
}

func (MSRRegister) Format() Format {
	return FormatMSRReg
}

func (MSRFlags) Format() Format {
	return FormatMSRFlags
}

func (Multiply) Format() Format {
	return FormatMultiply
}

func (MultiplyLong) Format() Format {
	return FormatMultiplyLong
}

func (Swap) Format() Format {
	return FormatSwap
}

func (SoftwareInterrupt) Format() Format {
	return FormatSWI
}

func (Undefined) Format() Format {
	return FormatUndefined
}

func (h HalfwordTransfer) Format() Format {
	if _, ok := h.Offset.(ImmediateOffset); ok {
		return FormatHalfwordImm
	}
	return FormatHalfwordReg
}

// Type returns the transfer type, or ErrUndefinedEncoding when SH is 0.
func (h HalfwordTransfer) Type() (HalfwordType, error) {
	if h.SH == HalfwordSwap || h.SH > SignedHalfword {
		return 0, ErrUndefinedEncoding
	}
	return h.SH, nil
}

// RegisterList returns the transferred registers in ascending order.
func (b BlockTransfer) RegisterList() []int {
	list := make([]int, 0, bits.OnesCount16(b.Registers))
	for i := 0; i < 16; i++ {
		if (b.Registers & (1 << i)) != 0 {
			list = append(list, i)
		}
	}
	return list
}
