package cpu

func IsBranchExchange(opcode uint32) bool {
	const branchExchangeFormat = 0b0000_0001_0010_1111_1111_1111_0001_0000
	const formatMask = 0b0000_1111_1111_1111_1111_1111_1111_0000
	return (opcode & formatMask) == branchExchangeFormat
}

func IsBlockDataTransfer(opcode uint32) bool {
	const blockDataTransferFormat = 0b0000_1000_0000_0000_0000_0000_0000_0000
	const formatMask = 0b0000_1110_0000_0000_0000_0000_0000_0000
	return (opcode & formatMask) == blockDataTransferFormat
}

func IsBranchAndBranchWithLink(opcode uint32) bool {
	const branchFormat = 0b0000_1010_0000_0000_0000_0000_0000_0000
	const formatMask = 0b0000_1110_0000_0000_0000_0000_0000_0000
	return (opcode & formatMask) == branchFormat
}

func IsSoftwareInterrupt(opcode uint32) bool {
	const softwareInterruptFormat = 0b0000_1111_0000_0000_0000_0000_0000_0000
	const formatMask = 0b0000_1111_0000_0000_0000_0000_0000_0000
	return (opcode & formatMask) == softwareInterruptFormat
}

func IsUndefined(opcode uint32) bool {
	const undefinedFormat = 0b0000_0110_0000_0000_0000_0000_0001_0000
	const formatMask = 0b0000_1110_0000_0000_0000_0000_0001_0000
	return (opcode & formatMask) == undefinedFormat
}

func IsSingleDataTransfer(opcode uint32) bool {
	const singleDataTransferFormat = 0b0000_0100_0000_0000_0000_0000_0000_0000
	const formatMask = 0b0000_1100_0000_0000_0000_0000_0000_0000
	return (opcode & formatMask) == singleDataTransferFormat
}

func IsSingleDataSwap(opcode uint32) bool {
	const singleDataSwapFormat = 0b0000_0001_0000_0000_0000_0000_1001_0000
	const formatMask = 0b0000_1111_1011_0000_0000_1111_1111_0000
	return (opcode & formatMask) == singleDataSwapFormat
}

func IsMultiply(opcode uint32) bool {
	const multiplyFormat = 0b0000_0000_0000_0000_0000_0000_1001_0000
	const formatMask = 0b0000_1111_1100_0000_0000_0000_1111_0000
	return (opcode & formatMask) == multiplyFormat
}

func IsMultiplyLong(opcode uint32) bool {
	const multiplyLongFormat = 0b0000_0000_1000_0000_0000_0000_1001_0000
	const formatMask = 0b0000_1111_1000_0000_0000_0000_1111_0000
	return (opcode & formatMask) == multiplyLongFormat
}

func IsHalfwordDataTransferRegister(opcode uint32) bool {
	const halfwordDataTransferRegisterFormat = 0b0000_0000_0000_0000_0000_0000_1001_0000
	const formatMask = 0b0000_1110_0100_0000_0000_1111_1001_0000
	return (opcode & formatMask) == halfwordDataTransferRegisterFormat
}

func IsHalfwordDataTransferImmediate(opcode uint32) bool {
	const halfwordDataTransferImmediateFormat = 0b0000_0000_0100_0000_0000_0000_1001_0000
	const formatMask = 0b0000_1110_0100_0000_0000_0000_1001_0000
	return (opcode & formatMask) == halfwordDataTransferImmediateFormat
}

func IsPSRTransferMRS(opcode uint32) bool {
	const mrsFormat = 0b0000_0001_0000_1111_0000_0000_0000_0000
	const formatMask = 0b0000_1111_1011_1111_0000_0000_0000_0000
	return (opcode & formatMask) == mrsFormat
}

func IsPSRTransferMSR(opcode uint32) bool {
	const msrFormat = 0b0000_0001_0010_0000_1111_0000_0000_0000
	const formatMask = 0b0000_1101_1011_0000_1111_0000_0000_0000
	return (opcode & formatMask) == msrFormat
}

func IsDataProcessing(opcode uint32) bool {
	const dataProcessingFormat = 0b0000_0000_0000_0000_0000_0000_0000_0000
	const formatMask = 0b0000_1100_0000_0000_0000_0000_0000_0000
	return (opcode & formatMask) == dataProcessingFormat
}

func bit(opcode uint32, n uint) bool {
	return (opcode & (1 << n)) != 0
}

func reg(opcode uint32, lsb uint) int {
	return int((opcode >> lsb) & 0xF)
}

// Decode classifies opcode, fetched from pc, into an Instruction. Every
// word decodes; words matching no format yield Undefined.
func Decode(opcode uint32, pc uint32) Instruction {
	return Instruction{
		Cond: Cond(opcode >> 28),
		PC:   pc,
		Word: opcode,
		Op:   decodeOperation(opcode),
	}
}

func decodeOperation(opcode uint32) Operation {
	switch {
	case IsBranchExchange(opcode):
		return BranchExchange{Rn: reg(opcode, 0)}
	case IsBlockDataTransfer(opcode):
		return BlockTransfer{
			PreIndex:  bit(opcode, 24),
			Up:        bit(opcode, 23),
			PSR:       bit(opcode, 22),
			WriteBack: bit(opcode, 21),
			Load:      bit(opcode, 20),
			Rn:        reg(opcode, 16),
			Registers: uint16(opcode & 0xFFFF),
		}
	case IsBranchAndBranchWithLink(opcode):
		// Sign Extension
		offset := int32(opcode<<8) >> 6
		return Branch{Link: bit(opcode, 24), Offset: offset}
	case IsSoftwareInterrupt(opcode):
		return SoftwareInterrupt{Comment: opcode & 0xFFFFFF}
	case IsUndefined(opcode):
		return Undefined{}
	case IsSingleDataTransfer(opcode):
		return decodeSingleDataTransfer(opcode)
	case IsSingleDataSwap(opcode):
		return Swap{
			Byte: bit(opcode, 22),
			Rn:   reg(opcode, 16),
			Rd:   reg(opcode, 12),
			Rm:   reg(opcode, 0),
		}
	case IsMultiply(opcode):
		return Multiply{
			Accumulate: bit(opcode, 21),
			SetFlags:   bit(opcode, 20),
			Rd:         reg(opcode, 16),
			Rn:         reg(opcode, 12),
			Rs:         reg(opcode, 8),
			Rm:         reg(opcode, 0),
		}
	case IsMultiplyLong(opcode):
		return MultiplyLong{
			Signed:     bit(opcode, 22),
			Accumulate: bit(opcode, 21),
			SetFlags:   bit(opcode, 20),
			RdHi:       reg(opcode, 16),
			RdLo:       reg(opcode, 12),
			Rs:         reg(opcode, 8),
			Rm:         reg(opcode, 0),
		}
	case IsHalfwordDataTransferRegister(opcode), IsHalfwordDataTransferImmediate(opcode):
		return decodeHalfwordDataTransfer(opcode)
	case IsPSRTransferMRS(opcode):
		return MRS{SPSR: bit(opcode, 22), Rd: reg(opcode, 12)}
	case IsPSRTransferMSR(opcode):
		return decodePSRTransferMSR(opcode)
	case IsDataProcessing(opcode):
		return DataProcessing{
			Opcode:   AluOp((opcode >> 21) & 0xF),
			SetFlags: bit(opcode, 20),
			Rn:       reg(opcode, 16),
			Rd:       reg(opcode, 12),
			Operand2: decodeShifterOperand(opcode),
		}
	}
	return Undefined{}
}

func decodeShift(opcode uint32) Shift {
	op := ShiftOp((opcode >> 5) & 0x3)
	if bit(opcode, 4) { // register
		return ShiftByRegister{Rs: reg(opcode, 8), Op: op}
	}
	return ShiftByAmount{Amount: uint8((opcode >> 7) & 0x1F), Op: op}
}

func decodeShifterOperand(opcode uint32) ShifterOperand {
	if bit(opcode, 25) { // immediate
		return RotatedImmediate{
			Value:  uint8(opcode & 0xFF),
			Rotate: uint8((opcode >> 8) & 0xF),
		}
	}
	return ShiftedRegister{Rm: reg(opcode, 0), Shift: decodeShift(opcode)}
}

func decodeSingleDataTransfer(opcode uint32) Operation {
	up := bit(opcode, 23)
	var offset Offset
	if bit(opcode, 25) { // shifted register
		offset = RegisterOffset{
			Rm:    reg(opcode, 0),
			Shift: ShiftByAmount{Amount: uint8((opcode >> 7) & 0x1F), Op: ShiftOp((opcode >> 5) & 0x3)},
			Added: up,
		}
	} else { // immediate
		offset = signedOffset(opcode&0xFFF, up)
	}
	return SingleTransfer{
		PreIndex:  bit(opcode, 24),
		Byte:      bit(opcode, 22),
		WriteBack: bit(opcode, 21),
		Load:      bit(opcode, 20),
		Rn:        reg(opcode, 16),
		Rd:        reg(opcode, 12),
		Offset:    offset,
	}
}

func decodeHalfwordDataTransfer(opcode uint32) Operation {
	up := bit(opcode, 23)
	var offset Offset
	if bit(opcode, 22) { // immediate
		offset = signedOffset((((opcode>>8)&0xF)<<4)|(opcode&0xF), up)
	} else { // register
		offset = RegisterOffset{Rm: reg(opcode, 0), Shift: NoShift, Added: up}
	}
	return HalfwordTransfer{
		PreIndex:  bit(opcode, 24),
		WriteBack: bit(opcode, 21),
		Load:      bit(opcode, 20),
		SH:        HalfwordType((opcode >> 5) & 0x3),
		Rn:        reg(opcode, 16),
		Rd:        reg(opcode, 12),
		Offset:    offset,
	}
}

func decodePSRTransferMSR(opcode uint32) Operation {
	spsr := bit(opcode, 22)
	fields := uint8((opcode >> 16) & 0xF)
	if bit(opcode, 25) {
		return MSRFlags{
			SPSR: spsr,
			Operand: RotatedImmediate{
				Value:  uint8(opcode & 0xFF),
				Rotate: uint8((opcode >> 8) & 0xF),
			},
		}
	}
	if fields == 0b1000 {
		return MSRFlags{SPSR: spsr, Operand: ShiftedRegister{Rm: reg(opcode, 0), Shift: NoShift}}
	}
	return MSRRegister{SPSR: spsr, Fields: fields, Rm: reg(opcode, 0)}
}

func signedOffset(value uint32, up bool) ImmediateOffset {
	if up {
		return ImmediateOffset(value)
	}
	return ImmediateOffset(-int32(value))
}
