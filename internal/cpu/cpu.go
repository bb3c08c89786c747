package cpu

import (
	"errors"

	"github.com/Div9851/gba-core/internal/memory"
)

// ErrThumbState is returned by Step once the T bit is set; only the ARM
// instruction set is interpreted.
var ErrThumbState = errors.New("cpu: THUMB state is not supported")

const (
	BitN uint32 = 1 << 31
	BitZ uint32 = 1 << 30
	BitC uint32 = 1 << 29
	BitV uint32 = 1 << 28
	BitI uint32 = 1 << 7
	BitF uint32 = 1 << 6
	BitT uint32 = 1 << 5
	BitM uint32 = 0x1F
)

const (
	ModeUSR = 0x10
	ModeFIQ = 0x11
	ModeIRQ = 0x12
	ModeSVC = 0x13
	ModeABT = 0x17
	ModeUND = 0x1B
	ModeSYS = 0x1F
)

const (
	ExceptReset = iota
	ExceptUndefined
	ExceptSoftwareInterrupt
	ExceptPrefetchAbort
	ExceptDataAbort
	ExceptAddressExceeds26bit
	ExceptNormalInterrupt
	ExceptFastInterrupt
)

type CPU struct {
	reg                 [16]uint32
	bankedReg           [5][16]uint32 // FIQ IRQ SVC ABT UND
	CPSR                uint32
	SPSR                [5]uint32
	Bus                 memory.Memory
	Pipeline            [2]uint32
	ShouldResetPipeline bool
	// Cycles is the total bus time spent so far.
	Cycles uint64
	step   int
}

// NewCPU returns a CPU in the state the BIOS leaves it in before jumping
// to the cartridge entry point.
func NewCPU(bus memory.Memory) *CPU {
	reg := [16]uint32{}
	reg[13] = 0x03007F00
	reg[14] = 0x08000000
	reg[15] = 0x08000000
	bankedReg := [5][16]uint32{}
	bankedReg[1][13] = 0x03007FA0
	bankedReg[2][13] = 0x03007FE0
	return &CPU{
		reg:       reg,
		bankedReg: bankedReg,
		CPSR:      ModeSYS,
		Bus:       bus,

		ShouldResetPipeline: true,
	}
}

// Reset puts the CPU at the reset vector in supervisor mode.
func (cpu *CPU) Reset() {
	cpu.CPSR = ModeSVC | BitI | BitF
	cpu.reg[15] = 0
	cpu.ShouldResetPipeline = true
}

func bankIndex(mode int) int {
	switch mode {
	case ModeFIQ:
		return 0
	case ModeIRQ:
		return 1
	case ModeSVC:
		return 2
	case ModeABT:
		return 3
	case ModeUND:
		return 4
	}
	return -1
}

func (cpu *CPU) ReadReg(index int) uint32 {
	mode := cpu.Mode()
	if index < 8 || index == 15 {
		return cpu.reg[index]
	}
	if index < 13 {
		if mode == ModeFIQ {
			return cpu.bankedReg[0][index]
		}
		return cpu.reg[index]
	}
	if bank := bankIndex(mode); bank >= 0 {
		return cpu.bankedReg[bank][index]
	}
	return cpu.reg[index]
}

func (cpu *CPU) WriteReg(index int, val uint32) {
	mode := cpu.Mode()
	if index < 8 {
		cpu.reg[index] = val
		return
	}
	if index == 15 {
		cpu.reg[index] = val
		cpu.ShouldResetPipeline = true
		return
	}
	if index < 13 {
		if mode == ModeFIQ {
			cpu.bankedReg[0][index] = val
			return
		}
		cpu.reg[index] = val
		return
	}
	if bank := bankIndex(mode); bank >= 0 {
		cpu.bankedReg[bank][index] = val
		return
	}
	cpu.reg[index] = val
}

func (cpu *CPU) WriteUserReg(index int, val uint32) {
	if index == 15 {
		cpu.WriteReg(index, val)
		return
	}
	cpu.reg[index] = val
}

func (cpu *CPU) ReadUserReg(index int) uint32 {
	return cpu.reg[index]
}

func (cpu *CPU) ReadSPSR(mode int) uint32 {
	if bank := bankIndex(mode); bank >= 0 {
		return cpu.SPSR[bank]
	}
	// User/System mode does not have SPSR
	return cpu.CPSR
}

func (cpu *CPU) WriteSPSR(mode int, val uint32) {
	if bank := bankIndex(mode); bank >= 0 {
		cpu.SPSR[bank] = val
	}
}

func (cpu *CPU) IsThumb() bool {
	return (cpu.CPSR & BitT) != 0
}

func (cpu *CPU) Mode() int {
	return int(cpu.CPSR & BitM)
}

func (cpu *CPU) Flags() Flags {
	return FlagsFromPSR(cpu.CPSR)
}

func (cpu *CPU) SetFlags(f Flags) {
	cpu.CPSR = (cpu.CPSR & ^(BitN | BitZ | BitC | BitV)) | f.PSR()
}

// UpdateArithmeticFlags updates N, Z, C, V flags for arithmetic operations
func (cpu *CPU) UpdateArithmeticFlags(result uint32, carry, overflow bool) {
	cpu.SetFlags(Flags{N: (result >> 31) != 0, Z: result == 0, C: carry, V: overflow})
}

// UpdateLogicalFlags updates N, Z, C flags for logical operations
func (cpu *CPU) UpdateLogicalFlags(result uint32, carry bool) {
	f := cpu.Flags()
	cpu.SetFlags(Flags{N: (result >> 31) != 0, Z: result == 0, C: carry, V: f.V})
}

// PC returns the address of the instruction being executed, or the
// entry address while the pipeline is waiting to be refilled.
func (cpu *CPU) PC() uint32 {
	if cpu.ShouldResetPipeline {
		if cpu.IsThumb() {
			return cpu.reg[15] &^ 1
		}
		return cpu.reg[15] &^ 3
	}
	if cpu.IsThumb() {
		return cpu.reg[15] - 4
	}
	return cpu.reg[15] - 8
}

func (cpu *CPU) HandleException(except int) {
	pc := cpu.ReadReg(15) // PC+nn
	var mode int
	var addr uint32
	switch except {
	case ExceptReset:
		mode = ModeSVC
		addr = 0x00
	case ExceptUndefined:
		mode = ModeUND
		addr = 0x04
	case ExceptSoftwareInterrupt:
		mode = ModeSVC
		addr = 0x08
	case ExceptPrefetchAbort:
		mode = ModeABT
		addr = 0x0C
	case ExceptDataAbort:
		mode = ModeABT
		addr = 0x10
	case ExceptAddressExceeds26bit:
		mode = ModeSVC
		addr = 0x14
	case ExceptNormalInterrupt:
		mode = ModeIRQ
		addr = 0x18
	case ExceptFastInterrupt:
		mode = ModeFIQ
		addr = 0x1C
	}
	cpsr := cpu.CPSR
	cpu.CPSR = (cpu.CPSR & ^BitM) | uint32(mode) // set mode
	cpu.CPSR |= BitI                             // IRQs disabled
	cpu.WriteSPSR(mode, cpsr)
	if (cpsr & BitT) != 0 {
		cpu.WriteReg(14, (pc-2)|1) // PC+2
	} else {
		cpu.WriteReg(14, pc-4)
	}
	cpu.CPSR &= ^BitT // force ARM state
	cpu.WriteReg(15, addr)
}

func (cpu *CPU) read8(addr uint32) byte {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width8)
	return cpu.Bus.Read8(addr)
}

func (cpu *CPU) read16(addr uint32) uint16 {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width16)
	return cpu.Bus.Read16(addr)
}

func (cpu *CPU) read32(addr uint32) uint32 {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width32)
	return cpu.Bus.Read32(addr)
}

func (cpu *CPU) write8(addr uint32, val byte) {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width8)
	cpu.Bus.Write8(addr, val)
}

func (cpu *CPU) write16(addr uint32, val uint16) {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width16)
	cpu.Bus.Write16(addr, val)
}

func (cpu *CPU) write32(addr uint32, val uint32) {
	cpu.step += cpu.Bus.Cycles(addr, memory.Width32)
	cpu.Bus.Write32(addr, val)
}

func (cpu *CPU) ResetPipeline() {
	cpu.ShouldResetPipeline = false
	pc := cpu.ReadReg(15)
	if cpu.IsThumb() {
		pc &^= 1
		cpu.Pipeline[0] = uint32(cpu.read16(pc + 2))
		cpu.Pipeline[1] = uint32(cpu.read16(pc))
		cpu.reg[15] = pc + 4
	} else {
		pc &^= 3
		cpu.Pipeline[0] = cpu.read32(pc + 4)
		cpu.Pipeline[1] = cpu.read32(pc)
		cpu.reg[15] = pc + 8
	}
}

func (cpu *CPU) AdvancePipeline() {
	pc := cpu.ReadReg(15)
	if cpu.IsThumb() {
		cpu.Pipeline[1] = cpu.Pipeline[0]
		cpu.Pipeline[0] = uint32(cpu.read16(pc))
		cpu.reg[15] = pc + 2
	} else {
		cpu.Pipeline[1] = cpu.Pipeline[0]
		cpu.Pipeline[0] = cpu.read32(pc)
		cpu.reg[15] = pc + 4
	}
}

// Current decodes the instruction about to execute.
func (cpu *CPU) Current() Instruction {
	return Decode(cpu.Pipeline[1], cpu.PC())
}

// Step executes one instruction and returns the bus cycles it took,
// including the prefetch that refills the pipeline.
func (cpu *CPU) Step() (int, error) {
	if cpu.IsThumb() {
		return 0, ErrThumbState
	}
	cpu.step = 0
	if cpu.ShouldResetPipeline {
		cpu.ResetPipeline()
	}

	inst := cpu.Current()
	cpu.Execute(inst)

	if cpu.ShouldResetPipeline {
		cpu.ResetPipeline()
	} else {
		cpu.AdvancePipeline()
	}
	cpu.Cycles += uint64(cpu.step)
	return cpu.step, nil
}

// Execute runs inst against the current state if its condition passes.
func (cpu *CPU) Execute(inst Instruction) {
	if !inst.Cond.Check(cpu.Flags()) {
		return
	}
	inst.Op.exec(cpu, &inst)
}
