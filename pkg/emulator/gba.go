package emulator

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Div9851/gba-core/internal/bus"
	"github.com/Div9851/gba-core/internal/cpu"
	"github.com/Div9851/gba-core/internal/gamepak"
	"github.com/Div9851/gba-core/internal/input"
	"github.com/Div9851/gba-core/internal/ioreg"
)

const (
	cyclesPerFrame = 280896
)

var ErrBIOSSize = errors.New("emulator: BIOS image exceeds 16 KiB")

type GBA struct {
	CPU   *cpu.CPU
	Bus   *bus.Bus
	IOReg *ioreg.IOReg
	Input *input.Input

	config  Config
	running bool
}

func NewGBA(config *Config) (*GBA, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ioReg := ioreg.NewIOReg()
	bus := bus.NewBus(ioReg, nil)
	cpu := cpu.NewCPU(bus)
	cpu.WriteReg(15, config.StartAddress)

	gba := &GBA{
		CPU:     cpu,
		Bus:     bus,
		IOReg:   ioReg,
		Input:   input.NewInput(ioReg),
		config:  *config,
		running: false,
	}

	return gba, nil
}

// Boot loads the images named by the config. A BIOS image moves the
// entry point to the reset vector.
func (gba *GBA) Boot() error {
	if gba.config.BIOSPath != "" {
		data, err := os.ReadFile(gba.config.BIOSPath)
		if err != nil {
			return fmt.Errorf("failed to read BIOS: %w", err)
		}
		if err := gba.LoadBIOS(data); err != nil {
			return err
		}
		gba.CPU.Reset()
	}
	if gba.config.ROMPath != "" {
		data, err := os.ReadFile(gba.config.ROMPath)
		if err != nil {
			return fmt.Errorf("failed to read ROM: %w", err)
		}
		gba.LoadROM(data)
	}
	return nil
}

func (gba *GBA) Start() {
	gba.running = true
}

func (gba *GBA) Stop() {
	gba.running = false
}

func (gba *GBA) Running() bool {
	return gba.running
}

func (gba *GBA) LoadBIOS(data []byte) error {
	if len(data) > bus.BIOSSize {
		return fmt.Errorf("%w: got %d bytes", ErrBIOSSize, len(data))
	}
	gba.Bus.LoadBIOS(data)
	return nil
}

func (gba *GBA) LoadROM(data []byte) {
	gamePak := gamepak.NewGamePak(data, gba.config.GamePakWaitState)
	log.Printf("loaded %d byte ROM, backup type %s", len(gamePak.ROM), gamePak.BackupType)
	gba.Bus.LoadGamePak(gamePak)
}

// Step executes a single instruction and returns its cycle cost.
func (gba *GBA) Step() (int, error) {
	return gba.CPU.Step()
}

// Update runs one frame worth of cycles. Execution stops at the first
// instruction the CPU cannot run.
func (gba *GBA) Update() error {
	if !gba.running {
		return nil
	}
	for cycles := 0; cycles < cyclesPerFrame; {
		n, err := gba.Step()
		if err != nil {
			gba.Stop()
			return fmt.Errorf("at %#08x: %w", gba.CPU.PC(), err)
		}
		cycles += n
	}
	return nil
}

// Disassemble renders n ARM instructions starting at addr. Reads go
// straight to the bus and cost no cycles.
func (gba *GBA) Disassemble(addr uint32, n int) []string {
	addr &^= 3
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		pc := addr + uint32(i)*4
		inst := cpu.Decode(gba.Bus.Read32(pc), pc)
		lines = append(lines, fmt.Sprintf("%08x:\t%08x\t%s", pc, inst.Word, inst))
	}
	return lines
}
