package gamepak

import (
	"bytes"
	"encoding/binary"

	"github.com/Div9851/gba-core/internal/memory"
)

const MaxROMSize = 32 * 1024 * 1024

type BackupType int

const (
	EEPROM BackupType = iota
	SRAM
	FLASH64KB
	FLASH128KB
)

func (t BackupType) String() string {
	switch t {
	case EEPROM:
		return "EEPROM"
	case SRAM:
		return "SRAM"
	case FLASH64KB:
		return "FLASH 64KB"
	case FLASH128KB:
		return "FLASH 128KB"
	}
	return "unknown"
}

// DefaultWaitState is the ROM timing with WAITCNT at its reset value.
var DefaultWaitState = memory.NewWaitState(5, 5, 8)

// GamePak exposes the cartridge ROM on the bus. Reads past the end of the
// image return the value left on the address lines; writes are ignored.
//
// The bus hands the cartridge only the low 24 address bits, so 0x09000000
// aliases ROM[0] and bytes beyond the first 16 MiB of a larger image are
// unreachable through the bus.
type GamePak struct {
	ROM        []byte
	BackupType BackupType
	ws         memory.WaitState
}

func GetBackupType(data []byte) BackupType {
	if bytes.Contains(data, []byte("EEPROM")) {
		return EEPROM
	} else if bytes.Contains(data, []byte("SRAM")) {
		return SRAM
	} else if bytes.Contains(data, []byte("FLASH1M")) {
		return FLASH128KB
	}
	return FLASH64KB
}

// NewGamePak copies data, truncated to 32MB.
func NewGamePak(data []byte, ws memory.WaitState) *GamePak {
	if len(data) > MaxROMSize {
		data = data[:MaxROMSize]
	}
	rom := make([]byte, len(data))
	copy(rom, data)
	return &GamePak{
		ROM:        rom,
		BackupType: GetBackupType(rom),
		ws:         ws,
	}
}

func openBus16(addr uint32) uint16 {
	return uint16(addr >> 1)
}

func (g *GamePak) Read8(addr uint32) byte {
	if int(addr) < len(g.ROM) {
		return g.ROM[addr]
	}
	return byte(openBus16(addr) >> ((addr & 1) * 8))
}

func (g *GamePak) Read16(addr uint32) uint16 {
	addr &^= 1
	if int(addr)+2 <= len(g.ROM) {
		return binary.LittleEndian.Uint16(g.ROM[addr:])
	}
	return openBus16(addr)
}

func (g *GamePak) Read32(addr uint32) uint32 {
	addr &^= 3
	if int(addr)+4 <= len(g.ROM) {
		return binary.LittleEndian.Uint32(g.ROM[addr:])
	}
	return uint32(openBus16(addr+2))<<16 | uint32(openBus16(addr))
}

func (g *GamePak) Write8(uint32, byte) {}

func (g *GamePak) Write16(uint32, uint16) {}

func (g *GamePak) Write32(uint32, uint32) {}

func (g *GamePak) Bytes(addr uint32) []byte {
	if int(addr) >= len(g.ROM) {
		return nil
	}
	return g.ROM[addr:]
}

func (g *GamePak) Cycles(_ uint32, width memory.Width) int {
	return g.ws.Cycles(width)
}
