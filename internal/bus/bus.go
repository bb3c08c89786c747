package bus

import (
	"github.com/Div9851/gba-core/internal/gamepak"
	"github.com/Div9851/gba-core/internal/ioreg"
	"github.com/Div9851/gba-core/internal/memory"
)

const (
	BIOSSize  = 16 * 1024
	EWRAMSize = 256 * 1024
	IWRAMSize = 32 * 1024
	PRAMSize  = 1024
	VRAMSize  = 128 * 1024
	OAMSize   = 1024

	// The decode logic only sees the low 24 address lines of a device.
	addrMask = 0x00FFFFFF
)

// Device identifies who answers for an address.
type Device int

const (
	DeviceBIOS Device = iota
	DeviceEWRAM
	DeviceIWRAM
	DeviceIO
	DevicePRAM
	DeviceVRAM
	DeviceOAM
	DeviceGamePak
	DeviceOpenBus
)

func (d Device) String() string {
	switch d {
	case DeviceBIOS:
		return "BIOS"
	case DeviceEWRAM:
		return "EWRAM"
	case DeviceIWRAM:
		return "IWRAM"
	case DeviceIO:
		return "IO"
	case DevicePRAM:
		return "PRAM"
	case DeviceVRAM:
		return "VRAM"
	case DeviceOAM:
		return "OAM"
	case DeviceGamePak:
		return "GamePak"
	case DeviceOpenBus:
		return "OpenBus"
	}
	return "?"
}

// memoryMap is searched in order; the ranges are half-open and disjoint.
var memoryMap = [...]struct {
	start, end uint32
	device     Device
}{
	{0x00000000, 0x00004000, DeviceBIOS},
	{0x02000000, 0x02040000, DeviceEWRAM},
	{0x03000000, 0x03008000, DeviceIWRAM},
	{0x04000000, 0x040003FF, DeviceIO},
	{0x05000000, 0x05000400, DevicePRAM},
	{0x06000000, 0x06018000, DeviceVRAM},
	{0x07000000, 0x07000400, DeviceOAM},
	{0x08000000, 0x0A000000, DeviceGamePak},
}

// Resolve returns the device owning addr and the address it is handed.
func Resolve(addr uint32) (Device, uint32) {
	for _, r := range memoryMap {
		if r.start <= addr && addr < r.end {
			return r.device, addr & addrMask
		}
	}
	return DeviceOpenBus, addr & addrMask
}

// Bus owns every device of the address space and forwards each access to
// the device Resolve picks. It is not safe for concurrent use.
type Bus struct {
	BIOS    *memory.Region
	EWRAM   *memory.Region
	IWRAM   *memory.Region
	IOReg   *ioreg.IOReg
	PRAM    *memory.Region
	VRAM    *memory.Region
	OAM     *memory.Region
	GamePak *gamepak.GamePak
	openBus memory.OpenBus
}

func NewBus(ioReg *ioreg.IOReg, gamePak *gamepak.GamePak) *Bus {
	return &Bus{
		BIOS:    memory.NewRegion(BIOSSize, memory.DefaultWaitState),
		EWRAM:   memory.NewRegion(EWRAMSize, memory.NewWaitState(3, 3, 6)),
		IWRAM:   memory.NewRegion(IWRAMSize, memory.DefaultWaitState),
		IOReg:   ioReg,
		PRAM:    memory.NewRegion(PRAMSize, memory.NewWaitState(1, 1, 2)),
		VRAM:    memory.NewRegion(VRAMSize, memory.NewWaitState(1, 1, 2)),
		OAM:     memory.NewRegion(OAMSize, memory.DefaultWaitState),
		GamePak: gamePak,
	}
}

func (bus *Bus) LoadBIOS(data []byte) int {
	return bus.BIOS.Load(data)
}

func (bus *Bus) LoadGamePak(gamePak *gamepak.GamePak) {
	bus.GamePak = gamePak
}

// Device returns the backing store for d.
func (bus *Bus) Device(d Device) memory.Memory {
	switch d {
	case DeviceBIOS:
		return bus.BIOS
	case DeviceEWRAM:
		return bus.EWRAM
	case DeviceIWRAM:
		return bus.IWRAM
	case DeviceIO:
		if bus.IOReg != nil {
			return bus.IOReg
		}
	case DevicePRAM:
		return bus.PRAM
	case DeviceVRAM:
		return bus.VRAM
	case DeviceOAM:
		return bus.OAM
	case DeviceGamePak:
		if bus.GamePak != nil {
			return bus.GamePak
		}
	}
	return bus.openBus
}

func (bus *Bus) route(addr uint32) (memory.Memory, uint32) {
	d, offset := Resolve(addr)
	return bus.Device(d), offset
}

func (bus *Bus) Read8(addr uint32) byte {
	m, offset := bus.route(addr)
	return m.Read8(offset)
}

func (bus *Bus) Write8(addr uint32, val byte) {
	m, offset := bus.route(addr)
	m.Write8(offset, val)
}

func (bus *Bus) Read16(addr uint32) uint16 {
	m, offset := bus.route(addr)
	return m.Read16(offset)
}

func (bus *Bus) Write16(addr uint32, val uint16) {
	m, offset := bus.route(addr)
	m.Write16(offset, val)
}

func (bus *Bus) Read32(addr uint32) uint32 {
	m, offset := bus.route(addr)
	return m.Read32(offset)
}

func (bus *Bus) Write32(addr uint32, val uint32) {
	m, offset := bus.route(addr)
	m.Write32(offset, val)
}

func (bus *Bus) Bytes(addr uint32) []byte {
	m, offset := bus.route(addr)
	return m.Bytes(offset)
}

func (bus *Bus) Cycles(addr uint32, width memory.Width) int {
	m, offset := bus.route(addr)
	return m.Cycles(offset, width)
}
