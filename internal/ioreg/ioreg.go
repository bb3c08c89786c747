package ioreg

import (
	"encoding/binary"

	"github.com/Div9851/gba-core/internal/memory"
)

const Size = 0x400

// Register is the offset of a 16-bit IO register from the start of the block.
type Register uint32

const (
	DISPCNT  Register = 0x000
	DISPSTAT Register = 0x004
	VCOUNT   Register = 0x006
	BG0CNT   Register = 0x008
	BG1CNT   Register = 0x00A
	BG2CNT   Register = 0x00C
	BG3CNT   Register = 0x00E
	KEYINPUT Register = 0x130
	KEYCNT   Register = 0x132
	IE       Register = 0x200
	IF       Register = 0x202
	WAITCNT  Register = 0x204
	IME      Register = 0x208
)

var names = map[Register]string{
	DISPCNT:  "DISPCNT",
	DISPSTAT: "DISPSTAT",
	VCOUNT:   "VCOUNT",
	BG0CNT:   "BG0CNT",
	BG1CNT:   "BG1CNT",
	BG2CNT:   "BG2CNT",
	BG3CNT:   "BG3CNT",
	KEYINPUT: "KEYINPUT",
	KEYCNT:   "KEYCNT",
	IE:       "IE",
	IF:       "IF",
	WAITCNT:  "WAITCNT",
	IME:      "IME",
}

func (r Register) String() string {
	if name, ok := names[r]; ok {
		return name
	}
	return "IO?"
}

// IOReg is the memory-mapped IO block. The bit fields of each register are
// interpreted by the peripherals that own them, not here.
type IOReg struct {
	buffer [Size]byte
}

func NewIOReg() *IOReg {
	r := &IOReg{}
	r.Reset()
	return r
}

func (r *IOReg) Reset() {
	r.buffer = [Size]byte{}
	r.put16(uint32(KEYINPUT), 0x03FF) // all buttons released
}

// Reg reads a register by key.
func (r *IOReg) Reg(reg Register) uint16 {
	return r.Read16(uint32(reg))
}

func (r *IOReg) put16(addr uint32, val uint16) {
	binary.LittleEndian.PutUint16(r.buffer[addr:], val)
}

func (r *IOReg) Read8(addr uint32) byte {
	if addr >= Size {
		return 0
	}
	return r.buffer[addr]
}

func (r *IOReg) Write8(addr uint32, val byte) {
	switch {
	case addr >= Size:
		return
	case addr == uint32(IF) || addr == uint32(IF)+1: // write 1 to acknowledge
		r.buffer[addr] &= ^val
	case addr == uint32(KEYINPUT) || addr == uint32(KEYINPUT)+1: // read only
	default:
		r.buffer[addr] = val
	}
}

func (r *IOReg) Read16(addr uint32) uint16 {
	addr &^= 1
	low := uint16(r.Read8(addr))
	high := uint16(r.Read8(addr + 1))
	return high<<8 | low
}

func (r *IOReg) Write16(addr uint32, val uint16) {
	addr &^= 1
	r.Write8(addr, byte(val&0xFF))
	r.Write8(addr+1, byte((val>>8)&0xFF))
}

func (r *IOReg) Read32(addr uint32) uint32 {
	addr &^= 3
	low := uint32(r.Read16(addr))
	high := uint32(r.Read16(addr + 2))
	return high<<16 | low
}

func (r *IOReg) Write32(addr uint32, val uint32) {
	addr &^= 3
	r.Write16(addr, uint16(val&0xFFFF))
	r.Write16(addr+2, uint16((val>>16)&0xFFFF))
}

func (r *IOReg) Bytes(addr uint32) []byte {
	if addr >= Size {
		return nil
	}
	return r.buffer[addr:]
}

func (r *IOReg) Cycles(_ uint32, width memory.Width) int {
	return memory.DefaultWaitState.Cycles(width)
}

// SetKeys latches the active-low KEYINPUT state.
func (r *IOReg) SetKeys(keyInput uint16) {
	r.put16(uint32(KEYINPUT), keyInput&0x03FF)
}

// RaiseIRQ sets bits in IF on behalf of a peripheral.
func (r *IOReg) RaiseIRQ(mask uint16) {
	r.put16(uint32(IF), r.Reg(IF)|mask)
}
