package memory

import "encoding/binary"

// Region is a fixed-size block of memory with its own access timing.
// Halfword and word accesses are forced to their natural alignment.
// Accesses past the end of the buffer read as zero and are dropped on write.
type Region struct {
	buf []byte
	ws  WaitState
}

func NewRegion(size int, ws WaitState) *Region {
	return &Region{
		buf: make([]byte, size),
		ws:  ws,
	}
}

// NewRegionFrom takes ownership of data.
func NewRegionFrom(data []byte, ws WaitState) *Region {
	return &Region{
		buf: data,
		ws:  ws,
	}
}

func (r *Region) Len() int {
	return len(r.buf)
}

func (r *Region) WaitState() WaitState {
	return r.ws
}

// Load copies data to the start of the region, truncating what does not fit.
func (r *Region) Load(data []byte) int {
	return copy(r.buf, data)
}

func (r *Region) inBounds(addr uint32, size uint32) bool {
	if uint64(addr)+uint64(size) > uint64(len(r.buf)) {
		outOfRange(addr, size, len(r.buf))
		return false
	}
	return true
}

func (r *Region) Read8(addr uint32) byte {
	if !r.inBounds(addr, 1) {
		return 0
	}
	return r.buf[addr]
}

func (r *Region) Write8(addr uint32, value byte) {
	if !r.inBounds(addr, 1) {
		return
	}
	r.buf[addr] = value
}

func (r *Region) Read16(addr uint32) uint16 {
	addr &^= 1
	if !r.inBounds(addr, 2) {
		return 0
	}
	return binary.LittleEndian.Uint16(r.buf[addr:])
}

func (r *Region) Write16(addr uint32, value uint16) {
	addr &^= 1
	if !r.inBounds(addr, 2) {
		return
	}
	binary.LittleEndian.PutUint16(r.buf[addr:], value)
}

func (r *Region) Read32(addr uint32) uint32 {
	addr &^= 3
	if !r.inBounds(addr, 4) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.buf[addr:])
}

func (r *Region) Write32(addr uint32, value uint32) {
	addr &^= 3
	if !r.inBounds(addr, 4) {
		return
	}
	binary.LittleEndian.PutUint32(r.buf[addr:], value)
}

func (r *Region) Bytes(addr uint32) []byte {
	if uint64(addr) >= uint64(len(r.buf)) {
		outOfRange(addr, 0, len(r.buf))
		return nil
	}
	return r.buf[addr:]
}

func (r *Region) Cycles(_ uint32, width Width) int {
	return r.ws.Cycles(width)
}
