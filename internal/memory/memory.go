package memory

// Width is the size of a single bus access.
type Width int

const (
	Width8 Width = iota
	Width16
	Width32
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "8"
	case Width16:
		return "16"
	case Width32:
		return "32"
	}
	return "?"
}

// Memory is the capability every device mapped on the system bus provides.
// Addresses are relative to the device.
type Memory interface {
	Read8(addr uint32) byte
	Write8(addr uint32, value byte)
	Read16(addr uint32) uint16
	Write16(addr uint32, value uint16)
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
	// Bytes returns a view from addr to the end of the backing store.
	// The view aliases the device's memory.
	Bytes(addr uint32) []byte
	Cycles(addr uint32, width Width) int
}
