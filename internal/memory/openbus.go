package memory

// OpenBus answers for every address no device claims.
type OpenBus struct{}

func (OpenBus) Read8(uint32) byte { return 0 }

func (OpenBus) Write8(uint32, byte) {}

func (OpenBus) Read16(uint32) uint16 { return 0 }

func (OpenBus) Write16(uint32, uint16) {}

func (OpenBus) Read32(uint32) uint32 { return 0 }

func (OpenBus) Write32(uint32, uint32) {}

func (OpenBus) Cycles(uint32, Width) int { return 1 }

// Bytes returns a fresh zeroed word so callers never share state through it.
func (OpenBus) Bytes(uint32) []byte {
	return make([]byte, 4)
}
