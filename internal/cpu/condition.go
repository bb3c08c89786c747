package cpu

// Cond is the 4-bit condition field of an ARM instruction.
type Cond uint8

const (
	EQ Cond = 0x0 // Z
	NE Cond = 0x1 // !Z
	HS Cond = 0x2 // C
	LO Cond = 0x3 // !C
	MI Cond = 0x4 // N
	PL Cond = 0x5 // !N
	VS Cond = 0x6 // V
	VC Cond = 0x7 // !V
	HI Cond = 0x8 // C && !Z
	LS Cond = 0x9 // !C || Z
	GE Cond = 0xA // N == V
	LT Cond = 0xB // N != V
	GT Cond = 0xC // !Z && N == V
	LE Cond = 0xD // Z || N != V
	AL Cond = 0xE
	NV Cond = 0xF
)

var condSuffixes = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "", "nv",
}

// String returns the mnemonic suffix. AL has none.
func (c Cond) String() string {
	return condSuffixes[c&0xF]
}

// Flags are the condition flags of a program status register.
type Flags struct {
	N, Z, C, V bool
}

func FlagsFromPSR(psr uint32) Flags {
	return Flags{
		N: (psr & BitN) != 0,
		Z: (psr & BitZ) != 0,
		C: (psr & BitC) != 0,
		V: (psr & BitV) != 0,
	}
}

// PSR returns the flags in their status register bit positions.
func (f Flags) PSR() uint32 {
	var psr uint32
	if f.N {
		psr |= BitN
	}
	if f.Z {
		psr |= BitZ
	}
	if f.C {
		psr |= BitC
	}
	if f.V {
		psr |= BitV
	}
	return psr
}

// Check reports whether an instruction with condition c executes under f.
func (c Cond) Check(f Flags) bool {
	switch c {
	case EQ:
		return f.Z
	case NE:
		return !f.Z
	case HS:
		return f.C
	case LO:
		return !f.C
	case MI:
		return f.N
	case PL:
		return !f.N
	case VS:
		return f.V
	case VC:
		return !f.V
	case HI:
		return f.C && !f.Z
	case LS:
		return !f.C || f.Z
	case GE:
		return f.N == f.V
	case LT:
		return f.N != f.V
	case GT:
		return !f.Z && f.N == f.V
	case LE:
		return f.Z || f.N != f.V
	case AL:
		return true
	}
	// Never
	return false
}
