package input

import "github.com/Div9851/gba-core/internal/ioreg"

const (
	ButtonA uint16 = 1
	ButtonB uint16 = 1 << 1
	Select  uint16 = 1 << 2
	Start   uint16 = 1 << 3
	Right   uint16 = 1 << 4
	Left    uint16 = 1 << 5
	Up      uint16 = 1 << 6
	Down    uint16 = 1 << 7
	ButtonR uint16 = 1 << 8
	ButtonL uint16 = 1 << 9

	keypadIRQ       uint16 = 1 << 12
	keyCntIRQEnable uint16 = 1 << 14
)

// Input maps host key names onto the keypad register.
type Input struct {
	IOReg *ioreg.IOReg
}

func NewInput(ioReg *ioreg.IOReg) *Input {
	return &Input{IOReg: ioReg}
}

func (input *Input) SetKeys(keys []string) {
	var keyInput uint16 = 0x03FF

	for _, key := range keys {
		switch key {
		case "ArrowRight":
			keyInput &= ^Right
		case "ArrowLeft":
			keyInput &= ^Left
		case "ArrowUp":
			keyInput &= ^Up
		case "ArrowDown":
			keyInput &= ^Down
		case "A":
			keyInput &= ^ButtonL
		case "S":
			keyInput &= ^ButtonR
		case "X":
			keyInput &= ^ButtonA
		case "Z":
			keyInput &= ^ButtonB
		case "Enter":
			keyInput &= ^Start
		case "Backspace":
			keyInput &= ^Select
		}
	}

	keyCnt := input.IOReg.Reg(ioreg.KEYCNT)
	pressed := ^keyInput & input.IOReg.Reg(ioreg.KEYINPUT)
	if keyCnt&keyCntIRQEnable != 0 && pressed&keyCnt&0x03FF != 0 {
		input.IOReg.RaiseIRQ(keypadIRQ)
	}

	input.IOReg.SetKeys(keyInput)
}
