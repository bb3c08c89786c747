package input_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/input"
	"github.com/Div9851/gba-core/internal/ioreg"
)

var _ = Describe("Input", func() {
	var (
		ioReg *ioreg.IOReg
		in    *input.Input
	)

	BeforeEach(func() {
		ioReg = ioreg.NewIOReg()
		in = input.NewInput(ioReg)
	})

	It("should clear the bits of held buttons", func() {
		in.SetKeys([]string{"X", "ArrowUp", "Space"})
		Expect(ioReg.Reg(ioreg.KEYINPUT)).To(Equal(0x03FF &^ (input.ButtonA | input.Up)))

		in.SetKeys(nil)
		Expect(ioReg.Reg(ioreg.KEYINPUT)).To(Equal(uint16(0x03FF)))
	})

	It("should not request an interrupt unless KEYCNT enables it", func() {
		ioReg.Write16(uint32(ioreg.KEYCNT), input.Start)
		in.SetKeys([]string{"Enter"})
		Expect(ioReg.Reg(ioreg.IF)).To(BeZero())
	})

	It("should request the keypad interrupt for newly pressed selected keys", func() {
		ioReg.Write16(uint32(ioreg.KEYCNT), 1<<14|input.Start)
		in.SetKeys([]string{"Z"})
		Expect(ioReg.Reg(ioreg.IF)).To(BeZero())

		in.SetKeys([]string{"Z", "Enter"})
		Expect(ioReg.Reg(ioreg.IF)).To(Equal(uint16(1 << 12)))
	})
})
