package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/cpu"
	"github.com/Div9851/gba-core/internal/memory"
)

func program(region *memory.Region, words ...uint32) {
	for i, w := range words {
		region.Write32(uint32(i*4), w)
	}
}

var _ = Describe("CPU", func() {
	var (
		region *memory.Region
		c      *cpu.CPU
	)

	BeforeEach(func() {
		region = memory.NewRegion(0x1000, memory.DefaultWaitState)
		c = cpu.NewCPU(region)
		c.WriteReg(15, 0)
	})

	step := func() int {
		GinkgoHelper()
		n, err := c.Step()
		Expect(err).NotTo(HaveOccurred())
		return n
	}

	Describe("cycle accounting", func() {
		It("should charge the pipeline fill on the first step only", func() {
			program(region, 0xE3A00042, 0xE3A01001)
			Expect(step()).To(Equal(3))
			Expect(c.ReadReg(0)).To(Equal(uint32(0x42)))
			Expect(step()).To(Equal(1))
			Expect(c.ReadReg(1)).To(Equal(uint32(1)))
			Expect(c.Cycles).To(Equal(uint64(4)))
		})

		It("should charge the region's wait-states", func() {
			region = memory.NewRegion(0x1000, memory.NewWaitState(3, 3, 6))
			c = cpu.NewCPU(region)
			c.WriteReg(15, 0)
			program(region, 0xE3A00042, 0xE3A01001)
			Expect(step()).To(Equal(18))
			Expect(step()).To(Equal(6))
		})

		It("should add the data access and internal cycle of loads and stores", func() {
			program(region,
				0xE3A05C01, // mov r5, #0x100
				0xE3A00042, // mov r0, #0x42
				0xE5850004, // str r0, [r5, #4]
				0xE5956004, // ldr r6, [r5, #4]
			)
			Expect(step()).To(Equal(3))
			Expect(step()).To(Equal(1))
			Expect(step()).To(Equal(2))
			Expect(step()).To(Equal(3))
			Expect(region.Read32(0x104)).To(Equal(uint32(0x42)))
			Expect(c.ReadReg(6)).To(Equal(uint32(0x42)))
		})
	})

	It("should skip instructions whose condition fails", func() {
		program(region,
			0x03A04001, // moveq r4, #1
			0xE3500000, // cmp r0, #0
			0x03A04002, // moveq r4, #2
		)
		step()
		Expect(c.ReadReg(4)).To(BeZero())
		step()
		Expect(c.Flags()).To(Equal(cpu.Flags{Z: true, C: true}))
		step()
		Expect(c.ReadReg(4)).To(Equal(uint32(2)))
	})

	It("should set arithmetic flags on adds", func() {
		c.WriteReg(0, 0xFFFFFFFF)
		c.WriteReg(1, 1)
		program(region, 0xE0902001) // adds r2, r0, r1
		step()
		Expect(c.ReadReg(2)).To(BeZero())
		Expect(c.Flags()).To(Equal(cpu.Flags{Z: true, C: true}))
	})

	It("should take the shifter carry on logical operations", func() {
		c.WriteReg(1, 0x80000000)
		program(region, 0xE1B00FC1) // movs r0, r1, asr #31
		step()
		Expect(c.ReadReg(0)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(c.Flags()).To(Equal(cpu.Flags{N: true}))
	})

	It("should branch with link", func() {
		program(region, 0xEB000001) // bl 0xc
		step()
		Expect(c.ReadReg(14)).To(Equal(uint32(4)))
		Expect(c.PC()).To(Equal(uint32(0xC)))
	})

	It("should push and pop a register list", func() {
		c.WriteReg(13, 0x800)
		program(region,
			0xE3A00001, // mov r0, #1
			0xE3A01002, // mov r1, #2
			0xE92D0003, // stmdb sp!, {r0, r1}
			0xE8BD000C, // ldmia sp!, {r2, r3}
		)
		for i := 0; i < 3; i++ {
			step()
		}
		Expect(c.ReadReg(13)).To(Equal(uint32(0x7F8)))
		Expect(region.Read32(0x7F8)).To(Equal(uint32(1)))
		Expect(region.Read32(0x7FC)).To(Equal(uint32(2)))
		step()
		Expect(c.ReadReg(13)).To(Equal(uint32(0x800)))
		Expect(c.ReadReg(2)).To(Equal(uint32(1)))
		Expect(c.ReadReg(3)).To(Equal(uint32(2)))
	})

	DescribeTable("long multiplies",
		func(word uint32, lo, hi uint32) {
			c.WriteReg(2, 0xFFFFFFFF)
			c.WriteReg(3, 2)
			program(region, word)
			step()
			Expect(c.ReadReg(0)).To(Equal(lo))
			Expect(c.ReadReg(1)).To(Equal(hi))
		},
		Entry("umull", uint32(0xE0810392), uint32(0xFFFFFFFE), uint32(1)),
		Entry("smull", uint32(0xE0C10392), uint32(0xFFFFFFFE), uint32(0xFFFFFFFF)),
	)

	It("should swap a register with memory", func() {
		c.WriteReg(1, 0xAB)
		c.WriteReg(2, 0x100)
		region.Write32(0x100, 0x1234)
		program(region, 0xE1020091) // swp r0, r1, [r2]
		step()
		Expect(c.ReadReg(0)).To(Equal(uint32(0x1234)))
		Expect(region.Read32(0x100)).To(Equal(uint32(0xAB)))
	})

	It("should write only the flags with an immediate msr", func() {
		program(region, 0xE328F4F0) // msr cpsr_f, #0xf0000000
		step()
		Expect(c.CPSR).To(Equal(uint32(0xF000001F)))
	})

	It("should enter supervisor mode on swi", func() {
		program(region, 0xEF000000)
		step()
		Expect(c.Mode()).To(Equal(cpu.ModeSVC))
		Expect(c.PC()).To(Equal(uint32(0x08)))
		Expect(c.ReadReg(14)).To(Equal(uint32(4)))
		Expect(c.ReadSPSR(cpu.ModeSVC)).To(Equal(uint32(cpu.ModeSYS)))
	})

	It("should trap an undefined halfword transfer", func() {
		program(region, 0xE1110092)
		step()
		Expect(c.Mode()).To(Equal(cpu.ModeUND))
		Expect(c.PC()).To(Equal(uint32(0x04)))
	})

	It("should stop at a switch to THUMB state", func() {
		c.WriteReg(0, 0x201)
		program(region, 0xE12FFF10) // bx r0
		step()
		Expect(c.IsThumb()).To(BeTrue())
		_, err := c.Step()
		Expect(err).To(MatchError(cpu.ErrThumbState))
	})

	It("should report the entry address until the pipeline is filled", func() {
		c.WriteReg(15, 0x102)
		Expect(c.PC()).To(Equal(uint32(0x100)))
		c.Reset()
		Expect(c.PC()).To(BeZero())
		program(region, 0xE3A00042)
		step()
		Expect(c.PC()).To(Equal(uint32(4)))
	})

	It("should decode the instruction at the current PC", func() {
		program(region, 0xE3A00042, 0xE3A01001)
		step()
		Expect(c.Current().String()).To(Equal("mov\tr1, #1\t; 0x1"))
		Expect(c.Current().PC).To(Equal(uint32(4)))
	})
})
