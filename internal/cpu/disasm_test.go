package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/cpu"
)

var _ = Describe("Disassembly", func() {
	DescribeTable("rendering",
		func(word uint32, pc uint32, text string) {
			Expect(cpu.Decode(word, pc).String()).To(Equal(text))
		},
		Entry("bx", uint32(0xE12FFF1E), uint32(0), "bx\tlr"),
		Entry("conditional bx", uint32(0x012FFF10), uint32(0), "bxeq\tr0"),
		Entry("bl backwards", uint32(0xEBFFFFFE), uint32(0x2000), "bl\t0x2000"),
		Entry("bne", uint32(0x1A000000), uint32(0), "bne\t0x8"),
		Entry("mov immediate", uint32(0xE3A00042), uint32(0), "mov\tr0, #66\t; 0x42"),
		Entry("mov register", uint32(0xE1A00001), uint32(0), "mov\tr0, r1"),
		Entry("mov lsr #0", uint32(0xE1A00021), uint32(0), "mov\tr0, r1, lsr #0"),
		Entry("movs asr", uint32(0xE1B00FC1), uint32(0), "movs\tr0, r1, asr #31"),
		Entry("moveq", uint32(0x03A04001), uint32(0), "moveq\tr4, #1\t; 0x1"),
		Entry("add register shift", uint32(0xE0810312), uint32(0), "add\tr0, r1, r2, lsl r3"),
		Entry("adds", uint32(0xE0902001), uint32(0), "adds\tr2, r0, r1"),
		Entry("ands immediate", uint32(0xE21100FF), uint32(0), "ands\tr0, r1, #255\t; 0xff"),
		Entry("cmp", uint32(0xE3500000), uint32(0), "cmp\tr0, #0\t; 0x0"),
		Entry("cmp register", uint32(0xE1500001), uint32(0), "cmp\tr0, r1"),
		Entry("ldr pc relative", uint32(0xE59F0004), uint32(0x1000), "ldr\tr0, [pc, #4]\t; 0x100c"),
		Entry("str pre-indexed", uint32(0xE5850004), uint32(0), "str\tr0, [r5, #4]\t; 0x4"),
		Entry("ldrb negative", uint32(0xE5510001), uint32(0), "ldrb\tr0, [r1, #-1]\t; 0xffffffff"),
		Entry("ldrt", uint32(0xE4B10004), uint32(0), "ldrt\tr0, [r1], #4\t; 0x4"),
		Entry("str register offset", uint32(0xE7210102), uint32(0), "str\tr0, [r1, -r2, lsl #2]!"),
		Entry("stmdb", uint32(0xE92D0003), uint32(0), "stmdb\tsp!, {r0, r1}"),
		Entry("ldmia", uint32(0xE8BD000C), uint32(0), "ldmia\tsp!, {r2, r3}"),
		Entry("ldmib user bank", uint32(0xE9D0000A), uint32(0), "ldmib\tr0, {r1, r3}^"),
		Entry("stmda", uint32(0xE8200001), uint32(0), "stmda\tr0!, {r0}"),
		Entry("mrs cpsr", uint32(0xE10F0000), uint32(0), "mrs\tr0, CPSR"),
		Entry("mrs spsr", uint32(0xE14F0000), uint32(0), "mrs\tr0, SPSR"),
		Entry("msr register", uint32(0xE129F000), uint32(0), "msr\tCPSR, r0"),
		Entry("msr flags immediate", uint32(0xE328F4F0), uint32(0),
			"msr\tCPSR_f, #4026531840\t; 0xf0000000\t; N=true Z=true C=true V=true"),
		Entry("msr flags register", uint32(0xE168F000), uint32(0), "msr\tSPSR_f, r0"),
		Entry("mul", uint32(0xE0020190), uint32(0), "mul\tr2, r0, r1"),
		Entry("mla", uint32(0xE0232190), uint32(0), "mla\tr3, r0, r1, r2"),
		Entry("umull", uint32(0xE0810392), uint32(0), "umull\tr0, r1, r2, r3"),
		Entry("smlals", uint32(0xE0F10392), uint32(0), "smlals\tr0, r1, r2, r3"),
		Entry("ldrh", uint32(0xE1D100B2), uint32(0), "ldrh\tr0, [r1, #2]\t; 0x2"),
		Entry("ldrsb post-indexed", uint32(0xE01100D2), uint32(0), "ldrsb\tr0, [r1], -r2"),
		Entry("undefined halfword", uint32(0xE1110092), uint32(0), "<undefined>"),
		Entry("swp", uint32(0xE1020091), uint32(0), "swp\tr0, r1, [r2]"),
		Entry("swi", uint32(0xEF123456), uint32(0), "swi\t#0x123456"),
		Entry("undefined", uint32(0xE6000010), uint32(0), "<undefined>"),
	)

	It("should name registers with the PC alias", func() {
		Expect(cpu.RegName(13)).To(Equal("sp"))
		Expect(cpu.RegName(14)).To(Equal("lr"))
		Expect(cpu.RegName(15)).To(Equal("pc"))
		Expect(cpu.RegName(10)).To(Equal("r10"))
	})
})
