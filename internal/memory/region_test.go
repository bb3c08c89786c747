package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/memory"
)

var _ = Describe("Region", func() {
	var region *memory.Region

	BeforeEach(func() {
		region = memory.NewRegion(16, memory.NewWaitState(3, 3, 6))
	})

	It("should store words little-endian", func() {
		region.Write32(4, 0x11223344)
		Expect(region.Read8(4)).To(Equal(byte(0x44)))
		Expect(region.Read8(7)).To(Equal(byte(0x11)))
		Expect(region.Read16(6)).To(Equal(uint16(0x1122)))
		Expect(region.Read32(4)).To(Equal(uint32(0x11223344)))
	})

	It("should force natural alignment", func() {
		region.Write32(8, 0xCAFEBABE)
		Expect(region.Read32(10)).To(Equal(uint32(0xCAFEBABE)))
		Expect(region.Read16(9)).To(Equal(uint16(0xBABE)))

		region.Write16(13, 0xBEEF)
		Expect(region.Read16(12)).To(Equal(uint16(0xBEEF)))
	})

	It("should return a view aliasing the buffer", func() {
		view := region.Bytes(2)
		Expect(view).To(HaveLen(14))
		view[0] = 0xAB
		Expect(region.Read8(2)).To(Equal(byte(0xAB)))
	})

	It("should report its wait states per width", func() {
		Expect(region.Cycles(0, memory.Width8)).To(Equal(3))
		Expect(region.Cycles(0, memory.Width16)).To(Equal(3))
		Expect(region.Cycles(0, memory.Width32)).To(Equal(6))
	})

	Context("past the end of the buffer", func() {
		It("should read zero", func() {
			region.Write32(12, 0xFFFFFFFF)
			Expect(region.Read8(16)).To(BeZero())
			Expect(region.Read16(16)).To(BeZero())
			Expect(region.Read32(0x1000)).To(BeZero())
		})

		It("should drop writes", func() {
			region.Write8(16, 1)
			region.Write32(0xFFFFFFFC, 1)
			Expect(region.Bytes(0)).To(Equal(make([]byte, 16)))
		})

		It("should return an empty view", func() {
			Expect(region.Bytes(16)).To(BeEmpty())
		})
	})

	It("should truncate loaded data to its size", func() {
		Expect(region.Load(make([]byte, 32))).To(Equal(16))
	})
})

var _ = Describe("OpenBus", func() {
	var bus memory.OpenBus

	It("should read zero and cost one cycle at every width", func() {
		bus.Write32(0x10000000, 0xFFFFFFFF)
		Expect(bus.Read8(0x10000000)).To(BeZero())
		Expect(bus.Read16(0x10000000)).To(BeZero())
		Expect(bus.Read32(0x10000000)).To(BeZero())
		for _, w := range []memory.Width{memory.Width8, memory.Width16, memory.Width32} {
			Expect(bus.Cycles(0, w)).To(Equal(1))
		}
	})

	It("should not share state through its byte view", func() {
		bus.Bytes(0)[0] = 0xFF
		Expect(bus.Bytes(0)).To(Equal([]byte{0, 0, 0, 0}))
	})
})

var _ = Describe("WaitState", func() {
	It("should reject zero costs", func() {
		Expect(memory.NewWaitState(1, 0, 1).Validate()).To(HaveOccurred())
		Expect(memory.DefaultWaitState.Validate()).To(Succeed())
	})
})
