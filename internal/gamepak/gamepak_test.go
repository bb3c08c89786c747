package gamepak_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/gamepak"
	"github.com/Div9851/gba-core/internal/memory"
)

var _ = Describe("GamePak", func() {
	var pak *gamepak.GamePak

	BeforeEach(func() {
		rom := []byte{0x78, 0x56, 0x34, 0x12, 'S', 'R', 'A', 'M'}
		pak = gamepak.NewGamePak(rom, gamepak.DefaultWaitState)
	})

	It("should read ROM little-endian", func() {
		Expect(pak.Read32(0)).To(Equal(uint32(0x12345678)))
		Expect(pak.Read16(2)).To(Equal(uint16(0x1234)))
		Expect(pak.Read8(1)).To(Equal(byte(0x56)))
	})

	It("should ignore writes", func() {
		pak.Write32(0, 0)
		pak.Write8(1, 0)
		Expect(pak.Read32(0)).To(Equal(uint32(0x12345678)))
	})

	It("should return the address pattern past the end of the image", func() {
		Expect(pak.Read16(0x100)).To(Equal(uint16(0x80)))
		Expect(pak.Read32(0x100)).To(Equal(uint32(0x00810080)))
		Expect(pak.Read8(0x101)).To(Equal(byte(0x00)))
		Expect(pak.Read8(0x100)).To(Equal(byte(0x80)))
	})

	It("should detect the backup type", func() {
		Expect(pak.BackupType).To(Equal(gamepak.SRAM))
		Expect(gamepak.GetBackupType([]byte("FLASH1M_V103"))).To(Equal(gamepak.FLASH128KB))
		Expect(gamepak.GetBackupType(nil)).To(Equal(gamepak.FLASH64KB))
	})

	It("should use its configured wait states", func() {
		Expect(pak.Cycles(0, memory.Width16)).To(Equal(5))
		Expect(pak.Cycles(0, memory.Width32)).To(Equal(8))
	})

	It("should expose ROM bytes", func() {
		Expect(pak.Bytes(4)).To(Equal([]byte("SRAM")))
		Expect(pak.Bytes(8)).To(BeEmpty())
	})
})
