package emulator_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Div9851/gba-core/internal/memory"
	"github.com/Div9851/gba-core/pkg/emulator"
)

var _ = Describe("Config", func() {
	It("should default to the cartridge entry point and 5/5/8 wait-states", func() {
		config := emulator.DefaultConfig()
		Expect(config.StartAddress).To(Equal(uint32(0x08000000)))
		Expect(config.GamePakWaitState).To(Equal(memory.NewWaitState(5, 5, 8)))
		Expect(config.Validate()).To(Succeed())
	})

	It("should round trip through a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "gba.json")
		config := emulator.DefaultConfig()
		config.ROMPath = "game.gba"
		config.GamePakWaitState = memory.NewWaitState(3, 3, 6)
		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := emulator.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should keep defaults for missing fields", func() {
		path := filepath.Join(GinkgoT().TempDir(), "gba.json")
		Expect(os.WriteFile(path, []byte(`{"rom_path": "game.gba"}`), 0644)).To(Succeed())

		loaded, err := emulator.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.ROMPath).To(Equal("game.gba"))
		Expect(loaded.StartAddress).To(Equal(uint32(0x08000000)))
	})

	It("should report a missing file", func() {
		_, err := emulator.LoadConfig(filepath.Join(GinkgoT().TempDir(), "missing.json"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should reject non-positive wait-states", func() {
		config := emulator.DefaultConfig()
		config.GamePakWaitState.Access16 = 0
		Expect(config.Validate()).To(MatchError(ContainSubstring("gamepak_wait_state")))
	})

	It("should reject an unaligned start address", func() {
		config := emulator.DefaultConfig()
		config.StartAddress = 0x08000002
		Expect(config.Validate()).NotTo(Succeed())
	})
})
