package emulator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Div9851/gba-core/internal/gamepak"
	"github.com/Div9851/gba-core/internal/memory"
)

// Config selects the images to boot and the cartridge timing.
type Config struct {
	// BIOSPath is the BIOS image. When empty the CPU starts directly at
	// StartAddress with the register state the BIOS would leave behind.
	BIOSPath string `json:"bios_path"`

	// ROMPath is the cartridge image.
	ROMPath string `json:"rom_path"`

	// GamePakWaitState is the cartridge access time per width.
	// Default: 5/5/8 cycles.
	GamePakWaitState memory.WaitState `json:"gamepak_wait_state"`

	// StartAddress is where execution begins without a BIOS.
	// Default: 0x08000000.
	StartAddress uint32 `json:"start_address"`
}

func DefaultConfig() *Config {
	return &Config{
		GamePakWaitState: gamepak.DefaultWaitState,
		StartAddress:     0x08000000,
	}
}

// LoadConfig reads a Config from a JSON file. Missing fields keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) Validate() error {
	if err := c.GamePakWaitState.Validate(); err != nil {
		return fmt.Errorf("gamepak_wait_state: %w", err)
	}
	if c.StartAddress&3 != 0 {
		return fmt.Errorf("start_address must be word aligned, got %#x", c.StartAddress)
	}
	return nil
}
