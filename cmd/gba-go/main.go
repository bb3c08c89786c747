package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Div9851/gba-core/pkg/emulator"
)

const (
	// Text area large enough for the register dump and listing
	screenWidth  = 480
	screenHeight = 320
	// Scale factor for display
	scaleFactor = 2

	listingLines = 12
)

type Game struct {
	gba  *emulator.GBA
	keys []ebiten.Key
	err  error
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.gba.Running() {
			g.gba.Stop()
		} else {
			g.err = nil
			g.gba.Start()
		}
	}
	if !g.gba.Running() && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if _, err := g.gba.Step(); err != nil {
			g.err = err
		}
	}

	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	names := make([]string, 0, len(g.keys))
	for _, key := range g.keys {
		names = append(names, key.String())
	}
	g.gba.Input.SetKeys(names)

	if err := g.gba.Update(); err != nil {
		g.err = err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	var sb strings.Builder
	c := g.gba.CPU
	for i := 0; i < 16; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Fprintf(&sb, "r%-2d %08x  ", j, c.ReadReg(j))
		}
		sb.WriteByte('\n')
	}
	f := c.Flags()
	fmt.Fprintf(&sb, "cpsr %08x  N=%t Z=%t C=%t V=%t\n", c.CPSR, f.N, f.Z, f.C, f.V)
	fmt.Fprintf(&sb, "cycles %d\n\n", c.Cycles)
	for _, line := range g.gba.Disassemble(c.PC(), listingLines) {
		sb.WriteString(strings.ReplaceAll(line, "\t", " "))
		sb.WriteByte('\n')
	}
	if g.err != nil {
		fmt.Fprintf(&sb, "\n%v\n", g.err)
	}
	ebitenutil.DebugPrint(screen, sb.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "", "JSON config file")
	biosPath := flag.String("bios", "", "BIOS image")
	romPath := flag.String("rom", "", "cartridge image")
	flag.Parse()

	config := emulator.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = emulator.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *biosPath != "" {
		config.BIOSPath = *biosPath
	}
	if *romPath != "" {
		config.ROMPath = *romPath
	}

	gba, err := emulator.NewGBA(config)
	if err != nil {
		log.Fatal(err)
	}
	if err := gba.Boot(); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth*scaleFactor, screenHeight*scaleFactor)
	ebiten.SetWindowTitle("GBA Emulator")
	if err := ebiten.RunGame(&Game{gba: gba}); err != nil {
		log.Fatal(err)
	}
}
