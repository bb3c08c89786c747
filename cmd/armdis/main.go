package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Div9851/gba-core/internal/cpu"
)

const tabWidth = 8

// expandTabs replaces tabs with spaces so the line can be clipped by column.
func expandTabs(line string) string {
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// checkBase narrows the -base flag to a bus address.
func checkBase(base uint64) (uint32, error) {
	if base > math.MaxUint32 {
		return 0, fmt.Errorf("base address %#x exceeds 32 bits", base)
	}
	return uint32(base), nil
}

// disassemble writes one line per whole word of data, at most count lines
// when count is positive, clipped to width columns when width is positive.
// It returns the number of trailing bytes that do not form a word.
func disassemble(w io.Writer, data []byte, base uint32, count, width int) int {
	words := len(data) / 4
	if count > 0 && count < words {
		words = count
	}
	for i := 0; i < words; i++ {
		pc := base + uint32(i)*4
		inst := cpu.Decode(binary.LittleEndian.Uint32(data[i*4:]), pc)
		line := fmt.Sprintf("%08x:\t%08x\t%s", pc, inst.Word, inst)
		if width > 0 {
			line = expandTabs(line)
			if len(line) > width {
				line = line[:width]
			}
		}
		fmt.Fprintln(w, line)
	}
	return len(data) % 4
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("armdis: ")

	base := flag.Uint64("base", 0x08000000, "load address of the first word")
	count := flag.Int("n", 0, "number of instructions to list (0 for all)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: armdis [-base addr] [-n count] file\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	addr, err := checkBase(*base)
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	width := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	out := bufio.NewWriter(os.Stdout)
	trailing := disassemble(out, data, addr, *count, width)
	if err := out.Flush(); err != nil {
		log.Fatal(err)
	}
	if trailing > 0 && *count == 0 {
		log.Printf("ignoring %d trailing byte(s) after the last whole word", trailing)
	}
}
