//go:build debug

package memory

import (
	"log"
	"os"
)

var debugLog = log.New(os.Stderr, "memory: ", log.Lshortfile)

func outOfRange(addr uint32, size uint32, length int) {
	debugLog.Printf("access of %d bytes at 0x%08X past region end 0x%X", size, addr, length)
}
