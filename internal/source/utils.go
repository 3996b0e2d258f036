package source

import (
	"bytes"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF turns every "\r\n" into "\n"; a lone '\r' stays and the
// scanner treats it as whitespace.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; off++ {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		pos, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		idx = append(idx, pos)
	}
}

// lineOf returns the 1-based line containing off and the offset it starts at.
func lineOf(lineIdx []uint32, off uint32) (line, start uint32) {
	// число '\n' строго до off
	n, _ := slices.BinarySearch(lineIdx, off)
	if n == 0 {
		return 1, 0
	}
	ln, err := safecast.Conv[uint32](n + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return ln, lineIdx[n-1] + 1
}
