// Package genutil holds small helpers shared by the VHDL generators:
// string chunking and literal/identifier formatting.
package genutil

import (
	"fmt"
	"strings"
)

// SplitString splits s into consecutive chunks of length size. The final
// chunk may be shorter. An empty input yields an empty slice. size must be
// positive; a non-positive size is a programmer error and panics.
func SplitString(s string, size int) []string {
	if size <= 0 {
		panic("genutil: chunk size must be positive")
	}
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := start + size
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[start:end])
	}
	return chunks
}

// VectorLiteral renders value as a VHDL bit-string literal of the given
// width. Bits are grouped by eight with underscores when the width is a
// multiple of eight, which covers all supported register sizes.
func VectorLiteral(value uint64, width int) string {
	if width <= 0 || width > 64 {
		panic(fmt.Sprintf("genutil: invalid vector width %d", width))
	}
	bits := fmt.Sprintf("%0*b", width, value)
	if width%8 == 0 {
		bits = strings.Join(SplitString(bits, 8), "_")
	}
	return `"` + bits + `"`
}

// Identifier converts a register or field name into a VHDL constant
// identifier: uppercase, with any non-alphanumeric runs collapsed to a
// single underscore.
func Identifier(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToUpper(name) {
		alnum := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
