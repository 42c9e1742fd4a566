// Package regmap models the core's register map and generates the VHDL
// package with address constants and reset vectors for it.
package regmap

import (
	"fmt"
	"sort"
)

// AddressWidth is the width of the generated address constants. A 16-bit
// space comfortably covers the core's register file; every offset must fit
// in it.
const AddressWidth = 16

// maxOffset is the first byte offset outside the address space.
const maxOffset = 1 << AddressWidth

// Register is one addressable register of the memory map.
type Register struct {
	// Name is the register's symbolic name, e.g. "device_id".
	Name string

	// Offset is the byte offset of the register's low-order byte.
	Offset uint32

	// Size is the register width in bits: 8, 16 or 32.
	Size int

	// Mode is the access mode: "rw", "r" or "w".
	Mode string

	// Reset is the register value after reset.
	Reset uint64

	// Description is an optional human-readable comment carried into the
	// generated package.
	Description string
}

// Validate checks the register list for the constraints the generated
// package relies on: supported sizes and modes, offsets aligned to the
// register width and inside the address space, no overlapping byte ranges,
// unique names.
func Validate(regs []Register) error {
	byName := make(map[string]struct{}, len(regs))
	for _, reg := range regs {
		switch reg.Size {
		case 8, 16, 32:
		default:
			return fmt.Errorf("register %s: unsupported size %d (want 8, 16 or 32)", reg.Name, reg.Size)
		}
		switch reg.Mode {
		case "rw", "r", "w":
		default:
			return fmt.Errorf("register %s: unsupported mode %q (want rw, r or w)", reg.Name, reg.Mode)
		}
		if width := uint32(reg.Size / 8); reg.Offset%width != 0 {
			return fmt.Errorf("register %s: offset 0x%x is not aligned to its %d-bit width", reg.Name, reg.Offset, reg.Size)
		}
		if uint64(reg.Offset)+uint64(reg.Size/8) > maxOffset {
			return fmt.Errorf("register %s: offset 0x%x does not fit the %d-bit address space", reg.Name, reg.Offset, AddressWidth)
		}
		if reg.Size < 64 && reg.Reset >= uint64(1)<<uint(reg.Size) {
			return fmt.Errorf("register %s: reset value 0x%x does not fit in %d bits", reg.Name, reg.Reset, reg.Size)
		}
		if _, dup := byName[reg.Name]; dup {
			return fmt.Errorf("register %s: duplicate name", reg.Name)
		}
		byName[reg.Name] = struct{}{}
	}

	ordered := make([]Register, len(regs))
	copy(ordered, regs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Offset < ordered[j].Offset })
	for i := 1; i < len(ordered); i++ {
		prev := ordered[i-1]
		if uint64(ordered[i].Offset) < uint64(prev.Offset)+uint64(prev.Size/8) {
			return fmt.Errorf("register %s at 0x%x overlaps %s", ordered[i].Name, ordered[i].Offset, prev.Name)
		}
	}
	return nil
}
