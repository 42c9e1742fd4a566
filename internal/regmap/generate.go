package regmap

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/canfd-tools/cantb/internal/ctxlog"
	"github.com/canfd-tools/cantb/internal/genutil"
)

// GeneratePackage writes the VHDL register-map package to w: one ADDR_*
// constant per register plus a *_RSTVAL constant for its reset value. The
// register list is validated first; any violation aborts generation before
// anything is written.
func GeneratePackage(ctx context.Context, w io.Writer, pkgName string, regs []Register) error {
	logger := ctxlog.FromContext(ctx)

	if err := Validate(regs); err != nil {
		return fmt.Errorf("register map validation failed: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- Register map package %s.\n", pkgName)
	fmt.Fprintf(bw, "-- AUTOGENERATED by cantb, do not edit.\n\n")
	fmt.Fprintf(bw, "library ieee;\nuse ieee.std_logic_1164.all;\n\n")
	fmt.Fprintf(bw, "package %s is\n\n", pkgName)

	for _, reg := range regs {
		ident := genutil.Identifier(reg.Name)
		if reg.Description != "" {
			fmt.Fprintf(bw, "    -- %s (%s)\n", reg.Description, reg.Mode)
		}
		fmt.Fprintf(bw, "    constant ADDR_%s : std_logic_vector(%d downto 0) := x\"%04X\";\n",
			ident, AddressWidth-1, reg.Offset)
		fmt.Fprintf(bw, "    constant %s_RSTVAL : std_logic_vector(%d downto 0) := %s;\n\n",
			ident, reg.Size-1, genutil.VectorLiteral(reg.Reset, reg.Size))
	}

	fmt.Fprintf(bw, "end package %s;\n", pkgName)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write register package: %w", err)
	}

	logger.Info("Register package generated.", "package", pkgName, "registers", len(regs))
	return nil
}
