package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/internal/disasm"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file> <code-index>",
		Short: "Disassemble one code entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("code index: %w", err)
			}
			if idx < 0 || idx >= len(data.Codes) {
				return fmt.Errorf("code index %d out of range (have %d entries)", idx, len(data.Codes))
			}
			code := &data.Codes[idx]
			fmt.Printf("%s:\n", data.String(code.Name))
			fmt.Print(disasm.Code(code.ResolvedInstructions(data), data))
			return nil
		},
	}
}
