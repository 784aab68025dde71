package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <file>",
		Short: "Print the declared and detected engine version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("declared:  %s\n", data.General.Declared)
			fmt.Printf("effective: %s\n", data.General.Effective)
			fmt.Printf("bytecode:  %d\n", data.General.BytecodeVersion)
			fmt.Printf("IDE:       %d.%d.%d.%d\n", data.General.IDE.Major, data.General.IDE.Minor, data.General.IDE.Release, data.General.IDE.Build)
			return nil
		},
	}
}
