package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStringsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strings <file>",
		Short: "Dump the string table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			for i, s := range data.Strings {
				fmt.Printf("%6d: %q\n", i, s)
			}
			return nil
		},
	}
}
