package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/gm"
)

func newSerializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serialize <in> <out>",
		Short: "Parse a container and write it back out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			logPhase("serializing to %s", args[1])
			out, err := gm.Serialize(data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], out, 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(out), args[1])
			return nil
		},
	}
}
