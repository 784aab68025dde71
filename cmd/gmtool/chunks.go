package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/internal/container"
)

func newChunksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file>",
		Short: "List the chunk directory of a data container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, dir, warnings, err := container.ReadForm(buf, globalOpts.allowUnknownChunks)
			if err != nil {
				return err
			}
			for _, tag := range dir.Tags() {
				entry, _ := dir.Chunk(tag)
				marker := ""
				if tag == dir.LastTag() {
					marker = " (last, unpadded)"
				}
				fmt.Printf("%s  %8d bytes  [0x%x, 0x%x)%s\n", tag, entry.End-entry.Start, entry.Start, entry.End, marker)
			}
			for _, w := range warnings {
				fmt.Printf("warning: %s\n", w)
			}
			return nil
		},
	}
}
