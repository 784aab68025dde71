package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a data container and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openData(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("declared version:  %s\n", data.General.Declared)
			fmt.Printf("effective version: %s\n", data.General.Effective)
			fmt.Printf("bytecode version:  %d\n", data.General.BytecodeVersion)
			fmt.Printf("strings:            %d\n", len(data.Strings))
			fmt.Printf("texture page items: %d\n", len(data.TexturePageItems))
			fmt.Printf("sprites:            %d\n", len(data.Sprites))
			fmt.Printf("backgrounds:        %d\n", len(data.Backgrounds))
			fmt.Printf("objects:            %d\n", len(data.GameObjects))
			fmt.Printf("rooms:              %d\n", len(data.Rooms))
			fmt.Printf("code entries:       %d\n", len(data.Codes))
			fmt.Printf("variables:          %d\n", len(data.Variables))
			fmt.Printf("functions:          %d\n", len(data.Functions))
			fmt.Printf("fonts:              %d\n", len(data.Fonts))
			fmt.Printf("scripts:            %d\n", len(data.Scripts))
			fmt.Printf("sounds:             %d\n", len(data.Sounds))
			fmt.Printf("particle systems:   %d\n", len(data.ParticleSystems))
			fmt.Printf("particle emitters:  %d\n", len(data.ParticleEmitters))
			for _, w := range data.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			return nil
		},
	}
}
