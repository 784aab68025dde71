package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/biotomatede/libgm/internal/cfg"
)

func newCFGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cfg <file> <code-index>",
		Short: "Print the control-flow graph for one code entry",
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
			g, err := cfg.Build(code.ResolvedInstructions(data), data)
			if err != nil {
				return err
			}
			for i, b := range g.Blocks {
				fmt.Printf("block %d [0x%x, 0x%x): preds=%v\n", i, b.Start, b.End, b.Predecessors)
				for _, e := range b.Successors {
					fmt.Printf("  -> block %d (%s)\n", e.Target, edgeKindName(e.Kind))
				}
			}
			for _, l := range g.Loops {
				fmt.Printf("loop %s: head=block%d tail=block%d after=block%d\n", loopKindName(l.Kind), l.Head, l.Tail, l.After)
			}
			for _, h := range g.TryHooks {
				fmt.Printf("try-hook at block %d: finally=0x%x hasCatch=%v\n", h.BlockIndex, h.FinallyAddr, h.HasCatch)
			}
			return nil
		},
	}
}

func edgeKindName(k cfg.EdgeKind) string {
	switch k {
	case cfg.EdgeFallthrough:
		return "fallthrough"
	case cfg.EdgeBranch:
		return "branch"
	case cfg.EdgeCatch:
		return "catch"
	default:
		return "unknown"
	}
}

func loopKindName(k cfg.LoopKind) string {
	switch k {
	case cfg.LoopWhile:
		return "while"
	case cfg.LoopDoUntil:
		return "do-until"
	case cfg.LoopRepeat:
		return "repeat"
	case cfg.LoopWith:
		return "with"
	default:
		return "unknown"
	}
}
