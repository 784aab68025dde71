// Package cfg builds the control-flow graph that is the first
// decompiler stage (spec §4.7): basic blocks, predecessor/successor
// edges, try/catch/finally side-edges recovered from the compiler's
// "try-hook" call pattern, and loop detection over the wired graph.
package cfg

import (
	"fmt"
	"sort"

	"github.com/biotomatede/libgm/internal/model"
)

// EdgeKind distinguishes why one block leads to another.
type EdgeKind int

const (
	EdgeFallthrough EdgeKind = iota
	EdgeBranch
	EdgeCatch
)

// Edge is one successor link out of a Block.
type Edge struct {
	Kind   EdgeKind
	Target int // index into Graph.Blocks
}

// Block is a maximal run of instructions with no internal control-flow
// boundary (spec §4.7).
type Block struct {
	Start, End   int64 // instruction-stream byte addresses, [Start,End)
	Instructions []model.Instruction
	Successors   []Edge
	Predecessors []int
}

// TryHook records one recognized `@@try_hook@@` pattern (spec §4.7): the
// block ending in its `popz.v`, and the finally/catch targets it names.
// BlockIndex is filled in once the block graph exists; PopPosition (the
// byte address of the pattern's closing popz.v) is what findTryHooks can
// name before any block exists.
type TryHook struct {
	BlockIndex  int
	PopPosition int64
	FinallyAddr int64
	CatchAddr   int64
	HasCatch    bool
}

// LoopKind distinguishes the four loop shapes spec §4.7 recognizes.
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopDoUntil
	LoopRepeat
	LoopWith
)

// Loop is one detected loop, addressed by block index into Graph.Blocks.
// Body, Before and BreakBlock are only meaningful for some kinds, mirroring
// this codebase's established "fields only valid for a subset" convention.
type Loop struct {
	Kind          LoopKind
	Head, Tail    int
	After         int
	Body          int
	HasBody       bool
	Before        int
	HasBefore     bool
	BreakBlock    int
	HasBreakBlock bool
}

// Graph is the fully wired control-flow graph for one code entry's
// instruction stream (spec §4.7).
type Graph struct {
	Blocks   []Block
	TryHooks []TryHook
	Loops    []Loop
}

// FunctionNamer resolves a function occurrence's name, used to recognize
// the `@@try_hook@@` call target without internal/cfg depending on the
// whole decode-time Data graph.
type FunctionNamer interface {
	FunctionName(ref model.FunctionRef) string
}

// Build constructs the graph for one instruction stream. instrs must be
// in ascending Position order with contiguous coverage, exactly what
// internal/instr.DecodeStream (or model.Code.ResolvedInstructions for a
// child entry) produces.
func Build(instrs []model.Instruction, names FunctionNamer) (*Graph, error) {
	if len(instrs) == 0 {
		return &Graph{}, nil
	}
	byPos := make(map[int64]int, len(instrs))
	for i, in := range instrs {
		byPos[in.Position] = i
	}
	streamEnd := instrs[len(instrs)-1].Position + int64(instrs[len(instrs)-1].Size)

	hooks, err := findTryHooks(instrs, names)
	if err != nil {
		return nil, err
	}

	boundaries := map[int64]bool{0: true, streamEnd: true}
	for _, in := range instrs {
		end := in.Position + int64(in.Size)
		switch in.Op {
		case model.OpExit, model.OpRet:
			boundaries[end] = true
		}
		if model.IsBranchFamily(in.Op) && !in.ExitMagic {
			boundaries[end] = true
			target := end + int64(in.BranchOffset)
			if target%4 != 0 {
				return nil, fmt.Errorf("cfg: branch at %d targets non-instruction-boundary address %d", in.Position, target)
			}
			boundaries[target] = true
		}
	}
	for _, h := range hooks {
		boundaries[h.FinallyAddr] = true
		if h.HasCatch {
			boundaries[h.CatchAddr] = true
		}
	}

	addrs := make([]int64, 0, len(boundaries))
	for a := range boundaries {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	g := &Graph{}
	for i := 0; i+1 < len(addrs); i++ {
		start, end := addrs[i], addrs[i+1]
		if start >= streamEnd {
			continue
		}
		if _, ok := byPos[start]; !ok {
			return nil, fmt.Errorf("cfg: block boundary %d does not fall on an instruction start", start)
		}
		var block []model.Instruction
		for pos := start; pos < end; {
			idx, ok := byPos[pos]
			if !ok {
				return nil, fmt.Errorf("cfg: address %d inside block [%d,%d) is not an instruction boundary", pos, start, end)
			}
			in := instrs[idx]
			block = append(block, in)
			pos += int64(in.Size)
		}
		g.Blocks = append(g.Blocks, Block{Start: start, End: end, Instructions: block})
	}

	blockContaining := func(addr int64) (int, error) {
		i := sort.Search(len(g.Blocks), func(i int) bool { return g.Blocks[i].End > addr })
		if i >= len(g.Blocks) || g.Blocks[i].Start > addr {
			return 0, fmt.Errorf("cfg: address %d does not fall inside any block", addr)
		}
		return i, nil
	}

	hookByPop := make(map[int64]int, len(hooks)) // pop.Position -> index into hooks
	for i, h := range hooks {
		hookByPop[h.PopPosition] = i
	}

	for bi := range g.Blocks {
		b := &g.Blocks[bi]
		last := b.Instructions[len(b.Instructions)-1]
		end := last.Position + int64(last.Size)

		if hi, ok := hookByPop[last.Position]; ok {
			hooks[hi].BlockIndex = bi
			hook := hooks[hi]
			if end < streamEnd {
				fallIdx, err := blockContaining(end)
				if err != nil {
					return nil, err
				}
				b.Successors = append(b.Successors, Edge{EdgeFallthrough, fallIdx})
			}
			finallyIdx, err := blockContaining(hook.FinallyAddr)
			if err != nil {
				return nil, err
			}
			b.Successors = append(b.Successors, Edge{EdgeBranch, finallyIdx})
			if hook.HasCatch {
				catchIdx, err := blockContaining(hook.CatchAddr)
				if err != nil {
					return nil, err
				}
				b.Successors = append(b.Successors, Edge{EdgeCatch, catchIdx})
			}
			continue
		}

		switch {
		case last.Op == model.OpExit || last.Op == model.OpRet:
			// no successor
		case model.IsBranchFamily(last.Op) && !last.ExitMagic:
			target := end + int64(last.BranchOffset)
			targetIdx, err := blockContaining(target)
			if err != nil {
				return nil, err
			}
			b.Successors = append(b.Successors, Edge{EdgeBranch, targetIdx})
			if last.Op != model.OpBranch {
				if end < streamEnd {
					fallIdx, err := blockContaining(end)
					if err != nil {
						return nil, err
					}
					b.Successors = append(b.Successors, Edge{EdgeFallthrough, fallIdx})
				}
			}
		default:
			if end < streamEnd {
				fallIdx, err := blockContaining(end)
				if err != nil {
					return nil, err
				}
				b.Successors = append(b.Successors, Edge{EdgeFallthrough, fallIdx})
			}
		}
	}

	for bi := range g.Blocks {
		for _, e := range g.Blocks[bi].Successors {
			g.Blocks[e.Target].Predecessors = append(g.Blocks[e.Target].Predecessors, bi)
		}
	}

	g.TryHooks = hooks
	g.Loops = detectLoops(g)
	return g, nil
}

// findTryHooks scans for the six-instruction `@@try_hook@@` pattern (spec
// §4.7): push.i finally_addr; conv.i.v; push.i catch_addr; conv.i.v;
// call @@try_hook@@; popz.v.
func findTryHooks(instrs []model.Instruction, names FunctionNamer) ([]TryHook, error) {
	var hooks []TryHook
	for i := 0; i+5 < len(instrs); i++ {
		a, b, c, d, call, pop := instrs[i], instrs[i+1], instrs[i+2], instrs[i+3], instrs[i+4], instrs[i+5]
		if !isPushInt(a) || !isConvIntToVar(b) || !isPushInt(c) || !isConvIntToVar(d) {
			continue
		}
		if call.Kind != model.KindCall || call.Function == nil {
			continue
		}
		if names.FunctionName(call.Function.Function) != "@@try_hook@@" {
			continue
		}
		if pop.Kind != model.KindExtended || pop.Op != model.OpPopz {
			continue
		}
		finallyAddr := int64(a.Value.Int32)
		catchAddr := int64(c.Value.Int32)
		if finallyAddr%4 != 0 || (catchAddr != -1 && catchAddr%4 != 0) {
			return nil, fmt.Errorf("cfg: try-hook pattern at instruction %d names a non-instruction-boundary address", a.Position)
		}
		hooks = append(hooks, TryHook{
			PopPosition: pop.Position,
			FinallyAddr: finallyAddr,
			CatchAddr:   catchAddr,
			HasCatch:    catchAddr != -1,
		})
	}
	return hooks, nil
}

func isPushInt(in model.Instruction) bool {
	return in.Kind == model.KindPush && in.Type1 == model.Int32
}

func isConvIntToVar(in model.Instruction) bool {
	return in.Kind == model.KindArithmetic && in.Op == model.OpConv && in.Type1 == model.Int32 && in.Type2 == model.Var
}

// detectLoops runs spec §4.7's loop-detection pass over the fully wired
// graph in reverse block order. This records each loop's head/tail/after
// and, for `with` loops, the break block shape; it does not perform the
// "reroute the graph into a single compound node" rewrite described in
// spec §4.7; that rewrite is a decompiler-output concern layered above
// this package's job of exposing an accurate block graph plus the loops
// found in it.
func detectLoops(g *Graph) []Loop {
	var loops []Loop
	seenWhileHead := make(map[int]bool)
	for bi := len(g.Blocks) - 1; bi >= 0; bi-- {
		b := g.Blocks[bi]
		if len(b.Instructions) == 0 {
			continue
		}
		last := b.Instructions[len(b.Instructions)-1]
		switch last.Op {
		case model.OpBranch:
			for _, e := range b.Successors {
				if e.Kind == EdgeBranch && e.Target < bi && !seenWhileHead[e.Target] {
					seenWhileHead[e.Target] = true
					loop := Loop{Kind: LoopWhile, Head: e.Target, Tail: bi, After: bi + 1}
					for _, he := range g.Blocks[e.Target].Successors {
						if he.Kind == EdgeFallthrough {
							loop.Body, loop.HasBody = he.Target, true
						}
					}
					loops = append(loops, loop)
				}
			}
		case model.OpBranchUnless:
			if last.BranchOffset < 0 {
				head := blockTarget(g, bi)
				loops = append(loops, Loop{Kind: LoopDoUntil, Head: head, Tail: bi, After: bi + 1})
			}
		case model.OpBranchIf:
			if last.BranchOffset < 0 {
				head := blockTarget(g, bi)
				loops = append(loops, Loop{Kind: LoopRepeat, Head: head, Tail: bi, After: bi + 1})
			}
		case model.OpPushWithContext:
			loop := Loop{Kind: LoopWith, Head: bi}
			for _, e := range b.Successors {
				if e.Kind == EdgeBranch {
					loop.Body, loop.HasBody = e.Target, true
				}
			}
			if matching, ok := findMatchingPopWithContext(g, bi); ok {
				loop.Tail = matching
				for _, e := range g.Blocks[matching].Successors {
					if e.Kind == EdgeFallthrough {
						loop.After = e.Target
						if isBreakBlockShape(g.Blocks[e.Target]) {
							loop.BreakBlock, loop.HasBreakBlock = e.Target, true
						}
					}
				}
			}
			loops = append(loops, loop)
		}
	}
	return loops
}

func blockTarget(g *Graph, bi int) int {
	for _, e := range g.Blocks[bi].Successors {
		if e.Kind == EdgeBranch {
			return e.Target
		}
	}
	return bi
}

func findMatchingPopWithContext(g *Graph, pushIdx int) (int, bool) {
	depth := 0
	for i := pushIdx; i < len(g.Blocks); i++ {
		for _, in := range g.Blocks[i].Instructions {
			switch in.Op {
			case model.OpPushWithContext:
				depth++
			case model.OpPopWithContext:
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// isBreakBlockShape recognizes the two-instruction `[branch; popenvexit]`
// block spec §4.7 names as a `with` loop's break block.
func isBreakBlockShape(b Block) bool {
	if len(b.Instructions) != 2 {
		return false
	}
	return b.Instructions[0].Op == model.OpBranch && b.Instructions[1].Op == model.OpPopWithContext && b.Instructions[1].ExitMagic
}
