package cfg

import (
	"testing"

	"github.com/biotomatede/libgm/internal/model"
)

type stubNamer struct{}

func (stubNamer) FunctionName(ref model.FunctionRef) string { return "" }

// TestBuildWhileLoopShape constructs the instruction stream for:
//
//	head: dup.i              ; 0
//	      branchUnless after ; 4, target 16
//	      dup.i              ; 8  (loop body)
//	      branch head        ; 12, target 0
//	after: exit.i             ; 16
//
// and checks the CFG builder recovers a three-block graph with one
// LoopWhile entry spanning blocks 0-1.
func TestBuildWhileLoopShape(t *testing.T) {
	instrs := []model.Instruction{
		{Kind: model.KindExtended, Op: model.OpDup, Type1: model.Int32, Position: 0, Size: 4},
		{Kind: model.KindBranch, Op: model.OpBranchUnless, Type1: model.Int32, Position: 4, Size: 4, BranchOffset: 8},
		{Kind: model.KindExtended, Op: model.OpDup, Type1: model.Int32, Position: 8, Size: 4},
		{Kind: model.KindBranch, Op: model.OpBranch, Position: 12, Size: 4, BranchOffset: -16},
		{Kind: model.KindExtended, Op: model.OpExit, Type1: model.Int32, Position: 16, Size: 4},
	}

	g, err := Build(instrs, stubNamer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(g.Blocks))
	}
	if g.Blocks[0].Start != 0 || g.Blocks[0].End != 8 {
		t.Errorf("block 0 = [%d,%d), want [0,8)", g.Blocks[0].Start, g.Blocks[0].End)
	}
	if g.Blocks[1].Start != 8 || g.Blocks[1].End != 16 {
		t.Errorf("block 1 = [%d,%d), want [8,16)", g.Blocks[1].Start, g.Blocks[1].End)
	}
	if g.Blocks[2].Start != 16 || g.Blocks[2].End != 20 {
		t.Errorf("block 2 = [%d,%d), want [16,20)", g.Blocks[2].Start, g.Blocks[2].End)
	}

	if len(g.Loops) != 1 {
		t.Fatalf("got %d loops, want 1", len(g.Loops))
	}
	l := g.Loops[0]
	if l.Kind != LoopWhile || l.Head != 0 || l.Tail != 1 || l.After != 2 {
		t.Errorf("loop = %+v, want {Kind:While Head:0 Tail:1 After:2}", l)
	}
	if !l.HasBody || l.Body != 1 {
		t.Errorf("loop body = %d (has=%v), want body=1 (the head block's fall-through)", l.Body, l.HasBody)
	}

	if len(g.Blocks[1].Predecessors) != 1 || g.Blocks[1].Predecessors[0] != 0 {
		t.Errorf("block 1 predecessors = %v, want [0]", g.Blocks[1].Predecessors)
	}
	if len(g.Blocks[0].Predecessors) != 1 || g.Blocks[0].Predecessors[0] != 1 {
		t.Errorf("block 0 predecessors = %v, want [1] (the back edge)", g.Blocks[0].Predecessors)
	}
}

func TestBuildEmptyStream(t *testing.T) {
	g, err := Build(nil, stubNamer{})
	if err != nil {
		t.Fatalf("Build(nil): %v", err)
	}
	if len(g.Blocks) != 0 {
		t.Errorf("got %d blocks for empty stream, want 0", len(g.Blocks))
	}
}
