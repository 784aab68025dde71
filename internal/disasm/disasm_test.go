package disasm

import (
	"strings"
	"testing"

	"github.com/biotomatede/libgm/internal/model"
)

func TestCodeRendersArithmeticAndBranch(t *testing.T) {
	data := &model.Data{Strings: []string{"hello"}}
	instrs := []model.Instruction{
		{Kind: model.KindArithmetic, Op: model.OpAdd, Type1: model.Int32, Type2: model.Int32, Position: 0, Size: 4},
		{Kind: model.KindPush, Op: model.OpPush, Type1: model.String, Value: model.PushValue{Str: 0}, Position: 4, Size: 8},
		{Kind: model.KindBranch, Op: model.OpBranch, BranchOffset: -8, Position: 12, Size: 4},
	}

	out := Code(instrs, data)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "add") {
		t.Errorf("line 0 = %q, want it to mention add", lines[0])
	}
	if !strings.Contains(lines[1], "hello") {
		t.Errorf("line 1 = %q, want it to mention the pushed string", lines[1])
	}
	if !strings.Contains(lines[2], "-8") {
		t.Errorf("line 2 = %q, want it to mention the branch offset", lines[2])
	}
}
