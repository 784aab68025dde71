package instr

import (
	"testing"

	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

type noOccurrences struct{}

func (noOccurrences) VariableAt(pos int64) (model.VariableRef, bool) { return 0, false }
func (noOccurrences) FunctionAt(pos int64) (model.FunctionRef, bool) { return 0, false }

type discardRecorder struct{}

func (discardRecorder) RecordVariable(model.VariableRef, int64, model.VariableType) {}
func (discardRecorder) RecordFunction(model.FunctionRef, int64)                     {}

func TestEncodeDecodeStreamRoundTrip(t *testing.T) {
	instrs := []model.Instruction{
		{Kind: model.KindArithmetic, Op: model.OpAdd, Type1: model.Int32, Type2: model.Int32, Size: 4},
		{Kind: model.KindPush, Op: model.OpPush, Type1: model.Int32, Value: model.PushValue{Int32: 42}, Size: 8},
		{Kind: model.KindBranch, Op: model.OpBranch, BranchOffset: -8, Size: 4},
		{Kind: model.KindExtended, Op: model.OpRet, Type1: model.Int32, Size: 4},
	}

	b := container.NewBuilder()
	if err := EncodeStream(b, instrs, discardRecorder{}); err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	buf := b.Bytes()
	r := container.NewReader(buf)
	r.EnterChunk("CODE", 0, int64(len(buf)))

	got, err := DecodeStream(r, int32(len(buf)), noOccurrences{})
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	if len(got) != len(instrs) {
		t.Fatalf("got %d instructions, want %d", len(got), len(instrs))
	}

	for i, want := range instrs {
		if got[i].Kind != want.Kind || got[i].Op != want.Op {
			t.Errorf("instr %d: kind/op = %v/%v, want %v/%v", i, got[i].Kind, got[i].Op, want.Kind, want.Op)
		}
	}
	if got[1].Value.Int32 != 42 {
		t.Errorf("push value = %d, want 42", got[1].Value.Int32)
	}
	if got[2].BranchOffset != -8 {
		t.Errorf("branch offset = %d, want -8", got[2].BranchOffset)
	}
}

func TestDecodeStreamUnknownOpcodeFatal(t *testing.T) {
	b := container.NewBuilder()
	b.WriteU8(0)
	b.WriteU8(0)
	b.WriteU8(0)
	b.WriteU8(0xAB) // not a recognized opcode
	buf := b.Bytes()
	r := container.NewReader(buf)
	r.EnterChunk("CODE", 0, int64(len(buf)))

	if _, err := DecodeStream(r, int32(len(buf)), noOccurrences{}); err == nil {
		t.Fatal("DecodeStream: want error for unknown opcode, got nil")
	}
}
