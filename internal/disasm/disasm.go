// Package disasm is a minimal text disassembler over []model.Instruction
// (spec SPEC_FULL.md §7, grounded on original_source/libgm's
// gml/assembly/disassembler.rs). It never mutates Data and is not part of
// the core codec; it exists as an in-tree reference consumer useful for
// exercising the instruction codec's round-trip and for the gmtool
// `disasm` subcommand.
package disasm

import (
	"fmt"
	"strings"

	"github.com/biotomatede/libgm/internal/model"
)

// Names resolves the identifiers a disassembled line needs but that
// aren't carried on Instruction itself (string/variable/function names).
// *model.Data satisfies this directly.
type Names interface {
	String(ref model.StringRef) string
	VariableName(ref model.VariableRef) string
	FunctionName(ref model.FunctionRef) string
}

// Code renders every instruction of a code entry, one per line, each
// prefixed with its stream-relative byte position (spec's "position
// travels with the instruction" choice makes this a direct lookup, no
// recomputation).
func Code(instrs []model.Instruction, names Names) string {
	var b strings.Builder
	for _, in := range instrs {
		fmt.Fprintf(&b, "%5d: %s\n", in.Position, Instruction(in, names))
	}
	return b.String()
}

// Instruction renders a single instruction without its position prefix.
func Instruction(in model.Instruction, names Names) string {
	op := opcodeName(in.Op)
	switch in.Kind {
	case model.KindArithmetic:
		return fmt.Sprintf("%s.%s.%s", op, dt(in.Type1), dt(in.Type2))
	case model.KindCompare:
		return fmt.Sprintf("%s.%s.%s %s", op, dt(in.Type1), dt(in.Type2), cmp(in.Comparison))
	case model.KindBranch:
		if in.ExitMagic {
			return op + " <exit>"
		}
		return fmt.Sprintf("%s %+d", op, in.BranchOffset)
	case model.KindExtended, model.KindBreak:
		return fmt.Sprintf("%s.%s", op, dt(in.Type1))
	case model.KindPushReference:
		return fmt.Sprintf("%s.i %s:%d", op, in.Asset.Kind, in.Asset.Index)
	case model.KindPop:
		return fmt.Sprintf("%s.%s.%s %s", op, dt(in.Type1), dt(in.Type2), variableText(in.Variable, names))
	case model.KindCall:
		return fmt.Sprintf("%s.i %s(%d)", op, names.FunctionName(in.Function.Function), in.ArgCount)
	case model.KindPush:
		return fmt.Sprintf("%s.%s %s", op, dt(in.Type1), pushOperand(in, names))
	default:
		return fmt.Sprintf("<unknown kind %d>", in.Kind)
	}
}

func pushOperand(in model.Instruction, names Names) string {
	switch in.Type1 {
	case model.Int16:
		return fmt.Sprintf("%d", in.Value.Int16)
	case model.Int32:
		return fmt.Sprintf("%d", in.Value.Int32)
	case model.Int64:
		return fmt.Sprintf("%d", in.Value.Int64)
	case model.Double:
		return fmt.Sprintf("%g", in.Value.Double)
	case model.Float:
		return fmt.Sprintf("%g", in.Value.Float32)
	case model.Bool:
		return fmt.Sprintf("%t", in.Value.Bool)
	case model.String:
		return fmt.Sprintf("%q", names.String(in.Value.Str))
	case model.Var:
		if in.Variable != nil {
			return variableText(in.Variable, names)
		}
		if in.Function != nil {
			return names.FunctionName(in.Function.Function)
		}
		return "<missing operand>"
	default:
		return "<invalid datatype>"
	}
}

func variableText(cv *model.CodeVariable, names Names) string {
	if cv == nil {
		return "<missing variable>"
	}
	return fmt.Sprintf("%s.%s", instanceText(cv.InstanceType), names.VariableName(cv.Variable))
}

func instanceText(t model.InstanceType) string {
	switch t {
	case model.InstanceSelf:
		return "self"
	case model.InstanceOther:
		return "other"
	case model.InstanceAll:
		return "all"
	case model.InstanceNone:
		return "noone"
	case model.InstanceGlobal:
		return "global"
	case model.InstanceBuiltin:
		return "builtin"
	case model.InstanceLocal:
		return "local"
	case model.InstanceStackTop:
		return "stacktop"
	case model.InstanceArgument:
		return "arg"
	default:
		if t.IsRoomInstance() {
			return fmt.Sprintf("inst%d", int(t))
		}
		return fmt.Sprintf("obj%d", int(t))
	}
}

func dt(d model.DataType) string {
	switch d {
	case model.Double:
		return "d"
	case model.Float:
		return "f"
	case model.Int32:
		return "i"
	case model.Int64:
		return "l"
	case model.Bool:
		return "b"
	case model.Var:
		return "v"
	case model.String:
		return "s"
	case model.Int16:
		return "e"
	default:
		return "?"
	}
}

func cmp(c model.ComparisonType) string {
	switch c {
	case model.CmpLT:
		return "lt"
	case model.CmpLE:
		return "le"
	case model.CmpEQ:
		return "eq"
	case model.CmpNE:
		return "ne"
	case model.CmpGE:
		return "ge"
	case model.CmpGT:
		return "gt"
	default:
		return "?"
	}
}

func opcodeName(op model.Opcode) string {
	switch op {
	case model.OpConv:
		return "conv"
	case model.OpMul:
		return "mul"
	case model.OpDiv:
		return "div"
	case model.OpRem:
		return "rem"
	case model.OpMod:
		return "mod"
	case model.OpAdd:
		return "add"
	case model.OpSub:
		return "sub"
	case model.OpAnd:
		return "and"
	case model.OpOr:
		return "or"
	case model.OpXor:
		return "xor"
	case model.OpNeg:
		return "neg"
	case model.OpNot:
		return "not"
	case model.OpShl:
		return "shl"
	case model.OpShr:
		return "shr"
	case model.OpCmp:
		return "cmp"
	case model.OpPop:
		return "pop"
	case model.OpDup:
		return "dup"
	case model.OpRet:
		return "ret"
	case model.OpExit:
		return "exit"
	case model.OpPopz:
		return "popz"
	case model.OpBranch:
		return "b"
	case model.OpBranchIf:
		return "bt"
	case model.OpBranchUnless:
		return "bf"
	case model.OpPushWithContext:
		return "pushenv"
	case model.OpPopWithContext:
		return "popenv"
	case model.OpPush:
		return "push"
	case model.OpPushLocal:
		return "pushloc"
	case model.OpPushGlobal:
		return "pushglb"
	case model.OpPushBuiltin:
		return "pushbltn"
	case model.OpPushImmediate:
		return "pushi"
	case model.OpCall:
		return "call"
	case model.OpCallV:
		return "callv"
	case model.OpBreak:
		return "break"
	default:
		return fmt.Sprintf("op%02x", byte(op))
	}
}
