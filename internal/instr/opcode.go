// Package instr implements the bytecode instruction codec (spec §4.5):
// decoding and encoding the 4-byte-aligned instruction stream of a CODE
// entry, including the variable/function occurrence-chain trailers (spec
// §4.6, consulted here through the OccurrenceResolver/OccurrenceRecorder
// interfaces rather than owned by this package; see internal/decode and
// internal/encode for the two-pass protocol that drives them).
package instr

import "github.com/biotomatede/libgm/internal/model"

// sizeOf returns the fully-decoded byte size of an instruction of the
// given opcode/kind/type, the same sizes decodeOne assigns to
// Instruction.Size. decodeOne sets Size itself and does not call sizeOf;
// the CFG builder consumes Instruction.Size rather than recomputing it
// (spec §4.5).
func sizeOf(kind model.Kind, op model.Opcode, t1 model.DataType) int {
	switch kind {
	case model.KindArithmetic:
		return 4
	case model.KindCompare:
		return 4
	case model.KindBranch:
		return 4
	case model.KindExtended:
		return 4
	case model.KindBreak:
		return 4
	case model.KindPop:
		return 4 + 8
	case model.KindCall:
		return 4 + 8
	case model.KindPushReference:
		return 4 + 4
	case model.KindPush:
		switch t1 {
		case model.Int16:
			return 4
		case model.Int32, model.Float, model.Bool, model.String:
			return 4 + 4
		case model.Int64, model.Double:
			return 4 + 8
		case model.Var:
			return 4 + 8 // CodeVariable or FunctionOccurrence descriptor
		}
	}
	return 4
}

// classify maps an opcode to the Kind that drives its trailer shape. This
// implementation follows the bytecode-15+ convention named in spec §9;
// it intentionally has no fallback branch for bytecode-14's disjoint
// values, so an unrecognized opcode is fatal (spec §9 "Unknown opcodes
// must be fatal with the opcode byte in hex").
func classify(op model.Opcode) (model.Kind, bool) {
	switch op {
	case model.OpConv, model.OpMul, model.OpDiv, model.OpRem, model.OpMod,
		model.OpAdd, model.OpSub, model.OpAnd, model.OpOr, model.OpXor,
		model.OpNeg, model.OpNot, model.OpShl, model.OpShr:
		return model.KindArithmetic, true
	case model.OpCmp:
		return model.KindCompare, true
	case model.OpBranch, model.OpBranchIf, model.OpBranchUnless,
		model.OpPushWithContext, model.OpPopWithContext:
		return model.KindBranch, true
	case model.OpPush, model.OpPushLocal, model.OpPushGlobal, model.OpPushBuiltin:
		return model.KindPush, true
	case model.OpPushImmediate:
		return model.KindPushReference, true
	case model.OpPop:
		return model.KindPop, true
	case model.OpCall, model.OpCallV:
		return model.KindCall, true
	case model.OpDup, model.OpPopz:
		return model.KindExtended, true
	case model.OpRet, model.OpExit:
		return model.KindExtended, true
	case model.OpBreak:
		return model.KindBreak, true
	default:
		return 0, false
	}
}
