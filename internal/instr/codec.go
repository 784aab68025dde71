package instr

import (
	"fmt"

	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// OccurrenceResolver answers "what does the descriptor at this position
// refer to", consulted while decoding a CODE entry's instructions. Its
// maps are built beforehand by walking the VARI/FUNC occurrence chains
// (spec §4.6's read protocol); this package never walks the chain
// itself, keeping the two passes ("discover positions during
// variable-table decode", "consume positions during instruction decode")
// structurally separate.
type OccurrenceResolver interface {
	VariableAt(pos int64) (ref model.VariableRef, ok bool)
	FunctionAt(pos int64) (ref model.FunctionRef, ok bool)
}

// OccurrenceRecorder is the write-side twin: EncodeStream calls it once
// per variable/function descriptor it emits, in stream order, so the
// caller can later walk each list to rebuild the chain (spec §4.6's write
// protocol). It does not write occurrence words itself: EncodeStream
// writes placeholders; internal/encode's finalize pass overwrites them
// once every position is known.
type OccurrenceRecorder interface {
	RecordVariable(ref model.VariableRef, pos int64, vt model.VariableType)
	RecordFunction(ref model.FunctionRef, pos int64)
}

const exitMagic24 uint32 = 0x00F00000

// DecodeStream decodes length bytes of instructions starting at the
// reader's current position (spec §4.5). The returned instructions carry
// Position relative to the start of the decode (byte 0 of this call), so
// a child CODE entry sharing a parent's stream must be decoded as part of
// the parent's single call (spec §3: "child codes share the parent's
// instructions starting at offset").
func DecodeStream(r *container.Reader, length int32, resolver OccurrenceResolver) ([]model.Instruction, error) {
	start := r.Pos()
	end := start + int64(length)
	var out []model.Instruction
	for r.Pos() < end {
		pos := r.Pos() - start
		instr, err := decodeOne(r, pos, resolver)
		if err != nil {
			return nil, err
		}
		out = append(out, instr)
	}
	if r.Pos() != end {
		return nil, r.NewError(container.KindInvariantViolation,
			"instruction stream overran declared length (pos=%d end=%d)", r.Pos(), end)
	}
	total := int64(0)
	for _, in := range out {
		total += int64(in.Size)
	}
	if total != int64(length) {
		return nil, r.NewError(container.KindInvariantViolation,
			"sum of instruction sizes %d != declared length %d", total, length)
	}
	return out, nil
}

func decodeOne(r *container.Reader, pos int64, resolver OccurrenceResolver) (model.Instruction, error) {
	raw, err := r.ReadU32()
	if err != nil {
		return model.Instruction{}, err
	}
	b0 := byte(raw)
	b1 := byte(raw >> 8)
	b2 := byte(raw >> 16)
	op := model.Opcode(raw >> 24)

	kind, ok := classify(op)
	if !ok {
		return model.Instruction{}, r.NewError(container.KindInvalidEnum,
			"unknown opcode 0x%02X at position %d", byte(op), pos)
	}

	in := model.Instruction{Kind: kind, Op: op, Position: pos}

	switch kind {
	case model.KindArithmetic:
		in.Type1 = model.DataType(b2 & 0x0F)
		in.Type2 = model.DataType((b2 >> 4) & 0x0F)
		in.Size = 4

	case model.KindCompare:
		in.Comparison = model.ComparisonType(b0)
		in.Type1 = model.DataType(b2 & 0x0F)
		in.Type2 = model.DataType((b2 >> 4) & 0x0F)
		in.Size = 4

	case model.KindBranch:
		raw24 := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
		if op == model.OpPopWithContext && raw24 == exitMagic24 {
			in.ExitMagic = true
		} else {
			in.BranchOffset = signExtend24(raw24)
		}
		in.Size = 4

	case model.KindExtended, model.KindBreak:
		in.Type1 = model.DataType(b2)
		in.Size = 4

	case model.KindPushReference:
		in.Asset.Kind = model.AssetKind(b2)
		idx, err := r.ReadI32()
		if err != nil {
			return model.Instruction{}, err
		}
		in.Asset.Index = idx
		in.Size = 8

	case model.KindPop:
		in.Type1 = model.DataType(b2 & 0x0F)
		in.Type2 = model.DataType((b2 >> 4) & 0x0F)
		cv, size, err := decodeVariableDescriptor(r, pos, resolver)
		if err != nil {
			return model.Instruction{}, err
		}
		in.Variable = cv
		in.Size = 4 + size

	case model.KindCall:
		in.ArgCount = int(b0)
		fn, size, err := decodeFunctionDescriptor(r, pos, resolver)
		if err != nil {
			return model.Instruction{}, err
		}
		in.Function = fn
		in.Size = 4 + size

	case model.KindPush:
		in.Type1 = model.DataType(b2)
		switch in.Type1 {
		case model.Int16:
			in.Value.Int16 = int16(uint16(b0) | uint16(b1)<<8)
			in.Size = 4
		case model.Int32:
			v, err := r.ReadI32()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Int32 = v
			in.Size = 8
		case model.Int64:
			v, err := r.ReadI64()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Int64 = v
			in.Size = 12
		case model.Double:
			v, err := r.ReadF64()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Double = v
			in.Size = 12
		case model.Float:
			v, err := r.ReadF32()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Float32 = v
			in.Size = 8
		case model.Bool:
			v, err := r.ReadBool32()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Bool = v
			in.Size = 8
		case model.String:
			idx, err := r.ReadI32()
			if err != nil {
				return model.Instruction{}, err
			}
			in.Value.Str = model.StringRef(idx)
			in.Size = 8
		case model.Var:
			// Either a variable descriptor or, for a function-valued
			// push, a function descriptor; decide by whether the
			// resolver knows the position as a variable occurrence.
			if _, ok := resolver.VariableAt(pos + 4); ok {
				cv, size, err := decodeVariableDescriptor(r, pos, resolver)
				if err != nil {
					return model.Instruction{}, err
				}
				in.Variable = cv
				in.Size = 4 + size
			} else {
				fn, size, err := decodeFunctionDescriptor(r, pos, resolver)
				if err != nil {
					return model.Instruction{}, err
				}
				in.Function = fn
				in.Size = 4 + size
			}
		default:
			return model.Instruction{}, r.NewError(container.KindInvalidEnum,
				"push instruction at %d has invalid DataType %d", pos, in.Type1)
		}

	default:
		return model.Instruction{}, r.NewError(container.KindInvariantViolation,
			"unreachable instruction kind %d", kind)
	}
	return in, nil
}

// decodeVariableDescriptor reads the 8-byte trailer described in spec
// §4.5/§4.6 and resolves it via the occurrence map built beforehand.
//
// Byte layout convention (spec §9 flags this as a source ambiguity to
// pick, not autodetect): this codec puts the occurrence_word FIRST, so
// that "first_occurrence_position + 4" (spec §4.6's read protocol) lands
// exactly on the occurrence word of the first occurrence's own descriptor:
// first_occurrence_position is the instruction's own start, and +4
// skips its 4-byte head to the descriptor's leading occurrence_word. The
// instance_type/mixed_type_tags/opcode_redundant fields trail it.
func decodeVariableDescriptor(r *container.Reader, instrPos int64, resolver OccurrenceResolver) (*model.CodeVariable, int, error) {
	word, err := r.ReadU32()
	if err != nil {
		return nil, 0, err
	}
	instanceType, err := r.ReadI16()
	if err != nil {
		return nil, 0, err
	}
	if _, err := r.ReadU8(); err != nil { // mixed_type_tags
		return nil, 0, err
	}
	if _, err := r.ReadU8(); err != nil { // opcode_redundant
		return nil, 0, err
	}
	_, vt := model.DecodeOccurrenceWord(word)
	ref, ok := resolver.VariableAt(instrPos + 4)
	if !ok {
		return nil, 0, r.NewError(container.KindOccurrenceChainBroken,
			"no variable occurrence recorded for descriptor at %d", instrPos+4)
	}
	return &model.CodeVariable{
		Variable:     ref,
		VariableType: vt,
		InstanceType: model.InstanceType(instanceType),
	}, 8, nil
}

func decodeFunctionDescriptor(r *container.Reader, instrPos int64, resolver OccurrenceResolver) (*model.FunctionOccurrence, int, error) {
	if _, err := r.ReadU32(); err != nil { // occurrence_word
		return nil, 0, err
	}
	if _, err := r.ReadI16(); err != nil {
		return nil, 0, err
	}
	if _, err := r.ReadU8(); err != nil {
		return nil, 0, err
	}
	if _, err := r.ReadU8(); err != nil {
		return nil, 0, err
	}
	ref, ok := resolver.FunctionAt(instrPos + 4)
	if !ok {
		return nil, 0, r.NewError(container.KindOccurrenceChainBroken,
			"no function occurrence recorded for descriptor at %d", instrPos+4)
	}
	return &model.FunctionOccurrence{Function: ref}, 8, nil
}

func signExtend24(v uint32) int32 {
	if v&0x00800000 != 0 {
		return int32(v) - 0x01000000
	}
	return int32(v)
}

// EncodeStream is the dual of DecodeStream: it writes instrs in order,
// emitting placeholder occurrence words for every variable/function
// descriptor and reporting each one's position to rec so a later pass
// (internal/encode) can chain them together (spec §4.6's write protocol).
// Branch offsets are written directly since, unlike occurrence chains,
// the instruction stream is immutable once the CFG/compiler stage above
// this codec has fixed addresses.
func EncodeStream(b *container.Builder, instrs []model.Instruction, rec OccurrenceRecorder) error {
	base := b.Pos()
	for _, in := range instrs {
		if err := encodeOne(b, in, base, rec); err != nil {
			return err
		}
	}
	return nil
}

func encodeOne(b *container.Builder, in model.Instruction, base int64, rec OccurrenceRecorder) error {
	switch in.Kind {
	case model.KindArithmetic:
		writeHead(b, byte(in.Type1)|byte(in.Type2)<<4, 0, in.Op)
	case model.KindCompare:
		writeHead(b, byte(in.Type1)|byte(in.Type2)<<4, byte(in.Comparison), in.Op)
	case model.KindBranch:
		var raw24 uint32
		if in.ExitMagic {
			raw24 = exitMagic24
		} else {
			raw24 = uint32(in.BranchOffset) & 0x00FFFFFF
		}
		b.WriteU8(byte(raw24))
		b.WriteU8(byte(raw24 >> 8))
		b.WriteU8(byte(raw24 >> 16))
		b.WriteU8(byte(in.Op))
	case model.KindExtended, model.KindBreak:
		writeHead(b, byte(in.Type1), 0, in.Op)
	case model.KindPushReference:
		writeHead(b, byte(in.Asset.Kind), 0, in.Op)
		b.WriteI32(in.Asset.Index)
	case model.KindPop:
		writeHead(b, byte(in.Type1)|byte(in.Type2)<<4, 0, in.Op)
		if in.Variable == nil {
			return fmt.Errorf("instr: Pop instruction at stream-relative %d missing Variable", b.Pos()-base)
		}
		writeVariableDescriptor(b, *in.Variable, b.Pos()-base, rec)
	case model.KindCall:
		writeHead(b, 0, byte(in.ArgCount), in.Op)
		if in.Function == nil {
			return fmt.Errorf("instr: Call instruction at stream-relative %d missing Function", b.Pos()-base)
		}
		writeFunctionDescriptor(b, in.Function.Function, b.Pos()-base, rec)
	case model.KindPush:
		writeHead(b, byte(in.Type1), 0, in.Op)
		switch in.Type1 {
		case model.Int16:
			// Overwritten below: Int16's value lives in the head word's
			// low two bytes, so re-emit the whole word instead of
			// appending.
			rewriteInt16Head(b, in)
		case model.Int32:
			b.WriteI32(in.Value.Int32)
		case model.Int64:
			b.WriteI64(in.Value.Int64)
		case model.Double:
			b.WriteF64(in.Value.Double)
		case model.Float:
			b.WriteF32(in.Value.Float32)
		case model.Bool:
			b.WriteBool32(in.Value.Bool)
		case model.String:
			b.WriteI32(int32(in.Value.Str))
		case model.Var:
			if in.Variable != nil {
				writeVariableDescriptor(b, *in.Variable, b.Pos()-base, rec)
			} else if in.Function != nil {
				writeFunctionDescriptor(b, in.Function.Function, b.Pos()-base, rec)
			} else {
				return fmt.Errorf("instr: variable-valued Push at stream-relative %d has neither Variable nor Function", b.Pos()-base)
			}
		default:
			return fmt.Errorf("instr: invalid push DataType %d", in.Type1)
		}
	default:
		return fmt.Errorf("instr: unreachable instruction kind %d", in.Kind)
	}
	return nil
}

func writeHead(b *container.Builder, b2, b0b1hi byte, op model.Opcode) {
	b.WriteU8(b0b1hi)
	b.WriteU8(0)
	b.WriteU8(b2)
	b.WriteU8(byte(op))
}

// rewriteInt16Head patches the 4 bytes just written by writeHead so the
// Int16 push's value occupies b0/b1 instead of leaving them zero.
func rewriteInt16Head(b *container.Builder, in model.Instruction) {
	buf := b.Bytes()
	pos := len(buf) - 4
	v := uint16(in.Value.Int16)
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
}

// writeVariableDescriptor writes the occurrence_word first (placeholder,
// patched by internal/encode's chain-finalize pass) so its position
// matches decodeVariableDescriptor's convention.
func writeVariableDescriptor(b *container.Builder, cv model.CodeVariable, _ int64, rec OccurrenceRecorder) {
	descStart := b.Pos()
	b.WriteU32(0xFFFFFFFF) // occurrence_word placeholder
	b.WriteI16(int16(cv.InstanceType))
	b.WriteU8(0) // mixed_type_tags
	b.WriteU8(0) // opcode_redundant
	rec.RecordVariable(cv.Variable, descStart, cv.VariableType)
}

func writeFunctionDescriptor(b *container.Builder, ref model.FunctionRef, _ int64, rec OccurrenceRecorder) {
	descStart := b.Pos()
	b.WriteU32(0xFFFFFFFF)
	b.WriteI16(0)
	b.WriteU8(0)
	b.WriteU8(0)
	rec.RecordFunction(ref, descStart)
}
