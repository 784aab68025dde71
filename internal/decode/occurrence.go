package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// occurrenceIndex is the position->reference map built by walking the
// VARI/FUNC occurrence chains (spec §4.6's read protocol), keyed by
// absolute file offset of each descriptor's leading occurrence_word. The
// instruction codec never walks the chain itself; it only ever looks
// positions up here, keeping "discover positions during variable-table
// decode" and "consume positions during instruction decode" as two
// explicit, non-interleaved passes (spec §9 design note).
type occurrenceIndex struct {
	variables map[int64]varOccurrence
	functions map[int64]model.FunctionRef
}

type varOccurrence struct {
	Ref model.VariableRef
	VT  model.VariableType
}

func newOccurrenceIndex() *occurrenceIndex {
	return &occurrenceIndex{
		variables: make(map[int64]varOccurrence),
		functions: make(map[int64]model.FunctionRef),
	}
}

// Bytecode runs the three decoders that share one occurrence chain pass in
// the only valid order (spec §4.6): VARI and FUNC each walk their table's
// chains into a fresh index, then CODE consumes it while decoding
// instructions. It enters each of the VARI, FUNC and CODE chunks itself
// (all three are required once any of them is present). Callers outside
// this package have no way to construct an occurrenceIndex themselves, so
// this is the one exported entry point into the VARI/FUNC/CODE trio
// (gm.Parse calls this rather than the three decoders directly).
func Bytecode(r *container.Reader, data *model.Data) error {
	dir := r.Directory()
	variEntry, ok := dir.Chunk("VARI")
	if !ok {
		return r.NewError(container.KindUnexpectedTag, "CODE present without a VARI chunk")
	}
	funcEntry, ok := dir.Chunk("FUNC")
	if !ok {
		return r.NewError(container.KindUnexpectedTag, "CODE present without a FUNC chunk")
	}
	codeEntry, ok := dir.Chunk("CODE")
	if !ok {
		return r.NewError(container.KindUnexpectedTag, "VARI/FUNC present without a CODE chunk")
	}

	idx := newOccurrenceIndex()
	r.EnterChunk("VARI", variEntry.Start, variEntry.End)
	if err := VARI(r, data, idx); err != nil {
		return err
	}
	r.EnterChunk("FUNC", funcEntry.Start, funcEntry.End)
	if err := FUNC(r, data, idx); err != nil {
		return err
	}
	r.EnterChunk("CODE", codeEntry.Start, codeEntry.End)
	return CODE(r, data, idx)
}

func (o *occurrenceIndex) VariableAt(pos int64) (model.VariableRef, bool) {
	v, ok := o.variables[pos]
	return v.Ref, ok
}

func (o *occurrenceIndex) FunctionAt(pos int64) (model.FunctionRef, bool) {
	v, ok := o.functions[pos]
	return v, ok
}

// entryResolver adapts occurrenceIndex's file-absolute keys to the
// per-entry-relative positions internal/instr.DecodeStream uses (spec's
// CFG and codec work in instruction-stream-relative addresses; only the
// occurrence chain itself is naturally described in absolute terms, since
// that's how it's laid out on disk).
type entryResolver struct {
	idx      *occurrenceIndex
	fileBase int64
}

func (e entryResolver) VariableAt(pos int64) (model.VariableRef, bool) {
	return e.idx.VariableAt(pos + e.fileBase)
}
func (e entryResolver) FunctionAt(pos int64) (model.FunctionRef, bool) {
	return e.idx.FunctionAt(pos + e.fileBase)
}

// walkVariableChain implements spec §4.6's read protocol for one VARI
// entry: starting from first_occurrence_position+4, follow the low-27-bit
// offset field count times, recording each occurrence_word's absolute
// position against ref. The final occurrence's word holds a name-string
// id instead of an offset and is not followed further.
func walkVariableChain(r *container.Reader, codeStart, codeEnd int64, ref model.VariableRef, firstPos int32, count int32, idx *occurrenceIndex) ([]int64, error) {
	return walkChain(r, codeStart, codeEnd, firstPos, count, func(pos int64, word uint32, isLast bool) error {
		if _, dup := idx.variables[pos]; dup {
			return r.NewError(container.KindOccurrenceChainBroken,
				"duplicate occurrence position %d", pos)
		}
		_, vt := model.DecodeOccurrenceWord(word)
		idx.variables[pos] = varOccurrence{Ref: ref, VT: vt}
		return nil
	})
}

// walkFunctionChain is the function-table twin of walkVariableChain.
func walkFunctionChain(r *container.Reader, codeStart, codeEnd int64, ref model.FunctionRef, firstPos int32, count int32, idx *occurrenceIndex) ([]int64, error) {
	return walkChain(r, codeStart, codeEnd, firstPos, count, func(pos int64, word uint32, isLast bool) error {
		if _, dup := idx.functions[pos]; dup {
			return r.NewError(container.KindOccurrenceChainBroken,
				"duplicate occurrence position %d", pos)
		}
		idx.functions[pos] = ref
		return nil
	})
}

// walkChain contains the shared stepping logic: first_occurrence_position
// is the absolute position of the occurrence's *instruction*; +4 lands on
// the descriptor's leading occurrence_word (this codec's documented
// convention, spec §9/§4.6). Negative or zero "count" with a non-sentinel
// first position, or a walk that leaves the CODE chunk's bounds, is fatal
// per spec §9 ("negative or zero 'next occurrence' offsets are fatal").
func walkChain(r *container.Reader, codeStart, codeEnd int64, firstPos int32, count int32, visit func(pos int64, word uint32, isLast bool) error) ([]int64, error) {
	if count == 0 {
		if firstPos != -1 {
			return nil, r.NewError(container.KindOccurrenceChainBroken,
				"occurrence_count is 0 but first_occurrence_position is %d, want -1", firstPos)
		}
		return nil, nil
	}
	if count < 0 {
		return nil, r.NewError(container.KindOccurrenceChainBroken,
			"negative occurrence_count %d", count)
	}
	if firstPos < 0 {
		return nil, r.NewError(container.KindOccurrenceChainBroken,
			"occurrence_count %d > 0 but first_occurrence_position is %d", count, firstPos)
	}

	savedChunk := r.ChunkTag()
	savedStart, savedEnd := r.ChunkBounds()
	savedPos := r.Pos()
	r.EnterChunk("CODE", codeStart, codeEnd)
	defer func() {
		r.EnterChunk(savedChunk, savedStart, savedEnd)
		r.SetPos(savedPos)
	}()

	positions := make([]int64, 0, count)
	pos := int64(firstPos) + 4
	for i := int32(0); i < count; i++ {
		if pos < codeStart || pos+4 > codeEnd {
			return nil, r.NewError(container.KindOccurrenceChainBroken,
				"occurrence chain position %d step %d/%d falls outside CODE bounds", pos, i, count)
		}
		r.SetPos(pos)
		word, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		isLast := i == count-1
		if err := visit(pos, word, isLast); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
		if isLast {
			break
		}
		offset, _ := model.DecodeOccurrenceWord(word)
		if offset <= 0 {
			return nil, r.NewError(container.KindOccurrenceChainBroken,
				"non-positive next-occurrence offset %d at position %d", offset, pos)
		}
		pos += int64(offset)
	}
	return positions, nil
}
