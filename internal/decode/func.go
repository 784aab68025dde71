package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// FUNC decodes the function table and walks each entry's occurrence chain
// into idx (spec §4.6). Must run before CODE, after VARI.
func FUNC(r *container.Reader, data *model.Data, idx *occurrenceIndex) error {
	codeEntry, ok := r.Directory().Chunk("CODE")
	if !ok {
		return r.NewError(container.KindUnexpectedTag, "FUNC present without a CODE chunk")
	}

	_, end := r.ChunkBounds()
	for r.Pos() < end {
		name, err := readStringRef(r)
		if err != nil {
			return err
		}
		count, err := r.ReadI32()
		if err != nil {
			return err
		}
		firstPos, err := r.ReadI32()
		if err != nil {
			return err
		}

		ref := model.FunctionRef(len(data.Functions))
		data.Functions = append(data.Functions, model.Function{Name: name})

		positions, werr := walkFunctionChain(r, codeEntry.Start, codeEntry.End, ref, firstPos, count, idx)
		if werr != nil {
			return werr.(*container.Error).WithContext("decoding function table entry " + data.String(name))
		}
		data.Functions[ref].OccurrencePositions = positions
	}
	return nil
}
