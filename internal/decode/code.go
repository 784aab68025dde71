package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/instr"
	"github.com/biotomatede/libgm/internal/model"
)

// CODE decodes every bytecode entry (spec §3 Code, §4.5, §4.6's consume
// side). idx must already hold every position the VARI/FUNC decoders
// recorded; CODE is the second and last consumer of that map: it never
// walks a chain itself, only looks positions up (spec §9 design note).
//
// A root entry's instruction bytes are inline in its own pointer-list
// payload; a child entry (HasParent, Offset>0) carries no instruction
// bytes of its own, only the metadata describing where in its parent's
// stream it begins (spec §3: "child codes share the parent's
// instructions starting at offset").
func CODE(r *container.Reader, data *model.Data, idx *occurrenceIndex) error {
	_, err := r.ReadPointerList(12, func(r *container.Reader, i int) error {
		name, err := readStringRef(r)
		if err != nil {
			return err
		}
		length, err := r.ReadI32()
		if err != nil {
			return err
		}
		locals, err := r.ReadI16()
		if err != nil {
			return err
		}
		arguments, err := r.ReadI16()
		if err != nil {
			return err
		}
		offset, err := r.ReadI32()
		if err != nil {
			return err
		}
		parentIndex, err := r.ReadI32()
		if err != nil {
			return err
		}

		c := model.Code{
			Name:      name,
			Length:    length,
			Locals:    int32(locals),
			Arguments: int32(arguments),
			Offset:    offset,
		}
		if parentIndex >= 0 {
			if offset%4 != 0 {
				return r.NewError(container.KindInvariantViolation,
					"code entry %q start offset %d is not a multiple of 4", data.String(name), offset)
			}
			c.HasParent = true
			c.Parent = model.CodeRef(parentIndex)
		} else {
			fileBase := r.Pos()
			instructions, err := instr.DecodeStream(r, length, entryResolver{idx: idx, fileBase: fileBase})
			if err != nil {
				return err.(*container.Error).WithContext("decoding code entry " + data.String(name))
			}
			c.Instructions = instructions
		}
		data.Codes = append(data.Codes, c)
		return nil
	})
	return err
}
