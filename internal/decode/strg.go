// Package decode holds one file per chunk tag, each a monomorphic decoder
// producing a typed piece of internal/model.Data from an
// internal/container.Reader positioned at that chunk (spec §4, "Dynamic
// dispatch on chunk kind is avoided by a match on the four-byte tag; each
// arm is a monomorphic decoder").
package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// STRG decodes the string pool (spec §4.3). It must run before any chunk
// that references strings, since it populates r's offset->index map that
// ReadGMString consults.
func STRG(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(5, func(r *container.Reader, i int) error {
		length, err := r.ReadU32()
		if err != nil {
			return err
		}
		bodyOffset := r.Pos()
		body, err := r.ReadBytes(int(length))
		if err != nil {
			return err
		}
		nul, err := r.ReadU8()
		if err != nil {
			return err
		}
		if nul != 0 {
			return r.NewError(container.KindInvariantViolation,
				"string #%d not NUL-terminated", i)
		}
		data.Strings = append(data.Strings, string(body))
		r.RecordStringOffset(bodyOffset, i)
		return nil
	})
	return err
}
