package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/instr"
	"github.com/biotomatede/libgm/internal/model"
)

// CODE writes every bytecode entry and returns the chain recorder that
// finalizeChains later patches in place (spec §4.6's write protocol). A
// child entry's Offset/Parent metadata is written without any instruction
// bytes of its own, the write-side twin of internal/decode/code.go.
//
// This builder writes CODE before VARI/FUNC so the occurrence positions
// recorded while emitting instructions are already-final absolute file
// offsets by the time the variable/function tables need them (spec §4.8
// gives the writer latitude over physical chunk order; only the
// directory's declared bounds need to be internally consistent).
func CODE(b *container.Builder, data *model.Data, t *StringTable, last bool) (*chainRecorder, error) {
	b.StartChunk("CODE")
	rec := newChainRecorder()
	err := container.WritePointerList(b, "CODE", data.Codes, func(b *container.Builder, i int, c model.Code) error {
		writeStringRef(b, t, c.Name)
		length := int32(0)
		for _, in := range c.Instructions {
			length += int32(in.Size)
		}
		if c.HasParent {
			length = c.Length
		}
		b.WriteI32(length)
		b.WriteI16(int16(c.Locals))
		b.WriteI16(int16(c.Arguments))
		b.WriteI32(c.Offset)
		if c.HasParent {
			b.WriteI32(int32(c.Parent))
		} else {
			b.WriteI32(-1)
		}
		if !c.HasParent {
			if err := instr.EncodeStream(b, c.Instructions, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.FinishChunk(last)
	return rec, nil
}
