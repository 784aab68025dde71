package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// FUNC writes the function table, the twin of VARI but without the
// modern-header fields (spec §3 Function). Must run after CODE and
// finalizeChains have populated each Function's OccurrencePositions.
func FUNC(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("FUNC")
	for _, f := range data.Functions {
		writeStringRef(b, t, f.Name)
		b.WriteI32(int32(len(f.OccurrencePositions)))
		if len(f.OccurrencePositions) == 0 {
			b.WriteI32(-1)
		} else {
			b.WriteI32(int32(f.OccurrencePositions[0] - 4))
		}
	}
	b.FinishChunk(last)
	return nil
}
