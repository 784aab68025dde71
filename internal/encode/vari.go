package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// VARI writes the variable table (spec §4.6's write protocol). Must run
// after CODE and finalizeChains have populated each Variable's
// OccurrencePositions.
func VARI(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("VARI")
	for _, v := range data.Variables {
		writeStringRef(b, t, v.Name)
		if v.HasModernHeader {
			b.WriteI32(int32(v.InstanceType))
			b.WriteI32(v.VariableID)
		}
		b.WriteI32(int32(len(v.OccurrencePositions)))
		if len(v.OccurrencePositions) == 0 {
			b.WriteI32(-1)
		} else {
			// first_occurrence_position+4 lands on the descriptor's
			// occurrence_word (this codec's documented convention); the
			// table stores the instruction's own position, 4 bytes earlier.
			b.WriteI32(int32(v.OccurrencePositions[0] - 4))
		}
	}
	b.FinishChunk(last)
	return nil
}
