package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// StringTable mirrors internal/decode's string-offset map on the write
// side: every reference to string i must resolve to the same absolute
// body offset STRG recorded it at.
type StringTable struct {
	offsets []int64 // index -> absolute offset of the string's bytes, just past its length prefix
}

func (t *StringTable) OffsetOf(ref model.StringRef) int64 { return t.offsets[ref] }

// STRG writes the string table (spec §3/§6) and returns the offset table
// later chunks' string references are resolved against.
func STRG(b *container.Builder, data *model.Data, last bool) (*StringTable, error) {
	b.StartChunk("STRG")
	t := &StringTable{offsets: make([]int64, len(data.Strings))}
	err := container.WritePointerList(b, "STRG", data.Strings, func(b *container.Builder, i int, s string) error {
		b.WriteU32(uint32(len(s)))
		t.offsets[i] = b.Pos()
		b.WriteBytes([]byte(s))
		b.WriteU8(0) // NUL terminator, matching the on-disk string body shape
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.FinishChunk(last)
	return t, nil
}

// writeStringRef writes an absolute string offset; every chunk encoder
// below goes through this instead of touching StringTable directly so the
// "unresolved string index" panic path is in one place.
func writeStringRef(b *container.Builder, t *StringTable, ref model.StringRef) {
	if ref == model.NoString {
		b.WriteU32(0)
		return
	}
	b.WriteU32(uint32(t.OffsetOf(ref)))
}
