package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// TextureTable mirrors StringTable for texture page item references.
type TextureTable struct {
	offsets []int64
}

func (t *TextureTable) OffsetOf(ref model.TextureRef) int64 { return t.offsets[ref] }

// TPAG writes texture page item rectangles (spec §3 TexturePageItem).
func TPAG(b *container.Builder, data *model.Data, last bool) (*TextureTable, error) {
	b.StartChunk("TPAG")
	t := &TextureTable{offsets: make([]int64, len(data.TexturePageItems))}
	err := container.WritePointerList(b, "TPAG", data.TexturePageItems, func(b *container.Builder, i int, item model.TexturePageItem) error {
		t.offsets[i] = b.Pos()
		b.WriteU16(item.SourceX)
		b.WriteU16(item.SourceY)
		b.WriteU16(item.SourceW)
		b.WriteU16(item.SourceH)
		b.WriteU16(item.TargetX)
		b.WriteU16(item.TargetY)
		b.WriteU16(item.TargetW)
		b.WriteU16(item.TargetH)
		b.WriteU16(item.BoundingBoxW)
		b.WriteU16(item.BoundingBoxH)
		b.WriteI32(item.TexturePageID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.FinishChunk(last)
	return t, nil
}

// writeTextureRefList writes a pointer-list whose "offsets" are, on disk,
// literal absolute positions of already-written TPAG entries rather than
// fresh payloads of its own (the write-side twin of TextureIndexAt's
// dereference-in-place read). Used by SPRT/FONT/OPTN/BGND.
func writeTextureRefList(b *container.Builder, t *TextureTable, refs []model.TextureRef) {
	b.WriteU32(uint32(len(refs)))
	for _, ref := range refs {
		b.WriteU32(uint32(t.OffsetOf(ref)))
	}
}

// writeOptionalTextureRef writes a single texture reference as -1 when
// absent, otherwise the referenced TPAG entry's absolute offset.
func writeOptionalTextureRef(b *container.Builder, t *TextureTable, has bool, ref model.TextureRef) {
	if !has {
		b.WriteI32(-1)
		return
	}
	b.WriteI32(int32(t.OffsetOf(ref)))
}
