package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// SPRT writes the sprite table, the twin of decode/sprt.go. Must run
// after TPAG.
func SPRT(b *container.Builder, data *model.Data, t *StringTable, tex *TextureTable, last bool) error {
	b.StartChunk("SPRT")
	err := container.WritePointerList(b, "SPRT", data.Sprites, func(b *container.Builder, i int, s model.Sprite) error {
		writeStringRef(b, t, s.Name)
		b.WriteI32(s.Width)
		b.WriteI32(s.Height)
		b.WriteI32(s.MarginLeft)
		b.WriteI32(s.MarginRight)
		b.WriteI32(s.MarginBottom)
		b.WriteI32(s.MarginTop)
		b.WriteBool32(s.Transparent)
		b.WriteBool32(s.Smooth)
		b.WriteBool32(s.Preload)
		b.WriteI32(s.BBoxMode)
		b.WriteI32(s.SepMasks)
		b.WriteI32(s.OriginX)
		b.WriteI32(s.OriginY)

		if s.Special.Kind != model.SpecialNone {
			b.WriteI32(-1)
			if s.Special.Kind == model.SpecialSequence {
				b.WriteI32(1)
			} else {
				b.WriteI32(0)
				writeNineSlice(b, s.Special.NineSlice)
			}
			writeTextureRefList(b, tex, s.Textures)
		} else {
			if len(s.Textures) == 0 {
				b.WriteI32(0)
			} else {
				b.WriteI32(int32(tex.OffsetOf(s.Textures[0])))
			}
			writeTextureRefList(b, tex, s.Textures[min(1, len(s.Textures)):])
		}

		return container.WriteSimpleList(b, s.Masks, func(b *container.Builder, j int, m model.CollisionMask) error {
			b.WriteI32(m.Width)
			b.WriteI32(m.Height)
			b.WriteBytes(m.Data)
			return nil
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

func writeNineSlice(b *container.Builder, n model.NineSlice) {
	b.WriteI32(n.Left)
	b.WriteI32(n.Top)
	b.WriteI32(n.Right)
	b.WriteI32(n.Bottom)
	b.WriteBool32(n.Enabled)
	for _, m := range n.TileModes {
		b.WriteI32(m)
	}
}
