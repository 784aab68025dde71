package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// FONT writes the font table, the twin of decode/font.go. Must run after
// TPAG.
func FONT(b *container.Builder, data *model.Data, t *StringTable, tex *TextureTable, last bool) error {
	b.StartChunk("FONT")
	err := container.WritePointerList(b, "FONT", data.Fonts, func(b *container.Builder, i int, f model.Font) error {
		writeStringRef(b, t, f.Name)
		writeStringRef(b, t, f.DisplayName)
		b.WriteF32(f.Size)
		b.WriteBool32(f.Bold)
		b.WriteBool32(f.Italic)
		b.WriteU8(f.Charset)
		b.WriteU8(f.AntiAlias)
		b.WriteBytes([]byte{0, 0}) // padding to u32
		b.WriteU32(f.FirstChar)
		b.WriteU32(f.LastChar)
		b.WriteU32(uint32(tex.OffsetOf(f.Texture)))
		b.WriteF32(f.ScaleX)
		b.WriteF32(f.ScaleY)
		b.WriteI32(f.AscenderOffset)
		b.WriteI32(f.Ascender)

		return container.WritePointerList(b, "FONT.glyph", f.Glyphs, func(b *container.Builder, j int, g model.Glyph) error {
			b.WriteU16(g.Character)
			b.WriteU16(g.SourceX)
			b.WriteU16(g.SourceY)
			b.WriteU16(g.SourceW)
			b.WriteU16(g.SourceH)
			b.WriteI16(g.Shift)
			b.WriteI16(g.Offset)
			return container.WriteSimpleList(b, g.Kerning, func(b *container.Builder, k int, kp model.KerningPair) error {
				b.WriteU16(kp.Other)
				b.WriteI16(kp.Amount)
				return nil
			})
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}
