package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// OPTN writes the OPTN chunk, the twin of decode/optn.go. Must run after
// TPAG.
func OPTN(b *container.Builder, data *model.Data, t *StringTable, tex *TextureTable, last bool) error {
	b.StartChunk("OPTN")
	o := &data.Options
	b.WriteBytes(make([]byte, 8)) // reserved/unknown header pair
	b.WriteU64(o.Flags)
	b.WriteI32(o.ScaleMode)
	b.WriteU32(o.WindowColor)
	b.WriteI32(o.ColorDepth)
	b.WriteI32(o.Resolution)
	b.WriteI32(o.Frequency)
	b.WriteI32(o.VertexSync)
	b.WriteI32(o.Priority)

	writeOptionalTextureRef(b, tex, o.HasBackImage, o.BackImage)
	writeOptionalTextureRef(b, tex, o.HasFrontImage, o.FrontImage)
	writeOptionalTextureRef(b, tex, o.HasLoadImage, o.LoadImage)
	b.WriteI32(o.LoadAlpha)

	err := container.WriteSimpleList(b, o.Constants, func(b *container.Builder, i int, c model.OptionConstant) error {
		writeStringRef(b, t, c.Name)
		writeStringRef(b, t, c.Value)
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}
