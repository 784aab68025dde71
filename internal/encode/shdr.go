package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// SHDR writes the shader table, the twin of decode/shdr.go.
func SHDR(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("SHDR")
	err := container.WritePointerList(b, "SHDR", data.Shaders, func(b *container.Builder, i int, s model.Shader) error {
		writeStringRef(b, t, s.Name)
		b.WriteI32(int32(s.Kind))
		writeStringRef(b, t, s.VertexSource)
		writeStringRef(b, t, s.FragmentSource)
		return container.WriteSimpleList(b, s.Attributes, func(b *container.Builder, j int, name model.StringRef) error {
			writeStringRef(b, t, name)
			return nil
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}
