package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// SHDR decodes the shader table (supplemented feature, spec SPEC_FULL.md
// §7): GLSL ES/HLSL source pairs plus the attribute list. Compilation of
// the source itself is an external collaborator's job (spec §1 scopes
// shader interpretation the same way as sequences and spine/SWF sprites).
func SHDR(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(20, func(r *container.Reader, i int) error {
		s := model.Shader{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		kind, err := r.ReadI32()
		if err != nil {
			return err
		}
		s.Kind = model.ShaderKind(kind)
		if s.VertexSource, err = readStringRef(r); err != nil {
			return err
		}
		if s.FragmentSource, err = readStringRef(r); err != nil {
			return err
		}
		_, err = r.ReadSimpleList(func(r *container.Reader, j int) error {
			name, err := readStringRef(r)
			if err != nil {
				return err
			}
			s.Attributes = append(s.Attributes, name)
			return nil
		})
		if err != nil {
			return err
		}
		data.Shaders = append(data.Shaders, s)
		return nil
	})
	return err
}
