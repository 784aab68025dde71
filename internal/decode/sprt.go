package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// SPRT decodes the sprite table (spec §3 Sprite). Must run after TPAG.
func SPRT(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(48, func(r *container.Reader, i int) error {
		s := model.Sprite{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		if s.Width, err = r.ReadI32(); err != nil {
			return err
		}
		if s.Height, err = r.ReadI32(); err != nil {
			return err
		}
		if s.MarginLeft, err = r.ReadI32(); err != nil {
			return err
		}
		if s.MarginRight, err = r.ReadI32(); err != nil {
			return err
		}
		if s.MarginBottom, err = r.ReadI32(); err != nil {
			return err
		}
		if s.MarginTop, err = r.ReadI32(); err != nil {
			return err
		}
		if s.Transparent, err = r.ReadBool32(); err != nil {
			return err
		}
		if s.Smooth, err = r.ReadBool32(); err != nil {
			return err
		}
		if s.Preload, err = r.ReadBool32(); err != nil {
			return err
		}
		if s.BBoxMode, err = r.ReadI32(); err != nil {
			return err
		}
		if s.SepMasks, err = r.ReadI32(); err != nil {
			return err
		}
		if s.OriginX, err = r.ReadI32(); err != nil {
			return err
		}
		if s.OriginY, err = r.ReadI32(); err != nil {
			return err
		}

		// Special payload marker: -1 followed by a version int marks a
		// sequence/nine-slice/SWF/Spine tail (spec SPEC_FULL.md §7);
		// anything else is read back as the first texture item offset.
		marker, err := r.ReadI32()
		if err != nil {
			return err
		}
		if marker == -1 {
			specialVersion, err := r.ReadI32()
			if err != nil {
				return err
			}
			switch specialVersion {
			case 1, 2, 3:
				s.Special.Kind = model.SpecialSequence
			default:
				s.Special.Kind = model.SpecialNineSlice
			}
			if s.Special.Kind == model.SpecialNineSlice {
				if err := readNineSlice(r, &s.Special.NineSlice); err != nil {
					return err
				}
			}
			if _, err := r.ReadSimpleList(func(r *container.Reader, j int) error {
				off, err := r.ReadU32()
				if err != nil {
					return err
				}
				idx, err := r.TextureIndexAt(int64(off))
				if err != nil {
					return err
				}
				s.Textures = append(s.Textures, model.TextureRef(idx))
				return nil
			}); err != nil {
				return err
			}
		} else {
			idx, err := r.TextureIndexAt(int64(marker))
			if err == nil && idx >= 0 {
				s.Textures = append(s.Textures, model.TextureRef(idx))
			}
			if _, err := r.ReadSimpleList(func(r *container.Reader, j int) error {
				off, err := r.ReadU32()
				if err != nil {
					return err
				}
				idx, err := r.TextureIndexAt(int64(off))
				if err != nil {
					return err
				}
				s.Textures = append(s.Textures, model.TextureRef(idx))
				return nil
			}); err != nil {
				return err
			}
		}

		if _, err := r.ReadSimpleList(func(r *container.Reader, j int) error {
			m := model.CollisionMask{}
			w, err := r.ReadI32()
			if err != nil {
				return err
			}
			h, err := r.ReadI32()
			if err != nil {
				return err
			}
			m.Width, m.Height = w, h
			rowBytes := (w + 7) / 8
			data, err := r.ReadBytes(int(rowBytes * h))
			if err != nil {
				return err
			}
			m.Data = data
			s.Masks = append(s.Masks, m)
			return nil
		}); err != nil {
			return err
		}

		data.Sprites = append(data.Sprites, s)
		return nil
	})
	return err
}

func readNineSlice(r *container.Reader, n *model.NineSlice) error {
	var err error
	if n.Left, err = r.ReadI32(); err != nil {
		return err
	}
	if n.Top, err = r.ReadI32(); err != nil {
		return err
	}
	if n.Right, err = r.ReadI32(); err != nil {
		return err
	}
	if n.Bottom, err = r.ReadI32(); err != nil {
		return err
	}
	if n.Enabled, err = r.ReadBool32(); err != nil {
		return err
	}
	for i := range n.TileModes {
		if n.TileModes[i], err = r.ReadI32(); err != nil {
			return err
		}
	}
	return nil
}
