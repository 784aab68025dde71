package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// BGND decodes the background table (spec SPEC_FULL.md §7). Must run
// after TPAG.
func BGND(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(16, func(r *container.Reader, i int) error {
		b := model.Background{}
		var err error
		if b.Name, err = readStringRef(r); err != nil {
			return err
		}
		if b.Transparent, err = r.ReadBool32(); err != nil {
			return err
		}
		if b.Smooth, err = r.ReadBool32(); err != nil {
			return err
		}
		if b.Preload, err = r.ReadBool32(); err != nil {
			return err
		}
		tex, err := r.ReadI32()
		if err != nil {
			return err
		}
		if tex >= 0 {
			if idx, terr := r.TextureIndexAt(int64(tex)); terr == nil {
				b.HasTexture, b.Texture = true, model.TextureRef(idx)
			}
		}

		start, end := r.ChunkBounds()
		_ = start
		if end-r.Pos() >= 4 {
			tileSet, err := r.ReadBool32()
			if err != nil {
				return err
			}
			b.IsTileSet = tileSet
			if b.IsTileSet {
				for _, f := range []*int32{&b.TileWidth, &b.TileHeight,
					&b.TileOutputBorderX, &b.TileOutputBorderY,
					&b.ItemsPerTileRow, &b.TileCount} {
					if *f, err = r.ReadI32(); err != nil {
						return err
					}
				}
			}
		}

		data.Backgrounds = append(data.Backgrounds, b)
		return nil
	})
	return err
}

// PATH decodes the path table.
func PATH(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(16, func(r *container.Reader, i int) error {
		p := model.Path{}
		var err error
		if p.Name, err = readStringRef(r); err != nil {
			return err
		}
		if p.Smooth, err = r.ReadBool32(); err != nil {
			return err
		}
		if p.Closed, err = r.ReadBool32(); err != nil {
			return err
		}
		if p.Precision, err = r.ReadI32(); err != nil {
			return err
		}
		_, err = r.ReadSimpleList(func(r *container.Reader, j int) error {
			pt := model.PathPoint{}
			var err error
			if pt.X, err = r.ReadF32(); err != nil {
				return err
			}
			if pt.Y, err = r.ReadF32(); err != nil {
				return err
			}
			if pt.Speed, err = r.ReadF32(); err != nil {
				return err
			}
			p.Points = append(p.Points, pt)
			return nil
		})
		if err != nil {
			return err
		}
		data.Paths = append(data.Paths, p)
		return nil
	})
	return err
}

// SCPT decodes the script table: a name bound to a CODE entry, owned by
// Data.Codes. Must run after CODE.
func SCPT(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(8, func(r *container.Reader, i int) error {
		s := model.Script{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		code, err := r.ReadI32()
		if err != nil {
			return err
		}
		if code >= 0 {
			s.HasCode, s.Code = true, model.CodeRef(code)
		}
		data.Scripts = append(data.Scripts, s)
		return nil
	})
	return err
}

// SOND decodes the sound table; the 9-field-plus-padding layout named
// here is the on-disk shape the version detector's SOND probe (spec §4.4)
// walks structurally without building Sound values.
func SOND(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(36, func(r *container.Reader, i int) error {
		s := model.Sound{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		if s.Flags, err = r.ReadU32(); err != nil {
			return err
		}
		if s.Extension, err = readStringRef(r); err != nil {
			return err
		}
		if s.FileName, err = readStringRef(r); err != nil {
			return err
		}
		if s.EffectFlags, err = r.ReadU32(); err != nil {
			return err
		}
		if s.Volume, err = r.ReadF32(); err != nil {
			return err
		}
		if s.Pitch, err = r.ReadF32(); err != nil {
			return err
		}
		if s.AudioGroup, err = r.ReadI32(); err != nil {
			return err
		}
		audio, err := r.ReadI32()
		if err != nil {
			return err
		}
		if audio >= 0 {
			s.HasAudioFile, s.AudioFile = true, audio
		}
		data.Sounds = append(data.Sounds, s)
		return nil
	})
	return err
}

// TMLN decodes the timeline table: moments keyed by step, reusing
// GameObject's Action shape. Must run after OBJT-shared helpers are
// available (readAction, defined in objt.go).
func TMLN(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(8, func(r *container.Reader, i int) error {
		t := model.Timeline{}
		var err error
		if t.Name, err = readStringRef(r); err != nil {
			return err
		}
		_, err = r.ReadPointerList(8, func(r *container.Reader, j int) error {
			m := model.TimelineMoment{}
			step, err := r.ReadI32()
			if err != nil {
				return err
			}
			m.Step = step
			_, err = r.ReadPointerList(16, func(r *container.Reader, k int) error {
				a, err := readAction(r)
				if err != nil {
					return err
				}
				m.Actions = append(m.Actions, a)
				return nil
			})
			if err != nil {
				return err
			}
			t.Moments = append(t.Moments, m)
			return nil
		})
		if err != nil {
			return err
		}
		data.Timelines = append(data.Timelines, t)
		return nil
	})
	return err
}

// ACRV decodes the animation curve table.
func ACRV(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(12, func(r *container.Reader, i int) error {
		c := model.AnimCurve{}
		var err error
		if c.Name, err = readStringRef(r); err != nil {
			return err
		}
		_, err = r.ReadPointerList(8, func(r *container.Reader, j int) error {
			ch := model.AnimCurveChannel{}
			var err error
			if ch.Name, err = readStringRef(r); err != nil {
				return err
			}
			kind, err := r.ReadI32()
			if err != nil {
				return err
			}
			ch.Kind = model.AnimCurveChannelKind(kind)
			_, err = r.ReadSimpleList(func(r *container.Reader, k int) error {
				kf := model.AnimCurveKeyframe{}
				var err error
				if kf.Time, err = r.ReadF32(); err != nil {
					return err
				}
				if kf.Value, err = r.ReadF32(); err != nil {
					return err
				}
				ch.Keyframes = append(ch.Keyframes, kf)
				return nil
			})
			if err != nil {
				return err
			}
			c.Channels = append(c.Channels, ch)
			return nil
		})
		if err != nil {
			return err
		}
		data.AnimCurves = append(data.AnimCurves, c)
		return nil
	})
	return err
}

// SEQN decodes the sequence table opaquely beyond its name and top-level
// scalars: interior keyframe/track interpretation is an external
// collaborator's job (spec §1 scopes this the same way as shaders and
// spine/SWF sprite data).
func SEQN(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(16, func(r *container.Reader, i int) error {
		s := model.Sequence{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		if s.Length, err = r.ReadF32(); err != nil {
			return err
		}
		if s.PlaybackSpeed, err = r.ReadF32(); err != nil {
			return err
		}
		// Track/keyframe graph beyond these scalars is opaque; ReadPointerList
		// seeks each entry independently so there is no spillover risk from
		// not consuming the remainder.
		data.Sequences = append(data.Sequences, s)
		return nil
	})
	return err
}
