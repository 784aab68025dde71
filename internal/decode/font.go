package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// FONT decodes the font table, supplementing the version detector's
// structural-only FONT probe (spec §4.4) with a full glyph/kerning decode
// (spec SPEC_FULL.md §7). Must run after TPAG.
func FONT(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(32, func(r *container.Reader, i int) error {
		f := model.Font{}
		var err error
		if f.Name, err = readStringRef(r); err != nil {
			return err
		}
		if f.DisplayName, err = readStringRef(r); err != nil {
			return err
		}
		if f.Size, err = r.ReadF32(); err != nil {
			return err
		}
		if f.Bold, err = r.ReadBool32(); err != nil {
			return err
		}
		if f.Italic, err = r.ReadBool32(); err != nil {
			return err
		}
		charset, err := r.ReadU8()
		if err != nil {
			return err
		}
		f.Charset = charset
		antiAlias, err := r.ReadU8()
		if err != nil {
			return err
		}
		f.AntiAlias = antiAlias
		if _, err := r.ReadBytes(2); err != nil { // padding to u32
			return err
		}
		if f.FirstChar, err = r.ReadU32(); err != nil {
			return err
		}
		if f.LastChar, err = r.ReadU32(); err != nil {
			return err
		}
		texOff, err := r.ReadU32()
		if err != nil {
			return err
		}
		idx, terr := r.TextureIndexAt(int64(texOff))
		if terr == nil {
			f.Texture = model.TextureRef(idx)
		}
		if f.ScaleX, err = r.ReadF32(); err != nil {
			return err
		}
		if f.ScaleY, err = r.ReadF32(); err != nil {
			return err
		}
		if f.AscenderOffset, err = r.ReadI32(); err != nil {
			return err
		}
		if f.Ascender, err = r.ReadI32(); err != nil {
			return err
		}

		if _, err := r.ReadPointerList(14, func(r *container.Reader, j int) error {
			g := model.Glyph{}
			ch, err := r.ReadU16()
			if err != nil {
				return err
			}
			g.Character = ch
			for _, field := range []*uint16{&g.SourceX, &g.SourceY, &g.SourceW, &g.SourceH} {
				if *field, err = r.ReadU16(); err != nil {
					return err
				}
			}
			if g.Shift, err = r.ReadI16(); err != nil {
				return err
			}
			if g.Offset, err = r.ReadI16(); err != nil {
				return err
			}
			if _, err := r.ReadSimpleList(func(r *container.Reader, k int) error {
				kp := model.KerningPair{}
				other, err := r.ReadU16()
				if err != nil {
					return err
				}
				kp.Other = other
				if kp.Amount, err = r.ReadI16(); err != nil {
					return err
				}
				g.Kerning = append(g.Kerning, kp)
				return nil
			}); err != nil {
				return err
			}
			f.Glyphs = append(f.Glyphs, g)
			return nil
		}); err != nil {
			return err
		}

		data.Fonts = append(data.Fonts, f)
		return nil
	})
	return err
}
