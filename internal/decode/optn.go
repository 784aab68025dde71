package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// OPTN decodes the OPTN chunk (spec SPEC_FULL.md §7); its image fields
// cross-reference TPAG, the builder cross-chunk reference called out in
// spec §4.8. Must run after TPAG.
func OPTN(r *container.Reader, data *model.Data) error {
	o := &data.Options
	var err error
	if _, err = r.ReadBytes(8); err != nil { // reserved/unknown header pair
		return err
	}
	if o.Flags, err = r.ReadU64(); err != nil {
		return err
	}
	if o.ScaleMode, err = r.ReadI32(); err != nil {
		return err
	}
	if o.WindowColor, err = r.ReadU32(); err != nil {
		return err
	}
	if o.ColorDepth, err = r.ReadI32(); err != nil {
		return err
	}
	if o.Resolution, err = r.ReadI32(); err != nil {
		return err
	}
	if o.Frequency, err = r.ReadI32(); err != nil {
		return err
	}
	if o.VertexSync, err = r.ReadI32(); err != nil {
		return err
	}
	if o.Priority, err = r.ReadI32(); err != nil {
		return err
	}

	back, err := r.ReadI32()
	if err != nil {
		return err
	}
	if back >= 0 {
		if idx, terr := r.TextureIndexAt(int64(back)); terr == nil {
			o.HasBackImage, o.BackImage = true, model.TextureRef(idx)
		}
	}
	front, err := r.ReadI32()
	if err != nil {
		return err
	}
	if front >= 0 {
		if idx, terr := r.TextureIndexAt(int64(front)); terr == nil {
			o.HasFrontImage, o.FrontImage = true, model.TextureRef(idx)
		}
	}
	load, err := r.ReadI32()
	if err != nil {
		return err
	}
	if load >= 0 {
		if idx, terr := r.TextureIndexAt(int64(load)); terr == nil {
			o.HasLoadImage, o.LoadImage = true, model.TextureRef(idx)
		}
	}
	if o.LoadAlpha, err = r.ReadI32(); err != nil {
		return err
	}

	_, err = r.ReadSimpleList(func(r *container.Reader, i int) error {
		c := model.OptionConstant{}
		var err error
		if c.Name, err = readStringRef(r); err != nil {
			return err
		}
		if c.Value, err = readStringRef(r); err != nil {
			return err
		}
		o.Constants = append(o.Constants, c)
		return nil
	})
	return err
}
