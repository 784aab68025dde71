package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// TPAG decodes texture page item rectangles (spec §3 TexturePageItem). It
// must run before any chunk that embeds a texture-page-item reference
// (sprites, fonts, backgrounds, options), populating r's offset->index map
// the same way STRG does for strings (spec §2 step 4's ordering rule).
func TPAG(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(22, func(r *container.Reader, i int) error {
		start := r.Pos()
		item := model.TexturePageItem{}
		var err error
		if item.SourceX, err = r.ReadU16(); err != nil {
			return err
		}
		if item.SourceY, err = r.ReadU16(); err != nil {
			return err
		}
		if item.SourceW, err = r.ReadU16(); err != nil {
			return err
		}
		if item.SourceH, err = r.ReadU16(); err != nil {
			return err
		}
		if item.TargetX, err = r.ReadU16(); err != nil {
			return err
		}
		if item.TargetY, err = r.ReadU16(); err != nil {
			return err
		}
		if item.TargetW, err = r.ReadU16(); err != nil {
			return err
		}
		if item.TargetH, err = r.ReadU16(); err != nil {
			return err
		}
		if item.BoundingBoxW, err = r.ReadU16(); err != nil {
			return err
		}
		if item.BoundingBoxH, err = r.ReadU16(); err != nil {
			return err
		}
		if item.TexturePageID, err = r.ReadI32(); err != nil {
			return err
		}
		data.TexturePageItems = append(data.TexturePageItems, item)
		r.RecordTextureOffset(start, i)
		return nil
	})
	return err
}
