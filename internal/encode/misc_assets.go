package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// BGND writes the background table, the twin of decode/misc_assets.go's
// BGND. Must run after TPAG.
func BGND(b *container.Builder, data *model.Data, t *StringTable, tex *TextureTable, last bool) error {
	b.StartChunk("BGND")
	err := container.WritePointerList(b, "BGND", data.Backgrounds, func(b *container.Builder, i int, bg model.Background) error {
		writeStringRef(b, t, bg.Name)
		b.WriteBool32(bg.Transparent)
		b.WriteBool32(bg.Smooth)
		b.WriteBool32(bg.Preload)
		writeOptionalTextureRef(b, tex, bg.HasTexture, bg.Texture)
		b.WriteBool32(bg.IsTileSet)
		if bg.IsTileSet {
			b.WriteI32(bg.TileWidth)
			b.WriteI32(bg.TileHeight)
			b.WriteI32(bg.TileOutputBorderX)
			b.WriteI32(bg.TileOutputBorderY)
			b.WriteI32(bg.ItemsPerTileRow)
			b.WriteI32(bg.TileCount)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

// PATH writes the path table.
func PATH(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("PATH")
	err := container.WritePointerList(b, "PATH", data.Paths, func(b *container.Builder, i int, p model.Path) error {
		writeStringRef(b, t, p.Name)
		b.WriteBool32(p.Smooth)
		b.WriteBool32(p.Closed)
		b.WriteI32(p.Precision)
		return container.WriteSimpleList(b, p.Points, func(b *container.Builder, j int, pt model.PathPoint) error {
			b.WriteF32(pt.X)
			b.WriteF32(pt.Y)
			b.WriteF32(pt.Speed)
			return nil
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

// SCPT writes the script table: a name bound to a CODE entry. Must run
// after CODE.
func SCPT(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("SCPT")
	err := container.WritePointerList(b, "SCPT", data.Scripts, func(b *container.Builder, i int, s model.Script) error {
		writeStringRef(b, t, s.Name)
		if s.HasCode {
			b.WriteI32(int32(s.Code))
		} else {
			b.WriteI32(-1)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

// SOND writes the sound table, the exact layout the version detector's
// SOND probe (spec §4.4) walks structurally.
func SOND(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("SOND")
	err := container.WritePointerList(b, "SOND", data.Sounds, func(b *container.Builder, i int, s model.Sound) error {
		writeStringRef(b, t, s.Name)
		b.WriteU32(s.Flags)
		writeStringRef(b, t, s.Extension)
		writeStringRef(b, t, s.FileName)
		b.WriteU32(s.EffectFlags)
		b.WriteF32(s.Volume)
		b.WriteF32(s.Pitch)
		b.WriteI32(s.AudioGroup)
		if s.HasAudioFile {
			b.WriteI32(s.AudioFile)
		} else {
			b.WriteI32(-1)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

// TMLN writes the timeline table, reusing writeAction from objt.go.
func TMLN(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("TMLN")
	err := container.WritePointerList(b, "TMLN", data.Timelines, func(b *container.Builder, i int, tl model.Timeline) error {
		writeStringRef(b, t, tl.Name)
		return container.WritePointerList(b, "TMLN.moment", tl.Moments, func(b *container.Builder, j int, m model.TimelineMoment) error {
			b.WriteI32(m.Step)
			return container.WritePointerList(b, "TMLN.action", m.Actions, func(b *container.Builder, k int, a model.Action) error {
				writeAction(b, t, a)
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

// ACRV writes the animation curve table.
func ACRV(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("ACRV")
	err := container.WritePointerList(b, "ACRV", data.AnimCurves, func(b *container.Builder, i int, c model.AnimCurve) error {
		writeStringRef(b, t, c.Name)
		return container.WritePointerList(b, "ACRV.channel", c.Channels, func(b *container.Builder, j int, ch model.AnimCurveChannel) error {
			writeStringRef(b, t, ch.Name)
			b.WriteI32(int32(ch.Kind))
			return container.WriteSimpleList(b, ch.Keyframes, func(b *container.Builder, k int, kf model.AnimCurveKeyframe) error {
				b.WriteF32(kf.Time)
				b.WriteF32(kf.Value)
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

// SEQN writes the sequence table, the twin of decode/misc_assets.go's
// opaque-beyond-scalars SEQN decode.
func SEQN(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("SEQN")
	err := container.WritePointerList(b, "SEQN", data.Sequences, func(b *container.Builder, i int, s model.Sequence) error {
		writeStringRef(b, t, s.Name)
		b.WriteF32(s.Length)
		b.WriteF32(s.PlaybackSpeed)
		b.WriteBytes(s.Opaque)
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}
