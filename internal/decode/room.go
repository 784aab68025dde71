package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// ROOM decodes the room table (spec §3 Room). GMS2+ layer lists are
// detected by presence of a trailing layer pointer-list; older rooms only
// carry Backgrounds/Views/Instances/Tiles (spec SPEC_FULL.md §7).
func ROOM(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(48, func(r *container.Reader, i int) error {
		room := model.Room{}
		var err error
		if room.Name, err = readStringRef(r); err != nil {
			return err
		}
		if room.Caption, err = readStringRef(r); err != nil {
			return err
		}
		if room.Width, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Height, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Speed, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Persistent, err = r.ReadBool32(); err != nil {
			return err
		}
		if room.BackgroundColor, err = r.ReadU32(); err != nil {
			return err
		}
		if room.DrawBackgroundColor, err = r.ReadBool32(); err != nil {
			return err
		}
		creationCode, err := r.ReadI32()
		if err != nil {
			return err
		}
		if creationCode >= 0 {
			room.HasCreationCode = true
			room.CreationCode = model.CodeRef(creationCode)
		}
		if room.Flags, err = r.ReadI32(); err != nil {
			return err
		}

		if _, err := r.ReadPointerList(24, func(r *container.Reader, j int) error {
			b := model.RoomBackground{}
			var err error
			if b.Enabled, err = r.ReadBool32(); err != nil {
				return err
			}
			if b.Foreground, err = r.ReadBool32(); err != nil {
				return err
			}
			bg, err := r.ReadI32()
			if err != nil {
				return err
			}
			b.Background = model.BackgroundRef(bg)
			if b.X, err = r.ReadI32(); err != nil {
				return err
			}
			if b.Y, err = r.ReadI32(); err != nil {
				return err
			}
			if b.TileX, err = r.ReadBool32(); err != nil {
				return err
			}
			if b.TileY, err = r.ReadBool32(); err != nil {
				return err
			}
			if b.SpeedX, err = r.ReadI32(); err != nil {
				return err
			}
			if b.SpeedY, err = r.ReadI32(); err != nil {
				return err
			}
			if b.Stretch, err = r.ReadBool32(); err != nil {
				return err
			}
			room.Backgrounds = append(room.Backgrounds, b)
			return nil
		}); err != nil {
			return err
		}

		if _, err := r.ReadPointerList(40, func(r *container.Reader, j int) error {
			v := model.RoomView{}
			var err error
			if v.Enabled, err = r.ReadBool32(); err != nil {
				return err
			}
			for _, f := range []*int32{&v.ViewX, &v.ViewY, &v.ViewW, &v.ViewH,
				&v.PortX, &v.PortY, &v.PortW, &v.PortH, &v.BorderX, &v.BorderY,
				&v.SpeedX, &v.SpeedY} {
				if *f, err = r.ReadI32(); err != nil {
					return err
				}
			}
			obj, err := r.ReadI32()
			if err != nil {
				return err
			}
			v.ObjectFollow = model.ObjectRef(obj)
			room.Views = append(room.Views, v)
			return nil
		}); err != nil {
			return err
		}

		if _, err := r.ReadPointerList(40, func(r *container.Reader, j int) error {
			inst, err := readRoomInstance(r)
			if err != nil {
				return err
			}
			room.Instances = append(room.Instances, inst)
			return nil
		}); err != nil {
			return err
		}

		if _, err := r.ReadPointerList(40, func(r *container.Reader, j int) error {
			t, err := readRoomTile(r)
			if err != nil {
				return err
			}
			room.Tiles = append(room.Tiles, t)
			return nil
		}); err != nil {
			return err
		}

		if room.World, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Top, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Left, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Right, err = r.ReadI32(); err != nil {
			return err
		}
		if room.Bottom, err = r.ReadI32(); err != nil {
			return err
		}
		if room.GravityX, err = r.ReadF32(); err != nil {
			return err
		}
		if room.GravityY, err = r.ReadF32(); err != nil {
			return err
		}
		if room.MetersPerPixel, err = r.ReadF32(); err != nil {
			return err
		}

		// GMS2+ layer list: only present when bytes remain before the next
		// pointer-list offset, mirrored from GEN8's UID-block presence check.
		start, end := r.ChunkBounds()
		_ = start
		if end-r.Pos() >= 4 {
			if _, err := r.ReadPointerList(28, func(r *container.Reader, j int) error {
				layer, err := readLayer(r)
				if err != nil {
					return err
				}
				room.Layers = append(room.Layers, layer)
				return nil
			}); err != nil {
				return err
			}
		}

		data.Rooms = append(data.Rooms, room)
		return nil
	})
	return err
}

func readRoomInstance(r *container.Reader) (model.RoomInstance, error) {
	inst := model.RoomInstance{}
	var err error
	if inst.X, err = r.ReadF32(); err != nil {
		return inst, err
	}
	if inst.Y, err = r.ReadF32(); err != nil {
		return inst, err
	}
	obj, err := r.ReadI32()
	if err != nil {
		return inst, err
	}
	inst.Object = model.ObjectRef(obj)
	if inst.InstanceID, err = r.ReadI32(); err != nil {
		return inst, err
	}
	preCreate, err := r.ReadI32()
	if err != nil {
		return inst, err
	}
	if preCreate >= 0 {
		inst.HasPreCreate = true
		inst.PreCreateCode = model.CodeRef(preCreate)
	}
	if inst.ScaleX, err = r.ReadF32(); err != nil {
		return inst, err
	}
	if inst.ScaleY, err = r.ReadF32(); err != nil {
		return inst, err
	}
	if inst.Color, err = r.ReadU32(); err != nil {
		return inst, err
	}
	if inst.Rotation, err = r.ReadF32(); err != nil {
		return inst, err
	}
	return inst, nil
}

func readRoomTile(r *container.Reader) (model.RoomTile, error) {
	t := model.RoomTile{}
	var err error
	if t.X, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.Y, err = r.ReadI32(); err != nil {
		return t, err
	}
	bg, err := r.ReadI32()
	if err != nil {
		return t, err
	}
	t.Background = model.BackgroundRef(bg)
	if t.SourceX, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.SourceY, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.Width, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.Height, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.TileDepth, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.InstanceID, err = r.ReadI32(); err != nil {
		return t, err
	}
	if t.ScaleX, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.ScaleY, err = r.ReadF32(); err != nil {
		return t, err
	}
	if t.Color, err = r.ReadU32(); err != nil {
		return t, err
	}
	return t, nil
}

func readLayer(r *container.Reader) (model.Layer, error) {
	l := model.Layer{}
	var err error
	if l.Name, err = readStringRef(r); err != nil {
		return l, err
	}
	kind, err := r.ReadI32()
	if err != nil {
		return l, err
	}
	l.Kind = model.LayerKind(kind)
	if l.ID, err = r.ReadI32(); err != nil {
		return l, err
	}
	if l.Depth, err = r.ReadI32(); err != nil {
		return l, err
	}
	if l.OffsetX, err = r.ReadF32(); err != nil {
		return l, err
	}
	if l.OffsetY, err = r.ReadF32(); err != nil {
		return l, err
	}
	if l.SpeedX, err = r.ReadF32(); err != nil {
		return l, err
	}
	if l.SpeedY, err = r.ReadF32(); err != nil {
		return l, err
	}
	if l.Visible, err = r.ReadBool32(); err != nil {
		return l, err
	}

	switch l.Kind {
	case model.LayerInstances:
		_, err = r.ReadPointerList(40, func(r *container.Reader, j int) error {
			inst, err := readRoomInstance(r)
			if err != nil {
				return err
			}
			l.Instances = append(l.Instances, inst)
			return nil
		})
	case model.LayerTiles:
		_, err = r.ReadPointerList(40, func(r *container.Reader, j int) error {
			t, err := readRoomTile(r)
			if err != nil {
				return err
			}
			l.Tiles = append(l.Tiles, t)
			return nil
		})
	case model.LayerBackground:
		err = readRoomBackgroundLayer(r, &l.Background)
	default:
		// Asset/effect layers: opaque beyond framing (spec §1 scopes
		// interior interpretation to an external collaborator, same as
		// Sequence and Shader).
	}
	return l, err
}

func readRoomBackgroundLayer(r *container.Reader, b *model.RoomBackground) error {
	var err error
	if b.Enabled, err = r.ReadBool32(); err != nil {
		return err
	}
	if b.Foreground, err = r.ReadBool32(); err != nil {
		return err
	}
	bg, err := r.ReadI32()
	if err != nil {
		return err
	}
	b.Background = model.BackgroundRef(bg)
	if b.TileX, err = r.ReadBool32(); err != nil {
		return err
	}
	if b.TileY, err = r.ReadBool32(); err != nil {
		return err
	}
	if b.Stretch, err = r.ReadBool32(); err != nil {
		return err
	}
	return nil
}
