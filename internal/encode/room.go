package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// ROOM writes the room table, the twin of decode/room.go.
func ROOM(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("ROOM")
	err := container.WritePointerList(b, "ROOM", data.Rooms, func(b *container.Builder, i int, room model.Room) error {
		writeStringRef(b, t, room.Name)
		writeStringRef(b, t, room.Caption)
		b.WriteI32(room.Width)
		b.WriteI32(room.Height)
		b.WriteI32(room.Speed)
		b.WriteBool32(room.Persistent)
		b.WriteU32(room.BackgroundColor)
		b.WriteBool32(room.DrawBackgroundColor)
		if room.HasCreationCode {
			b.WriteI32(int32(room.CreationCode))
		} else {
			b.WriteI32(-1)
		}
		b.WriteI32(room.Flags)

		if err := container.WritePointerList(b, "ROOM.bg", room.Backgrounds, func(b *container.Builder, j int, bg model.RoomBackground) error {
			b.WriteBool32(bg.Enabled)
			b.WriteBool32(bg.Foreground)
			b.WriteI32(int32(bg.Background))
			b.WriteI32(bg.X)
			b.WriteI32(bg.Y)
			b.WriteBool32(bg.TileX)
			b.WriteBool32(bg.TileY)
			b.WriteI32(bg.SpeedX)
			b.WriteI32(bg.SpeedY)
			b.WriteBool32(bg.Stretch)
			return nil
		}); err != nil {
			return err
		}

		if err := container.WritePointerList(b, "ROOM.view", room.Views, func(b *container.Builder, j int, v model.RoomView) error {
			b.WriteBool32(v.Enabled)
			for _, f := range []int32{v.ViewX, v.ViewY, v.ViewW, v.ViewH,
				v.PortX, v.PortY, v.PortW, v.PortH, v.BorderX, v.BorderY,
				v.SpeedX, v.SpeedY} {
				b.WriteI32(f)
			}
			b.WriteI32(int32(v.ObjectFollow))
			return nil
		}); err != nil {
			return err
		}

		if err := container.WritePointerList(b, "ROOM.inst", room.Instances, func(b *container.Builder, j int, inst model.RoomInstance) error {
			writeRoomInstance(b, inst)
			return nil
		}); err != nil {
			return err
		}

		if err := container.WritePointerList(b, "ROOM.tile", room.Tiles, func(b *container.Builder, j int, tl model.RoomTile) error {
			writeRoomTile(b, tl)
			return nil
		}); err != nil {
			return err
		}

		b.WriteI32(room.World)
		b.WriteI32(room.Top)
		b.WriteI32(room.Left)
		b.WriteI32(room.Right)
		b.WriteI32(room.Bottom)
		b.WriteF32(room.GravityX)
		b.WriteF32(room.GravityY)
		b.WriteF32(room.MetersPerPixel)

		if len(room.Layers) == 0 {
			return nil
		}
		return container.WritePointerList(b, "ROOM.layer", room.Layers, func(b *container.Builder, j int, l model.Layer) error {
			return writeLayer(b, t, l)
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

func writeRoomInstance(b *container.Builder, inst model.RoomInstance) {
	b.WriteF32(inst.X)
	b.WriteF32(inst.Y)
	b.WriteI32(int32(inst.Object))
	b.WriteI32(inst.InstanceID)
	if inst.HasPreCreate {
		b.WriteI32(int32(inst.PreCreateCode))
	} else {
		b.WriteI32(-1)
	}
	b.WriteF32(inst.ScaleX)
	b.WriteF32(inst.ScaleY)
	b.WriteU32(inst.Color)
	b.WriteF32(inst.Rotation)
}

func writeRoomTile(b *container.Builder, tl model.RoomTile) {
	b.WriteI32(tl.X)
	b.WriteI32(tl.Y)
	b.WriteI32(int32(tl.Background))
	b.WriteI32(tl.SourceX)
	b.WriteI32(tl.SourceY)
	b.WriteI32(tl.Width)
	b.WriteI32(tl.Height)
	b.WriteI32(tl.TileDepth)
	b.WriteI32(tl.InstanceID)
	b.WriteF32(tl.ScaleX)
	b.WriteF32(tl.ScaleY)
	b.WriteU32(tl.Color)
}

func writeLayer(b *container.Builder, t *StringTable, l model.Layer) error {
	writeStringRef(b, t, l.Name)
	b.WriteI32(int32(l.Kind))
	b.WriteI32(l.ID)
	b.WriteI32(l.Depth)
	b.WriteF32(l.OffsetX)
	b.WriteF32(l.OffsetY)
	b.WriteF32(l.SpeedX)
	b.WriteF32(l.SpeedY)
	b.WriteBool32(l.Visible)

	switch l.Kind {
	case model.LayerInstances:
		return container.WritePointerList(b, "ROOM.layer.inst", l.Instances, func(b *container.Builder, j int, inst model.RoomInstance) error {
			writeRoomInstance(b, inst)
			return nil
		})
	case model.LayerTiles:
		return container.WritePointerList(b, "ROOM.layer.tile", l.Tiles, func(b *container.Builder, j int, tl model.RoomTile) error {
			writeRoomTile(b, tl)
			return nil
		})
	case model.LayerBackground:
		writeRoomBackgroundLayer(b, l.Background)
	}
	return nil
}

func writeRoomBackgroundLayer(b *container.Builder, bg model.RoomBackground) {
	b.WriteBool32(bg.Enabled)
	b.WriteBool32(bg.Foreground)
	b.WriteI32(int32(bg.Background))
	b.WriteBool32(bg.TileX)
	b.WriteBool32(bg.TileY)
	b.WriteBool32(bg.Stretch)
}
