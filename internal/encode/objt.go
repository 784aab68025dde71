package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// OBJT writes the game object table, the twin of decode/objt.go.
func OBJT(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("OBJT")
	err := container.WritePointerList(b, "OBJT", data.GameObjects, func(b *container.Builder, i int, o model.GameObject) error {
		writeStringRef(b, t, o.Name)
		b.WriteI32(int32(o.Sprite))
		b.WriteBool32(o.Visible)
		b.WriteBool32(o.Solid)
		b.WriteI32(o.Depth)
		b.WriteBool32(o.Persistent)
		switch {
		case !o.HasParent:
			b.WriteI32(-100)
		case int(o.Parent) == i:
			b.WriteI32(-1)
		default:
			b.WriteI32(int32(o.Parent))
		}
		b.WriteI32(int32(o.MaskSprite))

		b.WriteBool32(o.Physics)
		b.WriteBool32(o.PhysicsSensor)
		b.WriteI32(o.PhysicsShape)
		b.WriteF32(o.PhysicsDensity)
		b.WriteF32(o.PhysicsRestitution)
		b.WriteF32(o.PhysicsGroup)
		b.WriteF32(o.PhysicsLinearDamping)
		b.WriteF32(o.PhysicsAngularDamping)
		b.WriteI32(int32(len(o.PhysicsShapePoints)))
		b.WriteF32(o.PhysicsFriction)
		b.WriteBool32(o.PhysicsAwake)
		b.WriteBool32(o.PhysicsKinematic)
		for _, p := range o.PhysicsShapePoints {
			b.WriteF32(p[0])
			b.WriteF32(p[1])
		}

		for slot := 0; slot < model.EventSlotCount; slot++ {
			events := o.Events[slot]
			if err := container.WritePointerList(b, "OBJT.event", events, func(b *container.Builder, j int, ev model.Event) error {
				b.WriteI32(ev.EventSubtype)
				return container.WritePointerList(b, "OBJT.action", ev.Actions, func(b *container.Builder, k int, a model.Action) error {
					writeAction(b, t, a)
					return nil
				})
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

func writeAction(b *container.Builder, t *StringTable, a model.Action) {
	b.WriteI32(a.LibID)
	b.WriteI32(a.ID)
	b.WriteI32(a.Kind)
	b.WriteBool32(a.UseRelative)
	b.WriteBool32(a.IsQuestion)
	b.WriteBool32(a.UseApplyTo)
	b.WriteI32(a.ExeType)
	writeStringRef(b, t, a.ActionName)
	b.WriteI32(int32(a.CodeID))
	b.WriteI32(a.ArgumentCount)
	b.WriteI32(a.Who)
	b.WriteBool32(a.Relative)
	b.WriteBool32(a.IsNot)
}
