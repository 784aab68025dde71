package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// OBJT decodes the game object table (spec §3 GameObject, §9's parent
// sentinel encoding).
func OBJT(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(48, func(r *container.Reader, i int) error {
		o := model.GameObject{}
		var err error
		if o.Name, err = readStringRef(r); err != nil {
			return err
		}
		sprite, err := r.ReadI32()
		if err != nil {
			return err
		}
		o.Sprite = model.SpriteRef(sprite)
		if o.Visible, err = r.ReadBool32(); err != nil {
			return err
		}
		if o.Solid, err = r.ReadBool32(); err != nil {
			return err
		}
		if o.Depth, err = r.ReadI32(); err != nil {
			return err
		}
		if o.Persistent, err = r.ReadBool32(); err != nil {
			return err
		}
		parent, err := r.ReadI32()
		if err != nil {
			return err
		}
		switch parent {
		case -100:
			o.HasParent = false
		case -1:
			o.HasParent = true
			o.Parent = model.ObjectRef(i)
		default:
			o.HasParent = true
			o.Parent = model.ObjectRef(parent)
		}
		mask, err := r.ReadI32()
		if err != nil {
			return err
		}
		o.MaskSprite = model.SpriteRef(mask)

		if o.Physics, err = r.ReadBool32(); err != nil {
			return err
		}
		if o.PhysicsSensor, err = r.ReadBool32(); err != nil {
			return err
		}
		if o.PhysicsShape, err = r.ReadI32(); err != nil {
			return err
		}
		if o.PhysicsDensity, err = r.ReadF32(); err != nil {
			return err
		}
		if o.PhysicsRestitution, err = r.ReadF32(); err != nil {
			return err
		}
		if o.PhysicsGroup, err = r.ReadF32(); err != nil {
			return err
		}
		if o.PhysicsLinearDamping, err = r.ReadF32(); err != nil {
			return err
		}
		if o.PhysicsAngularDamping, err = r.ReadF32(); err != nil {
			return err
		}
		pointCount, err := r.ReadI32()
		if err != nil {
			return err
		}
		if o.PhysicsFriction, err = r.ReadF32(); err != nil {
			return err
		}
		if o.PhysicsAwake, err = r.ReadBool32(); err != nil {
			return err
		}
		if o.PhysicsKinematic, err = r.ReadBool32(); err != nil {
			return err
		}
		o.PhysicsShapePoints = make([][2]float32, pointCount)
		for p := range o.PhysicsShapePoints {
			x, err := r.ReadF32()
			if err != nil {
				return err
			}
			y, err := r.ReadF32()
			if err != nil {
				return err
			}
			o.PhysicsShapePoints[p] = [2]float32{x, y}
		}

		for slot := 0; slot < model.EventSlotCount; slot++ {
			_, err := r.ReadPointerList(4, func(r *container.Reader, j int) error {
				ev := model.Event{}
				sub, err := r.ReadI32()
				if err != nil {
					return err
				}
				ev.EventSubtype = sub
				_, err = r.ReadPointerList(16, func(r *container.Reader, k int) error {
					a, err := readAction(r)
					if err != nil {
						return err
					}
					ev.Actions = append(ev.Actions, a)
					return nil
				})
				if err != nil {
					return err
				}
				o.Events[slot] = append(o.Events[slot], ev)
				return nil
			})
			if err != nil {
				return err
			}
		}

		data.GameObjects = append(data.GameObjects, o)
		return nil
	})
	return err
}

func readAction(r *container.Reader) (model.Action, error) {
	a := model.Action{}
	var err error
	if a.LibID, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.ID, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.Kind, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.UseRelative, err = r.ReadBool32(); err != nil {
		return a, err
	}
	if a.IsQuestion, err = r.ReadBool32(); err != nil {
		return a, err
	}
	if a.UseApplyTo, err = r.ReadBool32(); err != nil {
		return a, err
	}
	if a.ExeType, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.ActionName, err = readStringRef(r); err != nil {
		return a, err
	}
	code, err := r.ReadI32()
	if err != nil {
		return a, err
	}
	a.CodeID = model.CodeRef(code)
	if a.ArgumentCount, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.Who, err = r.ReadI32(); err != nil {
		return a, err
	}
	if a.Relative, err = r.ReadBool32(); err != nil {
		return a, err
	}
	if a.IsNot, err = r.ReadBool32(); err != nil {
		return a, err
	}
	return a, nil
}
