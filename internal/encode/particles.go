package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// PSYS writes the particle system table, the twin of decode/particles.go.
// Emitter references are written as raw indices, so PSYS does not depend
// on PSEM having been written.
func PSYS(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("PSYS")
	err := container.WritePointerList(b, "PSYS", data.ParticleSystems, func(b *container.Builder, i int, s model.ParticleSystem) error {
		writeStringRef(b, t, s.Name)
		b.WriteI32(s.OriginX)
		b.WriteI32(s.OriginY)
		b.WriteI32(s.DrawOrder)
		b.WriteBool32(s.GlobalSpaceParticles)
		return container.WriteSimpleList(b, s.Emitters, func(b *container.Builder, j int, e model.ParticleEmitterRef) error {
			b.WriteI32(int32(e))
			return nil
		})
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}

// PSEM writes the particle emitter table, the twin of decode/particles.go.
func PSEM(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("PSEM")
	err := container.WritePointerList(b, "PSEM", data.ParticleEmitters, func(b *container.Builder, i int, e model.ParticleEmitter) error {
		writeStringRef(b, t, e.Name)
		b.WriteF32(e.RegionX1)
		b.WriteF32(e.RegionY1)
		b.WriteF32(e.RegionX2)
		b.WriteF32(e.RegionY2)
		b.WriteI32(e.Shape)
		if e.HasSprite {
			b.WriteI32(int32(e.Sprite))
		} else {
			b.WriteI32(-1)
		}
		if e.HasSpawnOnDeath {
			b.WriteI32(int32(e.SpawnOnDeath))
		} else {
			b.WriteI32(-1)
		}
		if e.HasSpawnOnUpdate {
			b.WriteI32(int32(e.SpawnOnUpdate))
		} else {
			b.WriteI32(-1)
		}
		b.WriteI32(e.TextureMode)
		b.WriteU32(e.StartColor)
		b.WriteU32(e.MidColor)
		b.WriteU32(e.EndColor)
		b.WriteF32(e.LifetimeMin)
		b.WriteF32(e.LifetimeMax)
		b.WriteI32(e.ParticleCountMin)
		b.WriteI32(e.ParticleCountMax)
		return nil
	})
	if err != nil {
		return err
	}
	b.FinishChunk(last)
	return nil
}
