package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// PSYS decodes the particle system table (supplemented feature, spec
// SPEC_FULL.md §7, grounded on original_source/libgm's
// particle_emitters.rs). Emitter references are stored as raw indices into
// Data.ParticleEmitters, so PSYS does not depend on PSEM having run.
func PSYS(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(16, func(r *container.Reader, i int) error {
		s := model.ParticleSystem{}
		var err error
		if s.Name, err = readStringRef(r); err != nil {
			return err
		}
		if s.OriginX, err = r.ReadI32(); err != nil {
			return err
		}
		if s.OriginY, err = r.ReadI32(); err != nil {
			return err
		}
		if s.DrawOrder, err = r.ReadI32(); err != nil {
			return err
		}
		if s.GlobalSpaceParticles, err = r.ReadBool32(); err != nil {
			return err
		}
		_, err = r.ReadSimpleList(func(r *container.Reader, j int) error {
			emitter, err := r.ReadI32()
			if err != nil {
				return err
			}
			s.Emitters = append(s.Emitters, model.ParticleEmitterRef(emitter))
			return nil
		})
		if err != nil {
			return err
		}
		data.ParticleSystems = append(data.ParticleSystems, s)
		return nil
	})
	return err
}

// PSEM decodes the particle emitter table. Its mere presence already
// raises the effective version (spec §4.4); this is the supplemented full
// payload decode.
func PSEM(r *container.Reader, data *model.Data) error {
	_, err := r.ReadPointerList(56, func(r *container.Reader, i int) error {
		e := model.ParticleEmitter{}
		var err error
		if e.Name, err = readStringRef(r); err != nil {
			return err
		}
		for _, f := range []*float32{&e.RegionX1, &e.RegionY1, &e.RegionX2, &e.RegionY2} {
			if *f, err = r.ReadF32(); err != nil {
				return err
			}
		}
		if e.Shape, err = r.ReadI32(); err != nil {
			return err
		}
		sprite, err := r.ReadI32()
		if err != nil {
			return err
		}
		if sprite >= 0 {
			e.HasSprite, e.Sprite = true, model.SpriteRef(sprite)
		}
		spawnDeath, err := r.ReadI32()
		if err != nil {
			return err
		}
		if spawnDeath >= 0 {
			e.HasSpawnOnDeath, e.SpawnOnDeath = true, model.ParticleEmitterRef(spawnDeath)
		}
		spawnUpdate, err := r.ReadI32()
		if err != nil {
			return err
		}
		if spawnUpdate >= 0 {
			e.HasSpawnOnUpdate, e.SpawnOnUpdate = true, model.ParticleEmitterRef(spawnUpdate)
		}
		if e.TextureMode, err = r.ReadI32(); err != nil {
			return err
		}
		if e.StartColor, err = r.ReadU32(); err != nil {
			return err
		}
		if e.MidColor, err = r.ReadU32(); err != nil {
			return err
		}
		if e.EndColor, err = r.ReadU32(); err != nil {
			return err
		}
		if e.LifetimeMin, err = r.ReadF32(); err != nil {
			return err
		}
		if e.LifetimeMax, err = r.ReadF32(); err != nil {
			return err
		}
		if e.ParticleCountMin, err = r.ReadI32(); err != nil {
			return err
		}
		if e.ParticleCountMax, err = r.ReadI32(); err != nil {
			return err
		}
		data.ParticleEmitters = append(data.ParticleEmitters, e)
		return nil
	})
	return err
}
