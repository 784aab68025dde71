package model

// ParticleSystem is the PSYS chunk's per-entry record (spec SPEC_FULL.md
// §7, supplemented from original_source/libgm/src/gamemaker/elements/
// particle_emitter(s).rs): a named list of emitters with global draw
// order.
type ParticleSystem struct {
	Name         StringRef
	OriginX, OriginY int32
	DrawOrder    int32
	GlobalSpaceParticles bool
	Emitters     []ParticleEmitterRef
}

// ParticleEmitter is the PSEM chunk's per-entry record. PSEM's mere
// presence already raises the effective version (spec §4.4); this struct
// is the supplemented full payload decode.
type ParticleEmitter struct {
	Name StringRef

	RegionX1, RegionY1, RegionX2, RegionY2 float32
	Shape       int32
	Sprite      SpriteRef
	HasSprite   bool

	SpawnOnDeath ParticleEmitterRef
	HasSpawnOnDeath bool
	SpawnOnUpdate   ParticleEmitterRef
	HasSpawnOnUpdate bool

	TextureMode int32
	StartColor, MidColor, EndColor uint32

	LifetimeMin, LifetimeMax float32
	ParticleCountMin, ParticleCountMax int32
}
