package model

// CollisionMask is one bounding-box-sized bitmap in a sprite's collision
// mask list (spec §3).
type CollisionMask struct {
	Width, Height int32
	Data          []byte // row-major, 1 bit per pixel, rows padded to a byte
}

// SpriteSpecialKind distinguishes a sprite's optional "special" payload
// (spec §3): sequence, nine-slice, SWF, or Spine data layered on top of
// the base frame list.
type SpriteSpecialKind uint8

const (
	SpecialNone SpriteSpecialKind = iota
	SpecialSequence
	SpecialNineSlice
	SpecialSWF
	SpecialSpine
)

// NineSlice carries the nine-patch stretch guides for a sprite.
type NineSlice struct {
	Left, Top, Right, Bottom int32
	Enabled                  bool
	TileModes                [5]int32
}

// SpecialPayload is the tagged optional extra data a sprite may carry.
// Only the field named by Kind is populated; SWF/Spine frame boundaries
// are represented but their interior payloads are opaque bytes (spec §1:
// "spine/SWF sprite formats beyond the frame boundaries" are out of
// scope).
type SpecialPayload struct {
	Kind      SpriteSpecialKind
	NineSlice NineSlice
	// SWF/Spine: only the byte range of each frame is kept; interior
	// decode is an external collaborator's job.
	OpaqueFrames [][]byte
}

// Sprite is the SPRT chunk's per-sprite record (spec §3).
type Sprite struct {
	Name                  StringRef
	Width, Height         int32
	MarginLeft, MarginRight, MarginTop, MarginBottom int32
	Transparent           bool
	Smooth                bool
	Preload               bool
	BBoxMode              int32
	SepMasks              int32
	OriginX, OriginY      int32

	Textures  []TextureRef
	Masks     []CollisionMask

	Special SpecialPayload

	PlaybackSpeed     float32
	PlaybackSpeedType int32
}
