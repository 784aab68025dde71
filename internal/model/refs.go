// Package model defines the in-memory data model for a parsed GameMaker
// data container: plain value types and index-addressable vectors, with no
// knowledge of chunk framing or byte order. Every cross-asset reference is
// an index into one of Data's vectors, never a pointer, so self-referential
// and cyclic asset graphs (a game object whose parent is itself) are
// representable without reference cycles (spec §3, §9).
package model

// StringRef indexes Data.Strings. The zero value is a valid reference to
// the first string; use NoString for "absent".
type StringRef int32

// NoString marks an absent optional string reference.
const NoString StringRef = -1

type (
	TextureRef    int32
	SpriteRef     int32
	ObjectRef     int32
	RoomRef       int32
	CodeRef       int32
	VariableRef   int32
	FunctionRef   int32
	BackgroundRef int32
	PathRef       int32
	ScriptRef     int32
	SoundRef      int32
	FontRef       int32
	TimelineRef   int32
	ShaderRef     int32
	SequenceRef   int32
	AnimCurveRef  int32
	ParticleSysRef int32
	ParticleEmitterRef int32
)

// NoRef is the shared "absent" sentinel for the signed index ref types
// above; all of them use -1 for "none" rather than a distinct zero value,
// since 0 is a legitimate index.
const NoRef = -1

// AssetKind tags a PushReference operand (spec §4.5) with which vector it
// indexes, since a single 32-bit slot covers every asset type plus
// functions and room instance ids.
type AssetKind uint8

const (
	AssetObject AssetKind = iota
	AssetSprite
	AssetSound
	AssetRoom
	AssetBackground
	AssetPath
	AssetScript
	AssetFont
	AssetTimeline
	AssetShader
	AssetSequence
	AssetAnimCurve
	AssetParticleSystem
	AssetRoomInstance
	AssetFunction
)

func (k AssetKind) String() string {
	switch k {
	case AssetObject:
		return "object"
	case AssetSprite:
		return "sprite"
	case AssetSound:
		return "sound"
	case AssetRoom:
		return "room"
	case AssetBackground:
		return "background"
	case AssetPath:
		return "path"
	case AssetScript:
		return "script"
	case AssetFont:
		return "font"
	case AssetTimeline:
		return "timeline"
	case AssetShader:
		return "shader"
	case AssetSequence:
		return "sequence"
	case AssetAnimCurve:
		return "anim_curve"
	case AssetParticleSystem:
		return "particle_system"
	case AssetRoomInstance:
		return "room_instance"
	case AssetFunction:
		return "function"
	default:
		return "unknown_asset_kind"
	}
}

// AssetRef is a resolved push-reference operand: which vector, and the
// index into it.
type AssetRef struct {
	Kind  AssetKind
	Index int32
}
