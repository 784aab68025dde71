package model

// Background is the BGND chunk's per-entry record (a single tileable
// image, distinct from the GMS2 room-layer "asset layer").
type Background struct {
	Name       StringRef
	Transparent bool
	Smooth     bool
	Preload    bool
	Texture    TextureRef
	HasTexture bool

	// GMS2+ tileset fields; zero when the background predates tilesets.
	IsTileSet              bool
	TileWidth, TileHeight  int32
	TileOutputBorderX, TileOutputBorderY int32
	ItemsPerTileRow        int32
	TileCount              int32
}

// PathPoint is one control point of a PATH asset.
type PathPoint struct {
	X, Y, Speed float32
}

// Path is the PATH chunk's per-entry record.
type Path struct {
	Name        StringRef
	Smooth      bool
	Closed      bool
	Precision   int32
	Points      []PathPoint
}

// Script is the SCPT chunk's per-entry record: a name bound to a CODE
// entry (the actual bytecode, owned by Data.Codes).
type Script struct {
	Name StringRef
	Code CodeRef
	HasCode bool
	IsConstructor bool
}

// Sound is the SOND chunk's per-entry record. The nine-field-plus-padding
// layout referenced by the version detector's SOND probe (spec §4.4) is
// this struct's on-disk shape.
type Sound struct {
	Name        StringRef
	Flags       uint32
	Extension   StringRef
	FileName    StringRef
	EffectFlags uint32
	Volume      float32
	Pitch       float32
	AudioGroup  int32
	AudioFile   int32 // index into AUDO, or -1 if streamed externally
	HasAudioFile bool
}

// Timeline is the TMLN chunk's per-entry record: moments keyed by step,
// each a list of actions (reuses GameObject's Action shape).
type TimelineMoment struct {
	Step    int32
	Actions []Action
}

type Timeline struct {
	Name    StringRef
	Moments []TimelineMoment
}

// Shader is the SHDR chunk's per-entry record (spec SPEC_FULL.md §7): GLSL
// ES / HLSL source pairs plus the attribute list, opaque beyond framing
// since actual shader compilation is an external collaborator's job.
type ShaderKind int32

const (
	ShaderGLSLES ShaderKind = iota
	ShaderGLSL
	ShaderHLSL9
	ShaderHLSL11
	ShaderPSSL
	ShaderCG
	ShaderCGPSVita
)

type Shader struct {
	Name       StringRef
	Kind       ShaderKind
	VertexSource, FragmentSource StringRef
	Attributes []StringRef
}

// AnimCurveChannel is one channel of an ACRV animation curve.
type AnimCurveChannelKind int32

const (
	CurveKindLinear AnimCurveChannelKind = iota
	CurveKindSmooth
)

type AnimCurveKeyframe struct {
	Time, Value float32
}

type AnimCurveChannel struct {
	Name      StringRef
	Kind      AnimCurveChannelKind
	Keyframes []AnimCurveKeyframe
}

type AnimCurve struct {
	Name     StringRef
	Channels []AnimCurveChannel
}

// Sequence is the SEQN chunk's per-entry record (2.3+, spec §3). Its
// internal keyframe/track graph is represented opaquely: the codec's job
// is framing the chunk correctly for round-trip, not interpreting
// animation curves (spec §1 scopes "sequence" interpretation to a
// higher-level consumer the same way it scopes spine/SWF).
type Sequence struct {
	Name   StringRef
	Length float32
	PlaybackSpeed float32
	Opaque []byte
}
