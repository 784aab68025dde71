package model

// RoomBackground is one entry of a (pre-GMS2) room's background list.
type RoomBackground struct {
	Enabled, Foreground bool
	Background          BackgroundRef
	X, Y                int32
	TileX, TileY        bool
	SpeedX, SpeedY      int32
	Stretch             bool
}

// RoomView is one of a room's 8 camera views.
type RoomView struct {
	Enabled                          bool
	ViewX, ViewY, ViewW, ViewH       int32
	PortX, PortY, PortW, PortH       int32
	BorderX, BorderY                 int32
	SpeedX, SpeedY                   int32
	ObjectFollow                     ObjectRef
}

// RoomInstance is one placed GameObject instance in a room.
type RoomInstance struct {
	X, Y          float32
	Object        ObjectRef
	InstanceID    int32
	ScaleX, ScaleY float32
	Color         uint32
	Rotation      float32
	PreCreateCode CodeRef
	HasPreCreate  bool
}

// RoomTile is one legacy (pre-GMS2 layer) placed tile.
type RoomTile struct {
	X, Y               int32
	Background         BackgroundRef
	SourceX, SourceY, Width, Height int32
	TileDepth          int32
	InstanceID         int32
	ScaleX, ScaleY     float32
	Color              uint32
}

// LayerKind distinguishes a GMS2+ room layer's payload.
type LayerKind int32

const (
	LayerBackground LayerKind = iota
	LayerInstances
	LayerAssets
	LayerTiles
	LayerEffect
)

// Layer is a GMS2+ room layer (spec §3).
type Layer struct {
	Name        StringRef
	Kind        LayerKind
	ID          int32
	Depth       int32
	OffsetX, OffsetY float32
	SpeedX, SpeedY   float32
	Visible     bool

	// Only the field matching Kind is populated.
	Instances []RoomInstance
	Tiles     []RoomTile
	Background RoomBackground
}

// Room is the ROOM chunk's per-room record (spec §3).
type Room struct {
	Name   StringRef
	Caption StringRef
	Width, Height int32
	Speed  int32
	Persistent bool
	BackgroundColor uint32
	DrawBackgroundColor bool
	CreationCode CodeRef
	HasCreationCode bool
	Flags  int32

	Backgrounds []RoomBackground
	Views       []RoomView
	Instances   []RoomInstance
	Tiles       []RoomTile

	// GMS2+.
	Layers    []Layer
	// Sequences keyed by layer are referenced by name only here; the full
	// sequence asset lives in the Sequences vector (2.3+, spec §3).
	Sequences []SequenceRef

	World         int32
	Top, Left, Right, Bottom int32
	GravityX, GravityY float32
	MetersPerPixel     float32
}
