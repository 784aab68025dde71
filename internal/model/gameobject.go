package model

// EventSlot indices into GameObject.Events (spec §3: "12-slot event
// array").
const (
	EventCreate = iota
	EventDestroy
	EventAlarm
	EventStep
	EventCollision
	EventKeyboard
	EventMouse
	EventOther
	EventDraw
	EventKeyPress
	EventKeyRelease
	EventTrigger
	EventSlotCount
)

// Action is one entry of an event's action list.
type Action struct {
	LibID, ID, Kind int32
	UseRelative     bool
	IsQuestion      bool
	UseApplyTo      bool
	ExeType         int32
	ActionName      StringRef
	CodeID          CodeRef
	ArgumentCount   int32
	Who             int32
	Relative        bool
	IsNot           bool
}

// Event is one event within a GameObject's event slot (several events can
// share a slot, keyed by EventSubtype, e.g. which alarm or which key).
type Event struct {
	EventSubtype int32
	Actions      []Action
}

// GameObject is the OBJT chunk's per-object record (spec §3). Parent uses
// the disk-sentinel encoding described in spec §9: -100 on disk means "no
// parent" (HasParent=false here); -1 on disk means "parent is myself"
// (Parent==own index); any other value is the literal object index.
type GameObject struct {
	Name   StringRef
	Sprite SpriteRef

	Visible, Solid, Persistent bool
	Depth                      int32
	HasParent                  bool
	Parent                     ObjectRef

	MaskSprite SpriteRef

	Physics         bool
	PhysicsSensor   bool
	PhysicsShape    int32
	PhysicsDensity, PhysicsRestitution, PhysicsGroup float32
	PhysicsLinearDamping, PhysicsAngularDamping       float32
	PhysicsFriction                                   float32
	PhysicsAwake                                      bool
	PhysicsKinematic                                  bool
	PhysicsShapePoints                                [][2]float32

	Events [EventSlotCount][]Event
}
