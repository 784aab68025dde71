package model

// OptionConstant is one user-defined name/value pair in OPTN's constants
// list.
type OptionConstant struct {
	Name  StringRef
	Value StringRef
}

// Options is the OPTN chunk (spec SPEC_FULL.md §7; its image pointers into
// TPAG are the builder cross-chunk reference called out in spec §4.8).
type Options struct {
	Flags            uint64
	ScaleMode        int32
	WindowColor      uint32
	ColorDepth       int32
	Resolution       int32
	Frequency        int32
	VertexSync       int32
	Priority         int32
	BackImage        TextureRef
	HasBackImage     bool
	FrontImage       TextureRef
	HasFrontImage    bool
	LoadImage        TextureRef
	HasLoadImage     bool
	LoadAlpha        int32
	Constants        []OptionConstant
}
