package model

import "encoding/binary"

// Data is the top-level owner of every chunk vector (spec §3): created by
// the parser, mutated freely by the caller, consumed by the builder. It
// exclusively owns every vector; all cross-asset references are indices
// into these slices, valid only against the vector they were produced
// from (spec §3's ownership rule).
type Data struct {
	Endianness   binary.ByteOrder
	BigEndian    bool // redundant with Endianness, mirrors arch.Architecture's ByteOrder/explicit-flag pairing
	OriginalSize int64

	General GeneralInfo
	Options Options

	Strings          []string
	TexturePageItems []TexturePageItem
	TexturePages     []TexturePage

	Sprites     []Sprite
	Backgrounds []Background
	Paths       []Path
	Scripts     []Script
	Sounds      []Sound
	Fonts       []Font
	Timelines   []Timeline
	Shaders     []Shader
	Sequences   []Sequence
	AnimCurves  []AnimCurve

	ParticleSystems  []ParticleSystem
	ParticleEmitters []ParticleEmitter

	GameObjects []GameObject
	Rooms       []Room

	Codes     []Code
	Variables []Variable
	Functions []Function

	Warnings []string
}

// String resolves a StringRef; callers outside the decode path (CLI,
// tests) go through this rather than indexing Strings directly so a bad
// reference panics with a clear message instead of an opaque index
// out-of-range.
func (d *Data) String(ref StringRef) string {
	if ref < 0 || int(ref) >= len(d.Strings) {
		panic("model: string reference out of range")
	}
	return d.Strings[ref]
}

// VariableName resolves a VariableRef to its name, for diagnostics and
// the disassembler.
func (d *Data) VariableName(ref VariableRef) string {
	if int(ref) < 0 || int(ref) >= len(d.Variables) {
		return "<bad variable ref>"
	}
	return d.String(d.Variables[ref].Name)
}

// FunctionName resolves a FunctionRef to its name, for diagnostics and
// the disassembler.
func (d *Data) FunctionName(ref FunctionRef) string {
	if int(ref) < 0 || int(ref) >= len(d.Functions) {
		return "<bad function ref>"
	}
	return d.String(d.Functions[ref].Name)
}

// AddWarning appends a warning, used when a downgraded check (spec §7:
// allow_unknown_chunks, verify_alignment, verify_constants) fires.
func (d *Data) AddWarning(w string) {
	d.Warnings = append(d.Warnings, w)
}
