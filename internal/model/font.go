package model

// Glyph is one character entry of a Font's glyph table.
type Glyph struct {
	Character              uint16
	SourceX, SourceY        uint16
	SourceW, SourceH        uint16
	Shift                   int16
	Offset                  int16
	Kerning                 []KerningPair
}

// KerningPair is one entry of a glyph's kerning adjustment list, the
// layout the version detector's FONT probe (spec §4.4) walks structurally
// without building Font values; this is the supplemented full decode
// (spec SPEC_FULL.md §7).
type KerningPair struct {
	Other  uint16
	Amount int16
}

// Font is the FONT chunk's per-font record.
type Font struct {
	Name        StringRef
	DisplayName StringRef
	Size        float32
	Bold, Italic bool
	Charset, AntiAlias uint8
	FirstChar, LastChar uint32
	Texture     TextureRef
	ScaleX, ScaleY float32
	AscenderOffset int32
	Ascender       int32
	Glyphs      []Glyph
}
