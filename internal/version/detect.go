// Package version implements the structural version-detection heuristics
// of spec §4.4: when GEN8 declares exactly 2.0.0.0, the true engine
// version is inferred from the shape of other chunks rather than any
// explicit field, since nothing in the format names it directly.
package version

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// probe checks one structural signal and, on a match, returns the version
// it implies. Detect saves the reader's chunk and cursor before each check
// and restores them afterwards regardless of outcome, so a check may move
// the cursor freely; a check never mutates data (spec §4.4).
type probe struct {
	name  string
	check func(r *container.Reader, data *model.Data) (model.Version, bool, error)
}

// Detect runs every probe in spec §4.4's fixed order and returns the
// version raised by the first match, or data.General.Declared unchanged
// if none match. Only called when the declared version is exactly
// 2.0.0.0 (spec §4.4's precondition); callers enforce that, not this
// function, so it stays a pure "what do these bytes imply" query.
func Detect(r *container.Reader, data *model.Data) (model.Version, error) {
	for _, p := range probes {
		pos := r.Snapshot()
		chunkTag := r.ChunkTag()
		chunkStart, chunkEnd := r.ChunkBounds()
		v, matched, err := p.check(r, data)
		r.EnterChunk(chunkTag, chunkStart, chunkEnd)
		r.Restore(pos)
		if err != nil {
			return model.Version{}, err
		}
		if matched {
			return v, nil
		}
	}
	return data.General.Declared, nil
}

var probes = []probe{
	{"UILR-presence", func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		if r.Directory().Has("UILR") {
			return model.Version{Major: 2024, Minor: 13, Branch: "PostLTS"}, true, nil
		}
		return model.Version{}, false, nil
	}},
	{"SOND-layout", func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		entry, ok := r.Directory().Chunk("SOND")
		if !ok {
			return model.Version{}, false, nil
		}
		r.EnterChunk("SOND", entry.Start, entry.End)
		count, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		// Collect up to two nonzero sound pointers; a zero entry is an
		// unused slot and carries no layout information.
		var pointers []uint32
		for i := uint32(0); i < count && len(pointers) < 2; i++ {
			off, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			if off != 0 {
				pointers = append(pointers, off)
			}
		}
		const legacySoundEntrySize = 4 * 9
		switch len(pointers) {
		case 2:
			// If the first sound's theoretical (old) end offset sits
			// exactly 4 bytes below the next sound's start, this is 2024.6.
			if pointers[0]+legacySoundEntrySize == pointers[1]-4 {
				return model.Version{Major: 2024, Minor: 6}, true, nil
			}
		case 1:
			// A single entry leaves no second offset to diff against; a
			// nonzero word where the legacy struct's padding would sit is
			// the signal instead.
			absPos := pointers[0] + legacySoundEntrySize
			if absPos%16 != 4 {
				return model.Version{}, false, nil
			}
			r.SetPos(int64(absPos))
			word, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			if word != 0 {
				return model.Version{Major: 2024, Minor: 6}, true, nil
			}
		}
		return model.Version{}, false, nil
	}},
	{"SPRT-layout", func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		entry, ok := r.Directory().Chunk("SPRT")
		if !ok {
			return model.Version{}, false, nil
		}
		r.EnterChunk("SPRT", entry.Start, entry.End)
		count, err := r.ReadU32()
		if err != nil || count == 0 {
			return model.Version{}, false, nil
		}
		offsets := make([]uint32, count)
		for i := range offsets {
			off, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			offsets[i] = off
		}
		for i := 0; i < int(count); i++ {
			spritePtr := offsets[i]
			if spritePtr == 0 {
				continue
			}
			var nextSpritePtr uint32
			for j := i + 1; j < int(count); j++ {
				if offsets[j] != 0 {
					nextSpritePtr = offsets[j]
					break
				}
			}

			r.SetPos(int64(spritePtr) + 4) // skip name ref
			width, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			height, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			marginLeft, err := r.ReadI32()
			if err != nil {
				return model.Version{}, false, nil
			}
			marginRight, err := r.ReadI32()
			if err != nil {
				return model.Version{}, false, nil
			}
			marginBottom, err := r.ReadI32()
			if err != nil {
				return model.Version{}, false, nil
			}
			marginTop, err := r.ReadI32()
			if err != nil {
				return model.Version{}, false, nil
			}
			bboxWidth := uint32(marginRight - marginLeft + 1)
			bboxHeight := uint32(marginBottom - marginTop + 1)
			if bboxWidth == width && bboxHeight == height {
				continue // can't tell full mask from bbox mask on this sprite
			}

			r.SetPos(r.Pos() + 28)
			specialType, err := r.ReadI32()
			if err != nil || specialType != -1 {
				continue
			}
			specialVersion, err := r.ReadU32()
			if err != nil || specialVersion != 3 {
				continue
			}
			spriteType, err := r.ReadU32()
			if err != nil || spriteType != 0 { // 0 == Normal
				continue
			}
			sequenceOffset, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			nineSliceOffset, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			textureCount, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			r.SetPos(r.Pos() + int64(textureCount)*4) // skip texture pointer array
			maskCount, err := r.ReadU32()
			if err != nil {
				return model.Version{}, false, nil
			}
			if maskCount == 0 {
				continue
			}

			fullLength := alignUp4(int64((width+7)/8) * int64(height) * int64(maskCount))
			bboxLength := alignUp4(int64((bboxWidth+7)/8) * int64(bboxHeight) * int64(maskCount))
			cur := r.Pos()
			fullEnd := cur + fullLength
			bboxEnd := cur + bboxLength

			var expectedEnd int64
			switch {
			case sequenceOffset != 0:
				expectedEnd = int64(sequenceOffset)
			case nineSliceOffset != 0:
				expectedEnd = int64(nineSliceOffset)
			case nextSpritePtr != 0:
				expectedEnd = int64(nextSpritePtr)
			default:
				// No offset to compare against directly: fall back to the
				// chunk end, allowing for padding up to the next 16-byte
				// boundary.
				expectedEnd = entry.End
				if fullEnd%16 != 0 && alignUp16(fullEnd) == expectedEnd {
					return model.Version{}, false, nil // full mask matches once padding is accounted for
				}
				if bboxEnd%16 != 0 && alignUp16(bboxEnd) == expectedEnd {
					return model.Version{Major: 2024, Minor: 6}, true, nil
				}
				return model.Version{}, false, nil
			}

			if fullEnd == expectedEnd {
				// Full mask data is valid for this sprite; the layout
				// isn't 2024.6 and no later sprite can override that.
				return model.Version{}, false, nil
			}
			if bboxEnd == expectedEnd {
				return model.Version{Major: 2024, Minor: 6}, true, nil
			}
		}
		return model.Version{}, false, nil
	}},
	{"EXTN-pointer-order", func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		entry, ok := r.Directory().Chunk("EXTN")
		if !ok {
			return model.Version{}, false, nil
		}
		r.EnterChunk("EXTN", entry.Start, entry.End)
		count, err := r.ReadU32()
		if err != nil || count == 0 {
			return model.Version{}, false, nil
		}
		first, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		r.SetPos(int64(first))
		if _, err := r.ReadBytes(12); err != nil { // name/version/folder string refs
			return model.Version{}, false, nil
		}
		fileListPtr, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		optionListPtr, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		if optionListPtr < fileListPtr {
			return model.Version{Major: 2023, Minor: 4}, true, nil
		}
		return model.Version{}, false, nil
	}},
	{"PSEM-presence", presenceProbe("PSEM", model.Version{Major: 2023, Minor: 2})},
	{"FEAT-presence", presenceProbe("FEAT", model.Version{Major: 2022, Minor: 8})},
	{"FONT-kerning-layout", func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		entry, ok := r.Directory().Chunk("FONT")
		if !ok {
			return model.Version{}, false, nil
		}
		r.EnterChunk("FONT", entry.Start, entry.End)
		count, err := r.ReadU32()
		if err != nil || count == 0 {
			return model.Version{}, false, nil
		}
		first, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		r.SetPos(int64(first) + 44) // fixed font header up to the glyph pointer list
		glyphCount, err := r.ReadU32()
		if err != nil || glyphCount == 0 {
			return model.Version{}, false, nil
		}
		glyphOff, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		r.SetPos(int64(glyphOff) + 14) // past the fixed glyph fields to the kerning list
		kernCount, err := r.ReadU32()
		if err != nil {
			return model.Version{}, false, nil
		}
		if kernCount > 0 {
			return model.Version{Major: 2022, Minor: 2}, true, nil
		}
		return model.Version{}, false, nil
	}},
	{"FEDS-presence", presenceProbe("FEDS", model.Version{Major: 2, Minor: 3, Release: 6})},
	{"SEQN-presence", presenceProbe("SEQN", model.Version{Major: 2, Minor: 3})},
	{"TGIN-presence", presenceProbe("TGIN", model.Version{Major: 2, Minor: 2, Release: 1})},
}

func presenceProbe(tag string, v model.Version) func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
	return func(r *container.Reader, data *model.Data) (model.Version, bool, error) {
		if r.Directory().Has(tag) {
			return v, true, nil
		}
		return model.Version{}, false, nil
	}
}

func alignUp16(n int64) int64 {
	if n%16 == 0 {
		return n
	}
	return n + (16 - n%16)
}

func alignUp4(n int64) int64 {
	if n%4 == 0 {
		return n
	}
	return n + (4 - n%4)
}
