package encode

import (
	"github.com/biotomatede/libgm/internal/model"
)

// chainRecorder implements instr.OccurrenceRecorder: it remembers, per
// variable/function, the ordered list of descriptor positions
// EncodeStream wrote placeholders for (spec §4.6's write protocol). The
// actual occurrence words are not filled in until Finalize walks each
// list.
type chainRecorder struct {
	varPositions  map[model.VariableRef][]int64
	varTypes      map[model.VariableRef][]model.VariableType
	funcPositions map[model.FunctionRef][]int64
}

func newChainRecorder() *chainRecorder {
	return &chainRecorder{
		varPositions:  make(map[model.VariableRef][]int64),
		varTypes:      make(map[model.VariableRef][]model.VariableType),
		funcPositions: make(map[model.FunctionRef][]int64),
	}
}

func (c *chainRecorder) RecordVariable(ref model.VariableRef, pos int64, vt model.VariableType) {
	c.varPositions[ref] = append(c.varPositions[ref], pos)
	c.varTypes[ref] = append(c.varTypes[ref], vt)
}

func (c *chainRecorder) RecordFunction(ref model.FunctionRef, pos int64) {
	c.funcPositions[ref] = append(c.funcPositions[ref], pos)
}

// finalizeChains overwrites every recorded descriptor's placeholder
// occurrence word (spec §4.6's write protocol): each non-terminal word
// gets `((next-this) & 0x07FFFFFF) | (vt<<27)`; the terminal word gets the
// variable's own name string index packed the same way, the write-side
// twin of this codec's documented terminal-word convention (see
// DESIGN.md). Function words carry the raw offset, and the raw name index
// at the end, with no tag bits. It also sets each recorded entry's
// OccurrencePositions, from which VARI/FUNC derive
// first_occurrence_position/occurrence_count (spec invariant 3).
// FinalizeChains is finalizeChains exported for gm.Serialize: chainRecorder
// is unexported, so the value CODE returns can only be threaded back in
// through a function in this package, not reconstructed by the caller.
func FinalizeChains(buf []byte, rec *chainRecorder, data *model.Data) {
	finalizeChains(buf, rec, data)
}

func finalizeChains(buf []byte, rec *chainRecorder, data *model.Data) {
	for ref := range rec.varPositions {
		positions := rec.varPositions[ref]
		types := rec.varTypes[ref]
		writeChainWords(buf, positions, types, int32(data.Variables[ref].Name))
		if len(positions) == 0 {
			data.Variables[ref].OccurrencePositions = nil
			continue
		}
		data.Variables[ref].OccurrencePositions = positions
	}
	for ref := range rec.funcPositions {
		positions := rec.funcPositions[ref]
		writeFuncChainWords(buf, positions, int32(data.Functions[ref].Name))
		data.Functions[ref].OccurrencePositions = positions
	}
}

func writeChainWords(buf []byte, positions []int64, types []model.VariableType, nameIndex int32) {
	for i, pos := range positions {
		var word uint32
		if i == len(positions)-1 {
			word = model.EncodeOccurrenceWord(nameIndex, types[i])
		} else {
			next := positions[i+1]
			word = model.EncodeOccurrenceWord(int32(next-pos), types[i])
		}
		putU32LE(buf, pos, word)
	}
}

func writeFuncChainWords(buf []byte, positions []int64, nameIndex int32) {
	for i, pos := range positions {
		var word uint32
		if i == len(positions)-1 {
			word = uint32(nameIndex)
		} else {
			word = uint32(positions[i+1] - pos)
		}
		putU32LE(buf, pos, word)
	}
}

func putU32LE(buf []byte, pos int64, v uint32) {
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
}
