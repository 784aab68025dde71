package model

// InstanceType is the self/other/global/builtin/local/argument/stacktop/
// object-id discriminator carried by variable references (spec GLOSSARY).
// Non-negative values name an object index directly; the named constants
// below are GameMaker's reserved negative encodings.
type InstanceType int32

const (
	InstanceUndefined InstanceType = 0
	InstanceSelf      InstanceType = -1
	InstanceOther     InstanceType = -2
	InstanceAll       InstanceType = -3
	InstanceNone      InstanceType = -4
	InstanceGlobal    InstanceType = -5
	InstanceBuiltin   InstanceType = -6
	InstanceLocal     InstanceType = -7
	InstanceStackTop  InstanceType = -9
	InstanceArgument  InstanceType = -15
	// RoomInstance ids are encoded as instance types >= 100000 in some
	// versions; Normalize treats any value in that range as RoomInstance.
	roomInstanceBase InstanceType = 100000
)

func (t InstanceType) IsRoomInstance() bool { return t >= roomInstanceBase }

// Normalize collapses the instruction-descriptor form of an instance type
// to the coarser form stored in a VARI table entry (spec §4.6): StackTop,
// Builtin, Argument, Other, Self(some object), and RoomInstance all
// collapse to Self (or, for Argument, to Builtin). This is a lossy,
// one-directional reduction: the canonical instance type used when
// re-deriving the table form during writing must be tracked separately
// (on Variable), never recovered from a descriptor alone.
func (t InstanceType) Normalize() InstanceType {
	switch {
	case t == InstanceArgument:
		return InstanceBuiltin
	case t == InstanceStackTop, t == InstanceBuiltin, t == InstanceOther, t.IsRoomInstance():
		return InstanceSelf
	case t >= 0:
		// A concrete object-id self-reference also collapses to Self(None).
		return InstanceSelf
	default:
		return t
	}
}

// VariableType is the array/stacktop/normal/instance/arraypushaf/
// arraypopaf addressing mode stored in the top bits of an occurrence word
// (spec GLOSSARY). Open Question (spec §9/§4.6): this implementation
// stores VariableType in the high 5 bits of the occurrence word and
// rejects files whose layout implies the high-8-bits convention instead
// of attempting to autodetect (see DESIGN.md).
type VariableType uint8

const (
	VarNormal VariableType = iota
	VarArray
	VarStackTop
	VarInstance
	VarArrayPushAF
	VarArrayPopAF
	VarMultiPush
	VarMultiPushPop
)

// occurrenceWordTagShift and occurrenceWordOffsetMask implement the
// high-5-bits convention of spec §4.6: the offset occupies the low 27
// bits, the tag the high 5 (bits 27-31), so the tag shift is 27, not 24:
// shifting by 24 would place the 3-bit VariableType in bits 24-26,
// overlapping the offset field instead of the reserved tag bits.
const (
	occurrenceWordOffsetMask uint32 = 0x07FFFFFF
	occurrenceWordTagShift          = 27
	occurrenceWordTagMask    uint32 = 0xF8 << 24
)

// EncodeOccurrenceWord packs a next-offset and variable type into the
// instance-descriptor trailing word, per the write protocol of spec §4.6.
func EncodeOccurrenceWord(nextOffset int32, vt VariableType) uint32 {
	return (uint32(nextOffset) & occurrenceWordOffsetMask) | ((uint32(vt) << occurrenceWordTagShift) & occurrenceWordTagMask)
}

// DecodeOccurrenceWord splits a descriptor's occurrence word into its
// 27-bit offset-to-next field and its variable-type tag.
func DecodeOccurrenceWord(word uint32) (nextOffset int32, vt VariableType) {
	nextOffset = int32(word & occurrenceWordOffsetMask)
	vt = VariableType((word & occurrenceWordTagMask) >> occurrenceWordTagShift)
	return
}
