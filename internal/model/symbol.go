package model

// Variable is a VARI table entry (spec §3). OccurrencePositions is derived,
// never authoritative: it is rebuilt from Data.Codes' instructions on
// write and must equal the set of positions the occurrence chain names
// when read (spec invariant 3).
type Variable struct {
	Name StringRef

	// HasModernHeader is false for bytecode before the instance_type/
	// variable_id header was added to VARI entries.
	HasModernHeader bool
	InstanceType    InstanceType // canonical (table-form) instance type
	VariableID      int32

	// OccurrencePositions are absolute byte offsets (within CODE) of this
	// variable's descriptor occurrence word, in chain order. Element 0 is
	// the table's first_occurrence_position plus 4 (that field names the
	// instruction start, 4 bytes before the word); len(...) is
	// occurrence_count.
	OccurrencePositions []int64
}

// Function is a FUNC table entry; same shape as Variable (spec §3).
type Function struct {
	Name StringRef

	OccurrencePositions []int64
}
