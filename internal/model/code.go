package model

// Code is a named, self-contained bytecode blob (spec GLOSSARY "Code
// entry"). A child entry shares its parent's instruction slice starting at
// Offset rather than owning a separate copy.
type Code struct {
	Name         StringRef
	Instructions []Instruction // nil for a child entry; use ResolvedInstructions
	Length       int32         // declared bytecode length in bytes

	// Bytecode-15+ info (spec §3).
	Locals    int32
	Arguments int32
	Offset    int32 // byte offset into Parent's instruction stream; 0 for a root entry
	Parent    CodeRef
	HasParent bool
}

// ResolvedInstructions returns the instruction slice this entry should be
// read from: its own for a root entry, or the suffix of its parent's
// stream starting at Offset for a child.
func (c *Code) ResolvedInstructions(data *Data) []Instruction {
	if !c.HasParent {
		return c.Instructions
	}
	parent := &data.Codes[c.Parent]
	for i, instr := range parent.Instructions {
		if instr.Position >= int64(c.Offset) {
			return parent.Instructions[i:]
		}
	}
	return nil
}
