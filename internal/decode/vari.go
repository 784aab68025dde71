package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// VARI decodes the variable table and walks every entry's occurrence
// chain into idx (spec §4.6). Must run before CODE.
func VARI(r *container.Reader, data *model.Data, idx *occurrenceIndex) error {
	codeEntry, ok := r.Directory().Chunk("CODE")
	if !ok {
		return r.NewError(container.KindUnexpectedTag, "VARI present without a CODE chunk")
	}

	chunkEnd := func() int64 { _, e := r.ChunkBounds(); return e }()
	for r.Pos() < chunkEnd {
		name, err := readStringRef(r)
		if err != nil {
			return err
		}
		v := model.Variable{Name: name}

		// Modern header, when bytecode 16+: instance_type(i32) + variable_id(i32).
		// Presence is inferred by the caller via hasModernVariHeader on
		// data.General.BytecodeVersion, matching how the rest of the
		// codec keys format variants off the already-decoded GEN8.
		if hasModernVariHeader(data) {
			inst, err := r.ReadI32()
			if err != nil {
				return err
			}
			v.HasModernHeader = true
			v.InstanceType = model.InstanceType(inst)
			if v.VariableID, err = r.ReadI32(); err != nil {
				return err
			}
		}

		count, err := r.ReadI32()
		if err != nil {
			return err
		}
		firstPos, err := r.ReadI32()
		if err != nil {
			return err
		}

		ref := model.VariableRef(len(data.Variables))
		data.Variables = append(data.Variables, v)

		positions, err := walkVariableChain(r, codeEntry.Start, codeEntry.End, ref, firstPos, count, idx)
		if err != nil {
			return err.(*container.Error).WithContext("decoding variable table entry " + data.String(name))
		}
		data.Variables[ref].OccurrencePositions = positions
	}
	return nil
}

// hasModernVariHeader reports whether this bytecode version's VARI
// entries carry the instance_type/variable_id header (spec §3:
// "Variable | ... optional modern-header data"). Bytecode 16 introduced
// it; this codec treats BytecodeVersion>=16 as the cutoff, rejecting (via
// the fixed decode order above) files whose layout disagrees rather than
// guessing per spec §9's "do not attempt to autodetect" instruction.
func hasModernVariHeader(data *model.Data) bool {
	return data.General.BytecodeVersion >= 16
}
