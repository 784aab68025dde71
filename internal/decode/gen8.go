package decode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// GEN8 decodes general game info (spec §3 GeneralInfo, §4.4 "run after
// GEN8 when the declared version is exactly 2.0.0.0"). Must run before
// every version-sensitive chunk decoder.
func GEN8(r *container.Reader, data *model.Data) error {
	g := &data.General
	var err error

	if g.DisableDebug, err = r.ReadBool32(); err != nil {
		return err
	}
	bcVersion, err := r.ReadU8()
	if err != nil {
		return err
	}
	g.BytecodeVersion = bcVersion
	if _, err = r.ReadBytes(3); err != nil { // padding to the next u32
		return err
	}
	if g.FileName, err = readStringRef(r); err != nil {
		return err
	}
	if g.Configuration, err = readStringRef(r); err != nil {
		return err
	}
	last1, err := r.ReadI32()
	if err != nil {
		return err
	}
	g.LastObj = last1
	if g.LastTile, err = r.ReadI32(); err != nil {
		return err
	}
	if g.GameID, err = r.ReadI32(); err != nil {
		return err
	}
	guid, err := r.ReadBytes(16)
	if err != nil {
		return err
	}
	copy(g.GameGUID[:], guid)
	if g.DefaultWindowSize[0], err = r.ReadI32(); err != nil {
		return err
	}
	if g.DefaultWindowSize[1], err = r.ReadI32(); err != nil {
		return err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return err
	}
	g.InfoFlags = model.InfoFlags(flags)
	if g.License, err = readStringRef(r); err != nil {
		return err
	}
	if g.Timestamp, err = r.ReadI64(); err != nil {
		return err
	}
	if g.DisplayName, err = readStringRef(r); err != nil {
		return err
	}
	if g.ActiveTargets, err = r.ReadI64(); err != nil {
		return err
	}
	if g.FunctionClassifications, err = r.ReadU64(); err != nil {
		return err
	}
	if g.SteamAppID, err = r.ReadI32(); err != nil {
		return err
	}
	if g.DebuggerPort, err = r.ReadI32(); err != nil {
		return err
	}

	ideMajor, err := r.ReadU8()
	if err != nil {
		return err
	}
	ideMinor, err := r.ReadU8()
	if err != nil {
		return err
	}
	ideRelease, err := r.ReadU8()
	if err != nil {
		return err
	}
	ideBuild, err := r.ReadU8()
	if err != nil {
		return err
	}
	g.IDE = model.IDEVersion{Major: int32(ideMajor), Minor: int32(ideMinor), Release: int32(ideRelease), Build: int32(ideBuild)}

	_, err = r.ReadSimpleList(func(r *container.Reader, i int) error {
		room, err := r.ReadU32()
		if err != nil {
			return err
		}
		g.RoomOrder = append(g.RoomOrder, model.RoomRef(room))
		return nil
	})
	if err != nil {
		return err
	}
	if err := validateRoomOrder(g.RoomOrder); err != nil {
		return err
	}

	// GMS2+ UID block. Its absence is detected by remaining chunk size,
	// since older bytecode never wrote it.
	start, end := r.ChunkBounds()
	_ = start
	if end-r.Pos() >= 24 {
		g.HasGMS2UIDBlock = true
		if g.UID1, err = r.ReadI64(); err != nil {
			return err
		}
		if g.UID2, err = r.ReadI64(); err != nil {
			return err
		}
		if g.UID3, err = r.ReadI64(); err != nil {
			return err
		}
	}

	g.Declared = model.Version{Major: 2, Minor: 0, Release: 0, Build: 0}
	if g.HasGMS2UIDBlock {
		// A GMS2 UID block implies at least a 2.x release; the concrete
		// major/minor is still whatever GEN8 declares elsewhere in
		// practice. This codec tracks only what spec §3/§4.4 names.
	}
	g.Effective = g.Declared
	return nil
}

// validateRoomOrder enforces spec invariant 4: GEN8.room_order is a
// permutation of a subset of room indices, duplicates forbidden. The
// "subset of valid indices" half of the check happens once Data.Rooms is
// fully decoded (gm.Parse cross-checks after ROOM runs); here we can only
// reject duplicates.
func validateRoomOrder(order []model.RoomRef) error {
	seen := make(map[model.RoomRef]bool, len(order))
	for _, ref := range order {
		if seen[ref] {
			return &container.Error{Kind: container.KindInvariantViolation, Chunk: "GEN8",
				Message: "room_order contains duplicate index"}
		}
		seen[ref] = true
	}
	return nil
}

func readStringRef(r *container.Reader) (model.StringRef, error) {
	idx, err := r.ReadGMString()
	if err != nil {
		return model.NoString, err
	}
	return model.StringRef(idx), nil
}
