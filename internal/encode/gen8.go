package encode

import (
	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// GEN8 writes general game info in the exact field order internal/decode's
// GEN8 reads it (spec §3 GeneralInfo).
func GEN8(b *container.Builder, data *model.Data, t *StringTable, last bool) error {
	b.StartChunk("GEN8")
	g := &data.General

	b.WriteBool32(g.DisableDebug)
	b.WriteU8(g.BytecodeVersion)
	b.WriteBytes([]byte{0, 0, 0})
	writeStringRef(b, t, g.FileName)
	writeStringRef(b, t, g.Configuration)
	b.WriteI32(g.LastObj)
	b.WriteI32(g.LastTile)
	b.WriteI32(g.GameID)
	b.WriteBytes(g.GameGUID[:])
	b.WriteI32(g.DefaultWindowSize[0])
	b.WriteI32(g.DefaultWindowSize[1])
	b.WriteU32(uint32(g.InfoFlags))
	writeStringRef(b, t, g.License)
	b.WriteI64(g.Timestamp)
	writeStringRef(b, t, g.DisplayName)
	b.WriteI64(g.ActiveTargets)
	b.WriteU64(g.FunctionClassifications)
	b.WriteI32(g.SteamAppID)
	b.WriteI32(g.DebuggerPort)
	b.WriteU8(uint8(g.IDE.Major))
	b.WriteU8(uint8(g.IDE.Minor))
	b.WriteU8(uint8(g.IDE.Release))
	b.WriteU8(uint8(g.IDE.Build))

	if err := container.WriteSimpleList(b, g.RoomOrder, func(b *container.Builder, i int, r model.RoomRef) error {
		b.WriteU32(uint32(r))
		return nil
	}); err != nil {
		return err
	}

	if g.HasGMS2UIDBlock {
		b.WriteI64(g.UID1)
		b.WriteI64(g.UID2)
		b.WriteI64(g.UID3)
	}

	b.FinishChunk(last)
	return nil
}
