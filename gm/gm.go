// Package gm is the public surface of this module: parsing and serializing
// GameMaker "data" container files (data.win / game.unx). It wires together
// internal/container's framing, internal/decode's and internal/encode's
// per-chunk codecs, internal/version's structural detector and
// internal/instr's instruction codec, the same way the teacher's thin
// top-level core/gocore packages wrap internal/core and internal/gocore:
// callers import gm, never internal/*.
package gm

import (
	"encoding/binary"
	"sync"

	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/decode"
	"github.com/biotomatede/libgm/internal/encode"
	"github.com/biotomatede/libgm/internal/model"
	"github.com/biotomatede/libgm/internal/version"
)

// Data is the parsed, mutable, in-memory form of a container file (spec
// §3). Every cross-asset reference on it is an index, never a pointer;
// see the ref aliases below.
type Data = model.Data

// The reference index types, re-exported so callers never need to spell
// an internal/model import to hold one of these.
type (
	StringRef          = model.StringRef
	TextureRef         = model.TextureRef
	SpriteRef          = model.SpriteRef
	ObjectRef          = model.ObjectRef
	RoomRef            = model.RoomRef
	CodeRef            = model.CodeRef
	VariableRef        = model.VariableRef
	FunctionRef        = model.FunctionRef
	BackgroundRef      = model.BackgroundRef
	PathRef            = model.PathRef
	ScriptRef          = model.ScriptRef
	SoundRef           = model.SoundRef
	FontRef            = model.FontRef
	TimelineRef        = model.TimelineRef
	ShaderRef          = model.ShaderRef
	SequenceRef        = model.SequenceRef
	AnimCurveRef       = model.AnimCurveRef
	ParticleSysRef     = model.ParticleSysRef
	ParticleEmitterRef = model.ParticleEmitterRef
)

// Version is an engine version as GEN8 declares it or as the structural
// detector infers it (GeneralInfo.Declared/Effective).
type Version = model.Version

// Error is the error type Parse returns for malformed input (spec
// §6/SPEC_FULL.md §3.2); ParseFile can also return the operating system's
// error for an unreadable file, and Serialize the instruction encoder's
// plain errors. It carries the offending chunk tag, the
// absolute file position, and a message, and composes with errors.Is/
// errors.As/%w the same way internal/container.Error already does: gm.Error
// is that type under its public name, not a reimplementation of it.
type Error = container.Error

// ErrorKind classifies an Error; see the Kind* constants below.
type ErrorKind = container.Kind

const (
	KindTruncated             = container.KindTruncated
	KindUnexpectedTag         = container.KindUnexpectedTag
	KindOutOfRange            = container.KindOutOfRange
	KindMisalignedPointer     = container.KindMisalignedPointer
	KindInvalidEnum           = container.KindInvalidEnum
	KindOccurrenceChainBroken = container.KindOccurrenceChainBroken
	KindVersionUnsupported    = container.KindVersionUnsupported
	KindDuplicateChunk        = container.KindDuplicateChunk
	KindInvariantViolation    = container.KindInvariantViolation
)

// Options configures Parse/ParseFile (spec §6's parser-option list). It is
// a plain value struct passed by value, the same shape as the teacher's
// gocore.Flags bitmask: a small set of named toggles, not a config file.
type Options struct {
	VerifyAlignment    bool
	VerifyConstants    bool
	AllowUnknownChunks bool
	ParallelProcessing bool
}

// DefaultOptions returns spec §6's documented defaults: alignment and
// constant verification on, unknown chunks and parallel decoding off.
func DefaultOptions() Options {
	return Options{VerifyAlignment: true, VerifyConstants: true}
}

// parallelChunks lists the chunk decoders with no cross-chunk dependency
// among themselves once STRG, GEN8, TPAG, VARI, FUNC and CODE have run
// serially (spec §6/spec.md's parallel-mode precondition). Order here only
// controls dispatch order, not completion order.
var parallelChunks = []struct {
	tag    string
	decode func(r *container.Reader, data *model.Data) error
}{
	{"OBJT", decode.OBJT},
	{"SPRT", decode.SPRT},
	{"ROOM", decode.ROOM},
	{"FONT", decode.FONT},
	{"OPTN", decode.OPTN},
	{"BGND", decode.BGND},
	{"PATH", decode.PATH},
	{"SCPT", decode.SCPT},
	{"SOND", decode.SOND},
	{"TMLN", decode.TMLN},
	{"ACRV", decode.ACRV},
	{"SEQN", decode.SEQN},
	{"PSYS", decode.PSYS},
	{"PSEM", decode.PSEM},
	{"SHDR", decode.SHDR},
}

// ParseFile reads path (via container.OpenFile's mmap-or-read fallback)
// and parses it.
func ParseFile(path string, opts Options) (*Data, error) {
	buf, closer, err := container.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer closer()
	return Parse(buf, opts)
}

// Parse decodes buf into a Data (spec §2's full pipeline). Required chunks
// (STRG, GEN8) missing is a fatal *Error; every other chunk is decoded only
// if present.
func Parse(buf []byte, opts Options) (data *Data, err error) {
	defer func() {
		// internal/container and friends are expected to return errors,
		// never panic, but a malformed input exercising an unanticipated
		// slice index should surface as an *Error at this boundary
		// instead of crashing the caller (spec §6, mirrors core.Process
		// catching decode panics at its own entry point).
		if p := recover(); p != nil {
			err = &Error{Kind: KindInvariantViolation, Message: "internal panic: " + panicString(p)}
		}
	}()

	r, dir, formWarnings, ferr := container.ReadForm(buf, opts.AllowUnknownChunks)
	if ferr != nil {
		return nil, ferr
	}

	data = &Data{
		Endianness:   r.ByteOrder(),
		BigEndian:    r.ByteOrder() == binary.BigEndian,
		OriginalSize: int64(len(buf)),
	}
	data.Warnings = append(data.Warnings, formWarnings...)

	var warnMu sync.Mutex
	warn := func(msg string) {
		warnMu.Lock()
		data.Warnings = append(data.Warnings, msg)
		warnMu.Unlock()
	}
	r.SetVerification(opts.VerifyAlignment, opts.VerifyConstants, warn)

	for _, tag := range container.RequiredMinimum {
		if !dir.Has(tag) {
			return nil, &Error{Kind: KindUnexpectedTag, Message: "required chunk " + tag + " is missing"}
		}
	}

	strgEntry, _ := dir.Chunk("STRG")
	r.EnterChunk("STRG", strgEntry.Start, strgEntry.End)
	if err := decode.STRG(r, data); err != nil {
		return nil, err
	}

	gen8Entry, _ := dir.Chunk("GEN8")
	r.EnterChunk("GEN8", gen8Entry.Start, gen8Entry.End)
	if err := decode.GEN8(r, data); err != nil {
		return nil, err
	}

	// spec §4.4: the structural detector only runs when GEN8 declares
	// exactly 2.0.0.0, the sentinel this format uses in place of a real
	// version field.
	if data.General.Declared == (model.Version{Major: 2}) {
		effective, verr := version.Detect(r, data)
		if verr != nil {
			return nil, verr
		}
		data.General.Effective = effective
	}

	if tpagEntry, ok := dir.Chunk("TPAG"); ok {
		r.EnterChunk("TPAG", tpagEntry.Start, tpagEntry.End)
		if err := decode.TPAG(r, data); err != nil {
			return nil, err
		}
	}

	if dir.Has("CODE") || dir.Has("VARI") || dir.Has("FUNC") {
		if err := decode.Bytecode(r, data); err != nil {
			return nil, err
		}
	}

	if opts.ParallelProcessing {
		if err := parseRemainingParallel(r, dir, data); err != nil {
			return nil, err
		}
	} else if err := parseRemainingSerial(r, dir, data); err != nil {
		return nil, err
	}

	// decode.GEN8 rejects duplicates; the index range needs Data.Rooms.
	for _, ref := range data.General.RoomOrder {
		if int(ref) < 0 || int(ref) >= len(data.Rooms) {
			return nil, &Error{Kind: KindInvariantViolation, Chunk: "GEN8",
				Message: "room_order names an index outside the ROOM table"}
		}
	}

	return data, nil
}

func parseRemainingSerial(r *container.Reader, dir *container.Directory, data *Data) error {
	for _, c := range parallelChunks {
		entry, ok := dir.Chunk(c.tag)
		if !ok {
			continue
		}
		r.EnterChunk(c.tag, entry.Start, entry.End)
		if err := c.decode(r, data); err != nil {
			return err
		}
	}
	return nil
}

// parseRemainingParallel is the spec §6/spec.md "experimental parallel
// mode" fan-out: each present chunk not already handled serially above
// decodes on its own goroutine against its own Reader.Clone (a fresh
// cursor sharing the read-only string/texture maps), writing into a
// disjoint field of data. It is a hand-rolled errgroup rather than
// golang.org/x/sync/errgroup, since nothing in the teacher or the rest of
// the pack imports that package (see DESIGN.md).
func parseRemainingParallel(r *container.Reader, dir *container.Directory, data *Data) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(parallelChunks))
	for _, c := range parallelChunks {
		entry, ok := dir.Chunk(c.tag)
		if !ok {
			continue
		}
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			clone := r.Clone()
			clone.EnterChunk(c.tag, entry.Start, entry.End)
			if err := c.decode(clone, data); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return err
	}
	return nil
}

func panicString(p any) string {
	if e, ok := p.(error); ok {
		return e.Error()
	}
	if s, ok := p.(string); ok {
		return s
	}
	return "non-error panic value"
}

// Serialize writes data back out to a container buffer (spec §4.8's
// builder protocol, the inverse of Parse). Chunk order follows
// internal/encode's documented write-order constraints: CODE before
// VARI/FUNC so occurrence positions are already-final absolute offsets
// once the variable/function tables need them (see DESIGN.md). SEQN and
// PSEM, whose mere presence raises the detected version, are written only
// when data holds sequences or particle emitters.
func Serialize(data *Data) ([]byte, error) {
	b := container.NewBuilder()
	b.WriteTag("FORM")
	b.WriteU32(0) // root length, patched once every chunk is written

	t, err := encode.STRG(b, data, false)
	if err != nil {
		return nil, err
	}
	if err := encode.GEN8(b, data, t, false); err != nil {
		return nil, err
	}
	tex, err := encode.TPAG(b, data, false)
	if err != nil {
		return nil, err
	}

	rec, err := encode.CODE(b, data, t, false)
	if err != nil {
		return nil, err
	}
	encode.FinalizeChains(b.Bytes(), rec, data)

	if err := encode.VARI(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.FUNC(b, data, t, false); err != nil {
		return nil, err
	}

	if err := encode.OBJT(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.SPRT(b, data, t, tex, false); err != nil {
		return nil, err
	}
	if err := encode.ROOM(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.FONT(b, data, t, tex, false); err != nil {
		return nil, err
	}
	if err := encode.OPTN(b, data, t, tex, false); err != nil {
		return nil, err
	}
	if err := encode.BGND(b, data, t, tex, false); err != nil {
		return nil, err
	}
	if err := encode.PATH(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.SCPT(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.SOND(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.TMLN(b, data, t, false); err != nil {
		return nil, err
	}
	if err := encode.ACRV(b, data, t, false); err != nil {
		return nil, err
	}
	if len(data.Sequences) > 0 {
		if err := encode.SEQN(b, data, t, false); err != nil {
			return nil, err
		}
	}
	if err := encode.PSYS(b, data, t, false); err != nil {
		return nil, err
	}
	if len(data.ParticleEmitters) > 0 {
		if err := encode.PSEM(b, data, t, false); err != nil {
			return nil, err
		}
	}
	if err := encode.SHDR(b, data, t, true); err != nil {
		return nil, err
	}

	if err := b.Finalize(); err != nil {
		return nil, err
	}
	out := b.Bytes()
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out, nil
}
