package container

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a cursor over a borrowed byte buffer. It never copies buf; all
// multi-byte reads are decoded on demand with the Reader's byte order,
// mirroring the way internal/core.Process reads out of a borrowed memory
// mapping rather than owning a private copy per read.
type Reader struct {
	buf   []byte
	order binary.ByteOrder

	pos int64

	chunkTag   string
	chunkStart int64
	chunkEnd   int64 // exclusive

	dir *Directory

	// Populated by the STRG decoder: absolute offset of a string's UTF-8
	// body -> index into Data.Strings. Consulted by ReadGMString.
	stringOffsets map[int64]int
	// Populated by the TPAG decoder: absolute offset of a TexturePageItem
	// -> index into Data.TexturePageItems.
	textureOffsets map[int64]int

	// verifyAlignment/verifyConstants mirror gm.Options: when false, the
	// conditions AssertAligned/ReadBool32 would otherwise fail on are
	// downgraded to a call to warn instead (spec §6 "verify_alignment/
	// verify_constants similarly downgrade their respective conditions").
	verifyAlignment bool
	verifyConstants bool
	warn            func(string)
}

// NewReader wraps buf for little-endian reads, the default for every
// on-disk GameMaker container field (spec §6). Alignment and constant
// verification default on, matching spec §6's documented option defaults;
// gm.Parse calls SetVerification to apply the caller's Options.
func NewReader(buf []byte) *Reader {
	return &Reader{
		buf:             buf,
		order:           binary.LittleEndian,
		chunkEnd:        int64(len(buf)),
		stringOffsets:   make(map[int64]int),
		textureOffsets:  make(map[int64]int),
		verifyAlignment: true,
		verifyConstants: true,
	}
}

// SetVerification applies the caller's verify_alignment/verify_constants
// choice and installs the sink downgraded conditions are reported to.
func (r *Reader) SetVerification(alignment, constants bool, warn func(string)) {
	r.verifyAlignment = alignment
	r.verifyConstants = constants
	r.warn = warn
}

func (r *Reader) Warn(format string, args ...any) {
	if r.warn != nil {
		r.warn(fmt.Sprintf(format, args...))
	}
}

// SetBigEndian switches subsequent multi-byte decodes to big-endian, used
// once the FORM/MROF root tag has been identified.
func (r *Reader) SetBigEndian() { r.order = binary.BigEndian }

func (r *Reader) ByteOrder() binary.ByteOrder { return r.order }

// Len returns the size of the whole underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.buf)) }

// Pos returns the current absolute cursor position.
func (r *Reader) Pos() int64 { return r.pos }

// SetPos moves the cursor to an absolute position within the current
// chunk's bounds. It is the caller's job to have selected the right chunk
// first via EnterChunk.
func (r *Reader) SetPos(pos int64) { r.pos = pos }

// ChunkTag returns the tag of the chunk currently being read, or "" if no
// chunk has been entered (e.g. while reading the FORM header itself).
func (r *Reader) ChunkTag() string { return r.chunkTag }

// ChunkBounds returns the [start,end) byte range of the chunk currently
// being read.
func (r *Reader) ChunkBounds() (start, end int64) { return r.chunkStart, r.chunkEnd }

// EnterChunk points the reader at tag's payload bounds and resets the
// cursor to its start. It does not consult the directory; callers look the
// bounds up via Directory.Chunk first.
func (r *Reader) EnterChunk(tag string, start, end int64) {
	r.chunkTag = tag
	r.chunkStart = start
	r.chunkEnd = end
	r.pos = start
}

func (r *Reader) err(kind Kind, format string, args ...any) *Error {
	return newErr(kind, r.chunkTag, r.pos, format, args...)
}

// need verifies that n bytes starting at the cursor fall within the
// current chunk's bounds, per spec §4.1's out-of-bounds/underflow rule.
func (r *Reader) need(n int64) error {
	if r.pos < r.chunkStart {
		return r.err(KindOutOfRange, "cursor underflowed chunk start (pos=%d start=%d)", r.pos, r.chunkStart)
	}
	if r.pos+n > r.chunkEnd {
		return r.err(KindTruncated, "read of %d bytes at pos %d crosses chunk end %d", n, r.pos, r.chunkEnd)
	}
	if r.pos+n > int64(len(r.buf)) {
		return r.err(KindTruncated, "read of %d bytes at pos %d crosses buffer end %d", n, r.pos, len(r.buf))
	}
	return nil
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

func (r *Reader) ReadU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// ReadBool32 decodes a 32-bit boolean, rejecting any value outside {0,1}
// per spec §3 (GeneralInfo/bytecode booleans are never a free-form int),
// unless verify_constants is off, in which case the condition is
// downgraded to a warning and any nonzero value reads as true.
func (r *Reader) ReadBool32() (bool, error) {
	v, err := r.ReadU32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		if !r.verifyConstants {
			r.Warn("bool32 value %d outside {0,1} at chunk %q pos 0x%x (verify_constants disabled), treating as true", v, r.chunkTag, r.pos-4)
			return true, nil
		}
		return false, r.err(KindInvalidEnum, "bool32 value %d outside {0,1}", v)
	}
}

// ReadBytes returns a copy of the next n bytes; the returned slice does not
// alias the Reader's backing buffer so callers may retain it past the
// parse.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(int64(n)); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+int64(n)])
	r.pos += int64(n)
	return out, nil
}

// ReadTag reads a four-byte ASCII chunk tag without byte-swapping: tags are
// read as raw bytes regardless of the selected integer byte order.
func (r *Reader) ReadTag() (string, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AssertAligned fails unless the cursor sits on a multiple of n, per the
// CODE chunk's "start offset is a multiple of 4" invariant, unless
// verify_alignment is off, in which case the condition is downgraded to a
// warning.
func (r *Reader) AssertAligned(n int64) error {
	if r.pos%n != 0 {
		if !r.verifyAlignment {
			r.Warn("position %d is not %d-byte aligned at chunk %q (verify_alignment disabled)", r.pos, n, r.chunkTag)
			return nil
		}
		return r.err(KindMisalignedPointer, "position %d is not %d-byte aligned", r.pos, n)
	}
	return nil
}

// ReadPointerList reads a {count(u32); offsets[count](u32); payloads...}
// structure (spec GLOSSARY "Pointer list"). decode is invoked once per
// element with the cursor seeked to that element's absolute offset; it
// must consume exactly that element's payload. minElemSize sanity-bounds
// count against the current chunk's remaining size to reject pathological
// allocations before any offset is dereferenced.
func (r *Reader) ReadPointerList(minElemSize int64, decode func(r *Reader, index int) error) (int, error) {
	count, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	remaining := r.chunkEnd - r.pos
	if minElemSize > 0 && int64(count) > remaining/minElemSize {
		return 0, r.err(KindOutOfRange, "pointer-list count %d implausible for %d remaining bytes (min elem %d)", count, remaining, minElemSize)
	}
	offsets := make([]int64, count)
	for i := range offsets {
		off, err := r.ReadU32()
		if err != nil {
			return 0, err
		}
		offsets[i] = int64(off)
	}
	for i, off := range offsets {
		r.pos = off
		if err := decode(r, i); err != nil {
			return 0, err
		}
	}
	return int(count), nil
}

// ReadSimpleList reads a {count(u32); payloads...} structure whose elements
// are inline and contiguous (spec §4.1 "simple-list read").
func (r *Reader) ReadSimpleList(decode func(r *Reader, index int) error) (int, error) {
	count, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(count); i++ {
		if err := decode(r, i); err != nil {
			return 0, err
		}
	}
	return int(count), nil
}

// ReadGMString reads a u32 absolute offset and resolves it through the
// occurrence map populated by the STRG decoder, failing with
// unknown-string-offset on miss (spec §4.1).
func (r *Reader) ReadGMString() (int, error) {
	off, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return r.StringIndexAt(int64(off))
}

// StringIndexAt resolves an absolute string-body offset to a string index.
func (r *Reader) StringIndexAt(off int64) (int, error) {
	idx, ok := r.stringOffsets[off]
	if !ok {
		return 0, r.err(KindOutOfRange, "unknown string offset 0x%x", off)
	}
	return idx, nil
}

// RecordStringOffset is called by the STRG decoder as each string's body
// position is established.
func (r *Reader) RecordStringOffset(off int64, index int) {
	r.stringOffsets[off] = index
}

// TextureIndexAt resolves an absolute TexturePageItem offset to its index,
// populated by the TPAG decoder.
func (r *Reader) TextureIndexAt(off int64) (int, error) {
	if off == 0 {
		return -1, nil
	}
	idx, ok := r.textureOffsets[off]
	if !ok {
		return 0, r.err(KindOutOfRange, "unknown texture page item offset 0x%x", off)
	}
	return idx, nil
}

// RecordTextureOffset is called by the TPAG decoder.
func (r *Reader) RecordTextureOffset(off int64, index int) {
	r.textureOffsets[off] = index
}

// Directory returns the chunk directory built by ReadForm.
func (r *Reader) Directory() *Directory { return r.dir }

// Clone returns a new Reader over the same buffer, byte order, directory
// and string/texture occurrence maps, with a fresh cursor positioned
// nowhere (EnterChunk before first use). gm.Parse's fan-out stage (spec
// §6) hands one clone to each goroutine decoding an independent chunk: the
// maps are only ever written during the preceding serial STRG/TPAG passes,
// so sharing them read-only across goroutines needs no locking, while pos/
// chunkTag/chunkStart/chunkEnd must not be shared since each goroutine
// walks its own chunk concurrently.
func (r *Reader) Clone() *Reader {
	return &Reader{
		buf:             r.buf,
		order:           r.order,
		dir:             r.dir,
		stringOffsets:   r.stringOffsets,
		textureOffsets:  r.textureOffsets,
		chunkEnd:        int64(len(r.buf)),
		verifyAlignment: r.verifyAlignment,
		verifyConstants: r.verifyConstants,
		warn:            r.warn,
	}
}

// Snapshot captures the cursor position so a probe (spec §4.4) can restore
// it afterwards without disturbing the caller's place in the chunk.
func (r *Reader) Snapshot() int64 { return r.pos }

// Restore moves the cursor back to a prior Snapshot. It does not restore
// the entered chunk; callers that change chunks re-enter it themselves.
func (r *Reader) Restore(pos int64) { r.pos = pos }

// Bytes exposes the raw backing buffer for callers (e.g. the version
// detector's structural probes) that need to peek at bytes outside the
// typed-read vocabulary without advancing the cursor state machine.
func (r *Reader) Bytes() []byte { return r.buf }

func (r *Reader) NewError(kind Kind, format string, args ...any) *Error {
	return r.err(kind, format, args...)
}
