package container

import (
	"encoding/binary"
	"math"
)

// placeholderValue is written at every unresolved pointer slot; it is
// deliberately recognizable in a hex dump (spec §4.8).
const placeholderValue uint32 = 0xDEADC0DE

// PointerKind is a symbolic forward-reference key: "the Nth payload of
// kind K" (optionally sub-indexed, e.g. one of a sprite's texture items).
// Using a struct key rather than a raw file offset means uniqueness of
// each placeholder is structural, not a bookkeeping convention the caller
// has to get right (spec §9 design note).
type PointerKind struct {
	Target string
	Index  int
	Sub    int
}

// Builder is a grow-only byte buffer with the placeholder/resolution
// protocol used to emit forward references before their target payloads
// exist (spec §4.8). It is the write-side twin of Reader.
type Builder struct {
	buf   []byte
	order binary.ByteOrder

	placeholderPos map[int64]PointerKind
	resolved       map[PointerKind]uint32

	chunkHeaderPos int64 // position of the active chunk's length field
	chunkBodyStart int64
	chunkTag       string
}

// NewBuilder creates an empty builder writing little-endian, the on-disk
// default (spec §6).
func NewBuilder() *Builder {
	return &Builder{
		order:          binary.LittleEndian,
		placeholderPos: make(map[int64]PointerKind),
		resolved:       make(map[PointerKind]uint32),
	}
}

func (b *Builder) Pos() int64 { return int64(len(b.buf)) }

func (b *Builder) grow(n int) {
	b.buf = append(b.buf, make([]byte, n)...)
}

func (b *Builder) WriteU8(v uint8) { b.buf = append(b.buf, v) }
func (b *Builder) WriteI8(v int8)  { b.WriteU8(uint8(v)) }

func (b *Builder) WriteU16(v uint16) {
	pos := len(b.buf)
	b.grow(2)
	b.order.PutUint16(b.buf[pos:], v)
}
func (b *Builder) WriteI16(v int16) { b.WriteU16(uint16(v)) }

func (b *Builder) WriteU32(v uint32) {
	pos := len(b.buf)
	b.grow(4)
	b.order.PutUint32(b.buf[pos:], v)
}
func (b *Builder) WriteI32(v int32) { b.WriteU32(uint32(v)) }

func (b *Builder) WriteU64(v uint64) {
	pos := len(b.buf)
	b.grow(8)
	b.order.PutUint64(b.buf[pos:], v)
}
func (b *Builder) WriteI64(v int64) { b.WriteU64(uint64(v)) }

func (b *Builder) WriteF32(v float32) { b.WriteU32(math.Float32bits(v)) }
func (b *Builder) WriteF64(v float64) { b.WriteU64(math.Float64bits(v)) }

func (b *Builder) WriteBool32(v bool) {
	if v {
		b.WriteU32(1)
	} else {
		b.WriteU32(0)
	}
}

func (b *Builder) WriteBytes(p []byte) { b.buf = append(b.buf, p...) }

// WriteTag writes a four-byte ASCII tag, unaffected by integer byte order.
func (b *Builder) WriteTag(tag string) {
	if len(tag) != 4 {
		panic("container: chunk tag must be 4 bytes, got " + tag)
	}
	b.buf = append(b.buf, tag...)
}

// WritePlaceholder reserves four bytes at the current position, fillable
// later by ResolvePointer(target). It returns the position written, should
// a caller need to overwrite it directly (finalize does this already).
func (b *Builder) WritePlaceholder(target PointerKind) int64 {
	pos := int64(len(b.buf))
	b.placeholderPos[pos] = target
	b.WriteU32(placeholderValue)
	return pos
}

// ResolvePointer records the builder's current position as target's
// resolved absolute value. It must be called exactly once per target,
// immediately before emitting target's payload.
func (b *Builder) ResolvePointer(target PointerKind) {
	b.resolved[target] = uint32(len(b.buf))
}

// ResolvePointerTo records an explicit absolute value for target, used
// when the payload was written out of line (e.g. a shared string already
// emitted earlier during deduplication).
func (b *Builder) ResolvePointerTo(target PointerKind, value uint32) {
	b.resolved[target] = value
}

// Finalize overwrites every outstanding placeholder with its resolved
// value. It is an invariant violation for a placeholder to remain
// unresolved.
func (b *Builder) Finalize() error {
	for pos, target := range b.placeholderPos {
		v, ok := b.resolved[target]
		if !ok {
			return &Error{Kind: KindInvariantViolation, Pos: pos,
				Message: "unresolved pointer placeholder for " + target.Target}
		}
		b.order.PutUint32(b.buf[pos:pos+4], v)
	}
	return nil
}

// Bytes returns the accumulated buffer. Call after Finalize.
func (b *Builder) Bytes() []byte { return b.buf }

// StartChunk writes a tag and a placeholder length field, remembering
// where the body begins so FinishChunk can patch the length.
func (b *Builder) StartChunk(tag string) {
	b.WriteTag(tag)
	b.chunkHeaderPos = int64(len(b.buf))
	b.WriteU32(0) // patched by FinishChunk
	b.chunkBodyStart = int64(len(b.buf))
	b.chunkTag = tag
}

// FinishChunk patches the chunk's length field and, unless last is true
// (this is the final chunk in the FORM), pads the body to a 16-byte
// boundary with zero bytes (spec §4.2/§4.8). The padding is not counted in
// the patched length; ReadForm steps over it.
func (b *Builder) FinishChunk(last bool) {
	length := uint32(int64(len(b.buf)) - b.chunkBodyStart)
	b.order.PutUint32(b.buf[b.chunkHeaderPos:b.chunkHeaderPos+4], length)
	if !last {
		for len(b.buf)%16 != 0 {
			b.buf = append(b.buf, 0)
		}
	}
}

// WritePointerList emits count + a placeholder offset array + payloads, in
// the spec GLOSSARY "Pointer list" shape, resolving each placeholder
// immediately before its payload is written.
func WritePointerList[T any](b *Builder, target string, items []T, writePayload func(b *Builder, i int, item T) error) error {
	b.WriteU32(uint32(len(items)))
	for i := range items {
		b.WritePlaceholder(PointerKind{Target: target, Index: i})
	}
	for i, item := range items {
		b.ResolvePointer(PointerKind{Target: target, Index: i})
		if err := writePayload(b, i, item); err != nil {
			return err
		}
	}
	return nil
}

// WriteSimpleList emits count + inline contiguous payloads.
func WriteSimpleList[T any](b *Builder, items []T, writePayload func(b *Builder, i int, item T) error) error {
	b.WriteU32(uint32(len(items)))
	for i, item := range items {
		if err := writePayload(b, i, item); err != nil {
			return err
		}
	}
	return nil
}
