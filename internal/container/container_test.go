package container

import (
	"testing"
)

func TestBuilderReaderPointerListRoundTrip(t *testing.T) {
	b := NewBuilder()
	items := []string{"alpha", "bb", "c"}
	err := WritePointerList(b, "item", items, func(b *Builder, i int, s string) error {
		b.WriteU32(uint32(len(s)))
		b.WriteBytes([]byte(s))
		return nil
	})
	if err != nil {
		t.Fatalf("WritePointerList: %v", err)
	}
	if err := b.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	r := NewReader(b.Bytes())
	r.EnterChunk("TEST", 0, r.Len())
	var got []string
	n, err := r.ReadPointerList(4, func(r *Reader, i int) error {
		length, err := r.ReadU32()
		if err != nil {
			return err
		}
		body, err := r.ReadBytes(int(length))
		if err != nil {
			return err
		}
		got = append(got, string(body))
		return nil
	})
	if err != nil {
		t.Fatalf("ReadPointerList: %v", err)
	}
	if n != len(items) {
		t.Fatalf("count = %d, want %d", n, len(items))
	}
	for i, want := range items {
		if got[i] != want {
			t.Errorf("item %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestBuilderUnresolvedPlaceholderFails(t *testing.T) {
	b := NewBuilder()
	b.WritePlaceholder(PointerKind{Target: "never"})
	if err := b.Finalize(); err == nil {
		t.Fatal("Finalize: want error for unresolved placeholder, got nil")
	} else if cerr, ok := err.(*Error); !ok || cerr.Kind != KindInvariantViolation {
		t.Errorf("Finalize error = %v, want KindInvariantViolation", err)
	}
}

func TestReadFormRejectsUnknownChunkByDefault(t *testing.T) {
	b := NewBuilder()
	b.WriteTag("FORM")
	lenPos := b.Pos()
	b.WriteU32(0)
	bodyStart := b.Pos()
	b.WriteTag("ZZZZ")
	b.WriteU32(0)
	total := b.Bytes()
	binaryPutLen(total, lenPos, b.Pos()-bodyStart)

	if _, _, _, err := ReadForm(total, false); err == nil {
		t.Fatal("ReadForm: want error for unknown chunk tag, got nil")
	}
	if _, _, warnings, err := ReadForm(total, true); err != nil {
		t.Fatalf("ReadForm with allowUnknown: %v", err)
	} else if len(warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", warnings)
	}
}

func TestReadFormBigEndianRoot(t *testing.T) {
	b := NewBuilder()
	b.WriteTag("MROF")
	lenPos := b.Pos()
	b.WriteU32(0)
	bodyStart := b.Pos()
	b.WriteTag("GEN8")
	b.WriteU32(0)
	total := b.Bytes()
	// An MROF root length is big-endian.
	n := uint32(b.Pos() - bodyStart)
	total[lenPos], total[lenPos+1], total[lenPos+2], total[lenPos+3] = byte(n>>24), byte(n>>16), byte(n>>8), byte(n)

	_, dir, warnings, err := ReadForm(total, false)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one big-endian warning", warnings)
	}
	if !dir.Has("GEN8") {
		t.Error("directory missing GEN8")
	}
}

func TestAssertAlignedDowngrade(t *testing.T) {
	r := NewReader(make([]byte, 16))
	r.EnterChunk("CODE", 0, 16)
	r.SetPos(3)
	if err := r.AssertAligned(4); err == nil {
		t.Fatal("AssertAligned: want fatal error by default, got nil")
	}

	var warned string
	r.SetVerification(false, true, func(msg string) { warned = msg })
	if err := r.AssertAligned(4); err != nil {
		t.Fatalf("AssertAligned with verification off: %v", err)
	}
	if warned == "" {
		t.Error("AssertAligned with verification off: expected a warning, got none")
	}
}

func TestReadBool32Downgrade(t *testing.T) {
	b := NewBuilder()
	b.WriteU32(7)
	r := NewReader(b.Bytes())
	r.EnterChunk("GEN8", 0, r.Len())

	if _, err := r.ReadBool32(); err == nil {
		t.Fatal("ReadBool32: want fatal error by default, got nil")
	}

	r2 := NewReader(b.Bytes())
	r2.EnterChunk("GEN8", 0, r2.Len())
	var warned string
	r2.SetVerification(true, false, func(msg string) { warned = msg })
	v, err := r2.ReadBool32()
	if err != nil {
		t.Fatalf("ReadBool32 with verification off: %v", err)
	}
	if !v {
		t.Error("ReadBool32 with verification off: want true for out-of-range nonzero value")
	}
	if warned == "" {
		t.Error("ReadBool32 with verification off: expected a warning, got none")
	}
}

// binaryPutLen patches a little-endian u32 length field at pos within buf.
func binaryPutLen(buf []byte, pos, length int64) {
	v := uint32(length)
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
}
