package version

import (
	"testing"

	"github.com/biotomatede/libgm/internal/container"
	"github.com/biotomatede/libgm/internal/model"
)

// buildForm assembles a minimal FORM container with empty payloads for the
// given chunk tags, enough to drive the probes' directory-presence checks.
func buildForm(t *testing.T, tags ...string) *container.Reader {
	t.Helper()
	b := container.NewBuilder()
	b.WriteTag("FORM")
	lenPos := b.Pos()
	b.WriteU32(0)
	bodyStart := b.Pos()
	for _, tag := range tags {
		b.WriteTag(tag)
		b.WriteU32(0)
	}
	buf := b.Bytes()
	length := uint32(b.Pos() - bodyStart)
	v := length
	buf[lenPos] = byte(v)
	buf[lenPos+1] = byte(v >> 8)
	buf[lenPos+2] = byte(v >> 16)
	buf[lenPos+3] = byte(v >> 24)

	r, _, _, err := container.ReadForm(buf, true)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	return r
}

func TestDetectUILRPresence(t *testing.T) {
	r := buildForm(t, "GEN8", "STRG", "UILR")
	data := &model.Data{General: model.GeneralInfo{Declared: model.Version{Major: 2}}}

	v, err := Detect(r, data)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	want := model.Version{Major: 2024, Minor: 13, Branch: "PostLTS"}
	if v != want {
		t.Errorf("Detect = %+v, want %+v", v, want)
	}
}

func TestDetectNoMatchReturnsDeclared(t *testing.T) {
	r := buildForm(t, "GEN8", "STRG")
	declared := model.Version{Major: 2}
	data := &model.Data{General: model.GeneralInfo{Declared: declared}}

	v, err := Detect(r, data)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if v != declared {
		t.Errorf("Detect = %+v, want declared %+v unchanged", v, declared)
	}
}

func TestDetectRestoresCursor(t *testing.T) {
	r := buildForm(t, "GEN8", "STRG", "UILR")
	entry, ok := r.Directory().Chunk("GEN8")
	if !ok {
		t.Fatal("GEN8 missing from directory")
	}
	r.EnterChunk("GEN8", entry.Start, entry.End)
	before := r.Pos()

	data := &model.Data{General: model.GeneralInfo{Declared: model.Version{Major: 2}}}
	if _, err := Detect(r, data); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if r.Pos() != before || r.ChunkTag() != "GEN8" {
		t.Errorf("Detect left cursor at (%s,%d), want (GEN8,%d) restored", r.ChunkTag(), r.Pos(), before)
	}
}
