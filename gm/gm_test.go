package gm

import (
	"testing"
)

// minimalData is the smallest Data this package's Serialize/Parse pair
// round-trips without needing any sprite/room/code content: a string
// table plus the general-info fields Serialize/decode.GEN8 always write.
func minimalData() *Data {
	return &Data{
		Strings: []string{"app", "config"},
	}
}

func TestSerializeParseRoundTripMinimal(t *testing.T) {
	data := minimalData()
	buf, err := Serialize(data)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := Parse(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(got.Strings) != len(data.Strings) {
		t.Fatalf("got %d strings, want %d", len(got.Strings), len(data.Strings))
	}
	for i, s := range data.Strings {
		if got.Strings[i] != s {
			t.Errorf("string %d = %q, want %q", i, got.Strings[i], s)
		}
	}

	// decode/gen8.go always sets Declared to 2.0.0.0, since the on-disk
	// format carries no literal version field; the structural detector
	// then runs and, finding none of its signal chunks, leaves Effective
	// equal to Declared.
	wantDeclared := Version{Major: 2}
	if got.General.Declared != wantDeclared {
		t.Errorf("Declared = %+v, want %+v", got.General.Declared, wantDeclared)
	}
	if got.General.Effective != got.General.Declared {
		t.Errorf("Effective = %+v, want equal to Declared %+v (no version-detector signal present)", got.General.Effective, got.General.Declared)
	}

	if len(got.Codes) != 0 || len(got.Variables) != 0 || len(got.Functions) != 0 {
		t.Errorf("expected no code/variable/function entries, got %d/%d/%d", len(got.Codes), len(got.Variables), len(got.Functions))
	}
	if len(got.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", got.Warnings)
	}
}

func TestParseRejectsMissingRequiredChunks(t *testing.T) {
	if _, err := Parse([]byte("FORM\x00\x00\x00\x00"), DefaultOptions()); err == nil {
		t.Fatal("Parse: want error for a FORM with no chunks, got nil")
	}
}

func TestParseRelaxedVerificationOptions(t *testing.T) {
	data := minimalData()
	buf, err := Serialize(data)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	opts := DefaultOptions()
	opts.VerifyAlignment = false
	opts.VerifyConstants = false
	got, err := Parse(buf, opts)
	if err != nil {
		t.Fatalf("Parse with relaxed verification: %v", err)
	}
	if len(got.Strings) != len(data.Strings) {
		t.Errorf("got %d strings, want %d", len(got.Strings), len(data.Strings))
	}
}

func TestSerializeParseRoundTripParallel(t *testing.T) {
	data := minimalData()
	buf, err := Serialize(data)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	opts := DefaultOptions()
	opts.ParallelProcessing = true
	got, err := Parse(buf, opts)
	if err != nil {
		t.Fatalf("Parse with ParallelProcessing: %v", err)
	}
	if len(got.Strings) != len(data.Strings) {
		t.Errorf("got %d strings, want %d", len(got.Strings), len(data.Strings))
	}
}
