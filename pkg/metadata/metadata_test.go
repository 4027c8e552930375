package metadata

import (
	"errors"
	"strings"
	"testing"
)

func TestSignAndVerify(t *testing.T) {
	content := "# Quality Report\n\n| Bank | Reviews |\n| --- | --- |\n| CBE | 450 |"

	signed := Sign(content, true)

	if !strings.Contains(signed, TagStart) || !strings.Contains(signed, TagEnd) {
		t.Fatal("Signed content missing provenance block")
	}

	if !strings.Contains(signed, "REQUIREMENTS_MET: TRUE") {
		t.Error("Expected acceptance verdict in block")
	}

	ok, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !ok {
		t.Error("Expected verification to pass")
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	signed := Sign("original report body", false)

	tampered := strings.Replace(signed, "original", "edited", 1)

	_, err := Verify(tampered)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Expected ErrHashMismatch, got %v", err)
	}
}

func TestVerify_NoBlock(t *testing.T) {
	_, err := Verify("plain content without a stamp")
	if !errors.Is(err, ErrNoStampBlock) {
		t.Errorf("Expected ErrNoStampBlock, got %v", err)
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	signed := Sign("report body", false)
	resigned := Sign(signed, true)

	if strings.Count(resigned, TagStart) != 1 {
		t.Error("Expected exactly one provenance block after re-signing")
	}

	stamp, _ := Extract(resigned)
	if stamp == nil || !stamp.RequirementsMet {
		t.Errorf("Expected updated verdict, got %+v", stamp)
	}
}

func TestExtract_ParsesFields(t *testing.T) {
	signed := Sign("body", true)

	stamp, clean := Extract(signed)
	if stamp == nil {
		t.Fatal("Expected a stamp")
	}

	if clean != "body" {
		t.Errorf("Expected clean content %q, got %q", "body", clean)
	}

	if stamp.Hash == "" || stamp.GeneratedAt.IsZero() || !stamp.RequirementsMet {
		t.Errorf("Stamp fields not parsed: %+v", stamp)
	}
}
