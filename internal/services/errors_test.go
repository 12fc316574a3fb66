package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "plan", "gaps", "gap 2 overlaps gap 1", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "plan: gaps: gap 2 overlaps gap 1") {
		t.Fatalf("expected stage detail in message, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "seg3", "ffmpeg", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	if !strings.Contains(err.Error(), "seg3") {
		t.Fatalf("expected stage label in message, got %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(Wrap(ErrConfiguration, "config", "", "temp dir unset", nil)) {
		t.Fatal("configuration errors should classify as validation")
	}
	if IsValidation(Wrap(ErrExternalTool, "concat", "", "", errors.New("boom"))) {
		t.Fatal("external tool errors should not classify as validation")
	}
}
