package services_test

import (
	"errors"
	"strings"
	"testing"

	"cutline/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrExternalService, "render", "submit", "post edit", base)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatal("wrapped error should match its marker")
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped error should preserve the cause")
	}
	for _, want := range []string{"render", "submit", "post edit", "connection refused"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "settings", "save", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("nil marker should default to transient")
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("error %q missing generic detail", err.Error())
	}
}
