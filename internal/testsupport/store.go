package testsupport

import (
	"testing"

	"cutline/internal/config"
	"cutline/internal/settings"
)

// MustOpenStore opens a settings store against the test config and closes it
// when the test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *settings.Store {
	t.Helper()

	store, err := settings.Open(cfg)
	if err != nil {
		t.Fatalf("open settings store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close settings store: %v", err)
		}
	})
	return store
}
