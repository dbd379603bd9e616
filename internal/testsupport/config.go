// Package testsupport provides shared fixtures for cutline tests: isolated
// configs, project documents, a settings store helper, and a scripted media
// element. It must only be imported from _test files.
package testsupport

import (
	"path/filepath"
	"testing"

	"cutline/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	return &cfg
}
