// Package settings persists the user-tunable configuration subset of a preview
// session: transition choices and durations, per-clip audio settings, clip
// order, track volumes, and audio trims. Only this mutable snapshot is stored;
// the derived edit document is always rebuilt from it.
//
// Snapshots are validated and clamped once at this boundary so the rest of the
// engine can trust the values it reads. Saves are debounced and fire-and-forget
// with best-effort error logging; adopting a remote snapshot arms a skip-one
// flag so the reset itself does not echo straight back to the store.
package settings
