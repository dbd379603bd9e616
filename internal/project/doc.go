// Package project models the inputs the surrounding application hands to the
// preview engine: the generated scene clips plus the narration and music
// assets. The engine treats a loaded project as read-only; all user-tunable
// state lives in the settings snapshot instead.
package project
