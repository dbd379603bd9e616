package main

import (
	"testing"
)

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "test-project")
	requireContains(t, out, "stopped")
	requireContains(t, out, "24.00s")
}

func TestTransportCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"play"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "Playing from")

	out, _, err = runCLI(t, []string{"pause"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	requireContains(t, out, "Paused at")

	out, _, err = runCLI(t, []string{"seek", "10"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("seek: %v", err)
	}
	requireContains(t, out, "Playhead at 10.00s")
}

func TestReorderCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"reorder", "0", "2"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	requireContains(t, out, "[2 3 1]")

	if _, _, err := runCLI(t, []string{"reorder", "0", "9"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected out-of-range reorder to fail")
	}
}
