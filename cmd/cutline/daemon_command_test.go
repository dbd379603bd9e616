package main

import (
	"context"
	"testing"
)

func TestDaemonStopCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if err := env.daemon.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	out, _, err := runCLI(t, []string{"daemon", "stop"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("daemon stop: %v", err)
	}
	requireContains(t, out, "Daemon stopping")

	if env.daemon.Running() {
		t.Fatal("expected daemon to be stopped")
	}
}
