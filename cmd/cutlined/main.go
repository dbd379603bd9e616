// Command cutlined runs the cutline daemon in the foreground: it hosts a
// headless playback session for one project and serves the IPC socket and
// HTTP API until interrupted.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"cutline/internal/config"
	"cutline/internal/daemon"
	"cutline/internal/ipc"
	"cutline/internal/logging"
	"cutline/internal/project"
	"cutline/internal/settings"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	projectPath := flag.String("project", "", "project file to host")
	flag.Parse()

	if *projectPath == "" {
		log.Fatal("cutlined: -project is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	proj, err := project.Load(*projectPath)
	if err != nil {
		log.Fatalf("load project: %v", err)
	}

	store, err := settings.Open(cfg)
	if err != nil {
		log.Fatalf("open settings store: %v", err)
	}
	defer store.Close()

	d, err := daemon.New(cfg, proj, store, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, cancel, logger)
	if err != nil {
		log.Fatalf("start IPC server: %v", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	apiServer := daemon.NewAPIServer(d, logger)
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("api server", logging.Error(err))
			cancel()
		}
	}()
	defer apiServer.Shutdown(context.Background()) //nolint:errcheck

	if err := d.Start(ctx); err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	logger.Info("cutlined running",
		logging.String("project", proj.ID),
		logging.String("socket", cfg.SocketPath()),
		logging.String("api", apiServer.Addr()),
	)

	<-ctx.Done()
	logger.Info("cutlined shutting down")
}
