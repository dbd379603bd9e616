package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"cutline/internal/daemon"
	"cutline/internal/ipc"
	"cutline/internal/logging"
	"cutline/internal/project"
	"cutline/internal/settings"
)

func runDaemonProcess(cmdCtx context.Context, ctx *commandContext, projectPath string) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "cutline.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	proj, err := project.Load(projectPath)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	store, err := settings.Open(cfg)
	if err != nil {
		logger.Error("open settings store", logging.Error(err))
		return err
	}
	defer store.Close()

	d, err := daemon.New(cfg, proj, store, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, ctx.socketPath(), d, cancel, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
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

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	logger.Info("cutline daemon running",
		logging.String("project", proj.ID),
		logging.String("socket", ctx.socketPath()),
		logging.String("api", apiServer.Addr()),
	)

	<-signalCtx.Done()
	logger.Info("cutline daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}
