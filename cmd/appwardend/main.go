package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/SoarinFerret/AppWarden/internal/backend"
	"github.com/SoarinFerret/AppWarden/internal/config"
	"github.com/SoarinFerret/AppWarden/internal/engine"
	"github.com/SoarinFerret/AppWarden/internal/ipc"
	"github.com/SoarinFerret/AppWarden/internal/logger"
	"github.com/SoarinFerret/AppWarden/internal/store"
)

func main() {
	argPath := "/etc/appwarden/config.toml"
	if len(os.Args) > 1 {
		argPath = os.Args[1]
	}
	cfg, err := config.Load(argPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("starting appwardend", zap.String("config", argPath))

	repo, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open state store", zap.Error(err))
	}
	defer repo.Close()

	monitor := backend.NewTimerMonitor(log)
	shield := backend.NewProcessShielder(repo.Apps, log)
	svc := engine.New(repo, monitor, shield, cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := monitor.Run(ctx); err != nil {
			log.Error("monitor error", zap.Error(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("opening system D-Bus service")
		if err := serveAppWarden(ctx, svc, repo); err != nil {
			log.Error("appwarden service error", zap.Error(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := svc.Run(ctx, monitor.Events()); err != nil {
			log.Error("engine error", zap.Error(err))
		}
	}()

	wg.Wait()
	fmt.Println("Shutdown complete")
}

func openStore(cfg *config.Config, log *zap.Logger) (*store.Store, error) {
	switch cfg.StateBackend {
	case "sqlite":
		return store.OpenSQLite(cfg.StatePath, log)
	case "file":
		return store.OpenFile(cfg.StatePath, log)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}

func serveAppWarden(ctx context.Context, svc *engine.Service, repo *store.Store) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}
	defer conn.Close()

	reply, err := conn.RequestName(ipc.ServiceName, dbus.NameFlagDoNotQueue)
	if err != nil || reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("failed to request name: %w", err)
	}

	mgr := &ipc.Manager{Service: svc, Repo: repo}
	if err := conn.Export(mgr, dbus.ObjectPath(ipc.ObjectPath), ipc.InterfaceName); err != nil {
		return fmt.Errorf("failed to export interface: %w", err)
	}

	<-ctx.Done()
	return nil
}
