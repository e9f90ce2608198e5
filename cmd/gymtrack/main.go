package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/gymtrack/internal/config"
	"github.com/claude/gymtrack/internal/history"
	gymmcp "github.com/claude/gymtrack/internal/mcp"
	"github.com/claude/gymtrack/internal/server"
	"github.com/claude/gymtrack/internal/storage"
	"github.com/claude/gymtrack/internal/tracker"
	mcpserver "github.com/mark3labs/mcp-go/server"
	flag "github.com/spf13/pflag"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.StringP("config", "c", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run account migrations and exit")
	mcpStdio := flag.Bool("mcp-stdio", false, "serve MCP over stdin/stdout instead of HTTP")
	mcpRemote := flag.String("mcp-remote", "", "serve MCP over stdio, proxying to the GymTrack API at this URL")
	apiKey := flag.String("api-key", os.Getenv("GYMTRACK_AUTH_API_KEY"), "API key for --mcp-remote")
	flag.Parse()

	// In stdio mode stdout carries the protocol, so logs go to stderr.
	logOut := os.Stdout
	if *mcpStdio || *mcpRemote != "" {
		logOut = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("GymTrack starting", "version", Version)

	if *mcpRemote != "" {
		ds := gymmcp.NewHTTPClient(*mcpRemote, *apiKey)
		log.Info("mcp stdio (remote)", "url", *mcpRemote)
		if err := mcpserver.ServeStdio(gymmcp.New(ds, Version, log)); err != nil {
			log.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Accounts database (optional)
	var accounts server.AccountStore
	if cfg.Database.Enabled() {
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, storage.DefaultMigrationsPath); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		if *migrateOnly {
			log.Info("migrate-only: exiting")
			return
		}

		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		accounts = db
		log.Info("database connected")
	} else if *migrateOnly {
		log.Error("migrate-only: no database configured")
		os.Exit(1)
	}

	// Workout history
	backend, err := history.OpenBackend(cfg.History.Backend, cfg.History.Path, cfg.History.Format)
	if err != nil {
		log.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	store := history.NewStore(backend, log)
	defer store.Close()

	tr := tracker.New(store, log)
	if err := tr.Restore(ctx); err == nil {
		log.Info("history restored", "path", cfg.History.Path, "workouts", len(tr.History()))
	}

	if *mcpStdio {
		log.Info("mcp stdio (local)")
		if err := mcpserver.ServeStdio(gymmcp.New(gymmcp.Local{Tracker: tr}, Version, log)); err != nil {
			log.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create server
	srv := server.New(tr, accounts, cfg.Auth.APIKey, log)
	mcpSrv := gymmcp.New(gymmcp.Local{Tracker: tr}, Version, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "accounts", accounts != nil)
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
