// Package main is the entry point for the dirview server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CageChen/dirview/internal/config"
	"github.com/CageChen/dirview/internal/handler"
	"github.com/CageChen/dirview/internal/logging"
	"github.com/CageChen/dirview/internal/metrics"
	"github.com/CageChen/dirview/internal/resolver"
	"github.com/CageChen/dirview/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logging.Sync() }()

	if err := run(cfg); err != nil {
		logging.L().Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	log := logging.L()

	res := resolver.New(cfg.Root, resolver.WithConfinement(cfg.ConfineToRoot))
	m := metrics.New()

	log.Info("dirview starting",
		zap.String("root", cfg.Root),
		zap.String("config_file", cfg.GetConfigFilePath()),
		zap.Int("port", cfg.Port),
		zap.Int("admin_port", cfg.AdminPort),
		zap.Bool("confine_to_root", cfg.ConfineToRoot),
	)
	if !res.RootValid() {
		// Requests report the misconfiguration; the server still starts.
		log.Warn("root is not a directory", zap.String("root", cfg.Root))
	}

	gin.SetMode(gin.ReleaseMode)
	browse := handler.NewBrowseHandler(res, m, cfg.IsMarkdownFile)
	servers := []*http.Server{{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.NewRouter(browse, m),
		ReadHeaderTimeout: 10 * time.Second,
	}}

	if cfg.AdminPort != 0 {
		var events *handler.EventsHandler
		if cfg.Watch {
			events = handler.NewEventsHandler(m)
			w, err := watcher.New(cfg.Root, cfg.IsExcluded)
			if err != nil {
				log.Warn("failed to create file watcher", zap.Error(err))
			} else {
				w.OnChange(events.OnFileChange)
				if err := w.Start(); err != nil {
					log.Warn("failed to start file watcher", zap.Error(err))
				} else {
					log.Info("file watcher enabled")
				}
				defer func() { _ = w.Stop() }()
			}
		}
		servers = append(servers, &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.AdminPort),
			Handler:           handler.NewAdminRouter(handler.NewAdminHandler(res, m), events),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	if cfg.Watch && cfg.AdminPort == 0 {
		log.Warn("watch is enabled but the admin server is disabled; no change events will be served")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			log.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}
	return runErr
}
