package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rootcode-org/protothread/internal/config"
	"github.com/rootcode-org/protothread/internal/logging"
	"github.com/rootcode-org/protothread/internal/runner"
	"github.com/rootcode-org/protothread/internal/sim"
)

// shutdownTimeout bounds the graceful HTTP shutdown after the workload ends.
const shutdownTimeout = 5 * time.Second

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo workload until it completes or a signal arrives",
	RunE:  runDaemon,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := runner.New(&runner.Config{
		TickInterval: cfg.Runner.TickInterval,
		StopWhenIdle: cfg.Runner.StopWhenIdle,
	}, logger.Named("runner"), prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	if err := registerWorkload(r, &cfg.Sim); err != nil {
		return fmt.Errorf("failed to register workload: %w", err)
	}
	logger.Info("workload registered", zap.Int("threads", r.Len()))

	// HTTP surface: health and metrics.
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.ListenAddr))
		if err := e.Start(cfg.Server.ListenAddr); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	runnerDone := make(chan error, 1)
	go func() { runnerDone <- r.Run(ctx) }()

	select {
	case err := <-serverErr:
		stop()
		<-runnerDone
		return fmt.Errorf("http server failed: %w", err)
	case err := <-runnerDone:
		if err != nil {
			logger.Error("runner failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		<-runnerDone
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", zap.Error(err))
	}

	logger.Info("protod stopped")
	return nil
}

// registerWorkload builds the configured sim entities and adds their
// threads to the runner.
func registerWorkload(r *runner.Runner, cfg *config.SimConfig) error {
	for i := 0; i < cfg.Blinkers; i++ {
		_, thread := sim.NewBlinker(cfg.BlinkCycles)
		if _, err := r.Add(fmt.Sprintf("blinker-%d", i), thread); err != nil {
			return err
		}
	}
	for i := 0; i < cfg.Patrols; i++ {
		_, thread := sim.NewPatrol(cfg.Waypoints, cfg.DwellTime, nil)
		if _, err := r.Add(fmt.Sprintf("patrol-%d", i), thread); err != nil {
			return err
		}
	}
	_, thread := sim.NewCountdown(cfg.Waypoints, cfg.DwellTime)
	if _, err := r.Add("countdown", thread); err != nil {
		return err
	}
	return nil
}
