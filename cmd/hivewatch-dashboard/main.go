package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hivewatch/internal/config"
	"hivewatch/internal/dashboard"
	"hivewatch/internal/domain"
	"hivewatch/internal/evaluator"
	"hivewatch/internal/logger"
)

const historyRefreshInterval = time.Minute

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "hivewatch-dashboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	view, err := dashboard.ParseView(cfg.Dashboard.View)
	if err != nil {
		log.Fatal("Invalid DASH_VIEW", zap.Error(err))
	}

	client := dashboard.NewClient(cfg.Dashboard.APIBase, log)
	presenter := dashboard.NewPresenter(&textSurface{}, log)
	session := dashboard.NewSession(client, presenter, view, log)

	if err := session.Init(time.Now()); err != nil {
		// Placeholder is already on screen; polling may still recover.
		log.Warn("Initial history load failed", zap.Error(err))
	}

	thresholds := domain.DefaultThresholds()
	if m, err := client.Thresholds(); err != nil {
		log.Warn("Thresholds unavailable, using defaults", zap.Error(err))
	} else {
		thresholds = thresholds.ApplyOverrides(m)
	}

	poller := dashboard.NewPoller(client, thresholds, cfg.Dashboard.PollInterval, printStatus, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	// The charts track the active window on a slower cadence than the
	// live status; the filter itself never changes here.
	go func() {
		ticker := time.NewTicker(historyRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := session.Refresh(); err != nil {
					log.Warn("History refresh failed", zap.Error(err))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal, exiting", zap.String("signal", sig.String()))
	cancel()
}

func printStatus(rd *domain.Reading, state evaluator.AlertState) {
	fmt.Printf("[%s] %s %s\n",
		time.Now().Format("15:04:05"),
		strings.ToUpper(state.Severity.String()),
		state.Summary,
	)
	for _, a := range state.Alerts {
		fmt.Printf("  - %s: %s\n", a.Severity, a.Message)
	}
	if rd != nil {
		fmt.Printf("  latest: weight=%.1fg temp=%.1f°C", rd.Weight, rd.Temperature)
		if rd.Humidity != nil {
			fmt.Printf(" hum=%.1f%%", *rd.Humidity)
		}
		if rd.Audio != nil {
			fmt.Printf(" audio=%d", *rd.Audio)
		}
		fmt.Println()
	}
}

// textSurface renders charts as plain text blocks on stdout.
type textSurface struct{}

type textChart struct{}

func (textChart) Close() {}

func (s *textSurface) NewChart(spec dashboard.ChartSpec) dashboard.Chart {
	fmt.Printf("\n== %s ==\n", spec.Title)
	for i, label := range spec.Labels {
		if spec.Points[i] == nil {
			fmt.Printf("%s  -\n", label)
			continue
		}
		fmt.Printf("%s  %.2f\n", label, *spec.Points[i])
	}
	return textChart{}
}

func (s *textSurface) ShowPlaceholder(msg string) {
	fmt.Printf("\n%s\n", msg)
}
