// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/DMWllc/netragpt/pkg/agent"
	"github.com/DMWllc/netragpt/pkg/bus"
	"github.com/DMWllc/netragpt/pkg/channels"
	"github.com/DMWllc/netragpt/pkg/config"
	"github.com/DMWllc/netragpt/pkg/engines"
	"github.com/DMWllc/netragpt/pkg/gateway"
	"github.com/DMWllc/netragpt/pkg/knowledge"
	"github.com/DMWllc/netragpt/pkg/logger"
	"github.com/DMWllc/netragpt/pkg/providers"
	"github.com/DMWllc/netragpt/pkg/session"
	"github.com/DMWllc/netragpt/pkg/sweeper"
	"github.com/DMWllc/netragpt/pkg/telemetry"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

const appName = "netragpt"

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

func printVersion() {
	fmt.Printf("%s %s\n", appName, formatVersion())
	if buildTime != "" {
		fmt.Printf("  Build: %s\n", buildTime)
	}
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	fmt.Printf("  Go: %s\n", goVer)
}

func main() {
	if err := executeCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("NETRAGPT_CONFIG")); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".netragpt", "config.json")
}

// appRuntime bundles everything a running command needs.
type appRuntime struct {
	cfg     *config.Config
	store   *session.Store
	orch    *agent.Orchestrator
	metrics *telemetry.Store
}

func buildRuntime(configPath string) (*appRuntime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store := session.NewStore(time.Duration(cfg.Session.TTLSeconds) * time.Second)

	var metrics *telemetry.Store
	if cfg.Telemetry.Enabled {
		metrics, err = telemetry.NewStore(cfg.TelemetryPath())
		if err != nil {
			// Telemetry is best-effort; a broken db must not block chat.
			logger.WarnCF("main", "Telemetry disabled", map[string]interface{}{"error": err.Error()})
			metrics = nil
		}
	}

	var provider providers.LLMProvider
	if cfg.GetAPIKey() != "" {
		provider, err = providers.NewChatCompletionsProvider(
			cfg.Provider.APIBase,
			cfg.GetAPIKey(),
			time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
		)
		if err != nil {
			return nil, fmt.Errorf("create provider: %w", err)
		}
	} else {
		logger.WarnC("main", "No provider API key configured; general questions will fall back")
		provider = unavailableProvider{}
	}

	know := knowledge.NewClient(knowledge.Options{
		MaxResults: cfg.Knowledge.MaxResults,
		Timeout:    time.Duration(cfg.Knowledge.TimeoutSeconds) * time.Second,
		CacheTTL:   time.Duration(cfg.Knowledge.CacheTTLSeconds) * time.Second,
		CacheSize:  cfg.Knowledge.CacheSize,
	})

	orch := agent.NewOrchestrator(cfg, store, engines.DefaultRegistry(), engines.NewUtilityEngine(), provider, know, metrics)

	return &appRuntime{cfg: cfg, store: store, orch: orch, metrics: metrics}, nil
}

func (rt *appRuntime) close() {
	if rt.metrics != nil {
		_ = rt.metrics.Close()
	}
	logger.Sync()
}

// unavailableProvider stands in when no API key is configured. Every call
// errors, which the orchestrator degrades to its unavailable replies.
type unavailableProvider struct{}

func (unavailableProvider) Generate(ctx context.Context, messages []providers.Message, opts providers.GenerateOptions) (string, error) {
	return "", fmt.Errorf("no LLM provider configured")
}

func serveCmd(configPath string, debug bool) error {
	logger.SetDebug(debug)

	rt, err := buildRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	msgBus := bus.NewMessageBus()
	defer msgBus.Close()

	manager, err := channels.NewManager(rt.cfg, msgBus)
	if err != nil {
		return fmt.Errorf("init channels: %w", err)
	}
	if err := manager.StartAll(ctx); err != nil {
		return fmt.Errorf("start channels: %w", err)
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		_ = manager.StopAll(stopCtx)
	}()

	loop := agent.NewLoop(msgBus, rt.orch)
	go loop.Run(ctx)

	sw := sweeper.New(rt.store, rt.metrics, rt.cfg.Session.SweepCron)
	if !sw.Valid() {
		return fmt.Errorf("invalid sweep schedule %q", rt.cfg.Session.SweepCron)
	}
	go sw.Run(ctx)

	server := gateway.NewServer(rt.cfg.ListenAddr(), rt.orch)
	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	logger.InfoCF("main", "NetraGPT running", map[string]interface{}{
		"addr":    rt.cfg.ListenAddr(),
		"version": formatVersion(),
	})

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WarnCF("main", "Shutdown was not clean", map[string]interface{}{"error": err.Error()})
	}
	logger.InfoC("main", "Goodbye")
	return nil
}

func onboardCmd(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists at %s\n", configPath)
		return nil
	}
	if err := config.SaveConfig(configPath, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	fmt.Printf("Wrote default config to %s\n", configPath)
	fmt.Println("Set provider.api_key (or NETRAGPT_PROVIDER_API_KEY) to enable general chat.")
	return nil
}
