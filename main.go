package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"arview/app"
	"arview/host"
	"arview/internal/buildinfo"
	"arview/internal/config"
	"arview/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		headless    bool
		ticks       uint64
		showVersion bool
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.AssetRef, "asset", cfg.AssetRef, "Asset to load: OBJ path, empty for the builtin cube.")
	flag.StringVar(&cfg.PlacementPolicy, "policy", cfg.PlacementPolicy, "Placement policy: position or pose.")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Debug logging.")
	flag.BoolVar(&showVersion, "version", false, "Print the build identifier and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println(buildinfo.Short())
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.Debug)
	defer func() { _ = log.Sync() }()

	h := host.New(host.Config{
		Width:          cfg.Width,
		Height:         cfg.Height,
		TPS:            cfg.TPS,
		AcquireLatency: cfg.AcquireLatency,
		LoadLatency:    cfg.LoadLatency,
		DenyHitTest:    cfg.DenyHitTest,
		Logger:         log,
	})
	a := app.New(h, cfg, log)

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		hcfg := host.HeadlessConfig{Ticks: ticks}
		if ticks > 0 {
			// Bounded smoke runs walk through a full ar cycle.
			hcfg.EnterARAt = ticks / 4
			hcfg.SelectAt = ticks / 2
			hcfg.ExitARAt = 3 * ticks / 4
		}
		if err := host.RunHeadless(ctx, h, a.Step, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := host.RunWindow(h, a.Source(), a.Step); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
