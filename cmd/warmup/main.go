// Command warmup pre-populates the shared cache for a set of players and
// exits. It is meant for a cron job against the redis backend; with the
// in-process backends the warmed entries die with the process.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	config "github.com/avatarctic/shotchart-service/configs"
	"github.com/avatarctic/shotchart-service/internal/bootstrap"
	"github.com/avatarctic/shotchart-service/internal/core/domain/player"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "warmup: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	players := flags.IntSlice("players", nil, "player ids to warm (default WARMUP_PLAYER_IDS)")
	seasons := flags.StringSlice("seasons", nil, "season labels to warm (default the most recent WARMUP_SEASONS)")
	if err := flags.Parse(args[1:]); errors.Is(err, pflag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}
	if err := checkSeasons(*seasons); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, logger, prometheus.NewRegistry(), nil)
	if err != nil {
		return fmt.Errorf("initialize components: %w", err)
	}
	defer app.Close()

	ids := cfg.Warmup.PlayerIDs
	if len(*players) > 0 {
		ids = *players
	}
	labels := cfg.RecentSeasons(cfg.Warmup.MaxSeasons)
	if len(*seasons) > 0 {
		labels = *seasons
	}

	report := app.Warmup.Warm(ctx, ids, labels)
	if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if len(report.Errors) > 0 {
		return fmt.Errorf("%d warmup errors in run %s", len(report.Errors), report.RunID)
	}
	return nil
}

func checkSeasons(labels []string) error {
	for _, label := range labels {
		if _, err := player.ParseSeason(label); err != nil {
			return fmt.Errorf("invalid --seasons value %q: %w", label, err)
		}
	}
	return nil
}
