package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-rotation/internal/catalog"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/gamestate"
	"github.com/KirkDiggler/rpg-rotation/internal/clients/injector"
	"github.com/KirkDiggler/rpg-rotation/internal/config"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/rotation"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rotation/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rotation/internal/redis"
	"github.com/KirkDiggler/rpg-rotation/internal/repositories/journal"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rotation for every configured character",
	Long: `Run one rotation flow per configured character until interrupted.

Signals:
  SIGINT, SIGTERM  stop every flow
  SIGHUP           reload timing and thresholds from the config file
  SIGUSR1          pause or resume every flow`,
	RunE: runRotation,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log commands instead of queueing them")
}

func runRotation(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	level := new(slog.LevelVar)
	level.Set(cfg.Level())
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ConnMaxIdleTime: cfg.Redis.ConnMaxIdleTime,
		MaxRetries:      cfg.Redis.MaxRetries,
		DB:              cfg.Redis.DB,
		UseTLS:          cfg.Redis.UseTLS,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	clk := clock.New()

	provider, err := gamestate.NewRedisProvider(&gamestate.Config{Client: client})
	if err != nil {
		return err
	}

	inj, err := newInjector(&cfg, client, clk)
	if err != nil {
		return err
	}

	var overrides *catalog.Overrides
	if cfg.CatalogFile != "" {
		if overrides, err = catalog.LoadOverrides(cfg.CatalogFile); err != nil {
			return err
		}
	}

	sessionID := idgen.NewUUID("sess").Generate()

	repo, err := journal.NewRedisRepository(&journal.Config{
		Client:   client,
		TTL:      cfg.SessionTTL,
		Capacity: cfg.JournalEntries,
	})
	if err != nil {
		return err
	}

	bus := events.NewBus()
	journal.Subscribe(&journal.SubscriberConfig{
		Bus:        bus,
		Repository: repo,
		SessionID:  sessionID,
		IDs:        idgen.NewUUID("jrnl"),
		Clock:      clk,
	})

	health := newHealthReporter()

	session, err := rotation.NewSession(ctx, &rotation.SessionConfig{
		ID:            sessionID,
		Characters:    cfg.SessionCharacters(),
		Provider:      provider,
		Injector:      inj,
		Bus:           bus,
		Clock:         clk,
		IDs:           idgen.NewUUID("cmd"),
		Timing:        cfg.Timing.Rotation(),
		Thresholds:    cfg.Thresholds.Dispatch(),
		Overrides:     overrides,
		OnFlowStopped: health.flowStopped,
	})
	if err != nil {
		return err
	}
	for _, f := range session.Flows() {
		health.flowStarted(f.Character())
	}

	slog.Info("session starting",
		"session_id", sessionID,
		"characters", len(cfg.Characters),
		"dry_run", cfg.DryRun)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGUSR1)
	defer signal.Stop(sigChan)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return health.serve(gctx, cfg.HealthPort)
	})

	g.Go(func() error {
		return session.Run(gctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case sig := <-sigChan:
				switch sig {
				case syscall.SIGHUP:
					reload(session, level)
				case syscall.SIGUSR1:
					session.TogglePause()
				default:
					slog.Info("received shutdown signal, stopping flows", "signal", sig.String())
					cancel()
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("session stopped", "session_id", sessionID)
	return nil
}

func newInjector(cfg *config.Config, client redis.Client, clk clock.Clock) (injector.Injector, error) {
	if cfg.DryRun {
		return injector.NewDryRun(clk), nil
	}
	return injector.NewRedisInjector(&injector.RedisConfig{
		Client:     client,
		Clock:      clk,
		MaxPending: cfg.Redis.MaxPending,
	})
}

// reload applies the tunable parts of the config file to the live session.
// A bad file is logged and leaves the running values in place.
func reload(session *rotation.Session, level *slog.LevelVar) {
	cfg, err := loadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("config reload rejected", "error", err)
		return
	}

	if err := session.Retune(cfg.Timing.Rotation(), cfg.Thresholds.Dispatch()); err != nil {
		slog.Error("config reload rejected", "error", err)
		return
	}
	level.Set(cfg.Level())
}
