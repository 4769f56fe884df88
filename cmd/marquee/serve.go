package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/marqueehq/marquee/pkg/api"
	"github.com/marqueehq/marquee/pkg/config"
	"github.com/marqueehq/marquee/pkg/events"
	"github.com/marqueehq/marquee/pkg/forecast"
	"github.com/marqueehq/marquee/pkg/lifecycle"
	"github.com/marqueehq/marquee/pkg/log"
	"github.com/marqueehq/marquee/pkg/remote"
	"github.com/marqueehq/marquee/pkg/remote/postgres"
	"github.com/marqueehq/marquee/pkg/smoothing"
	"github.com/marqueehq/marquee/pkg/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lifecycle daemon and HTTP API",
	Long: `Start the full daemon: load the local snapshot, reconcile it with
the remote booking store, begin the lifecycle tick loop, and serve the
operator API until interrupted.

Without a configured Postgres store the daemon runs against an empty
in-memory store, which is useful for local development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		return runServe(cfgPath)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "path to YAML config file")
}

func runServe(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.LogLevel),
		JSONOutput: true,
	})
	logger := log.WithComponent("main")

	// Remote booking store.
	var remoteStore remote.Store
	if cfg.Postgres.Enabled() {
		pg, err := postgres.New(context.Background(), cfg.Postgres.DSN())
		if err != nil {
			return fmt.Errorf("connect remote store: %w", err)
		}
		defer pg.Close()
		remoteStore = pg
		logger.Info().Str("host", cfg.Postgres.Host).Msg("Using Postgres booking store")
	} else {
		remoteStore = remote.NewMemoryStore()
		logger.Warn().Msg("No remote store configured, using in-memory store")
	}

	// Durable snapshot.
	snap, err := snapshot.NewBoltStore(cfg.Lifecycle.DataDir)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer snap.Close()

	// Forecast cache.
	var cache *forecast.Cache
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		cache = forecast.NewCache(client, cfg.Forecast.CacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Forecast cache enabled")
	}

	// Event broker with a logging subscriber.
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	go logEvents(broker)

	mgr := lifecycle.NewManager(remoteStore, snap, broker)

	// Reconcile before the first tick so catch-up transitions see the
	// merged state.
	reconcileCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = mgr.Reconcile(reconcileCtx)
	cancel()
	if err != nil {
		logger.Error().Err(err).Msg("Initial reconcile failed, continuing with snapshot state")
	}

	sched := lifecycle.NewScheduler(mgr, cfg.Lifecycle.TickInterval)
	sched.Start()
	defer sched.Stop()
	logger.Info().Dur("interval", cfg.Lifecycle.TickInterval).Msg("Lifecycle scheduler started")

	apiServer := api.NewServer(mgr, cache, forecast.Options{
		Method:       smoothing.Method(cfg.Forecast.Method),
		Window:       cfg.Forecast.Window,
		Alpha:        cfg.Forecast.Alpha,
		GrowthFactor: cfg.Forecast.GrowthFactor,
	})
	errCh := make(chan error, 1)
	go func() {
		if err := apiServer.Start(cfg.Server.Addr()); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("API server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("API shutdown incomplete")
	}
	return nil
}

// logEvents mirrors the broker feed into the log so lifecycle activity
// is visible without a subscriber attached.
func logEvents(broker *events.Broker) {
	logger := log.WithComponent("events")
	sub := broker.Subscribe()
	for evt := range sub {
		logger.Info().
			Str("type", string(evt.Type)).
			Fields(map[string]interface{}{"metadata": evt.Metadata}).
			Msg(evt.Message)
	}
}
