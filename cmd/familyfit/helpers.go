package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"familyfit/internal/adapter/cache"
	"familyfit/internal/adapter/memory"
	"familyfit/internal/adapter/postgres"
	redisstore "familyfit/internal/adapter/redis"
	"familyfit/internal/adapter/sqlite"
	"familyfit/internal/app"
	"familyfit/internal/config"
	"familyfit/internal/domain"
	"familyfit/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// services is everything a command needs, built from one config.
type services struct {
	cfg      *config.Config
	store    domain.KVStore
	ledger   *app.LedgerService
	charts   *app.ChartsService
	sync     *app.SyncService
	metrics  *metrics.Manager
	registry *prometheus.Registry
	closers  []io.Closer
}

func (s *services) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i].Close())
	}
	return err
}

// openStore opens the configured store and, when cache_size_mb is set,
// puts the freecache layer in front of it.
func openStore(cfg *config.Config) (domain.KVStore, io.Closer, error) {
	var (
		store  domain.KVStore
		closer io.Closer
	)
	switch cfg.Store {
	case config.StoreMemory:
		db := memory.New()
		store, closer = db, db
	case config.StoreSqlite:
		db, err := sqlite.Open(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		store, closer = db, db
	case config.StorePostgres:
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		store, closer = db, db
	case config.StoreRedis:
		db, err := redisstore.Open(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		store, closer = db, db
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	if cfg.CacheSizeMB > 0 {
		store = cache.New(store, cfg.CacheSizeMB)
	}
	return store, closer, nil
}

func newServices(ctx context.Context, cfg *config.Config) (*services, error) {
	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewManager(cfg.MetricsNamespace, "server", registry)

	ledger := app.NewLedgerService(store, domain.DefaultRoster(), m)
	ledger.Load(ctx)
	syncSvc := app.NewSyncService(store)
	syncSvc.Load(ctx)

	return &services{
		cfg:      cfg,
		store:    store,
		ledger:   ledger,
		charts:   app.NewChartsService(ledger),
		sync:     syncSvc,
		metrics:  m,
		registry: registry,
		closers:  []io.Closer{closer},
	}, nil
}

// withServices loads the config, builds the services, runs fn and closes
// the store. Logs go to the command's stderr so they never mix with output.
func withServices(cmd *cobra.Command, fn func(*services) error) (err error) {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(log.WarnLevel)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svcs, err := newServices(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, svcs.Close())
	}()
	return fn(svcs)
}

// reportWarning prints a persistence warning and swallows it; other errors
// are returned.
func reportWarning(cmd *cobra.Command, err error) error {
	if err != nil && app.IsWarning(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", err)
		return nil
	}
	return err
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseWeightArg(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", value)
	}
	return v, nil
}

func formatWeight(w *float64) string {
	if w == nil {
		return "-"
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}
