package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"familyfit/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	dbPath     string
	storeKind  string
)

var rootCmd = &cobra.Command{
	Use:           "familyfit",
	Short:         "familyfit tracks the family's weight-loss progress",
	Long:          "familyfit records dated weight entries for a fixed family roster and reports progress toward each member's target weight.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the selected environment, applies the flag overrides and
// only then validates, so --db works under a section that selects postgres.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}
	if storeKind != "" {
		cfg.Store = strings.ToLower(storeKind)
	}
	if dbPath != "" {
		cfg.Store = config.StoreSqlite
		cfg.SqlitePath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("using %s store", cfg.Store)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [dev | development | prod | production]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to a SQLite database, overrides the configured store")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "store kind [memory | sqlite | postgres | redis]")
}
