package main

import (
	adapthttp "familyfit/internal/adapter/http"
	"familyfit/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	serveAddr   string
	serveWebDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and JSON API",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveWebDir != "" {
			cfg.WebDir = serveWebDir
		}

		logFile := logging.Setup(logging.SetupParams{
			LogFileName:   cfg.LogsPath,
			LogToStdout:   cfg.LogToStdout,
			LogLevel:      cfg.LogLevel,
			LogFormatJSON: cfg.LogJSON,
		})
		log.Warnf("---->> running in [%s] environment", cfg.Environment)
		log.Debugf("using store [%s], cache %d MB", cfg.Store, cfg.CacheSizeMB)

		svcs, err := newServices(cmd.Context(), cfg)
		if err != nil {
			_ = logFile.Close()
			return err
		}
		defer func() {
			err = multierr.Combine(err, svcs.Close(), logFile.Close())
		}()

		srv := adapthttp.New(svcs.ledger, svcs.charts, svcs.sync, cfg.WebDir).
			WithMetrics(svcs.metrics, svcs.registry)
		return srv.ListenAndServe(cmd.Context(), cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides the config")
	serveCmd.Flags().StringVar(&serveWebDir, "web-dir", "", "directory with the static dashboard")
}
