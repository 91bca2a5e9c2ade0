// Package cli implements the dayplan CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/dayplan/internal/config"
	"github.com/rcliao/dayplan/internal/logging"
	"github.com/rcliao/dayplan/internal/observe"
	"github.com/rcliao/dayplan/internal/store"
	"github.com/rcliao/dayplan/internal/temporal"
)

var (
	dbPath     string
	configPath string
	dayOffset  int
	logLevel   string
	logFormat  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "dayplan",
	Short: "Daily goals and reflections that know what day it is",
	Long: "A tiny CLI for daily goals and end-of-day reflections. Late-night sessions keep " +
		"working on yesterday until it is reflected on. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $DAYPLAN_DB_PATH or ~/.dayplan/dayplan.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.dayplan/config.yaml)")
	RootCmd.PersistentFlags().IntVar(&dayOffset, "offset", 0, "Shift the effective date by whole days")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or console")
}

// loadConfig reads file and environment settings, then applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *koanf.Koanf) {
	cfg, k, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if cmd.Flags().Changed("offset") {
		cfg.Temporal.DayOffset = dayOffset
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, k
}

func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		exitErr("init logger", err)
	}
	return log
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath)
}

// newService builds the resolver over s. Storage faults are logged, and
// counted when extra includes a metrics observer.
func newService(cfg *config.Config, s temporal.Reader, log *zap.Logger, extra ...temporal.Observer) *temporal.Service {
	obs := observe.Multi(append([]temporal.Observer{observe.NewLogger(log)}, extra...))
	return temporal.NewService(s, cfg.Temporal.Core(),
		temporal.WithObserver(obs),
		temporal.WithWindowDays(cfg.Temporal.WindowDays))
}

// session opens everything a resolver command needs. Callers must close the store.
func session(cmd *cobra.Command) (*config.Config, *store.SQLiteStore, *temporal.Service) {
	cfg, _ := loadConfig(cmd)
	log := newLogger(cfg)
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	return cfg, s, newService(cfg, s, log)
}

func printJSON(v interface{}) {
	b, _ := json.Marshal(v)
	fmt.Println(string(b))
}

func printJSONIndent(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
