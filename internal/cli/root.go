// Package cli provides the command-line interface for sqldialect.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/coregx/sqldialect/internal/config"
	"github.com/coregx/sqldialect/internal/dialects"
	"github.com/coregx/sqldialect/internal/logger"
	"github.com/coregx/sqldialect/internal/security"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
	catalog *dialects.Catalog

	validator *security.Validator
	auditor   *security.Auditor
}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{log: &logger.NoopLogger{}}

	rootCmd := &cobra.Command{
		Use:   "sqldialect",
		Short: "Inspect SQL dialects and generate portable DDL",
		Long: `sqldialect detects which database engine sits behind a connection and
renders CREATE TABLE statements for SQLite, DuckDB, PostgreSQL, MySQL and
SQL Server from engine-neutral YAML table definitions.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().String("driver", "", "database/sql driver name (sqlite, pgx, postgres, mysql, sqlserver, duckdb)")
	rootCmd.PersistentFlags().String("dsn", "", "data source name")
	rootCmd.PersistentFlags().String("dialect", "", "dialect name or alias; skips detection")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range dialects.Builtins() {
			names = append(names, f().Name())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newDialectsCommand(a))
	rootCmd.AddCommand(newDetectCommand(a))
	rootCmd.AddCommand(newTablesCommand(a))
	rootCmd.AddCommand(newDDLCommand(a))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewSlogAdapter(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	a.catalog = dialects.NewCatalog(dialects.WithBuiltins(), dialects.WithLogger(a.log))
	a.validator = security.NewValidator()
	a.auditor = security.NewAuditor(a.log.With("component", "audit"))

	if cfg.File != "" {
		a.log.Debug("using config file", "path", cfg.File)
	}
	return nil
}

// open connects using the configured driver and DSN and verifies the connection.
func (a *app) open(ctx context.Context) (*sql.DB, error) {
	if err := a.cfg.RequireConnection(); err != nil {
		return nil, err
	}

	log := a.log.With("driver", a.cfg.Driver, "dsn", logger.RedactDSN(a.cfg.Driver, a.cfg.DSN))
	log.Debug("opening connection")

	db, err := sql.Open(a.cfg.Driver, a.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", a.cfg.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error("connection failed", "error", err)
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return db, nil
}

// dialectFor returns the configured dialect, or detects it when db is non-nil.
func (a *app) dialectFor(ctx context.Context, db *sql.DB) (dialects.Dialect, error) {
	if a.cfg.Dialect != "" {
		return a.catalog.Lookup(a.cfg.Dialect)
	}
	if db == nil {
		return nil, fmt.Errorf("--dialect or a connection is required: %w", config.ErrNoConnection)
	}
	return a.catalog.GetDialectFor(ctx, db)
}

// currentUser names the OS user for audit records.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
