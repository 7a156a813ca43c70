package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/smart-schedule/cmd/cli/commands"
	"github.com/jakechorley/smart-schedule/internal/config"
	"github.com/jakechorley/smart-schedule/pkg/postgres"
	"github.com/jakechorley/smart-schedule/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Smart Schedule CLI - Generate weekly staff schedules",
		Long:  `A CLI tool for generating weekly shift schedules from staff availability, and serving the schedule API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(commands.IsOffline(cmd.Annotations))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.DB != nil {
				app.DB.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.SolveScheduleCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database. Offline commands fall back to the
// default solver config when no config file exists and never connect to the database.
func initApp(offline bool) error {
	var err error

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		if !offline {
			return fmt.Errorf("failed to load config: %w", err)
		}
		app.Logger.Warn("Using default configuration", zap.Error(err))
		cfg := config.Default()
		app.Cfg = &cfg
	}
	app.Logger.Debug("Configuration loaded successfully")

	if offline {
		return nil
	}

	app.Logger.Info("Connecting to database")
	app.DB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}
