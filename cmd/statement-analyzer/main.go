package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/statement-analyzer/internal/config"
	"github.com/example/statement-analyzer/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "statement-analyzer",
	Short: "Extract and categorize transactions from Global IME Bank statements",
	Long: `Statement Analyzer reads Global IME Bank PDF statements, extracts the
transaction table and statement details, categorizes transactions by keyword
and summarizes deposits, withdrawals and balances.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if cfg.Log.Format == "json" {
			log = logger.NewWithWriter(os.Stderr, level)
		} else {
			log = logger.New(level)
		}
		cmd.SetContext(logger.WithContext(cmd.Context(), log))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(extractCmd, summaryCmd, exportCmd, serveCmd)
}
