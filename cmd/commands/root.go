package commands

// Root command for the Cobra CLI.
// Loads configuration and logging before any subcommand runs.

import (
	"fmt"

	"price-chart/internal/infra/config"
	logging "price-chart/internal/infra/log"
	"price-chart/internal/notify/telegram"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "price-chart",
	Short: "Price chart renderer",
	Long: `price-chart renders a price series as a line chart. Output can be an
uPlot HTML page, a PNG or an SVG, served over HTTP or sent to Telegram.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return logging.Init(cfg.Log.Dir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
}

func newSender(cfg *config.Config) (*telegram.Sender, int64, error) {
	if err := cfg.ValidateTelegram(); err != nil {
		return nil, 0, err
	}
	chatID, err := telegram.ParseChatID(cfg.Telegram.ChatID)
	if err != nil {
		return nil, 0, err
	}

	opts := telegram.DefaultOptions()
	opts.RatePerSecond = cfg.Telegram.RatePerSec
	opts.MaxRetries = cfg.Telegram.MaxRetries

	sender, err := telegram.NewBotSender(cfg.Telegram.BotToken, opts)
	if err != nil {
		return nil, 0, err
	}
	return sender, chatID, nil
}
