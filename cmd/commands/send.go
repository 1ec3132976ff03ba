package commands

// Sends an already rendered chart file to Telegram.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	sendFile    string
	sendCaption string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a chart file to Telegram",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendFile, "file", "", "Chart file to send (.png goes as a photo)")
	sendCmd.Flags().StringVar(&sendCaption, "caption", "", "HTML caption")
	_ = sendCmd.MarkFlagRequired("file")
}

func runSend(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(sendFile); err != nil {
		return fmt.Errorf("chart file: %w", err)
	}

	sender, chatID, err := newSender(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return sender.SendChart(ctx, chatID, sendFile, sendCaption)
}
