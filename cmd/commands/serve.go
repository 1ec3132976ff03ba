package commands

// Serves live previews of the configured price series.
// Shuts down gracefully on SIGINT/SIGTERM.

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"price-chart/internal/features/series"
	logging "price-chart/internal/infra/log"
	"price-chart/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart previews over HTTP",
	Long:  `Serve the uPlot page at /, a PNG at /chart.png and an SVG at /chart.svg.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateRender(); err != nil {
		return err
	}

	points, err := series.Load(cfg.Chart.Input)
	if err != nil {
		logging.LogError("Failed to load price series", zap.String("input", cfg.Chart.Input), zap.Error(err))
		return err
	}
	labels, values := series.ToSeries(points)

	srv, err := server.New(labels, values)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout); err != nil {
		logging.LogError("Preview server stopped", zap.Error(err))
		return err
	}
	logging.LogInfo("Preview server stopped")
	return nil
}
