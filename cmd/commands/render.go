package commands

// Renders the configured price series once and writes it to output.dir.
// With telegram.notify set the written files are sent as well.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"price-chart/internal/dom"
	"price-chart/internal/features/chart"
	"price-chart/internal/features/chart/backend"
	"price-chart/internal/features/chart/uplot"
	"price-chart/internal/features/series"
	"price-chart/internal/infra/fs"
	logging "price-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the price series to a file",
	Long:  `Load chart.input, render it with chart.backend and write the result to output.dir.`,
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateRender(); err != nil {
		return err
	}

	start := time.Now()
	points, err := series.Load(cfg.Chart.Input)
	if err != nil {
		logging.LogError("Failed to load price series", zap.String("input", cfg.Chart.Input), zap.Error(err))
		return err
	}
	labels, values := series.ToSeries(points)

	builder, err := backend.New(cfg.Chart.Backend)
	if err != nil {
		return err
	}

	doc := dom.NewDocument(chart.TargetID)
	if _, err := chart.NewRenderer(builder).RenderByID(doc, labels, values); err != nil {
		logging.LogError("Failed to render chart", zap.String("backend", cfg.Chart.Backend), zap.Error(err))
		return err
	}

	paths, err := fs.SaveDocument(cfg.Output.Dir, doc, fs.WithWrapper(chart.MediaHTML, uplot.Page))
	if err != nil {
		logging.LogError("Failed to save chart", zap.String("dir", cfg.Output.Dir), zap.Error(err))
		return err
	}

	logging.LogSuccess("Chart rendered",
		zap.String("backend", cfg.Chart.Backend),
		zap.Int("points", len(points)),
		zap.Strings("files", paths),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}

	if !cfg.Telegram.Notify {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sender, chatID, err := newSender(cfg)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("<b>%s</b> %s", chart.PriceLabel, filepath.Base(cfg.Chart.Input))
	for _, p := range paths {
		if err := sender.SendChart(ctx, chatID, p, caption); err != nil {
			return err
		}
	}
	return nil
}
