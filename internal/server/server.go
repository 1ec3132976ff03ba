// Package server serves live chart previews over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"price-chart/internal/dom"
	"price-chart/internal/features/chart"
	"price-chart/internal/features/chart/raster"
	"price-chart/internal/features/chart/uplot"
	"price-chart/internal/features/chart/vector"
	logging "price-chart/internal/infra/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine *gin.Engine
	labels []float64
	values []float64

	page *chart.Renderer
	png  *chart.Renderer
	svg  *chart.Renderer
}

// New serves a chart of labels against values. Every request renders into
// its own document, so concurrent requests never share a target.
func New(labels, values []float64) (*Server, error) {
	svgBuilder, err := vector.New(vector.SVG)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		engine: gin.New(),
		labels: labels,
		values: values,
		page:   chart.NewRenderer(uplot.New()),
		png:    chart.NewRenderer(raster.New()),
		svg:    chart.NewRenderer(svgBuilder),
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.GET("/", s.handlePage)
	s.engine.GET("/chart.png", s.handleImage(s.png))
	s.engine.GET("/chart.svg", s.handleImage(s.svg))
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) render(r *chart.Renderer) (*chart.Chart, error) {
	return r.RenderByID(dom.NewDocument(chart.TargetID), s.labels, s.values)
}

func (s *Server) handlePage(c *gin.Context) {
	ch, err := s.render(s.page)
	if err != nil {
		s.fail(c, err)
		return
	}
	page, err := uplot.Page(ch.Target.ID(), ch.Fragment.Body)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleImage(r *chart.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, err := s.render(r)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Data(http.StatusOK, ch.Fragment.MediaType, ch.Fragment.Body)
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	logging.LogError("Failed to render chart", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "failed to render chart: %v", err)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.LogInfo("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	}
}

// Run listens on addr until ctx is done, then shuts down within 10s.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logging.LogSuccess("Preview server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down preview server: %w", err)
	}
	return nil
}
