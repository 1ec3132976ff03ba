// Package telegram delivers rendered charts to a Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging "price-chart/internal/infra/log"
	"price-chart/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// API is the part of *tgbotapi.BotAPI the sender uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Options struct {
	RatePerSecond float64
	Burst         int
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
}

func DefaultOptions() Options {
	return Options{
		RatePerSecond: 1,
		Burst:         3,
		MaxRetries:    3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
	}
}

// Sender is safe for concurrent use.
type Sender struct {
	api            API
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

func NewSender(api API, opts Options) *Sender {
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	return &Sender{
		api:         api,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Burst),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramAPI",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
		retry: retry.Options{
			MaxRetries: opts.MaxRetries,
			BaseDelay:  opts.BaseDelay,
			MaxDelay:   opts.MaxDelay,
			Name:       "telegram",
		},
	}
}

// NewBotSender connects to the Bot API with token.
func NewBotSender(token string, opts Options) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return NewSender(bot, opts), nil
}

// ParseChatID parses a numeric chat id such as "-1001234567890".
func ParseChatID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", s, err)
	}
	return id, nil
}

// SendChart uploads the file at path: .png as a photo, anything else as a document.
func (s *Sender) SendChart(ctx context.Context, chatID int64, path, caption string) error {
	var msg tgbotapi.Chattable
	method := "sendDocument"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		msg, method = photo, "sendPhoto"
	} else {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
		doc.Caption = caption
		doc.ParseMode = tgbotapi.ModeHTML
		msg = doc
	}

	requestID := logging.GenerateRequestID()
	startTime := time.Now()
	logging.LogRequest(requestID, "POST", method,
		zap.Int64("chat_id", chatID),
		zap.String("file", path))

	err := retry.Do(ctx, s.retry, func() error {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.api.Send(msg)
		})
		return classify(err)
	})

	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		logging.LogResponse(requestID, statusCode(err), duration, zap.String("endpoint", method), zap.Error(err))
		return fmt.Errorf("failed to send chart %s: %w", filepath.Base(path), err)
	}

	logging.LogResponse(requestID, 200, duration, zap.String("endpoint", method))
	logging.LogSuccess("Chart sent to Telegram",
		zap.Int64("chat_id", chatID),
		zap.String("file", path),
		zap.Int64("duration_ms", duration))
	return nil
}

// classify maps Bot API errors to retry.StatusError so 429/5xx are retried.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return &retry.StatusError{
			StatusCode:  tgErr.Code,
			Description: tgErr.Message,
			RetryAfter:  time.Duration(tgErr.RetryAfter) * time.Second,
			Err:         err,
		}
	}
	return err
}

func statusCode(err error) int {
	var se *retry.StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
