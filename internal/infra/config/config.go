package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type ChartConfig struct {
	Input   string `mapstructure:"input"`   // .json or .csv price series
	Backend string `mapstructure:"backend"` // uplot, raster, png, svg
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Dir string `mapstructure:"dir"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type TelegramConfig struct {
	BotToken   string  `mapstructure:"bot_token"`
	ChatID     string  `mapstructure:"chat_id"`
	Notify     bool    `mapstructure:"notify"` // send rendered charts after `render`
	RatePerSec float64 `mapstructure:"rate_per_sec"`
	MaxRetries int     `mapstructure:"max_retries"`
}

// LoadConfig layers, lowest first:
// 1. defaults
// 2. config.yaml in the working directory
// 3. .env file
// 4. environment variables
// 5. flags set on fs
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	v.AutomaticEnv()
	setupEnvAliases(v)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.input", "")
	v.SetDefault("chart.backend", "uplot")

	v.SetDefault("output.dir", "etc/charts")
	v.SetDefault("log.dir", "logs")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.notify", false)
	v.SetDefault("telegram.rate_per_sec", 1.0)
	v.SetDefault("telegram.max_retries", 3)
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("chart.input", "PRICE_CHART_INPUT")
	v.BindEnv("chart.backend", "PRICE_CHART_BACKEND")
	v.BindEnv("output.dir", "PRICE_CHART_OUTPUT_DIR")
	v.BindEnv("log.dir", "PRICE_CHART_LOG_DIR")
	v.BindEnv("server.addr", "PRICE_CHART_ADDR")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.notify", "TELEGRAM_NOTIFY")
	v.BindEnv("telegram.rate_per_sec", "TELEGRAM_RATE_PER_SEC")
	v.BindEnv("telegram.max_retries", "TELEGRAM_MAX_RETRIES")
}

// RegisterFlags declares the flags LoadConfig binds. Flag names match the
// config keys so viper can bind them directly.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("chart.input", "", "Price series file, .json or .csv (env: PRICE_CHART_INPUT)")
	fs.String("chart.backend", "uplot", "Chart backend: uplot, raster, png, svg (env: PRICE_CHART_BACKEND)")
	fs.String("output.dir", "etc/charts", "Directory rendered charts are written to (env: PRICE_CHART_OUTPUT_DIR)")
	fs.String("log.dir", "logs", "Log directory (env: PRICE_CHART_LOG_DIR)")
	fs.String("server.addr", ":8080", "Preview server listen address (env: PRICE_CHART_ADDR)")
	fs.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	fs.String("telegram.chat_id", "", "Telegram chat id (env: TELEGRAM_CHAT_ID)")
	fs.Bool("telegram.notify", false, "Send rendered charts to Telegram (env: TELEGRAM_NOTIFY)")
	fs.Float64("telegram.rate_per_sec", 1, "Telegram send rate limit (env: TELEGRAM_RATE_PER_SEC)")
	fs.Int("telegram.max_retries", 3, "Retries for failed Telegram sends (env: TELEGRAM_MAX_RETRIES)")
}

// ValidateRender checks what `render` and `serve` need.
func (c *Config) ValidateRender() error {
	if c.Chart.Input == "" {
		return fmt.Errorf("chart.input is required")
	}
	if c.Chart.Backend == "" {
		return fmt.Errorf("chart.backend is required")
	}
	if c.Telegram.Notify {
		return c.ValidateTelegram()
	}
	return nil
}

// ValidateTelegram checks what sending to Telegram needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
