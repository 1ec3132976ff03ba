package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so no config.yaml or .env leaks in.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := LoadConfig(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "uplot", cfg.Chart.Backend)
	assert.Equal(t, "etc/charts", cfg.Output.Dir)
	assert.Equal(t, "logs", cfg.Log.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 3, cfg.Telegram.MaxRetries)
	assert.False(t, cfg.Telegram.Notify)
}

func TestLoadConfig_Layers(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
chart:
  input: from-yaml.json
  backend: raster
output:
  dir: yaml-out
telegram:
  chat_id: "-100"
`), 0644))
	t.Setenv("PRICE_CHART_OUTPUT_DIR", "env-out")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")

	cfg, err := LoadConfig(newFlags(t, "--chart.backend=svg"))
	require.NoError(t, err)

	assert.Equal(t, "from-yaml.json", cfg.Chart.Input)
	assert.Equal(t, "svg", cfg.Chart.Backend)
	assert.Equal(t, "env-out", cfg.Output.Dir)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "-100", cfg.Telegram.ChatID)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("chart: [unclosed"), 0644))

	_, err := LoadConfig(newFlags(t))
	assert.Error(t, err)
}

func TestValidateRender(t *testing.T) {
	cfg := &Config{Chart: ChartConfig{Backend: "uplot"}}
	assert.ErrorContains(t, cfg.ValidateRender(), "chart.input")

	cfg.Chart.Input = "prices.json"
	assert.NoError(t, cfg.ValidateRender())

	cfg.Telegram.Notify = true
	assert.ErrorContains(t, cfg.ValidateRender(), "telegram.bot_token")

	cfg.Telegram.BotToken = "token"
	assert.ErrorContains(t, cfg.ValidateRender(), "telegram.chat_id")

	cfg.Telegram.ChatID = "1"
	assert.NoError(t, cfg.ValidateRender())
}
