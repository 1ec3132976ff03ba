package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_WritesUPlotPage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "prices.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"price_data":[
		{"timestamp":"2024-03-01T00:00:00Z","price":100},
		{"timestamp":"2024-03-01T01:00:00Z","price":101.5}
	]}`), 0644))

	outDir := filepath.Join(dir, "out")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render",
		"--chart.input", input,
		"--chart.backend", "uplot",
		"--output.dir", outDir,
		"--log.dir", filepath.Join(dir, "logs"),
	})
	require.NoError(t, Execute())

	page := filepath.Join(outDir, "chart.html")
	assert.Equal(t, page, strings.TrimSpace(out.String()))

	body, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(body), `const data = [[1709251200,1709254800],[100,101.5]];`)
}
