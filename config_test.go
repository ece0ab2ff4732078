package tabulate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabulate"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabulate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
ratio: 0.5
estimate_lines: 50
delimiters: ",;"
output_delimiter: " | "
strict_delimiters: true
truncate: "2-"
exclude: "1"
`)
	cfg, err := tabulate.LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Ratio)
	assert.Equal(t, 0.5, *cfg.Ratio)
	require.NotNil(t, cfg.EstimateLines)
	assert.Equal(t, 50, *cfg.EstimateLines)
	require.NotNil(t, cfg.Delimiters)
	assert.Equal(t, ",;", *cfg.Delimiters)
	require.NotNil(t, cfg.OutputDelimiter)
	assert.Equal(t, " | ", *cfg.OutputDelimiter)
	require.NotNil(t, cfg.StrictDelimiters)
	assert.True(t, *cfg.StrictDelimiters)
	require.NotNil(t, cfg.Truncate)
	assert.Equal(t, "2-", *cfg.Truncate)
	require.NotNil(t, cfg.Exclude)
	assert.Equal(t, "1", *cfg.Exclude)
	assert.Nil(t, cfg.Include)
}

func TestLoadConfigPartial(t *testing.T) {
	t.Parallel()
	cfg, err := tabulate.LoadConfig(writeConfig(t, "ratio: 2.0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Ratio)
	assert.Equal(t, 2.0, *cfg.Ratio)
	assert.Nil(t, cfg.EstimateLines)
	assert.Nil(t, cfg.Delimiters)
}

func TestLoadConfigExplicitPathMissing(t *testing.T) {
	t.Parallel()
	_, err := tabulate.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	t.Parallel()
	_, err := tabulate.LoadConfig(writeConfig(t, "ratio: [oops\n"))
	assert.Error(t, err)
}
