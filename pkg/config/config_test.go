package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build("", nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.SampleLimit)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestBuildFromFileAndFlags(t *testing.T) {
	content := `manifest: sources.yaml
output: out/ledger.csv
sample_limit: 3
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("split", false, "")
	require.NoError(t, flags.Set("split", "true"))

	cfg, err := Build(tmpFile, flags)
	require.NoError(t, err)

	assert.Equal(t, "sources.yaml", cfg.Manifest)
	assert.Equal(t, "out/ledger.csv", cfg.OutputPath)
	assert.Equal(t, 3, cfg.SampleLimit)
	assert.True(t, cfg.Split)
}

func TestBuildMissingExplicitFile(t *testing.T) {
	_, err := Build("/does/not/exist.yaml", nil)
	assert.Error(t, err)
}
