package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chainsafe/bridge-fixtures/pkg/config"
	"github.com/chainsafe/bridge-fixtures/pkg/fixtures"
)

func TestRun_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.yaml")
	cfg, err := config.Parse([]byte(`
tokens:
  - name: eth
    bridged_decimals: 18
    local_decimals: 9
output:
  path: ` + out + `
`))
	require.NoError(t, err)

	require.NoError(t, run(cfg, zap.NewNop()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var set fixtures.Set
	require.NoError(t, yaml.Unmarshal(data, &set))
	require.Len(t, set.Fixtures, 1)
	assert.Equal(t, "eth", set.Fixtures[0].Name)
}

func TestRun_InvalidPair(t *testing.T) {
	cfg, err := config.Parse([]byte(`
tokens:
  - name: wide
    bridged_decimals: 90
    local_decimals: 0
output:
  path: ` + filepath.Join(t.TempDir(), "out.yaml") + `
`))
	require.NoError(t, err)

	assert.Error(t, run(cfg, zap.NewNop()))
}

func TestWriteOutput(t *testing.T) {
	set := &fixtures.Set{Wallet: "0x01"}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeOutput(config.OutputConfig{Path: path, Format: "json"}, set))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"wallet": "0x01"`)

	err = writeOutput(config.OutputConfig{Path: filepath.Join(t.TempDir(), "missing", "out.yaml"), Format: "yaml"}, set)
	assert.Error(t, err)

	err = writeOutput(config.OutputConfig{Path: filepath.Join(t.TempDir(), "out.toml"), Format: "toml"}, set)
	assert.Error(t, err)
}
