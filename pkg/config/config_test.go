package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
bridge:
  deposit_to_contract: true
  to_address: "0x00000000000000000000000000000000000000000000000000000000000000aa"
tokens:
  - name: eth-to-9
    bridged_decimals: 18
    local_decimals: 9
  - name: usdc-to-18
    bridged_decimals: 6
    local_decimals: 18
output:
  format: json
logging:
  level: debug
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	require.Len(t, cfg.Tokens, 2)
	assert.Equal(t, "eth-to-9", cfg.Tokens[0].Name)
	assert.Equal(t, uint8(18), cfg.Tokens[0].BridgedDecimals)
	assert.Equal(t, uint8(9), cfg.Tokens[0].LocalDecimals)

	assert.True(t, cfg.Bridge.DepositToContract)
	assert.Equal(t, uint64(8320147306839812359), cfg.Bridge.WalletSeed)
	assert.Empty(t, cfg.Bridge.MessageSender)
	assert.NotEmpty(t, cfg.Bridge.ContractID)

	assert.Equal(t, "stdout", cfg.Output.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.OutputPath)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"no tokens": `
tokens: []
`,
		"missing token name": `
tokens:
  - bridged_decimals: 18
`,
		"duplicate names": `
tokens:
  - name: a
  - name: a
`,
		"bad hex": `
bridge:
  contract_id: "0xnothex"
tokens:
  - name: a
`,
		"bad output format": `
tokens:
  - name: a
output:
  format: toml
`,
		"bad log level": `
tokens:
  - name: a
logging:
  level: loud
`,
		"deposit to contract without recipient": `
bridge:
  deposit_to_contract: true
tokens:
  - name: a
`,
		"malformed yaml": `tokens: [`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Tokens, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(LoggingConfig{Level: "info", Format: format, OutputPath: "stderr"})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	_, err := NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestParse_OutputPathDefault(t *testing.T) {
	cfg, err := Parse([]byte(`
tokens:
  - name: a
`))
	require.NoError(t, err)
	assert.Equal(t, "stdout", cfg.Output.Path)

	cfg, err = Parse([]byte(`
tokens:
  - name: a
output:
  path: out.yaml
`))
	require.NoError(t, err)
	assert.Equal(t, "out.yaml", cfg.Output.Path)
}

func TestParse_DepositToContractRecipient(t *testing.T) {
	cfg, err := Parse([]byte(`
bridge:
  deposit_to_contract: true
  to_address: "0xabcdef"
tokens:
  - name: a
`))
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef", cfg.Bridge.ToAddress)

	_, err = Parse([]byte(`
bridge:
  deposit_to_contract: false
tokens:
  - name: a
`))
	assert.NoError(t, err)
}
