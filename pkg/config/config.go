package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the fixture generator configuration
type Config struct {
	Bridge  BridgeConfig  `yaml:"bridge"`
	Tokens  []TokenConfig `yaml:"tokens" validate:"required,min=1,dive"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BridgeConfig describes the deposit message every fixture carries. Addresses are hex encoded
// and left-padded to 32 bytes. An empty message_sender falls back to the remote bridge contract
// used by the integration tests; an empty to_address to a recipient derived from the test wallet.
// Deposits to a contract must name the contract in to_address.
type BridgeConfig struct {
	ContractID        string `yaml:"contract_id" default:"0x0000000000000000000000000000000000000000000000000000000000000001" validate:"required,hexadecimal"`
	TokenAddress      string `yaml:"token_address" default:"0x00000000000000000000000000000000000000000000000000000000deadbeef" validate:"required,hexadecimal"`
	FromAddress       string `yaml:"from_address" default:"0x0000000000000000000000008888888888888888888888888888888888888888" validate:"required,hexadecimal"`
	ToAddress         string `yaml:"to_address" validate:"required_if=DepositToContract true,omitempty,hexadecimal"`
	MessageSender     string `yaml:"message_sender" validate:"omitempty,hexadecimal"`
	DepositToContract bool   `yaml:"deposit_to_contract"`
	WalletSeed        uint64 `yaml:"wallet_seed" default:"8320147306839812359" validate:"required"`
}

// TokenConfig is one (bridged, local) decimal pair to generate fixtures for
type TokenConfig struct {
	Name            string `yaml:"name" validate:"required"`
	BridgedDecimals uint8  `yaml:"bridged_decimals"`
	LocalDecimals   uint8  `yaml:"local_decimals"`
}

// OutputConfig controls where and how fixtures are written. Path "stdout", "-" or empty writes
// to standard output.
type OutputConfig struct {
	Path   string `yaml:"path" default:"stdout"`
	Format string `yaml:"format" default:"yaml" validate:"oneof=yaml json"`
	// MetricsPath, when set, receives generation metrics in the Prometheus text format
	MetricsPath string `yaml:"metrics_path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"console" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stderr"`
}

// Load loads configuration from a YAML file, applies defaults and validates it
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("tokens: duplicate name %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}
