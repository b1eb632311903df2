// Package fixtures renders the boundary amounts, funding messages and deposit payloads used by
// bridge integration tests for every configured token.
package fixtures

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chainsafe/bridge-fixtures/internal/metrics"
	"github.com/chainsafe/bridge-fixtures/pkg/adjustment"
	apperrors "github.com/chainsafe/bridge-fixtures/pkg/app/errors"
	"github.com/chainsafe/bridge-fixtures/pkg/config"
	"github.com/chainsafe/bridge-fixtures/pkg/message"
	"github.com/chainsafe/bridge-fixtures/pkg/wallet"
)

// Generator builds fixtures from a configuration.
type Generator struct {
	tokens            []config.TokenConfig
	depositToContract bool

	wallet     *wallet.Wallet
	contractID [message.WordSize]byte
	token      [message.WordSize]byte
	from       [message.WordSize]byte
	to         [message.WordSize]byte
	sender     [message.WordSize]byte

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// RecipientLabel derives the default deposit recipient from the test wallet.
const RecipientLabel = "recipient"

// NewGenerator resolves the configured addresses and the test wallet. When no recipient is
// configured deposits go to a wallet derived from the test wallet with RecipientLabel; deposits to
// a contract need an explicit recipient.
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, apperrors.BadRequestError(nil, "nil config")
	}
	s := applyOptions(opts)

	if cfg.Bridge.DepositToContract && cfg.Bridge.ToAddress == "" {
		return nil, apperrors.BadRequestError(nil, "bridge.to_address is required for deposits to a contract")
	}

	w, err := wallet.Deterministic(cfg.Bridge.WalletSeed)
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	recipient, err := w.Derive(RecipientLabel)
	if err != nil {
		return nil, fmt.Errorf("recipient wallet: %w", err)
	}

	messageSender := cfg.Bridge.MessageSender
	if messageSender == "" {
		messageSender = wallet.DefaultMessageSender
	}

	g := &Generator{
		tokens:            cfg.Tokens,
		depositToContract: cfg.Bridge.DepositToContract,
		wallet:            w,
		to:                recipient.Owner(),
		logger:            s.logger,
		metrics:           s.metrics,
	}

	fields := []struct {
		name  string
		value string
		dst   *[message.WordSize]byte
	}{
		{"contract_id", cfg.Bridge.ContractID, &g.contractID},
		{"token_address", cfg.Bridge.TokenAddress, &g.token},
		{"from_address", cfg.Bridge.FromAddress, &g.from},
		{"message_sender", messageSender, &g.sender},
		{"to_address", cfg.Bridge.ToAddress, &g.to},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if *f.dst, err = message.ParseBytes32(f.value); err != nil {
			return nil, fmt.Errorf("bridge.%s: %w", f.name, err)
		}
	}

	return g, nil
}

// Wallet returns the test wallet the fixtures are built for.
func (g *Generator) Wallet() *wallet.Wallet {
	return g.wallet
}

// Generate computes one fixture per configured token, in configuration order.
func (g *Generator) Generate() (*Set, error) {
	adjustments := make([]*adjustment.Adjustment, 0, len(g.tokens))
	specs := make([]wallet.MessageSpec, 0, len(g.tokens))
	for _, t := range g.tokens {
		adj, err := adjustment.New(t.BridgedDecimals, t.LocalDecimals)
		if err != nil {
			g.recordError()
			return nil, fmt.Errorf("token %s: %w", t.Name, err)
		}
		adjustments = append(adjustments, adj)
		specs = append(specs, wallet.MessageSpec{
			Amount: wallet.DefaultDepositMessageAmount,
			Data: message.BuildDepositData(g.contractID, message.Deposit{
				Token:             g.token,
				From:              g.from,
				To:                g.to,
				Amount:            adj.TestAmount(),
				DepositToContract: g.depositToContract,
			}),
		})
	}

	messages, err := wallet.BuildMessages(g.sender, g.contractID, specs)
	if err != nil {
		g.recordError()
		return nil, err
	}

	// One gas coin of the base asset per deposit message.
	coinSpecs := make([]wallet.CoinSpec, len(g.tokens))
	for i := range coinSpecs {
		coinSpecs[i] = wallet.CoinSpec{Amount: wallet.DefaultCoinAmount}
	}

	set := &Set{
		Wallet:   g.wallet.Address().Hex(),
		Coins:    make([]Coin, 0, len(coinSpecs)),
		Fixtures: make([]Fixture, 0, len(g.tokens)),
	}
	for _, c := range g.wallet.Coins(coinSpecs) {
		set.Coins = append(set.Coins, Coin{
			Owner:   "0x" + hex.EncodeToString(c.Owner[:]),
			AssetID: "0x" + hex.EncodeToString(c.AssetID[:]),
			Amount:  c.Amount,
		})
	}
	for i, t := range g.tokens {
		f, err := buildFixture(t, adjustments[i], messages[i])
		if err != nil {
			g.recordError()
			return nil, fmt.Errorf("token %s: %w", t.Name, err)
		}
		g.recordFixture(t, adjustments[i])
		g.logger.Debug("Generated fixture",
			zap.String("token", t.Name),
			zap.Uint8("bridged_decimals", t.BridgedDecimals),
			zap.Uint8("local_decimals", t.LocalDecimals),
			zap.String("direction", f.Direction),
			zap.String("scaling_factor", f.ScalingFactor),
			zap.String("test_amount", f.Amounts.Test))
		set.Fixtures = append(set.Fixtures, f)
	}

	g.logger.Info("Fixtures generated",
		zap.Int("count", len(set.Fixtures)),
		zap.String("wallet", set.Wallet))

	return set, nil
}

func (g *Generator) recordError() {
	if g.metrics != nil {
		g.metrics.GenerationErrors.Inc()
	}
}

func (g *Generator) recordFixture(t config.TokenConfig, adj *adjustment.Adjustment) {
	if g.metrics == nil {
		return
	}
	gap := int(t.BridgedDecimals) - int(t.LocalDecimals)
	if gap < 0 {
		gap = -gap
	}
	g.metrics.FixturesGenerated.WithLabelValues(adj.Direction().String()).Inc()
	g.metrics.DecimalGap.Observe(float64(gap))
}

func buildFixture(t config.TokenConfig, adj *adjustment.Adjustment, msg wallet.Message) (Fixture, error) {
	f := Fixture{
		Name:            t.Name,
		BridgedDecimals: t.BridgedDecimals,
		LocalDecimals:   t.LocalDecimals,
		ScalingFactor:   adj.ScalingFactor().Dec(),
		Direction:       adj.Direction().String(),
		Amounts:         amounts(adj, func(v *uint256.Int) string { return v.Dec() }),
		Units: amounts(adj, func(v *uint256.Int) string {
			return decimal.NewFromBigInt(v.ToBig(), -int32(t.BridgedDecimals)).String()
		}),
		Deposit: Deposit{
			Sender:        "0x" + hex.EncodeToString(msg.Sender[:]),
			Recipient:     "0x" + hex.EncodeToString(msg.Recipient[:]),
			MessageAmount: msg.Amount,
			Nonce:         "0x" + hex.EncodeToString(msg.Nonce[:]),
			Data:          "0x" + hex.EncodeToString(msg.Data),
		},
	}

	var err error
	if f.Native.Min, err = adj.ToNative(adj.MinAmount()); err != nil {
		return f, fmt.Errorf("native min: %w", err)
	}
	if f.Native.Max, err = adj.ToNative(adj.MaxAmount()); err != nil {
		return f, fmt.Errorf("native max: %w", err)
	}
	if f.Native.Test, err = adj.ToNative(adj.TestAmount()); err != nil {
		return f, fmt.Errorf("native test: %w", err)
	}
	return f, nil
}

func amounts(adj *adjustment.Adjustment, format func(*uint256.Int) string) Amounts {
	return Amounts{
		Min:          format(adj.MinAmount()),
		Max:          format(adj.MaxAmount()),
		Test:         format(adj.TestAmount()),
		Insufficient: format(adj.InsufficientAmount()),
		Overflow1:    format(adj.OverflowAmount1()),
		Overflow2:    format(adj.OverflowAmount2()),
		Overflow3:    format(adj.OverflowAmount3()),
	}
}

// Write renders the set in the given format ("yaml" or "json").
func Write(w io.Writer, set *Set, format string) error {
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(set); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return apperrors.NotSupportedError(nil, "output format "+format)
	}
}
