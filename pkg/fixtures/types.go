package fixtures

// Amounts holds the boundary amounts of one decimal pair as base-10 strings.
type Amounts struct {
	Min          string `yaml:"min" json:"min"`
	Max          string `yaml:"max" json:"max"`
	Test         string `yaml:"test" json:"test"`
	Insufficient string `yaml:"insufficient" json:"insufficient"`
	Overflow1    string `yaml:"overflow_1" json:"overflow_1"`
	Overflow2    string `yaml:"overflow_2" json:"overflow_2"`
	Overflow3    string `yaml:"overflow_3" json:"overflow_3"`
}

// Native holds native-word equivalents of the amounts that fit one.
type Native struct {
	Min  uint64 `yaml:"min" json:"min"`
	Max  uint64 `yaml:"max" json:"max"`
	Test uint64 `yaml:"test" json:"test"`
}

// Deposit is the deposit relayed for the test amount.
type Deposit struct {
	Sender        string `yaml:"sender" json:"sender"`
	Recipient     string `yaml:"recipient" json:"recipient"`
	MessageAmount uint64 `yaml:"message_amount" json:"message_amount"`
	Nonce         string `yaml:"nonce" json:"nonce"`
	Data          string `yaml:"data" json:"data"`
}

// Fixture is the generated data for one configured token.
type Fixture struct {
	Name            string  `yaml:"name" json:"name"`
	BridgedDecimals uint8   `yaml:"bridged_decimals" json:"bridged_decimals"`
	LocalDecimals   uint8   `yaml:"local_decimals" json:"local_decimals"`
	ScalingFactor   string  `yaml:"scaling_factor" json:"scaling_factor"`
	Direction       string  `yaml:"direction" json:"direction"`
	Amounts         Amounts `yaml:"amounts" json:"amounts"`
	// Units are Amounts expressed in whole bridged tokens.
	Units   Amounts `yaml:"units" json:"units"`
	Native  Native  `yaml:"native" json:"native"`
	Deposit Deposit `yaml:"deposit" json:"deposit"`
}

// Coin is a gas coin funding the test wallet.
type Coin struct {
	Owner   string `yaml:"owner" json:"owner"`
	AssetID string `yaml:"asset_id" json:"asset_id"`
	Amount  uint64 `yaml:"amount" json:"amount"`
}

// Set is the document written by Write.
type Set struct {
	Wallet   string    `yaml:"wallet" json:"wallet"`
	Coins    []Coin    `yaml:"coins" json:"coins"`
	Fixtures []Fixture `yaml:"fixtures" json:"fixtures"`
}
