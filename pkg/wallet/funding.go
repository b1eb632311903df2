package wallet

import (
	"errors"
	"fmt"

	apperrors "github.com/chainsafe/bridge-fixtures/pkg/app/errors"
)

const (
	// DefaultCoinAmount is the amount of each gas coin handed to the test wallet.
	DefaultCoinAmount uint64 = 1_000_000_000
	// DefaultDepositMessageAmount is the base asset amount carried by a deposit message.
	DefaultDepositMessageAmount uint64 = 100
	// DefaultMessageSender is the bridge contract on the remote chain, as a 32-byte word.
	DefaultMessageSender = "0x00000000000000000000000096c53cd98B7297564716a8f2E1de2C83928Af2fe"
	// MaxMessages is the number of distinct nonces BuildMessages can hand out.
	MaxMessages = 256
)

// ErrTooManyMessages is returned when more messages are requested than nonces exist.
var ErrTooManyMessages = errors.New("too many messages")

// CoinSpec requests one coin of Amount for AssetID.
type CoinSpec struct {
	Amount  uint64
	AssetID [32]byte
}

// Coin is a spendable coin owned by the wallet.
type Coin struct {
	Owner   [32]byte
	AssetID [32]byte
	Amount  uint64
}

// MessageSpec requests one inbound message carrying Amount of the base asset and Data.
type MessageSpec struct {
	Amount uint64
	Data   []byte
}

// Message is an inbound cross-chain message ready to be placed in the genesis state.
type Message struct {
	Sender    [32]byte
	Recipient [32]byte
	Amount    uint64
	Nonce     [32]byte
	Data      []byte
}

// IsCoin reports whether the message only carries value.
func (m Message) IsCoin() bool {
	return len(m.Data) == 0
}

// Coins returns one coin per spec, owned by the wallet.
func (w *Wallet) Coins(specs []CoinSpec) []Coin {
	owner := w.Owner()
	coins := make([]Coin, 0, len(specs))
	for _, s := range specs {
		coins = append(coins, Coin{
			Owner:   owner,
			AssetID: s.AssetID,
			Amount:  s.Amount,
		})
	}
	return coins
}

// BuildMessages creates one message per spec from sender to recipient. Nonces start at zero and
// differ in their first byte.
func BuildMessages(sender, recipient [32]byte, specs []MessageSpec) ([]Message, error) {
	if len(specs) > MaxMessages {
		return nil, apperrors.BadRequestError(
			fmt.Errorf("%w: %d requested, at most %d", ErrTooManyMessages, len(specs), MaxMessages),
			"too many messages",
		)
	}

	var nonce [32]byte
	messages := make([]Message, 0, len(specs))
	for _, s := range specs {
		data := make([]byte, len(s.Data))
		copy(data, s.Data)
		messages = append(messages, Message{
			Sender:    sender,
			Recipient: recipient,
			Amount:    s.Amount,
			Nonce:     nonce,
			Data:      data,
		})
		nonce[0]++
	}
	return messages, nil
}
