// Package message builds the inbound deposit payloads relayed to the bridge contract and parses
// the outbound withdrawal payloads it emits.
package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	apperrors "github.com/chainsafe/bridge-fixtures/pkg/app/errors"
)

// WordSize is the size of every fixed field in a bridge message.
const WordSize = 32

// SelectorSize is the size of the function selector leading a withdrawal message.
const SelectorSize = 4

// WithdrawalSize is the minimum length of a withdrawal payload.
const WithdrawalSize = SelectorSize + 3*WordSize

// DepositToContractTag marks deposits whose recipient is a contract.
const DepositToContractTag = "DEPOSIT_TO_CONTRACT"

var (
	// ErrInvalidHex is returned for malformed hex input.
	ErrInvalidHex = errors.New("invalid hex")
	// ErrShortData is returned when a payload is shorter than its layout.
	ErrShortData = errors.New("message data too short")
)

// Deposit describes the body of an inbound deposit message.
type Deposit struct {
	Token             [WordSize]byte
	From              [WordSize]byte
	To                [WordSize]byte
	Amount            *uint256.Int
	DepositToContract bool
	ExtraData         []byte
}

// Withdrawal is the decoded body of an outbound withdrawal message.
type Withdrawal struct {
	Selector [SelectorSize]byte
	To       [WordSize]byte
	Token    [WordSize]byte
	Amount   *uint256.Int
}

// Keccak256 hashes data.
func Keccak256(data []byte) [WordSize]byte {
	return crypto.Keccak256Hash(data)
}

// DepositToContractFlag is the single byte appended to deposits sent to a contract.
func DepositToContractFlag() byte {
	h := Keccak256([]byte(DepositToContractTag))
	return h[0]
}

// DecodeHex decodes a hex string with or without the 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, apperrors.BadRequestError(fmt.Errorf("%w: %v", ErrInvalidHex, err), "invalid hex")
	}
	return b, nil
}

// ParseBytes32 decodes a hex value of at most 32 bytes and left-pads it to a word. EVM addresses
// become right-aligned 32-byte values.
func ParseBytes32(s string) ([WordSize]byte, error) {
	var out [WordSize]byte
	b, err := DecodeHex(s)
	if err != nil {
		return out, err
	}
	if len(b) > WordSize {
		return out, apperrors.BadRequestError(
			fmt.Errorf("%w: %d bytes exceed a %d byte word", ErrInvalidHex, len(b), WordSize),
			"value too long",
		)
	}
	return common.BytesToHash(b), nil
}

// EncodeAmount returns amount as a big-endian 32-byte word.
func EncodeAmount(amount *uint256.Int) [WordSize]byte {
	if amount == nil {
		return [WordSize]byte{}
	}
	return amount.Bytes32()
}

// PrefixContractID returns contractID followed by data.
func PrefixContractID(contractID [WordSize]byte, data []byte) []byte {
	out := make([]byte, 0, WordSize+len(data))
	out = append(out, contractID[:]...)
	return append(out, data...)
}

// BuildDepositData lays out a deposit message as
// contractID | token | from | to | amount | [flag] | extra.
func BuildDepositData(contractID [WordSize]byte, d Deposit) []byte {
	body := make([]byte, 0, 4*WordSize+1+len(d.ExtraData))
	body = append(body, d.Token[:]...)
	body = append(body, d.From[:]...)
	body = append(body, d.To[:]...)
	amount := EncodeAmount(d.Amount)
	body = append(body, amount[:]...)
	if d.DepositToContract {
		body = append(body, DepositToContractFlag())
	}
	body = append(body, d.ExtraData...)
	return PrefixContractID(contractID, body)
}

// ParseWithdrawalData decodes selector | to | token | amount. Trailing bytes are ignored.
func ParseWithdrawalData(data []byte) (*Withdrawal, error) {
	if len(data) < WithdrawalSize {
		return nil, apperrors.BadRequestError(
			fmt.Errorf("%w: got %d bytes, need %d", ErrShortData, len(data), WithdrawalSize),
			"withdrawal message too short",
		)
	}

	w := &Withdrawal{}
	off := copy(w.Selector[:], data)
	off += copy(w.To[:], data[off:])
	off += copy(w.Token[:], data[off:])
	w.Amount = new(uint256.Int).SetBytes32(data[off : off+WordSize])
	return w, nil
}
