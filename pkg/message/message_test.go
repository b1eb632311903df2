package message

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/bridge-fixtures/pkg/app/errors"
)

func word(b byte) [WordSize]byte {
	var w [WordSize]byte
	for i := range w {
		w[i] = b
	}
	return w
}

func TestDecodeHex(t *testing.T) {
	got, err := DecodeHex("0x00ff10")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, got)

	got, err = DecodeHex("abcd")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xab, 0xcd}, got)

	got, err = DecodeHex("0x")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"0x123", "0xzz", "hello"} {
		_, err := DecodeHex(bad)
		assert.ErrorIs(t, err, ErrInvalidHex, bad)
		assert.True(t, apperrors.Is(err, apperrors.CategoryDataError), bad)
	}
}

func TestParseBytes32(t *testing.T) {
	w, err := ParseBytes32("0x96c53cd98B7297564716a8f2E1de2C83928Af2fe")
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 12), w[:12])
	assert.Equal(t, "96c53cd98b7297564716a8f2e1de2c83928af2fe", hex.EncodeToString(w[12:]))

	_, err = ParseBytes32("0x" + hex.EncodeToString(make([]byte, 33)))
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestEncodeAmount(t *testing.T) {
	w := EncodeAmount(uint256.NewInt(0x0102))
	assert.Equal(t, byte(0x01), w[30])
	assert.Equal(t, byte(0x02), w[31])
	assert.Equal(t, make([]byte, 30), w[:30])

	assert.Equal(t, [WordSize]byte{}, EncodeAmount(nil))
}

func TestKeccak256(t *testing.T) {
	// keccak256("") is a well-known constant.
	h := Keccak256(nil)
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(h[:]))
	assert.Equal(t, Keccak256([]byte(DepositToContractTag))[0], DepositToContractFlag())
}

func TestPrefixContractID(t *testing.T) {
	id := word(0xaa)
	out := PrefixContractID(id, []byte{1, 2, 3})
	require.Len(t, out, WordSize+3)
	assert.Equal(t, id[:], out[:WordSize])
	assert.Equal(t, []byte{1, 2, 3}, out[WordSize:])
}

func TestBuildDepositData(t *testing.T) {
	contractID := word(0x01)
	d := Deposit{
		Token:  word(0x02),
		From:   word(0x03),
		To:     word(0x04),
		Amount: uint256.NewInt(1000),
	}

	data := BuildDepositData(contractID, d)
	require.Len(t, data, 5*WordSize)
	assert.Equal(t, contractID[:], data[0:32])
	assert.Equal(t, d.Token[:], data[32:64])
	assert.Equal(t, d.From[:], data[64:96])
	assert.Equal(t, d.To[:], data[96:128])
	amount := new(uint256.Int).SetBytes32(data[128:160])
	assert.True(t, amount.Eq(d.Amount), "amount %s", amount.Dec())

	d.DepositToContract = true
	d.ExtraData = []byte{0xde, 0xad}
	data = BuildDepositData(contractID, d)
	require.Len(t, data, 5*WordSize+3)
	assert.Equal(t, DepositToContractFlag(), data[5*WordSize])
	assert.True(t, bytes.Equal([]byte{0xde, 0xad}, data[5*WordSize+1:]))
}

func TestParseWithdrawalData(t *testing.T) {
	to, token := word(0x11), word(0x22)
	amount := EncodeAmount(uint256.NewInt(42))

	data := []byte{0xca, 0xfe, 0xba, 0xbe}
	data = append(data, to[:]...)
	data = append(data, token[:]...)
	data = append(data, amount[:]...)
	data = append(data, 0xff) // trailing bytes ignored

	w, err := ParseWithdrawalData(data)
	require.NoError(t, err)
	assert.Equal(t, [SelectorSize]byte{0xca, 0xfe, 0xba, 0xbe}, w.Selector)
	assert.Equal(t, to, w.To)
	assert.Equal(t, token, w.Token)
	assert.Equal(t, uint64(42), w.Amount.Uint64())

	_, err = ParseWithdrawalData(data[:WithdrawalSize-1])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortData))
}
