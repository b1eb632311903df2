// Package wallet provides the deterministic secp256k1 wallet used by bridge integration tests,
// along with the synthetic coins and inbound messages that fund it.
package wallet

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"
)

// DefaultSeed is the seed of the wallet shared by the bridge integration tests.
const DefaultSeed uint64 = 8320147306839812359

// secretKeySize is the size of a secp256k1 secret key
const secretKeySize = 32

// Wallet is a signing key with its derived address.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// Deterministic builds a wallet whose secret key is the seed encoded big-endian into the last
// eight bytes of an otherwise zero 32-byte key.
func Deterministic(seed uint64) (*Wallet, error) {
	secret := make([]byte, secretKeySize)
	binary.BigEndian.PutUint64(secret[secretKeySize-8:], seed)
	return FromPrivateKey(secret)
}

// Default returns the wallet for DefaultSeed.
func Default() *Wallet {
	w, err := Deterministic(DefaultSeed)
	if err != nil {
		// DefaultSeed is a valid scalar.
		panic(err)
	}
	return w
}

// FromPrivateKey builds a wallet from a raw 32-byte secret key.
func FromPrivateKey(secret []byte) (*Wallet, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Derive deterministically derives another wallet from this one, keyed by label. Tests use it
// for recipients and secondary senders that must stay stable between runs.
// Uses HKDF with SHA-256 over the secret key.
func (w *Wallet) Derive(label string) (*Wallet, error) {
	reader := hkdf.New(sha256.New, crypto.FromECDSA(w.key), nil, []byte("bridge-fixture-"+label))

	secret := make([]byte, secretKeySize)
	if _, err := io.ReadFull(reader, secret); err != nil {
		return nil, fmt.Errorf("failed to derive key seed: %w", err)
	}
	return FromPrivateKey(secret)
}

// Address returns the wallet address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// Owner returns the address right-aligned in a 32-byte word, the layout used by message fields.
func (w *Wallet) Owner() [32]byte {
	return common.BytesToHash(w.address.Bytes())
}

// PublicKey returns the 33-byte compressed public key.
func (w *Wallet) PublicKey() []byte {
	return crypto.CompressPubkey(&w.key.PublicKey)
}

// PrivateKeyHex returns the private key as a hex string with 0x prefix
func (w *Wallet) PrivateKeyHex() string {
	return fmt.Sprintf("0x%x", crypto.FromECDSA(w.key))
}

// SignHash signs a 32-byte hash and returns the 65-byte [R || S || V] signature.
func (w *Wallet) SignHash(hash []byte) ([]byte, error) {
	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return sig, nil
}

// SignMessage hashes the message with keccak256 and signs it.
func (w *Wallet) SignMessage(message []byte) ([]byte, error) {
	return w.SignHash(crypto.Keccak256(message))
}

// VerifySignature reports whether sig over hash was produced by address.
func VerifySignature(address common.Address, hash, sig []byte) bool {
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*pub) == address
}
