// Package adjustment computes the decimal adjustment between a bridged token and its local
// representation, together with the boundary amounts used to drive bridge deposit and withdrawal
// test scenarios.
//
// Amounts live in a 256-bit unsigned domain while the chain running the bridge stores balances in a
// single 64-bit word. Every derivation reports overflow instead of wrapping.
package adjustment

import (
	"errors"
	"fmt"
	"math"

	"github.com/holiman/uint256"

	apperrors "github.com/chainsafe/bridge-fixtures/pkg/app/errors"
)

var (
	// ErrInvalidDecimalGap is returned when the difference between the two precisions cannot be
	// represented in 256 bits, or leaves no amount representable on the native side.
	ErrInvalidDecimalGap = errors.New("invalid decimal gap")
	// ErrUnderflow is returned when the insufficient amount would wrap below zero.
	ErrUnderflow = errors.New("insufficient amount underflow")
	// ErrNativeOverflow is returned when an amount does not fit the 64-bit native word.
	ErrNativeOverflow = errors.New("amount exceeds native word")
)

// Direction tells how the scaling factor converts a local (native) amount into the bridged
// representation.
type Direction int

const (
	// Multiply means the bridged token has more decimals: bridged = native * factor.
	Multiply Direction = iota
	// Divide means the bridged token has fewer decimals: bridged = native / factor.
	Divide
)

func (d Direction) String() string {
	switch d {
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

var (
	one           = uint256.NewInt(1)
	ten           = uint256.NewInt(10)
	maxNativeWord = uint256.NewInt(math.MaxUint64)
	pow160        = new(uint256.Int).Lsh(one, 160)
	pow224        = new(uint256.Int).Lsh(one, 224)
)

// Adjustment is the immutable result of New. Accessors return copies.
type Adjustment struct {
	bridgedDecimals uint8
	localDecimals   uint8

	factor    *uint256.Int
	direction Direction

	min          *uint256.Int
	max          *uint256.Int
	test         *uint256.Int
	insufficient *uint256.Int
	overflow1    *uint256.Int
	overflow2    *uint256.Int
	overflow3    *uint256.Int
}

// New computes the adjustment for a token with bridgedDecimals on its native chain and
// localDecimals on the bridge side.
//
// When both precisions are equal the boundaries collapse to min = max = 1. That case is kept as a
// degenerate fixture and does not describe the full native range.
func New(bridgedDecimals, localDecimals uint8) (*Adjustment, error) {
	a := &Adjustment{
		bridgedDecimals: bridgedDecimals,
		localDecimals:   localDecimals,
		factor:          uint256.NewInt(1),
		direction:       Multiply,
	}

	switch {
	case bridgedDecimals > localDecimals:
		factor, err := pow10(bridgedDecimals - localDecimals)
		if err != nil {
			return nil, err
		}
		maxAmount, overflow := new(uint256.Int).MulOverflow(maxNativeWord, factor)
		if overflow {
			return nil, gapError(bridgedDecimals, localDecimals, "maximum amount exceeds 256 bits")
		}
		a.factor = factor
		a.min = factor.Clone()
		a.max = maxAmount
	case bridgedDecimals < localDecimals:
		factor, err := pow10(localDecimals - bridgedDecimals)
		if err != nil {
			return nil, err
		}
		if factor.Gt(maxNativeWord) {
			return nil, gapError(bridgedDecimals, localDecimals, "no amount representable on the native side")
		}
		a.factor = factor
		a.direction = Divide
		a.min = uint256.NewInt(1)
		a.max = new(uint256.Int).Div(maxNativeWord, factor)
	default:
		a.min = uint256.NewInt(1)
		a.max = uint256.NewInt(1)
	}

	sum, overflow := new(uint256.Int).AddOverflow(a.min, a.max)
	if overflow {
		return nil, gapError(bridgedDecimals, localDecimals, "test amount exceeds 256 bits")
	}
	a.test = sum.Rsh(sum, 1)

	if a.min.IsZero() {
		return nil, apperrors.GeneralError(fmt.Errorf("%w: minimum amount is zero", ErrUnderflow))
	}
	a.insufficient = new(uint256.Int).Sub(a.min, one)

	var err error
	if a.overflow1, err = addChecked(a, one); err != nil {
		return nil, err
	}
	if a.overflow2, err = addChecked(a, pow160); err != nil {
		return nil, err
	}
	if a.overflow3, err = addChecked(a, pow224); err != nil {
		return nil, err
	}

	return a, nil
}

// MustNew is like New but panics on error. Intended for test fixtures with constant inputs.
func MustNew(bridgedDecimals, localDecimals uint8) *Adjustment {
	a, err := New(bridgedDecimals, localDecimals)
	if err != nil {
		panic(err)
	}
	return a
}

// Pair is a (bridged, local) decimal precision pair.
type Pair struct {
	Bridged uint8
	Local   uint8
}

// Matrix computes one adjustment per pair, in order. It stops at the first invalid pair.
func Matrix(pairs []Pair) ([]*Adjustment, error) {
	out := make([]*Adjustment, 0, len(pairs))
	for _, p := range pairs {
		a, err := New(p.Bridged, p.Local)
		if err != nil {
			return nil, fmt.Errorf("pair (%d, %d): %w", p.Bridged, p.Local, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// BridgedDecimals returns the precision of the token on its native chain.
func (a *Adjustment) BridgedDecimals() uint8 { return a.bridgedDecimals }

// LocalDecimals returns the precision of the local representation.
func (a *Adjustment) LocalDecimals() uint8 { return a.localDecimals }

// Direction returns how the factor is applied when going from native to bridged amounts.
func (a *Adjustment) Direction() Direction { return a.direction }

// ScalingFactor returns 10^|bridged - local|.
func (a *Adjustment) ScalingFactor() *uint256.Int { return a.factor.Clone() }

// MinAmount returns the smallest bridged amount that maps to a whole native unit.
func (a *Adjustment) MinAmount() *uint256.Int { return a.min.Clone() }

// MaxAmount returns the largest bridged amount representable by the native word.
func (a *Adjustment) MaxAmount() *uint256.Int { return a.max.Clone() }

// TestAmount returns the floor midpoint of min and max.
func (a *Adjustment) TestAmount() *uint256.Int { return a.test.Clone() }

// InsufficientAmount returns min - 1.
func (a *Adjustment) InsufficientAmount() *uint256.Int { return a.insufficient.Clone() }

// OverflowAmount1 returns max + 1.
func (a *Adjustment) OverflowAmount1() *uint256.Int { return a.overflow1.Clone() }

// OverflowAmount2 returns max + 2^160.
func (a *Adjustment) OverflowAmount2() *uint256.Int { return a.overflow2.Clone() }

// OverflowAmount3 returns max + 2^224.
func (a *Adjustment) OverflowAmount3() *uint256.Int { return a.overflow3.Clone() }

// ToNative converts a bridged amount into the 64-bit native word. For Multiply the amount is
// divided by the factor and any remainder is dropped; for Divide it is multiplied. A result that
// does not fit 64 bits returns ErrNativeOverflow.
func (a *Adjustment) ToNative(amount *uint256.Int) (uint64, error) {
	if amount == nil {
		return 0, apperrors.BadRequestError(errors.New("nil amount"), "amount is required")
	}

	var native *uint256.Int
	switch a.direction {
	case Divide:
		product, overflow := new(uint256.Int).MulOverflow(amount, a.factor)
		if overflow {
			return 0, nativeOverflowError(amount)
		}
		native = product
	default:
		native = new(uint256.Int).Div(amount, a.factor)
	}

	if !native.IsUint64() {
		return 0, nativeOverflowError(amount)
	}
	return native.Uint64(), nil
}

// FromNative converts a native word back into the bridged representation. For Divide the
// remainder of the division is dropped.
func (a *Adjustment) FromNative(word uint64) *uint256.Int {
	native := uint256.NewInt(word)
	if a.direction == Divide {
		return native.Div(native, a.factor)
	}
	// (2^64-1) * factor was checked in New, so any word fits.
	return native.Mul(native, a.factor)
}

func pow10(exp uint8) (*uint256.Int, error) {
	result := uint256.NewInt(1)
	for i := uint8(0); i < exp; i++ {
		var overflow bool
		if result, overflow = result.MulOverflow(result, ten); overflow {
			return nil, apperrors.BadRequestError(
				fmt.Errorf("%w: 10^%d exceeds 256 bits", ErrInvalidDecimalGap, exp),
				"decimal gap too large",
			)
		}
	}
	return result, nil
}

func addChecked(a *Adjustment, delta *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.max, delta)
	if overflow {
		return nil, gapError(a.bridgedDecimals, a.localDecimals, "overflow amount exceeds 256 bits")
	}
	return sum, nil
}

func gapError(bridged, local uint8, reason string) error {
	return apperrors.BadRequestError(
		fmt.Errorf("%w: bridged=%d local=%d: %s", ErrInvalidDecimalGap, bridged, local, reason),
		"decimal gap too large",
	)
}

func nativeOverflowError(amount *uint256.Int) error {
	return apperrors.BadRequestError(
		fmt.Errorf("%w: %s", ErrNativeOverflow, amount.Dec()),
		"amount does not fit the native word",
	)
}
