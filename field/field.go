// Package field wraps the finite field F that the Keccak arithmetization
// builder evaluates its permutation polynomials over.
//
// The builder core treats F abstractly: a prime field of characteristic p
// with a known generator and two non-residue coset multipliers k1, k2
// (github.com/markkurossi/mpc's ot/mpint and compiler/mpa packages wrap
// math/big the same way for their own multi-precision arithmetic; here the
// modulus is fixed to BN254's scalar field, so we wrap gnark-crypto's
// fr.Element instead of reimplementing modular arithmetic on big.Int).
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a field element. It is a type alias so callers can use
// gnark-crypto's fr.Element methods directly when they need to.
type Element = fr.Element

// generator is a known generator of the BN254 scalar field's
// multiplicative group, used to derive primitive roots of unity for
// power-of-two subgroups.
var generator = FromUint64(5)

// FromUint64 builds a field element from a small unsigned integer.
func FromUint64(x uint64) Element {
	var e Element
	e.SetUint64(x)
	return e
}

// FromDecimalString parses a decimal string into a field element,
// reducing modulo the field characteristic the same way gnark-crypto's
// SetBigInt does.
func FromDecimalString(s string) (Element, error) {
	var e Element
	var asBigInt big.Int
	if _, ok := asBigInt.SetString(s, 10); !ok {
		return e, fmt.Errorf("field: invalid decimal string %q", s)
	}
	e.SetBigInt(&asBigInt)
	return e, nil
}

// Mul returns a*b.
func Mul(a, b Element) Element {
	var r Element
	r.Mul(&a, &b)
	return r
}

// ToDecimalString renders a field element in the decimal form the
// polynomial JSON document (spec §6) requires.
func ToDecimalString(e Element) string {
	return e.String()
}

// K1 is the first non-residue coset multiplier, matching the original
// source's choice of 2.
func K1() Element {
	return FromUint64(2)
}

// K2 is the second non-residue coset multiplier, matching the original
// source's choice of 3.
func K2() Element {
	return FromUint64(3)
}

// MaxK is the largest subgroup order (as a power of two exponent) this
// field's multiplicative group supports. BN254's scalar field minus one
// is divisible by 2^28 and no higher power of two.
const MaxK = 28

// PrimitiveRoot returns a generator g of the unique subgroup of order
// 2^k of F's multiplicative group, i.e. g^(2^k) == 1 and
// g^(2^(k-1)) != 1. It corresponds to the original source's
// GetPolsIdentityConstant(parity) lookup table, computed instead of
// hard-coded so any k up to MaxK works.
func PrimitiveRoot(k uint64) (Element, error) {
	if k == 0 {
		return FromUint64(1), nil
	}
	if k > MaxK {
		return Element{}, fmt.Errorf("field: no subgroup of order 2^%d (max is 2^%d)", k, MaxK)
	}

	modulus := fr.Modulus()
	pMinus1 := new(big.Int).Sub(modulus, big.NewInt(1))

	exponent := new(big.Int).Rsh(pMinus1, uint(MaxK))
	// root is a generator of the full 2^MaxK subgroup.
	var root Element
	root.Exp(generator, exponent)

	// Raise to the power 2^(MaxK-k) to land on the order-2^k subgroup.
	shrink := new(big.Int).Lsh(big.NewInt(1), uint(MaxK-k))
	var result Element
	result.Exp(root, shrink)

	var one Element
	one.SetOne()
	if result.Equal(&one) {
		return Element{}, fmt.Errorf("field: degenerate root for k=%d", k)
	}
	var check Element
	check.Exp(result, big.NewInt(1<<k))
	if !check.Equal(&one) {
		return Element{}, fmt.Errorf("field: computed element is not a 2^%d-th root of unity", k)
	}

	return result, nil
}
