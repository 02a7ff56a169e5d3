package field

import (
	"math/big"
	"testing"
)

func TestFromUint64RoundTrip(t *testing.T) {
	for _, x := range []uint64{0, 1, 2, 3, 12345} {
		e := FromUint64(x)
		got := ToDecimalString(e)
		want := big.NewInt(0).SetUint64(x).String()
		if got != want {
			t.Errorf("FromUint64(%d): got %q, want %q", x, got, want)
		}
	}
}

func TestFromDecimalStringInvalid(t *testing.T) {
	if _, err := FromDecimalString("not-a-number"); err == nil {
		t.Error("expected an error for a non-numeric string")
	}
}

func TestFromDecimalStringRoundTrip(t *testing.T) {
	e, err := FromDecimalString("424242")
	if err != nil {
		t.Fatalf("FromDecimalString: %v", err)
	}
	if got, want := ToDecimalString(e), "424242"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMul(t *testing.T) {
	a := FromUint64(6)
	b := FromUint64(7)
	got := ToDecimalString(Mul(a, b))
	if got != "42" {
		t.Errorf("6*7: got %q, want 42", got)
	}
}

func TestK1K2Distinct(t *testing.T) {
	if ToDecimalString(K1()) == ToDecimalString(K2()) {
		t.Error("K1 and K2 must be distinct coset multipliers")
	}
	if ToDecimalString(K1()) != "2" || ToDecimalString(K2()) != "3" {
		t.Errorf("K1=%s K2=%s, want 2 and 3", ToDecimalString(K1()), ToDecimalString(K2()))
	}
}

func TestPrimitiveRootZero(t *testing.T) {
	g, err := PrimitiveRoot(0)
	if err != nil {
		t.Fatalf("PrimitiveRoot(0): %v", err)
	}
	if ToDecimalString(g) != "1" {
		t.Errorf("PrimitiveRoot(0): got %s, want 1", ToDecimalString(g))
	}
}

func TestPrimitiveRootOrder(t *testing.T) {
	for _, k := range []uint64{1, 2, 3, 8} {
		g, err := PrimitiveRoot(k)
		if err != nil {
			t.Fatalf("PrimitiveRoot(%d): %v", k, err)
		}

		// g^(2^k) == 1.
		order := new(big.Int).Lsh(big.NewInt(1), uint(k))
		var full Element
		full.Exp(g, order)
		var one Element
		one.SetOne()
		if !full.Equal(&one) {
			t.Errorf("PrimitiveRoot(%d): g^(2^%d) != 1", k, k)
		}

		// g^(2^(k-1)) != 1 unless k == 0.
		if k > 0 {
			half := new(big.Int).Lsh(big.NewInt(1), uint(k-1))
			var partial Element
			partial.Exp(g, half)
			if partial.Equal(&one) {
				t.Errorf("PrimitiveRoot(%d): g has order dividing 2^%d, not exactly 2^%d", k, k-1, k)
			}
		}
	}
}

func TestPrimitiveRootTooLarge(t *testing.T) {
	if _, err := PrimitiveRoot(MaxK + 1); err == nil {
		t.Errorf("expected an error for k=%d (MaxK=%d)", MaxK+1, MaxK)
	}
}
