// Package pols builds the polynomial witness layout (spec §4.G): four
// parallel field-valued arrays (a, b, r, op) over a power-of-two
// evaluation domain, with the circuit's connection cycles baked in as a
// rotation permutation.
//
// The coset construction (a generator-derived subgroup plus two
// non-residue-multiplier cosets) is grounded on gnark's PLONK setup code
// (getSupportPermutation/computePermutationPolynomials in the reference
// pack's BaoNinh2808-gnark backend/plonk/bls12-377/setup.go), which builds
// exactly <g> || u<g> || u^2<g> for its permutation argument.
package pols

import (
	"fmt"

	"github.com/markkurossi/keccakarith/field"
	"github.com/markkurossi/keccakarith/gate"
)

// Doc is the polynomial document §4.G/§6 emits. Field elements are
// decimal strings, as the JSON schema requires.
type Doc struct {
	A  []string `json:"a"`
	B  []string `json:"b"`
	R  []string `json:"r"`
	Op []int    `json:"op"`
}

// Layout builds the (a, b, r, op) polynomials for the gates bound in b,
// tiled across a domain of size 2^k.
//
// numberOfSlots = 2^k / nextRef (integer division); any trailing
// entries beyond numberOfSlots*nextRef keep their Phase 1 default
// values and are never touched by the Phase 2 rotation; this matches
// the original source's savePolsToJson bit-for-bit, including the
// op column's tail asymmetry (see SPEC_FULL.md, Open Question 1).
func Layout(b *gate.Builder, k uint64) (*Doc, error) {
	nextRef := b.NextRef()
	if nextRef == 0 {
		return nil, fmt.Errorf("pols: builder has no bound gates")
	}

	length := uint64(1) << k
	numberOfSlots := length / uint64(nextRef)

	g, err := field.PrimitiveRoot(k)
	if err != nil {
		return nil, fmt.Errorf("pols: %w", err)
	}
	k1 := field.K1()
	k2 := field.K2()

	polA := make([]field.Element, length)
	polB := make([]field.Element, length)
	polR := make([]field.Element, length)
	polOp := make([]int, length)

	// Phase 1: default assignment (spec §4.G Phase 1).
	acc := field.FromUint64(1)
	for i := uint64(0); i < length; i++ {
		if i%1000000 == 0 {
			b.Logf("initializing evaluation %d of %d", i, length)
		}
		acc = field.Mul(acc, g)
		polA[i] = acc
		polB[i] = field.Mul(acc, k1)
		polR[i] = field.Mul(acc, k2)
		polOp[i] = int(b.Kind(gate.Ref(i % uint64(nextRef))))
	}

	// Phase 2: permutation by connection-cycle rotation (spec §4.G
	// Phase 2). Traversal order matters: A-connections before
	// B-connections, both in insertion order.
	for slot := uint64(0); slot < numberOfSlots; slot++ {
		b.Logf("permuting slot %d of %d", slot, numberOfSlots)
		offset := slot * uint64(nextRef)
		for i := uint64(0); i < uint64(nextRef); i++ {
			carry := polR[offset+i]

			for _, t := range b.ConnectionsToA(gate.Ref(i)) {
				idx := offset + uint64(t)
				temp := polA[idx]
				polA[idx] = carry
				carry = temp
			}
			for _, t := range b.ConnectionsToB(gate.Ref(i)) {
				idx := offset + uint64(t)
				temp := polB[idx]
				polB[idx] = carry
				carry = temp
			}

			polR[offset+i] = carry
		}
	}

	doc := &Doc{
		A:  make([]string, length),
		B:  make([]string, length),
		R:  make([]string, length),
		Op: polOp,
	}
	for i := uint64(0); i < length; i++ {
		doc.A[i] = field.ToDecimalString(polA[i])
		doc.B[i] = field.ToDecimalString(polB[i])
		doc.R[i] = field.ToDecimalString(polR[i])
	}

	return doc, nil
}
