package gate

import "fmt"

// OP is the operator-insertion primitive every gate in the arena is
// bound through (spec §4.D). Every precondition failure is an invariant
// breach and panics with a diagnostic naming the offending refs, matching
// the original source's zkassert calls and this repo's chosen panic
// convention for unrecoverable invariant violations (see
// compiler/circuits/wire.go's SetInput/SetNumOutputs in the teacher
// repo, which panic rather than return an error for the same class of
// "this should be structurally impossible" condition).
func (b *Builder) OP(kind Kind, refA Ref, pinA Pin, refB Ref, pinB Pin, refR Ref) {
	if refA >= b.maxRefs || refB >= b.maxRefs || refR >= b.maxRefs {
		panic(fmt.Sprintf("gate: OP ref out of range (refA=%d refB=%d refR=%d maxRefs=%d)",
			refA, refB, refR, b.maxRefs))
	}
	if pinA < PinA || pinA > PinOutput || pinB < PinA || pinB > PinOutput {
		panic(fmt.Sprintf("gate: OP invalid pin (pinA=%v pinB=%v)", pinA, pinB))
	}
	if b.gates[refA].Bit[pinA] > 1 || b.gates[refB].Bit[pinB] > 1 || b.gates[refR].Bit[PinOutput] > 1 {
		panic(fmt.Sprintf("gate: OP non-binary bit (refA=%d.%v refB=%d.%v refR=%d.output)",
			refA, pinA, refB, pinB, refR))
	}
	if refA != refR && refB != refR && b.gates[refR].Kind != Unknown {
		panic(fmt.Sprintf("gate: OP re-binding already-bound gate refR=%d (kind=%v)",
			refR, b.gates[refR].Kind))
	}
	if kind != XOR && kind != AndNot && kind != XORNorm {
		panic(fmt.Sprintf("gate: OP invalid kind %d", int(kind)))
	}

	gA := &b.gates[refA]
	gB := &b.gates[refB]

	// Carry-aware demotion: the only place XOR-chain carry overflow is
	// prevented (spec §4.D).
	if kind == XOR && gA.Value+gB.Value >= uint64(1)<<(b.maxCarryBits+1) {
		kind = XORNorm
	}

	gR := &b.gates[refR]
	gR.RefA, gR.RefB, gR.RefR = refA, refB, refR
	gR.PinA, gR.PinB = pinA, pinB
	gR.Kind = kind

	switch kind {
	case XOR, XORNorm:
		gR.Bit[PinOutput] = gA.Bit[pinA] ^ gB.Bit[pinB]
	case AndNot:
		gR.Bit[PinOutput] = (1 - gA.Bit[pinA]) & gB.Bit[pinB]
	}

	switch kind {
	case XOR:
		b.xors++
		gR.Value = gA.Value + gB.Value
		if gR.Value > gR.MaxValue {
			gR.MaxValue = gR.Value
		}
		if gR.MaxValue > b.totalMaxValue {
			b.totalMaxValue = gR.MaxValue
		}
	case AndNot:
		b.andps++
		gR.Value = 1
	case XORNorm:
		b.xorns++
		gR.Value = 1
	}

	// Fan-out update. Self-referential operands are only legal for the
	// ZeroRef/OneRef bootstrap and must be skipped to avoid self-loops
	// in the permutation graph (spec §4.D).
	if refA != refR {
		gA.FanOut++
		gA.ConnectionsToA = append(gA.ConnectionsToA, refR)
	}
	if refB != refR {
		gB.FanOut++
		gB.ConnectionsToB = append(gB.ConnectionsToB, refR)
	}

	b.evals = append(b.evals, refR)
}

// XOR wraps OP(XOR, ...).
func (b *Builder) XOR(refA Ref, pinA Pin, refB Ref, pinB Pin, refR Ref) {
	b.OP(XOR, refA, pinA, refB, pinB, refR)
}

// ANDP wraps OP(AND_NOT, ...): refR = (NOT gate[refA].pinA) AND gate[refB].pinB.
func (b *Builder) ANDP(refA Ref, pinA Pin, refB Ref, pinB Pin, refR Ref) {
	b.OP(AndNot, refA, pinA, refB, pinB, refR)
}

// XORN wraps OP(XOR_NORM, ...): semantically identical to XOR on the
// bit, but always resets the carry value to 1.
func (b *Builder) XORN(refA Ref, pinA Pin, refB Ref, pinB Pin, refR Ref) {
	b.OP(XORNorm, refA, pinA, refB, pinB, refR)
}

// GetFreeRef returns the next free arena slot and advances the
// allocator. Arena exhaustion is fatal (spec §7): maxRefs is a
// build-time sizing parameter and a correctly-sized arena never
// exhausts for a given round count.
func (b *Builder) GetFreeRef() Ref {
	if b.nextRef >= b.maxRefs {
		panic(fmt.Sprintf("gate: arena exhausted (nextRef=%d maxRefs=%d)", b.nextRef, b.maxRefs))
	}
	r := b.nextRef
	b.nextRef++
	return r
}
