package gate

import "fmt"

// SetRin writes the 1088-bit input block into the Sin region's B pins,
// ready for MixRin to fold in. rin holds one bit per entry (0 or 1), not
// packed bytes, matching the original source's setRin which indexes
// pRin[i] as a single bit despite the uint8_t element type.
func (b *Builder) SetRin(rin [RinBits]uint8) {
	for i := 0; i < RinBits; i++ {
		if rin[i] > 1 {
			panic(fmt.Sprintf("gate: SetRin non-binary bit at %d: %d", i, rin[i]))
		}
		b.gates[SinRef0+Ref(i)].Bit[PinB] = rin[i]
	}
}

// MixRin folds the previously-set Rin bits into the first RinBits state
// bits in place, and re-stamps the remaining capacity bits as bound
// gates so every state position is a bound gate before the permutation
// runs (spec §4.E).
func (b *Builder) MixRin() {
	for i := Ref(0); i < RinBits; i++ {
		b.OP(XOR, SinRef0+i, PinA, SinRef0+i, PinB, SinRef0+i)
	}
	for i := SinRef0 + RinBits; i < SinRef0+StateBits; i++ {
		b.OP(XOR, i, PinA, ZeroRef, PinOutput, i)
	}
}

// GetOutput packs the low 256 bits of the Sin state's A pins into a
// 32-byte digest, 8 bits per output byte, matching the original source's
// bits2byte convention (LSB-first: bit j of gate SinRef0+8i+j becomes
// bit j of out[i]).
func (b *Builder) GetOutput(out *[32]byte) {
	for i := 0; i < 32; i++ {
		var v byte
		for j := 0; j < 8; j++ {
			if b.gates[SinRef0+Ref(i*8+j)].Bit[PinA] != 0 {
				v |= 1 << uint(j)
			}
		}
		out[i] = v
	}
}

// CopySoutRefsToSinRefs copies the Sout reference table onto the Sin
// reference table (an index copy only, no bit values move).
func (b *Builder) CopySoutRefsToSinRefs() {
	b.sinRefs = b.soutRefs
}

// CopySoutToSinAndResetRefs reads the 1600 output bits named by
// SoutRefs, discards every gate in the arena by resetting it, and
// writes the buffered bits back as the fresh Sin gates' A pins. This
// does not re-bind the fresh Sin gates via OP; callers that need every
// state bit to be a bound gate must call MixRin next, exactly as the
// original source's sequencing requires (spec §9).
func (b *Builder) CopySoutToSinAndResetRefs() {
	var local [StateBits]byte
	for i := 0; i < StateBits; i++ {
		local[i] = b.gates[b.soutRefs[i]].Bit[PinOutput]
	}
	b.resetBitsAndCounters()
	for i := 0; i < StateBits; i++ {
		b.gates[SinRef0+Ref(i)].Bit[PinA] = local[i]
	}
}

// SinRefs returns a copy of the current Sin reference table.
func (b *Builder) SinRefs() [StateBits]Ref {
	return b.sinRefs
}

// SoutRefs returns a copy of the current Sout reference table.
func (b *Builder) SoutRefs() [StateBits]Ref {
	return b.soutRefs
}
