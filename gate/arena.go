package gate

import "fmt"

// StateBits is the width of the Keccak-f[1600] state, in bits.
const StateBits = 1600

// RinBits is the width of the sponge rate (1088 bits for Keccak-256's
// r=1088, c=512 parameterization), the portion of the state mixRin folds
// the input block into.
const RinBits = 1088

// Reserved arena references. ZeroRef and OneRef hold constant gates; the
// Sin/Sout regions hold the round's input/output state gates. The
// reserved region is contiguous and disjoint from the dynamic region
// that starts at FirstNextRef, as spec §3 requires.
const (
	ZeroRef      Ref = 0
	OneRef       Ref = 1
	SinRef0      Ref = 2
	SoutRef0         = SinRef0 + StateBits
	FirstNextRef     = SoutRef0 + StateBits
)

// Builder owns the gate arena exclusively for its lifetime: every
// cross-gate reference is a Ref into this arena, never a pointer (spec
// §9's "Source patterns requiring re-architecture": the original C++
// couples gate lifetime to the same heap block the container owns; here
// the arena is the only owner).
type Builder struct {
	gates []Gate

	sinRefs  [StateBits]Ref
	soutRefs [StateBits]Ref

	nextRef Ref
	maxRefs Ref

	maxCarryBits uint64

	xors, andps, xorns uint64
	totalMaxValue      uint64

	evals []Ref

	logf func(format string, args ...interface{})
}

// NewBuilder allocates an arena of maxRefs gates and a carry bound of
// maxCarryBits, then resets it to its initial bootstrap state. Both
// parameters are build-time sizing constants in the original source;
// spec §9 directs exposing them as constructor parameters so tests can
// exercise small cases.
func NewBuilder(maxRefs Ref, maxCarryBits uint64) *Builder {
	if maxRefs <= FirstNextRef {
		panic(fmt.Sprintf("gate: maxRefs %d too small, need > %d", maxRefs, FirstNextRef))
	}
	b := &Builder{
		gates:        make([]Gate, maxRefs),
		maxRefs:      maxRefs,
		maxCarryBits: maxCarryBits,
		logf:         func(string, ...interface{}) {},
	}
	for i := range b.gates {
		b.gates[i].ConnectionsToA = nil
		b.gates[i].ConnectionsToB = nil
	}
	b.resetBitsAndCounters()
	return b
}

// SetLogger installs a progress-reporting callback; the zero value is a
// silent no-op. The teacher repo never adopts a structured logging
// library (it prints straight to stdout from library code, e.g.
// circuit/analyze.go), and the original source prints progress lines
// from inside savePolsToJson; this hook lets a caller opt into the same
// behaviour without the gate package importing an output stream itself.
// pols.Layout calls Logf during its Phase 1/Phase 2 loops, matching the
// original's progress lines in savePolsToJson.
func (b *Builder) SetLogger(logf func(format string, args ...interface{})) {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	b.logf = logf
}

// Logf forwards to the callback installed by SetLogger (a no-op until
// one is installed).
func (b *Builder) Logf(format string, args ...interface{}) {
	b.logf(format, args...)
}

// resetBitsAndCounters restores the arena to its freshly-bootstrapped
// state (spec §4.B).
func (b *Builder) resetBitsAndCounters() {
	for i := range b.gates {
		b.gates[i].reset()
	}
	b.totalMaxValue = 1

	for i := Ref(0); i < StateBits; i++ {
		b.sinRefs[i] = SinRef0 + i
		b.soutRefs[i] = SoutRef0 + i
	}

	b.nextRef = FirstNextRef
	b.xors, b.andps, b.xorns = 0, 0, 0
	b.evals = b.evals[:0]

	b.gates[ZeroRef].Bit[PinA] = 0
	b.gates[ZeroRef].Bit[PinB] = 0
	b.OP(XOR, ZeroRef, PinA, ZeroRef, PinB, ZeroRef)

	b.gates[OneRef].Bit[PinA] = 1
	b.gates[OneRef].Bit[PinB] = 0
	b.OP(XOR, OneRef, PinA, OneRef, PinB, OneRef)
}

// NextRef returns the next free arena slot (i.e. the number of bound or
// reserved-for-binding gates so far).
func (b *Builder) NextRef() Ref {
	return b.nextRef
}

// MaxRefs returns the arena's fixed capacity.
func (b *Builder) MaxRefs() Ref {
	return b.maxRefs
}

// Gate returns a copy of the gate stored at ref. Connection slices are
// shared read-only views; callers must not mutate them.
func (b *Builder) Gate(ref Ref) Gate {
	return b.gates[ref]
}

// Bit returns the value of the given pin of the gate at ref.
func (b *Builder) Bit(ref Ref, pin Pin) uint8 {
	return b.gates[ref].Bit[pin]
}

// Kind returns the kind bound to the gate at ref.
func (b *Builder) Kind(ref Ref) Kind {
	return b.gates[ref].Kind
}

// ConnectionsToA returns a copy of the ordered list of downstream gates
// that read ref's output on their A pin.
func (b *Builder) ConnectionsToA(ref Ref) []Ref {
	src := b.gates[ref].ConnectionsToA
	out := make([]Ref, len(src))
	copy(out, src)
	return out
}

// ConnectionsToB returns a copy of the ordered list of downstream gates
// that read ref's output on their B pin.
func (b *Builder) ConnectionsToB(ref Ref) []Ref {
	src := b.gates[ref].ConnectionsToB
	out := make([]Ref, len(src))
	copy(out, src)
	return out
}

// Counters reports the builder's running operation counts, matching the
// original source's printCounters fields (spec §9 restores this as
// ordinary library surface rather than a CLI-only print).
type Counters struct {
	Xors          uint64
	Andps         uint64
	Xorns         uint64
	TotalMaxValue uint64
	NextRef       Ref
}

// Counters returns the builder's current counters.
func (b *Builder) Counters() Counters {
	return Counters{
		Xors:          b.xors,
		Andps:         b.andps,
		Xorns:         b.xorns,
		TotalMaxValue: b.totalMaxValue,
		NextRef:       b.nextRef,
	}
}

// Evals returns the program order gate references were bound in, i.e.
// the order OP was invoked (spec §3's evals log). The returned slice is
// a read-only view.
func (b *Builder) Evals() []Ref {
	return b.evals
}

// StateBitsFrom reads back the 1600 output bits named by a reference
// table (SinRefs or SoutRefs), matching the original source's
// printRefs/copySoutToSinAndResetRefs helpers.
func (b *Builder) StateBitsFrom(refs *[StateBits]Ref) [StateBits]byte {
	var out [StateBits]byte
	for i := 0; i < StateBits; i++ {
		out[i] = b.gates[refs[i]].Bit[PinOutput]
	}
	return out
}
