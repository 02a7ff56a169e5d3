// Package gate implements the Keccak-f[1600] arithmetization core: a gate
// arena, an operator-insertion engine that tracks XOR-chain carry and
// fan-out/connection bookkeeping, and the script serializer that turns a
// compiled circuit into the evaluation-log document a downstream prover
// consumes. The polynomial layout is built by package pols.
//
// The data model follows github.com/markkurossi/mpc's circuit package in
// spirit (a flat array of gates addressed by small integer references,
// exactly like circuit.Wire/circuit.Gate) but not in shape: that package's
// wires are pointer-linked and assigned IDs lazily during a compile pass,
// which cannot represent this builder's carry counters, three-pin gates, or
// state-reference tables. Those are modelled directly on
// original_source/src/keccak_sm/keccak_sm_state.cpp.
package gate

import "fmt"

// Ref is an index into the gate arena.
type Ref uint64

// Pin selects one of a gate's three bit slots.
type Pin int

// The three gate pins, numbered exactly as the script document schema
// requires (spec §6: input_a=0, input_b=1, output=2).
const (
	PinA Pin = iota
	PinB
	PinOutput
)

func (p Pin) String() string {
	switch p {
	case PinA:
		return "input_a"
	case PinB:
		return "input_b"
	case PinOutput:
		return "output"
	default:
		return fmt.Sprintf("{Pin %d}", int(p))
	}
}

// Kind identifies the Boolean operation a gate performs.
type Kind int

// Gate kinds. Unknown marks a gate whose output has not yet been bound
// by OP.
const (
	Unknown Kind = iota
	XOR
	AndNot
	XORNorm
)

// String renders the kind using the JSON schema's op names (spec §6).
func (k Kind) String() string {
	s, err := kindToString(k)
	if err != nil {
		return fmt.Sprintf("{Kind %d}", int(k))
	}
	return s
}

func kindToString(k Kind) (string, error) {
	switch k {
	case XOR:
		return "xor", nil
	case AndNot:
		return "andp", nil
	case XORNorm:
		return "xorn", nil
	default:
		return "", fmt.Errorf("gate: invalid kind %d", int(k))
	}
}

func stringToKind(s string) (Kind, error) {
	switch s {
	case "xor":
		return XOR, nil
	case "andp":
		return AndNot, nil
	case "xorn":
		return XORNorm, nil
	default:
		return Unknown, fmt.Errorf("gate: invalid op name %q", s)
	}
}

// Gate is the passive per-slot record the arena stores. It is never
// shared by reference outside package gate; callers read it through
// Builder's accessor methods, which return copies.
type Gate struct {
	Kind Kind

	RefA, RefB, RefR Ref
	PinA, PinB       Pin

	// Bit holds the three pin values, indexed by Pin. Bit[PinOutput] is
	// the computed result.
	Bit [3]uint8

	// Value is the carry counter: the worst-case count of 1-bits that
	// could have contributed to this gate's output through an unbounded
	// XOR chain (spec §3).
	Value uint64
	// MaxValue is the running maximum of Value observed for this gate.
	MaxValue uint64

	// FanOut is the number of downstream gates referencing this one;
	// always equal to len(ConnectionsToA)+len(ConnectionsToB).
	FanOut uint64

	// ConnectionsToA/ConnectionsToB list, in insertion order, the
	// downstream gates that read this gate's output on their A/B pin.
	ConnectionsToA []Ref
	ConnectionsToB []Ref
}

func (g *Gate) reset() {
	g.Kind = Unknown
	g.RefA, g.RefB, g.RefR = 0, 0, 0
	g.PinA, g.PinB = 0, 0
	g.Bit = [3]uint8{}
	g.Value = 0
	g.MaxValue = 0
	g.FanOut = 0
	g.ConnectionsToA = g.ConnectionsToA[:0]
	g.ConnectionsToB = g.ConnectionsToB[:0]
}
