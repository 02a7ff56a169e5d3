package gate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/markkurossi/tabulate"
)

// EvalRecord is one entry of the script document's evaluations section
// (spec §6), in program order.
type EvalRecord struct {
	Op   string `json:"op"`
	RefA uint64 `json:"refa"`
	RefB uint64 `json:"refb"`
	RefR uint64 `json:"refr"`
	PinA int    `json:"pina"`
	PinB int    `json:"pinb"`
}

// GateRecord is one entry of the script document's gates section (spec
// §6), in arena slot order.
type GateRecord struct {
	RIndex      uint64 `json:"rindex"`
	RefR        uint64 `json:"refr"`
	RefA        uint64 `json:"refa"`
	RefB        uint64 `json:"refb"`
	PinA        int    `json:"pina"`
	PinB        int    `json:"pinb"`
	Op          string `json:"op"`
	FanOut      uint64 `json:"fanOut"`
	Connections string `json:"connections"`
}

// ScriptDoc is the full document §4.F emits.
type ScriptDoc struct {
	Evaluations []EvalRecord `json:"evaluations"`
	Gates       []GateRecord `json:"gates"`
	MaxRef      uint64       `json:"maxRef"`
	Xors        uint64       `json:"xors"`
	Andps       uint64       `json:"andps"`
	MaxValue    uint64       `json:"maxValue"`
}

// Script serializes the bound gates into the evaluation log and gate
// table document (spec §4.F). It does not mutate the arena. An error is
// returned only if a gate in [0, nextRef) was left unbound (Kind ==
// Unknown), a structural inconsistency that op2string would otherwise
// hit in the original source's "exit(-1)" path (spec §7).
func (b *Builder) Script() (ScriptDoc, error) {
	doc := ScriptDoc{
		Evaluations: make([]EvalRecord, 0, len(b.evals)),
		Gates:       make([]GateRecord, 0, int(b.nextRef)),
		MaxRef:      uint64(b.nextRef) - 1,
		Xors:        b.xors,
		Andps:       b.andps,
		MaxValue:    b.totalMaxValue,
	}

	for _, ref := range b.evals {
		g := &b.gates[ref]
		op, err := kindToString(g.Kind)
		if err != nil {
			return ScriptDoc{}, fmt.Errorf("gate: script: gate %d: %w", ref, err)
		}
		doc.Evaluations = append(doc.Evaluations, EvalRecord{
			Op:   op,
			RefA: uint64(g.RefA),
			RefB: uint64(g.RefB),
			RefR: uint64(g.RefR),
			PinA: int(g.PinA),
			PinB: int(g.PinB),
		})
	}

	for i := Ref(0); i < b.nextRef; i++ {
		g := &b.gates[i]
		op, err := kindToString(g.Kind)
		if err != nil {
			return ScriptDoc{}, fmt.Errorf("gate: script: slot %d: %w", i, err)
		}

		var conns strings.Builder
		for _, t := range g.ConnectionsToA {
			if conns.Len() != 0 {
				conns.WriteByte(',')
			}
			fmt.Fprintf(&conns, "A[%d]", t)
		}
		for _, t := range g.ConnectionsToB {
			if conns.Len() != 0 {
				conns.WriteByte(',')
			}
			fmt.Fprintf(&conns, "B[%d]", t)
		}

		doc.Gates = append(doc.Gates, GateRecord{
			RIndex:      uint64(i),
			RefR:        uint64(g.RefR),
			RefA:        uint64(g.RefA),
			RefB:        uint64(g.RefB),
			PinA:        int(g.PinA),
			PinB:        int(g.PinB),
			Op:          op,
			FanOut:      g.FanOut,
			Connections: conns.String(),
		})
	}

	return doc, nil
}

// StatsTable renders the builder's counters as a human-readable table,
// the same use the teacher repo makes of markkurossi/tabulate in
// apps/garbled/objdump.go for dumping compiled-circuit statistics. It is
// a debug aid, not part of the JSON schema.
func (b *Builder) StatsTable() string {
	c := b.Counters()

	tab := tabulate.New(tabulate.Github)
	tab.Header("xors").SetAlign(tabulate.MR)
	tab.Header("andps").SetAlign(tabulate.MR)
	tab.Header("xorns").SetAlign(tabulate.MR)
	tab.Header("nextRef").SetAlign(tabulate.MR)
	tab.Header("maxValue").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column(fmt.Sprintf("%d", c.Xors))
	row.Column(fmt.Sprintf("%d", c.Andps))
	row.Column(fmt.Sprintf("%d", c.Xorns))
	row.Column(fmt.Sprintf("%d", c.NextRef))
	row.Column(fmt.Sprintf("%d", c.TotalMaxValue))

	var buf bytes.Buffer
	tab.Print(&buf)
	return buf.String()
}
