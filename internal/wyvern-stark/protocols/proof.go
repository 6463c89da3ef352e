package protocols

import "github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"

// TraceOpening is the batch Merkle opening of the extended trace at the
// positions FRI ends up querying, letting the verifier recompute the
// composition value the FRI codeword is supposed to hold there.
type TraceOpening struct {
	Positions []int
	Rows      [][]core.Elem128
	Proof     core.BatchProof
}

// Proof is the full wire object a prover sends a verifier: a commitment to
// the extended trace, the DEEP out-of-domain evaluations, the random
// linear-combination coefficients used to build the composition
// polynomial, the FRI proof of its low degree, and the trace openings that
// tie the FRI codeword back to the committed trace.
type Proof struct {
	TraceRoot             core.Digest
	Deep                  DeepValues
	CompositionCoefficients []core.Elem128
	FRI                   *FRIProof
	TraceOpening          TraceOpening
}

// Size estimates the proof's serialized size in bytes, for reporting; it is
// not itself a wire format.
func (p *Proof) Size() int {
	size := core.DigestSize
	size += len(p.Deep.TraceAtZ)*16 + len(p.Deep.TraceAtZG)*16 + 32
	size += len(p.CompositionCoefficients) * 16
	size += len(p.FRI.RemainderValues) * 16
	size += len(p.FRI.LayerRoots) * core.DigestSize
	for _, lp := range p.FRI.LayerProofs {
		size += len(lp.Values)*16 + len(lp.Proof.Nodes)*core.DigestSize
	}
	for _, row := range p.TraceOpening.Rows {
		size += len(row) * 16
	}
	size += len(p.TraceOpening.Proof.Nodes) * core.DigestSize
	return size
}
