package protocols

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// DeepValues holds the out-of-domain evaluations the DEEP method binds the
// committed trace to: every column's value at a random point z outside the
// trace domain, and at z*g (the "next row" point one trace step ahead).
// Revealing these lets the verifier check the trace polynomials are
// consistent with the committed codeword without ever seeing the
// polynomials themselves.
type DeepValues struct {
	Z         core.Elem128
	ZG        core.Elem128
	TraceAtZ  []core.Elem128
	TraceAtZG []core.Elem128
}

// ComputeDeepValues evaluates every trace column at z and z*g, where g
// generates the trace domain.
func ComputeDeepValues(trace *Trace, z core.Elem128) DeepValues {
	g := trace.Domain.Generator
	zg := z.Mul(g)
	return DeepValues{
		Z:         z,
		ZG:        zg,
		TraceAtZ:  trace.EvalAt(z),
		TraceAtZG: trace.EvalAt(zg),
	}
}

// Bytes serializes the out-of-domain values in a fixed order, for absorbing
// into the Fiat-Shamir transcript before the verifier draws the
// composition's random linear-combination coefficients.
func (d DeepValues) Bytes() []byte {
	var out []byte
	out = append(out, d.Z.Bytes()...)
	out = append(out, d.ZG.Bytes()...)
	for _, v := range d.TraceAtZ {
		out = append(out, v.Bytes()...)
	}
	for _, v := range d.TraceAtZG {
		out = append(out, v.Bytes()...)
	}
	return out
}

// BuildCompositionPolynomial forms the DEEP composition polynomial: for
// each trace column f_i, it clears the pole at z with
// (f_i(X) - f_i(z)) / (X - z) and the pole at z*g with
// (f_i(X) - f_i(z*g)) / (X - z*g), then folds all 2*NumColumns quotients
// into one polynomial with verifier-supplied random coefficients. A forged
// trace value at z or z*g would leave a nonzero remainder, which the
// division silently (and fatally, for the forger) discards - that
// discarded remainder is exactly what makes this binding.
func BuildCompositionPolynomial(trace *Trace, deep DeepValues, coefficients []core.Elem128) (core.Polynomial[core.Elem128], error) {
	n := trace.NumColumns()
	if len(coefficients) != 2*n {
		return core.Polynomial[core.Elem128]{}, fmt.Errorf("protocols: composition needs %d coefficients, got %d", 2*n, len(coefficients))
	}

	result := core.Polynomial[core.Elem128]{}
	for i, poly := range trace.Columns {
		atZ := core.NewPolynomial(core.F128, []core.Elem128{deep.TraceAtZ[i]})
		quotZ := poly.Sub(core.F128, atZ).DivByLinear(core.F128, deep.Z)
		result = result.Add(core.F128, quotZ.Scale(core.F128, coefficients[2*i]))

		atZG := core.NewPolynomial(core.F128, []core.Elem128{deep.TraceAtZG[i]})
		quotZG := poly.Sub(core.F128, atZG).DivByLinear(core.F128, deep.ZG)
		result = result.Add(core.F128, quotZG.Scale(core.F128, coefficients[2*i+1]))
	}
	return result, nil
}

// EvalCompositionAt evaluates the same DEEP combination BuildCompositionPolynomial
// forms, but pointwise from already-opened trace values at a single domain
// point x, without ever materializing the composition polynomial. The
// verifier uses this to check a Merkle-opened trace row against the
// corresponding opened FRI codeword value, which is what binds the FRI
// proof back to the committed trace.
func EvalCompositionAt(traceRow []core.Elem128, x core.Elem128, deep DeepValues, coefficients []core.Elem128) (core.Elem128, error) {
	n := len(traceRow)
	if len(coefficients) != 2*n {
		return core.Elem128{}, fmt.Errorf("protocols: composition needs %d coefficients, got %d", 2*n, len(coefficients))
	}
	if len(deep.TraceAtZ) != n || len(deep.TraceAtZG) != n {
		return core.Elem128{}, fmt.Errorf("protocols: DEEP values width %d/%d does not match trace row width %d", len(deep.TraceAtZ), len(deep.TraceAtZG), n)
	}

	xMinusZInv := x.Sub(deep.Z).Inv()
	xMinusZGInv := x.Sub(deep.ZG).Inv()

	result := core.Zero128()
	for i, v := range traceRow {
		quotZ := v.Sub(deep.TraceAtZ[i]).Mul(xMinusZInv)
		result = result.Add(coefficients[2*i].Mul(quotZ))
		quotZG := v.Sub(deep.TraceAtZG[i]).Mul(xMinusZGInv)
		result = result.Add(coefficients[2*i+1].Mul(quotZG))
	}
	return result, nil
}
