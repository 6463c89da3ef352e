package protocols

import (
	"testing"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

func buildTestTrace(t *testing.T) *Trace {
	t.Helper()
	columns := [][]core.Elem128{
		{core.NewElem128FromUint64(1), core.NewElem128FromUint64(5), core.NewElem128FromUint64(9), core.NewElem128FromUint64(13)},
		{core.NewElem128FromUint64(2), core.NewElem128FromUint64(6), core.NewElem128FromUint64(10), core.NewElem128FromUint64(14)},
	}
	trace, err := NewTrace(columns)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	return trace
}

func TestBuildCompositionPolynomialMatchesPointwiseEval(t *testing.T) {
	trace := buildTestTrace(t)
	z := core.NewElem128FromUint64(999)
	deep := ComputeDeepValues(trace, z)

	coeffs := make([]core.Elem128, 2*trace.NumColumns())
	for i := range coeffs {
		coeffs[i] = core.NewElem128FromUint64(uint64(i + 1))
	}

	comp, err := BuildCompositionPolynomial(trace, deep, coeffs)
	if err != nil {
		t.Fatalf("BuildCompositionPolynomial failed: %v", err)
	}

	// The quotient terms are arranged so that the composition is a
	// genuine polynomial only when deep.TraceAtZ/TraceAtZG are the correct
	// openings; evaluating away from the pole should reproduce
	// EvalCompositionAt's pointwise formula exactly.
	x := core.NewElem128FromUint64(12345)
	row := trace.EvalAt(x)
	viaPoly := comp.Eval(core.F128, x)
	viaPointwise, err := EvalCompositionAt(row, x, deep, coeffs)
	if err != nil {
		t.Fatalf("EvalCompositionAt failed: %v", err)
	}
	if !viaPoly.Equal(viaPointwise) {
		t.Fatalf("composition polynomial and pointwise formula disagree: %v vs %v", viaPoly, viaPointwise)
	}
}

func TestEvalCompositionAtRejectsWrongCoefficientCount(t *testing.T) {
	trace := buildTestTrace(t)
	deep := ComputeDeepValues(trace, core.NewElem128FromUint64(7))
	row := trace.EvalAt(core.NewElem128FromUint64(42))
	_, err := EvalCompositionAt(row, core.NewElem128FromUint64(42), deep, []core.Elem128{core.One128()})
	if err == nil {
		t.Fatal("expected an error for a mismatched coefficient count")
	}
}

func TestComputeDeepValuesUsesTraceDomainGenerator(t *testing.T) {
	trace := buildTestTrace(t)
	z := core.NewElem128FromUint64(55)
	deep := ComputeDeepValues(trace, z)
	want := z.Mul(trace.Domain.Generator)
	if !deep.ZG.Equal(want) {
		t.Fatalf("expected ZG = z*g, got %v want %v", deep.ZG, want)
	}
}
