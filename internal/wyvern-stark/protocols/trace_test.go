package protocols

import (
	"testing"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

func TestNewTracePadsToPowerOfTwo(t *testing.T) {
	columns := [][]core.Elem128{
		{core.NewElem128FromUint64(1), core.NewElem128FromUint64(2), core.NewElem128FromUint64(3)},
	}
	trace, err := NewTrace(columns)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	if trace.Length() != 4 {
		t.Fatalf("expected padded length 4, got %d", trace.Length())
	}
}

func TestNewTraceRejectsMismatchedColumnLengths(t *testing.T) {
	columns := [][]core.Elem128{
		{core.NewElem128FromUint64(1), core.NewElem128FromUint64(2)},
		{core.NewElem128FromUint64(1)},
	}
	if _, err := NewTrace(columns); err == nil {
		t.Fatal("expected an error for mismatched column lengths")
	}
}

func TestTraceEvalAtMatchesExtendedRow(t *testing.T) {
	columns := [][]core.Elem128{
		{core.NewElem128FromUint64(4), core.NewElem128FromUint64(7), core.NewElem128FromUint64(2), core.NewElem128FromUint64(9)},
	}
	trace, err := NewTrace(columns)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}

	lde, err := NewArithmeticDomain(trace.Length() * 2)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	lde = lde.WithOffset(core.NewElem128FromUint64(7))
	rows, err := trace.Extend(lde)
	if err != nil {
		t.Fatalf("Extend failed: %v", err)
	}

	for i, x := range lde.Elements() {
		got := trace.Columns[0].Eval(core.F128, x)
		if !got.Equal(rows[i][0]) {
			t.Fatalf("row %d column 0 mismatch: eval=%v row=%v", i, got, rows[i][0])
		}
	}
}

func TestTraceEvalAtOnDomainMatchesOriginalColumn(t *testing.T) {
	original := []core.Elem128{
		core.NewElem128FromUint64(11), core.NewElem128FromUint64(22),
		core.NewElem128FromUint64(33), core.NewElem128FromUint64(44),
	}
	columns := [][]core.Elem128{append([]core.Elem128(nil), original...)}
	trace, err := NewTrace(columns)
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	for i, x := range trace.Domain.Elements() {
		got := trace.Columns[0].Eval(core.F128, x)
		if !got.Equal(original[i]) {
			t.Fatalf("column 0 at domain point %d: want %v, got %v", i, original[i], got)
		}
	}
}
