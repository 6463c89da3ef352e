package protocols

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// Trace is the prover's execution trace table: one column per VM register
// (stack slots, program counter, ...), one row per execution step, already
// padded to a power-of-two length. Building it from actual VM instructions
// is the vm package's job; this type only knows how to turn the padded
// column values into committed, queryable polynomials.
type Trace struct {
	Columns []core.Polynomial[core.Elem128] // one interpolated polynomial per column
	Domain  ArithmeticDomain                // the trace domain the columns were interpolated over
	Width   int
}

// NewTrace pads columns (if needed) to the next power of two by repeating
// the last row, then interpolates each column into a polynomial over the
// resulting trace domain.
func NewTrace(rawColumns [][]core.Elem128) (*Trace, error) {
	if len(rawColumns) == 0 {
		return nil, fmt.Errorf("protocols: trace must have at least one column")
	}
	length := len(rawColumns[0])
	for i, col := range rawColumns {
		if len(col) != length {
			return nil, fmt.Errorf("protocols: column %d has length %d, want %d", i, len(col), length)
		}
	}
	padded := padColumns(rawColumns, nextPowerOfTwo(length))

	domain, err := NewArithmeticDomain(len(padded[0]))
	if err != nil {
		return nil, err
	}
	columns := make([]core.Polynomial[core.Elem128], len(padded))
	for i, col := range padded {
		coeffs, err := core.InterpolateFromDomain(core.F128, col, domain.Generator)
		if err != nil {
			return nil, fmt.Errorf("protocols: interpolating column %d: %w", i, err)
		}
		columns[i] = core.NewPolynomial(core.F128, coeffs)
	}

	return &Trace{Columns: columns, Domain: domain, Width: len(padded)}, nil
}

func padColumns(columns [][]core.Elem128, target int) [][]core.Elem128 {
	out := make([][]core.Elem128, len(columns))
	for i, col := range columns {
		padded := make([]core.Elem128, target)
		copy(padded, col)
		last := col[len(col)-1]
		for j := len(col); j < target; j++ {
			padded[j] = last
		}
		out[i] = padded
	}
	return out
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Length returns the padded trace length.
func (t *Trace) Length() int { return t.Domain.Length }

// NumColumns returns the number of trace columns.
func (t *Trace) NumColumns() int { return len(t.Columns) }

// Extend evaluates every column polynomial over the given low-degree
// extension domain via a forward coset NTT, producing a row-major matrix
// ready for Merkle commitment (one leaf per row, one value per column
// within the leaf).
func (t *Trace) Extend(lde ArithmeticDomain) ([][]core.Elem128, error) {
	columnValues := make([][]core.Elem128, len(t.Columns))
	for c, poly := range t.Columns {
		values, err := lde.EvaluatePolynomial(poly.Coeffs)
		if err != nil {
			return nil, fmt.Errorf("protocols: extending column %d: %w", c, err)
		}
		columnValues[c] = values
	}
	rows := make([][]core.Elem128, lde.Length)
	for r := range rows {
		row := make([]core.Elem128, len(t.Columns))
		for c := range t.Columns {
			row[c] = columnValues[c][r]
		}
		rows[r] = row
	}
	return rows, nil
}

// CommitRows builds a Merkle tree over the extended trace rows, one leaf
// per row with every column's canonical byte image concatenated into it.
func CommitRows(rows [][]core.Elem128) (*core.MerkleTree, error) {
	byteRows := make([][][]byte, len(rows))
	for i, row := range rows {
		values := make([][]byte, len(row))
		for j, v := range row {
			values[j] = v.Bytes()
		}
		byteRows[i] = values
	}
	return core.NewMerkleTreeRows(byteRows)
}

// EvalAt evaluates every column polynomial at a single (generally
// out-of-domain) point z, the value the DEEP composition polynomial binds
// the committed trace to.
func (t *Trace) EvalAt(z core.Elem128) []core.Elem128 {
	out := make([]core.Elem128, len(t.Columns))
	for i, poly := range t.Columns {
		out[i] = poly.Eval(core.F128, z)
	}
	return out
}
