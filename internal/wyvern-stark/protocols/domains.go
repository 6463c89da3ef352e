// Package protocols implements the STARK protocol layer: the trace table,
// the DEEP composition polynomial, FRI, and the prover/verifier coordinator
// that drives them. It builds on the field, NTT, and Merkle primitives in
// internal/wyvern-stark/core.
package protocols

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// ArithmeticDomain is a coset of a power-of-two-order multiplicative
// subgroup of F128: {offset * generator^i : i in [0, Length)}. The trace
// domain (offset=1) and the larger low-degree-extension domain (offset=a
// non-residue coset shift) are both instances of this same shape.
type ArithmeticDomain struct {
	Offset    core.Elem128
	Generator core.Elem128
	Length    int
}

// NewArithmeticDomain builds the canonical (offset=1) domain of the given
// power-of-two length.
func NewArithmeticDomain(length int) (ArithmeticDomain, error) {
	if length <= 0 || length&(length-1) != 0 {
		return ArithmeticDomain{}, fmt.Errorf("protocols: domain length %d is not a power of two", length)
	}
	gen := core.RootOfUnity128(uint64(length))
	return ArithmeticDomain{
		Offset:    core.One128(),
		Generator: gen,
		Length:    length,
	}, nil
}

// WithOffset returns a copy of d shifted by a coset representative other
// than 1, used to build the LDE domain disjoint from the trace domain it
// extends.
func (d ArithmeticDomain) WithOffset(offset core.Elem128) ArithmeticDomain {
	d.Offset = offset
	return d
}

// Elements materializes every point of the domain, offset*generator^i.
func (d ArithmeticDomain) Elements() []core.Elem128 {
	powers := core.PowSeries(core.F128, d.Generator, d.Length)
	out := make([]core.Elem128, d.Length)
	for i, p := range powers {
		out[i] = d.Offset.Mul(p)
	}
	return out
}

// At returns the i-th domain element without materializing the whole set.
func (d ArithmeticDomain) At(i int) core.Elem128 {
	return d.Offset.Mul(core.ExpSmall(core.F128, d.Generator, uint64(i)))
}

// EvaluatePolynomial evaluates a coefficient-form polynomial over d's coset
// (Offset*Generator^i) via a forward NTT: scaling coefficient i by
// Offset^i turns the coset evaluation into a plain subgroup evaluation,
// which NTTInPlace handles directly. len(coeffs) must not exceed d.Length.
func (d ArithmeticDomain) EvaluatePolynomial(coeffs []core.Elem128) ([]core.Elem128, error) {
	scaled := make([]core.Elem128, d.Length)
	offsetPowers := core.PowSeries(core.F128, d.Offset, len(coeffs))
	for i, c := range coeffs {
		scaled[i] = c.Mul(offsetPowers[i])
	}
	return core.EvaluateOnDomain(core.F128, scaled, d.Generator)
}

// QuarterDomain returns the domain of a quarter the length, generated by
// Generator^4. Every FRI fold round moves from a domain to its QuarterDomain.
func (d ArithmeticDomain) QuarterDomain() (ArithmeticDomain, error) {
	if d.Length%core.QuarticFoldSize != 0 {
		return ArithmeticDomain{}, fmt.Errorf("protocols: domain length %d not divisible by fold size %d", d.Length, core.QuarticFoldSize)
	}
	gen4 := d.Generator.Mul(d.Generator).Mul(d.Generator).Mul(d.Generator)
	return ArithmeticDomain{
		Offset:    core.ExpSmall(core.F128, d.Offset, core.QuarticFoldSize),
		Generator: gen4,
		Length:    d.Length / core.QuarticFoldSize,
	}, nil
}

// String renders the domain for debug logs.
func (d ArithmeticDomain) String() string {
	return fmt.Sprintf("ArithmeticDomain{offset: %x, length: %d}", d.Offset.Bytes(), d.Length)
}
