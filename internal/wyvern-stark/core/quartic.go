package core

import "fmt"

// QuarticFoldSize is the folding factor used by FRI: each round collapses
// four codeword values (one coset of the order-4 subgroup) into one.
const QuarticFoldSize = 4

// QuarticInterpolate returns the unique cubic polynomial through the four
// (x, y) pairs formed by xs and ys, via Lagrange interpolation. len(xs) and
// len(ys) must both be QuarticFoldSize.
func QuarticInterpolate[E Elem[E]](f Field[E], xs, ys []E) (Polynomial[E], error) {
	if len(xs) != QuarticFoldSize || len(ys) != QuarticFoldSize {
		return Polynomial[E]{}, fmt.Errorf("core: quartic interpolation needs exactly %d points, got %d/%d", QuarticFoldSize, len(xs), len(ys))
	}
	return LagrangeInterpolate(f, xs, ys)
}

// QuarticFold interpolates the cubic through (xs[i], ys[i]) and evaluates it
// at challenge, producing the single folded value FRI carries into the next
// layer's codeword.
func QuarticFold[E Elem[E]](f Field[E], xs, ys []E, challenge E) (E, error) {
	poly, err := QuarticInterpolate(f, xs, ys)
	if err != nil {
		var zero E
		return zero, err
	}
	return poly.Eval(f, challenge), nil
}

// CosetIndices returns the QuarticFoldSize indices into a codeword of the
// given length that share index%foldedLength == residue, i.e. the coset
// that folds together into position residue of the next (4x smaller) layer.
func CosetIndices(length, residue int) []int {
	foldedLength := length / QuarticFoldSize
	out := make([]int, QuarticFoldSize)
	for i := 0; i < QuarticFoldSize; i++ {
		out[i] = residue + i*foldedLength
	}
	return out
}
