package core

import "fmt"

// Polynomial is a dense coefficient-form univariate polynomial over any
// Elem type, lowest degree first: Coeffs[0] + Coeffs[1]*x + ...
type Polynomial[E Elem[E]] struct {
	Coeffs []E
}

// NewPolynomial wraps coeffs, trimming trailing zero coefficients so Degree
// is always exact.
func NewPolynomial[E Elem[E]](f Field[E], coeffs []E) Polynomial[E] {
	p := Polynomial[E]{Coeffs: append([]E(nil), coeffs...)}
	return p.trim(f)
}

func (p Polynomial[E]) trim(f Field[E]) Polynomial[E] {
	n := len(p.Coeffs)
	for n > 0 && p.Coeffs[n-1].IsZero() {
		n--
	}
	p.Coeffs = p.Coeffs[:n]
	return p
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Polynomial[E]) Degree() int { return len(p.Coeffs) - 1 }

// IsZero reports whether p has no nonzero coefficients.
func (p Polynomial[E]) IsZero() bool { return len(p.Coeffs) == 0 }

// Eval evaluates p at x using Horner's method.
func (p Polynomial[E]) Eval(f Field[E], x E) E {
	if len(p.Coeffs) == 0 {
		return f.Zero()
	}
	acc := p.Coeffs[len(p.Coeffs)-1]
	for i := len(p.Coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.Coeffs[i])
	}
	return acc
}

// EvalMany evaluates p at every point in xs.
func (p Polynomial[E]) EvalMany(f Field[E], xs []E) []E {
	out := make([]E, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(f, x)
	}
	return out
}

// Add returns p+q.
func (p Polynomial[E]) Add(f Field[E], q Polynomial[E]) Polynomial[E] {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]E, n)
	for i := 0; i < n; i++ {
		var a, b E
		if i < len(p.Coeffs) {
			a = p.Coeffs[i]
		} else {
			a = f.Zero()
		}
		if i < len(q.Coeffs) {
			b = q.Coeffs[i]
		} else {
			b = f.Zero()
		}
		out[i] = a.Add(b)
	}
	return NewPolynomial(f, out)
}

// Sub returns p-q.
func (p Polynomial[E]) Sub(f Field[E], q Polynomial[E]) Polynomial[E] {
	neg := make([]E, len(q.Coeffs))
	for i, c := range q.Coeffs {
		neg[i] = c.Neg()
	}
	return p.Add(f, Polynomial[E]{Coeffs: neg})
}

// Scale returns c*p.
func (p Polynomial[E]) Scale(f Field[E], c E) Polynomial[E] {
	out := make([]E, len(p.Coeffs))
	for i, v := range p.Coeffs {
		out[i] = v.Mul(c)
	}
	return NewPolynomial(f, out)
}

// Mul returns p*q via schoolbook convolution. Used for small-degree
// combination steps (e.g. building the composition polynomial from a
// handful of quotient terms); the NTT path is used for the degree-heavy
// trace interpolation itself.
func (p Polynomial[E]) Mul(f Field[E], q Polynomial[E]) Polynomial[E] {
	if p.IsZero() || q.IsZero() {
		return Polynomial[E]{}
	}
	out := make([]E, len(p.Coeffs)+len(q.Coeffs)-1)
	for i := range out {
		out[i] = f.Zero()
	}
	for i, a := range p.Coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(f, out)
}

// DivRem performs synthetic polynomial long division, returning (quotient,
// remainder) such that p = quotient*divisor + remainder. divisor must be
// nonzero.
func (p Polynomial[E]) DivRem(f Field[E], divisor Polynomial[E]) (Polynomial[E], Polynomial[E], error) {
	if divisor.IsZero() {
		return Polynomial[E]{}, Polynomial[E]{}, fmt.Errorf("core: division by the zero polynomial")
	}
	remainder := append([]E(nil), p.Coeffs...)
	divDeg := divisor.Degree()
	leadInv := divisor.Coeffs[divDeg].Inv()

	quotDeg := len(remainder) - 1 - divDeg
	if quotDeg < 0 {
		return Polynomial[E]{}, NewPolynomial(f, remainder), nil
	}
	quotient := make([]E, quotDeg+1)

	for shift := quotDeg; shift >= 0; shift-- {
		top := shift + divDeg
		if top >= len(remainder) {
			continue
		}
		coeff := remainder[top].Mul(leadInv)
		quotient[shift] = coeff
		if coeff.IsZero() {
			continue
		}
		for j, dc := range divisor.Coeffs {
			remainder[shift+j] = remainder[shift+j].Sub(coeff.Mul(dc))
		}
	}
	return NewPolynomial(f, quotient), NewPolynomial(f, remainder), nil
}

// DivByLinear divides p by (x - root) exactly, assuming root is truly a
// root of p (the remainder is discarded; callers that need to check
// exactness should use DivRem directly). This is the common case when
// clearing a DEEP composition denominator at one out-of-domain point.
func (p Polynomial[E]) DivByLinear(f Field[E], root E) Polynomial[E] {
	n := len(p.Coeffs)
	if n == 0 {
		return Polynomial[E]{}
	}
	out := make([]E, n-1)
	carry := f.Zero()
	for i := n - 1; i >= 1; i-- {
		coeff := p.Coeffs[i].Add(carry)
		out[i-1] = coeff
		carry = coeff.Mul(root)
	}
	return NewPolynomial(f, out)
}

// LagrangeInterpolate returns the unique minimal-degree polynomial through
// the given (x, y) points, via barycentric-weighted Lagrange interpolation.
// Used off the NTT-friendly domain (e.g. interpolating a quartic FRI fold
// from exactly 4 points); xs must be pairwise distinct.
func LagrangeInterpolate[E Elem[E]](f Field[E], xs, ys []E) (Polynomial[E], error) {
	n := len(xs)
	if n != len(ys) {
		return Polynomial[E]{}, fmt.Errorf("core: xs/ys length mismatch (%d vs %d)", n, len(ys))
	}
	if n == 0 {
		return Polynomial[E]{}, nil
	}

	// weights[i] = 1 / prod_{j != i} (xs[i] - xs[j])
	weights := make([]E, n)
	for i := 0; i < n; i++ {
		w := f.One()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff := xs[i].Sub(xs[j])
			if diff.IsZero() {
				return Polynomial[E]{}, fmt.Errorf("core: interpolation points must be distinct")
			}
			w = w.Mul(diff)
		}
		weights[i] = w.Inv()
	}

	result := Polynomial[E]{}
	one := NewPolynomial(f, []E{f.One()})
	for i := 0; i < n; i++ {
		// basis_i(x) = prod_{j != i} (x - xs[j]), scaled by weights[i]*ys[i]
		basis := one
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			factor := NewPolynomial(f, []E{xs[j].Neg(), f.One()})
			basis = basis.Mul(f, factor)
		}
		coeff := weights[i].Mul(ys[i])
		result = result.Add(f, basis.Scale(f, coeff))
	}
	return result, nil
}
