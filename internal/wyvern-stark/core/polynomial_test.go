package core

import "testing"

func e64(x uint64) Elem64 { return NewElem64(x) }

func TestPolynomialEval(t *testing.T) {
	// p(x) = 1 + 2x + 3x^2
	p := NewPolynomial(F64, []Elem64{e64(1), e64(2), e64(3)})
	got := p.Eval(F64, e64(5))
	want := e64(1 + 2*5 + 3*25)
	if !got.Equal(want) {
		t.Errorf("Eval(5) = %v, want %v", got, want)
	}
}

func TestPolynomialTrimsTrailingZeros(t *testing.T) {
	p := NewPolynomial(F64, []Elem64{e64(1), e64(0), e64(0)})
	if p.Degree() != 0 {
		t.Errorf("expected degree 0 after trimming, got %d", p.Degree())
	}
}

func TestPolynomialAddSub(t *testing.T) {
	p := NewPolynomial(F64, []Elem64{e64(1), e64(2)})
	q := NewPolynomial(F64, []Elem64{e64(3), e64(4), e64(5)})

	sum := p.Add(F64, q)
	for _, x := range []Elem64{e64(0), e64(1), e64(7)} {
		want := p.Eval(F64, x).Add(q.Eval(F64, x))
		if !sum.Eval(F64, x).Equal(want) {
			t.Errorf("(p+q)(%v) = %v, want %v", x, sum.Eval(F64, x), want)
		}
	}

	diff := q.Sub(F64, p)
	for _, x := range []Elem64{e64(0), e64(1), e64(7)} {
		want := q.Eval(F64, x).Sub(p.Eval(F64, x))
		if !diff.Eval(F64, x).Equal(want) {
			t.Errorf("(q-p)(%v) = %v, want %v", x, diff.Eval(F64, x), want)
		}
	}
}

func TestPolynomialMul(t *testing.T) {
	p := NewPolynomial(F64, []Elem64{e64(1), e64(1)}) // 1+x
	q := NewPolynomial(F64, []Elem64{e64(1), e64(2)}) // 1+2x
	prod := p.Mul(F64, q)                              // 1+3x+2x^2

	for _, x := range []Elem64{e64(0), e64(1), e64(3), e64(10)} {
		want := p.Eval(F64, x).Mul(q.Eval(F64, x))
		if !prod.Eval(F64, x).Equal(want) {
			t.Errorf("(p*q)(%v) = %v, want %v", x, prod.Eval(F64, x), want)
		}
	}
}

func TestPolynomialDivRem(t *testing.T) {
	// (x-2)(x-3) = x^2 - 5x + 6
	p := NewPolynomial(F64, []Elem64{e64(6), e64(5).Neg(), e64(1)})
	divisor := NewPolynomial(F64, []Elem64{e64(2).Neg(), e64(1)}) // x-2

	quot, rem, err := p.DivRem(F64, divisor)
	if err != nil {
		t.Fatalf("DivRem failed: %v", err)
	}
	if !rem.IsZero() {
		t.Errorf("expected zero remainder dividing an exact factor, got %v", rem.Coeffs)
	}
	if !quot.Eval(F64, e64(4)).Equal(e64(1)) {
		t.Errorf("quotient (x-3) at x=4 should be 1, got %v", quot.Eval(F64, e64(4)))
	}
}

func TestPolynomialDivByLinear(t *testing.T) {
	root := e64(7)
	// p(x) = (x-7)*(x+1) = x^2 - 6x - 7
	divisor := NewPolynomial(F64, []Elem64{e64(1), e64(1)}) // x+1
	p := divisor.Mul(F64, NewPolynomial(F64, []Elem64{root.Neg(), e64(1)}))

	quot := p.DivByLinear(F64, root)
	for _, x := range []Elem64{e64(0), e64(2), e64(100)} {
		want := divisor.Eval(F64, x)
		if !quot.Eval(F64, x).Equal(want) {
			t.Errorf("DivByLinear quotient at %v = %v, want %v", x, quot.Eval(F64, x), want)
		}
	}
}

func TestLagrangeInterpolate(t *testing.T) {
	xs := []Elem64{e64(1), e64(2), e64(3), e64(4)}
	original := NewPolynomial(F64, []Elem64{e64(5), e64(1), e64(0), e64(2)})
	ys := original.EvalMany(F64, xs)

	recovered, err := LagrangeInterpolate(F64, xs, ys)
	if err != nil {
		t.Fatalf("LagrangeInterpolate failed: %v", err)
	}
	for _, x := range xs {
		if !recovered.Eval(F64, x).Equal(original.Eval(F64, x)) {
			t.Errorf("recovered polynomial disagrees with original at %v", x)
		}
	}
}

func TestLagrangeInterpolateRejectsDuplicatePoints(t *testing.T) {
	xs := []Elem64{e64(1), e64(1)}
	ys := []Elem64{e64(1), e64(2)}
	if _, err := LagrangeInterpolate(F64, xs, ys); err == nil {
		t.Error("expected an error for duplicate x coordinates")
	}
}
