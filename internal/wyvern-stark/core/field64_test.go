package core

import "testing"

func TestElem64FieldLaws(t *testing.T) {
	a := NewElem64(12345)
	b := NewElem64(9876543210)
	c := NewElem64(P64 - 1)

	if !a.Add(b).Equal(b.Add(a)) {
		t.Error("addition should commute")
	}
	if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
		t.Error("addition should associate")
	}
	if !a.Mul(b).Equal(b.Mul(a)) {
		t.Error("multiplication should commute")
	}
	if !a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))) {
		t.Error("multiplication should associate")
	}
	if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
		t.Error("multiplication should distribute over addition")
	}
}

func TestElem64AdditiveIdentityAndInverse(t *testing.T) {
	a := NewElem64(424242)
	if !a.Add(Zero64()).Equal(a) {
		t.Error("a+0 should equal a")
	}
	if !a.Add(a.Neg()).IsZero() {
		t.Error("a+(-a) should be zero")
	}
}

func TestElem64MultiplicativeIdentityAndInverse(t *testing.T) {
	a := NewElem64(424242)
	if !a.Mul(One64()).Equal(a) {
		t.Error("a*1 should equal a")
	}
	if !a.Mul(a.Inv()).Equal(One64()) {
		t.Error("a*a^-1 should equal 1")
	}
	if !Zero64().Inv().IsZero() {
		t.Error("Inv(0) should be 0 by convention")
	}
}

func TestElem64FermatLittleTheorem(t *testing.T) {
	a := NewElem64(7)
	if !a.Exp(P64 - 1).Equal(One64()) {
		t.Error("a^(p-1) should equal 1 for nonzero a")
	}
}

func TestElem64WrapsModulus(t *testing.T) {
	if NewElem64(P64).Uint64() != 0 {
		t.Errorf("P64 should reduce to 0, got %d", NewElem64(P64).Uint64())
	}
	if NewElem64(P64+5).Uint64() != 5 {
		t.Errorf("P64+5 should reduce to 5, got %d", NewElem64(P64+5).Uint64())
	}
}

func TestRootOfUnity64Order(t *testing.T) {
	const order = 1 << 10
	g := RootOfUnity64(order)
	if !g.Exp(order).Equal(One64()) {
		t.Error("g^order should equal 1")
	}
	if g.Exp(order / 2).Equal(One64()) {
		t.Error("g^(order/2) should not equal 1 (g must be primitive)")
	}
}

func TestRootOfUnity64PanicsAboveTwoAdicity(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic for an order exceeding F64's two-adicity")
		}
	}()
	RootOfUnity64(1 << 33)
}

func TestBatchInverse64(t *testing.T) {
	xs := []Elem64{NewElem64(3), NewElem64(7), Zero64(), NewElem64(99999)}
	inv := BatchInverse(F64, xs)
	for i, x := range xs {
		if x.IsZero() {
			if !inv[i].IsZero() {
				t.Errorf("BatchInverse of zero should be zero, got %v", inv[i])
			}
			continue
		}
		if !x.Mul(inv[i]).Equal(One64()) {
			t.Errorf("x*BatchInverse(x) should equal 1 at index %d", i)
		}
		if !inv[i].Equal(x.Inv()) {
			t.Errorf("BatchInverse should match individually computed Inv at index %d", i)
		}
	}
}
