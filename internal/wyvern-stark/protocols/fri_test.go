package protocols

import (
	"testing"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/utils"
)

func lowDegreeCodeword(t *testing.T, domain ArithmeticDomain, degree int) []core.Elem128 {
	t.Helper()
	coeffs := make([]core.Elem128, degree+1)
	for i := range coeffs {
		coeffs[i] = core.NewElem128FromUint64(uint64(i*7 + 3))
	}
	poly := core.NewPolynomial(core.F128, coeffs)
	return poly.EvalMany(core.F128, domain.Elements())
}

func TestFRIProveVerifyRoundTrip(t *testing.T) {
	domain, err := NewArithmeticDomain(256)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	domain = domain.WithOffset(core.NewElem128FromUint64(7))
	codeword := lowDegreeCodeword(t, domain, 3)

	proverChannel := utils.NewChannel()
	proof, err := ProveFRI(proverChannel, domain, codeword, 4, 8, 0)
	if err != nil {
		t.Fatalf("ProveFRI failed: %v", err)
	}

	verifierChannel := utils.NewChannel()
	positions, ok, err := VerifyFRI(verifierChannel, domain, proof, 4, 8, 0)
	if err != nil {
		t.Fatalf("VerifyFRI returned an error: %v", err)
	}
	if !ok {
		t.Fatal("expected a genuine FRI proof to verify")
	}
	if len(positions) != 8 {
		t.Fatalf("expected 8 query positions, got %d", len(positions))
	}
}

func TestFRIRejectsTamperedLayerValue(t *testing.T) {
	domain, err := NewArithmeticDomain(256)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	domain = domain.WithOffset(core.NewElem128FromUint64(7))
	codeword := lowDegreeCodeword(t, domain, 3)

	proverChannel := utils.NewChannel()
	proof, err := ProveFRI(proverChannel, domain, codeword, 4, 8, 0)
	if err != nil {
		t.Fatalf("ProveFRI failed: %v", err)
	}
	if len(proof.LayerProofs) == 0 || len(proof.LayerProofs[0].Values) == 0 {
		t.Fatal("expected at least one FRI layer with opened values")
	}
	proof.LayerProofs[0].Values[0] = proof.LayerProofs[0].Values[0].Add(core.One128())

	verifierChannel := utils.NewChannel()
	_, ok, err := VerifyFRI(verifierChannel, domain, proof, 4, 8, 0)
	if err == nil && ok {
		t.Error("expected a tampered FRI layer value to be rejected")
	}
}

func TestVerifyRemainderDegree(t *testing.T) {
	domain, err := NewArithmeticDomain(64)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	xs := domain.Elements()
	coeffs := make([]core.Elem128, 32)
	for i := range coeffs {
		coeffs[i] = core.NewElem128FromUint64(uint64(i*3 + 1))
	}
	ys := core.NewPolynomial(core.F128, coeffs).EvalMany(core.F128, xs)

	if err := verifyRemainderDegree(xs, ys, 32); err != nil {
		t.Errorf("verifyRemainderDegree(32) on a degree-31 polynomial: %v", err)
	}
	if err := verifyRemainderDegree(xs, ys, 33); err != nil {
		t.Errorf("verifyRemainderDegree(33) on a degree-31 polynomial: %v", err)
	}
	if err := verifyRemainderDegree(xs, ys, 31); err == nil {
		t.Error("expected verifyRemainderDegree(31) on a degree-31 polynomial to reject")
	}
}

func TestFRIRejectsUnderstatedDegreeBound(t *testing.T) {
	domain, err := NewArithmeticDomain(256)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	domain = domain.WithOffset(core.NewElem128FromUint64(7))
	codeword := lowDegreeCodeword(t, domain, 40)

	proverChannel := utils.NewChannel()
	proof, err := ProveFRI(proverChannel, domain, codeword, 41, 8, 0)
	if err != nil {
		t.Fatalf("ProveFRI failed: %v", err)
	}

	verifierChannel := utils.NewChannel()
	_, ok, err := VerifyFRI(verifierChannel, domain, proof, 4, 8, 0)
	if err == nil && ok {
		t.Error("expected a remainder whose true degree exceeds the claimed bound to be rejected")
	}
}

func TestFRIRejectsWrongGrinding(t *testing.T) {
	domain, err := NewArithmeticDomain(256)
	if err != nil {
		t.Fatalf("NewArithmeticDomain failed: %v", err)
	}
	domain = domain.WithOffset(core.NewElem128FromUint64(7))
	codeword := lowDegreeCodeword(t, domain, 3)

	proverChannel := utils.NewChannel()
	proof, err := ProveFRI(proverChannel, domain, codeword, 4, 8, 0)
	if err != nil {
		t.Fatalf("ProveFRI failed: %v", err)
	}

	verifierChannel := utils.NewChannel()
	_, _, err = VerifyFRI(verifierChannel, domain, proof, 4, 8, 24)
	if err == nil {
		t.Error("expected verification at a higher grinding difficulty than was satisfied to fail")
	}
}
