package core

import "math/bits"

// P64 is the modulus of the 64-bit field: p = 2^64 - 2^32 + 1 (the Goldilocks prime).
// It has 2-adicity 32: p-1 = 2^32 * (2^32-1).
const P64 uint64 = 0xFFFFFFFF00000001

// epsilon64 = 2^64 - p = 2^32 - 1, the constant the Goldilocks reduction folds back in.
const epsilon64 uint64 = 0xFFFFFFFF

// g64TwoAdicGenerator is a primitive 2^32-th root of unity in F64.
const g64TwoAdicGenerator uint64 = 1753635133440165772

// Elem64 is an element of the 64-bit prime field F_p, p = 2^64 - 2^32 + 1.
// Every Elem64 that escapes this package is canonical: strictly less than P64.
type Elem64 uint64

// NewElem64 reduces x into canonical form.
func NewElem64(x uint64) Elem64 {
	if x >= P64 {
		return Elem64(x - P64)
	}
	return Elem64(x)
}

// Zero64 is the additive identity of F64.
func Zero64() Elem64 { return 0 }

// One64 is the multiplicative identity of F64.
func One64() Elem64 { return 1 }

// Uint64 returns the canonical unsigned integer representation.
func (a Elem64) Uint64() uint64 { return uint64(a) }

// IsZero reports whether a is the additive identity.
func (a Elem64) IsZero() bool { return a == 0 }

// Equal reports whether a and b are the same field element.
func (a Elem64) Equal(b Elem64) bool { return a == b }

// Add returns a+b using the modulus-complement trick: it never forms a sum
// that could overflow a uint64 register.
func (a Elem64) Add(b Elem64) Elem64 {
	z := P64 - uint64(b)
	aa := uint64(a)
	if aa < z {
		return Elem64(P64 - (z - aa))
	}
	return Elem64(aa - z)
}

// Sub returns a-b.
func (a Elem64) Sub(b Elem64) Elem64 {
	aa, bb := uint64(a), uint64(b)
	if aa < bb {
		return Elem64(P64 - (bb - aa))
	}
	return Elem64(aa - bb)
}

// Neg returns -a.
func (a Elem64) Neg() Elem64 {
	if a == 0 {
		return 0
	}
	return Elem64(P64 - uint64(a))
}

// Mul returns a*b using Goldilocks reduction of the 128-bit product: the
// identity 2^64 ≡ 2^32-1 (mod p) is applied twice, with one corrective
// subtraction to keep the result canonical.
func (a Elem64) Mul(b Elem64) Elem64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return reduceGoldilocks(hi, lo)
}

func reduceGoldilocks(hi, lo uint64) Elem64 {
	hiHi := hi >> 32
	hiLo := hi & epsilon64

	t0, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		t0 -= epsilon64
	}

	t1 := hiLo * epsilon64

	t2, carry := bits.Add64(t0, t1, 0)
	t3 := t2
	if carry != 0 {
		t3 += epsilon64
	}

	if t3 >= P64 {
		t3 -= P64
	}
	return Elem64(t3)
}

// Square returns a*a.
func (a Elem64) Square() Elem64 { return a.Mul(a) }

// Exp returns a^e via square-and-multiply on the binary expansion of e.
// a=0 with e>0 returns 0; any base raised to e=0 returns 1.
func (a Elem64) Exp(e uint64) Elem64 {
	if e == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	result := Elem64(1)
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a, or 0 if a is 0 (by convention,
// since 0 has no inverse). Computed via Fermat's little theorem: a^(p-2).
func (a Elem64) Inv() Elem64 {
	if a == 0 {
		return 0
	}
	return a.Exp(P64 - 2)
}

// Div returns a/b; b=0 follows Inv's zero convention.
func (a Elem64) Div(b Elem64) Elem64 {
	return a.Mul(b.Inv())
}

// RootOfUnity64 returns a primitive root of unity of the given order, which
// must be a power of two not exceeding 2^32 (F64's 2-adicity).
func RootOfUnity64(order uint64) Elem64 {
	if order == 0 || order&(order-1) != 0 {
		panic("core: order must be a power of two")
	}
	if order > 1<<32 {
		panic("core: order exceeds F64 two-adicity (2^32)")
	}
	g := Elem64(g64TwoAdicGenerator)
	return g.Exp((1 << 32) / order)
}
