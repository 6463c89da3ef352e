package core

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// p128 is the modulus of the 128-bit field: p = 2^128 - 45*2^40 + 1.
// It has 2-adicity 40: p-1 = 2^40 * (2^88 - 45), which is the source of the
// "L*E <= 2^40" ceiling on trace length times extension factor.
var p128 = mustUint256("0xffffffffffffffffffffd30000000001")

// p128Minus2 is cached for Fermat-inverse exponentiation.
var p128Minus2 = new(uint256.Int).Sub(p128, uint256.NewInt(2))

// g128TwoAdicGenerator is a primitive 2^40-th root of unity in F128.
var g128TwoAdicGenerator = mustUint256("0x120532e7b364080a86b8723e1920f4aa")

func mustUint256(hex string) *uint256.Int {
	z, err := uint256.FromHex(hex)
	if err != nil {
		panic("core: bad field128 constant: " + err.Error())
	}
	return z
}

// Elem128 is an element of the 128-bit prime field F_p, p = 2^128 - 45*2^40 + 1.
// It is backed by a 256-bit integer (github.com/holiman/uint256) with the top
// 128 bits always zero; every Elem128 that escapes this package is canonical.
type Elem128 struct {
	v uint256.Int
}

// NewElem128FromUint64 lifts a uint64 into F128.
func NewElem128FromUint64(x uint64) Elem128 {
	return Elem128{v: *uint256.NewInt(x)}
}

// NewElem128FromWords builds a field element from its low/high 64-bit halves,
// value = lo + hi*2^64, reducing into canonical form.
func NewElem128FromWords(lo, hi uint64) Elem128 {
	v := new(uint256.Int).SetUint64(hi)
	v.Lsh(v, 64)
	v.Or(v, new(uint256.Int).SetUint64(lo))
	if v.Cmp(p128) >= 0 {
		v.Mod(v, p128)
	}
	return Elem128{v: *v}
}

// Zero128 is the additive identity of F128.
func Zero128() Elem128 { return Elem128{} }

// One128 is the multiplicative identity of F128.
func One128() Elem128 { return Elem128{v: *uint256.NewInt(1)} }

// Words returns the low/high 64-bit halves of the canonical value.
func (a Elem128) Words() (lo, hi uint64) {
	return a.v[0], a.v[1]
}

// IsZero reports whether a is the additive identity.
func (a Elem128) IsZero() bool { return a.v.IsZero() }

// Equal reports whether a and b are the same field element.
func (a Elem128) Equal(b Elem128) bool { return a.v.Eq(&b.v) }

// Add returns a+b using the same modulus-complement construction as F64: the
// intermediate p-b is never added directly to a without first checking which
// branch keeps every partial sum below p.
func (a Elem128) Add(b Elem128) Elem128 {
	z := new(uint256.Int).Sub(p128, &b.v)
	if a.v.Lt(z) {
		diff := new(uint256.Int).Sub(z, &a.v)
		res := new(uint256.Int).Sub(p128, diff)
		return Elem128{v: *res}
	}
	res := new(uint256.Int).Sub(&a.v, z)
	return Elem128{v: *res}
}

// Sub returns a-b.
func (a Elem128) Sub(b Elem128) Elem128 {
	if a.v.Lt(&b.v) {
		diff := new(uint256.Int).Sub(&b.v, &a.v)
		res := new(uint256.Int).Sub(p128, diff)
		return Elem128{v: *res}
	}
	res := new(uint256.Int).Sub(&a.v, &b.v)
	return Elem128{v: *res}
}

// Neg returns -a.
func (a Elem128) Neg() Elem128 {
	if a.v.IsZero() {
		return a
	}
	res := new(uint256.Int).Sub(p128, &a.v)
	return Elem128{v: *res}
}

// Mul returns a*b. The schoolbook 128x128 product fits exactly in 256 bits
// (no overflow, since both operands are < 2^128); MulMod then folds that
// product back modulo p using 512-bit-precise division, which is the
// uint256-backed stand-in for the hand-rolled three-limb reduction the
// modulus p = 2^128 - 45*2^40 + 1 otherwise invites.
func (a Elem128) Mul(b Elem128) Elem128 {
	res := new(uint256.Int).MulMod(&a.v, &b.v, p128)
	return Elem128{v: *res}
}

// Square returns a*a.
func (a Elem128) Square() Elem128 { return a.Mul(a) }

// Exp returns a^e for an arbitrary (up to 256-bit) exponent via
// square-and-multiply from the least-significant bit.
func (a Elem128) Exp(e *uint256.Int) Elem128 {
	if e.IsZero() {
		return One128()
	}
	if a.v.IsZero() {
		return Zero128()
	}
	result := One128()
	base := a
	exp := new(uint256.Int).Set(e)
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)
	for exp.Cmp(zero) > 0 {
		bit := new(uint256.Int).And(exp, one)
		if !bit.IsZero() {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp.Rsh(exp, 1)
	}
	return result
}

// ExpUint64 is a convenience wrapper around Exp for small exponents.
func (a Elem128) ExpUint64(e uint64) Elem128 {
	return a.Exp(uint256.NewInt(e))
}

// Inv returns the multiplicative inverse of a, or 0 if a is 0 (by convention).
// Computed via Fermat's little theorem: a^(p-2).
func (a Elem128) Inv() Elem128 {
	if a.v.IsZero() {
		return Zero128()
	}
	return a.Exp(p128Minus2)
}

// Div returns a/b; b=0 follows Inv's zero convention.
func (a Elem128) Div(b Elem128) Elem128 {
	return a.Mul(b.Inv())
}

// RootOfUnity128 returns a primitive root of unity of the given order, which
// must be a power of two not exceeding 2^40 (F128's two-adicity, and hence
// the ceiling on trace length * extension factor, per the data model).
func RootOfUnity128(order uint64) Elem128 {
	if order == 0 || order&(order-1) != 0 {
		panic("core: order must be a power of two")
	}
	if order > 1<<40 {
		panic("core: order exceeds F128 two-adicity (2^40)")
	}
	g := Elem128{v: *g128TwoAdicGenerator}
	return g.ExpUint64((1 << 40) / order)
}

// Bytes returns the canonical little-endian byte image of a, used for Merkle
// leaf hashing and wire encoding (16 bytes, low word first).
func (a Elem128) Bytes() []byte {
	lo, hi := a.Words()
	out := make([]byte, 16)
	for i := 0; i < 8; i++ {
		out[i] = byte(lo >> (8 * i))
		out[8+i] = byte(hi >> (8 * i))
	}
	return out
}

// MarshalJSON renders a as a hex string of its canonical byte image.
func (a Elem128) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(a.Bytes()))
}

// UnmarshalJSON parses the hex encoding MarshalJSON produces.
func (a *Elem128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("core: decoding field element hex: %w", err)
	}
	if len(b) != 16 {
		return fmt.Errorf("core: field element must be 16 bytes, got %d", len(b))
	}
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(b[i]) << (8 * i)
		hi |= uint64(b[8+i]) << (8 * i)
	}
	*a = NewElem128FromWords(lo, hi)
	return nil
}
