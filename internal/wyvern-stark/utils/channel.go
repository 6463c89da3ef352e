package utils

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// Channel is the centralized Fiat-Shamir transcript: every value the
// verifier would need to see before sampling a challenge is Absorb'd in a
// fixed order, and every challenge the protocol consumes - a field element,
// a query index, a grinding nonce check - is Squeeze'd from the same
// running state. Keeping all of this in one type is what makes the
// transcript linear: there is exactly one place a proof step could forget
// to bind something into the hash.
type Channel struct {
	state core.Digest
	log   []string
}

// NewChannel starts a transcript from the all-zero state.
func NewChannel() *Channel {
	return &Channel{log: make([]string, 0, 64)}
}

// Absorb mixes data into the transcript state. Used for Merkle roots,
// out-of-domain evaluations, and any other value the verifier must commit
// to before a challenge derived from it can be trusted.
func (c *Channel) Absorb(data []byte) {
	c.state = core.HashBytes(c.state.Bytes(), data)
	c.log = append(c.log, fmt.Sprintf("absorb:%x", data))
}

// AbsorbDigest absorbs a digest (typically a Merkle root).
func (c *Channel) AbsorbDigest(d core.Digest) {
	c.Absorb(d.Bytes())
}

// squeeze produces n pseudorandom bytes from the current state without
// consuming more than one ratchet step, then advances the state so the
// next squeeze (or absorb) never repeats this output.
func (c *Channel) squeeze(n int) []byte {
	out := make([]byte, 0, n)
	var counter [8]byte
	ctr := uint64(0)
	for len(out) < n {
		binary.LittleEndian.PutUint64(counter[:], ctr)
		d := core.HashBytes(c.state.Bytes(), counter[:])
		out = append(out, d.Bytes()...)
		ctr++
	}
	c.state = core.HashBytes(c.state.Bytes(), []byte("ratchet"))
	return out[:n]
}

// FieldChallenge128 squeezes a pseudorandom element of F128. The 16-byte
// draw is reduced modulo p128 rather than rejection-sampled: p128 is within
// 2^89 of 2^128, so the resulting statistical bias is far below any
// soundness error this protocol claims.
func (c *Channel) FieldChallenge128() core.Elem128 {
	b := c.squeeze(16)
	lo := binary.LittleEndian.Uint64(b[0:8])
	hi := binary.LittleEndian.Uint64(b[8:16])
	return core.NewElem128FromWords(lo, hi)
}

// FieldChallenge64 squeezes a pseudorandom element of F64 (the Goldilocks
// field). Proof-of-work grinding does not use it; see GrindingDigest.
func (c *Channel) FieldChallenge64() core.Elem64 {
	b := c.squeeze(8)
	return core.NewElem64(binary.LittleEndian.Uint64(b))
}

// QueryIndex squeezes an index uniformly (modulo negligible bias) in
// [0, domainSize).
func (c *Channel) QueryIndex(domainSize int) int {
	b := c.squeeze(8)
	v := binary.LittleEndian.Uint64(b)
	return int(v % uint64(domainSize))
}

// QueryIndices squeezes count (not necessarily distinct) indices in
// [0, domainSize).
func (c *Channel) QueryIndices(count, domainSize int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = c.QueryIndex(domainSize)
	}
	return out
}

// GrindingDigest returns the digest the prover must search a nonce against:
// state commits to everything absorbed so far, so a nonce found against it
// can't be reused across a different transcript prefix.
func (c *Channel) GrindingDigest(nonce uint64) core.Digest {
	var nb [8]byte
	binary.LittleEndian.PutUint64(nb[:], nonce)
	return core.HashBytes(c.state.Bytes(), []byte("pow"), nb[:])
}

// CheckGrinding reports whether nonce's grinding digest has at least bits
// leading zero bits. It does not mutate the transcript; callers absorb the
// accepted nonce explicitly afterward so it is bound into later challenges.
func (c *Channel) CheckGrinding(nonce uint64, bits int) bool {
	return leadingZeroBits(c.GrindingDigest(nonce)) >= bits
}

// FindGrindingNonce brute-forces the smallest nonce satisfying CheckGrinding,
// the prover-side counterpart to CheckGrinding.
func (c *Channel) FindGrindingNonce(bits int) uint64 {
	for nonce := uint64(0); ; nonce++ {
		if c.CheckGrinding(nonce, bits) {
			return nonce
		}
	}
}

func leadingZeroBits(d core.Digest) int {
	count := 0
	for _, b := range d {
		if b == 0 {
			count += 8
			continue
		}
		count += bits.LeadingZeros8(b)
		break
	}
	return count
}

// State returns a copy of the current transcript state, for tests that
// need to check two independently driven channels stay in sync.
func (c *Channel) State() core.Digest { return c.state }

// String renders the absorb log, for debugging failed proofs. Squeezes are
// not logged.
func (c *Channel) String() string { return strings.Join(c.log, " ") }
