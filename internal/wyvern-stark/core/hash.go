package core

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the width, in bytes, of every digest this package produces.
const DigestSize = 32

// Digest is a fixed-width hash output: a Merkle node, a leaf commitment, or
// a Fiat-Shamir transcript state.
type Digest [DigestSize]byte

// domain separation tags, prepended to every hash input so that a leaf
// digest can never collide with an internal-node digest or a transcript
// absorb, even for identical byte payloads.
const (
	domainLeaf      byte = 0x00
	domainNode      byte = 0x01
	domainTranscript byte = 0x02
)

// HashLeaf commits to an ordered list of field-element byte images (the
// Words/Bytes encoding of Elem64 or Elem128), used to build a Merkle leaf
// from one row of the execution trace or one FRI-layer value.
func HashLeaf(values ...[]byte) Digest {
	h := sha3.New256()
	h.Write([]byte{domainLeaf})
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(values)))
	h.Write(lenBuf[:])
	for _, v := range values {
		h.Write(v)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// HashNode combines two child digests into their parent, in a binary
// Merkle tree.
func HashNode(left, right Digest) Digest {
	h := sha3.New256()
	h.Write([]byte{domainNode})
	h.Write(left[:])
	h.Write(right[:])
	var out Digest
	h.Sum(out[:0])
	return out
}

// HashBytes hashes arbitrary bytes under the transcript domain tag; it
// backs the Fiat-Shamir Channel's absorb step and general-purpose digesting
// of serialized proof items.
func HashBytes(data ...[]byte) Digest {
	h := sha3.New256()
	h.Write([]byte{domainTranscript})
	for _, d := range data {
		h.Write(d)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// Bytes returns the digest's underlying byte slice.
func (d Digest) Bytes() []byte { return d[:] }

// IsZero reports whether d is the all-zero digest (the zero value, e.g. the
// starting state of a fresh transcript).
func (d Digest) IsZero() bool {
	for _, b := range d {
		if b != 0 {
			return false
		}
	}
	return true
}

// MarshalJSON renders d as a hex string, so proofs serialize to readable JSON
// instead of an array of 32 small integers.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(d[:]))
}

// UnmarshalJSON parses the hex encoding MarshalJSON produces.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("core: decoding digest hex: %w", err)
	}
	if len(b) != DigestSize {
		return fmt.Errorf("core: digest must be %d bytes, got %d", DigestSize, len(b))
	}
	copy(d[:], b)
	return nil
}
