package protocols

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// Claim is the public statement a Proof attests to: "running ProgramHash on
// a trace of TraceLength steps produces Outputs on the stack". The prover
// and verifier must agree on a Claim out of band; only the Proof travels
// between them.
type Claim struct {
	// ProgramHash commits to the instruction sequence that was executed.
	ProgramHash core.Digest

	// TraceLength is the unpadded number of execution steps.
	TraceLength int

	// Outputs are the values the program is claimed to have left on the
	// stack (or written to output) at termination, in emission order.
	Outputs []core.Elem128
}

// Validate checks the claim is well-formed enough to attempt a proof over.
func (c Claim) Validate() error {
	if c.TraceLength <= 0 {
		return fmt.Errorf("protocols: claim trace length must be positive, got %d", c.TraceLength)
	}
	return nil
}

// Bytes serializes the claim into the bytes absorbed first into every
// transcript, binding the proof to exactly this statement.
func (c Claim) Bytes() []byte {
	out := append([]byte(nil), c.ProgramHash.Bytes()...)
	var lenBuf [8]byte
	putUint64(lenBuf[:], uint64(c.TraceLength))
	out = append(out, lenBuf[:]...)
	putUint64(lenBuf[:], uint64(len(c.Outputs)))
	out = append(out, lenBuf[:]...)
	for _, o := range c.Outputs {
		out = append(out, o.Bytes()...)
	}
	return out
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
