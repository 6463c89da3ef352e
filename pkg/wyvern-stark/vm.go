package wyvernstark

import (
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/protocols"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/vm"
)

// Run executes program on the reference stack machine and returns the
// column-major trace Prove expects, alongside the program's final stack
// contents bottom-first.
func Run(program Program) ([][]FieldElement, []FieldElement, error) {
	columns, finalStack, err := vm.Run(program)
	if err != nil {
		return nil, nil, wrap(ErrTraceConstruction, "executing program", err)
	}
	return columns, finalStack, nil
}

// ProgramHash commits to a program's instruction sequence for embedding in
// a Claim.
func ProgramHash(program Program) Digest {
	var data []byte
	for _, instr := range program {
		data = append(data, byte(instr.Op))
		var argBuf [8]byte
		for i := 0; i < 8; i++ {
			argBuf[i] = byte(instr.Arg >> (8 * i))
		}
		data = append(data, argBuf[:]...)
	}
	return core.HashBytes(data)
}

// Prove builds a STARK proof that executing the program committed to by
// claim.ProgramHash on the given execution trace columns produces
// claim.Outputs.
func Prove(cfg *Config, claim Claim, columns [][]FieldElement) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrap(ErrInvalidConfig, "validating config", err)
	}
	if err := claim.Validate(); err != nil {
		return nil, wrap(ErrInvalidClaim, "validating claim", err)
	}
	proof, err := protocols.Prove(cfg, claim, columns)
	if err != nil {
		return nil, wrap(ErrProofGeneration, "generating proof", err)
	}
	return proof, nil
}

// Verify checks proof against claim under cfg.
func Verify(cfg *Config, claim Claim, proof *Proof) (bool, error) {
	if proof == nil {
		return false, wrap(ErrMalformedProof, "proof is nil", nil)
	}
	if err := cfg.Validate(); err != nil {
		return false, wrap(ErrInvalidConfig, "validating config", err)
	}
	if err := claim.Validate(); err != nil {
		return false, wrap(ErrInvalidClaim, "validating claim", err)
	}
	ok, err := protocols.Verify(cfg, claim, proof)
	if err != nil {
		return false, wrap(ErrProofVerification, "verifying proof", err)
	}
	return ok, nil
}
