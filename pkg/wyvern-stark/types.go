package wyvernstark

import (
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/protocols"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/utils"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/vm"
)

// FieldElement is a public alias for an element of the 128-bit field
// statements and proofs are expressed over.
type FieldElement = core.Elem128

// Digest is a public alias for a 32-byte commitment digest.
type Digest = core.Digest

// Config carries the public parameters a prover and verifier must agree on:
// trace length, extension factor, FRI query count, and grinding difficulty.
type Config = utils.Config

// DefaultConfig returns parameters adequate for a moderate-soundness proof
// over a modest trace.
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// Claim is the public statement a Proof attests to.
type Claim = protocols.Claim

// Proof is the zkSTARK proof object a prover sends a verifier.
type Proof = protocols.Proof

// Opcode identifies one instruction of the reference stack machine used to
// produce execution traces.
type Opcode = vm.Opcode

const (
	OpNoop = vm.OpNoop
	OpPush = vm.OpPush
	OpDup  = vm.OpDup
	OpDrop = vm.OpDrop
	OpSwap = vm.OpSwap
	OpAdd  = vm.OpAdd
	OpSub  = vm.OpSub
	OpMul  = vm.OpMul
)

// Instruction is one program step for the reference stack machine.
type Instruction = vm.Instruction

// Program is an ordered list of Instructions.
type Program = vm.Program
