// Package wyvernstark is the public API of a zkSTARK proving and
// verification core for a small stack-based virtual machine.
//
// # Quick start
//
// Run a program on the reference VM to produce an execution trace, commit
// to a Claim about its outputs, and prove it:
//
//	program := wyvernstark.Program{
//		{Op: wyvernstark.OpPush, Arg: 2},
//		{Op: wyvernstark.OpPush, Arg: 3},
//		{Op: wyvernstark.OpAdd},
//	}
//	columns, finalStack, err := wyvernstark.Run(program)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	claim := wyvernstark.Claim{
//		ProgramHash: wyvernstark.ProgramHash(program),
//		TraceLength: len(columns[0]),
//		Outputs:     finalStack,
//	}
//
//	cfg := wyvernstark.DefaultConfig()
//	proof, err := wyvernstark.Prove(cfg, claim, columns)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok, err := wyvernstark.Verify(cfg, claim, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/wyvern-stark: public API (this package)
//   - internal/wyvern-stark/core: field arithmetic, NTT, Merkle trees, polynomials
//   - internal/wyvern-stark/utils: configuration and the Fiat-Shamir transcript
//   - internal/wyvern-stark/protocols: trace table, DEEP composition, FRI, prover/verifier
//   - internal/wyvern-stark/vm: the reference stack machine trace producer
//
// Implementation details under internal/ can change without breaking this
// package's API.
package wyvernstark
