// Command wyvern-prover reads a program as one instruction per line on
// stdin, executes it, proves the resulting execution trace, and writes the
// proof as JSON to stdout.
//
// Instruction syntax: an opcode name, optionally followed by a decimal
// argument for PUSH.
//
//	PUSH 7
//	PUSH 9
//	ADD
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	wyvernstark "github.com/wyvern/wyvern-stark/pkg/wyvern-stark"
)

func main() {
	program, err := readProgram(os.Stdin)
	if err != nil {
		fatal(fmt.Sprintf("failed to read program: %v", err))
	}
	if len(program) == 0 {
		fatal("program must have at least one instruction")
	}

	logStderr(fmt.Sprintf("executing %d-instruction program...", len(program)))
	columns, finalStack, err := wyvernstark.Run(program)
	if err != nil {
		fatal(fmt.Sprintf("execution failed: %v", err))
	}
	logStderr(fmt.Sprintf("trace produced %d rows", len(columns[0])))

	claim := wyvernstark.Claim{
		ProgramHash: wyvernstark.ProgramHash(program),
		TraceLength: len(columns[0]),
		Outputs:     finalStack,
	}

	cfg := wyvernstark.DefaultConfig().WithTraceLength(len(columns[0]))

	logStderr("generating proof...")
	proof, err := wyvernstark.Prove(cfg, claim, columns)
	if err != nil {
		fatal(fmt.Sprintf("proof generation failed: %v", err))
	}
	logStderr(fmt.Sprintf("proof generated (%d bytes estimated)", proof.Size()))

	output := proofOutput{
		ProgramHash: fmt.Sprintf("%x", claim.ProgramHash.Bytes()),
		TraceLength: claim.TraceLength,
		Outputs:     wordsOf(finalStack),
		Proof:       proof,
	}
	encoded, err := json.Marshal(output)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize proof: %v", err))
	}
	os.Stdout.Write(encoded)
	os.Stdout.Write([]byte("\n"))
}

type proofOutput struct {
	ProgramHash string              `json:"program_hash"`
	TraceLength int                 `json:"trace_length"`
	Outputs     [][2]uint64         `json:"outputs"`
	Proof       *wyvernstark.Proof  `json:"proof"`
}

func wordsOf(xs []wyvernstark.FieldElement) [][2]uint64 {
	out := make([][2]uint64, len(xs))
	for i, x := range xs {
		lo, hi := x.Words()
		out[i] = [2]uint64{lo, hi}
	}
	return out
}

func readProgram(r *os.File) (wyvernstark.Program, error) {
	var program wyvernstark.Program
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		instr, err := parseInstruction(line)
		if err != nil {
			return nil, err
		}
		program = append(program, instr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

func parseInstruction(line string) (wyvernstark.Instruction, error) {
	fields := strings.Fields(line)
	op := strings.ToUpper(fields[0])
	switch op {
	case "NOOP":
		return wyvernstark.Instruction{Op: wyvernstark.OpNoop}, nil
	case "DUP":
		return wyvernstark.Instruction{Op: wyvernstark.OpDup}, nil
	case "DROP":
		return wyvernstark.Instruction{Op: wyvernstark.OpDrop}, nil
	case "SWAP":
		return wyvernstark.Instruction{Op: wyvernstark.OpSwap}, nil
	case "ADD":
		return wyvernstark.Instruction{Op: wyvernstark.OpAdd}, nil
	case "SUB":
		return wyvernstark.Instruction{Op: wyvernstark.OpSub}, nil
	case "MUL":
		return wyvernstark.Instruction{Op: wyvernstark.OpMul}, nil
	case "PUSH":
		if len(fields) != 2 {
			return wyvernstark.Instruction{}, fmt.Errorf("PUSH requires one argument: %q", line)
		}
		arg, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return wyvernstark.Instruction{}, fmt.Errorf("invalid PUSH argument %q: %w", fields[1], err)
		}
		return wyvernstark.Instruction{Op: wyvernstark.OpPush, Arg: arg}, nil
	default:
		return wyvernstark.Instruction{}, fmt.Errorf("unknown instruction %q", op)
	}
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "wyvern-prover:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
