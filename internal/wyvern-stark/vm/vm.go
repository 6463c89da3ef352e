// Package vm is the trace-producing collaborator the STARK core treats as
// an external dependency: a minimal stack machine whose job is only to turn
// a program into the column-major execution trace protocols.Prove expects.
// Instruction semantics, decoding, and the VM's own correctness are out of
// scope for the proof system itself - this package exists so the protocols
// package has something concrete to prove statements about in tests and
// examples.
package vm

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

// Opcode identifies one stack machine instruction.
type Opcode int

const (
	OpNoop Opcode = iota
	OpPush
	OpDup
	OpDrop
	OpSwap
	OpAdd
	OpSub
	OpMul
)

// Instruction is one program step: an opcode plus its immediate operand
// (only meaningful for OpPush).
type Instruction struct {
	Op  Opcode
	Arg uint64
}

// Program is an ordered list of instructions.
type Program []Instruction

// StackDepth is the fixed number of trace columns reserved for stack
// slots; programs that would need a deeper stack are rejected rather than
// growing the trace width mid-run, keeping every column the same length.
const StackDepth = 8

// Run executes program and returns the column-major execution trace (one
// column per stack slot plus one program-counter column, one row per step
// including the initial state before any instruction executes) alongside
// the real final stack contents, bottom first.
func Run(program Program) ([][]core.Elem128, []core.Elem128, error) {
	numRows := len(program) + 1
	columns := make([][]core.Elem128, StackDepth+1)
	for i := range columns {
		columns[i] = make([]core.Elem128, numRows)
	}

	stack := make([]core.Elem128, 0, StackDepth)
	recordRow := func(row, pc int) error {
		if len(stack) > StackDepth {
			return fmt.Errorf("vm: stack depth %d exceeds column budget %d at row %d", len(stack), StackDepth, row)
		}
		for i := 0; i < StackDepth; i++ {
			if i < len(stack) {
				columns[i][row] = stack[len(stack)-1-i]
			} else {
				columns[i][row] = core.Zero128()
			}
		}
		columns[StackDepth][row] = core.NewElem128FromUint64(uint64(pc))
		return nil
	}

	if err := recordRow(0, 0); err != nil {
		return nil, nil, err
	}

	for step, instr := range program {
		switch instr.Op {
		case OpNoop:
			// no stack effect
		case OpPush:
			stack = append(stack, core.NewElem128FromUint64(instr.Arg))
		case OpDup:
			if len(stack) == 0 {
				return nil, nil, fmt.Errorf("vm: DUP on empty stack at step %d", step)
			}
			stack = append(stack, stack[len(stack)-1])
		case OpDrop:
			if len(stack) == 0 {
				return nil, nil, fmt.Errorf("vm: DROP on empty stack at step %d", step)
			}
			stack = stack[:len(stack)-1]
		case OpSwap:
			if len(stack) < 2 {
				return nil, nil, fmt.Errorf("vm: SWAP needs 2 elements at step %d", step)
			}
			n := len(stack)
			stack[n-1], stack[n-2] = stack[n-2], stack[n-1]
		case OpAdd, OpSub, OpMul:
			if len(stack) < 2 {
				return nil, nil, fmt.Errorf("vm: binary op needs 2 elements at step %d", step)
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			var r core.Elem128
			switch instr.Op {
			case OpAdd:
				r = a.Add(b)
			case OpSub:
				r = a.Sub(b)
			case OpMul:
				r = a.Mul(b)
			}
			stack = append(stack, r)
		default:
			return nil, nil, fmt.Errorf("vm: unknown opcode %d at step %d", instr.Op, step)
		}

		if err := recordRow(step+1, step+1); err != nil {
			return nil, nil, err
		}
	}

	finalStack := make([]core.Elem128, len(stack))
	copy(finalStack, stack)
	return columns, finalStack, nil
}
