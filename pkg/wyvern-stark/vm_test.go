package wyvernstark

import "testing"

func TestRunAdditionProgram(t *testing.T) {
	program := Program{
		{Op: OpPush, Arg: 2},
		{Op: OpPush, Arg: 3},
		{Op: OpAdd},
	}
	columns, finalStack, err := Run(program)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(columns[0]) != len(program)+1 {
		t.Fatalf("expected %d rows, got %d", len(program)+1, len(columns[0]))
	}
	if len(finalStack) != 1 {
		t.Fatalf("expected 1 value left on the stack, got %d", len(finalStack))
	}
	lo, hi := finalStack[0].Words()
	if lo != 5 || hi != 0 {
		t.Fatalf("expected 2+3=5 on the stack, got lo=%d hi=%d", lo, hi)
	}
}

func TestRunRejectsUnderflow(t *testing.T) {
	program := Program{{Op: OpAdd}}
	if _, _, err := Run(program); err == nil {
		t.Fatalf("expected an error executing ADD on an empty stack")
	}
}
