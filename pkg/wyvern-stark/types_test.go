package wyvernstark

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestProgramHashDeterministic(t *testing.T) {
	program := Program{
		{Op: OpPush, Arg: 2},
		{Op: OpPush, Arg: 3},
		{Op: OpAdd},
	}
	h1 := ProgramHash(program)
	h2 := ProgramHash(program)
	if h1 != h2 {
		t.Fatalf("ProgramHash is not deterministic")
	}

	other := Program{
		{Op: OpPush, Arg: 2},
		{Op: OpPush, Arg: 4},
		{Op: OpAdd},
	}
	if h1 == ProgramHash(other) {
		t.Fatalf("expected different programs to hash differently")
	}
}
