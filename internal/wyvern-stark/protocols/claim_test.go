package protocols

import (
	"testing"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
)

func TestClaimValidateRejectsNonPositiveTraceLength(t *testing.T) {
	claim := Claim{ProgramHash: core.HashBytes([]byte("p")), TraceLength: 0}
	if err := claim.Validate(); err == nil {
		t.Fatal("expected an error for a zero trace length")
	}
}

func TestClaimBytesChangesWithOutputs(t *testing.T) {
	base := Claim{ProgramHash: core.HashBytes([]byte("p")), TraceLength: 8, Outputs: []core.Elem128{core.NewElem128FromUint64(1)}}
	changed := base
	changed.Outputs = []core.Elem128{core.NewElem128FromUint64(2)}

	if string(base.Bytes()) == string(changed.Bytes()) {
		t.Fatal("expected different outputs to serialize differently")
	}
}
