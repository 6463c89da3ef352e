package protocols

import (
	"fmt"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/utils"
)

// ldeCosetOffset shifts the low-degree-extension domain off of every
// power-of-two-order subgroup used elsewhere in the protocol: 7 was picked
// because 7^(2^40) != 1 in F128 (checked independently of this codebase),
// so no LDE domain built from it ever collides with the trace domain or
// any FRI fold domain it gets quartered down to.
var ldeCosetOffset = core.NewElem128FromUint64(7)

// Prove builds a STARK proof that executing the program committed to by
// claim.ProgramHash on the given execution trace columns produces
// claim.Outputs. columns[c][s] is the value of trace column c at step s;
// Prove pads it to a power-of-two length itself.
func Prove(cfg *utils.Config, claim Claim, columns [][]core.Elem128) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("protocols: invalid config: %w", err)
	}
	if err := claim.Validate(); err != nil {
		return nil, fmt.Errorf("protocols: invalid claim: %w", err)
	}

	trace, err := NewTrace(columns)
	if err != nil {
		return nil, fmt.Errorf("protocols: building trace: %w", err)
	}

	channel := utils.NewChannel()
	channel.Absorb(claim.Bytes())

	ldeDomain, err := NewArithmeticDomain(trace.Length() * cfg.ExtensionFactor)
	if err != nil {
		return nil, fmt.Errorf("protocols: building LDE domain: %w", err)
	}
	ldeDomain = ldeDomain.WithOffset(ldeCosetOffset)

	rows, err := trace.Extend(ldeDomain)
	if err != nil {
		return nil, fmt.Errorf("protocols: extending trace: %w", err)
	}
	traceTree, err := CommitRows(rows)
	if err != nil {
		return nil, fmt.Errorf("protocols: committing extended trace: %w", err)
	}
	channel.AbsorbDigest(traceTree.Root())

	z := channel.FieldChallenge128()
	deep := ComputeDeepValues(trace, z)
	channel.Absorb(deep.Bytes())

	numCoeffs := 2 * trace.NumColumns()
	coefficients := make([]core.Elem128, numCoeffs)
	for i := range coefficients {
		coefficients[i] = channel.FieldChallenge128()
	}

	compositionPoly, err := BuildCompositionPolynomial(trace, deep, coefficients)
	if err != nil {
		return nil, fmt.Errorf("protocols: building composition polynomial: %w", err)
	}
	codeword := compositionPoly.EvalMany(core.F128, ldeDomain.Elements())

	// Each column polynomial has degree < trace.Length(); clearing its pole
	// at z (or z*g) with DivByLinear drops that by one, so the composition
	// - a linear combination of such quotients - has degree <= trace.Length()-2.
	maxDegreePlus1 := trace.Length() - 1
	friProof, err := ProveFRI(channel, ldeDomain, codeword, maxDegreePlus1, cfg.NumQueries, cfg.GrindingFactor)
	if err != nil {
		return nil, fmt.Errorf("protocols: running FRI: %w", err)
	}

	traceProof, tracePositions, err := traceTree.BatchProve(friProof.QueryPositions)
	if err != nil {
		return nil, fmt.Errorf("protocols: opening trace at query positions: %w", err)
	}
	traceRows := make([][]core.Elem128, len(tracePositions))
	for i, p := range tracePositions {
		traceRows[i] = rows[p]
	}

	return &Proof{
		TraceRoot:               traceTree.Root(),
		Deep:                    deep,
		CompositionCoefficients: coefficients,
		FRI:                     friProof,
		TraceOpening: TraceOpening{
			Positions: tracePositions,
			Rows:      traceRows,
			Proof:     traceProof,
		},
	}, nil
}

// Verify checks proof against claim under cfg, replaying the same
// transcript sequence Prove used.
func Verify(cfg *utils.Config, claim Claim, proof *Proof) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, fmt.Errorf("protocols: invalid config: %w", err)
	}
	if err := claim.Validate(); err != nil {
		return false, fmt.Errorf("protocols: invalid claim: %w", err)
	}

	paddedLength := utils.NextPowerOfTwo(claim.TraceLength)
	ldeDomain, err := NewArithmeticDomain(paddedLength * cfg.ExtensionFactor)
	if err != nil {
		return false, fmt.Errorf("protocols: building LDE domain: %w", err)
	}
	ldeDomain = ldeDomain.WithOffset(ldeCosetOffset)

	channel := utils.NewChannel()
	channel.Absorb(claim.Bytes())
	channel.AbsorbDigest(proof.TraceRoot)

	z := channel.FieldChallenge128()
	if !z.Equal(proof.Deep.Z) {
		return false, fmt.Errorf("protocols: out-of-domain point does not match the transcript")
	}
	channel.Absorb(proof.Deep.Bytes())

	numColumns := len(proof.Deep.TraceAtZ)
	numCoeffs := 2 * numColumns
	if len(proof.CompositionCoefficients) != numCoeffs {
		return false, fmt.Errorf("protocols: expected %d composition coefficients, got %d", numCoeffs, len(proof.CompositionCoefficients))
	}
	for i := range proof.CompositionCoefficients {
		c := channel.FieldChallenge128()
		if !c.Equal(proof.CompositionCoefficients[i]) {
			return false, fmt.Errorf("protocols: composition coefficient %d does not match the transcript", i)
		}
	}

	maxDegreePlus1 := paddedLength - 1
	queryPositions, ok, err := VerifyFRI(channel, ldeDomain, proof.FRI, maxDegreePlus1, cfg.NumQueries, cfg.GrindingFactor)
	if err != nil {
		return false, fmt.Errorf("protocols: FRI verification failed: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := verifyTraceOpening(ldeDomain, claim, proof, queryPositions); err != nil {
		return false, err
	}
	return true, nil
}

// verifyTraceOpening checks the proof's trace openings authenticate
// against TraceRoot, and that each opened row reproduces the FRI layer-0
// codeword value at the same position under the DEEP composition formula -
// the check that binds the FRI proof of low degree back to the actual
// committed execution trace.
func verifyTraceOpening(ldeDomain ArithmeticDomain, claim Claim, proof *Proof, queryPositions []int) error {
	wanted := sortUniqueInts(queryPositions)
	if !intSlicesEqual(wanted, proof.TraceOpening.Positions) {
		return fmt.Errorf("protocols: trace opening positions do not match the FRI query positions")
	}

	leafValues := make([][][]byte, len(proof.TraceOpening.Rows))
	for i, row := range proof.TraceOpening.Rows {
		values := make([][]byte, len(row))
		for j, v := range row {
			values[j] = v.Bytes()
		}
		leafValues[i] = values
	}
	ok, err := core.VerifyBatch(proof.TraceRoot, ldeDomain.Length, proof.TraceOpening.Positions, leafValues, proof.TraceOpening.Proof)
	if err != nil {
		return fmt.Errorf("protocols: verifying trace batch proof: %w", err)
	}
	if !ok {
		return fmt.Errorf("protocols: trace batch proof does not match its root")
	}

	if len(proof.FRI.LayerProofs) == 0 {
		return fmt.Errorf("protocols: FRI proof has no layers to cross-check against the trace")
	}
	layer0 := proof.FRI.LayerProofs[0]
	layer0Values := make(map[int]core.Elem128, len(layer0.Positions))
	for i, p := range layer0.Positions {
		layer0Values[p] = layer0.Values[i]
	}

	for i, pos := range proof.TraceOpening.Positions {
		x := ldeDomain.At(pos)
		got, err := EvalCompositionAt(proof.TraceOpening.Rows[i], x, proof.Deep, proof.CompositionCoefficients)
		if err != nil {
			return fmt.Errorf("protocols: evaluating composition at position %d: %w", pos, err)
		}
		want, ok := layer0Values[pos]
		if !ok {
			return fmt.Errorf("protocols: FRI layer 0 has no opening at queried position %d", pos)
		}
		if !got.Equal(want) {
			return fmt.Errorf("protocols: trace opening at position %d is inconsistent with the FRI codeword", pos)
		}
	}
	return nil
}
