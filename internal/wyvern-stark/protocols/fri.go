package protocols

import (
	"fmt"
	"sort"

	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/core"
	"github.com/wyvern/wyvern-stark/internal/wyvern-stark/utils"
)

// remainderThreshold is the codeword length at which FRI stops folding and
// sends the remaining codeword values directly, instead of committing to
// one more layer.
const remainderThreshold = 16

// FRILayerProof is the set of leaf openings needed, across every query, at
// one FRI layer: the positions opened, their committed values, and the
// single batch Merkle proof authenticating all of them against that
// layer's root.
type FRILayerProof struct {
	Positions []int
	Values    []core.Elem128
	Proof     core.BatchProof
}

// FRIProof is the full transcript of a quartic-folding FRI run: one root
// per folded layer, the directly-revealed final remainder codeword, the
// grinding nonce, and the per-layer query openings.
type FRIProof struct {
	LayerRoots []core.Digest
	// RemainderValues is the full, un-folded codeword of the last layer
	// (length <= remainderThreshold), revealed in the clear rather than
	// committed - it is small enough that doing so costs nothing, and lets
	// the verifier check its degree directly instead of trusting it.
	RemainderValues []core.Elem128
	Nonce           uint64
	LayerProofs     []FRILayerProof
	// QueryPositions is the prover's record of the positions it sampled,
	// kept for debugging/logging; the verifier never trusts it and always
	// re-derives its own positions from the transcript.
	QueryPositions []int
}

// ProveFRI commits to the quartic-folding layers of codeword (which must
// live on domain and be consistent with a polynomial of degree less than
// maxDegreePlus1), grinds a proof-of-work nonce, samples numQueries
// positions, and returns the resulting proof. It absorbs every layer root,
// the remainder codeword, and the nonce into channel in that order - the
// verifier must replay exactly this sequence to agree on the same
// challenges.
func ProveFRI(channel *utils.Channel, domain ArithmeticDomain, codeword []core.Elem128, maxDegreePlus1, numQueries, grindingFactor int) (*FRIProof, error) {
	if len(codeword) != domain.Length {
		return nil, fmt.Errorf("protocols: codeword length %d does not match domain length %d", len(codeword), domain.Length)
	}
	if maxDegreePlus1 <= 0 {
		return nil, fmt.Errorf("protocols: FRI max degree bound must be positive, got %d", maxDegreePlus1)
	}

	var layerRoots []core.Digest
	var layerTrees []*core.MerkleTree
	var layerValues [][]core.Elem128
	var layerDomains []ArithmeticDomain
	var alphas []core.Elem128

	curValues := codeword
	curDomain := domain
	degreeBound := maxDegreePlus1

	for len(curValues) > remainderThreshold {
		leaves := make([][]byte, len(curValues))
		for i, v := range curValues {
			leaves[i] = v.Bytes()
		}
		tree, err := core.NewMerkleTree(leaves)
		if err != nil {
			return nil, fmt.Errorf("protocols: committing FRI layer: %w", err)
		}
		channel.AbsorbDigest(tree.Root())
		alpha := channel.FieldChallenge128()

		foldedDomain, err := curDomain.QuarterDomain()
		if err != nil {
			return nil, fmt.Errorf("protocols: folding FRI domain: %w", err)
		}
		folded := make([]core.Elem128, foldedDomain.Length)
		for r := 0; r < foldedDomain.Length; r++ {
			idxs := core.CosetIndices(len(curValues), r)
			xs := make([]core.Elem128, core.QuarticFoldSize)
			ys := make([]core.Elem128, core.QuarticFoldSize)
			for k, idx := range idxs {
				xs[k] = curDomain.At(idx)
				ys[k] = curValues[idx]
			}
			v, err := core.QuarticFold(core.F128, xs, ys, alpha)
			if err != nil {
				return nil, err
			}
			folded[r] = v
		}

		layerRoots = append(layerRoots, tree.Root())
		layerTrees = append(layerTrees, tree)
		layerValues = append(layerValues, curValues)
		layerDomains = append(layerDomains, curDomain)
		alphas = append(alphas, alpha)

		curValues = folded
		curDomain = foldedDomain
		// Quarters alongside the domain; rounds up so the bound never
		// tightens past the true degree of what's left to fold.
		degreeBound = (degreeBound + core.QuarticFoldSize - 1) / core.QuarticFoldSize
	}

	if degreeBound <= 0 || degreeBound > len(curValues) {
		return nil, fmt.Errorf("protocols: FRI remainder degree bound %d does not fit the remainder domain of size %d", degreeBound, len(curValues))
	}
	channel.Absorb(elemsBytes(curValues))

	nonce := channel.FindGrindingNonce(grindingFactor)
	channel.Absorb(nonceBytes(nonce))

	queryPositions := channel.QueryIndices(numQueries, domain.Length)

	currentIdx := append([]int(nil), queryPositions...)
	layerProofs := make([]FRILayerProof, len(layerRoots))
	for l := range layerRoots {
		curLen := layerDomains[l].Length
		foldedLen := curLen / core.QuarticFoldSize

		var needed []int
		for _, idx := range currentIdx {
			residue := idx % foldedLen
			needed = append(needed, core.CosetIndices(curLen, residue)...)
		}
		proof, positions, err := layerTrees[l].BatchProve(needed)
		if err != nil {
			return nil, fmt.Errorf("protocols: batch-proving FRI layer %d: %w", l, err)
		}
		values := make([]core.Elem128, len(positions))
		for i, p := range positions {
			values[i] = layerValues[l][p]
		}
		layerProofs[l] = FRILayerProof{Positions: positions, Values: values, Proof: proof}

		for i, idx := range currentIdx {
			currentIdx[i] = idx % foldedLen
		}
	}

	return &FRIProof{
		LayerRoots:      layerRoots,
		RemainderValues: curValues,
		Nonce:           nonce,
		LayerProofs:     layerProofs,
		QueryPositions:  queryPositions,
	}, nil
}

// VerifyFRI replays the transcript ProveFRI produced, checks the grinding
// nonce, re-derives the same query positions, and checks every layer's
// batch opening is both authenticated against its root and consistent with
// the fold computed from the layer before it, down to the final remainder -
// which it additionally checks is itself consistent with a polynomial of
// degree less than maxDegreePlus1 quartered down through every layer, the
// check that actually bounds the codeword's degree rather than just its
// internal fold-consistency. It returns the independently re-derived query
// positions (into the original domain) so the caller can cross-check other
// commitments - the trace Merkle tree, in this protocol - opened at the
// same positions.
func VerifyFRI(channel *utils.Channel, domain ArithmeticDomain, proof *FRIProof, maxDegreePlus1, numQueries, grindingFactor int) ([]int, bool, error) {
	if maxDegreePlus1 <= 0 {
		return nil, false, fmt.Errorf("protocols: FRI max degree bound must be positive, got %d", maxDegreePlus1)
	}
	numLayers := len(proof.LayerRoots)
	alphas := make([]core.Elem128, numLayers)
	for l, root := range proof.LayerRoots {
		channel.AbsorbDigest(root)
		alphas[l] = channel.FieldChallenge128()
	}

	channel.Absorb(elemsBytes(proof.RemainderValues))

	if !channel.CheckGrinding(proof.Nonce, grindingFactor) {
		return nil, false, fmt.Errorf("protocols: FRI proof-of-work nonce %d does not meet difficulty %d", proof.Nonce, grindingFactor)
	}
	channel.Absorb(nonceBytes(proof.Nonce))

	queryPositions := channel.QueryIndices(numQueries, domain.Length)
	if len(proof.LayerProofs) != numLayers {
		return nil, false, fmt.Errorf("protocols: expected %d FRI layer proofs, got %d", numLayers, len(proof.LayerProofs))
	}

	currentIdx := append([]int(nil), queryPositions...)
	expected := make([]*core.Elem128, len(currentIdx))
	curDomain := domain
	curLen := domain.Length
	degreeBound := maxDegreePlus1

	for l := 0; l < numLayers; l++ {
		foldedLen := curLen / core.QuarticFoldSize

		var needed []int
		for _, idx := range currentIdx {
			residue := idx % foldedLen
			needed = append(needed, core.CosetIndices(curLen, residue)...)
		}
		sortedNeeded := sortUniqueInts(needed)
		if !intSlicesEqual(sortedNeeded, proof.LayerProofs[l].Positions) {
			return nil, false, fmt.Errorf("protocols: FRI layer %d opened a different position set than queries require", l)
		}

		lp := proof.LayerProofs[l]
		leafValues := make([][][]byte, len(lp.Values))
		for i, v := range lp.Values {
			leafValues[i] = [][]byte{v.Bytes()}
		}
		ok, err := core.VerifyBatch(proof.LayerRoots[l], curLen, lp.Positions, leafValues, lp.Proof)
		if err != nil {
			return nil, false, fmt.Errorf("protocols: verifying FRI layer %d batch proof: %w", l, err)
		}
		if !ok {
			return nil, false, fmt.Errorf("protocols: FRI layer %d batch proof does not match its root", l)
		}

		valueAt := make(map[int]core.Elem128, len(lp.Positions))
		for i, p := range lp.Positions {
			valueAt[p] = lp.Values[i]
		}

		nextIdx := make([]int, len(currentIdx))
		nextExpected := make([]core.Elem128, len(currentIdx))
		for i, idx := range currentIdx {
			if expected[i] != nil {
				v, ok := valueAt[idx]
				if !ok || !v.Equal(*expected[i]) {
					return nil, false, fmt.Errorf("protocols: FRI layer %d query %d fails fold consistency", l, i)
				}
			}
			residue := idx % foldedLen
			coset := core.CosetIndices(curLen, residue)
			xs := make([]core.Elem128, core.QuarticFoldSize)
			ys := make([]core.Elem128, core.QuarticFoldSize)
			for k, pos := range coset {
				xs[k] = curDomain.At(pos)
				v, ok := valueAt[pos]
				if !ok {
					return nil, false, fmt.Errorf("protocols: FRI layer %d missing opening for position %d", l, pos)
				}
				ys[k] = v
			}
			folded, err := core.QuarticFold(core.F128, xs, ys, alphas[l])
			if err != nil {
				return nil, false, err
			}
			nextIdx[i] = residue
			nextExpected[i] = folded
		}
		currentIdx = nextIdx
		for i := range nextExpected {
			expected[i] = &nextExpected[i]
		}
		next, err := curDomain.QuarterDomain()
		if err != nil {
			return nil, false, err
		}
		curDomain = next
		curLen = foldedLen
		degreeBound = (degreeBound + core.QuarticFoldSize - 1) / core.QuarticFoldSize
	}

	remainderXs := curDomain.Elements()
	if len(proof.RemainderValues) != len(remainderXs) {
		return nil, false, fmt.Errorf("protocols: FRI remainder has %d values, want %d", len(proof.RemainderValues), len(remainderXs))
	}
	if err := verifyRemainderDegree(remainderXs, proof.RemainderValues, degreeBound); err != nil {
		return nil, false, err
	}

	for i, idx := range currentIdx {
		want := proof.RemainderValues[idx]
		if expected[i] == nil || !want.Equal(*expected[i]) {
			return nil, false, fmt.Errorf("protocols: FRI query %d does not match the final remainder", i)
		}
	}
	return queryPositions, true, nil
}

// verifyRemainderDegree checks that ys, as evaluations of some polynomial
// at xs, is consistent with a polynomial of degree less than degreeBound.
// Rather than trust whatever the prover sent, it reconstructs the unique
// degree-(degreeBound-1) polynomial through the first degreeBound points
// and checks every other point actually lies on it.
func verifyRemainderDegree(xs, ys []core.Elem128, degreeBound int) error {
	if degreeBound <= 0 || degreeBound > len(xs) {
		return fmt.Errorf("protocols: FRI remainder degree bound %d does not fit the remainder domain of size %d", degreeBound, len(xs))
	}
	poly, err := core.LagrangeInterpolate(core.F128, xs[:degreeBound], ys[:degreeBound])
	if err != nil {
		return fmt.Errorf("protocols: interpolating FRI remainder: %w", err)
	}
	for i := degreeBound; i < len(xs); i++ {
		if !poly.Eval(core.F128, xs[i]).Equal(ys[i]) {
			return fmt.Errorf("protocols: FRI remainder is not a valid degree %d polynomial", degreeBound-1)
		}
	}
	return nil
}

func elemsBytes(xs []core.Elem128) []byte {
	out := make([]byte, 0, 16*len(xs))
	for _, x := range xs {
		out = append(out, x.Bytes()...)
	}
	return out
}

func nonceBytes(n uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(n >> (8 * i))
	}
	return b
}

func sortUniqueInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	sort.Ints(out)
	return out
}

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
