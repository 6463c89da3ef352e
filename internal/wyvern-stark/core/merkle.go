package core

import (
	"fmt"
	"sort"
)

// MerkleTree commits to an ordered list of leaves (one per trace row, FRI
// codeword position, or layer value) and answers single or batched opening
// proofs against that commitment.
type MerkleTree struct {
	levels [][]Digest // levels[0] is the leaf level, levels[len-1] has one element: the root.
}

// NewMerkleTree hashes each leaf's byte images and builds the tree bottom-up.
// An odd-sized level pairs its last node with itself, matching the
// convention used by VerifyBatch/VerifyPath.
func NewMerkleTree(leafValues [][]byte) (*MerkleTree, error) {
	if len(leafValues) == 0 {
		return nil, fmt.Errorf("core: cannot build a Merkle tree over zero leaves")
	}
	leaves := make([]Digest, len(leafValues))
	for i, v := range leafValues {
		leaves[i] = HashLeaf(v)
	}
	return buildFromLeafDigests(leaves), nil
}

// NewMerkleTreeRows is like NewMerkleTree, but each leaf is committed from
// several byte images at once (e.g. every column value in one trace row).
func NewMerkleTreeRows(rows [][][]byte) (*MerkleTree, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("core: cannot build a Merkle tree over zero rows")
	}
	leaves := make([]Digest, len(rows))
	for i, row := range rows {
		leaves[i] = HashLeaf(row...)
	}
	return buildFromLeafDigests(leaves), nil
}

func buildFromLeafDigests(leaves []Digest) *MerkleTree {
	levels := [][]Digest{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]Digest, (len(current)+1)/2)
		for i := range next {
			left := current[2*i]
			var right Digest
			if 2*i+1 < len(current) {
				right = current[2*i+1]
			} else {
				right = current[2*i]
			}
			next[i] = HashNode(left, right)
		}
		levels = append(levels, next)
		current = next
	}
	return &MerkleTree{levels: levels}
}

// Root returns the commitment's root digest.
func (mt *MerkleTree) Root() Digest { return mt.levels[len(mt.levels)-1][0] }

// NumLeaves returns the number of committed leaves.
func (mt *MerkleTree) NumLeaves() int { return len(mt.levels[0]) }

// AuthPath is a single-position Merkle opening: the sibling digest at every
// level from the leaf up to (but excluding) the root.
type AuthPath struct {
	Siblings []Digest
}

// Prove returns the authentication path for the leaf at index.
func (mt *MerkleTree) Prove(index int) (AuthPath, error) {
	if index < 0 || index >= mt.NumLeaves() {
		return AuthPath{}, fmt.Errorf("core: index %d out of range [0, %d)", index, mt.NumLeaves())
	}
	var path AuthPath
	idx := index
	for level := 0; level < len(mt.levels)-1; level++ {
		cur := mt.levels[level]
		sib := siblingIndex(idx, len(cur))
		path.Siblings = append(path.Siblings, cur[sib])
		idx /= 2
	}
	return path, nil
}

// VerifyPath checks a single-position opening against root.
func VerifyPath(root Digest, index int, leafValues [][]byte, path AuthPath) bool {
	h := HashLeaf(leafValues...)
	idx := index
	for _, sib := range path.Siblings {
		if idx%2 == 0 {
			h = HashNode(h, sib)
		} else {
			h = HashNode(sib, h)
		}
		idx /= 2
	}
	return h == root
}

// siblingIndex returns the sibling of idx within a level of size levelSize,
// self-pairing the last node of an odd-sized level.
func siblingIndex(idx, levelSize int) int {
	if idx%2 == 0 {
		if idx+1 < levelSize {
			return idx + 1
		}
		return idx
	}
	return idx - 1
}

// BatchProof is a compact multi-opening proof: the internal nodes shared by
// overlapping authentication paths are sent once instead of once per query,
// which is how FRI's many query positions stay cheap to authenticate.
type BatchProof struct {
	Nodes []Digest
}

// BatchProve builds a compact opening proof for every position in positions
// (duplicates are ignored). The companion leaf values must be supplied to
// VerifyBatch by the caller in the same order as the sorted, deduplicated
// positions.
func (mt *MerkleTree) BatchProve(positions []int) (BatchProof, []int, error) {
	n := mt.NumLeaves()
	sorted, err := sortedUniquePositions(positions, n)
	if err != nil {
		return BatchProof{}, nil, err
	}

	known := make(map[int]bool, len(sorted))
	for _, p := range sorted {
		known[p] = true
	}

	var proof BatchProof
	for level := 0; level < len(mt.levels)-1; level++ {
		cur := mt.levels[level]
		idxs := sortedKeys(known)
		processed := make(map[int]bool, len(idxs))
		next := make(map[int]bool)
		for _, idx := range idxs {
			if processed[idx] {
				continue
			}
			sib := siblingIndex(idx, len(cur))
			parent := idx / 2
			if known[sib] {
				processed[idx] = true
				processed[sib] = true
			} else {
				proof.Nodes = append(proof.Nodes, cur[sib])
				processed[idx] = true
			}
			next[parent] = true
		}
		known = next
	}
	return proof, sorted, nil
}

// VerifyBatch checks a compact multi-opening proof. positions must be the
// sorted, deduplicated list returned by BatchProve, and leafValues[i] must
// be the byte images committed at positions[i].
func VerifyBatch(root Digest, numLeaves int, positions []int, leafValues [][][]byte, proof BatchProof) (bool, error) {
	if len(positions) != len(leafValues) {
		return false, fmt.Errorf("core: positions/leafValues length mismatch (%d vs %d)", len(positions), len(leafValues))
	}
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			return false, fmt.Errorf("core: positions must be sorted and unique")
		}
	}

	known := make(map[int]Digest, len(positions))
	for i, p := range positions {
		known[p] = HashLeaf(leafValues[i]...)
	}

	levelSize := numLeaves
	nodeIdx := 0
	for levelSize > 1 {
		idxs := sortedKeysDigest(known)
		processed := make(map[int]bool, len(idxs))
		next := make(map[int]Digest)
		for _, idx := range idxs {
			if processed[idx] {
				continue
			}
			sib := siblingIndex(idx, levelSize)
			parent := idx / 2
			var left, right Digest
			if other, ok := known[sib]; ok {
				processed[idx] = true
				processed[sib] = true
				if idx%2 == 0 {
					left, right = known[idx], other
				} else {
					left, right = other, known[idx]
				}
			} else {
				if nodeIdx >= len(proof.Nodes) {
					return false, fmt.Errorf("core: batch proof ran out of nodes")
				}
				sibDigest := proof.Nodes[nodeIdx]
				nodeIdx++
				processed[idx] = true
				if idx%2 == 0 {
					left, right = known[idx], sibDigest
				} else {
					left, right = sibDigest, known[idx]
				}
			}
			next[parent] = HashNode(left, right)
		}
		known = next
		levelSize = (levelSize + 1) / 2
	}
	if nodeIdx != len(proof.Nodes) {
		return false, fmt.Errorf("core: batch proof has unconsumed nodes")
	}
	computedRoot, ok := known[0]
	if !ok {
		return false, fmt.Errorf("core: batch verification did not converge on a root")
	}
	return computedRoot == root, nil
}

func sortedUniquePositions(positions []int, n int) ([]int, error) {
	seen := make(map[int]bool, len(positions))
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < 0 || p >= n {
			return nil, fmt.Errorf("core: position %d out of range [0, %d)", p, n)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out, nil
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedKeysDigest(m map[int]Digest) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
