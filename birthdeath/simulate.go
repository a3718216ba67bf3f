package birthdeath

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/SisyphusMountain/simulate-trees/flattree"
)

// Result is the outcome of one simulation.
type Result struct {
	// The complete tree, including extinct lineages. Its root is set and
	// every node has a corrected depth.
	Tree *flattree.Tree

	// Number of extant leaves. They occupy indices 0 to Extant-1.
	Extant int

	// Number of births (two lineages fused into one) and of deaths (a new
	// extinct lineage added) that happened during the run.
	Fusions, Emergences int

	// Height of the tree: the depth of the root plus its branch length.
	Height float64
}

// IsExtant reports whether the node at index i is an extant leaf.
func (r *Result) IsExtant(i int) bool {
	return i >= 0 && i < r.Extant
}

// Reconstructed returns the tree restricted to the extant lineages: extinct
// leaves are pruned and the nodes left with a single child are collapsed.
// Without deaths, this is a copy of the complete tree.
func (r *Result) Reconstructed() (*flattree.Tree, error) {
	return r.Tree.Prune(r.IsExtant)
}

// Simulate runs one conditioned birth-death process and returns the tree it
// produced. All randomness is drawn from `rng`.
//
// An error is returned if the parameters are invalid (see Params.Validate)
// or if the run exceeds p.MaxNodes.
func Simulate(rng *rand.Rand, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	wait, err := newWaitingTime(rng, p.BirthRate+p.DeathRate)
	if err != nil {
		return nil, err
	}
	event := newEvent(rng, p.pBirth())

	tree := flattree.New(2 * p.Extant)
	alive := make([]int, 0, p.Extant)
	for i := 0; i < p.Extant; i++ {
		alive = append(alive, tree.AddLeaf(nextName(tree), 0))
	}
	res := &Result{Tree: tree, Extant: p.Extant}

	now := 0.0
	for n := len(alive); n > 0; {
		now += wait.sample(n)
		birth := event.Rand() == 1

		switch {
		case birth && n > 1:
			i1, i2 := pair(rng, n)
			left, right := alive[i1], alive[i2]

			// Removing the higher position first keeps the lower one valid.
			alive = swapRemove(alive, max(i1, i2))
			alive = swapRemove(alive, min(i1, i2))

			parent := tree.AddInternal(nextName(tree), left, right, now)
			tree.Attach(left, parent, now)
			tree.Attach(right, parent, now)
			alive = append(alive, parent)
			res.Fusions++
			n--
		case birth:
			tree.Seal(alive[0], now)
			tree.Root = alive[0]
			n--
		default:
			if p.MaxNodes > 0 && tree.Len() >= p.MaxNodes {
				return nil, fmt.Errorf("%w: %d nodes with %d lineages still "+
					"alive", ErrRunaway, tree.Len(), n)
			}
			alive = append(alive, tree.AddLeaf(nextName(tree), now))
			res.Emergences++
			n++
		}
	}
	if tree.Root != tree.Len()-1 {
		panic(fmt.Sprintf("BUG: root %d is not the last node created (%d).",
			tree.Root, tree.Len()-1))
	}

	res.Height = rebase(tree)
	return res, nil
}

// rebase rewrites every depth as the tree height minus the raw depth and
// returns the height.
func rebase(tree *flattree.Tree) float64 {
	root := tree.Node(tree.Root)
	height := root.MustDepth() + root.Length
	for i := range tree.Nodes {
		n := tree.Node(i)
		n.SetDepth(height - n.MustDepth())
	}
	return height
}

// nextName returns the name of the next node added to the tree: its index.
func nextName(tree *flattree.Tree) string {
	return strconv.Itoa(tree.Len())
}

// swapRemove removes the element at position i by moving the last element
// into its place.
func swapRemove(s []int, i int) []int {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}
