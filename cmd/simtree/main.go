// Command simtree simulates a phylogenetic tree under a birth-death process
// conditioned on the number of extant lineages and saves it as Newick.
//
// Usage:
//
//	simtree <birth_rate> <death_rate> <n_extant> [flags]
//
// The tree is written to tree.nwk unless --output says otherwise. Flags can
// also be set in .simtree.yaml or with SIMTREE_* environment variables, e.g.,
// SIMTREE_SEED=42.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
