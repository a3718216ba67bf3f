/*
Package birthdeath simulates phylogenetic trees under a constant-rate
birth-death process, conditioned on ending with an exact number of extant
lineages.

The process is run backwards in time, starting from the extant lineages at
the present. Each event happens after an exponential waiting time with rate
n(λ+μ), where n is the number of lineages currently alive. A birth
(probability λ/(λ+μ)) fuses two lineages picked uniformly at random into
their common ancestor; a death adds a new, extinct lineage. The process
stops when a birth happens while a single lineage is left; that lineage is
the root.

Nodes are stored in a flattree.Tree. Extant leaves come first (indices 0 to
N-1) and every node is named after its index. Once the process stops, every
depth is rewritten from "time since the present" to "tree height minus time
since the present".

A single simulation is sequential and draws all of its randomness from the
*rand.Rand it is given, so a run is reproducible from its seed (see NewRand).
SimulateMany runs independent simulations concurrently.
*/
package birthdeath
