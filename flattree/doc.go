/*
Package flattree provides an append-only, index-addressed store of binary tree
nodes. It is meant for building a tree incrementally when the parent of a node
is not known until long after the node itself is created: nodes refer to each
other only by their position in the store, so no node ever owns another.

Once construction is done, Convert (or Tree.Newick) resolves the indices into
a nested newick.Tree. The conversion does not trust the store: out of range
indices, nodes with a single child and cycles are all reported as errors
wrapping ErrMalformed.
*/
package flattree
