/*
Package newick provides facilities for reading and writing trees in the
Newick format. The format used is roughly equivalent to the conventions
established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

An informal description of the Newick format can be found here:
http://evolution.genetics.washington.edu/phylip/newicktree.html.

Labels may be quoted with single quotes, in which case a quote inside the
label is written twice. The writer quotes a label only when it contains a
character that cannot appear in an unquoted label. Comments in square
brackets are skipped by the reader wherever whitespace is allowed, and are
never written.

Branch lengths are written as plain decimals (never with an exponent) using
the shortest representation that reads back to the same float64. Both
reading and writing are iterative, so very tall trees (caterpillars with
hundreds of thousands of leaves) are fine.
*/
package newick
