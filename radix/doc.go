// Package radix defines a concurrent, lock-free radix tree storing values
// identified by a fixed-width unsigned integer id.
//
// The tree is composed of nodes holding an array of 16 slots. The id is split
// into 4-bit chunks, each indexing one slot of one level; new nodes are added
// lazily when two leaves would land in the same slot. Reads walk the tree
// using sequential atomic loads and insertions publish with compare-and-swap,
// so both run lock free.
//
// Each slot is a single machine word:
//
//	[          63-01          ] [ 0 ]
//	<000...................000> <0>  empty
//	<PPP...................PPP> <1>  leaf - a *V with the low bit set
//	<PPP...................PPP> <0>  node - a *node, used verbatim
//
// Both the value type and the node type are at least 2-aligned, so the low
// bit of a real pointer is always zero and is free to carry the leaf tag. A
// node word is never nil, which is what lets the nil word mean empty.
//
// Every operation runs inside a read-side epoch of the tree's epoch.Domain,
// entered before the first slot load and left after the last dereference.
// Nothing can be removed from the tree at this time; when removal is added
// it must unlink with compare-and-swap and hand the unlinked leaf or subtree
// to the domain's Retire instead of dropping it, so readers still inside
// their epoch are not pulled out from under. Under the Go collector a value
// pointer handed out by Get cannot dangle either way; the epoch window is
// the contract removal will rely on.
package radix
