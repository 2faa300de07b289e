// Package merkle folds a list of leaves into a single root with a 2-to-1
// compression function.
package merkle

import "errors"

// ErrNoLeaves is returned when accumulating an empty leaf list.
var ErrNoLeaves = errors.New("merkle: no leaves to accumulate")

// Compressor is a 2-to-1 node combiner. Every engine's Compress method
// satisfies it.
type Compressor[E any] interface {
	Compress(in [2]E) E
}

// LevelCompressor is a combiner that depends on the tree level of the
// produced node. Level 0 combines leaves.
type LevelCompressor[E any] interface {
	CompressLevel(level int, in [2]E) E
}

// Tree accumulates leaves with a level-aware combiner.
type Tree[E any] struct {
	c LevelCompressor[E]
}

// NewTree returns a tree folding with c at every level.
func NewTree[E any](c Compressor[E]) *Tree[E] {
	return &Tree[E]{c: levelless[E]{c}}
}

// NewLevelTree returns a tree that passes the level to c.
func NewLevelTree[E any](c LevelCompressor[E]) *Tree[E] {
	return &Tree[E]{c: c}
}

type levelless[E any] struct {
	c Compressor[E]
}

func (l levelless[E]) CompressLevel(_ int, in [2]E) E { return l.c.Compress(in) }

// Accumulate returns the root over leaves. The list is padded to the next
// power of two, and at least two, by repeating its last element; nodes are
// then combined pairwise bottom-up. The input slice is not modified.
func (t *Tree[E]) Accumulate(leaves []E) (E, error) {
	var zero E
	if len(leaves) == 0 {
		return zero, ErrNoLeaves
	}
	nodes := make([]E, PaddedSize(len(leaves)))
	n := copy(nodes, leaves)
	for i := n; i < len(nodes); i++ {
		nodes[i] = leaves[n-1]
	}
	for level := 0; len(nodes) > 1; level++ {
		for i := range len(nodes) / 2 {
			nodes[i] = t.c.CompressLevel(level, [2]E{nodes[2*i], nodes[2*i+1]})
		}
		nodes = nodes[:len(nodes)/2]
	}
	return nodes[0], nil
}

// Depth is the number of levels above the leaves for n leaves.
func Depth(n int) int {
	d := 0
	for size := PaddedSize(n); size > 1; size >>= 1 {
		d++
	}
	return d
}

// PaddedSize is the leaf count after padding: the smallest power of two that
// is at least n and at least 2.
func PaddedSize(n int) int {
	size := 2
	for size < n {
		size <<= 1
	}
	return size
}

// Accumulate is a shorthand for NewTree(c).Accumulate(leaves).
func Accumulate[E any](c Compressor[E], leaves []E) (E, error) {
	return NewTree(c).Accumulate(leaves)
}
