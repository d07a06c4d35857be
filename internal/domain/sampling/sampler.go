// Package sampling implements duplicate-free random selection of flashcard
// pool indices. A Bitmap tracks which indices have been drawn in the current
// cycle; when every index has been drawn the bitmap resets, which is what
// lets a marathon keep drawing from a finite pool indefinitely while using
// every flashcard at most once per cycle.
package sampling

import (
	"errors"
	"math/rand"
	"time"
)

// MinDraw is the smallest pool size and draw count the sampler accepts.
const MinDraw = 3

// ErrInsufficientPool is returned when the pool is smaller than the
// requested draw or below the minimum pool size.
var ErrInsufficientPool = errors.New("pool too small for requested draw")

// Bitmap tracks the used/unused state of a pool's indices for one
// generation call. It is call-local, never persisted, and not safe for
// concurrent use.
type Bitmap struct {
	used      []bool
	unused    []int
	usedCount int
}

// NewBitmap creates a Bitmap for a pool of n indices, all unused.
func NewBitmap(n int) *Bitmap {
	b := &Bitmap{used: make([]bool, n), unused: make([]int, n)}
	for i := range b.unused {
		b.unused[i] = i
	}
	return b
}

// Size returns the pool size the bitmap was created for.
func (b *Bitmap) Size() int { return len(b.used) }

// Used reports whether index i has been drawn in the current cycle.
func (b *Bitmap) Used(i int) bool { return b.used[i] }

// UsedCount returns the number of indices drawn in the current cycle.
func (b *Bitmap) UsedCount() int { return b.usedCount }

// reset begins a new cycle with every index unused.
func (b *Bitmap) reset() {
	b.unused = b.unused[:0]
	for i := range b.used {
		b.used[i] = false
		b.unused = append(b.unused, i)
	}
	b.usedCount = 0
}

// removeAt swap-removes the element at position p from the unused list and
// returns it.
func (b *Bitmap) removeAt(p int) int {
	idx := b.unused[p]
	last := len(b.unused) - 1
	b.unused[p] = b.unused[last]
	b.unused = b.unused[:last]
	return idx
}

// Draw is the result of one sampler draw.
type Draw struct {
	// Indices are the k distinct pool indices selected, in draw order.
	Indices []int

	// Cycled reports that this draw exhausted the pool and the bitmap was
	// reset to all-unused for the next cycle.
	Cycled bool
}

// Sampler draws uniformly from the explicit unused-index set, so a draw
// costs O(k) regardless of how depleted the bitmap is.
type Sampler struct {
	rng *rand.Rand
}

// New creates a Sampler seeded from the current time.
func New() *Sampler {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a Sampler using the given randomness source.
// Tests inject a fixed seed here for determinism.
func NewWithSource(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Draw selects k distinct indices not currently marked used, marks them
// used, and reports whether the pool was exhausted (and the bitmap reset)
// during the draw. Indices already selected within this draw are never
// repeated, even across a mid-draw cycle reset.
// Returns ErrInsufficientPool if k is below MinDraw, k exceeds the pool
// size, or the pool is below MinDraw.
func (s *Sampler) Draw(b *Bitmap, k int) (Draw, error) {
	if k < MinDraw || b.Size() < MinDraw || k > b.Size() {
		return Draw{}, ErrInsufficientPool
	}

	indices := make([]int, 0, k)
	inBatch := make(map[int]bool, k)
	cycled := false

	// After a cycle reset the unused list again contains indices already in
	// this batch; those are set aside and restored once the draw completes.
	var deferred []int

	for len(indices) < k {
		idx := b.removeAt(s.rng.Intn(len(b.unused)))
		if inBatch[idx] {
			deferred = append(deferred, idx)
			continue
		}

		b.used[idx] = true
		b.usedCount++
		inBatch[idx] = true
		indices = append(indices, idx)

		if b.usedCount == b.Size() {
			b.reset()
			cycled = true
		}
	}

	b.unused = append(b.unused, deferred...)

	return Draw{Indices: indices, Cycled: cycled}, nil
}
