package bitset

import (
	"math/bits"
	"sync/atomic"
)

const (
	wordBits  = 64
	wordShift = 6
	wordMask  = wordBits - 1
)

// BitSet is a thread-safe, lock-free, fixed-size bitset.
//
// Every word is an atomic.Uint64, so concurrent TestAndUnset calls that touch
// different bits of the same word never lose each other's updates.
type BitSet struct {
	words []atomic.Uint64
	size  uint64
}

// NewFilled creates a new BitSet with the given size (in bits). All bits start set.
func NewFilled(size uint64) *BitSet {
	b := &BitSet{
		words: make([]atomic.Uint64, (size+wordMask)>>wordShift),
		size:  size,
	}
	b.fill()
	return b
}

func (b *BitSet) locate(i uint64) (*atomic.Uint64, uint64) {
	return &b.words[i>>wordShift], uint64(1) << (i & wordMask)
}

// TestAndUnset clears the bit at the given index and returns true if it was set before.
func (b *BitSet) TestAndUnset(i uint64) bool {
	if i >= b.size {
		return false
	}
	w, mask := b.locate(i)
	return w.And(^mask)&mask != 0
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i uint64) bool {
	if i >= b.size {
		return false
	}
	w, mask := b.locate(i)
	return w.Load()&mask != 0
}

// NextSetBit returns the index of the next set bit starting from i (inclusive).
// Returns -1 if no bit is set at or after i.
func (b *BitSet) NextSetBit(i uint64) int64 {
	if i >= b.size {
		return -1
	}

	wordIdx := int(i >> wordShift)
	val := b.words[wordIdx].Load()
	// Mask out bits before i
	val &= ^uint64(0) << (i & wordMask)

	for {
		if val != 0 {
			idx := uint64(wordIdx)<<wordShift + uint64(bits.TrailingZeros64(val))
			if idx >= b.size {
				return -1
			}
			return int64(idx)
		}
		wordIdx++
		if wordIdx >= len(b.words) {
			return -1
		}
		val = b.words[wordIdx].Load()
	}
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	count := 0
	for i := range b.words {
		if val := b.words[i].Load(); val != 0 {
			count += bits.OnesCount64(val)
		}
	}
	return count
}

// fill sets every bit in [0, size).
func (b *BitSet) fill() {
	if len(b.words) == 0 {
		return
	}
	last := len(b.words) - 1
	for i := 0; i < last; i++ {
		b.words[i].Store(^uint64(0))
	}
	// Trailing bits past size stay clear so Count and NextSetBit never see them.
	tail := b.size - uint64(last)<<wordShift
	b.words[last].Store(^uint64(0) >> (wordBits - tail))
}

// SizeInBytes returns the number of bytes backing a bitset of the given size.
func SizeInBytes(size uint64) int64 {
	return int64((size+wordMask)>>wordShift) * 8
}
