// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

// noPile marks a chunk that is not covered by any candidate hit.
const noPile = -1

// coverage is a bitmap of genome chunks covered by candidate hits.
// Bits are only ever set.
type coverage struct {
	bits     *bitset.BitSet
	chunks   int
	chunkLen int
}

func newCoverage(genomeLen, chunkLen int) *coverage {
	chunks := (genomeLen + chunkLen - 1) / chunkLen
	return &coverage{
		bits:     bitset.New(uint(chunks)),
		chunks:   chunks,
		chunkLen: chunkLen,
	}
}

// clamp returns the chunk holding pos, limited to the bitmap. The
// returned bool is false if the limit was applied.
func clamp(pos, chunkLen, chunks int) (int, bool) {
	c := pos / chunkLen
	if c >= chunks {
		return chunks - 1, false
	}
	return c, true
}

// add marks the chunks spanned by the closed interval [from, to].
func (c *coverage) add(from, to int) error {
	if from < 0 {
		return errors.Wrapf(ErrInvariant, "interval %d-%d starts before genome", from, to)
	}
	lo, ok := clamp(from, c.chunkLen, c.chunks)
	if !ok {
		log.Error.Printf("coverage: from chunk %d beyond %d chunks", from/c.chunkLen, c.chunks)
	}
	hi, ok := clamp(to, c.chunkLen, c.chunks)
	if !ok {
		log.Error.Printf("coverage: to chunk %d beyond %d chunks", to/c.chunkLen, c.chunks)
	}
	if lo > hi || lo < 0 {
		return errors.Wrapf(ErrInvariant, "interval %d-%d maps to chunks %d-%d", from, to, lo, hi)
	}
	for i := lo; i <= hi; i++ {
		c.bits.Set(uint(i))
	}
	return nil
}

func (c *coverage) addHit(h Hit) error {
	err := c.add(h.TargetFrom, h.TargetTo)
	if err != nil {
		return err
	}
	return c.add(h.QueryFrom, h.QueryTo)
}

// piles partitions the covered chunks into maximal runs, returning the
// number of runs and the run index of each chunk. Uncovered chunks are
// given noPile. If more than limit runs are found, piles returns an error
// wrapping ErrCapacity.
func (c *coverage) piles(limit int) (int, []int32, error) {
	index := make([]int32, c.chunks)
	for i := range index {
		index[i] = noPile
	}

	var n int
	i, ok := c.bits.NextSet(0)
	for ok && int(i) < c.chunks {
		if n >= limit {
			return 0, nil, errors.Wrapf(ErrCapacity, "more than %d piles", limit)
		}
		end, found := c.bits.NextClear(i)
		if !found || int(end) > c.chunks {
			end = uint(c.chunks)
		}
		for j := i; j < end; j++ {
			index[j] = int32(n)
		}
		n++
		if int(end) >= c.chunks {
			break
		}
		i, ok = c.bits.NextSet(end)
	}
	return n, index, nil
}
