// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"sort"

	"github.com/pkg/errors"
)

// Orientations of a pile within its family.
const (
	Unknown = -1
	Forward = 0
	Reverse = 1
)

// Image is a reference from a pile to the pile holding the other
// interval of one of its hits.
type Image struct {
	Pile int  // index of the partner pile
	Len  int  // inclusive length of the partner interval
	Rev  bool // whether the hit is reverse-complemented
}

// Pile is a maximal genomic region covered by candidate hits.
type Pile struct {
	From, To int
	Images   []Image

	// Family is the index of the family the pile belongs to, or -1.
	Family int
	// Rev is the orientation of the pile in its family: Unknown,
	// Forward or Reverse.
	Rev int
	// SuperFamily is reserved for family grouping and is always -1.
	SuperFamily int
}

// Len returns the length of the closed interval spanned by the pile.
func (p *Pile) Len() int { return p.To - p.From + 1 }

// pileIndex resolves the closed interval [from, to] to the pile covering
// it using the chunk index built by coverage.piles.
func pileIndex(from, to int, index []int32, chunkLen int) (int, error) {
	lo, _ := clamp(from, chunkLen, len(index))
	hi, _ := clamp(to, chunkLen, len(index))
	if lo < 0 || hi < 0 {
		return noPile, errors.Wrapf(ErrInvariant, "interval %d-%d outside genome", from, to)
	}
	p := index[lo]
	if p == noPile || p != index[hi] {
		return noPile, errors.Wrapf(ErrInvariant, "interval %d-%d spans piles %d and %d", from, to, p, index[hi])
	}
	return int(p), nil
}

func hitPiles(h Hit, index []int32, chunkLen int) (q, t int, err error) {
	q, err = pileIndex(h.QueryFrom, h.QueryTo, index, chunkLen)
	if err != nil {
		return noPile, noPile, err
	}
	t, err = pileIndex(h.TargetFrom, h.TargetTo, index, chunkLen)
	if err != nil {
		return noPile, noPile, err
	}
	return q, t, nil
}

// buildPiles constructs n piles from candidate hits and the chunk index
// produced by coverage.piles. Each hit contributes one image to each of
// its two piles. It returns the piles and the largest image count held
// by a single pile.
func buildPiles(hits []Hit, index []int32, n, chunkLen int) ([]Pile, int, error) {
	piles := make([]Pile, n)

	counts := make([]int, n)
	for _, h := range hits {
		q, t, err := hitPiles(h, index, chunkLen)
		if err != nil {
			return nil, 0, err
		}
		counts[q]++
		counts[t]++
	}
	for i := range piles {
		if counts[i] == 0 {
			return nil, 0, errors.Wrapf(ErrInvariant, "pile %d has no images", i)
		}
		piles[i] = Pile{
			From:        -1,
			To:          -1,
			Images:      make([]Image, 0, counts[i]),
			Family:      -1,
			Rev:         Unknown,
			SuperFamily: -1,
		}
	}

	var maxImages int
	for _, h := range hits {
		q, t, err := hitPiles(h, index, chunkLen)
		if err != nil {
			return nil, 0, err
		}

		pq := &piles[q]
		pq.Images = append(pq.Images, Image{Pile: t, Len: h.TargetTo - h.TargetFrom + 1, Rev: h.Rev})
		pq.extend(h.QueryFrom, h.QueryTo)

		pt := &piles[t]
		pt.Images = append(pt.Images, Image{Pile: q, Len: h.QueryTo - h.QueryFrom + 1, Rev: h.Rev})
		pt.extend(h.TargetFrom, h.TargetTo)

		maxImages = max(maxImages, len(pq.Images), len(pt.Images))
	}

	for i := range piles {
		images := piles[i].Images
		sort.SliceStable(images, func(a, b int) bool { return images[a].Pile < images[b].Pile })
	}

	return piles, maxImages, nil
}

func (p *Pile) extend(from, to int) {
	if p.From == -1 || from < p.From {
		p.From = from
	}
	if p.To == -1 || to > p.To {
		p.To = to
	}
}

// imagesSorted returns whether the images of p are in ascending partner order.
func (p *Pile) imagesSorted() bool {
	return sort.SliceIsSorted(p.Images, func(a, b int) bool { return p.Images[a].Pile < p.Images[b].Pile })
}

func max(a int, b ...int) int {
	for _, v := range b {
		if v > a {
			a = v
		}
	}
	return a
}
