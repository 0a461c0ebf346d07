// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import "github.com/exascience/pargo/parallel"

// Edge is a candidate pairing of two piles as neighbouring repeats.
type Edge struct {
	Node1, Node2 int
	Rev          bool
}

// pileDist returns the distance from p to q. The measure is directional:
// when p does not start after q ends, it is the gap from the end of p to
// the start of q and may be negative.
func pileDist(p, q *Pile) int {
	if p.From > q.To {
		return p.From - q.To
	}
	return q.From - p.To
}

// pileEdges returns the edges from the pile at index i to its image
// partners that satisfy the repeat and spacer geometry of cfg.
func pileEdges(piles []Pile, i int, cfg Config) []Edge {
	p := &piles[i]
	if !cfg.isRepeatLen(p.Len()) {
		return nil
	}
	var edges []Edge
	for _, im := range p.Images {
		if im.Pile == i {
			continue
		}
		q := &piles[im.Pile]
		if !cfg.isRepeatLen(q.Len()) || !cfg.isSpacerLen(pileDist(p, q)) {
			continue
		}
		if edges == nil {
			edges = make([]Edge, 0, len(p.Images))
		}
		edges = append(edges, Edge{Node1: i, Node2: im.Pile, Rev: im.Rev})
	}
	return edges
}

// findEdges returns the candidate edges of all piles in pile order. Each
// image yields at most one edge, so piles joined by several hits may be
// joined by duplicate edges.
func findEdges(piles []Pile, cfg Config) []Edge {
	if len(piles) == 0 {
		return nil
	}
	perPile := make([][]Edge, len(piles))
	parallel.Range(0, len(piles), cfg.Threads, func(low, high int) {
		for i := low; i < high; i++ {
			perPile[i] = pileEdges(piles, i, cfg)
		}
	})

	var n int
	for _, e := range perPile {
		n += len(e)
	}
	edges := make([]Edge, 0, n)
	for _, e := range perPile {
		edges = append(edges, e...)
	}
	return edges
}
