// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Member is a pile and its orientation within a family.
type Member struct {
	Pile int
	Rev  bool
}

// Family is a group of piles forming a candidate CRISPR array.
type Family []Member

// pileEdge is an undirected graph edge between two piles.
type pileEdge struct {
	f, t graph.Node
	rev  bool
}

func (e pileEdge) From() graph.Node         { return e.f }
func (e pileEdge) To() graph.Node           { return e.t }
func (e pileEdge) ReversedEdge() graph.Edge { return pileEdge{f: e.t, t: e.f, rev: e.rev} }

// Attributes marks reverse pairings for DOT output.
func (e pileEdge) Attributes() []encoding.Attribute {
	if e.rev {
		return []encoding.Attribute{{Key: "style", Value: "dashed"}}
	}
	return nil
}

// edgeGraph returns the pile graph described by edges. Duplicate edges
// are collapsed, retaining the first, and self edges are ignored.
func edgeGraph(edges []Edge) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, e := range edges {
		if e.Node1 == e.Node2 {
			continue
		}
		u, v := int64(e.Node1), int64(e.Node2)
		if g.HasEdgeBetween(u, v) {
			continue
		}
		g.SetEdge(pileEdge{f: simple.Node(u), t: simple.Node(v), rev: e.Rev})
	}
	return g
}

// cluster returns the connected components of the pile graph described
// by edges that hold at least minSize piles. Members are oriented
// relative to the lowest indexed pile of their family, which is Forward.
func cluster(edges []Edge, minSize int) []Family {
	g := edgeGraph(edges)

	var fams []Family
	for _, cc := range topo.ConnectedComponents(g) {
		if len(cc) < minSize {
			continue
		}
		sort.Slice(cc, func(i, j int) bool { return cc[i].ID() < cc[j].ID() })

		rev := map[int64]bool{cc[0].ID(): false}
		bf := traverse.BreadthFirst{
			Traverse: func(e graph.Edge) bool {
				u, v := e.From().ID(), e.To().ID()
				r := e.(pileEdge).rev
				if ur, ok := rev[u]; ok {
					if _, ok := rev[v]; !ok {
						rev[v] = ur != r
					}
				} else if vr, ok := rev[v]; ok {
					rev[u] = vr != r
				}
				return true
			},
		}
		bf.Walk(g, cc[0], nil)

		fam := make(Family, len(cc))
		for i, n := range cc {
			fam[i] = Member{Pile: int(n.ID()), Rev: rev[n.ID()]}
		}
		fams = append(fams, fam)
	}
	sort.Slice(fams, func(i, j int) bool { return fams[i][0].Pile < fams[j][0].Pile })
	return fams
}
