// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"github.com/biogo/biogo/align/pals"
	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
)

// Contig is a named sequence placed on the genome axis.
type Contig struct {
	Name   string
	Offset int
	Len    int

	id uintptr
}

func (c *Contig) ID() uintptr { return c.id }
func (c *Contig) Overlap(b interval.IntRange) bool {
	return c.Offset < b.End && c.Offset+c.Len > b.Start
}
func (c *Contig) Range() interval.IntRange {
	return interval.IntRange{Start: c.Offset, End: c.Offset + c.Len}
}

// pos is a single genome position satisfying interval.IntOverlapper.
type pos int

func (p pos) Overlap(b interval.IntRange) bool { return b.Start <= int(p) && int(p) < b.End }

// Genome is a collection of contigs laid out end to end on a single axis,
// separated by a fixed padding.
type Genome struct {
	Contigs []*Contig

	pad   int
	names map[string]*Contig
	tree  interval.IntTree
}

// NewGenome returns an empty Genome placing pad bases between contigs.
func NewGenome(pad int) *Genome {
	return &Genome{pad: pad, names: make(map[string]*Contig)}
}

// Len returns the length of the genome axis.
func (g *Genome) Len() int {
	if len(g.Contigs) == 0 {
		return 0
	}
	last := g.Contigs[len(g.Contigs)-1]
	return last.Offset + last.Len
}

// Add appends a contig of length n to the genome.
func (g *Genome) Add(name string, n int) (*Contig, error) {
	if _, ok := g.names[name]; ok {
		return nil, errors.Errorf("crisp: duplicate contig %q", name)
	}
	if n < 1 {
		return nil, errors.Errorf("crisp: contig %q has length %d", name, n)
	}
	off := 0
	if len(g.Contigs) != 0 {
		off = g.Len() + g.pad
	}
	c := &Contig{Name: name, Offset: off, Len: n, id: uintptr(len(g.Contigs))}
	err := g.tree.Insert(c, false)
	if err != nil {
		return nil, err
	}
	g.Contigs = append(g.Contigs, c)
	g.names[name] = c
	return c, nil
}

// Locate returns the contig holding the genome axis position p and
// the position of p within the contig.
func (g *Genome) Locate(p int) (c *Contig, local int, ok bool) {
	hits := g.tree.Get(pos(p))
	if len(hits) == 0 {
		return nil, 0, false
	}
	c = hits[0].(*Contig)
	return c, p - c.Offset, true
}

// ReadHits reads PALS feature pairs from r and returns them as hits on the
// axis of the returned genome. Contigs are placed in order of first
// appearance, separated by pad bases. The features in the input must
// satisfy pals.ExpandFeature restrictions.
func ReadHits(r featio.Reader, pad int) (*Genome, []Hit, error) {
	type pair struct {
		a, b   *pals.Feature
		strand seq.Strand
	}
	var pairs []pair
	lens := make(map[string]int)
	var order []string
	note := func(f *pals.Feature) {
		name := f.Loc.Name()
		n, ok := lens[name]
		if !ok {
			order = append(order, name)
		}
		if f.To > n {
			lens[name] = f.To
		}
	}

	sc := featio.NewScanner(r)
	for line := 1; sc.Next(); line++ {
		rep, ok := sc.Feat().(*gff.Feature)
		if !ok {
			return nil, nil, errors.Errorf("crisp: feature %d is not a GFF feature", line)
		}
		p, err := pals.ExpandFeature(rep)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "crisp: feature %d", line)
		}
		if p.A.From < 0 || p.B.From < 0 || p.A.From >= p.A.To || p.B.From >= p.B.To {
			return nil, nil, errors.Errorf("crisp: feature %d has invalid interval", line)
		}
		note(p.A)
		note(p.B)
		pairs = append(pairs, pair{a: p.A, b: p.B, strand: p.Strand})
	}
	if err := sc.Error(); err != nil {
		return nil, nil, errors.Wrap(err, "crisp: reading hits")
	}

	g := NewGenome(pad)
	for _, name := range order {
		_, err := g.Add(name, lens[name])
		if err != nil {
			return nil, nil, err
		}
	}

	hits := make([]Hit, len(pairs))
	for i, p := range pairs {
		qo := g.names[p.a.Loc.Name()].Offset
		to := g.names[p.b.Loc.Name()].Offset
		hits[i] = Hit{
			QueryFrom:  qo + p.a.From,
			QueryTo:    qo + p.a.To - 1,
			TargetFrom: to + p.b.From,
			TargetTo:   to + p.b.To - 1,
			Rev:        p.strand == seq.Minus,
		}
	}
	return g, hits, nil
}
