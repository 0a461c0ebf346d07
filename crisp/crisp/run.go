// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"github.com/biogo/store/step"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Run holds the state of a single CRISPR array search. The stages of
// a run are performed in order: BuildPiles, then FindFamilies.
type Run struct {
	Config Config

	// Piles holds the piles of the genome in genome order.
	Piles []Pile
	// MaxImages is the largest number of images held by a pile.
	MaxImages int

	// Edges holds the candidate pile pairings found by FindFamilies.
	Edges []Edge
	// Families holds the spacing-filtered families in family index order.
	Families []Family
}

// NewRun returns a new Run using the provided configuration.
func NewRun(cfg Config) (*Run, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &Run{Config: cfg}, nil
}

// Find performs a complete search for CRISPR arrays in the hits over a genome
// of genomeLen bases.
func Find(hits []Hit, genomeLen int, cfg Config) (*Run, error) {
	r, err := NewRun(cfg)
	if err != nil {
		return nil, err
	}
	err = r.BuildPiles(hits, genomeLen)
	if err != nil {
		return nil, err
	}
	err = r.FindFamilies()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildPiles filters hits to candidates and builds the piles and images
// of the run. The hits slice is compacted in place.
func (r *Run) BuildPiles(hits []Hit, genomeLen int) error {
	n := len(hits)
	hits = Candidates(hits, r.Config)
	log.Printf("%d of %d candidate hits", len(hits), n)

	cov := newCoverage(genomeLen, r.Config.ChunkLen)
	for _, h := range hits {
		err := cov.addHit(h)
		if err != nil {
			return err
		}
	}
	n, index, err := cov.piles(MaxPiles)
	if err != nil {
		return err
	}
	log.Printf("%d piles", n)

	r.Piles, r.MaxImages, err = buildPiles(hits, index, n, r.Config.ChunkLen)
	if err != nil {
		return err
	}
	log.Printf("%d images in largest pile", r.MaxImages)
	return nil
}

// FindFamilies links piles into candidate CRISPR arrays and assigns the
// family and orientation of the piles that are members of an array.
func (r *Run) FindFamilies() error {
	if r.Piles == nil {
		return errors.Wrap(ErrInvariant, "families requested before piles")
	}

	r.Edges = findEdges(r.Piles, r.Config)
	log.Printf("%d edges", len(r.Edges))

	fams := cluster(r.Edges, r.Config.MinFamSize)
	log.Printf("%d connected components", len(fams))

	r.Families = filterFamilies(fams, r.Piles, r.Config)
	err := assignFamilies(r.Piles, r.Families, r.Config.MinFamSize)
	if err != nil {
		return err
	}
	log.Printf("%d arrays", len(r.Families))
	return nil
}

// Array is the genomic span of a family.
type Array struct {
	Family   int
	From, To int

	// Members is the number of piles in the family.
	Members int
	// Cover is the number of bases covered by the family's piles.
	Cover int
}

// Arrays returns the span of each family of the run.
func (r *Run) Arrays() []Array {
	arrays := make([]Array, len(r.Families))
	for i, fam := range r.Families {
		a := Array{Family: i, From: -1, To: -1, Members: len(fam)}
		for _, m := range fam {
			p := &r.Piles[m.Pile]
			if a.From == -1 || p.From < a.From {
				a.From = p.From
			}
			if a.To == -1 || p.To > a.To {
				a.To = p.To
			}
		}
		a.Cover = cover(r.Piles, fam, a.From, a.To)
		arrays[i] = a
	}
	return arrays
}

// stepBool is a bool type satisfying the step.Equaler interface.
type stepBool bool

// Equal returns whether b equals e. Equal assumes the underlying type of e is a stepBool.
func (b stepBool) Equal(e step.Equaler) bool {
	return b == e.(stepBool)
}

// cover returns the number of bases in [from, to] covered by the piles of fam.
func cover(piles []Pile, fam Family, from, to int) int {
	vec, err := step.New(from, to+1, stepBool(false))
	if err != nil {
		panic(err)
	}
	vec.Relaxed = true
	for _, m := range fam {
		p := &piles[m.Pile]
		vec.SetRange(p.From, p.To+1, stepBool(true))
	}
	var n int
	vec.Do(func(start, end int, e step.Equaler) {
		if e.(stepBool) {
			n += end - start
		}
	})
	return n
}
