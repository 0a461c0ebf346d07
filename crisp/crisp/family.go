// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"sort"

	"github.com/exascience/pargo/parallel"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

func iabs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// filterSpacing splits fam into runs of regularly spaced piles. Members
// are ordered by pile start and a run is broken wherever two consecutive
// inter-pile gaps of the ordered members differ by more than
// cfg.MaxSpaceDiff. Gaps are taken from the ordered members whether or not
// they fall in the current run. Runs with fewer than cfg.MinFamSize
// members are discarded.
func filterSpacing(fam Family, piles []Pile, cfg Config) []Family {
	sorted := make(Family, len(fam))
	copy(sorted, fam)
	sort.SliceStable(sorted, func(i, j int) bool {
		return piles[sorted[i].Pile].From < piles[sorted[j].Pile].From
	})

	var (
		out []Family
		cur Family
	)
	flush := func() {
		if len(cur) >= cfg.MinFamSize {
			out = append(out, cur)
		} else if len(cur) != 0 {
			log.Debug.Printf("spacing: discarding run of %d piles starting at pile %d", len(cur), cur[0].Pile)
		}
		cur = nil
	}
	for i, m := range sorted {
		if i < 2 {
			cur = append(cur, m)
			continue
		}
		p2 := &piles[sorted[i-2].Pile]
		p1 := &piles[sorted[i-1].Pile]
		p := &piles[m.Pile]

		space12 := p1.From - p2.To
		space1 := p.From - p1.To
		if iabs(space12-space1) <= cfg.MaxSpaceDiff {
			cur = append(cur, m)
			continue
		}
		log.Debug.Printf("spacing: pile %d gap %d after gap %d, closing run of %d", m.Pile, space1, space12, len(cur))
		flush()
		cur = append(cur, m)
	}
	flush()
	return out
}

// filterFamilies applies filterSpacing to each of fams, returning the
// resulting families in input order.
func filterFamilies(fams []Family, piles []Pile, cfg Config) []Family {
	if len(fams) == 0 {
		return nil
	}
	perFam := make([][]Family, len(fams))
	parallel.Range(0, len(fams), cfg.Threads, func(low, high int) {
		for i := low; i < high; i++ {
			perFam[i] = filterSpacing(fams[i], piles, cfg)
		}
	})

	var out []Family
	for _, f := range perFam {
		out = append(out, f...)
	}
	return out
}

// assignFamilies records the family index and orientation of each member
// of fams on its pile.
func assignFamilies(piles []Pile, fams []Family, minSize int) error {
	for i, fam := range fams {
		if len(fam) < minSize {
			return errors.Wrapf(ErrInvariant, "family %d has %d members, less than %d", i, len(fam), minSize)
		}
		for _, m := range fam {
			p := &piles[m.Pile]
			p.Family = i
			if m.Rev {
				p.Rev = Reverse
			} else {
				p.Rev = Forward
			}
		}
	}
	return nil
}
