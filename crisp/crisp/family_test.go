// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import "gopkg.in/check.v1"

func spacedPiles(spans ...span) []Pile {
	piles := make([]Pile, len(spans))
	for i, s := range spans {
		piles[i] = Pile{From: s.from, To: s.to, Family: -1, Rev: Unknown, SuperFamily: -1}
	}
	return piles
}

func members(piles ...int) Family {
	fam := make(Family, len(piles))
	for i, p := range piles {
		fam[i] = Member{Pile: p}
	}
	return fam
}

func (s *S) TestFilterSpacing(c *check.C) {
	for i, t := range []struct {
		piles   []Pile
		fam     Family
		minSize int
		want    []Family
	}{
		{
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{100, 120}),
			fam:     members(2, 0, 1),
			minSize: 3,
			want:    []Family{members(0, 1, 2)},
		},
		{
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{200, 220}),
			fam:     members(0, 1, 2),
			minSize: 3,
			want:    nil,
		},
		{
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{200, 220}),
			fam:     members(0, 1, 2),
			minSize: 2,
			want:    []Family{members(0, 1)},
		},
		{
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{100, 120}),
			fam:     members(0, 1, 2),
			minSize: 4,
			want:    nil,
		},
		{
			// Two regular runs separated by a long gap. The second run
			// loses its first two members to the gap comparisons.
			piles: spacedPiles(
				span{0, 20}, span{50, 70}, span{100, 120},
				span{400, 420}, span{460, 480}, span{520, 540},
			),
			fam:     members(5, 4, 3, 2, 1, 0),
			minSize: 3,
			want:    []Family{members(0, 1, 2)},
		},
		{
			// Gap differences of exactly MaxSpaceDiff are tolerated.
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{120, 140}, span{180, 200}),
			fam:     members(0, 1, 2, 3),
			minSize: 3,
			want:    []Family{members(0, 1, 2, 3)},
		},
		{
			// One more than MaxSpaceDiff is not.
			piles:   spacedPiles(span{0, 20}, span{50, 70}, span{121, 141}, span{171, 191}),
			fam:     members(0, 1, 2, 3),
			minSize: 2,
			want:    []Family{members(0, 1)},
		},
		{
			// A regular run after a long gap is rejected against that gap.
			piles: spacedPiles(
				span{0, 20}, span{50, 70}, span{100, 120},
				span{250, 270}, span{300, 320}, span{350, 370},
			),
			fam:     members(0, 1, 2, 3, 4, 5),
			minSize: 3,
			want:    []Family{members(0, 1, 2)},
		},
		{
			// With a pair allowed, the gap after the break is compared
			// against the break and the final pair survives.
			piles: spacedPiles(
				span{0, 20}, span{50, 70}, span{100, 120},
				span{250, 270}, span{300, 320}, span{350, 370},
			),
			fam:     members(0, 1, 2, 3, 4, 5),
			minSize: 2,
			want:    []Family{members(0, 1, 2), members(4, 5)},
		},
	} {
		cfg := DefaultConfig()
		cfg.MinFamSize = t.minSize
		got := filterSpacing(t.fam, t.piles, cfg)
		c.Check(got, check.DeepEquals, t.want, check.Commentf("Test %d", i))
		for _, fam := range got {
			c.Check(len(fam) >= t.minSize, check.Equals, true, check.Commentf("Test %d", i))
			c.Check(filterSpacing(fam, t.piles, cfg), check.DeepEquals, []Family{fam}, check.Commentf("Test %d: not idempotent", i))
		}
	}
}

func (s *S) TestFilterSpacingKeepsOrientation(c *check.C) {
	piles := spacedPiles(span{0, 20}, span{50, 70}, span{100, 120})
	fam := Family{{Pile: 1, Rev: true}, {Pile: 2}, {Pile: 0, Rev: true}}
	got := filterSpacing(fam, piles, DefaultConfig())
	c.Check(got, check.DeepEquals, []Family{{{Pile: 0, Rev: true}, {Pile: 1, Rev: true}, {Pile: 2}}})
	c.Check(fam[0].Pile, check.Equals, 1)
}

func (s *S) TestFilterFamilies(c *check.C) {
	piles := spacedPiles(
		span{0, 20}, span{50, 70}, span{100, 120},
		span{400, 420}, span{460, 480}, span{520, 540},
		span{1000, 1020}, span{1050, 1070}, span{1200, 1220},
		span{2000, 2020}, span{2060, 2080}, span{2120, 2140},
	)
	fams := []Family{members(5, 4, 3, 2, 1, 0), members(6, 7, 8), members(9, 10, 11)}
	want := []Family{members(0, 1, 2), members(9, 10, 11)}
	for _, threads := range []int{0, 1, 2} {
		cfg := DefaultConfig()
		cfg.Threads = threads
		c.Check(filterFamilies(fams, piles, cfg), check.DeepEquals, want, check.Commentf("threads=%d", threads))
	}
	c.Check(filterFamilies(nil, piles, DefaultConfig()), check.HasLen, 0)
}

func (s *S) TestAssignFamilies(c *check.C) {
	piles := spacedPiles(span{0, 20}, span{50, 70}, span{100, 120}, span{300, 320})
	fams := []Family{{{Pile: 2, Rev: true}, {Pile: 0}, {Pile: 1, Rev: true}}}
	c.Assert(assignFamilies(piles, fams, 3), check.IsNil)
	for i, want := range []struct{ fam, rev int }{
		{0, Forward}, {0, Reverse}, {0, Reverse}, {-1, Unknown},
	} {
		c.Check(piles[i].Family, check.Equals, want.fam, check.Commentf("Pile %d", i))
		c.Check(piles[i].Rev, check.Equals, want.rev, check.Commentf("Pile %d", i))
	}

	c.Check(assignFamilies(piles, []Family{members(0, 1)}, 3), isKind, ErrInvariant)
}
