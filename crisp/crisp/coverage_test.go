// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import "gopkg.in/check.v1"

type span struct{ from, to int }

// checkRuns checks that the pile index describes n disjoint ordered runs
// separated by uncovered chunks and returns the runs.
func checkRuns(c *check.C, n int, index []int32) []span {
	var runs []span
	for i, p := range index {
		if p == noPile {
			continue
		}
		if i == 0 || index[i-1] != p {
			c.Assert(int(p), check.Equals, len(runs), check.Commentf("chunk %d", i))
			if i > 0 {
				c.Assert(index[i-1], check.Equals, int32(noPile), check.Commentf("piles touch at chunk %d", i))
			}
			runs = append(runs, span{from: i})
		}
		runs[len(runs)-1].to = i
	}
	c.Check(runs, check.HasLen, n)
	return runs
}

func (s *S) TestPiles(c *check.C) {
	for i, t := range []struct {
		genomeLen, chunkLen int
		add                 []span
		want                []span
	}{
		{
			genomeLen: 100, chunkLen: 1,
			add:  []span{{10, 19}, {15, 25}, {40, 49}, {50, 55}, {70, 70}},
			want: []span{{10, 25}, {40, 55}, {70, 70}},
		},
		{
			genomeLen: 100, chunkLen: 10,
			add:  []span{{12, 18}, {35, 41}},
			want: []span{{1, 1}, {3, 4}},
		},
		{
			genomeLen: 95, chunkLen: 10,
			add:  []span{{91, 94}, {0, 9}},
			want: []span{{0, 0}, {9, 9}},
		},
		{
			genomeLen: 10, chunkLen: 1,
			add:  []span{{5, 9}},
			want: []span{{5, 9}},
		},
		{
			genomeLen: 200, chunkLen: 1,
			add:  []span{{0, 199}},
			want: []span{{0, 199}},
		},
		{
			genomeLen: 100, chunkLen: 1,
			want: nil,
		},
	} {
		cov := newCoverage(t.genomeLen, t.chunkLen)
		for _, a := range t.add {
			c.Assert(cov.add(a.from, a.to), check.IsNil)
		}
		n, index, err := cov.piles(MaxPiles)
		c.Assert(err, check.IsNil)
		c.Check(index, check.HasLen, (t.genomeLen+t.chunkLen-1)/t.chunkLen, check.Commentf("Test %d", i))
		c.Check(n, check.Equals, len(t.want), check.Commentf("Test %d", i))
		c.Check(checkRuns(c, n, index), check.DeepEquals, t.want, check.Commentf("Test %d", i))
	}
}

func (s *S) TestCoverageClamp(c *check.C) {
	cov := newCoverage(50, 1)
	c.Check(cov.add(45, 80), check.IsNil)
	c.Check(cov.add(60, 70), check.IsNil)
	n, index, err := cov.piles(MaxPiles)
	c.Assert(err, check.IsNil)
	c.Check(checkRuns(c, n, index), check.DeepEquals, []span{{45, 49}})
}

func (s *S) TestCoverageInvalid(c *check.C) {
	cov := newCoverage(50, 1)
	c.Check(cov.add(-1, 10), isKind, ErrInvariant)
	c.Check(cov.add(20, 10), isKind, ErrInvariant)
	c.Check(cov.addHit(Hit{QueryFrom: -5, QueryTo: 3, TargetFrom: 20, TargetTo: 28}), isKind, ErrInvariant)

	empty := newCoverage(0, 1)
	c.Check(empty.add(0, 0), isKind, ErrInvariant)
	n, index, err := empty.piles(MaxPiles)
	c.Check(err, check.IsNil)
	c.Check(n, check.Equals, 0)
	c.Check(index, check.HasLen, 0)
}

func (s *S) TestPilesCapacity(c *check.C) {
	cov := newCoverage(100, 1)
	for _, a := range []span{{0, 9}, {20, 29}, {40, 49}} {
		c.Assert(cov.add(a.from, a.to), check.IsNil)
	}
	_, _, err := cov.piles(2)
	c.Check(err, isKind, ErrCapacity)

	n, _, err := cov.piles(3)
	c.Check(err, check.IsNil)
	c.Check(n, check.Equals, 3)
}
