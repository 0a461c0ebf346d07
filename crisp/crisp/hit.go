// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

// Hit is a pairwise alignment between two closed intervals on the
// genome axis.
//
//	          <-----spacer------->
//	------====--------------------====------------ genome
//	      Query                   Target
type Hit struct {
	QueryFrom, QueryTo   int
	TargetFrom, TargetTo int
	Rev                  bool
}

// Len returns the mean length of the query and target intervals.
func (h Hit) Len() int {
	return ((h.QueryTo - h.QueryFrom + 1) + (h.TargetTo - h.TargetFrom + 1)) / 2
}

// Spacer returns the gap between the query and target intervals.
func (h Hit) Spacer() int {
	if h.QueryFrom > h.TargetTo {
		return h.QueryFrom - h.TargetTo
	}
	return h.TargetFrom - h.QueryTo
}

// IsCandidate returns whether h may be a pair of adjacent repeats in a
// CRISPR array under the geometry of cfg.
func (cfg Config) IsCandidate(h Hit) bool {
	return !h.Rev && cfg.isRepeatLen(h.Len()) && cfg.isSpacerLen(h.Spacer())
}

// Candidates compacts hits to the candidate hits under cfg, preserving
// their order. The backing array of hits is reused.
func Candidates(hits []Hit, cfg Config) []Hit {
	n := 0
	for _, h := range hits {
		if cfg.IsCandidate(h) {
			hits[n] = h
			n++
		}
	}
	return hits[:n]
}
