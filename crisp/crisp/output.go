// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// Source is the GFF source field of features written by crisp.
const Source = "crisp"

// span returns the contig name and contig-relative half-open
// interval of the closed genome interval [from, to].
func (g *Genome) span(from, to int) (name string, start, end int, err error) {
	c, start, ok := g.Locate(from)
	if !ok {
		return "", 0, 0, errors.Errorf("crisp: position %d not in genome", from)
	}
	if to >= c.Offset+c.Len {
		return "", 0, 0, errors.Errorf("crisp: interval %d-%d crosses end of %q", from, to, c.Name)
	}
	return c.Name, start, to - c.Offset + 1, nil
}

func strand(rev bool) seq.Strand {
	if rev {
		return seq.Minus
	}
	return seq.Plus
}

// WritePiles writes a GFF pile feature for each of piles.
func WritePiles(w io.Writer, g *Genome, piles []Pile) error {
	gw := gff.NewWriter(w, 60, false)
	ft := &gff.Feature{
		Source:         Source,
		Feature:        "pile",
		FeatFrame:      gff.NoFrame,
		FeatAttributes: gff.Attributes{{Tag: "Pile"}, {Tag: "Images"}},
	}
	for i, p := range piles {
		var err error
		ft.SeqName, ft.FeatStart, ft.FeatEnd, err = g.span(p.From, p.To)
		if err != nil {
			return err
		}
		ft.FeatAttributes[0].Value = fmt.Sprint(i)
		ft.FeatAttributes[1].Value = fmt.Sprint(len(p.Images))
		_, err = gw.Write(ft)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteImages writes a GFF image feature for each image held by piles.
// Each feature spans its pile and targets the extent of the partner pile.
func WriteImages(w io.Writer, g *Genome, piles []Pile) error {
	gw := gff.NewWriter(w, 60, false)
	ft := &gff.Feature{
		Source:         Source,
		Feature:        "image",
		FeatFrame:      gff.NoFrame,
		FeatAttributes: gff.Attributes{{Tag: "Target"}, {Tag: "Pile"}, {Tag: "Partner"}, {Tag: "Length"}},
	}
	for i, p := range piles {
		name, start, end, err := g.span(p.From, p.To)
		if err != nil {
			return err
		}
		ft.SeqName, ft.FeatStart, ft.FeatEnd = name, start, end
		ft.FeatAttributes[1].Value = fmt.Sprint(i)
		for _, im := range p.Images {
			q := &piles[im.Pile]
			qname, qstart, qend, err := g.span(q.From, q.To)
			if err != nil {
				return err
			}
			ft.FeatStrand = strand(im.Rev)
			ft.FeatAttributes[0].Value = fmt.Sprintf("%s %d %d", qname, qstart+1, qend)
			ft.FeatAttributes[2].Value = fmt.Sprint(im.Pile)
			ft.FeatAttributes[3].Value = fmt.Sprint(im.Len)
			_, err = gw.Write(ft)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteRepeats writes a GFF repeat feature for each pile assigned to a
// family. Piles without a family are not written.
func WriteRepeats(w io.Writer, g *Genome, piles []Pile) error {
	gw := gff.NewWriter(w, 60, false)
	ft := &gff.Feature{
		Source:         Source,
		Feature:        "repeat",
		FeatFrame:      gff.NoFrame,
		FeatAttributes: gff.Attributes{{Tag: "Family"}, {Tag: "Pile"}},
	}
	for i, p := range piles {
		if p.Family < 0 {
			continue
		}
		var err error
		ft.SeqName, ft.FeatStart, ft.FeatEnd, err = g.span(p.From, p.To)
		if err != nil {
			return err
		}
		ft.FeatStrand = strand(p.Rev == Reverse)
		ft.FeatAttributes[0].Value = fmt.Sprint(p.Family)
		ft.FeatAttributes[1].Value = fmt.Sprint(i)
		_, err = gw.Write(ft)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteArrays writes a GFF array feature for each of arrays.
func WriteArrays(w io.Writer, g *Genome, arrays []Array) error {
	gw := gff.NewWriter(w, 60, false)
	ft := &gff.Feature{
		Source:         Source,
		Feature:        "array",
		FeatFrame:      gff.NoFrame,
		FeatAttributes: gff.Attributes{{Tag: "Family"}, {Tag: "Members"}, {Tag: "Cover"}},
	}
	for _, a := range arrays {
		var err error
		ft.SeqName, ft.FeatStart, ft.FeatEnd, err = g.span(a.From, a.To)
		if err != nil {
			return err
		}
		ft.FeatAttributes[0].Value = fmt.Sprint(a.Family)
		ft.FeatAttributes[1].Value = fmt.Sprint(a.Members)
		ft.FeatAttributes[2].Value = fmt.Sprint(a.Cover)
		_, err = gw.Write(ft)
		if err != nil {
			return err
		}
	}
	return nil
}

// Feature is the JSON representation of a family member.
type Feature struct {
	Chr    string     `json:"C"`
	Start  int        `json:"S"`
	End    int        `json:"E"`
	Orient seq.Strand `json:"O"`
}

// WriteJSON writes each of fams as a line holding a JSON array of its
// members in genome order.
func WriteJSON(w io.Writer, g *Genome, piles []Pile, fams []Family) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, fam := range fams {
		v := make([]Feature, len(fam))
		for i, m := range fam {
			p := &piles[m.Pile]
			name, start, end, err := g.span(p.From, p.To)
			if err != nil {
				return err
			}
			v[i] = Feature{Chr: name, Start: start, End: end, Orient: strand(m.Rev)}
		}
		err := enc.Encode(v)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDOT writes the pile graph described by edges in DOT format.
// Reverse pairings are drawn dashed.
func WriteDOT(w io.Writer, edges []Edge) error {
	b, err := dot.Marshal(edgeGraph(edges), "piles", "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
