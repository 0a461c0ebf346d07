// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gffer converts the JSON family output of crisp to GFF.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/biogo/crisp/crisp/crisp"
)

func main() {
	arrays := flag.Bool("arrays", false, "Write one array feature per family instead of one repeat feature per member.")
	flag.Parse()

	b := bufio.NewWriter(os.Stdout)
	defer b.Flush()
	err := convert(b, os.Stdin, *arrays)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

// convert reads JSON family lines from r and writes them to w as GFF.
func convert(w io.Writer, r io.Reader, arrays bool) error {
	br := bufio.NewReader(r)
	gw := gff.NewWriter(w, 60, false)

	ft := &gff.Feature{
		Source:         crisp.Source,
		Feature:        "repeat",
		FeatAttributes: gff.Attributes{{Tag: "Family"}},
	}
	if arrays {
		ft.Feature = "array"
		ft.FeatAttributes = append(ft.FeatAttributes, gff.Attribute{Tag: "Members"})
	}
	var v []crisp.Feature
	for fam := 0; ; fam++ {
		l, err := br.ReadBytes('\n')
		if err != nil && (err != io.EOF || len(l) == 0) {
			if err == io.EOF {
				return nil
			}
			return err
		}
		v = v[:0]
		err = json.Unmarshal(l, &v)
		if err != nil {
			return errors.Wrapf(err, "family %d", fam)
		}
		if len(v) == 0 {
			continue
		}
		ft.FeatAttributes[0].Value = fmt.Sprint(fam)
		ft.FeatFrame = gff.NoFrame
		if arrays {
			// Family members are in genome order on one contig.
			ft.SeqName = v[0].Chr
			ft.FeatStart = v[0].Start
			ft.FeatEnd = v[len(v)-1].End
			ft.FeatStrand = seq.None
			ft.FeatAttributes[1].Value = fmt.Sprint(len(v))
			_, err = gw.Write(ft)
			if err != nil {
				return err
			}
			continue
		}
		for _, f := range v {
			ft.SeqName = f.Chr
			ft.FeatStart = f.Start
			ft.FeatEnd = f.End
			ft.FeatStrand = f.Orient
			_, err = gw.Write(ft)
			if err != nil {
				return err
			}
		}
	}
}
