// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// crisp is a tool that takes self-alignment data as produced by PALS or krishna
// and finds candidate CRISPR repeat arrays.
package main

import (
	"flag"
	"io"
	"os"
	"runtime/pprof"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/grailbio/base/log"

	"github.com/biogo/crisp/crisp/crisp"
)

func main() {
	var (
		inName     = flag.String("in", "", "Filename for PALS hit input. Defaults to stdin.")
		outName    = flag.String("out", "", "Filename for CRISPR repeat GFF output.")
		pilesName  = flag.String("piles", "", "Filename for pile GFF output.")
		imagesName = flag.String("images", "", "Filename for image GFF output.")
		arraysName = flag.String("arrays", "", "Filename for array GFF output (requires -out).")
		jsonName   = flag.String("json", "", "Filename for JSON family output (requires -out).")
		dotName    = flag.String("dot", "", "Filename for DOT pile graph output (requires -out).")

		cpuprofile = flag.String("cpuprofile", "", "Write cpu profile to this file.")

		help = flag.Bool("help", false, "Print usage message.")
	)
	cfg := crisp.DefaultConfig()
	flag.IntVar(&cfg.MinFamSize, "famsize", cfg.MinFamSize, "Minimum number of repeats in an array.")
	flag.IntVar(&cfg.MinRepeatLen, "minrepeat", cfg.MinRepeatLen, "Minimum repeat length.")
	flag.IntVar(&cfg.MaxRepeatLen, "maxrepeat", cfg.MaxRepeatLen, "Maximum repeat length.")
	flag.IntVar(&cfg.MinSpacerLen, "minspacer", cfg.MinSpacerLen, "Minimum spacer length.")
	flag.IntVar(&cfg.MaxSpacerLen, "maxspacer", cfg.MaxSpacerLen, "Maximum spacer length.")
	flag.IntVar(&cfg.MaxSpaceDiff, "spacediff", cfg.MaxSpaceDiff, "Maximum difference between consecutive spacer lengths in an array.")
	flag.IntVar(&cfg.ChunkLen, "chunk", cfg.ChunkLen, "Number of bases per coverage bitmap position.")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "Number of parallel batches (if 0 use GOMAXPROCS).")
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *outName == "" && *pilesName == "" && *imagesName == "" {
		flag.Usage()
		log.Fatalf("no output file specified, must be at least one of -out, -piles, -images")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if *cpuprofile != "" {
		profile, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("failed to create profile: %v", err)
		}
		log.Printf("writing CPU profile data to %s", *cpuprofile)
		pprof.StartCPUProfile(profile)
		defer pprof.StopCPUProfile()
	}

	var in *gff.Reader
	if *inName == "" {
		log.Printf("reading PALS features from stdin")
		in = gff.NewReader(os.Stdin)
	} else {
		f, err := os.Open(*inName)
		if err != nil {
			log.Fatalf("failed to open hit file: %v", err)
		}
		defer f.Close()
		in = gff.NewReader(f)
		log.Printf("reading PALS features from %q", *inName)
	}

	genome, hits, err := crisp.ReadHits(in, cfg.ContigPad())
	if err != nil {
		log.Fatalf("failed to read hits: %v", err)
	}
	log.Printf("%d hits over %d contigs", len(hits), len(genome.Contigs))

	run, err := crisp.NewRun(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	err = run.BuildPiles(hits, genome.Len())
	if err != nil {
		log.Fatalf("failed to build piles: %v", err)
	}

	write(*imagesName, "images", func(w io.Writer) error {
		return crisp.WriteImages(w, genome, run.Piles)
	})
	write(*pilesName, "piles", func(w io.Writer) error {
		return crisp.WritePiles(w, genome, run.Piles)
	})

	if *outName == "" {
		return
	}

	err = run.FindFamilies()
	if err != nil {
		log.Fatalf("failed to find families: %v", err)
	}

	write(*outName, "repeats", func(w io.Writer) error {
		return crisp.WriteRepeats(w, genome, run.Piles)
	})
	write(*arraysName, "arrays", func(w io.Writer) error {
		return crisp.WriteArrays(w, genome, run.Arrays())
	})
	write(*jsonName, "families", func(w io.Writer) error {
		return crisp.WriteJSON(w, genome, run.Piles, run.Families)
	})
	write(*dotName, "pile graph", func(w io.Writer) error {
		return crisp.WriteDOT(w, run.Edges)
	})
}

// write creates the named file and writes to it using fn. If name is
// empty, write does nothing.
func write(name, what string, fn func(io.Writer) error) {
	if name == "" {
		return
	}
	f, err := os.Create(name)
	if err != nil {
		log.Fatalf("failed to create %s file: %v", what, err)
	}
	log.Printf("writing %s to %q", what, name)
	err = fn(f)
	if err != nil {
		log.Fatalf("failed to write %s: %v", what, err)
	}
	err = f.Close()
	if err != nil {
		log.Fatalf("failed to close %s file: %v", what, err)
	}
}
