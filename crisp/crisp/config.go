// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import (
	"math"

	"github.com/pkg/errors"
)

// MaxPiles is the number of piles a single run can address. Pile indexes
// are stored as int32 values with -1 reserved for uncovered chunks.
const MaxPiles = math.MaxInt32

// Config specifies the geometry of a CRISPR array search. A Config is read
// once at the start of a run and is constant thereafter.
type Config struct {
	// MinRepeatLen and MaxRepeatLen bound the length of a hit
	// and of a pile for either to be considered a CRISPR repeat.
	MinRepeatLen int
	MaxRepeatLen int

	// MinSpacerLen and MaxSpacerLen bound the gap between the
	// two intervals of a hit and between two linked piles.
	MinSpacerLen int
	MaxSpacerLen int

	// MinFamSize is the smallest number of piles retained as a family.
	MinFamSize int

	// MaxSpaceDiff is the largest allowed difference between two
	// consecutive inter-repeat gaps within an array.
	MaxSpaceDiff int

	// ChunkLen is the number of bases represented by a single
	// coverage bitmap position.
	ChunkLen int

	// Threads specifies the number of parallel batches used by edge
	// finding and spacing filtering. If zero, a default based on
	// GOMAXPROCS is used; 1 gives sequential operation.
	Threads int
}

// DefaultConfig returns the standard PILER-CR search geometry.
func DefaultConfig() Config {
	return Config{
		MinRepeatLen: 10,
		MaxRepeatLen: 200,
		MinSpacerLen: 10,
		MaxSpacerLen: 200,
		MinFamSize:   3,
		MaxSpaceDiff: 20,
		ChunkLen:     1,
	}
}

// Validate returns an error wrapping ErrConfig if cfg cannot describe a search.
func (cfg Config) Validate() error {
	switch {
	case cfg.MinRepeatLen < 0 || cfg.MinRepeatLen > cfg.MaxRepeatLen:
		return errors.Wrapf(ErrConfig, "repeat length window [%d,%d]", cfg.MinRepeatLen, cfg.MaxRepeatLen)
	case cfg.MinSpacerLen < 0 || cfg.MinSpacerLen > cfg.MaxSpacerLen:
		return errors.Wrapf(ErrConfig, "spacer length window [%d,%d]", cfg.MinSpacerLen, cfg.MaxSpacerLen)
	case cfg.MinFamSize < 1:
		return errors.Wrapf(ErrConfig, "minimum family size %d", cfg.MinFamSize)
	case cfg.MaxSpaceDiff < 0:
		return errors.Wrapf(ErrConfig, "maximum space difference %d", cfg.MaxSpaceDiff)
	case cfg.ChunkLen < 1:
		return errors.Wrapf(ErrConfig, "chunk length %d", cfg.ChunkLen)
	case cfg.Threads < 0:
		return errors.Wrapf(ErrConfig, "thread count %d", cfg.Threads)
	}
	return nil
}

// ContigPad returns the number of bases that must separate two contigs laid
// out on a single genome axis so that no pile or edge can join them.
func (cfg Config) ContigPad() int {
	return cfg.MaxSpacerLen + 2*cfg.ChunkLen
}

func (cfg Config) isRepeatLen(n int) bool {
	return cfg.MinRepeatLen <= n && n <= cfg.MaxRepeatLen
}

func (cfg Config) isSpacerLen(n int) bool {
	return cfg.MinSpacerLen <= n && n <= cfg.MaxSpacerLen
}
