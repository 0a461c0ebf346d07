// Copyright ©2014 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crisp

import "github.com/pkg/errors"

// Error kinds returned by a run. Returned errors wrap one of these
// with context; use errors.Cause to recover the kind.
var (
	// ErrCapacity indicates the genome holds more piles than
	// can be indexed by a single run.
	ErrCapacity = errors.New("crisp: too many piles")

	// ErrInvariant indicates corrupt hit geometry or an internal
	// inconsistency between pipeline stages.
	ErrInvariant = errors.New("crisp: invariant violation")

	// ErrConfig indicates an unusable Config.
	ErrConfig = errors.New("crisp: invalid configuration")
)
