// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
)

var (
	ErrLevel          = errors.New("qr: invalid level")
	ErrVersion        = errors.New("qr: invalid version")
	ErrDataTooLong    = errors.New("qr: data too long")
	ErrInvalidSegment = errors.New("qr: invalid segment")
	ErrStreamOverflow = errors.New("qr: bit stream overflow")
)

// SegmentError represents a Segment inconsistent with the data it
// describes.
type SegmentError struct {
	Segment
	Size   int    // length of the data in bytes
	Reason string // what is wrong with the segment
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("qr: invalid %s segment [%d:%d] of %d bytes: %s",
		e.Mode, e.Begin, e.End, e.Size, e.Reason)
}

func (e *SegmentError) Unwrap() error { return ErrInvalidSegment }

// CompatError represents an incompatibility between Mode and Version.
type CompatError struct {
	Mode
	Version
}

func (e CompatError) Error() string {
	return fmt.Sprintf("qr: mode %s not encodable in version %s",
		e.Mode, e.Version)
}

func (e CompatError) Unwrap() error { return ErrStreamOverflow }
