// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// A Format denotes an output format.  The zero Format selects the
// default of the operation: SVG for SVG output, PNG for raster output.
type Format int

const (
	DefaultFormat Format = iota
	JPG
	JPEG
	PNG
	JPG64
	JPEG64
	PNG64
	SVG
	formats // number of formats
)

var formatNames = [formats]string{
	"default", "JPG", "JPEG", "PNG", "JPG64", "JPEG64", "PNG64", "SVG",
}

func (f Format) String() string {
	if 0 <= f && f < formats {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name such as "png" or "JPEG64",
// ignoring case.
func ParseFormat(s string) (Format, error) {
	for f := JPG; f < formats; f++ {
		if strings.EqualFold(s, formatNames[f]) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrInvalidEncodingRequest,
		ErrUnsupportedFormat, s)
}

// IsRaster reports whether f is a PNG or JPEG format.
func (f Format) IsRaster() bool { return JPG <= f && f <= PNG64 }

// IsBase64 reports whether f is a base64 text format.
func (f Format) IsBase64() bool { return JPG64 <= f && f <= PNG64 }

// Options configure a Generate call.
type Options struct {
	Width, Height   uint32 // minimum image size in pixels
	ErrorCorrection Level  // error correction level
	Format          Format // output format
}

// output is the output path of a Generate call.
type output int

const (
	vectorOutput output = iota
	rasterOutput
)

// request holds validated Options.
type request struct {
	width, height int
	level         Level
	format        Format
}

// validate checks o for an operation producing out.
func (o Options) validate(out output) (request, error) {
	var r request
	if o.Width == 0 || o.Height == 0 {
		return r, fmt.Errorf("%w: zero image size %dx%d",
			ErrInvalidEncodingRequest, o.Width, o.Height)
	}
	// Conversion only fails where int is 32 bits wide.
	var err error
	if r.width, err = safecast.Conv[int](o.Width); err != nil {
		return r, fmt.Errorf("%w: width: %w", ErrInvalidEncodingRequest, err)
	}
	if r.height, err = safecast.Conv[int](o.Height); err != nil {
		return r, fmt.Errorf("%w: height: %w", ErrInvalidEncodingRequest, err)
	}
	if _, err := o.ErrorCorrection.coding(); err != nil {
		return r, err
	}
	r.level = o.ErrorCorrection
	r.format = o.Format
	switch {
	case out == vectorOutput && r.format == DefaultFormat:
		r.format = SVG
	case out == rasterOutput && r.format == DefaultFormat:
		r.format = PNG
	case out == vectorOutput && r.format == SVG,
		out == rasterOutput && r.format.IsRaster():
	default:
		return r, fmt.Errorf("%w: %w: %s for %s output",
			ErrInvalidEncodingRequest, ErrUnsupportedFormat, r.format, out)
	}
	return r, nil
}

func (out output) String() string {
	if out == vectorOutput {
		return "vector"
	}
	return "raster"
}
