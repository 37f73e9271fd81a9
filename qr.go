// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes and renders them as SVG, PNG or JPEG.

Encode delegates the whole encoding to the symbol codec.
EncodeSegments and EncodeAlphanumeric split the text into segments,
choose the smallest version holding them, build the bit stream and
hand it to the codec for layout.  The Generate functions combine
encoding, rendering and output formatting in a single call.
*/
package qr // import "github.com/qrusty/qr"

import (
	"fmt"
	"strings"

	"github.com/qrusty/qr/coding"
	"github.com/qrusty/qr/split"
	"github.com/qrusty/qr/symbol"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string { return coding.Level(l).String() }

// ParseLevel parses one of "l", "m", "q" and "h", in either case.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		if i := strings.IndexByte("lmqhLMQH", s[0]); i >= 0 {
			return Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("%w: level %q", ErrInvalidEncodingRequest, s)
}

// coding returns the coding level for l.
func (l Level) coding() (coding.Level, error) {
	if cl := coding.Level(l); cl.IsValid() {
		return cl, nil
	}
	return 0, fmt.Errorf("%w: %w", ErrInvalidEncodingRequest, coding.ErrLevel)
}

// DefaultBorder is the quiet zone width in modules required by the
// QR standard.
const DefaultBorder = 4

// A Code is a square pixel grid.
type Code struct {
	symbol.Grid
	Version coding.Version // QR version
	Level   Level          // error correction level
	Scale   int            // number of image pixels per QR module
	Border  int            // quiet zone width in modules
}

func newCode(s *symbol.Symbol) *Code {
	return &Code{
		Grid:    s.Grid,
		Version: s.Version,
		Level:   Level(s.Level),
		Scale:   1,
		Border:  DefaultBorder,
	}
}

// Encode returns an encoding of text at the given error correction
// level, leaving segmentation and mask selection to the symbol codec.
// If text does not fit in version 40, Encode returns an error wrapping
// ErrDataTooLong.  Empty text yields an empty version 1 code.
func Encode(text string, level Level) (*Code, error) {
	if text == "" {
		// The codec refuses empty data.
		return EncodeSegments(text, level, split.Standard)
	}
	l, err := level.coding()
	if err != nil {
		return nil, err
	}
	// The codec does not report capacity failures distinctly.
	if _, _, err := split.Split(text, l, split.Standard); err != nil {
		return nil, err
	}
	s, err := symbol.FromText(text, l)
	if err != nil {
		return nil, err
	}
	return newCode(s), nil
}

// EncodeAlphanumeric returns an encoding of text as a single
// alphanumeric segment in the smallest version holding it.  Text must
// consist of digits, upper case letters and " $%*+-./:".
func EncodeAlphanumeric(text string, level Level) (*Code, error) {
	return EncodeSegments(text, level, split.AlphanumericOnly)
}

// EncodeSegments returns an encoding of text split into segments of
// the given modes, in the smallest version holding them.
func EncodeSegments(text string, level Level, modes split.ModeSet) (*Code, error) {
	l, err := level.coding()
	if err != nil {
		return nil, err
	}
	segs, v, err := split.Split(text, l, modes)
	if err != nil {
		return nil, err
	}
	b, err := coding.NewBits(v, l)
	if err != nil {
		return nil, err
	}
	if err := b.PushSegments(text, segs); err != nil {
		return nil, err
	}
	if err := b.PushTerminator(); err != nil {
		return nil, err
	}
	s, err := symbol.FromBits(b)
	if err != nil {
		return nil, err
	}
	return newCode(s), nil
}

// Side returns the number of modules on a side including the quiet
// zone.
func (c *Code) Side() int { return c.Size + 2*c.Border }

// MinDimensions sets c.Scale to the smallest positive scale making the
// image at least w pixels wide and h pixels high.  Modules stay
// square, so the larger requirement wins.
func (c *Code) MinDimensions(w, h int) {
	n := c.Side()
	c.Scale = max(1, (w+n-1)/n, (h+n-1)/n)
}
