// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

A string is split into numeric, alphanumeric, byte and kanji mode
segments so that its encoded length is minimal for a QR version size
class.  Split also selects the smallest QR version holding the result.
*/
package split // import "github.com/qrusty/qr/split"

import (
	"fmt"
	"unicode/utf8"

	"github.com/qrusty/qr/coding"
)

// A ModeSet is a bit field of encoding modes a string may be split
// into, with bit N (value 1<<N) set for coding.Mode N.
type ModeSet uint8

// Predefined ModeSets.
const (
	// AlphanumericOnly restricts the split to a single alphanumeric
	// segment.
	AlphanumericOnly ModeSet = 1 << coding.Alphanumeric

	// Standard permits numeric, alphanumeric and byte modes.
	Standard ModeSet = 1<<coding.Numeric | 1<<coding.Alphanumeric |
		1<<coding.Byte

	// All permits all modes, including kanji.
	All ModeSet = Standard | 1<<coding.Kanji
)

// Modes returns a ModeSet permitting the given modes.
func Modes(m ...coding.Mode) ModeSet {
	var s ModeSet
	for _, v := range m {
		if v.IsValid() {
			s |= 1 << v
		}
	}
	return s
}

// Has reports whether s permits m.
func (s ModeSet) Has(m coding.Mode) bool {
	return m.IsValid() && s>>m&1 != 0
}

// ErrNotEncodable wraps coding.ErrInvalidSegment.
var ErrNotEncodable = fmt.Errorf("%w: text not encodable in given modes",
	coding.ErrInvalidSegment)

/*
Splitter and its component types.

NewSplitter determines modes in which each rune in the string is
encodable and creates a slice of spans, each span describing a
substring of runes encodable in the same modes.  To avoid multiple
allocations, the span structure contains an array of segments for the
modes.

Split creates a linked list of segments representing an optimal split
of the string.  A segment contains its mode, its location in bytes and
runes, the total encoded length in bits of the string from this
segment to the end, and a link to the next segment.

The spans are walked backwards.  For each span n, for each mode m, a
segment (n,m) is created representing an optimal split for the string
from span n to the end, starting with mode m.  For each mode mm valid
for span n+1, a candidate linking to (n+1,mm) is created; if m=mm,
the two are merged.  The candidate with the smallest total encoded
length becomes (n,m).  At span 0, the segment with the smallest total
for any m describes an optimal split for the whole string.
*/
type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		next  *segment    // link to next segment in the chain
		mode  coding.Mode // encoding mode
		start int         // start of string in bytes
		len   int         // length of string in bytes
		runes int         // length of string in runes
		bits  int         // encoded size of all segments in the chain
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		start int     // start of string in bytes
		len   int     // length of string in bytes
		runes int     // length of string in runes
		modes ModeSet // valid encoding modes
		seg   [4]segment
	}
)

// A Splitter computes optimal splits of a string.
type Splitter struct {
	text string
	sp   []span
}

const inf = 1 << 30 // excessive encoded length

// runeModes returns the modes r is encodable in.
func runeModes(r rune) ModeSet {
	switch {
	case coding.Numeric.Accepts(r):
		return Standard
	case coding.Alphanumeric.Accepts(r):
		return Modes(coding.Alphanumeric, coding.Byte)
	case r >= 0x80 && r != utf8.RuneError && coding.IsKanji(r):
		return Modes(coding.Kanji, coding.Byte)
	}
	return Modes(coding.Byte)
}

// NewSplitter returns a Splitter for text using the given modes.
// If a rune is not encodable in any of them, NewSplitter returns an
// error wrapping ErrNotEncodable.
func NewSplitter(text string, modes ModeSet) (*Splitter, error) {
	var sp []span
	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRuneInString(text[i:])
		m := runeModes(r) & modes
		if m == 0 {
			return nil, fmt.Errorf("%w: %q at byte %d", ErrNotEncodable, r, i)
		}
		if n := len(sp) - 1; n >= 0 && sp[n].modes == m {
			sp[n].len += sz
			sp[n].runes++
		} else {
			sp = append(sp, span{start: i, len: sz, runes: 1, modes: m})
		}
		i += sz
	}
	return &Splitter{text: text, sp: sp}, nil
}

func (c *segment) setBits(class int) {
	c.bits = min(c.mode.Length(c.len, c.runes, class), inf)
	if c.next != nil {
		c.bits += c.next.bits
	}
}

// add computes the segments of v, linking them to the segments of
// next, and returns the one with the smallest encoded length.
func (v *span) add(next *span, class int) *segment {
	best := &v.seg[0]
	for j := range v.seg {
		seg := &v.seg[j]
		m := coding.Mode(j)
		*seg = segment{mode: m, bits: inf}
		if !v.modes.Has(m) || !m.Available(class) {
			continue
		}
		c := segment{mode: m, start: v.start, len: v.len, runes: v.runes}
		if next == nil {
			c.setBits(class)
			*seg = c
		}
		for k := range next.segs() {
			n := &next.seg[k]
			if n.bits >= inf {
				continue
			}
			cc := c
			cc.next = n
			if n.mode == m {
				cc.len += n.len
				cc.runes += n.runes
				cc.next = n.next
			}
			cc.setBits(class)
			if cc.bits < seg.bits {
				*seg = cc
			}
		}
		if seg.bits < best.bits {
			best = seg
		}
	}
	return best
}

// segs returns the segments of v; it is empty if v is nil.
func (v *span) segs() []segment {
	if v == nil {
		return nil
	}
	return v.seg[:]
}

// Split returns an optimal split of the string at the given QR version
// size class and its encoded length in bits.  It returns an encoded
// length of at least 1<<30 if no mode permitted for some span is
// available in the class.
func (s *Splitter) Split(class int) ([]coding.Segment, int) {
	// process spans in reverse order
	var head *segment
	var next *span
	for i := len(s.sp) - 1; i >= 0; i-- {
		head = s.sp[i].add(next, class)
		next = &s.sp[i]
	}
	if head == nil {
		return nil, 0
	}
	if head.bits >= inf {
		return nil, head.bits
	}
	var segs []coding.Segment
	for seg := head; seg != nil; seg = seg.next {
		segs = append(segs, coding.Segment{
			Mode:  seg.mode,
			Begin: seg.start,
			End:   seg.start + seg.len,
		})
	}
	return segs, head.bits
}

// Optimize returns an optimal split of text into modes at the given
// size class and its encoded length in bits.
func Optimize(text string, class int, modes ModeSet) ([]coding.Segment, int, error) {
	s, err := NewSplitter(text, modes)
	if err != nil {
		return nil, 0, err
	}
	segs, bits := s.Split(class)
	return segs, bits, nil
}

/*
Split returns segments and the minimum QR version for text at the
given error correction level.

The encoded length depends on the character count field widths, which
change between the version size classes 1-9, 10-26 and 27-40.  Split
splits the text for the largest version of each class in turn until
the result fits, then binary-searches the class for the smallest
version holding it.  If the text does not fit in version 40, Split
returns an error wrapping coding.ErrDataTooLong.
*/
func Split(text string, level coding.Level, modes ModeSet) ([]coding.Segment, coding.Version, error) {
	if !level.IsValid() {
		return nil, 0, coding.ErrLevel
	}
	s, err := NewSplitter(text, modes)
	if err != nil {
		return nil, 0, err
	}
	bits := 0
	for _, band := range coding.Bands {
		var segs []coding.Segment
		segs, bits = s.Split(band.Max.SizeClass())
		if bits <= band.Max.DataBits(level) {
			v, err := coding.FindVersionIn(bits, level, band.Min, band.Max)
			if err != nil {
				return nil, 0, err
			}
			return segs, v, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: %d bits exceed %d-bit version %s-%s",
		coding.ErrDataTooLong, bits, coding.MaxVersion.DataBits(level),
		coding.MaxVersion, level)
}
