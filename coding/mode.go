// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int8

// Encoding modes.
const (
	Numeric      Mode = iota // numeric mode, ASCII digits
	Alphanumeric             // alphanumeric mode, ASCII
	Byte                     // byte mode, any data
	Kanji                    // kanji mode, UTF-8 text encoded as Shift JIS
	modes                    // number of modes
)

// modeEncoder describes a segment encoding mode.
type modeEncoder struct {
	name      string // name for error reporting
	indicator byte   // 4 bit mode indicator for QR codes

	// countLength lists lengths of the character count field in four
	// Micro QR and three QR version size classes.  Zero marks a mode
	// unavailable in the class, except for numeric mode in M1.
	countLength [7]byte

	// encodedLength returns the encoded data length in bits of a
	// valid string of the given length in bytes and runes.
	encodedLength func(bytes, runes int) int

	// accepts reports whether the mode can encode the rune.
	accepts func(rune) bool
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table, indexed by the low 6 bits of a
// validated character.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 8, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

var encoders = [modes]modeEncoder{
	Numeric: {
		name:          "numeric",
		indicator:     1,
		countLength:   [7]byte{3, 4, 5, 6, 10, 12, 14},
		encodedLength: func(b, r int) int { return (10*b + 2) / 3 },
		accepts:       func(r rune) bool { return uint32(r-'0') < 10 },
	},
	Alphanumeric: {
		name:          "alphanumeric",
		indicator:     2,
		countLength:   [7]byte{0, 3, 4, 5, 9, 11, 13},
		encodedLength: func(b, r int) int { return (11*b + 1) / 2 },
		accepts: func(r rune) bool {
			return alphamask>>(uint32(r)-' ')&1 != 0
		},
	},
	Byte: {
		name:          "byte",
		indicator:     4,
		countLength:   [7]byte{0, 0, 4, 5, 8, 16, 16},
		encodedLength: func(b, r int) int { return b * 8 },
		accepts:       func(rune) bool { return true },
	},
	Kanji: {
		name:          "kanji",
		indicator:     8,
		countLength:   [7]byte{0, 0, 3, 4, 8, 10, 12},
		encodedLength: func(b, r int) int { return r * 13 },
		accepts:       IsKanji,
	},
}

func (m Mode) String() string {
	if m.IsValid() {
		return encoders[m].name
	}
	return strconv.Itoa(int(m))
}

// IsValid reports whether m is one of the predefined modes.
func (m Mode) IsValid() bool { return 0 <= m && m < modes }

// Accepts reports whether r is encodable in m.
func (m Mode) Accepts(r rune) bool {
	return m.IsValid() && encoders[m].accepts(r)
}

// Available reports whether m can be used in a code of the given
// size class.
func (m Mode) Available(class int) bool {
	if !m.IsValid() || class < ClassM1 || class > Class2 {
		return false
	}
	return m == Numeric || encoders[m].countLength[class] != 0
}

// Length returns the length in bits of a valid string of the given
// length in bytes and runes encoded in m at the given version size
// class, including the header.  Length returns 0 if m is invalid.
func (m Mode) Length(bytes, runes, class int) int {
	if !m.IsValid() || class < ClassM1 || class > Class2 {
		return 0
	}
	e := &encoders[m]
	return min(class, 4) + int(e.countLength[class]) +
		e.encodedLength(bytes, runes)
}

// IsKanji reports whether r is encodable in QR kanji mode, that is,
// whether its Shift JIS encoding falls in 0x8140-0x9ffc or
// 0xe040-0xebbf.
func IsKanji(r rune) bool {
	_, ok := kanjiCode(r)
	return ok
}

// kanjiCode returns the two byte Shift JIS code of r and whether it
// is a QR kanji.
func kanjiCode(r rune) (uint16, bool) {
	if r < 0x80 {
		return 0, false
	}
	s, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	if err != nil || len(s) != 2 {
		return 0, false
	}
	c := uint16(s[0])<<8 | uint16(s[1])
	return c, 0x8140 <= c && c <= 0x9ffc || 0xe040 <= c && c <= 0xebbf
}

// A Segment describes a span of the data encoded in one mode.
type Segment struct {
	Mode       Mode // encoding mode
	Begin, End int  // byte offsets into the data
}

// Text returns the part of data covered by seg.
func (seg Segment) Text(data string) string { return data[seg.Begin:seg.End] }

// count returns the character count of s in mode m.
func (m Mode) count(s string) int {
	if m == Kanji {
		return utf8.RuneCountInString(s)
	}
	return len(s)
}

// EncodedLength returns the encoded length in bits of seg, header
// included, at the given version size class.  The segment is not
// validated.
func (seg Segment) EncodedLength(data string, class int) int {
	s := seg.Text(data)
	return seg.Mode.Length(len(s), seg.Mode.count(s), class)
}

// EncodedLength returns the total encoded length in bits of segs at
// the given version size class.
func EncodedLength(data string, segs []Segment, class int) int {
	n := 0
	for _, seg := range segs {
		n += seg.EncodedLength(data, class)
	}
	return n
}
