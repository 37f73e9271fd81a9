// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements the bit level details of QR encoding:
// the data capacity table, version selection, encoding modes and
// bit stream assembly.
package coding // import "github.com/qrusty/qr/coding"

import "strconv"

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side,
// a Micro QR code with version Mv 2v+9 pixels.
// Versions run in two sequences, from M1 to M4 and from 1 to 40:
// the larger the version, the more information the code can store.
type Version int

// Code versions.
const (
	// Micro QR versions
	M1 Version = MaxVersion + 1 + iota
	M2
	M3
	M4

	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	if v >= M1 && v <= M4 {
		return []string{"M1", "M2", "M3", "M4"}[v-M1]
	}
	return strconv.Itoa(int(v))
}

// IsMicro reports whether v is a Micro QR version.
func (v Version) IsMicro() bool { return v >= M1 && v <= M4 }

// IsValid reports whether v is a QR or Micro QR version.
func (v Version) IsValid() bool { return v >= MinVersion && v <= M4 }

// Size returns the number of modules on a side of a code of version v,
// not counting the quiet zone.
func (v Version) Size() int {
	if v.IsMicro() {
		return int(v-M1)*2 + 11
	}
	return int(v)*4 + 17
}

// Micro QR and QR version size classes.  The size class determines
// the lengths of the mode indicator and the character count field.
const (
	ClassM1 = iota // Micro QR version M1
	ClassM2        // Micro QR version M2
	ClassM3        // Micro QR version M3
	ClassM4        // Micro QR version M4
	Class0         // QR versions 1 to 9
	Class1         // QR versions 10 to 26
	Class2         // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under ClassM1.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	if v <= 40 {
		return Class2
	}
	return int(v - M1)
}

// A Band is a range of QR versions sharing a size class.
type Band struct {
	Min, Max Version
}

// Bands lists the QR version size classes 0, 1 and 2 in order.
// Their upper bounds are the checkpoint versions probed by the
// two-phase version search.
var Bands = [3]Band{{1, 9}, {10, 26}, {27, 40}}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q and H.
func (l Level) IsValid() bool { return L <= l && l <= H }

// FindVersion returns the smallest QR version from 1 to 40 holding
// bits data bits at level l.
func FindVersion(bits int, l Level) (Version, error) {
	return FindVersionIn(bits, l, MinVersion, MaxVersion)
}

// FindVersionIn returns the smallest version from lo to hi holding
// bits data bits at level l.  It relies on the capacity being
// non-decreasing in version, which is checked when the package is
// initialised.  It returns ErrDataTooLong if hi is too small.
func FindVersionIn(bits int, l Level, lo, hi Version) (Version, error) {
	if !l.IsValid() {
		return 0, ErrLevel
	}
	if lo < MinVersion || hi > MaxVersion || lo > hi {
		return 0, ErrVersion
	}
	if hi.DataBits(l) < bits {
		return 0, ErrDataTooLong
	}
	v := lo
	for v < hi {
		if mid := (v + hi) / 2; mid.DataBits(l) < bits {
			v = mid + 1
		} else {
			hi = mid
		}
	}
	return v, nil
}
