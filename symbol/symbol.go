// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbol lays out QR symbols.
//
// FromBits places a terminated bit stream built by package coding into
// a symbol, adding error correction and choosing the mask with the
// lowest penalty.  FromText encodes a payload in one step.
package symbol // import "github.com/qrusty/qr/symbol"

import (
	"errors"
	"fmt"

	"github.com/qrusty/qr/coding"
	qrcode "github.com/skip2/go-qrcode"
	rscoding "rsc.io/qr/coding"
)

// ErrCodec is returned when the symbol codec fails to produce a symbol.
var ErrCodec = errors.New("qr: codec failure")

// A Grid is a square module grid.
type Grid struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row
}

func newGrid(size int) Grid {
	stride := (size + 7) >> 3
	return Grid{Bitmap: make([]byte, stride*size), Size: size, Stride: stride}
}

// Black reports whether the module at x, y is dark.  Modules outside
// the grid are light.
func (g *Grid) Black(x, y int) bool {
	return 0 <= x && x < g.Size && 0 <= y && y < g.Size &&
		g.Bitmap[y*g.Stride+x/8]&(1<<(7&^x)) != 0
}

func (g *Grid) set(x, y int) {
	g.Bitmap[y*g.Stride+x/8] |= 1 << (7 &^ x)
}

// Dark returns the number of dark modules.
func (g *Grid) Dark() int {
	n := 0
	for _, b := range g.Bitmap {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}

// A Symbol is a laid out QR code.
type Symbol struct {
	Grid
	Version coding.Version
	Level   coding.Level
	Mask    int // data mask, or -1 if chosen by the codec
}

// stream passes a finished bit stream through the codec unchanged.
type stream []byte

func (s stream) Check() error              { return nil }
func (s stream) Bits(rscoding.Version) int { return len(s) * 8 }

func (s stream) Encode(b *rscoding.Bits, _ rscoding.Version) { b.Append(s) }

// FromBits lays out the bit stream b, which must have been terminated
// by PushTerminator.  Error correction is added and the mask with the
// lowest Penalty is chosen.  Micro QR versions are not supported.
func FromBits(b *coding.Bits) (*Symbol, error) {
	v, l := b.Version(), b.Level()
	switch {
	case v.IsMicro():
		return nil, fmt.Errorf("%w: version %s not supported", ErrCodec, v)
	case !b.Full():
		return nil, fmt.Errorf("%w: %d of %d bits, stream not terminated",
			ErrCodec, b.Len(), b.Cap())
	}
	var best *Symbol
	bestP := 0
	for mask := 0; mask < 8; mask++ {
		g, err := layout(b.Bytes(), v, l, mask)
		if err != nil {
			return nil, err
		}
		if p := g.Penalty(); best == nil || p < bestP {
			best = &Symbol{Grid: g, Version: v, Level: l, Mask: mask}
			bestP = p
		}
	}
	return best, nil
}

// layout places data with the given mask.
func layout(data []byte, v coding.Version, l coding.Level, mask int) (g Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCodec, r)
		}
	}()
	p, err := rscoding.NewPlan(rscoding.Version(v), rscoding.Level(l),
		rscoding.Mask(mask))
	if err != nil {
		return g, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	c, err := p.Encode(stream(data))
	if err != nil {
		return g, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	if c.Size != v.Size() {
		return g, fmt.Errorf("%w: version %s laid out as %d modules",
			ErrCodec, v, c.Size)
	}
	g = newGrid(c.Size)
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				g.set(x, y)
			}
		}
	}
	return g, nil
}

var recovery = [...]qrcode.RecoveryLevel{
	coding.L: qrcode.Low,
	coding.M: qrcode.Medium,
	coding.Q: qrcode.High,
	coding.H: qrcode.Highest,
}

// FromText encodes text at level l in a single step, letting the codec
// choose segments, version and mask.  The caller is expected to have
// checked that text fits in version 40.
func FromText(text string, l coding.Level) (s *Symbol, err error) {
	if !l.IsValid() {
		return nil, coding.ErrLevel
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrCodec, r)
		}
	}()
	q, err := qrcode.New(text, recovery[l])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	q.DisableBorder = true
	bm := q.Bitmap()
	g := newGrid(len(bm))
	for y, row := range bm {
		if len(row) != g.Size {
			return nil, fmt.Errorf("%w: bitmap not square", ErrCodec)
		}
		for x, dark := range row {
			if dark {
				g.set(x, y)
			}
		}
	}
	v := coding.Version(q.VersionNumber)
	if g.Size != v.Size() {
		return nil, fmt.Errorf("%w: version %s laid out as %d modules",
			ErrCodec, v, g.Size)
	}
	return &Symbol{Grid: g, Version: v, Level: l, Mask: -1}, nil
}
