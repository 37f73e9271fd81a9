// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbol

// Penalty rules.
//
//   - RunP: for non-overlapping runs of n modules, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for possibly overlapping finder-like patterns -> 40
//     The pattern is 1011101 with 0000 on either side, or inverted;
//     it may extend into the quiet zone.
//   - BalP: for n% of dark modules -> 10*(ceiling(abs(n-50)/5)-1)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
const (
	MinRun    = 5             // RunP:  minimum run length
	RunPDelta = -2            // RunP:  add to run length
	BoxPP     = 3             // BoxP:  points per box
	FindPP    = 40            // FindP: points per pattern
	BalPP     = 10            // BalP:  10 points
	BalPMul   = 20            //        for every 5% (1/20),
	BalPMax   = BalPMul/2 - 1 //        up to 9 times

	quiet    = 4              // light modules beyond the edge checked by FindP
	findMask = 1<<11 - 1      // FindP window, 11 modules
	findB    = 0b0000_1011101 // quiet zone before
	findA    = 0b1011101_0000 // quiet zone after
	loseB    = findB ^ findMask
	loseA    = findA ^ findMask
)

// Penalty returns the penalty value of the grid used for choosing the
// mask.  Lower is better.
func (g *Grid) Penalty() int {
	n := g.Size
	p := 0
	for i := 0; i < n; i++ {
		p += linePenalty(n, func(j int) bool { return g.Black(j, i) })
		p += linePenalty(n, func(j int) bool { return g.Black(i, j) })
	}
	for y := 0; y+1 < n; y++ {
		for x := 0; x+1 < n; x++ {
			c := g.Black(x, y)
			if g.Black(x+1, y) == c && g.Black(x, y+1) == c &&
				g.Black(x+1, y+1) == c {
				p += BoxPP
			}
		}
	}
	// Fold the dark count into 0 <= bal <= n²/2 so that exact
	// multiples of 5% round away from 50%.
	bal, sq := g.Dark(), n*n
	if bal > sq/2 {
		bal = sq - bal
	}
	return p + (BalPMax-bal*BalPMul/sq)*BalPP
}

// linePenalty returns RunP and FindP for a row or column of n modules,
// black(j) reporting the colour of module j.
func linePenalty(n int, black func(int) bool) int {
	p, run := 0, 0
	var pat uint32 // last modules, the quiet zone before is light
	for j := 0; j < n+quiet; j++ {
		dark := j < n && black(j)
		if j < n {
			if j > 0 && dark != black(j-1) {
				if run >= MinRun {
					p += run + RunPDelta
				}
				run = 0
			}
			run++
		}
		pat = pat<<1 & findMask
		if dark {
			pat |= 1
		}
		switch pat {
		case findB, findA, loseB, loseA:
			p += FindPP
		}
	}
	if run >= MinRun {
		p += run + RunPDelta
	}
	return p
}
