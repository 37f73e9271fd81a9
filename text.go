// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "strings"

// half blocks indexed by top<<1 | bottom, 1 meaning ink
var blocks = [4]string{" ", "▄", "▀", "█"}

// Text returns the code drawn with UTF-8 half blocks, two module rows
// per line, quiet zone included.  Dark modules are inked unless
// inverse is set, which suits light text on a dark terminal.
func (c *Code) Text(inverse bool) string {
	bord := c.Border
	ink := func(x, y int) int {
		if c.Black(x, y) != inverse {
			return 1
		}
		return 0
	}
	var b strings.Builder
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			bottom := 0
			if y+1 < c.Size+bord {
				bottom = ink(x, y+1)
			} else if inverse {
				bottom = 1
			}
			b.WriteString(blocks[ink(x, y)<<1|bottom])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns c.Text(true).
func (c *Code) String() string { return c.Text(true) }

// ASCII returns the code drawn with two '#' characters per dark
// module, quiet zone included.
func (c *Code) ASCII() string {
	bord := c.Border
	var b strings.Builder
	for y := -bord; y < c.Size+bord; y++ {
		for x := -bord; x < c.Size+bord; x++ {
			if c.Black(x, y) {
				b.WriteString("##")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
