// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a binary Portable Bit Map image of the code to w,
// for use with netpbm.  The image has the same size as Image.
func (c *Code) EncodePBM(w io.Writer) error {
	d, err := c.Pixels()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	ds := strconv.Itoa(d)
	if _, err := b.WriteString("P4\n" + ds + " " + ds + "\n"); err != nil {
		return err
	}
	// In PBM 1 is black.  Rows are padded to whole bytes.
	row := make([]byte, (d+7)/8)
	scale, bord := c.Scale, c.Border
	for y := -bord; y < c.Size+bord; y++ {
		clear(row)
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			for p := (x + bord) * scale; p < (x+bord+1)*scale; p++ {
				row[p>>3] |= 0x80 >> (p & 7)
			}
		}
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}
