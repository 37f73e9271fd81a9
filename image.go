// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"
	"image"
)

// MaxPixels is the largest image side Image and EncodeImage produce.
const MaxPixels = 1 << 15

// Pixels returns the number of image pixels on a side, quiet zone
// included, or an error if it is not positive or exceeds MaxPixels.
func (c *Code) Pixels() (int, error) {
	n := c.Side()
	if c.Scale < 1 || c.Border < 0 || n > MaxPixels/c.Scale {
		return 0, fmt.Errorf("%w: %d modules at scale %d",
			ErrInvalidEncodingRequest, n, c.Scale)
	}
	return n * c.Scale, nil
}

// Image returns a grayscale image of the code, each module drawn as a
// Scale×Scale square, dark modules black and the rest white.  It
// returns the error of Pixels if the size is out of range.
func (c *Code) Image() (*image.Gray, error) {
	d, err := c.Pixels()
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, d, d))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	scale, off := c.Scale, c.Border*c.Scale
	for y := 0; y < c.Size; y++ {
		row := img.Pix[(off+y*scale)*img.Stride:]
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			px := row[off+x*scale:]
			for i := 0; i < scale; i++ {
				px[i] = 0
			}
		}
		// replicate the first pixel row of the module row
		first := row[:d]
		for i := 1; i < scale; i++ {
			copy(row[i*img.Stride:i*img.Stride+d], first)
		}
	}
	return img, nil
}
