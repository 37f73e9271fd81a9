// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"encoding/base64"
	"fmt"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// JPEGQuality is the quality of JPEG images.
const JPEGQuality = 100

// EncodeImage writes an image of the code in format f to w.  Base64
// formats write the same bytes as their binary counterparts; see
// GenerateRasterBase64 for text output.
func (c *Code) EncodeImage(w io.Writer, f Format) error {
	if !f.IsRaster() {
		return fmt.Errorf("%w: %w: %s is not a raster format",
			ErrInvalidEncodingRequest, ErrUnsupportedFormat, f)
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	switch f {
	case PNG, PNG64:
		return imaging.Encode(w, img, imaging.PNG,
			imaging.PNGCompressionLevel(png.BestCompression))
	default:
		return imaging.Encode(w, img, imaging.JPEG,
			imaging.JPEGQuality(JPEGQuality))
	}
}

// encodeBase64 returns b as standard base64 text.
func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
