// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "bytes"

// GenerateSVG encodes data and returns an SVG image at least
// opts.Width×opts.Height pixels in size.  opts.Format must be SVG or
// the zero Format.
func GenerateSVG(data string, opts Options) (string, error) {
	return generateSVG(data, opts, Encode)
}

// GenerateSVGAlphanumeric is like GenerateSVG, but encodes data as a
// single alphanumeric segment in the smallest version holding it.
func GenerateSVGAlphanumeric(data string, opts Options) (string, error) {
	return generateSVG(data, opts, EncodeAlphanumeric)
}

func generateSVG(data string, opts Options,
	encode func(string, Level) (*Code, error)) (string, error) {
	r, err := opts.validate(vectorOutput)
	if err != nil {
		return "", err
	}
	c, err := encode(data, r.level)
	if err != nil {
		return "", err
	}
	c.MinDimensions(r.width, r.height)
	return c.SVG(), nil
}

// GenerateRaster encodes data and returns a PNG or JPEG image at
// least opts.Width×opts.Height pixels in size.  The zero Format
// selects PNG; the base64 formats select the image format only.
func GenerateRaster(data string, opts Options) ([]byte, error) {
	r, err := opts.validate(rasterOutput)
	if err != nil {
		return nil, err
	}
	c, err := Encode(data, r.level)
	if err != nil {
		return nil, err
	}
	c.MinDimensions(r.width, r.height)
	var b bytes.Buffer
	if err := c.EncodeImage(&b, r.format); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// GenerateRasterBase64 is like GenerateRaster, but returns the image
// as standard base64 text.
func GenerateRasterBase64(data string, opts Options) (string, error) {
	b, err := GenerateRaster(data, opts)
	if err != nil {
		return "", err
	}
	return encodeBase64(b), nil
}
