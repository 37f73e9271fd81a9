// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var svgSize = regexp.MustCompile(`<svg [^>]*width="(\d+)" height="(\d+)" viewBox="0 0 (\d+) (\d+)"`)

func svgDimensions(t *testing.T, svg string) (w, h, vb int) {
	t.Helper()
	m := svgSize.FindStringSubmatch(svg)
	require.NotNil(t, m, "no svg element")
	w, _ = strconv.Atoi(m[1])
	h, _ = strconv.Atoi(m[2])
	vb, _ = strconv.Atoi(m[3])
	require.Equal(t, m[3], m[4])
	return w, h, vb
}

func TestGenerateSVG(t *testing.T) {
	opts := Options{Width: 200, Height: 200, ErrorCorrection: M, Format: SVG}
	svg, err := GenerateSVG("HELLO WORLD", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	w, h, vb := svgDimensions(t, svg)
	assert.GreaterOrEqual(t, w, 200)
	assert.GreaterOrEqual(t, h, 200)
	assert.Equal(t, 29, vb)
	assert.Equal(t, 203, w)

	c, err := Encode("HELLO WORLD", M)
	require.NoError(t, err)
	assert.Equal(t, c.Dark(), strings.Count(svg, "h1v1h-1z"))

	opts.Format = DefaultFormat
	again, err := GenerateSVG("HELLO WORLD", opts)
	require.NoError(t, err)
	assert.Equal(t, svg, again)
}

func TestGenerateSVGAlphanumeric(t *testing.T) {
	opts := Options{Width: 300, Height: 120, ErrorCorrection: Q}
	svg, err := GenerateSVGAlphanumeric("HTTPS://EXAMPLE.COM/QR", opts)
	require.NoError(t, err)
	w, h, _ := svgDimensions(t, svg)
	assert.GreaterOrEqual(t, w, 300)
	assert.GreaterOrEqual(t, h, 120)

	_, err = GenerateSVGAlphanumeric("lower case", opts)
	assert.ErrorIs(t, err, ErrInvalidSegment)

	_, err = GenerateSVGAlphanumeric(strings.Repeat("A", 5000), Options{
		Width: 10, Height: 10, ErrorCorrection: H})
	assert.ErrorIs(t, err, ErrDataTooLong)
}

func TestGenerateEmpty(t *testing.T) {
	opts := Options{Width: 100, Height: 100, ErrorCorrection: M}
	svg, err := GenerateSVG("", opts)
	require.NoError(t, err)
	_, _, vb := svgDimensions(t, svg)
	assert.Equal(t, 29, vb)

	b, err := GenerateRaster("", opts)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 29*4, cfg.Width)

	s, err := GenerateRasterBase64("", opts)
	require.NoError(t, err)
	assert.NotEmpty(t, s)
}

func TestGenerateDataTooLong(t *testing.T) {
	opts := Options{Width: 100, Height: 100, ErrorCorrection: H}
	_, err := GenerateSVG(strings.Repeat("A", 5000), opts)
	assert.ErrorIs(t, err, ErrDataTooLong)
	_, err = GenerateRaster(strings.Repeat("A", 5000), opts)
	assert.ErrorIs(t, err, ErrDataTooLong)
}

func TestGenerateRaster(t *testing.T) {
	for _, tt := range []struct {
		format Format
		magic  string
		name   string
	}{
		{DefaultFormat, "\x89PNG\r\n\x1a\n", "png"},
		{PNG, "\x89PNG\r\n\x1a\n", "png"},
		{JPG, "\xff\xd8", "jpeg"},
		{JPEG, "\xff\xd8", "jpeg"},
		{PNG64, "\x89PNG\r\n\x1a\n", "png"},
		{JPEG64, "\xff\xd8", "jpeg"},
	} {
		t.Run(tt.format.String(), func(t *testing.T) {
			opts := Options{Width: 250, Height: 120, ErrorCorrection: L,
				Format: tt.format}
			b, err := GenerateRaster("https://example.com/", opts)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, []byte(tt.magic)))
			cfg, name, err := image.DecodeConfig(bytes.NewReader(b))
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.GreaterOrEqual(t, cfg.Width, 250)
			assert.GreaterOrEqual(t, cfg.Height, 120)
			assert.Equal(t, cfg.Width, cfg.Height)

			c, err := Encode("https://example.com/", L)
			require.NoError(t, err)
			c.MinDimensions(250, 120)
			assert.Equal(t, c.Side()*c.Scale, cfg.Width)
			assert.Zero(t, cfg.Width%c.Scale)

			again, err := GenerateRaster("https://example.com/", opts)
			require.NoError(t, err)
			assert.Equal(t, b, again)
		})
	}
}

func TestGenerateRasterBase64(t *testing.T) {
	opts := Options{Width: 64, Height: 64, ErrorCorrection: M, Format: PNG64}
	s, err := GenerateRasterBase64("HELLO WORLD", opts)
	require.NoError(t, err)
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")))

	opts.Format = JPG64
	s, err = GenerateRasterBase64("HELLO WORLD", opts)
	require.NoError(t, err)
	b, err = base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte{0xff, 0xd8}))
}

func TestGenerateInvalid(t *testing.T) {
	ok := Options{Width: 100, Height: 100, ErrorCorrection: M}
	for _, tt := range []struct {
		name        string
		opts        Options
		svg         bool
		unsupported bool
	}{
		{"svg as raster", Options{100, 100, M, SVG}, false, true},
		{"png as svg", Options{100, 100, M, PNG}, true, true},
		{"unknown format", Options{100, 100, M, Format(42)}, false, true},
		{"zero width", Options{0, 100, M, PNG}, false, false},
		{"zero height", Options{100, 0, M, SVG}, true, false},
		{"bad level", Options{100, 100, Level(9), PNG}, false, false},
		{"huge", Options{1 << 20, 1, L, PNG}, false, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.svg {
				_, err = GenerateSVG("HELLO", tt.opts)
			} else {
				_, err = GenerateRaster("HELLO", tt.opts)
			}
			assert.ErrorIs(t, err, ErrInvalidEncodingRequest)
			if tt.unsupported {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
			} else {
				assert.NotErrorIs(t, err, ErrUnsupportedFormat)
			}
		})
	}
	_, err := GenerateSVG("HELLO", ok)
	assert.NoError(t, err)
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]Format{
		"png": PNG, "JPG": JPG, "jpeg64": JPEG64, "Svg": SVG, "PNG64": PNG64,
	} {
		f, err := ParseFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, f)
		assert.True(t, strings.EqualFold(s, f.String()))
	}
	for _, s := range []string{"", "default", "gif", "pbm"} {
		_, err := ParseFormat(s)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, s)
	}
	assert.True(t, JPEG64.IsBase64())
	assert.False(t, PNG.IsBase64())
	assert.False(t, SVG.IsRaster())
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestValidateWidthConversion(t *testing.T) {
	opts := Options{Width: math.MaxUint32, Height: 1, ErrorCorrection: L}
	r, err := opts.validate(rasterOutput)
	if strconv.IntSize == 32 {
		assert.ErrorIs(t, err, ErrInvalidEncodingRequest)
	} else {
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxUint32), int64(r.width))
	}
	// The image would be too large either way.
	_, err = GenerateRaster("HELLO", opts)
	assert.ErrorIs(t, err, ErrInvalidEncodingRequest)
}

func TestGenerateConcurrent(t *testing.T) {
	raster := Options{Width: 100, Height: 100, ErrorCorrection: Q}
	vector := Options{Width: 100, Height: 100, ErrorCorrection: Q, Format: SVG}
	wantPNG, err := GenerateRaster("https://example.com/", raster)
	require.NoError(t, err)
	wantSVG, err := GenerateSVGAlphanumeric("HELLO WORLD 42", vector)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Parallel()
			b, err := GenerateRaster("https://example.com/", raster)
			require.NoError(t, err)
			assert.Equal(t, wantPNG, b)
			s, err := GenerateSVGAlphanumeric("HELLO WORLD 42", vector)
			require.NoError(t, err)
			assert.Equal(t, wantSVG, s)
		})
	}
}
