// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"strconv"
	"strings"
)

// SVG returns an SVG image of the code.  The image is Side()×Scale
// pixels on a side and its view box is measured in modules, each dark
// module drawn as a unit square.
func (c *Code) SVG() string {
	n := strconv.Itoa(c.Side())
	px := strconv.Itoa(c.Side() * max(c.Scale, 1))
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="` +
		px + `" height="` + px + `" viewBox="0 0 ` + n + " " + n +
		`" shape-rendering="crispEdges">` + "\n" +
		`<rect width="` + n + `" height="` + n + `" fill="#ffffff"/>` + "\n" +
		`<path fill="#000000" d="`)
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				b.WriteByte('M')
				b.WriteString(strconv.Itoa(x + c.Border))
				b.WriteByte(' ')
				b.WriteString(strconv.Itoa(y + c.Border))
				b.WriteString("h1v1h-1z")
			}
		}
	}
	b.WriteString(`"/>` + "\n</svg>\n")
	return b.String()
}
