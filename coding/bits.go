// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Bits is a bit stream for a code of one version and level: segment
// headers and data, followed by the terminator and padding.
type Bits struct {
	b       []byte
	nbit    int
	version Version
	level   Level
}

// NewBits returns an empty bit stream for a code of the given version
// and level.
func NewBits(v Version, l Level) (*Bits, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	if !l.IsValid() || v.DataBits(l) == 0 {
		return nil, ErrLevel
	}
	return &Bits{b: make([]byte, 0, v.DataBytes(l)), version: v, level: l}, nil
}

func (b *Bits) Version() Version { return b.version }
func (b *Bits) Level() Level     { return b.level }

// Len returns the number of bits written.
func (b *Bits) Len() int { return b.nbit }

// Cap returns the data capacity in bits.
func (b *Bits) Cap() int { return b.version.DataBits(b.level) }

// Full reports whether the stream is filled to capacity, as it is
// after PushTerminator.
func (b *Bits) Full() bool { return b.nbit == b.Cap() }

// Bytes returns the stream, the last byte padded with zero bits.
func (b *Bits) Bytes() []byte { return b.b }

// Write appends the low nbit bits of v, most significant first.
// nbit must not exceed 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit <= 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// check reports whether seg starts at begin, lies within data and
// holds only characters encodable in its mode.
func (seg Segment) check(data string, begin int) error {
	fail := func(reason string) error {
		return &SegmentError{Segment: seg, Size: len(data), Reason: reason}
	}
	switch {
	case !seg.Mode.IsValid():
		return fail("invalid mode")
	case seg.Begin != begin:
		return fail(fmt.Sprintf("expected to start at %d", begin))
	case seg.End < seg.Begin || seg.End > len(data):
		return fail("out of range")
	}
	s := seg.Text(data)
	if seg.Mode == Byte {
		return nil
	}
	if seg.Mode == Kanji {
		for _, r := range s {
			if !IsKanji(r) {
				return fail(fmt.Sprintf("non-kanji character %q", r))
			}
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		if !seg.Mode.Accepts(rune(s[i])) {
			return fail(fmt.Sprintf("non-%s character %q", seg.Mode, s[i]))
		}
	}
	return nil
}

// PushSegments appends segs, which must cover data in order, each
// preceded by its mode indicator and character count.  Nothing is
// written if a segment is invalid or the result would not fit.
func (b *Bits) PushSegments(data string, segs []Segment) error {
	class := b.version.SizeClass()
	n, end := b.nbit, 0
	for _, seg := range segs {
		if err := seg.check(data, end); err != nil {
			return err
		}
		end = seg.End
		if !seg.Mode.Available(class) {
			return CompatError{seg.Mode, b.version}
		}
		s := seg.Text(data)
		if c, w := seg.Mode.count(s), encoders[seg.Mode].countLength[class]; c >= 1<<w {
			return fmt.Errorf("%w: %d %s characters do not fit the "+
				"count field of version %s", ErrStreamOverflow,
				c, seg.Mode, b.version)
		}
		n += seg.EncodedLength(data, class)
	}
	if end != len(data) {
		return &SegmentError{
			Segment: Segment{Byte, end, len(data)},
			Size:    len(data),
			Reason:  "not covered by any segment",
		}
	}
	if n > b.Cap() {
		return fmt.Errorf("%w: %d bits do not fit in %d-bit version %s-%s",
			ErrStreamOverflow, n, b.Cap(), b.version, b.level)
	}
	for _, seg := range segs {
		b.writeSegment(seg.Mode, seg.Text(data), class)
	}
	return nil
}

// writeSegment writes a validated segment.
func (b *Bits) writeSegment(m Mode, s string, class int) {
	e := &encoders[m]
	// header
	ind, ilen := uint32(e.indicator), 4
	if class < Class0 {
		ind, ilen = ind>>1 - ind>>3, class
	}
	b.Write(ind, ilen)
	b.Write(uint32(m.count(s)), int(e.countLength[class]))
	// data
	switch m {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
				uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	case Kanji:
		for _, r := range s {
			c, _ := kanjiCode(r)
			hi, lo := uint32(c>>8), uint32(c&0xff)
			b.Write((hi&^0xc0)*0xc0+lo-0x100, 13)
		}
	default:
		if b.nbit&7 == 0 {
			b.b = append(b.b, s...)
			b.nbit += len(s) * 8
			return
		}
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
	}
}

// PushTerminator appends the terminator, zero bits up to the next
// byte boundary and pad codewords up to the capacity of the code.
func (b *Bits) PushTerminator() error {
	n := b.Cap()
	if b.nbit > n {
		return fmt.Errorf("%w: %d bits do not fit in %d-bit version %s-%s",
			ErrStreamOverflow, b.nbit, n, b.version, b.level)
	}
	t := 4
	if b.version.IsMicro() {
		t = int(b.version-M1)*2 + 3
	}
	b.padTo(t, n)
	return nil
}

// padTo adds up to t terminator bits to b and pads it to n bits.
func (b *Bits) padTo(t, n int) {
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	for pad := byte(0xec); len(b.b) < n>>3; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	// Micro QR M1 and M3 end with a 4 bit zero codeword.
	if len(b.b) < (n+7)>>3 {
		b.b = append(b.b, 0)
	}
	b.nbit = n
}

