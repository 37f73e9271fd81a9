// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBits(t *testing.T, v Version, l Level) *Bits {
	t.Helper()
	b, err := NewBits(v, l)
	require.NoError(t, err)
	return b
}

func TestBitsHelloWorld(t *testing.T) {
	const s = "HELLO WORLD"
	b := newBits(t, 1, M)
	require.NoError(t, b.PushSegments(s, []Segment{{Alphanumeric, 0, len(s)}}))
	assert.Equal(t, 74, b.Len())
	require.NoError(t, b.PushTerminator())
	assert.True(t, b.Full())
	assert.Equal(t, []byte{
		0x20, 0x5b, 0x0b, 0x78, 0xd1, 0x72, 0xdc, 0x4d,
		0x43, 0x40, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
	}, b.Bytes())
}

func TestBitsNumeric(t *testing.T) {
	const s = "01234567"
	b := newBits(t, 1, H)
	require.NoError(t, b.PushSegments(s, []Segment{{Numeric, 0, len(s)}}))
	// 0001 0000001000 0000001100 0101011001 1000011
	assert.Equal(t, 41, b.Len())
	assert.Equal(t, []byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80}, b.Bytes())
}

func TestBitsMicro(t *testing.T) {
	const s = "12345"
	b := newBits(t, M1, L)
	require.NoError(t, b.PushSegments(s, []Segment{{Numeric, 0, len(s)}}))
	assert.Equal(t, 20, b.Len())
	require.NoError(t, b.PushTerminator())
	assert.Equal(t, []byte{0xa3, 0xda, 0xd0}, b.Bytes())

	b = newBits(t, M1, L)
	err := b.PushSegments("AB", []Segment{{Alphanumeric, 0, 2}})
	var ce CompatError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, M1, ce.Version)
	assert.ErrorIs(t, err, ErrStreamOverflow)
	assert.Zero(t, b.Len())
}

func TestBitsMixed(t *testing.T) {
	const s = "https://EXAMPLE.COM/123456789012"
	segs := []Segment{{Byte, 0, 5}, {Alphanumeric, 5, 20}, {Numeric, 20, 32}}
	assert.Equal(t, 202, EncodedLength(s, segs, Class0))
	b := newBits(t, 2, L)
	require.NoError(t, b.PushSegments(s, segs))
	assert.Equal(t, 202, b.Len())
	// byte mode indicator, count 5, "h" and half of "t"
	assert.Equal(t, []byte{0x40, 0x56, 0x87}, b.Bytes()[:3])
	require.NoError(t, b.PushTerminator())
	assert.Len(t, b.Bytes(), 34)
}

func TestBitsKanji(t *testing.T) {
	// 点 is 0x935f in Shift JIS, 茗 0xe4aa.
	const s = "点茗"
	require.True(t, IsKanji('点'))
	require.True(t, IsKanji('茗'))
	b := newBits(t, 1, L)
	require.NoError(t, b.PushSegments(s, []Segment{{Kanji, 0, len(s)}}))
	assert.Equal(t, 4+8+26, b.Len())
	// 1000 00000010 0110110011111 1101010101010
	assert.Equal(t, []byte{0x80, 0x26, 0xcf, 0xea, 0xa8}, b.Bytes())
}

func TestBitsInvalidSegments(t *testing.T) {
	for _, tt := range []struct {
		name string
		data string
		segs []Segment
	}{
		{"lowercase alphanumeric", "abc", []Segment{{Alphanumeric, 0, 3}}},
		{"letter in numeric", "12A", []Segment{{Numeric, 0, 3}}},
		{"gap", "12345", []Segment{{Numeric, 0, 2}, {Numeric, 3, 5}}},
		{"uncovered tail", "12345", []Segment{{Numeric, 0, 3}}},
		{"out of range", "12", []Segment{{Numeric, 0, 3}}},
		{"invalid mode", "12", []Segment{{Mode(9), 0, 2}}},
		{"non-kanji", "abc", []Segment{{Kanji, 0, 3}}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b := newBits(t, 5, L)
			err := b.PushSegments(tt.data, tt.segs)
			assert.ErrorIs(t, err, ErrInvalidSegment)
			var se *SegmentError
			assert.True(t, errors.As(err, &se))
			assert.Zero(t, b.Len())
		})
	}
}

func TestBitsOverflow(t *testing.T) {
	s := strings.Repeat("A", 30)
	b := newBits(t, 1, H)
	err := b.PushSegments(s, []Segment{{Alphanumeric, 0, len(s)}})
	assert.ErrorIs(t, err, ErrStreamOverflow)
	assert.Zero(t, b.Len())

	// 256 bytes do not fit an 8 bit count field.
	s = strings.Repeat("a", 256)
	b = newBits(t, 9, L)
	err = b.PushSegments(s, []Segment{{Byte, 0, len(s)}})
	assert.ErrorIs(t, err, ErrStreamOverflow)
}

func TestNewBits(t *testing.T) {
	_, err := NewBits(0, L)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = NewBits(M1, M)
	assert.ErrorIs(t, err, ErrLevel)
	_, err = NewBits(3, Level(5))
	assert.ErrorIs(t, err, ErrLevel)
}

func TestWrite(t *testing.T) {
	b := newBits(t, 1, L)
	b.Write(1, 1)
	b.Write(0, 0)
	b.Write(0x3, 2)
	b.Write(0xabcd, 16)
	b.Write(0x5, 5)
	assert.Equal(t, 24, b.Len())
	// 1 11 1010101111001101 00101
	assert.Equal(t, []byte{0xf5, 0x79, 0xa5}, b.Bytes())
}

func TestModeLength(t *testing.T) {
	assert.Equal(t, 4+10+27, Numeric.Length(8, 8, Class0))
	assert.Equal(t, 4+9+61, Alphanumeric.Length(11, 11, Class0))
	assert.Equal(t, 4+16+80, Byte.Length(10, 10, Class2))
	assert.Equal(t, 4+12+26, Kanji.Length(6, 2, Class2))
	assert.Equal(t, 3+4, Numeric.Length(1, 1, ClassM1))
	assert.Zero(t, Mode(7).Length(1, 1, Class0))
	assert.False(t, Byte.Available(ClassM2))
	assert.True(t, Numeric.Available(ClassM1))
	assert.True(t, Alphanumeric.Accepts(':'))
	assert.False(t, Alphanumeric.Accepts('a'))
	assert.False(t, Alphanumeric.Accepts('\n'))
	assert.False(t, IsKanji('A'))
	assert.False(t, IsKanji('é'))
}
