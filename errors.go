// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"errors"

	"github.com/qrusty/qr/coding"
	"github.com/qrusty/qr/symbol"
)

// Errors returned by this package.  Those raised by the lower layers
// are the same values, so errors.Is works with either.
var (
	ErrDataTooLong    = coding.ErrDataTooLong
	ErrInvalidSegment = coding.ErrInvalidSegment
	ErrStreamOverflow = coding.ErrStreamOverflow
	ErrCodecFailure   = symbol.ErrCodec

	ErrUnsupportedFormat      = errors.New("qr: unsupported format")
	ErrInvalidEncodingRequest = errors.New("qr: invalid encoding request")
)
