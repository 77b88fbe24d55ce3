// Package codestream defines the 6-byte SQZ stream header.
//
// Layout, big-endian:
//
//	byte 0      magic 0xA5
//	bytes 1-2   width - 1
//	bytes 3-4   height - 1
//	byte 5      color mode (2 bits) | dwt levels - 1 (3 bits) |
//	            scan order (2 bits) | subsampling (1 bit)
package codestream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic is the first byte of every SQZ stream.
const Magic = 0xA5

// HeaderSize is the encoded header length in bytes.
const HeaderSize = 6

// Limits implied by the header field widths.
const (
	MaxDimension = 1 << 16 // inclusive
	MaxDWTLevels = 8
)

// ErrBadMagic reports a stream that does not start with Magic.
var ErrBadMagic = errors.New("codestream: bad magic byte")

// Header carries the decoded header fields.
type Header struct {
	Width       int
	Height      int
	ColorMode   int // 0..3
	DWTLevels   int // 1..8
	ScanOrder   int // 0..3
	Subsampling bool
}

// Put encodes h into dst, which must hold at least HeaderSize bytes.
func (h *Header) Put(dst []byte) error {
	if len(dst) < HeaderSize {
		return fmt.Errorf("codestream: need %d bytes, have %d", HeaderSize, len(dst))
	}
	if h.Width < 1 || h.Width > MaxDimension ||
		h.Height < 1 || h.Height > MaxDimension {
		return fmt.Errorf("codestream: dimensions %dx%d out of range", h.Width, h.Height)
	}
	if h.DWTLevels < 1 || h.DWTLevels > MaxDWTLevels {
		return fmt.Errorf("codestream: dwt levels %d out of range", h.DWTLevels)
	}
	if h.ColorMode < 0 || h.ColorMode > 3 || h.ScanOrder < 0 || h.ScanOrder > 3 {
		return fmt.Errorf("codestream: mode %d / scan %d out of range", h.ColorMode, h.ScanOrder)
	}
	dst[0] = Magic
	binary.BigEndian.PutUint16(dst[1:3], uint16(h.Width-1))
	binary.BigEndian.PutUint16(dst[3:5], uint16(h.Height-1))
	flags := byte(h.ColorMode)<<6 | byte(h.DWTLevels-1)<<3 | byte(h.ScanOrder)<<1
	if h.Subsampling {
		flags |= 1
	}
	dst[5] = flags
	return nil
}

// Parse decodes a header from src. A short buffer or wrong magic is an
// error; field values themselves cannot overflow their ranges.
func Parse(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, fmt.Errorf("codestream: %d bytes is shorter than a header", len(src))
	}
	if src[0] != Magic {
		return Header{}, ErrBadMagic
	}
	flags := src[5]
	return Header{
		Width:       int(binary.BigEndian.Uint16(src[1:3])) + 1,
		Height:      int(binary.BigEndian.Uint16(src[3:5])) + 1,
		ColorMode:   int(flags >> 6),
		DWTLevels:   int(flags>>3&7) + 1,
		ScanOrder:   int(flags >> 1 & 3),
		Subsampling: flags&1 != 0,
	}, nil
}
