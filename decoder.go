package sqz

import (
	"errors"
	"fmt"

	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
	"github.com/mrjoshuak/go-sqz/internal/codestream"
	"github.com/mrjoshuak/go-sqz/internal/colorspace"
	"github.com/mrjoshuak/go-sqz/internal/dwt"
)

// DecodeDescriptor parses the 6-byte header and returns the stream's
// descriptor without decoding any pixels. A stream shorter than the
// header is an invalid argument; a header describing an impossible
// image is corrupt data.
func DecodeDescriptor(src []byte) (*Descriptor, error) {
	hdr, err := codestream.Parse(src)
	if err != nil {
		if errors.Is(err, codestream.ErrBadMagic) {
			return nil, fmt.Errorf("%w: %v", ErrDataCorrupted, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	desc := &Descriptor{
		ColorMode:   ColorMode(hdr.ColorMode),
		ScanOrder:   ScanOrder(hdr.ScanOrder),
		Width:       hdr.Width,
		Height:      hdr.Height,
		DWTLevels:   hdr.DWTLevels,
		Subsampling: hdr.Subsampling,
	}
	desc.NumPlanes = colorspace.Mode(desc.ColorMode).Planes()
	if desc.Width < MinDimension || desc.Width > MaxDimension ||
		desc.Height < MinDimension || desc.Height > MaxDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrDataCorrupted, desc.Width, desc.Height)
	}
	if desc.DWTLevels > maxDWTLevels(desc.Width, desc.Height) {
		return nil, fmt.Errorf("%w: %d dwt levels exceed what %dx%d admits",
			ErrDataCorrupted, desc.DWTLevels, desc.Width, desc.Height)
	}
	return desc, nil
}

// DecodeBuffer reconstructs the image described by src into dst and
// returns the stream descriptor and the number of pixel bytes written.
// Any prefix of a valid stream of at least 6 bytes decodes successfully
// to a same-dimension image; missing payload lowers fidelity, never
// fails. Passing a nil or short dst returns the descriptor and the
// required size with ErrBufferTooSmall.
func DecodeBuffer(src []byte, dst []byte) (*Descriptor, int, error) {
	desc, err := DecodeDescriptor(src)
	if err != nil {
		return nil, 0, err
	}
	need := desc.PixelBytes()
	if len(dst) < need {
		return desc, need, fmt.Errorf("%w: need %d pixel bytes, have %d",
			ErrBufferTooSmall, need, len(dst))
	}

	n := desc.Width * desc.Height
	planes := make([][]int16, desc.NumPlanes)
	backing := make([]int16, n*desc.NumPlanes)
	for p := range planes {
		planes[p] = backing[p*n : (p+1)*n]
	}

	bb := bitio.NewBuffer(src[headerSize:])
	c := newCodec(desc, planes, bb)
	c.run(false)
	c.finishDecode()

	for i, v := range backing {
		backing[i] = bitutil.FromSignMagnitude(v)
	}
	for _, plane := range planes {
		dwt.Inverse(plane, desc.Width, desc.Height, desc.DWTLevels)
	}
	colorspace.Decode(colorspace.Mode(desc.ColorMode), planes, dst, n)
	return desc, need, nil
}
