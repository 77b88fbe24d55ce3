package sqz

import (
	"fmt"

	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
	"github.com/mrjoshuak/go-sqz/internal/codestream"
	"github.com/mrjoshuak/go-sqz/internal/colorspace"
	"github.com/mrjoshuak/go-sqz/internal/dwt"
)

const headerSize = codestream.HeaderSize

// EncodeBuffer compresses pixels into dst and returns the number of
// bytes written. pixels is packed row-major, one byte per plane per
// pixel. len(dst) is the byte budget: the encoder writes the header and
// as much payload as fits, in decreasing order of visual importance,
// and stops cleanly when the budget runs out. Only a destination too
// small for the 6-byte header is an error.
//
// The descriptor is updated in place: DWTLevels is clamped to what the
// image size admits and NumPlanes is derived from the color mode.
func EncodeBuffer(pixels []byte, dst []byte, desc *Descriptor) (int, error) {
	if desc == nil || pixels == nil {
		return 0, fmt.Errorf("%w: nil argument", ErrInvalidParameter)
	}
	if err := validateDescriptor(desc); err != nil {
		return 0, err
	}
	mode := colorspace.Mode(desc.ColorMode)
	desc.NumPlanes = mode.Planes()
	if len(pixels) < desc.PixelBytes() {
		return 0, fmt.Errorf("%w: %d pixel bytes, need %d",
			ErrInvalidParameter, len(pixels), desc.PixelBytes())
	}
	if len(dst) < headerSize {
		return 0, fmt.Errorf("%w: %d bytes cannot hold the header", ErrBufferTooSmall, len(dst))
	}

	hdr := codestream.Header{
		Width:       desc.Width,
		Height:      desc.Height,
		ColorMode:   int(desc.ColorMode),
		DWTLevels:   desc.DWTLevels,
		ScanOrder:   int(desc.ScanOrder),
		Subsampling: desc.Subsampling,
	}
	if err := hdr.Put(dst); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	n := desc.Width * desc.Height
	planes := make([][]int16, desc.NumPlanes)
	backing := make([]int16, n*desc.NumPlanes)
	for p := range planes {
		planes[p] = backing[p*n : (p+1)*n]
	}
	colorspace.Encode(mode, pixels, planes, n)
	for _, plane := range planes {
		dwt.Forward(plane, desc.Width, desc.Height, desc.DWTLevels)
	}
	for i, v := range backing {
		backing[i] = bitutil.ToSignMagnitude(v)
	}

	bb := bitio.NewBuffer(dst[headerSize:])
	newCodec(desc, planes, bb).run(true)
	return headerSize + bb.BytesUsed(), nil
}

// validateDescriptor checks the caller-supplied fields and clamps the
// decomposition depth. A depth of zero after clamping means the image
// is too small to decompose at all and is rejected.
func validateDescriptor(desc *Descriptor) error {
	if desc.Width < MinDimension || desc.Width > MaxDimension ||
		desc.Height < MinDimension || desc.Height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParameter, desc.Width, desc.Height)
	}
	if desc.ColorMode < ColorModeGrayscale || desc.ColorMode > ColorModeLogL1 {
		return fmt.Errorf("%w: color mode %d", ErrInvalidParameter, int(desc.ColorMode))
	}
	if desc.ScanOrder < ScanRaster || desc.ScanOrder > ScanHilbert {
		return fmt.Errorf("%w: scan order %d", ErrInvalidParameter, int(desc.ScanOrder))
	}
	if desc.DWTLevels < 1 || desc.DWTLevels > MaxDWTLevels {
		return fmt.Errorf("%w: dwt levels %d", ErrInvalidParameter, desc.DWTLevels)
	}
	if limit := maxDWTLevels(desc.Width, desc.Height); desc.DWTLevels > limit {
		if limit < 1 {
			return fmt.Errorf("%w: %dx%d is too small for any decomposition",
				ErrInvalidParameter, desc.Width, desc.Height)
		}
		desc.DWTLevels = limit
	}
	return nil
}
