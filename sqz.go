// Package sqz implements the SQZ scalable lossless/lossy image codec.
//
// SQZ compresses RGB or grayscale rasters into a byte stream with a
// strong embedding property: every prefix of at least 6 bytes is itself
// a valid stream, and image quality grows monotonically with prefix
// length. There is no entropy coder; scalability comes from a 5/3
// integer wavelet decomposition, a visual-importance schedule across
// subband bitplanes, and bit-position-exact significance coding.
//
// Basic usage for encoding:
//
//	file, _ := os.Create("image.sqz")
//	err := sqz.Encode(file, img, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Basic usage for decoding:
//
//	file, _ := os.Open("image.sqz")
//	img, err := sqz.Decode(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The buffer-oriented entry points EncodeBuffer and DecodeBuffer expose
// the byte-budget contract directly: the encoder fills at most the
// destination it is given and reports how much it used, and the decoder
// reconstructs the best image representable from the bytes it receives.
package sqz

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// ColorMode selects the color pipeline used for coefficient planes.
type ColorMode int

const (
	// ColorModeGrayscale codes a single level-shifted plane.
	ColorModeGrayscale ColorMode = iota
	// ColorModeYCoCgR codes reversible YCoCg; lossless for RGB input.
	ColorModeYCoCgR
	// ColorModeOklab codes a fixed-point Oklab approximation.
	ColorModeOklab
	// ColorModeLogL1 codes an orthonormal luma/chroma rotation.
	ColorModeLogL1
)

// String returns the string representation of the color mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeGrayscale:
		return "Grayscale"
	case ColorModeYCoCgR:
		return "YCoCg-R"
	case ColorModeOklab:
		return "Oklab"
	case ColorModeLogL1:
		return "logl1"
	default:
		return "Unknown"
	}
}

// ScanOrder selects the traversal that linearizes subband coefficients.
type ScanOrder int

const (
	// ScanRaster is row-major order.
	ScanRaster ScanOrder = iota
	// ScanSnake is a tiled boustrophedon order.
	ScanSnake
	// ScanMorton is Z-order.
	ScanMorton
	// ScanHilbert is a generalized Hilbert curve.
	ScanHilbert
)

// String returns the string representation of the scan order.
func (s ScanOrder) String() string {
	switch s {
	case ScanRaster:
		return "Raster"
	case ScanSnake:
		return "Snake"
	case ScanMorton:
		return "Morton"
	case ScanHilbert:
		return "Hilbert"
	default:
		return "Unknown"
	}
}

// Codec errors.
var (
	// ErrInvalidParameter reports a descriptor or argument outside the
	// codec's domain.
	ErrInvalidParameter = errors.New("sqz: invalid parameter")
	// ErrBufferTooSmall reports a destination that cannot hold the
	// header (encode) or the decoded pixels (decode).
	ErrBufferTooSmall = errors.New("sqz: buffer too small")
	// ErrDataCorrupted reports a stream whose header cannot describe a
	// decodable image.
	ErrDataCorrupted = errors.New("sqz: data corrupted")
)

// Dimension limits accepted by the encoder.
const (
	// MinDimension is the smallest encodable width or height.
	MinDimension = 8
	// MaxDimension is the largest encodable width or height.
	MaxDimension = 65535
	// MaxDWTLevels caps the requested decomposition depth; the image
	// size may cap it lower.
	MaxDWTLevels = 8
)

// Descriptor describes one image for the buffer-oriented entry points.
// EncodeBuffer updates DWTLevels (clamped to the image size) and
// NumPlanes (derived from ColorMode) in place.
type Descriptor struct {
	ColorMode   ColorMode
	ScanOrder   ScanOrder
	Width       int
	Height      int
	DWTLevels   int
	NumPlanes   int
	Subsampling bool
}

// PixelBytes returns the size of the packed sample buffer the
// descriptor implies: one byte per plane per pixel.
func (d *Descriptor) PixelBytes() int {
	planes := d.NumPlanes
	if planes == 0 {
		if d.ColorMode == ColorModeGrayscale {
			planes = 1
		} else {
			planes = 3
		}
	}
	return d.Width * d.Height * planes
}

// Options holds the encoding options for the image-oriented API.
type Options struct {
	// ColorMode selects the color pipeline. YCoCg-R is lossless for
	// RGB; Grayscale expects a grayscale image.
	ColorMode ColorMode

	// ScanOrder selects the coefficient traversal.
	ScanOrder ScanOrder

	// DWTLevels requests a decomposition depth in [1, 8]. It is
	// clamped to what the image size admits.
	DWTLevels int

	// Subsampling delays chroma bits by one schedule round, a cheap
	// stand-in for chroma subsampling.
	Subsampling bool

	// MaxBytes bounds the output size. Zero means large enough for a
	// lossless encoding.
	MaxBytes int
}

// DefaultOptions returns the default encoding options.
func DefaultOptions() *Options {
	return &Options{
		ColorMode: ColorModeYCoCgR,
		ScanOrder: ScanHilbert,
		DWTLevels: 5,
	}
}

// Encode writes the image m to w in SQZ format with the given options.
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = DefaultOptions()
	}
	b := m.Bounds()
	desc := &Descriptor{
		ColorMode:   o.ColorMode,
		ScanOrder:   o.ScanOrder,
		Width:       b.Dx(),
		Height:      b.Dy(),
		DWTLevels:   o.DWTLevels,
		Subsampling: o.Subsampling,
	}
	pixels := extractPixels(m, desc)
	budget := o.MaxBytes
	if budget <= 0 {
		// Generous bound for a lossless stream: per-coefficient
		// significance plus all refinement bits, plus per-pass overhead.
		budget = desc.PixelBytes()*8 + 65536
	}
	dst := make([]byte, budget)
	n, err := EncodeBuffer(pixels, dst, desc)
	if err != nil {
		return err
	}
	_, err = w.Write(dst[:n])
	return err
}

// Decode reads an SQZ image from r. Truncated input is not an error:
// the decoder returns the best image the received prefix describes.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	desc, err := DecodeDescriptor(data)
	if err != nil {
		return nil, err
	}
	pix := make([]byte, desc.PixelBytes())
	if _, _, err := DecodeBuffer(data, pix); err != nil {
		return nil, err
	}
	return buildImage(desc, pix), nil
}

// DecodeConfig returns the dimensions and color model of an SQZ image
// without decoding it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return image.Config{}, err
	}
	desc, err := DecodeDescriptor(hdr)
	if err != nil {
		return image.Config{}, err
	}
	model := color.Model(color.NRGBAModel)
	if desc.ColorMode == ColorModeGrayscale {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: desc.Width, Height: desc.Height}, nil
}

// extractPixels packs m into the channel-interleaved layout the buffer
// API takes: one byte per pixel for grayscale, three for color.
func extractPixels(m image.Image, desc *Descriptor) []byte {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if desc.ColorMode == ColorModeGrayscale {
		pix := make([]byte, w*h)
		if g, ok := m.(*image.Gray); ok {
			for y := 0; y < h; y++ {
				row := g.PixOffset(b.Min.X, b.Min.Y+y)
				copy(pix[y*w:(y+1)*w], g.Pix[row:row+w])
			}
			return pix
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.GrayModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				pix[y*w+x] = c.Y
			}
		}
		return pix
	}

	pix := make([]byte, w*h*3)
	switch img := m.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				pix[(y*w+x)*3] = src[x*4]
				pix[(y*w+x)*3+1] = src[x*4+1]
				pix[(y*w+x)*3+2] = src[x*4+2]
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				pix[(y*w+x)*3] = src[x*4]
				pix[(y*w+x)*3+1] = src[x*4+1]
				pix[(y*w+x)*3+2] = src[x*4+2]
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				pix[(y*w+x)*3] = c.R
				pix[(y*w+x)*3+1] = c.G
				pix[(y*w+x)*3+2] = c.B
			}
		}
	}
	return pix
}

// buildImage wraps decoded samples in the matching stdlib image type.
func buildImage(desc *Descriptor, pix []byte) image.Image {
	w, h := desc.Width, desc.Height
	if desc.ColorMode == ColorModeGrayscale {
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:], pix[y*w:(y+1)*w])
		}
		return img
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4] = pix[(y*w+x)*3]
			dst[x*4+1] = pix[(y*w+x)*3+1]
			dst[x*4+2] = pix[(y*w+x)*3+2]
			dst[x*4+3] = 0xFF
		}
	}
	return img
}

// init registers the SQZ format with the image package.
func init() {
	image.RegisterFormat("sqz", "\xa5",
		func(r io.Reader) (image.Image, error) {
			return Decode(r)
		},
		DecodeConfig)
}
