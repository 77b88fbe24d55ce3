package sqz

import (
	"testing"
)

// FuzzDecodeBuffer feeds arbitrary bytes to the decoder. Any input must
// either fail with a codec error or produce a full-size image; nothing
// may panic, and valid prefixes of real streams must keep decoding.
func FuzzDecodeBuffer(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0xA5})
	f.Add([]byte{0xA5, 0x00, 0x0F, 0x00, 0x0F, 0x00})
	f.Add([]byte{0xA5, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x12})

	pix := grayRamp(16, 16)
	desc := &Descriptor{ColorMode: ColorModeGrayscale, Width: 16, Height: 16, DWTLevels: 1}
	dst := make([]byte, 1<<16)
	if n, err := EncodeBuffer(pix, dst, desc); err == nil {
		f.Add(append([]byte{}, dst[:n]...))
		f.Add(append([]byte{}, dst[:n/2]...))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		d, err := DecodeDescriptor(data)
		if err != nil {
			return
		}
		if d.Width*d.Height > 1<<20 {
			return // keep fuzz memory bounded
		}
		out := make([]byte, d.PixelBytes())
		got, n, err := DecodeBuffer(data, out)
		if err != nil {
			t.Fatalf("DecodeBuffer failed after DecodeDescriptor accepted the header: %v", err)
		}
		if n != d.PixelBytes() || got.Width != d.Width || got.Height != d.Height {
			t.Fatalf("decode reported %d bytes for %+v", n, got)
		}
	})
}

// FuzzEncodeDecode checks that any accepted encode round-trips its
// descriptor and produces a stream the decoder accepts in full.
func FuzzEncodeDecode(f *testing.F) {
	f.Add(uint16(16), uint16(16), uint8(0), uint8(0), uint8(1), false)
	f.Add(uint16(32), uint16(24), uint8(1), uint8(3), uint8(2), true)
	f.Add(uint16(17), uint16(33), uint8(3), uint8(1), uint8(8), false)

	f.Fuzz(func(t *testing.T, w, h uint16, mode, order, levels uint8, sub bool) {
		if w > 128 || h > 128 {
			return // keep the corpus fast
		}
		desc := &Descriptor{
			ColorMode:   ColorMode(mode % 4),
			ScanOrder:   ScanOrder(order % 4),
			Width:       int(w),
			Height:      int(h),
			DWTLevels:   int(levels%8) + 1,
			Subsampling: sub,
		}
		planes := 1
		if desc.ColorMode != ColorModeGrayscale {
			planes = 3
		}
		pix := make([]byte, int(w)*int(h)*planes)
		for i := range pix {
			pix[i] = byte(i * 31)
		}
		dst := make([]byte, 1<<18)
		n, err := EncodeBuffer(pix, dst, desc)
		if err != nil {
			return
		}
		got, _, err := DecodeBuffer(dst[:n], make([]byte, desc.PixelBytes()))
		if err != nil {
			t.Fatalf("decoding own output: %v", err)
		}
		if got.Width != desc.Width || got.Height != desc.Height ||
			got.ColorMode != desc.ColorMode || got.ScanOrder != desc.ScanOrder ||
			got.DWTLevels != desc.DWTLevels || got.Subsampling != desc.Subsampling {
			t.Fatalf("descriptor round trip: put %+v, got %+v", desc, got)
		}
	})
}
