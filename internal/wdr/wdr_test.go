package wdr

import (
	"math/rand"
	"testing"

	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
	"github.com/mrjoshuak/go-sqz/internal/scan"
)

func TestRunCode_Roundtrip(t *testing.T) {
	var runs []uint32
	for r := uint32(1); r <= 300; r++ {
		runs = append(runs, r)
	}
	runs = append(runs, 1<<16-1, 1<<16, 1<<16+1, 1<<18+12345, 1<<20)
	for _, r := range runs {
		buf := make([]byte, 16)
		w := bitio.NewBuffer(buf)
		if !writeRun(w, r) {
			t.Fatalf("writeRun(%d) failed", r)
		}
		rd := bitio.NewBuffer(buf)
		got, ok := readRun(rd)
		if !ok || got != r {
			t.Fatalf("readRun(writeRun(%d)) = %d, ok=%v", r, got, ok)
		}
		if rd.BitsUsed() != w.BitsUsed() {
			t.Fatalf("run %d: read %d bits, wrote %d", r, rd.BitsUsed(), w.BitsUsed())
		}
	}
}

func TestRunCode_Width(t *testing.T) {
	// A run r costs 2*floor(log2(r)) + 1 bits.
	tests := []struct {
		r    uint32
		bits int
	}{
		{1, 1}, {2, 3}, {3, 3}, {4, 5}, {7, 5}, {8, 7}, {1 << 16, 33}, {1 << 20, 41},
	}
	for _, tt := range tests {
		w := bitio.NewBuffer(make([]byte, 16))
		writeRun(w, tt.r)
		if w.BitsUsed() != tt.bits {
			t.Errorf("writeRun(%d) used %d bits, want %d", tt.r, w.BitsUsed(), tt.bits)
		}
	}
}

func TestRunCode_KnownBits(t *testing.T) {
	// run 5 = 101b: payload 01 interleaved with continuation zeros, then
	// the closing one: 0 0 0 1 1.
	buf := make([]byte, 2)
	w := bitio.NewBuffer(buf)
	writeRun(w, 5)
	r := bitio.NewBuffer(buf)
	v, _ := r.ReadBits(5)
	if v != 0x03 {
		t.Errorf("writeRun(5) bits = %05b, want 00011", v)
	}
}

// makeSubband builds a subband over a fresh plane buffer with the given
// sign-magnitude coefficients laid out row-major.
func makeSubband(w, h int, coefs []int16) *Subband {
	data := make([]int16, w*h)
	copy(data, coefs)
	return New(data, w, h, w, 0)
}

func runAllRounds(t *testing.T, sb *Subband, bb *bitio.Buffer, encode bool) {
	t.Helper()
	for !sb.Done {
		if !sb.Round(bb, encode) {
			t.Fatalf("Round failed with buffer space remaining (encode=%v)", encode)
		}
	}
}

func TestPasses_Roundtrip(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		coefs []int16
	}{
		{"all zero", 4, 4, make([]int16, 16)},
		{"single", 4, 4, []int16{0, 0, 0, 0, 0, 12, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"signs", 2, 2, []int16{6, 7, 3, 2}},
		{"mixed", 4, 2, []int16{2, 9, 30, 0, 5, 128, 64, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := makeSubband(tt.w, tt.h, tt.coefs)
			buf := make([]byte, 256)
			bb := bitio.NewBuffer(buf)
			var g scan.Generator
			if !enc.Init(&g, scan.Raster, bb, true) {
				t.Fatal("encoder Init failed")
			}
			runAllRounds(t, enc, bb, true)

			dec := makeSubband(tt.w, tt.h, nil)
			rb := bitio.NewBuffer(buf[:bb.BytesUsed()])
			if !dec.Init(&g, scan.Raster, rb, false) {
				t.Fatal("decoder Init failed")
			}
			if dec.MaxBitplane != enc.MaxBitplane {
				t.Fatalf("MaxBitplane = %d, want %d", dec.MaxBitplane, enc.MaxBitplane)
			}
			for !dec.Done {
				if !dec.Round(rb, false) {
					t.Fatal("decoder Round failed on complete stream")
				}
			}
			for i, want := range tt.coefs {
				if dec.Data[i] != want {
					t.Errorf("coefficient %d = %d, want %d", i, dec.Data[i], want)
				}
			}
		})
	}
}

func TestPasses_RoundtripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		w := 1 + rng.Intn(16)
		h := 1 + rng.Intn(16)
		coefs := make([]int16, w*h)
		for i := range coefs {
			if rng.Intn(3) == 0 {
				coefs[i] = int16(bitutil.ToSignMagnitude(int16(rng.Intn(2001) - 1000)))
			}
		}
		enc := makeSubband(w, h, coefs)
		buf := make([]byte, 8192)
		bb := bitio.NewBuffer(buf)
		var g scan.Generator
		order := scan.Order(rng.Intn(4))
		if !enc.Init(&g, order, bb, true) {
			t.Fatal("encoder Init failed")
		}
		runAllRounds(t, enc, bb, true)

		dec := makeSubband(w, h, nil)
		rb := bitio.NewBuffer(buf[:bb.BytesUsed()])
		if !dec.Init(&g, order, rb, false) {
			t.Fatal("decoder Init failed")
		}
		for !dec.Done {
			if !dec.Round(rb, false) {
				t.Fatal("decoder Round failed on complete stream")
			}
		}
		for i, want := range coefs {
			if dec.Data[i] != want {
				t.Fatalf("trial %d (%dx%d %v): coefficient %d = %d, want %d",
					trial, w, h, order, i, dec.Data[i], want)
			}
		}
	}
}

func TestPasses_TruncationConsistent(t *testing.T) {
	// Decoding any byte prefix must stop cleanly; already-committed
	// significance stays, nothing panics, and lists remain walkable.
	coefs := []int16{2, 9, 30, 0, 5, 128, 64, 12, 14, 3, 22, 6, 0, 0, 40, 18}
	enc := makeSubband(4, 4, coefs)
	buf := make([]byte, 256)
	bb := bitio.NewBuffer(buf)
	var g scan.Generator
	enc.Init(&g, scan.Raster, bb, true)
	runAllRounds(t, enc, bb, true)
	full := bb.BytesUsed()

	for n := 0; n <= full; n++ {
		dec := makeSubband(4, 4, nil)
		rb := bitio.NewBuffer(buf[:n])
		if !dec.Init(&g, scan.Raster, rb, false) {
			continue // nibble did not fit; nothing decoded
		}
		for !dec.Done {
			if !dec.Round(rb, false) {
				break
			}
		}
		dec.FillMidpoints()
		// Midpoint fill must never invent significance.
		for i, v := range dec.Data {
			if coefs[i] == 0 && v != 0 {
				t.Fatalf("prefix %d: zero coefficient %d decoded as %d", n, i, v)
			}
		}
	}
}

func TestFillMidpoints(t *testing.T) {
	sb := makeSubband(2, 2, []int16{0, 32, 33, 0})
	sb.initialized = true
	sb.Bitplane = 3
	sb.FillMidpoints()
	// Bits 1..3 are ORed into significant coefficients; zero stays zero.
	want := []int16{0, 32 | 14, 33 | 14, 0}
	for i := range want {
		if sb.Data[i] != want[i] {
			t.Errorf("coefficient %d = %d, want %d", i, sb.Data[i], want[i])
		}
	}
}

func TestFillMidpoints_SkipsDoneAndLowPlanes(t *testing.T) {
	sb := makeSubband(1, 1, []int16{32})
	sb.initialized = true
	sb.Bitplane = 0
	sb.FillMidpoints()
	if sb.Data[0] != 32 {
		t.Errorf("bitplane 0 fill changed coefficient to %d", sb.Data[0])
	}
	sb.Bitplane = 3
	sb.Done = true
	sb.FillMidpoints()
	if sb.Data[0] != 32 {
		t.Errorf("done fill changed coefficient to %d", sb.Data[0])
	}
}

func TestInit_MaxBitplane(t *testing.T) {
	tests := []struct {
		name  string
		coefs []int16
		want  int
	}{
		{"zeros", []int16{0, 0, 0, 0}, 0},
		{"tiny", []int16{0, 2, 0, 3}, 0},
		{"mid", []int16{0, 0, 30, 0}, 3},
		{"big", []int16{0, 0, 0, 16384}, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := makeSubband(2, 2, tt.coefs)
			bb := bitio.NewBuffer(make([]byte, 4))
			var g scan.Generator
			if !sb.Init(&g, scan.Raster, bb, true) {
				t.Fatal("Init failed")
			}
			if sb.MaxBitplane != tt.want {
				t.Errorf("MaxBitplane = %d, want %d", sb.MaxBitplane, tt.want)
			}
			if bb.BitsUsed() != 4 {
				t.Errorf("Init wrote %d bits, want 4", bb.BitsUsed())
			}
		})
	}
}
