// Package dwt implements the 5/3 reversible integer wavelet transform.
//
// The transform is lifting-based: a predict step turns odd samples into
// high-pass differences, an update step turns even samples into low-pass
// averages. Both steps round with arithmetic shifts, so the inverse
// reconstructs every integer input exactly. Boundaries use symmetric
// extension, which in the split even/odd domain reduces to repeating the
// nearest computed neighbor.
//
// Coefficients are stored in the compacted Mallat layout: after each
// level the low-pass half occupies the leading indices and the next
// level transforms the shrinking top-left region of the plane in place.
package dwt

import (
	"sync"

	"github.com/mrjoshuak/go-sqz/internal/bitutil"
)

// Scratch buffers for one row or column, pooled across calls.
var scratchPool = sync.Pool{
	New: func() interface{} {
		buf := make([]int16, 256)
		return &buf
	},
}

func getScratch(n int) []int16 {
	bp := scratchPool.Get().(*[]int16)
	buf := *bp
	if cap(buf) < n {
		buf = make([]int16, n)
		*bp = buf
	}
	return buf[:n]
}

func putScratch(buf []int16) {
	bp := &buf
	scratchPool.Put(bp)
}

// forward1D transforms n samples from src into dst as low-pass values
// followed by high-pass values. src and dst must not alias.
//
// H[i] = o[i] - floor((e[i] + e[i+1]) / 2)
// L[i] = e[i] + floor((H[i-1] + H[i] + 2) / 4)
func forward1D(src, dst []int16, n int) {
	if n == 1 {
		dst[0] = src[0]
		return
	}
	half := (n + 1) >> 1
	nh := n >> 1
	h := dst[half:]
	for i := 0; i < nh; i++ {
		e0 := int(src[2*i])
		e1 := int(src[bitutil.Mirror(2*i+2, n-1)])
		h[i] = int16(int(src[2*i+1]) - ((e0 + e1) >> 1))
	}
	for i := 0; i < half; i++ {
		a := i - 1
		if a < 0 {
			a = 0
		}
		b := i
		if b >= nh {
			b = nh - 1
		}
		dst[i] = int16(int(src[2*i]) + ((int(h[a]) + int(h[b]) + 2) >> 2))
	}
}

// inverse1D reconstructs n interleaved samples into dst from the
// low/high split in src, undoing the update step before the predict.
func inverse1D(src, dst []int16, n int) {
	if n == 1 {
		dst[0] = src[0]
		return
	}
	half := (n + 1) >> 1
	nh := n >> 1
	l := src[:half]
	h := src[half:]
	for i := 0; i < half; i++ {
		a := i - 1
		if a < 0 {
			a = 0
		}
		b := i
		if b >= nh {
			b = nh - 1
		}
		dst[2*i] = int16(int(l[i]) - ((int(h[a]) + int(h[b]) + 2) >> 2))
	}
	for i := 0; i < nh; i++ {
		e0 := int(dst[2*i])
		e1 := int(dst[bitutil.Mirror(2*i+2, n-1)])
		dst[2*i+1] = int16(int(h[i]) + ((e0 + e1) >> 1))
	}
}

// levelDims returns the transformed region size at the given level.
func levelDims(width, height, level int) (w, h int) {
	w = (width + (1 << uint(level)) - 1) >> uint(level)
	h = (height + (1 << uint(level)) - 1) >> uint(level)
	return w, h
}

// Forward applies levels of the forward transform to a width x height
// plane stored row-major with stride width.
func Forward(plane []int16, width, height, levels int) {
	n := width
	if height > n {
		n = height
	}
	src := getScratch(n)
	dst := getScratch(n)
	defer putScratch(src)
	defer putScratch(dst)

	for lvl := 0; lvl < levels; lvl++ {
		w, h := levelDims(width, height, lvl)
		for y := 0; y < h; y++ {
			row := plane[y*width : y*width+w]
			copy(src, row)
			forward1D(src, dst, w)
			copy(row, dst[:w])
		}
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				src[y] = plane[y*width+x]
			}
			forward1D(src, dst, h)
			for y := 0; y < h; y++ {
				plane[y*width+x] = dst[y]
			}
		}
	}
}

// Inverse undoes Forward: columns before rows, deepest level first.
func Inverse(plane []int16, width, height, levels int) {
	n := width
	if height > n {
		n = height
	}
	src := getScratch(n)
	dst := getScratch(n)
	defer putScratch(src)
	defer putScratch(dst)

	for lvl := levels - 1; lvl >= 0; lvl-- {
		w, h := levelDims(width, height, lvl)
		for x := 0; x < w; x++ {
			for y := 0; y < h; y++ {
				src[y] = plane[y*width+x]
			}
			inverse1D(src, dst, h)
			for y := 0; y < h; y++ {
				plane[y*width+x] = dst[y]
			}
		}
		for y := 0; y < h; y++ {
			row := plane[y*width : y*width+w]
			copy(src[:w], row)
			inverse1D(src, dst, w)
			copy(row, dst[:w])
		}
	}
}
