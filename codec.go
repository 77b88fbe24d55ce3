package sqz

import (
	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
	"github.com/mrjoshuak/go-sqz/internal/scan"
	"github.com/mrjoshuak/go-sqz/internal/wdr"
)

// scheduleTable[mode][plane][level][orientation] is the round at which
// each subband enters the schedule. Deeper levels lead, HH trails its
// level, chroma trails luma (one round further for Oklab, whose chroma
// tolerates more delay), and the subsampling flag shifts chroma one
// more round at run time.
var scheduleTable = [4][3][8][4]uint8{
	{ // Grayscale
		{{6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {1, 2, 2, 3}, {0, 1, 1, 2}, {0, 0, 0, 1}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
	},
	{ // YCoCg-R
		{{6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {1, 2, 2, 3}, {0, 1, 1, 2}, {0, 0, 0, 1}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
	},
	{ // Oklab
		{{6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {1, 2, 2, 3}, {0, 1, 1, 2}, {0, 0, 0, 1}},
		{{9, 10, 10, 10}, {8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {3, 3, 3, 4}},
		{{9, 10, 10, 10}, {8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {3, 3, 3, 4}},
	},
	{ // logl1
		{{6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {1, 2, 2, 3}, {0, 1, 1, 2}, {0, 0, 0, 1}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
		{{8, 9, 9, 10}, {7, 8, 8, 9}, {6, 7, 7, 8}, {5, 6, 6, 7}, {4, 5, 5, 6}, {3, 4, 4, 5}, {2, 3, 3, 4}, {2, 2, 2, 3}},
	},
}

// startRound returns the first schedule round for a subband, applying
// the run-time subsampling shift to chroma planes.
func startRound(d *Descriptor, plane, level, orient int) int {
	s := int(scheduleTable[d.ColorMode][plane][level][orient])
	if d.Subsampling && plane > 0 {
		s++
	}
	return s
}

// maxDWTLevels returns the deepest decomposition the image admits.
// Negative or zero means the image is too small to encode at all.
func maxDWTLevels(width, height int) int {
	m := width
	if height < m {
		m = height
	}
	return bitutil.Ilog2(uint32(m)) - 3
}

// codec drives one encode or decode: the coefficient planes, the
// subband tree in schedule traversal order, and the payload bit cursor.
type codec struct {
	desc   *Descriptor
	planes [][]int16
	bands  []*wdr.Subband
	bb     *bitio.Buffer
	gen    scan.Generator
}

func newCodec(desc *Descriptor, planes [][]int16, bb *bitio.Buffer) *codec {
	c := &codec{desc: desc, planes: planes, bb: bb}
	c.buildBands()
	return c
}

// buildBands lays out the subband tree in traversal order: deepest
// level first, planes in order within a level, LL only at the deepest
// level, then HL, LH, HH.
func (c *codec) buildBands() {
	d := c.desc
	w, h := d.Width, d.Height
	for lvl := d.DWTLevels - 1; lvl >= 0; lvl-- {
		wl := ceilShift(w, lvl)
		hl := ceilShift(h, lvl)
		wn := (wl + 1) >> 1
		hn := (hl + 1) >> 1
		for p := 0; p < d.NumPlanes; p++ {
			plane := c.planes[p]
			add := func(orient, x0, y0, bw, bh int) {
				data := plane[y0*w+x0:]
				c.bands = append(c.bands,
					wdr.New(data, bw, bh, w, startRound(d, p, lvl, orient)))
			}
			if lvl == d.DWTLevels-1 {
				add(0, 0, 0, wn, hn)
			}
			add(1, wn, 0, wl-wn, hn)
			add(2, 0, hn, wn, hl-hn)
			add(3, wn, hn, wl-wn, hl-hn)
		}
	}
}

func ceilShift(v, n int) int {
	return (v + 1<<uint(n) - 1) >> uint(n)
}

// run executes schedule rounds until every subband has coded its last
// bitplane or the buffer ends. Running out of buffer is a normal stop:
// the bits exchanged so far are a self-consistent prefix.
func (c *codec) run(encode bool) {
	for round := 0; ; round++ {
		pending := false
		for _, sb := range c.bands {
			if sb.StartRound > round {
				pending = true
				continue
			}
			if sb.Done {
				continue
			}
			if !sb.Initialized() {
				if !sb.Init(&c.gen, scan.Order(c.desc.ScanOrder), c.bb, encode) {
					return
				}
			}
			if !sb.Round(c.bb, encode) {
				return
			}
			if !sb.Done {
				pending = true
			}
		}
		if !pending {
			return
		}
	}
}

// finishDecode resolves truncation: unresolved low bits of significant
// coefficients move to their midpoint before the inverse transform.
func (c *codec) finishDecode() {
	for _, sb := range c.bands {
		sb.FillMidpoints()
	}
}
