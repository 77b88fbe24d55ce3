// Package scan provides the space-filling traversals used to linearize
// subband coefficients before bitplane coding.
//
// A Generator walks every cell of a W x H rectangle exactly once in one
// of four orders: plain raster, a tiled boustrophedon snake, Morton
// (Z-order), or a generalized Hilbert curve. The order determines how
// spatially close newly significant coefficients land in the WDR run
// stream; the codec only relies on the exactly-once property and on the
// traversal being identical between encoder and decoder.
package scan

import "github.com/mrjoshuak/go-sqz/internal/bitutil"

// Order selects a traversal.
type Order int

const (
	// Raster is row-major order.
	Raster Order = iota
	// Snake is a tiled boustrophedon walk.
	Snake
	// Morton is Z-order by bit interleaving.
	Morton
	// Hilbert is the generalized Hilbert (Gilbert) curve.
	Hilbert
)

// String returns the string representation of the order.
func (o Order) String() string {
	switch o {
	case Raster:
		return "Raster"
	case Snake:
		return "Snake"
	case Morton:
		return "Morton"
	case Hilbert:
		return "Hilbert"
	default:
		return "Unknown"
	}
}

// Snake tile geometry. Tall narrow tiles keep runs short for the
// vertically oriented subbands that dominate natural imagery.
const (
	snakeTileW = 4
	snakeTileH = 15
)

// Generator produces the next (x, y) position of the selected order.
// The zero Generator is not valid; call Init before the first Next.
type Generator struct {
	order Order
	w, h  int

	// X, Y hold the most recently produced position after Next returns
	// true.
	X, Y int

	raster rasterState
	snake  snakeState
	morton mortonState
	gilb   gilbertState
}

// Init prepares g to traverse a w x h rectangle in the given order.
// It may be called again to restart the traversal.
func (g *Generator) Init(order Order, w, h int) {
	g.order = order
	g.w, g.h = w, h
	g.X, g.Y = 0, 0
	switch order {
	case Raster:
		g.raster = rasterState{}
	case Snake:
		g.snake.init(w, h)
	case Morton:
		g.morton.init(w, h)
	case Hilbert:
		g.gilb.init(w, h)
	}
}

// Next advances to the next position, reporting false once the rectangle
// is exhausted. On true, the position is in g.X, g.Y.
func (g *Generator) Next() bool {
	switch g.order {
	case Raster:
		return g.raster.next(g)
	case Snake:
		return g.snake.next(g)
	case Morton:
		return g.morton.next(g)
	case Hilbert:
		return g.gilb.next(g)
	default:
		return false
	}
}

type rasterState struct {
	i int
}

func (s *rasterState) next(g *Generator) bool {
	if s.i >= g.w*g.h {
		return false
	}
	g.X = s.i % g.w
	g.Y = s.i / g.w
	s.i++
	return true
}

// snakeState walks a grid of snakeTileW x snakeTileH tiles. Tile rows
// alternate direction, tiles alternate their vertical sweep, and rows
// inside a tile alternate their horizontal sweep. The tiles partition
// the rectangle, so coverage is exact regardless of the seam parity.
type snakeState struct {
	ty    int // top row of the current tile band
	tbh   int // height of the current tile band
	trow  int // tile band index
	tcol  int // tile index within the band, in traversal order
	ncols int
	rj    int // row counter inside the tile
	rx    int // column counter inside the tile row
	done  bool
}

func (s *snakeState) init(w, h int) {
	*s = snakeState{}
	s.ncols = (w + snakeTileW - 1) / snakeTileW
	if h == 0 || w == 0 {
		s.done = true
		return
	}
	s.tbh = snakeTileH
	if s.tbh > h {
		s.tbh = h
	}
}

// tileX returns the left edge and width of the tile at traversal
// position tcol within the current band.
func (s *snakeState) tileX(g *Generator) (x0, tw int) {
	idx := s.tcol
	if s.trow&1 == 1 {
		idx = s.ncols - 1 - idx
	}
	x0 = idx * snakeTileW
	tw = snakeTileW
	if x0+tw > g.w {
		tw = g.w - x0
	}
	return x0, tw
}

func (s *snakeState) next(g *Generator) bool {
	if s.done {
		return false
	}
	x0, tw := s.tileX(g)

	down := s.tcol&1 == 0
	ry := s.rj
	if !down {
		ry = s.tbh - 1 - s.rj
	}
	rightward := s.rj&1 == 0
	if s.trow&1 == 1 {
		rightward = !rightward
	}
	cx := s.rx
	if !rightward {
		cx = tw - 1 - s.rx
	}
	g.X = x0 + cx
	g.Y = s.ty + ry

	// Advance: column, then row, then tile, then band.
	s.rx++
	if s.rx < tw {
		return true
	}
	s.rx = 0
	s.rj++
	if s.rj < s.tbh {
		return true
	}
	s.rj = 0
	s.tcol++
	if s.tcol < s.ncols {
		return true
	}
	s.tcol = 0
	s.ty += s.tbh
	s.trow++
	if s.ty >= g.h {
		s.done = true
		return true
	}
	s.tbh = snakeTileH
	if s.ty+s.tbh > g.h {
		s.tbh = g.h - s.ty
	}
	return true
}

// mortonState counts through a 2^(bx+by) index space, deinterleaving the
// low bits into (x, y) and dropping the excess high bits onto the longer
// axis. Indices landing outside the rectangle are skipped.
type mortonState struct {
	c     uint32
	total uint32
	m     int // interleaved bit pairs
	xWide bool
}

func (s *mortonState) init(w, h int) {
	bx := bitutil.CeilLog2(uint32(w))
	by := bitutil.CeilLog2(uint32(h))
	s.m = bx
	if by < bx {
		s.m = by
	}
	s.xWide = bx >= by
	s.total = 1 << uint(bx+by)
	s.c = 0
}

func (s *mortonState) next(g *Generator) bool {
	for s.c < s.total {
		c := s.c
		s.c++
		low := c & (1<<uint(2*s.m) - 1)
		hi := c >> uint(2*s.m)
		x := bitutil.Deinterleave(low)
		y := bitutil.Deinterleave(low >> 1)
		if s.xWide {
			x |= hi << uint(s.m)
		} else {
			y |= hi << uint(s.m)
		}
		if int(x) < g.w && int(y) < g.h {
			g.X, g.Y = int(x), int(y)
			return true
		}
	}
	return false
}

// gilbertState runs the generalized Hilbert bisection iteratively. Each
// stack frame is a sub-rectangle described by an origin and two axis
// vectors; line-shaped frames emit cells directly, others split per the
// 2w > 3h rule with the half vectors parity-adjusted by one step.
type gilbertState struct {
	stack []gilbertFrame
	// active line emission
	lx, ly   int
	ldx, ldy int
	lrem     int
}

type gilbertFrame struct {
	x, y   int
	ax, ay int
	bx, by int
}

func (s *gilbertState) init(w, h int) {
	s.lrem = 0
	s.stack = s.stack[:0]
	if w >= h {
		s.stack = append(s.stack, gilbertFrame{0, 0, w, 0, 0, h})
	} else {
		s.stack = append(s.stack, gilbertFrame{0, 0, 0, h, w, 0})
	}
}

func sgn(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s *gilbertState) next(g *Generator) bool {
	for {
		if s.lrem > 0 {
			g.X, g.Y = s.lx, s.ly
			s.lx += s.ldx
			s.ly += s.ldy
			s.lrem--
			return true
		}
		if len(s.stack) == 0 {
			return false
		}
		f := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]

		w := abs(f.ax + f.ay)
		h := abs(f.bx + f.by)
		dax, day := sgn(f.ax), sgn(f.ay)
		dbx, dby := sgn(f.bx), sgn(f.by)

		if h == 1 {
			s.lx, s.ly = f.x, f.y
			s.ldx, s.ldy = dax, day
			s.lrem = w
			continue
		}
		if w == 1 {
			s.lx, s.ly = f.x, f.y
			s.ldx, s.ldy = dbx, dby
			s.lrem = h
			continue
		}

		ax2, ay2 := f.ax/2, f.ay/2
		bx2, by2 := f.bx/2, f.by/2

		if 2*w > 3*h {
			if abs(ax2+ay2)%2 != 0 && w > 2 {
				ax2 += dax
				ay2 += day
			}
			// Pushed in reverse of traversal order.
			s.stack = append(s.stack,
				gilbertFrame{f.x + ax2, f.y + ay2, f.ax - ax2, f.ay - ay2, f.bx, f.by},
				gilbertFrame{f.x, f.y, ax2, ay2, f.bx, f.by},
			)
		} else {
			if abs(bx2+by2)%2 != 0 && h > 2 {
				bx2 += dbx
				by2 += dby
			}
			s.stack = append(s.stack,
				gilbertFrame{
					f.x + (f.ax - dax) + (bx2 - dbx), f.y + (f.ay - day) + (by2 - dby),
					-bx2, -by2, -(f.ax - ax2), -(f.ay - ay2),
				},
				gilbertFrame{f.x + bx2, f.y + by2, f.ax, f.ay, f.bx - bx2, f.by - by2},
				gilbertFrame{f.x, f.y, bx2, by2, ax2, ay2},
			)
		}
	}
}
