// Package wdr implements the bitplane significance coder that turns
// wavelet subbands into (and back out of) the embedded bitstream.
//
// Each subband keeps three intrusive lists over one node pool: LIP holds
// coefficients not yet significant, LSP those already significant, and
// NSP those that became significant in the current pass. A sorting pass
// walks LIP emitting Wavelet Difference Reduction runs between newly
// significant coefficients; a refinement pass emits one bit per LSP
// entry. Every pass is terminable at any bit position: whatever the
// buffer cut, encoder and decoder agree on the list state.
package wdr

import (
	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
	"github.com/mrjoshuak/go-sqz/internal/scan"
)

// node is one pool entry. Nodes are allocated once per subband at first
// visit and only ever move between lists, so next links are indices and
// the pool never reallocates.
type node struct {
	x, y uint16
	next int32
}

const nilNode = int32(-1)

// list is an intrusive singly-linked list of pool indices.
type list struct {
	head, tail int32
}

func emptyList() list {
	return list{head: nilNode, tail: nilNode}
}

func (l *list) push(pool []node, idx int32) {
	pool[idx].next = nilNode
	if l.tail == nilNode {
		l.head = idx
	} else {
		pool[l.tail].next = idx
	}
	l.tail = idx
}

// concat appends other to l, preserving insertion order, and empties it.
func (l *list) concat(pool []node, other *list) {
	if other.head == nilNode {
		return
	}
	if l.tail == nilNode {
		l.head = other.head
	} else {
		pool[l.tail].next = other.head
	}
	l.tail = other.tail
	*other = emptyList()
}

// Subband is one orientation band of one decomposition level: a w x h
// window into its plane buffer plus the coder state for it.
type Subband struct {
	// Data is the plane buffer positioned at the subband origin;
	// coefficient (x, y) lives at Data[y*Stride+x], in sign-magnitude
	// form.
	Data   []int16
	W, H   int
	Stride int

	// MaxBitplane is the highest magnitude bit present (encode) or
	// signalled (decode). Bitplane is the next plane to code, counting
	// down; Done is set after the bitplane-0 round.
	MaxBitplane int
	Bitplane    int
	Done        bool

	// StartRound is the scheduler round at which this subband first
	// participates.
	StartRound int

	initialized bool
	pool        []node
	lip         list
	lsp         list
	nsp         list
}

// New returns an uninitialized subband over the given window. The node
// pool is allocated lazily by Init on the subband's first visit.
func New(data []int16, w, h, stride, startRound int) *Subband {
	return &Subband{
		Data:       data,
		W:          w,
		H:          h,
		Stride:     stride,
		StartRound: startRound,
		lip:        emptyList(),
		lsp:        emptyList(),
		nsp:        emptyList(),
	}
}

// Initialized reports whether Init has completed.
func (sb *Subband) Initialized() bool {
	return sb.initialized
}

// Init allocates the node pool, seeds LIP in the order produced by the
// scan generator, and exchanges the 4-bit maximum bitplane. It reports
// false when the buffer ends before the field completes.
func (sb *Subband) Init(g *scan.Generator, order scan.Order, bb *bitio.Buffer, encode bool) bool {
	sb.pool = make([]node, 0, sb.W*sb.H)
	sb.lip = emptyList()
	sb.lsp = emptyList()
	sb.nsp = emptyList()

	var maxSM int16
	g.Init(order, sb.W, sb.H)
	for g.Next() {
		idx := int32(len(sb.pool))
		sb.pool = append(sb.pool, node{x: uint16(g.X), y: uint16(g.Y)})
		sb.lip.push(sb.pool, idx)
		if encode {
			if v := sb.Data[g.Y*sb.Stride+g.X]; v > maxSM {
				maxSM = v
			}
		}
	}

	if encode {
		mb := 0
		if mag := uint32(maxSM) >> 1; mag > 0 {
			mb = bitutil.Ilog2(mag)
		}
		sb.MaxBitplane = mb
		if !bb.WriteBits(uint32(mb), 4) {
			return false
		}
	} else {
		v, ok := bb.ReadBits(4)
		if !ok {
			return false
		}
		sb.MaxBitplane = int(v)
	}
	sb.Bitplane = sb.MaxBitplane
	sb.initialized = true
	return true
}

// FillMidpoints sets the unresolved low magnitude bits of every
// significant coefficient to the midpoint of their remaining range.
// Called once after decoding stops, complete or truncated.
func (sb *Subband) FillMidpoints() {
	if !sb.initialized || sb.Done || sb.Bitplane < 1 {
		return
	}
	add := int16(2)<<uint(sb.Bitplane) - 2
	for y := 0; y < sb.H; y++ {
		row := sb.Data[y*sb.Stride : y*sb.Stride+sb.W]
		for x, v := range row {
			if v >= 2 {
				row[x] = v | add
			}
		}
	}
}
