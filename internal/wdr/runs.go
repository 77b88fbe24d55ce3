package wdr

import (
	"github.com/mrjoshuak/go-sqz/internal/bitio"
	"github.com/mrjoshuak/go-sqz/internal/bitutil"
)

// writeRun emits the WDR code for a run r >= 1: the binary digits of r
// below its leading one, each preceded by a zero continuation bit, then
// a closing one. The continuation/payload pairing is the Morton
// interleave of the payload with zeros; payloads wider than 16 bits are
// split into a leading chunk plus one full 32-bit chunk.
func writeRun(bb *bitio.Buffer, r uint32) bool {
	k := bitutil.Ilog2(r)
	if k > 0 {
		payload := r ^ 1<<uint(k)
		if k > 16 {
			if !bb.WriteBits(bitutil.Interleave(payload>>16), 2*(k-16)) {
				return false
			}
			if !bb.WriteBits(bitutil.Interleave(payload), 32) {
				return false
			}
		} else if !bb.WriteBits(bitutil.Interleave(payload), 2*k) {
			return false
		}
	}
	return bb.WriteBit(1)
}

// readRun inverts writeRun.
func readRun(bb *bitio.Buffer) (uint32, bool) {
	r := uint32(1)
	for {
		b, ok := bb.ReadBit()
		if !ok {
			return 0, false
		}
		if b == 1 {
			return r, true
		}
		p, ok := bb.ReadBit()
		if !ok {
			return 0, false
		}
		r = r<<1 | uint32(p)
	}
}
