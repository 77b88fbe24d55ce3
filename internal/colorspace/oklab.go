package colorspace

import "math/bits"

// Oklab coefficient layout: L in Q12 biased by 2048, a and b in Q12.
const oklabLBias = 2048

// cbrtQ16 returns the cube root of x/65536 in Q16, exact to the floor:
// the largest y with y*y*y <= x<<32. A bit-length seed is refined by
// Newton steps, then corrected to the exact floor.
func cbrtQ16(x int32) int32 {
	if x <= 0 {
		return 0
	}
	n := uint64(x) << 32
	y := uint64(1) << uint((bits.Len64(n)+2)/3)
	for i := 0; i < 5; i++ {
		y = (2*y + n/(y*y)) / 3
	}
	for y*y*y > n {
		y--
	}
	for (y+1)*(y+1)*(y+1) <= n {
		y++
	}
	return int32(y)
}

func encodeOklab(pix []byte, planes [][]int16, n int) {
	for i := 0; i < n; i++ {
		lin := [3]int64{
			int64(srgbToLinear[pix[3*i]]),
			int64(srgbToLinear[pix[3*i+1]]),
			int64(srgbToLinear[pix[3*i+2]]),
		}
		var lp [3]int64
		for p := 0; p < 3; p++ {
			row := &oklabM1[p]
			acc := int64(row[0])*lin[0] + int64(row[1])*lin[1] + int64(row[2])*lin[2]
			v := (acc + 32768) >> 16
			if v < 0 {
				v = 0
			} else if v > 65535 {
				v = 65535
			}
			lp[p] = int64(cbrtQ16(int32(v)))
		}
		for p := 0; p < 3; p++ {
			row := &oklabM2[p]
			acc := int64(row[0])*lp[0] + int64(row[1])*lp[1] + int64(row[2])*lp[2]
			v := int16((acc + 1<<19) >> 20) // Q16 * Q16 -> Q12
			if p == 0 {
				v -= oklabLBias
			}
			planes[p][i] = v
		}
	}
}

func decodeOklab(planes [][]int16, pix []byte, n int) {
	for i := 0; i < n; i++ {
		lab := [3]int64{
			int64(planes[0][i]) + oklabLBias,
			int64(planes[1][i]),
			int64(planes[2][i]),
		}
		var lms [3]int64
		for p := 0; p < 3; p++ {
			row := &oklabM2Inv[p]
			acc := int64(row[0])*lab[0] + int64(row[1])*lab[1] + int64(row[2])*lab[2]
			lp := (acc + 1<<11) >> 12 // Q16 * Q12 -> Q16
			if lp < 0 {
				lp = 0
			} else if lp > 65535 {
				lp = 65535
			}
			lms[p] = (lp * lp >> 16) * lp >> 16
		}
		for p := 0; p < 3; p++ {
			row := &oklabM1Inv[p]
			acc := int64(row[0])*lms[0] + int64(row[1])*lms[1] + int64(row[2])*lms[2]
			lin := (acc + 32768) >> 16
			if lin < 0 {
				lin = 0
			} else if lin > 65535 {
				lin = 65535
			}
			idx := lin >> 7
			frac := lin & 127
			lo := int64(linearToSRGB[idx])
			hi := int64(linearToSRGB[idx+1])
			pix[3*i+p] = clamp255(int(lo + ((hi-lo)*frac+64)>>7))
		}
	}
}
