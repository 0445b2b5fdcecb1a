/*
 * D17B/D37C - 24-bit sign-magnitude word arithmetic
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package word implements sign-magnitude arithmetic on the D17B/D37C's
// 24-bit word, including the split-lane (12-bit half) operations used
// by SAD/SSU/SCL.
package word

// Mask constants, named in the teacher's style (cpudefs.go AMASK/FMASK/...).
const (
	Bits      = 24
	WordMask  uint32 = 0x00ffffff // Mask to 24 bits
	SignBit   uint32 = 0x00800000 // Sign bit
	MagMask   uint32 = 0x007fffff // Magnitude mask
	MaxMag    int32  = 0x007fffff // Largest representable magnitude
	LaneMask  uint32 = 0x00000fff // 12-bit split lane mask
)

// ToSigned converts a sign-magnitude word to a signed integer. Bit 23 set
// means negative; magnitude is bits 22..0. +0 and -0 both convert to 0.
func ToSigned(w uint32) int32 {
	mag := int32(w & MagMask)
	if w&SignBit != 0 {
		return -mag
	}
	return mag
}

// FromSigned converts a signed integer back to sign-magnitude, clamping
// the magnitude to 23 bits. Callers that need saturation should call
// Add/Sub instead of clamping a raw sum through FromSigned.
func FromSigned(s int32) uint32 {
	neg := s < 0
	if neg {
		s = -s
	}
	return fromSignedMag(neg, s)
}

func fromSignedMag(neg bool, mag int32) uint32 {
	if mag > MaxMag {
		mag = MaxMag
	}
	w := uint32(mag) & MagMask
	if neg {
		w |= SignBit
	}
	return w
}

// Add performs signed sign-magnitude addition, saturating to
// [-(2^23-1), +(2^23-1)] rather than wrapping.
func Add(a, b uint32) uint32 {
	return saturate(int64(ToSigned(a)) + int64(ToSigned(b)))
}

// Sub performs signed sign-magnitude subtraction, saturating the same way.
func Sub(a, b uint32) uint32 {
	return saturate(int64(ToSigned(a)) - int64(ToSigned(b)))
}

func saturate(sum int64) uint32 {
	if sum > int64(MaxMag) {
		sum = int64(MaxMag)
	} else if sum < -int64(MaxMag) {
		sum = -int64(MaxMag)
	}
	neg := sum < 0
	if neg {
		sum = -sum
	}
	return fromSignedMag(neg, int32(sum))
}

// Complement toggles the sign bit, leaving magnitude untouched.
func Complement(a uint32) uint32 {
	return a ^ SignBit
}

// MinusMagnitude forces the sign bit set, preserving magnitude.
func MinusMagnitude(a uint32) uint32 {
	return SignBit | (a & MagMask)
}

// IsZero reports whether a word is zero under a magnitude-only
// comparison (used by TZE and the divide-by-zero check); +0 and -0
// both count as zero.
func IsZero(a uint32) bool {
	return a&MagMask == 0
}

// Hi returns the high 12-bit lane (bits 23..12) of a split word.
func Hi(a uint32) uint32 {
	return (a >> 12) & LaneMask
}

// Lo returns the low 12-bit lane (bits 11..0) of a split word.
func Lo(a uint32) uint32 {
	return a & LaneMask
}

// PackLanes reassembles a word from two lanes, masking each to 12 bits.
func PackLanes(hi, lo uint32) uint32 {
	return ((hi & LaneMask) << 12) | (lo & LaneMask)
}

// SplitAdd adds each 12-bit lane independently, truncating on overflow
// (no carry between lanes, no saturation) — used by SAD.
func SplitAdd(a, b uint32) uint32 {
	return PackLanes(Hi(a)+Hi(b), Lo(a)+Lo(b))
}

// SplitSub subtracts each 12-bit lane independently, truncating the
// same way — used by SSU.
func SplitSub(a, b uint32) uint32 {
	return PackLanes(Hi(a)-Hi(b), Lo(a)-Lo(b))
}

// signExtendLane sign-extends a 12-bit lane (bit 11 is its sign) to a
// plain int16, for SCL's signed-lane comparison.
func signExtendLane(lane uint32) int16 {
	v := int16(lane & LaneMask)
	if v&0x800 != 0 {
		v |= ^int16(LaneMask)
	}
	return v
}

// SplitCompareLimit implements SCL: for each 12-bit lane, clamp the
// accumulator lane into [-|operand|, +|operand|], treating both lanes
// as signed 12-bit values.
func SplitCompareLimit(a, operand uint32) uint32 {
	aHi, aLo := signExtendLane(Hi(a)), signExtendLane(Lo(a))
	oHi, oLo := signExtendLane(Hi(operand)), signExtendLane(Lo(operand))

	clamp := func(v, limit int16) int16 {
		if limit < 0 {
			limit = -limit
		}
		if v > limit {
			return limit
		}
		if v < -limit {
			return -limit
		}
		return v
	}
	aHi = clamp(aHi, oHi)
	aLo = clamp(aLo, oLo)
	return PackLanes(uint32(aHi)&LaneMask, uint32(aLo)&LaneMask)
}

// SplitMultiplyOperand reduces a word to the signed 10-bit value used
// by split multiply (SMP): the top 9 magnitude bits (bits 22..14) with
// the word's own sign bit (bit 23) reapplied.
func SplitMultiplyOperand(w uint32) int32 {
	mag := int32((w >> 14) & 0x1ff)
	if w&SignBit != 0 {
		return -mag
	}
	return mag
}
