/*
 * D17B/D37C - Memory substrate
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

// Package memory implements the unified (channel, sector) memory
// substrate: bulk disc storage plus the seven rapid-access loops,
// addressed through the same Read/Write surface.
package memory

import "github.com/nscguidance/d17b/emu/word"

// Channel constants for the rapid-access loops (octal addresses, per
// spec.md §3's loop-channel aliasing table).
const (
	ChanF uint8 = 052 // F-loop, 4 words
	ChanH uint8 = 054 // H-loop, 16 words
	ChanE uint8 = 056 // E-loop, 8 words
	ChanU uint8 = 060 // U-loop, 1 word
	ChanL uint8 = 064 // L register, 1 word
	ChanV uint8 = 070 // V-loop, 4 words
	ChanR uint8 = 072 // R-loop, 4 words

	// Channel 50 (octal) = 40 decimal, the modifiable bulk cell reached
	// by flag-store code 3 (displayed "06").
	ChanFlagStore uint8 = 050

	Channels uint8 = 47  // Channels 0-46 decimal (00-56 octal) are bulk memory
	Sectors  uint8 = 128 // Sectors per channel
)

// Memory holds the bulk disc array and the rapid-access loops. It is a
// plain value type, owned by the CPU that embeds it — no package-level
// state, per spec.md §9 ("loop channels are registers, not memory...
// do not back them with a general map whose key is a channel number").
type Memory struct {
	Bulk [Channels][Sectors]uint32

	U uint32
	L uint32 // lower accumulator, also addressable as the one-word L loop
	F [4]uint32
	H [16]uint32
	E [8]uint32
	V [4]uint32
	R [4]uint32

	// Limit is the number of populated bulk words (D17B: 2944, D37C:
	// 7222, per spec.md §3); reads beyond it return 0 and writes are
	// ignored, independent of the raw (channel, sector) bounds check.
	Limit uint32
}

// Reset clears all loops and the bulk array; Limit is left untouched,
// since it is a construction-time machine parameter, not emulated state.
func (m *Memory) Reset() {
	m.Bulk = [Channels][Sectors]uint32{}
	m.U = 0
	m.L = 0
	m.F = [4]uint32{}
	m.H = [16]uint32{}
	m.E = [8]uint32{}
	m.V = [4]uint32{}
	m.R = [4]uint32{}
}

func (m *Memory) populated(ch uint8, sec uint8) bool {
	return uint32(ch)*uint32(Sectors)+uint32(sec) < m.Limit
}

// Read dispatches a (channel, sector) access to a loop or to bulk
// memory, per spec.md §4.2. Out-of-range or unpopulated bulk accesses
// return 0.
func (m *Memory) Read(ch uint8, sec uint8) uint32 {
	switch ch {
	case ChanF:
		return m.F[sec%4]
	case ChanH:
		return m.H[sec%16]
	case ChanE:
		return m.E[sec%8]
	case ChanU:
		return m.U
	case ChanL:
		return m.L
	case ChanV:
		return m.V[sec%4]
	case ChanR:
		return m.R[sec%4]
	default:
		if ch < Channels && sec < Sectors && m.populated(ch, sec) {
			return m.Bulk[ch][sec]
		}
		return 0
	}
}

// Write dispatches the same way as Read; every stored value is masked
// to 24 bits, and out-of-range or unpopulated bulk writes are no-ops.
func (m *Memory) Write(ch uint8, sec uint8, w uint32) {
	w &= word.WordMask
	switch ch {
	case ChanF:
		m.F[sec%4] = w
	case ChanH:
		m.H[sec%16] = w
	case ChanE:
		m.E[sec%8] = w
	case ChanU:
		m.U = w
	case ChanL:
		m.L = w
	case ChanV:
		m.V[sec%4] = w
	case ChanR:
		m.R[sec%4] = w
	default:
		if ch < Channels && sec < Sectors && m.populated(ch, sec) {
			m.Bulk[ch][sec] = w
		}
	}
}

// IsLoopChannel reports whether ch addresses one of the seven
// rapid-access loops rather than bulk memory.
func IsLoopChannel(ch uint8) bool {
	switch ch {
	case ChanF, ChanH, ChanE, ChanU, ChanL, ChanV, ChanR:
		return true
	default:
		return false
	}
}
