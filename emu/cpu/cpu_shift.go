/*
 * D17B/D37C - shift and rotate family
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

package cpu

import "github.com/nscguidance/d17b/emu/word"

// execShift dispatches the eight shift/rotate sub-opcodes (0x08..0x0F,
// two of them mode-overloaded), decoded from the high 4 bits of the
// sector field; the low 3 bits give the shift count, with 0 meaning 8.
func (cpu *CPU) execShift(f instrFields) {
	subOp := (f.sec >> 3) & 0x1F
	count := f.sec & 0x7
	if count == 0 {
		count = 8
	}

	hi := (cpu.A >> 12) & word.LaneMask
	lo := cpu.A & word.LaneMask

	switch subOp {
	case SubSAL:
		hi = (hi << count) & word.LaneMask
		lo = (lo << count) & word.LaneMask
		cpu.A = word.PackLanes(hi, lo)
	case SubALS:
		cpu.A = (cpu.A << count) & word.WordMask
	case SubSLL:
		hi = (hi << count) & word.LaneMask
		cpu.A = word.PackLanes(hi, lo)
	case SubSRL:
		if cpu.D37CMode {
			cpu.A = rotateLeft24(cpu.A, count)
		} else {
			lo = (lo << count) & word.LaneMask
			cpu.A = word.PackLanes(hi, lo)
		}
	case SubSAR:
		hi >>= count
		lo >>= count
		cpu.A = word.PackLanes(hi, lo)
	case SubARS:
		cpu.A >>= count
	case SubSLR:
		hi >>= count
		cpu.A = word.PackLanes(hi, lo)
	case SubSRR:
		if cpu.D37CMode {
			cpu.A = rotateRight24(cpu.A, count)
		} else {
			lo >>= count
			cpu.A = word.PackLanes(hi, lo)
		}
	default:
		// Unassigned sub-opcode: no operation. This also covers COA
		// (0x10): spec.md's own decode formula, sub_op = (S>>3)&0x1F
		// over a 7-bit S, can only produce 0x00..0x0F, so 0x10 is
		// outside the reachable range — the same dead case, with the
		// same unimplemented-output TODO, appears verbatim in
		// original_source/src/d17b.c's d17b_exec_shift.
	}
}

func rotateLeft24(v uint32, count uint8) uint32 {
	v &= word.WordMask
	return ((v << count) | (v >> (24 - count))) & word.WordMask
}

func rotateRight24(v uint32, count uint8) uint32 {
	v &= word.WordMask
	return ((v >> count) | (v << (24 - count))) & word.WordMask
}
