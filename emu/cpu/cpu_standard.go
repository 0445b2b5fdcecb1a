/*
 * D17B/D37C - instruction execution units
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

// execArithmetic handles the CLA/ADD/SUB/SAD/SSU/SMP/MPY/DIV-MPM/STO
// family (every primary opcode not claimed by shift, SCL, special, or
// a transfer). Flag store applies to this whole family; per spec.md
// §4.5/§8 invariant 5 it captures A AFTER the main effect, so it runs
// after the opcode switch rather than before it as the reference's
// d17b_exec_arithmetic does.
func (cpu *CPU) execArithmetic(f instrFields) {
	operand := cpu.Mem.Read(f.ch, f.sec)

	switch f.opcode {
	case OpCLA:
		cpu.A = operand
	case OpADD:
		cpu.A = word.Add(cpu.A, operand)
	case OpSUB:
		cpu.A = word.Sub(cpu.A, operand)
	case OpSAD:
		cpu.A = word.SplitAdd(cpu.A, operand)
	case OpSSU:
		cpu.A = word.SplitSub(cpu.A, operand)
	case OpMPY:
		cpu.multiply(operand, false)
	case OpSMP:
		cpu.multiply(operand, true)
	case OpDivMPM:
		if cpu.D37CMode {
			cpu.divide(operand)
		} else {
			cpu.A &= word.MagMask
			cpu.multiply(operand&word.MagMask, false)
		}
	case OpSTO:
		cpu.Mem.Write(f.ch, f.sec, cpu.A)
	default:
		// opUnused (3): no operation, but flag store below still runs.
	}

	if f.flag {
		cpu.flagStore(flagCode(f.sec), f.sec)
	}
}

// multiply computes A * operand into the A:L pair. split reduces both
// operands to their signed 10-bit form (bits 22..14 plus sign) before
// multiplying, per SMP.
func (cpu *CPU) multiply(operand uint32, split bool) {
	a := word.ToSigned(cpu.A)
	b := word.ToSigned(operand)
	if split {
		a = word.SplitMultiplyOperand(cpu.A)
		b = word.SplitMultiplyOperand(operand)
	}

	product := int64(a) * int64(b)
	neg := product < 0
	if neg {
		product = -product
	}

	cpu.A = uint32((product>>23)&int64(word.MagMask)) & word.MagMask
	cpu.Mem.L = uint32(product&int64(word.MagMask)) & word.MagMask
	if neg {
		cpu.A |= word.SignBit
	}
}

// divide computes the 46-bit A:L dividend by operand, leaving the
// quotient in A and the remainder in L. D37C only; the D17B dispatches
// MPM for this opcode slot instead.
func (cpu *CPU) divide(operand uint32) {
	if word.IsZero(operand) {
		cpu.Error = true
		return
	}

	dividendNeg := cpu.A&word.SignBit != 0
	divisorNeg := operand&word.SignBit != 0
	quotientNeg := dividendNeg != divisorNeg

	dividend := (uint64(cpu.A&word.MagMask) << 23) | uint64(cpu.Mem.L&word.MagMask)
	divisor := uint64(operand & word.MagMask)

	quotient := dividend / divisor
	remainder := dividend % divisor

	if quotient > uint64(word.MaxMag) {
		cpu.Error = true
		quotient = uint64(word.MaxMag)
	}

	cpu.A = uint32(quotient) & word.MagMask
	if quotientNeg && quotient != 0 {
		cpu.A |= word.SignBit
	}

	cpu.Mem.L = uint32(remainder) & word.MagMask
	if dividendNeg && remainder != 0 {
		cpu.Mem.L |= word.SignBit
	}
}

// flagCode extracts the raw 3-bit flag-store destination code from the
// low bits of the operand sector field.
func flagCode(sec uint8) uint8 {
	return sec & 0x7
}

// flagStore writes A to the destination named by code, alongside normal
// instruction execution, per spec.md §4.1 and DESIGN.md's Open
// Question #1 resolution (raw 3-bit dispatch, not the doubled/octal
// display value).
func (cpu *CPU) flagStore(code uint8, sec uint8) {
	switch code {
	case flagNone:
	case flagFLoop:
		cpu.Mem.F[sec&0x3] = cpu.A
	case flagTelemetry:
		cpu.TelemetryPulses++
	case flagChan50:
		cpu.Mem.Write(0x28, (sec-2)&0x7F, cpu.A)
	case flagELoop:
		cpu.Mem.E[sec&0x7] = cpu.A
	case flagL:
		cpu.Mem.L = cpu.A
	case flagHLoop:
		cpu.Mem.H[sec&0xF] = cpu.A
	case flagU:
		cpu.Mem.U = cpu.A
	}
}

// execSCL implements the split compare-and-limit opcode: each 12-bit
// lane of A is clamped into [-|operand lane|, +|operand lane|].
func (cpu *CPU) execSCL(f instrFields) {
	operand := cpu.Mem.Read(f.ch, f.sec)
	cpu.A = word.SplitCompareLimit(cpu.A, operand)
}

// execTmiTze dispatches opcode 2: TZE under D37C (branch if A is zero,
// magnitude-only), TMI under D17B (branch if A is negative).
func (cpu *CPU) execTmiTze(f instrFields) bool {
	var take bool
	if cpu.D37CMode {
		take = word.IsZero(cpu.A)
	} else {
		take = cpu.A&word.SignBit != 0
	}
	if take {
		cpu.I = locationOf(f.ch, f.sec)
	}
	return take
}

// execTMI implements opcode 6: branch if A is negative, in both modes.
func (cpu *CPU) execTMI(f instrFields) bool {
	if cpu.A&word.SignBit != 0 {
		cpu.I = locationOf(f.ch, f.sec)
		return true
	}
	return false
}

// execTRA implements the unconditional transfer.
func (cpu *CPU) execTRA(f instrFields) bool {
	cpu.I = locationOf(f.ch, f.sec)
	return true
}
