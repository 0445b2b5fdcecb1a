/*
 * D17B/D37C - special and I/O family
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

// execSpecial dispatches the opcode-8 special/IO family, decoded from
// bits 6..1 of the sector field.
func (cpu *CPU) execSpecial(f instrFields) {
	subOp := (f.sec >> 1) & 0x3F

	switch subOp {
	case SubORA:
		if cpu.D37CMode {
			cpu.A |= cpu.Mem.L
		}
	case SubANA:
		cpu.A &= cpu.Mem.L
	case SubMIM:
		cpu.A = word.MinusMagnitude(cpu.A)
	case SubCOM:
		cpu.A = word.Complement(cpu.A)
	case SubRSD:
		cpu.Detector = false
	case SubHPR:
		cpu.Halted = true
	case SubEFC:
		cpu.CountdownEnabled = true
	case SubHFC:
		cpu.CountdownEnabled = false
	case SubLPR, SubLPR + 1:
		cpu.P = f.sec & 0x7
	case SubDIA:
		cpu.A = cpu.DiscreteInA
	case SubDIB:
		cpu.A = cpu.DiscreteInB
	case SubDOA:
		cpu.DiscreteOutA = cpu.A
	case SubVOA:
		cpu.VoltageOut[0] = voltageOf(cpu.A)
	case SubVOB:
		cpu.VoltageOut[1] = voltageOf(cpu.A)
	case SubVOC:
		cpu.VoltageOut[2] = voltageOf(cpu.A)
	case SubBOA:
		cpu.BinaryOut[0] = uint8((cpu.A >> 22) & 0x3)
	case SubBOB:
		cpu.BinaryOut[1] = uint8((cpu.A >> 22) & 0x3)
	case SubBOC:
		cpu.BinaryOut[2] = uint8((cpu.A >> 22) & 0x3)
	default:
		// Unassigned sub-opcode: no operation.
	}
}

// voltageOf derives a DAC output sample from A, per the Open Question
// decision recorded in DESIGN.md: implemented exactly as specified,
// not embellished.
func voltageOf(a uint32) int16 {
	return int16(word.ToSigned(a >> 15))
}
