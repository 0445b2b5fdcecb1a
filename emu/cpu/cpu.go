/*
 * D17B/D37C - CPU core: construction, decode, sequencer
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

// Package cpu implements the D17B/D37C instruction decoder, execution
// units, and the rotating-disc sequencer that drives them.
package cpu

// New builds a CPU in its reset state for the given mode. d37c selects
// the D37C (Minuteman II/III) instruction overlay and its larger
// populated memory; false selects the plain D17B.
func New(d37c bool) *CPU {
	cpu := &CPU{D37CMode: d37c}
	cpu.createTable()
	if d37c {
		cpu.Mem.Limit = LimitD37C
	} else {
		cpu.Mem.Limit = LimitD17B
	}
	cpu.Reset()
	return cpu
}

// Reset clears registers, loops, I/O latches, and the disc position.
// D37CMode persists across Reset, per spec.md §3 — it is a construction
// time machine parameter, not emulated state that a reset should touch.
func (cpu *CPU) Reset() {
	cpu.A = 0
	cpu.N = 0
	cpu.I = 0
	cpu.P = 0

	cpu.Mem.Reset()

	cpu.Halted = false
	cpu.Error = false

	cpu.DiscreteInA = 0
	cpu.DiscreteInB = 0
	cpu.DiscreteOutA = 0
	cpu.VoltageOut = [4]int16{}
	cpu.BinaryOut = [4]uint8{}

	cpu.Detector = false
	cpu.FineCountdown = 0
	cpu.CountdownEnabled = false

	cpu.TelemetryPulses = 0

	cpu.CurrentSector = 0
	cpu.CycleCount = 0
}

// createTable builds the primary-opcode dispatch table, following the
// teacher's createTable pattern of assigning one handler per opcode
// slot, with shared handlers reused across an instruction family.
func (cpu *CPU) createTable() {
	cpu.table = [16]func(*CPU, instrFields) bool{
		OpShift:   noJump((*CPU).execShift),
		OpSCL:     noJump((*CPU).execSCL),
		OpTmiTze:  (*CPU).execTmiTze,
		opUnused:  noJump((*CPU).execArithmetic),
		OpSMP:     noJump((*CPU).execArithmetic),
		OpMPY:     noJump((*CPU).execArithmetic),
		OpTMI:     (*CPU).execTMI,
		OpDivMPM:  noJump((*CPU).execArithmetic),
		OpSpecial: noJump((*CPU).execSpecial),
		OpCLA:     noJump((*CPU).execArithmetic),
		OpTRA:     (*CPU).execTRA,
		OpSTO:     noJump((*CPU).execArithmetic),
		OpSAD:     noJump((*CPU).execArithmetic),
		OpADD:     noJump((*CPU).execArithmetic),
		OpSSU:     noJump((*CPU).execArithmetic),
		OpSUB:     noJump((*CPU).execArithmetic),
	}
}

// noJump adapts a handler that never transfers control into the
// dispatch table's (cpu, fields) bool signature.
func noJump(fn func(*CPU, instrFields)) func(*CPU, instrFields) bool {
	return func(cpu *CPU, f instrFields) bool {
		fn(cpu, f)
		return false
	}
}

// Step executes a single instruction cycle: fetch at I, decode,
// dispatch, and advance I and the disc position. It returns false once
// the CPU has halted.
func (cpu *CPU) Step() bool {
	if cpu.Halted {
		return false
	}

	ch := channelOf(cpu.I)
	sec := sectorOf(cpu.I)
	instr := cpu.Mem.Read(ch, sec)
	f := decode(instr)

	jumped := cpu.table[f.opcode](cpu, f)
	if !jumped {
		// The Sp field gives the low bits of the next sector on the
		// same channel; the emulator does not model disc rotation
		// delay, matching the reference implementation.
		cpu.I = locationOf(ch, f.sp)
	}

	cpu.CurrentSector = (cpu.CurrentSector + 1) & 0x7F
	cpu.CycleCount++

	if cpu.CountdownEnabled && cpu.FineCountdown > 0 {
		cpu.FineCountdown--
	}

	return !cpu.Halted
}

// Run steps the CPU until it halts or maxCycles instructions have
// executed, whichever comes first.
func (cpu *CPU) Run(maxCycles uint64) {
	start := cpu.CycleCount
	for !cpu.Halted && cpu.CycleCount-start < maxCycles {
		if !cpu.Step() {
			break
		}
	}
}
