/*
 * D17B/D37C - CPU state definitions
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

import "github.com/nscguidance/d17b/emu/memory"

// Primary 4-bit opcodes, per spec.md §4.1 and the disassembly table of
// spec.md §6.
const (
	OpShift   uint8 = 0x0 // Shift/rotate family
	OpSCL     uint8 = 0x1 // Split compare and limit
	OpTmiTze  uint8 = 0x2 // TMI (D17B) / TZE (D37C)
	opUnused  uint8 = 0x3 // Unassigned
	OpSMP     uint8 = 0x4 // Split multiply
	OpMPY     uint8 = 0x5 // Multiply
	OpTMI     uint8 = 0x6 // Transfer on minus (both modes)
	OpDivMPM  uint8 = 0x7 // DIV (D37C) / MPM (D17B)
	OpSpecial uint8 = 0x8 // Special/IO family
	OpCLA     uint8 = 0x9 // Clear and add
	OpTRA     uint8 = 0xA // Transfer (unconditional)
	OpSTO     uint8 = 0xB // Store accumulator
	OpSAD     uint8 = 0xC // Split add
	OpADD     uint8 = 0xD // Add
	OpSSU     uint8 = 0xE // Split subtract
	OpSUB     uint8 = 0xF // Subtract
)

// Shift/rotate sub-opcodes (primary opcode OpShift), decoded from
// (sector>>3)&0x1F, per spec.md §4.6. 0x0B and 0x0F are mode-overloaded:
// D17B reads them as SRL/SRR, D37C reads them as ALC/ARC.
const (
	SubSAL uint8 = 0x08 // Split left  (both lanes, truncating)
	SubALS uint8 = 0x09 // Left shift, full 24 bits
	SubSLL uint8 = 0x0A // Left shift, high lane only
	SubSRL uint8 = 0x0B // D17B: left shift, low lane only
	SubALC uint8 = 0x0B // D37C: rotate left, full 24 bits
	SubSAR uint8 = 0x0C // Split right (logical, per lane)
	SubARS uint8 = 0x0D // Right shift, full 24 bits (logical)
	SubSLR uint8 = 0x0E // Right shift, high lane only
	SubSRR uint8 = 0x0F // D17B: right shift, low lane only
	SubARC uint8 = 0x0F // D37C: rotate right, full 24 bits

	// COA (character output, listed at sub_op 0x10 in spec.md's shift
	// table) is not assigned a constant here: (S>>3)&0x1F over a 7-bit
	// S can only produce 0x00..0x0F, so 0x10 is unreachable through the
	// documented decode, in this implementation and in
	// original_source/src/d17b.c alike.
)

// Special/IO sub-opcodes (primary opcode OpSpecial), decoded from
// (sector>>1)&0x3F, per spec.md §4.8.
const (
	SubBOC uint8 = 0x01 // Binary output C
	SubBOA uint8 = 0x04 // Binary output A
	SubBOB uint8 = 0x05 // Binary output B
	SubRSD uint8 = 0x08 // Reset detector
	SubHPR uint8 = 0x09 // Halt and proceed
	SubDOA uint8 = 0x0B // Discrete output A
	SubVOA uint8 = 0x0C // Voltage output A
	SubVOB uint8 = 0x0D // Voltage output B
	SubVOC uint8 = 0x0E // Voltage output C
	SubORA uint8 = 0x10 // OR to accumulator (D37C only)
	SubANA uint8 = 0x11 // AND to accumulator
	SubMIM uint8 = 0x12 // Set sign (minus magnitude)
	SubCOM uint8 = 0x13 // Complement sign
	SubDIB uint8 = 0x14 // Discrete input B
	SubDIA uint8 = 0x15 // Discrete input A
	SubHFC uint8 = 0x18 // Halt fine countdown
	SubEFC uint8 = 0x19 // Enable fine countdown
	SubLPR uint8 = 0x1E // Load phase register
)

// Flag-store raw codes (sector&0x7), per the resolution recorded in
// SPEC_FULL.md §4.1 and DESIGN.md's Open Question #1.
const (
	flagNone      uint8 = 0
	flagFLoop     uint8 = 1
	flagTelemetry uint8 = 2
	flagChan50    uint8 = 3
	flagELoop     uint8 = 4
	flagL         uint8 = 5
	flagHLoop     uint8 = 6
	flagU         uint8 = 7
)

// Populated bulk-memory word count for each mode, per spec.md §3.
const (
	LimitD17B uint32 = 2944
	LimitD37C uint32 = 7222
)

// CPU is the single aggregate state object described by spec.md §3. It
// is mutated only by Step/Run; dump/disassemble observe it without
// mutation.
type CPU struct {
	A uint32 // primary accumulator
	N uint32 // reserved register, carried per spec.md's data model
	I uint32 // location register: channel<<9 | sector<<2
	P uint8  // phase register, 0..7

	Mem memory.Memory

	Halted   bool
	Error    bool
	D37CMode bool

	DiscreteInA  uint32
	DiscreteInB  uint32
	DiscreteOutA uint32
	VoltageOut   [4]int16
	BinaryOut    [4]uint8

	Detector         bool
	FineCountdown    uint32
	CountdownEnabled bool

	// Observable sink for the flag-store code 2 boundary stub (printed
	// "04"), per SPEC_FULL.md §3.
	TelemetryPulses uint64

	CurrentSector uint32
	CycleCount    uint64

	table [16]func(cpu *CPU, f instrFields) bool
}

// instrFields holds the decoded fields of one 24-bit instruction word,
// per spec.md §4.1. Named after the teacher's stepInfo.
type instrFields struct {
	opcode uint8
	flag   bool
	sp     uint8
	ch     uint8
	sec    uint8
}

func decode(w uint32) instrFields {
	return instrFields{
		opcode: uint8((w >> 20) & 0xF),
		flag:   (w>>19)&0x1 != 0,
		sp:     uint8((w >> 15) & 0xF),
		ch:     uint8((w >> 9) & 0x3F),
		sec:    uint8((w >> 2) & 0x7F),
	}
}

// locationOf packs a (channel, sector) pair into the I-register encoding.
func locationOf(ch, sec uint8) uint32 {
	return (uint32(ch) << 9) | (uint32(sec) << 2)
}

// channelOf / sectorOf unpack the I-register encoding.
func channelOf(i uint32) uint8 { return uint8((i >> 9) & 0x3F) }
func sectorOf(i uint32) uint8  { return uint8((i >> 2) & 0x7F) }

// ChannelOf and SectorOf expose the same unpacking for callers outside
// the package (the shell and disassembly dump).
func ChannelOf(i uint32) uint8 { return channelOf(i) }
func SectorOf(i uint32) uint8  { return sectorOf(i) }

// SetLocation points the I register at (ch, sec) without executing an
// instruction, for the shell's "load" command.
func (cpu *CPU) SetLocation(ch, sec uint8) {
	cpu.I = locationOf(ch, sec)
}
