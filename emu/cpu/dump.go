/*
 * D17B/D37C - State-snapshot introspection
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

// Snapshot is an immutable copy of every register, loop, and I/O latch
// named in spec.md §3, for a host (the shell's "dump" command, or any
// other introspection front-end) to render without holding a reference
// into live CPU state.
type Snapshot struct {
	A, N, I uint32
	P       uint8

	Halted   bool
	Error    bool
	D37CMode bool

	U uint32
	L uint32
	F [4]uint32
	E [8]uint32
	H [16]uint32
	V [4]uint32
	R [4]uint32

	DiscreteInA  uint32
	DiscreteInB  uint32
	DiscreteOutA uint32
	VoltageOut   [4]int16
	BinaryOut    [4]uint8

	Detector         bool
	FineCountdown    uint32
	CountdownEnabled bool

	TelemetryPulses uint64

	CurrentSector uint32
	CycleCount    uint64
}

// Dump takes a snapshot of the current CPU state: registers, loops, and
// I/O latches. Bulk memory is not part of the snapshot.
func (cpu *CPU) Dump() Snapshot {
	return Snapshot{
		A: cpu.A, N: cpu.N, I: cpu.I, P: cpu.P,

		Halted:   cpu.Halted,
		Error:    cpu.Error,
		D37CMode: cpu.D37CMode,

		U: cpu.Mem.U,
		L: cpu.Mem.L,
		F: cpu.Mem.F,
		E: cpu.Mem.E,
		H: cpu.Mem.H,
		V: cpu.Mem.V,
		R: cpu.Mem.R,

		DiscreteInA:  cpu.DiscreteInA,
		DiscreteInB:  cpu.DiscreteInB,
		DiscreteOutA: cpu.DiscreteOutA,
		VoltageOut:   cpu.VoltageOut,
		BinaryOut:    cpu.BinaryOut,

		Detector:         cpu.Detector,
		FineCountdown:    cpu.FineCountdown,
		CountdownEnabled: cpu.CountdownEnabled,

		TelemetryPulses: cpu.TelemetryPulses,

		CurrentSector: cpu.CurrentSector,
		CycleCount:    cpu.CycleCount,
	}
}
