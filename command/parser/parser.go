/*
 * D17B/D37C - Command parser.
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

// Package parser implements the interactive shell grammar: prefix
// matched commands over a running CPU.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/nscguidance/d17b/emu/cpu"
	"github.com/nscguidance/d17b/emu/disassemble"
	"github.com/nscguidance/d17b/util/octal"
)

type cmd struct {
	Name     string
	Min      int
	Process  func(*cmdLine, *cpu.CPU) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{Name: "step", Min: 1, Process: cmdStep},
	{Name: "run", Min: 1, Process: cmdRun},
	{Name: "dump", Min: 1, Process: cmdDump},
	{Name: "memory", Min: 1, Process: cmdMemory},
	{Name: "load", Min: 1, Process: cmdLoad},
	{Name: "quit", Min: 1, Process: cmdQuit},
}

// ProcessCommand executes one shell line against cpu, returning true
// if the shell should exit.
func ProcessCommand(commandLine string, c *cpu.CPU) (bool, error) {
	line := cmdLine{line: commandLine}
	word := line.getWord()
	if word == "" {
		return false, nil
	}

	match := matchList(word)
	if len(match) == 0 {
		return false, errors.New("command not found: " + word)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + word)
	}
	return match[0].Process(&line, c)
}

// CompleteCmd returns full command names that prefix-match the word
// being typed, for the reader's tab completer.
func CompleteCmd(line string) []string {
	var out []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, strings.ToLower(line)) {
			out = append(out, m.Name)
		}
	}
	return out
}

func matchCommand(m cmd, word string) bool {
	if len(word) > len(m.Name) || len(word) < m.Min {
		return false
	}
	return m.Name[:len(word)] == word
}

func matchList(word string) []cmd {
	if word == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, word) {
			match = append(match, m)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// getOctal parses an unsigned octal number, defaulting to def when no
// token remains on the line.
func (line *cmdLine) getOctal(def uint32) (uint32, error) {
	word := line.getWord()
	if word == "" {
		return def, nil
	}
	var value uint32
	for _, ch := range word {
		if ch < '0' || ch > '7' {
			return 0, fmt.Errorf("not an octal number: %q", word)
		}
		value = value*8 + uint32(ch-'0')
	}
	return value, nil
}

func cmdStep(line *cmdLine, c *cpu.CPU) (bool, error) {
	n, err := line.getOctal(1)
	if err != nil {
		return false, err
	}
	for i := uint32(0); i < n; i++ {
		if !c.Step() {
			break
		}
	}
	printState(c)
	return false, nil
}

func cmdRun(line *cmdLine, c *cpu.CPU) (bool, error) {
	n, err := line.getOctal(0)
	if err != nil {
		return false, err
	}
	if n == 0 {
		n = 1_000_000
	}
	c.Run(uint64(n))
	printState(c)
	return false, nil
}

// cmdDump prints a full state snapshot: registers, loops, and I/O
// latches, per SPEC_FULL.md §6.5. Bulk memory is not included; the
// "memory" command displays it.
func cmdDump(_ *cmdLine, c *cpu.CPU) (bool, error) {
	s := c.Dump()
	mode := "D17B"
	if s.D37CMode {
		mode = "D37C"
	}
	fmt.Printf("A=%s  L=%s  N=%s  I=%s  P=%o\n", octal.Word(s.A), octal.Word(s.L), octal.Word(s.N),
		octal.Location(cpu.ChannelOf(s.I), cpu.SectorOf(s.I)), s.P)
	fmt.Printf("mode=%s halted=%v error=%v cycles=%d current_sector=%o\n", mode, s.Halted, s.Error, s.CycleCount, s.CurrentSector)

	var b strings.Builder
	fmt.Printf("U=%s\n", octal.Word(s.U))
	octal.FormatWord(&b, s.F[:])
	fmt.Println("F: " + strings.TrimSpace(b.String()))
	b.Reset()
	octal.FormatWord(&b, s.E[:])
	fmt.Println("E: " + strings.TrimSpace(b.String()))
	b.Reset()
	octal.FormatWord(&b, s.H[:])
	fmt.Println("H: " + strings.TrimSpace(b.String()))
	b.Reset()
	octal.FormatWord(&b, s.V[:])
	fmt.Println("V: " + strings.TrimSpace(b.String()))
	b.Reset()
	octal.FormatWord(&b, s.R[:])
	fmt.Println("R: " + strings.TrimSpace(b.String()))

	fmt.Printf("discrete_in=%o,%o discrete_out=%o voltage_out=%v binary_out=%v\n",
		s.DiscreteInA, s.DiscreteInB, s.DiscreteOutA, s.VoltageOut, s.BinaryOut)
	fmt.Printf("detector=%v fine_countdown=%d countdown_enabled=%v\n", s.Detector, s.FineCountdown, s.CountdownEnabled)
	fmt.Printf("telemetry_pulses=%d\n", s.TelemetryPulses)
	return false, nil
}

// cmdMemory displays 8 words of main memory starting at (CH, SEC),
// octal, per SPEC_FULL.md §6.5's "m CH SEC" command, disassembling each
// word since the dumped channel is typically instruction memory.
func cmdMemory(line *cmdLine, c *cpu.CPU) (bool, error) {
	ch, err := line.getOctal(uint32(cpu.ChannelOf(c.I)))
	if err != nil {
		return false, err
	}
	sec, err := line.getOctal(uint32(cpu.SectorOf(c.I)))
	if err != nil {
		return false, err
	}
	for i := uint32(0); i < 8; i++ {
		s := uint8((sec + i) % 128)
		w := c.Mem.Read(uint8(ch), s)
		fmt.Printf("%s: %s  %s\n", octal.Location(uint8(ch), s), octal.Word(w), disassemble.Disassemble(w, c.D37CMode))
	}
	return false, nil
}

// cmdLoad sets I from a single packed octal address, matching
// original_source's "I = addr<<2": addr packs channel in its high bits
// and sector in its low bits, the same way I packs them before the
// trailing 2 zero bits.
func cmdLoad(line *cmdLine, c *cpu.CPU) (bool, error) {
	addr, err := line.getOctal(0)
	if err != nil {
		return false, err
	}
	i := addr << 2
	c.SetLocation(cpu.ChannelOf(i), cpu.SectorOf(i))
	return false, nil
}

func cmdQuit(_ *cmdLine, _ *cpu.CPU) (bool, error) {
	return true, nil
}

func printState(c *cpu.CPU) {
	ch, sec := cpu.ChannelOf(c.I), cpu.SectorOf(c.I)
	fmt.Printf("A=%s  I=%s  cycles=%d  halted=%v\n", octal.Word(c.A), octal.Location(ch, sec), c.CycleCount, c.Halted)
}
