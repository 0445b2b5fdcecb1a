/*
 * D17B/D37C - instruction disassembler
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

// Package disassemble renders a 24-bit D17B/D37C instruction word as
// mnemonic text, per the opcode table in spec.md §6.
package disassemble

import "fmt"

type opcode struct {
	d17bName string
	d37cName string
}

// opMap keys on the primary 4-bit opcode. Entries where the two modes
// print the same mnemonic repeat the name in both fields.
var opMap = map[int]opcode{
	0x0: {"SHIFT", "SHIFT"},
	0x1: {"SCL", "SCL"},
	0x2: {"TMI", "TZE"},
	0x3: {"?", "?"},
	0x4: {"SMP", "SMP"},
	0x5: {"MPY", "MPY"},
	0x6: {"TMI", "TMI"},
	0x7: {"MPM", "DIV"},
	0x8: {"SPEC", "SPEC"},
	0x9: {"CLA", "CLA"},
	0xA: {"TRA", "TRA"},
	0xB: {"STO", "STO"},
	0xC: {"SAD", "SAD"},
	0xD: {"ADD", "ADD"},
	0xE: {"SSU", "SSU"},
	0xF: {"SUB", "SUB"},
}

// Disassemble formats a 24-bit instruction word as "NAME[*] CC,SSS",
// where CC and SSS are the channel and sector fields in octal and the
// trailing "*" marks an instruction with the flag-store bit set. d37c
// selects which of the two opcode-2/7 mnemonics is printed.
func Disassemble(w uint32, d37c bool) string {
	op := int((w >> 20) & 0xF)
	flag := (w>>19)&0x1 != 0
	ch := (w >> 9) & 0x3F
	sec := (w >> 2) & 0x7F

	entry, ok := opMap[op]
	if !ok {
		return fmt.Sprintf("?%X", op)
	}
	name := entry.d17bName
	if d37c {
		name = entry.d37cName
	}
	if flag {
		name += "*"
	}
	return fmt.Sprintf("%-6s %02o,%03o", name, ch, sec)
}
