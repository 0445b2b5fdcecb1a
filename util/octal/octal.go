/*
 * D17B/D37C - Convert words, channels, and sectors to octal strings.
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

package octal

import "strings"

var octalMap = "01234567"

// FormatWord writes each 24-bit word as 8 octal digits, space separated.
func FormatWord(str *strings.Builder, words []uint32) {
	for _, w := range words {
		shift := 21
		for i := 0; i < 8; i++ {
			str.WriteByte(octalMap[(w>>shift)&0x7])
			shift -= 3
		}
		str.WriteByte(' ')
	}
}

// FormatChannel writes a 6-bit channel number as 2 octal digits.
func FormatChannel(str *strings.Builder, ch uint8) {
	str.WriteByte(octalMap[(ch>>3)&0x7])
	str.WriteByte(octalMap[ch&0x7])
}

// FormatSector writes a 7-bit sector number as 3 octal digits.
func FormatSector(str *strings.Builder, sec uint8) {
	str.WriteByte(octalMap[(sec>>6)&0x1])
	str.WriteByte(octalMap[(sec>>3)&0x7])
	str.WriteByte(octalMap[sec&0x7])
}

// Word formats a single 24-bit word as 8 octal digits.
func Word(w uint32) string {
	var b strings.Builder
	FormatWord(&b, []uint32{w})
	return strings.TrimSpace(b.String())
}

// Location formats a (channel, sector) pair as "CC,SSS".
func Location(ch, sec uint8) string {
	var b strings.Builder
	FormatChannel(&b, ch)
	b.WriteByte(',')
	FormatSector(&b, sec)
	return b.String()
}
