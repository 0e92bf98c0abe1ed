/*
 * VM64 - Hex formatting routines.
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

package hex

import "strings"

var hexMap = "0123456789ABCDEF"

// Write full 16 digit words each followed by a space.
func FormatWords(str *strings.Builder, words []uint64) {
	for _, word := range words {
		FormatWord(str, word)
		str.WriteByte(' ')
	}
}

// Write one word as 16 hex digits.
func FormatWord(str *strings.Builder, word uint64) {
	shift := 60
	for range 16 {
		str.WriteByte(hexMap[(word>>shift)&0xf])
		shift -= 4
	}
}

// Write address as device id and local address.
func FormatAddr(str *strings.Builder, addr uint64) {
	shift := 60
	for i := range 16 {
		if i == 3 {
			str.WriteByte(':')
		}
		str.WriteByte(hexMap[(addr>>shift)&0xf])
		shift -= 4
	}
}

// Write printable characters of word, low byte first.
func FormatChars(str *strings.Builder, words []uint64) {
	for _, word := range words {
		for range 8 {
			by := byte(word)
			if by < 0x20 || by > 0x7e {
				by = '.'
			}
			str.WriteByte(by)
			word >>= 8
		}
	}
}
