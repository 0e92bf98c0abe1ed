/*
 * VM64 - Bit field packing into words.
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

package bitstream

// Fields are packed starting at bit 0 of the word and move towards bit 63.

// Writer packs fields into a word.
type Writer struct {
	word uint64
	pos  uint
}

// Reader unpacks fields from a word in the order they were written.
type Reader struct {
	word uint64
	pos  uint
}

func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func check(pos, width uint) {
	if width == 0 || width > 64 || pos+width > 64 {
		panic("bitstream: field overflows word")
	}
}

// Write value into next width bits, value is truncated to width.
func (w *Writer) Write(value uint64, width uint) {
	check(w.pos, width)
	w.word |= (value & mask(width)) << w.pos
	w.pos += width
}

// Write a single flag bit.
func (w *Writer) WriteBool(flag bool) {
	var v uint64
	if flag {
		v = 1
	}
	w.Write(v, 1)
}

// Skip leaves width bits as zero.
func (w *Writer) Skip(width uint) {
	check(w.pos, width)
	w.pos += width
}

// Word returns the packed word.
func (w *Writer) Word() uint64 {
	return w.word
}

// Pos returns number of bits used.
func (w *Writer) Pos() uint {
	return w.pos
}

// Create reader over word.
func NewReader(word uint64) *Reader {
	return &Reader{word: word}
}

// Read next width bits.
func (r *Reader) Read(width uint) uint64 {
	check(r.pos, width)
	v := (r.word >> r.pos) & mask(width)
	r.pos += width
	return v
}

// Read a flag bit.
func (r *Reader) ReadBool() bool {
	return r.Read(1) != 0
}

// Skip over width bits.
func (r *Reader) Skip(width uint) {
	check(r.pos, width)
	r.pos += width
}

// Pos returns number of bits consumed.
func (r *Reader) Pos() uint {
	return r.pos
}
