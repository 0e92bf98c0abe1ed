/*
 * VM64 - Opcode definition tests.
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

package opcodemap

import "testing"

// Every mnemonic maps back to its own opcode.
func TestLookup(t *testing.T) {
	for _, def := range All() {
		d, ok := Lookup(def.Opcode)
		if !ok || d.Name != def.Name {
			t.Errorf("Lookup %02x got: %v wanted: %s", def.Opcode, d, def.Name)
		}
		m, ok := ByMnemonic(def.Name)
		if !ok || m.Opcode != def.Opcode {
			t.Errorf("ByMnemonic %s got: %v wanted: %02x", def.Name, m, def.Opcode)
		}
		if def.Count() > 3 {
			t.Errorf("Opcode %s has too many operands: %d", def.Name, def.Count())
		}
	}
}

// Undefined opcodes have no definition.
func TestUndefined(t *testing.T) {
	for _, op := range []uint8{0x0c, 0x15, 0x40, 0xff} {
		if _, ok := Lookup(op); ok {
			t.Errorf("Opcode %02x should not be defined", op)
		}
	}
}

// MOV is another name for SET, case does not matter.
func TestAlias(t *testing.T) {
	def, ok := ByMnemonic("mov")
	if !ok || def.Opcode != OpSET {
		t.Errorf("MOV alias got: %v wanted: %02x", def, OpSET)
	}
	if !def.Writes(0) || def.Reads(0) || !def.Reads(1) {
		t.Errorf("SET directions incorrect")
	}
}
