/*
 * VM64 - Device helper tests.
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

package device

import "testing"

// Addresses split back into id and local part.
func TestAddress(t *testing.T) {
	tests := []struct {
		id    uint16
		local uint64
	}{
		{0, 0},
		{3, 0},
		{5, 0x123456789},
		{MaxID, LocalMask},
	}
	for _, test := range tests {
		addr := Address(test.id, test.local)
		id, local := Split(addr)
		if id != test.id || local != test.local {
			t.Errorf("Split %016x got: %03x %x wanted: %03x %x", addr, id, local, test.id, test.local)
		}
	}
	if Address(3, 0) != 3<<52 {
		t.Errorf("Address of device 3 got: %016x wanted: %016x", Address(3, 0), uint64(3)<<52)
	}
}

// Local part is masked.
func TestAddressMask(t *testing.T) {
	addr := Address(1, ^uint64(0))
	if id, _ := Split(addr); id != 1 {
		t.Errorf("Local overflowed into id got: %03x wanted: %03x", id, 1)
	}
}
