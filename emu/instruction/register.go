/*
 * VM64 - Register file names.
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

package instruction

import (
	"strconv"
	"strings"
)

// Index into the register file.
type Register uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	RIP   // Instruction pointer
	RSP   // Stack pointer
	RBP   // Base pointer
	RSIP  // Saved instruction pointer during interrupt
	RIDA  // Interrupt data 1
	RIDB  // Interrupt data 2
	RIT   // Interrupt type
	RT0   // Scratch registers
	RT1
	RT2
	RT3
	RT4
	RT5
	RZERO // Always 0
	RONE  // Always 1
	RMAX  // Always all ones

	NumRegisters = 32
)

var specialNames = map[Register]string{
	RIP:   "RIP",
	RSP:   "RSP",
	RBP:   "RBP",
	RSIP:  "RSIP",
	RIDA:  "RIDA",
	RIDB:  "RIDB",
	RIT:   "RIT",
	RT0:   "RT0",
	RT1:   "RT1",
	RT2:   "RT2",
	RT3:   "RT3",
	RT4:   "RT4",
	RT5:   "RT5",
	RZERO: "RZERO",
	RONE:  "RONE",
	RMAX:  "RMAX",
}

var registerNames = map[string]Register{}

func init() {
	for r := range Register(NumRegisters) {
		registerNames[r.String()] = r
	}
}

// Canonical register name.
func (r Register) String() string {
	if r < 16 {
		return "R" + strconv.Itoa(int(r))
	}
	if name, ok := specialNames[r]; ok {
		return name
	}
	return "R?" + strconv.Itoa(int(r))
}

// Constant registers ignore writes.
func (r Register) ReadOnly() bool {
	return r == RZERO || r == RONE || r == RMAX
}

// Find register from name, case is ignored.
func RegisterByName(name string) (Register, bool) {
	r, ok := registerNames[strings.ToUpper(name)]
	return r, ok
}
