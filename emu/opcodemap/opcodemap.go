/*
 * VM64 - Opcode definitions.
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

import "strings"

const (
	// Basic instructions.
	OpHLT  = 0x00 // Wait for interrupt
	OpNOP  = 0x01 // No operation
	OpINT  = 0x02 // type, data1, data2
	OpEINT = 0x03 // Return from interrupt
	OpINTE = 0x04 // Enable interrupts
	OpINTD = 0x05 // Disable interrupts
	OpXCHG = 0x06 // a <-> b
	OpCAS  = 0x07 // target, compare, new
	OpSET  = 0x08 // dest = src
	OpCALL = 0x09 // push IP, IP = target
	OpRET  = 0x0A // IP = pop
	OpCPY  = 0x0B // dest, src, count

	// Integer arithmetic, dest = a op b.
	OpADD = 0x10
	OpSUB = 0x11
	OpMUL = 0x12
	OpDIV = 0x13
	OpMOD = 0x14

	// Floating point arithmetic on IEEE doubles.
	OpADDF = 0x18
	OpSUBF = 0x19
	OpMULF = 0x1A
	OpDIVF = 0x1B
	OpMODF = 0x1C

	// Bitwise and shifts.
	OpAND  = 0x20
	OpOR   = 0x21
	OpXOR  = 0x22
	OpNAND = 0x23
	OpNOR  = 0x24
	OpNXOR = 0x25
	OpNOT  = 0x26 // dest = ^src
	OpSR   = 0x27 // dest = value >> amount
	OpSL   = 0x28 // dest = value << amount
	OpRR   = 0x29 // rotate right
	OpRL   = 0x2A // rotate left

	// Compares, result is all ones or zero.
	OpGT  = 0x30
	OpGTE = 0x31
	OpLT  = 0x32
	OpLTE = 0x33
	OpEQ  = 0x34
	OpNEQ = 0x35

	// Debug.
	OpDBG = 0xF0 // Host debug callback
	OpBRK = 0xF1 // Break to host
)

// Operand direction.
type Direction uint8

const (
	Read  Direction = 1 << iota // Operand is loaded before execution
	Write                       // Operand is stored if changed

	RW = Read | Write
)

// Static information about one opcode.
type Definition struct {
	Name   string      // Mnemonic.
	Opcode uint8       // Opcode value.
	Params []Direction // Direction of each operand.
}

// Number of operands.
func (def *Definition) Count() int {
	return len(def.Params)
}

// Return true if operand n is read.
func (def *Definition) Reads(n int) bool {
	return n < len(def.Params) && (def.Params[n]&Read) != 0
}

// Return true if operand n is written.
func (def *Definition) Writes(n int) bool {
	return n < len(def.Params) && (def.Params[n]&Write) != 0
}

var (
	none  = []Direction{}
	wrr   = []Direction{Write, Read, Read}
	wr    = []Direction{Write, Read}
	rrr   = []Direction{Read, Read, Read}
	one   = []Direction{Read}
	swap  = []Direction{RW, RW}
	cas   = []Direction{RW, RW, Read}
	table [256]*Definition
	names = map[string]*Definition{}
)

var definitions = []Definition{
	{"HLT", OpHLT, none},
	{"NOP", OpNOP, none},
	{"INT", OpINT, rrr},
	{"EINT", OpEINT, none},
	{"INTE", OpINTE, none},
	{"INTD", OpINTD, none},
	{"XCHG", OpXCHG, swap},
	{"CAS", OpCAS, cas},
	{"SET", OpSET, wr},
	{"CALL", OpCALL, one},
	{"RET", OpRET, none},
	{"CPY", OpCPY, rrr},
	{"ADD", OpADD, wrr},
	{"SUB", OpSUB, wrr},
	{"MUL", OpMUL, wrr},
	{"DIV", OpDIV, wrr},
	{"MOD", OpMOD, wrr},
	{"ADDF", OpADDF, wrr},
	{"SUBF", OpSUBF, wrr},
	{"MULF", OpMULF, wrr},
	{"DIVF", OpDIVF, wrr},
	{"MODF", OpMODF, wrr},
	{"AND", OpAND, wrr},
	{"OR", OpOR, wrr},
	{"XOR", OpXOR, wrr},
	{"NAND", OpNAND, wrr},
	{"NOR", OpNOR, wrr},
	{"NXOR", OpNXOR, wrr},
	{"NOT", OpNOT, wr},
	{"SR", OpSR, wrr},
	{"SL", OpSL, wrr},
	{"RR", OpRR, wrr},
	{"RL", OpRL, wrr},
	{"GT", OpGT, wrr},
	{"GTE", OpGTE, wrr},
	{"LT", OpLT, wrr},
	{"LTE", OpLTE, wrr},
	{"EQ", OpEQ, wrr},
	{"NEQ", OpNEQ, wrr},
	{"DBG", OpDBG, one},
	{"BRK", OpBRK, none},
}

// Alternate names for opcodes.
var aliases = map[string]string{
	"MOV": "SET",
}

func init() {
	for i := range definitions {
		def := &definitions[i]
		table[def.Opcode] = def
		names[def.Name] = def
	}
	for alias, name := range aliases {
		names[alias] = names[name]
	}
}

// Find definition of opcode.
func Lookup(op uint8) (*Definition, bool) {
	def := table[op]
	return def, def != nil
}

// Find definition by mnemonic, case is ignored.
func ByMnemonic(name string) (*Definition, bool) {
	def, ok := names[strings.ToUpper(name)]
	return def, ok
}

// Return list of all definitions in opcode order.
func All() []*Definition {
	list := make([]*Definition, 0, len(definitions))
	for _, def := range table {
		if def != nil {
			list = append(list, def)
		}
	}
	return list
}
