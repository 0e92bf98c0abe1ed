/*
 * VM64 - Instruction disassembler.
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

package disassemble

import (
	"fmt"
	"strings"

	I "github.com/rcornwell/VM64/emu/instruction"
	op "github.com/rcornwell/VM64/emu/opcodemap"
)

/*
   Operand syntax:

      R3          Register.
      STK         Stack, pop on read, push on write.
      7           Literal held in the control word.
      0x1234      Literal held in a trailing word.
      (B+I*S-O)   Calculated address, each term may be negative.
      x+RBP       Relative to RIP, RSP or RBP.
      [x]         Indirect, value is address of operand.

   A condition is shown after the operands as IFZ x or IFNZ x.
*/

var relNames = map[I.RelativeTo]string{
	I.RelIP: "RIP",
	I.RelSP: "RSP",
	I.RelBP: "RBP",
}

// Text of one operand.
func Operand(p *I.Parameter) string {
	var s string
	switch p.Kind {
	case I.KindRegister:
		s = p.Register.String()
	case I.KindStack:
		s = "STK"
	case I.KindLiteral:
		if p.Embedded {
			s = fmt.Sprintf("%d", p.Literal)
		} else {
			s = fmt.Sprintf("0x%x", p.Literal)
		}
	case I.KindCalculated:
		s = calculated(p.Calculated)
	}
	if name, ok := relNames[p.Relative]; ok {
		s += "+" + name
	}
	if p.Indirect {
		s = "[" + s + "]"
	}
	return s
}

func calculated(c *I.Calculated) string {
	if c == nil {
		return "()"
	}
	s := "("
	if c.Base.Negative {
		s += "-"
	}
	s += Operand(&c.Base.Param)
	if c.Index != nil {
		s += sign(c.Index.Negative) + Operand(&c.Index.Param)
		if c.Scale != nil {
			s += "*"
			if c.Scale.Negative {
				s += "-"
			}
			s += Operand(&c.Scale.Param)
		}
	}
	if c.Offset != nil {
		s += sign(c.Offset.Negative) + Operand(&c.Offset.Param)
	}
	return s + ")"
}

func sign(negative bool) string {
	if negative {
		return "-"
	}
	return "+"
}

// Text of instruction.
func Format(inst *I.Instruction) string {
	def, ok := op.Lookup(inst.Opcode)
	if !ok {
		return fmt.Sprintf("???   %02x", inst.Opcode)
	}
	text := def.Name + "      "
	text = text[:6]
	params := make([]string, len(inst.Params))
	for i := range inst.Params {
		params[i] = Operand(&inst.Params[i])
	}
	text = strings.TrimRight(text+strings.Join(params, ","), " ")
	if inst.Cond != nil {
		if inst.When == I.WhenZero {
			text += " IFZ "
		} else {
			text += " IFNZ "
		}
		text += Operand(inst.Cond)
	}
	return text
}

// Disassemble instruction at addr, returning text and length.
func Disassemble(r I.WordReader, addr uint64) (string, uint64) {
	inst := I.Decode(r, addr)
	return Format(&inst), inst.Length
}

// Print instruction with its words in hex.
func PrintInst(r I.WordReader, addr uint64) (string, uint64) {
	text, length := Disassemble(r, addr)
	words := ""
	for i := range min(length, 3) {
		words += fmt.Sprintf("%016x ", r.ReadWord(addr+i))
	}
	if length > 3 {
		words += "... "
	}
	return fmt.Sprintf("%-55s %s", words, text), length
}
