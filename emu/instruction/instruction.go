/*
 * VM64 - Instruction and operand model.
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

// Kind of operand.
type Kind uint8

const (
	KindRegister   Kind = iota // Register file entry
	KindStack                  // Pop on read, push on write
	KindLiteral                // Constant value
	KindCalculated             // Base +/- Index*Scale +/- Offset
)

// Register added to the resolved value of an operand.
type RelativeTo uint8

const (
	RelNone RelativeTo = iota
	RelIP
	RelSP
	RelBP
)

// Conditional predicate.
type Predicate uint8

const (
	WhenZero Predicate = iota
	WhenNotZero
)

// Largest literal that can be held in the control word.
const MaxEmbedded = 15

// Decoded operand.
type Parameter struct {
	Kind       Kind        // Kind of operand.
	Register   Register    // Register for KindRegister.
	Literal    uint64      // Value for KindLiteral.
	Embedded   bool        // Literal held in control word.
	Calculated *Calculated // Address expression for KindCalculated.
	Indirect   bool        // Resolved value is an address to read.
	Relative   RelativeTo  // Register to add before indirection.
}

// One term of a calculated address.
type Term struct {
	Param    Parameter
	Negative bool
}

// Calculated address Base + Index*Scale + Offset, each term signed.
type Calculated struct {
	Base   Term
	Index  *Term
	Scale  *Term
	Offset *Term
}

// Decoded instruction.
type Instruction struct {
	Opcode uint8       // Opcode.
	Params []Parameter // Operands.
	Cond   *Parameter  // Optional conditional operand.
	When   Predicate   // Condition to execute.
	Length uint64      // Words consumed from stream.
}

// Check if condition allows instruction to execute.
func (inst *Instruction) Gate(value uint64) bool {
	if inst.When == WhenZero {
		return value == 0
	}
	return value != 0
}

// Reg returns a register operand.
func Reg(r Register) Parameter {
	return Parameter{Kind: KindRegister, Register: r}
}

// Lit returns a literal held in a trailing word.
func Lit(value uint64) Parameter {
	return Parameter{Kind: KindLiteral, Literal: value}
}

// Inline returns a literal held in the control word.
func Inline(value uint64) Parameter {
	return Parameter{Kind: KindLiteral, Literal: value, Embedded: true}
}

// Stack returns a stack operand.
func Stack() Parameter {
	return Parameter{Kind: KindStack}
}

// Calc returns a calculated operand with base only.
func Calc(base Parameter) Parameter {
	return Parameter{Kind: KindCalculated, Calculated: &Calculated{Base: Term{Param: base}}}
}

// Add index*scale to calculated operand.
func (p Parameter) WithIndex(index Parameter, scale Parameter, negative bool) Parameter {
	c := *p.Calculated
	c.Index = &Term{Param: index, Negative: negative}
	c.Scale = &Term{Param: scale}
	p.Calculated = &c
	return p
}

// Add offset to calculated operand.
func (p Parameter) WithOffset(offset Parameter, negative bool) Parameter {
	c := *p.Calculated
	c.Offset = &Term{Param: offset, Negative: negative}
	p.Calculated = &c
	return p
}

// Deref marks operand as indirect.
func (p Parameter) Deref() Parameter {
	p.Indirect = true
	return p
}

// RelativeTo sets register to add to operand.
func (p Parameter) RelativeTo(rel RelativeTo) Parameter {
	p.Relative = rel
	return p
}

// New creates an instruction.
func New(op uint8, params ...Parameter) Instruction {
	inst := Instruction{Opcode: op}
	if len(params) != 0 {
		inst.Params = params
	}
	return inst
}

// If adds a condition to instruction.
func (inst Instruction) If(cond Parameter, when Predicate) Instruction {
	inst.Cond = &cond
	inst.When = when
	return inst
}
