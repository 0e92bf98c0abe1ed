/*
 * VM64 - Operand access.
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

package cpu

import (
	I "github.com/rcornwell/VM64/emu/instruction"
)

// Read a word through the bus.
func (p *Processor) read(addr uint64) uint64 {
	return p.bus.ReadWord(addr)
}

// Write a word through the bus.
func (p *Processor) write(addr uint64, data uint64) {
	p.cache.written(addr)
	p.bus.WriteWord(addr, data)
}

// Set register from instruction, constants are not changed.
func (p *Processor) setReg(r I.Register, value uint64) {
	if r >= I.NumRegisters || r.ReadOnly() {
		return
	}
	p.regs[r] = value
	if r == I.RIP {
		p.ipWritten = true
	}
}

// Push word on stack.
func (p *Processor) push(value uint64) {
	p.regs[I.RSP]--
	p.write(p.regs[I.RSP], value)
}

// Pop word from stack.
func (p *Processor) pop() uint64 {
	value := p.read(p.regs[I.RSP])
	p.regs[I.RSP]++
	return value
}

// Value of operand before indirection.
func (p *Processor) address(param *I.Parameter) uint64 {
	var value uint64
	switch param.Kind {
	case I.KindRegister:
		if param.Register < I.NumRegisters {
			value = p.regs[param.Register]
		}
	case I.KindStack:
		value = p.pop()
	case I.KindLiteral:
		value = param.Literal
	case I.KindCalculated:
		value = p.calculate(param.Calculated)
	}

	switch param.Relative {
	case I.RelIP:
		value += p.regs[I.RIP]
	case I.RelSP:
		value += p.regs[I.RSP]
	case I.RelBP:
		value += p.regs[I.RBP]
	}
	return value
}

// Evaluate Base +/- Index*Scale +/- Offset.
func (p *Processor) calculate(calc *I.Calculated) uint64 {
	if calc == nil {
		return 0
	}
	value := p.term(&calc.Base)
	if calc.Index != nil {
		index := p.getValue(&calc.Index.Param)
		scale := uint64(1)
		negative := calc.Index.Negative
		if calc.Scale != nil {
			scale = p.getValue(&calc.Scale.Param)
			negative = negative != calc.Scale.Negative
		}
		product := index * scale
		if negative {
			product = -product
		}
		value += product
	}
	if calc.Offset != nil {
		value += p.term(calc.Offset)
	}
	return value
}

// Signed value of a term.
func (p *Processor) term(t *I.Term) uint64 {
	value := p.getValue(&t.Param)
	if t.Negative {
		return -value
	}
	return value
}

// Resolve operand value.
func (p *Processor) getValue(param *I.Parameter) uint64 {
	value := p.address(param)
	if param.Indirect {
		value = p.read(value)
	}
	return value
}

// Store value to operand. Literals and calculated values that are not
// indirect have nowhere to go.
func (p *Processor) setValue(param *I.Parameter, value uint64) {
	if param.Indirect {
		p.write(p.address(param), value)
		return
	}
	switch param.Kind {
	case I.KindRegister:
		p.setReg(param.Register, value)
	case I.KindStack:
		p.push(value)
	}
}

// Load operand. Indirect operands that are also written keep their
// address so the store goes back to the same word.
func (p *Processor) load(param *I.Parameter, write bool) slot {
	if write && param.Indirect {
		addr := p.address(param)
		return slot{value: p.read(addr), addr: addr, bound: true}
	}
	return slot{value: p.getValue(param)}
}

// Store changed operand.
func (p *Processor) store(param *I.Parameter, s *slot) {
	if s.bound {
		p.write(s.addr, s.value)
		return
	}
	p.setValue(param, s.value)
}
