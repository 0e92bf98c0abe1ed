/*
 * VM64 - Integer, logical and compare instructions.
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
	"math/bits"

	D "github.com/rcornwell/VM64/emu/device"
)

// All take dest, a, b and compute dest = a op b.

func (p *Processor) opADD(step *stepInfo) {
	step.slots[0].set(step.slots[1].value + step.slots[2].value)
}

func (p *Processor) opSUB(step *stepInfo) {
	step.slots[0].set(step.slots[1].value - step.slots[2].value)
}

func (p *Processor) opMUL(step *stepInfo) {
	step.slots[0].set(step.slots[1].value * step.slots[2].value)
}

// Raise divide by zero for current instruction.
func (p *Processor) divideByZero(step *stepInfo) {
	p.raise(D.IrqDivideByZero, uint64(step.inst.Opcode), step.addr)
}

func (p *Processor) opDIV(step *stepInfo) {
	if step.slots[2].value == 0 {
		p.divideByZero(step)
		return
	}
	step.slots[0].set(step.slots[1].value / step.slots[2].value)
}

func (p *Processor) opMOD(step *stepInfo) {
	if step.slots[2].value == 0 {
		p.divideByZero(step)
		return
	}
	step.slots[0].set(step.slots[1].value % step.slots[2].value)
}

func (p *Processor) opAND(step *stepInfo) {
	step.slots[0].set(step.slots[1].value & step.slots[2].value)
}

func (p *Processor) opOR(step *stepInfo) {
	step.slots[0].set(step.slots[1].value | step.slots[2].value)
}

func (p *Processor) opXOR(step *stepInfo) {
	step.slots[0].set(step.slots[1].value ^ step.slots[2].value)
}

func (p *Processor) opNAND(step *stepInfo) {
	step.slots[0].set(^(step.slots[1].value & step.slots[2].value))
}

func (p *Processor) opNOR(step *stepInfo) {
	step.slots[0].set(^(step.slots[1].value | step.slots[2].value))
}

func (p *Processor) opNXOR(step *stepInfo) {
	step.slots[0].set(^(step.slots[1].value ^ step.slots[2].value))
}

// dest = ^src.
func (p *Processor) opNOT(step *stepInfo) {
	step.slots[0].set(^step.slots[1].value)
}

// Shifts of 64 or more give zero.
func (p *Processor) opSR(step *stepInfo) {
	step.slots[0].set(step.slots[1].value >> step.slots[2].value)
}

func (p *Processor) opSL(step *stepInfo) {
	step.slots[0].set(step.slots[1].value << step.slots[2].value)
}

// Rotates use amount modulo 64.
func (p *Processor) opRR(step *stepInfo) {
	step.slots[0].set(bits.RotateLeft64(step.slots[1].value, -int(step.slots[2].value&63)))
}

func (p *Processor) opRL(step *stepInfo) {
	step.slots[0].set(bits.RotateLeft64(step.slots[1].value, int(step.slots[2].value&63)))
}

// Compares are unsigned.
func compare(result bool) uint64 {
	if result {
		return cmpTrue
	}
	return cmpFalse
}

func (p *Processor) opGT(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value > step.slots[2].value))
}

func (p *Processor) opGTE(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value >= step.slots[2].value))
}

func (p *Processor) opLT(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value < step.slots[2].value))
}

func (p *Processor) opLTE(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value <= step.slots[2].value))
}

func (p *Processor) opEQ(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value == step.slots[2].value))
}

func (p *Processor) opNEQ(step *stepInfo) {
	step.slots[0].set(compare(step.slots[1].value != step.slots[2].value))
}
