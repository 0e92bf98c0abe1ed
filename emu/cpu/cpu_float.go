/*
 * VM64 - Floating point instructions.
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
	"math"
)

// Operands are IEEE doubles held in words.

func (step *stepInfo) floats() (float64, float64) {
	return math.Float64frombits(step.slots[1].value), math.Float64frombits(step.slots[2].value)
}

func (p *Processor) opADDF(step *stepInfo) {
	a, b := step.floats()
	step.slots[0].set(math.Float64bits(a + b))
}

func (p *Processor) opSUBF(step *stepInfo) {
	a, b := step.floats()
	step.slots[0].set(math.Float64bits(a - b))
}

func (p *Processor) opMULF(step *stepInfo) {
	a, b := step.floats()
	step.slots[0].set(math.Float64bits(a * b))
}

// Zero of either sign is a divide fault.
func (p *Processor) opDIVF(step *stepInfo) {
	a, b := step.floats()
	if b == 0 {
		p.divideByZero(step)
		return
	}
	step.slots[0].set(math.Float64bits(a / b))
}

func (p *Processor) opMODF(step *stepInfo) {
	a, b := step.floats()
	if b == 0 {
		p.divideByZero(step)
		return
	}
	step.slots[0].set(math.Float64bits(math.Mod(a, b)))
}
