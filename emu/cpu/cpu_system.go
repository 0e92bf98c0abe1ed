/*
 * VM64 - System and control instructions.
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
	"log/slog"

	D "github.com/rcornwell/VM64/emu/device"
	I "github.com/rcornwell/VM64/emu/instruction"
	op "github.com/rcornwell/VM64/emu/opcodemap"
)

// Create function table.
func (p *Processor) createTable() {
	for i := range p.table {
		p.table[i] = p.opUnk
	}
	for opcode, fn := range map[uint8]func(*stepInfo){
		op.OpHLT:  p.opHLT,
		op.OpNOP:  p.opNOP,
		op.OpINT:  p.opINT,
		op.OpEINT: p.opEINT,
		op.OpINTE: p.opINTE,
		op.OpINTD: p.opINTD,
		op.OpXCHG: p.opXCHG,
		op.OpCAS:  p.opCAS,
		op.OpSET:  p.opSET,
		op.OpCALL: p.opCALL,
		op.OpRET:  p.opRET,
		op.OpCPY:  p.opCPY,
		op.OpADD:  p.opADD,
		op.OpSUB:  p.opSUB,
		op.OpMUL:  p.opMUL,
		op.OpDIV:  p.opDIV,
		op.OpMOD:  p.opMOD,
		op.OpADDF: p.opADDF,
		op.OpSUBF: p.opSUBF,
		op.OpMULF: p.opMULF,
		op.OpDIVF: p.opDIVF,
		op.OpMODF: p.opMODF,
		op.OpAND:  p.opAND,
		op.OpOR:   p.opOR,
		op.OpXOR:  p.opXOR,
		op.OpNAND: p.opNAND,
		op.OpNOR:  p.opNOR,
		op.OpNXOR: p.opNXOR,
		op.OpNOT:  p.opNOT,
		op.OpSR:   p.opSR,
		op.OpSL:   p.opSL,
		op.OpRR:   p.opRR,
		op.OpRL:   p.opRL,
		op.OpGT:   p.opGT,
		op.OpGTE:  p.opGTE,
		op.OpLT:   p.opLT,
		op.OpLTE:  p.opLTE,
		op.OpEQ:   p.opEQ,
		op.OpNEQ:  p.opNEQ,
		op.OpDBG:  p.opDBG,
		op.OpBRK:  p.opBRK,
	} {
		p.table[opcode] = fn
	}
}

// Defined opcode without handler.
func (p *Processor) opUnk(step *stepInfo) {
	p.raise(D.IrqInvalidInstruction, uint64(step.inst.Opcode), step.addr)
}

// Wait for an interrupt, stay on this instruction.
func (p *Processor) opHLT(step *stepInfo) {
	p.setIP(step.addr)
	// Queued records can not be taken, wait for something new.
	if !p.enabled || p.inISR {
		p.irq.WaitForPost(HaltWait)
		return
	}
	p.irq.WaitForInterrupt(HaltWait)
}

func (p *Processor) opNOP(_ *stepInfo) {
}

// Software interrupt: type, data1, data2.
func (p *Processor) opINT(step *stepInfo) {
	p.raise(uint16(step.slots[0].value&uint64(D.IrqMask)), step.slots[1].value, step.slots[2].value)
}

// Return from interrupt, outside a handler it does nothing.
func (p *Processor) opEINT(_ *stepInfo) {
	if p.inISR {
		p.exitInterrupt()
	}
}

func (p *Processor) opINTE(_ *stepInfo) {
	p.enabled = true
}

func (p *Processor) opINTD(_ *stepInfo) {
	p.enabled = false
}

// Swap operands.
func (p *Processor) opXCHG(step *stepInfo) {
	a := step.slots[0].value
	step.slots[0].set(step.slots[1].value)
	step.slots[1].set(a)
}

// Compare and swap: target, compare, new. Compare gets old target.
func (p *Processor) opCAS(step *stepInfo) {
	old := step.slots[0].value
	if old == step.slots[1].value {
		step.slots[0].set(step.slots[2].value)
	}
	step.slots[1].set(old)
}

func (p *Processor) opSET(step *stepInfo) {
	step.slots[0].set(step.slots[1].value)
}

// Push return address and jump.
func (p *Processor) opCALL(step *stepInfo) {
	p.push(step.next)
	p.setIP(step.slots[0].value)
}

func (p *Processor) opRET(_ *stepInfo) {
	p.setIP(p.pop())
}

// Copy block: dest, src, count.
func (p *Processor) opCPY(step *stepInfo) {
	dst := step.slots[0].value
	src := step.slots[1].value
	count := step.slots[2].value
	p.cache.writtenRange(dst, count)
	p.bus.Copy(src, dst, count)
}

// Host debug callback.
func (p *Processor) opDBG(step *stepInfo) {
	if p.onDebug != nil {
		p.onDebug(p, step.slots[0].value)
		return
	}
	slog.Debug("DBG", "addr", step.addr, "value", step.slots[0].value, "rip", p.regs[I.RIP])
}

// Stop run loop.
func (p *Processor) opBRK(_ *stepInfo) {
	p.breakHit = true
}
