/*
 * VM64 - Processor definitions.
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
	"errors"
	"time"

	I "github.com/rcornwell/VM64/emu/instruction"
)

// Time HLT waits for an interrupt before checking again.
const HaltWait = 10 * time.Millisecond

// Time Break waits for the run loop to exit.
const stopTimeout = time.Second

// Returned by the run loop when BRK executes.
var errBreak = errors.New("break instruction")

// Called by DBG with its operand.
type DebugFunc func(p *Processor, value uint64)

// Called when BRK stops the run loop.
type BreakFunc func(p *Processor)

// Operand as seen by an instruction.
type slot struct {
	value uint64 // Loaded or result value.
	dirty bool   // Written by instruction.
	addr  uint64 // Memory address for read/write operands.
	bound bool   // Address resolved at load.
}

// Set result of operand.
func (s *slot) set(value uint64) {
	s.value = value
	s.dirty = true
}

// Instruction being executed.
type stepInfo struct {
	inst  *I.Instruction // Decoded instruction.
	addr  uint64         // Address of instruction.
	next  uint64         // Address of following instruction.
	slots [3]slot        // Operands.
}

// Values returned by compare instructions.
const (
	cmpTrue  = ^uint64(0)
	cmpFalse = uint64(0)
)

// Debug options.
const (
	debugInst = 1 << iota
	debugIrq
	debugCache
)

var debugOption = map[string]int{
	"INST":  debugInst,
	"IRQ":   debugIrq,
	"CACHE": debugCache,
}

var debugMsk int

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("CPU debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
