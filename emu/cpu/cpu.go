/*
 * VM64 - Processor.
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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/emu/disassemble"
	I "github.com/rcornwell/VM64/emu/instruction"
	"github.com/rcornwell/VM64/emu/interrupt"
	op "github.com/rcornwell/VM64/emu/opcodemap"
	"github.com/rcornwell/VM64/emu/timer"
	"github.com/rcornwell/VM64/util/debug"
)

/*
   The processor has 32 registers of 64 bits. R0-R15 are general,
   the rest have fixed uses:

      RIP    Instruction pointer.
      RSP    Stack pointer, push decrements then writes.
      RBP    Base pointer.
      RSIP   Instruction pointer saved on interrupt.
      RIDA   Interrupt data 1.
      RIDB   Interrupt data 2.
      RIT    Interrupt type.
      RT0-5  Scratch.
      RZERO, RONE, RMAX  Constants 0, 1 and all ones, writes ignored.

   Each instruction is a control word followed by trailing words for
   its operands. Operands marked for reading are loaded before the
   instruction runs, operands marked for writing are stored only if the
   instruction changed them. Unless the instruction changed RIP the next
   instruction follows this one.

   On the processor's own device the register file appears at local
   addresses 0-31.
*/

// Bus access needed by the processor.
type Bus interface {
	ReadWord(addr uint64) uint64
	WriteWord(addr uint64, data uint64)
	Copy(src uint64, dst uint64, count uint64)
}

type Processor struct {
	bus       Bus
	irq       *interrupt.Controller
	timer     *timer.Timer
	regs      [I.NumRegisters]uint64
	boot      uint64 // Address loaded into RIP on reset.
	enabled   bool   // Interrupts enabled.
	inISR     bool   // Running interrupt handler.
	ipWritten bool   // Instruction changed RIP.
	breakHit  bool   // BRK executed.
	cache     cache
	table     [256]func(*stepInfo)
	onDebug   DebugFunc
	onBreak   BreakFunc

	lock    sync.Mutex    // Protect run state.
	running bool          // Run loop active.
	cancel  func()        // Stop run loop.
	stopped chan struct{} // Closed when run loop exits.
	err     error         // Fault that ended run loop.
}

// Create a processor on bus taking interrupts from irq.
func New(bus Bus, irq *interrupt.Controller) *Processor {
	p := &Processor{
		bus:   bus,
		irq:   irq,
		timer: timer.New(irq, timer.DefaultInterval),
	}
	p.cache.enabled = true
	p.createTable()
	p.reset()
	return p
}

// Clear processor state.
func (p *Processor) reset() {
	p.regs = [I.NumRegisters]uint64{}
	p.regs[I.RONE] = 1
	p.regs[I.RMAX] = ^uint64(0)
	p.regs[I.RIP] = p.boot
	p.enabled = false
	p.inISR = false
	p.ipWritten = false
	p.breakHit = false
	p.cache.invalidate()
}

// Stop processor and return to initial state.
func (p *Processor) Reset() {
	p.Break()
	p.reset()
	p.lock.Lock()
	p.err = nil
	p.lock.Unlock()
}

// Set address used for RIP by Reset.
func (p *Processor) SetBootAddress(addr uint64) {
	p.boot = addr
}

// Start running.
func (p *Processor) Start() {
	p.Continue()
}

// Stop running.
func (p *Processor) Stop() {
	p.Break()
}

func (p *Processor) Identity() D.Identity {
	return D.Identity{Type: D.TypeProcessor, VendorID: D.VendorVM64, ProductID: D.ProductCPU}
}

// Register file as device.
func (p *Processor) ReadWord(addr uint64) uint64 {
	if addr >= I.NumRegisters {
		return 0
	}
	return p.regs[addr]
}

// Writing RIP through the bus is a jump.
func (p *Processor) WriteWord(addr uint64, data uint64) {
	if addr < I.NumRegisters {
		p.setReg(I.Register(addr), data)
	}
}

func (p *Processor) Size() uint64 {
	return I.NumRegisters
}

// Read register.
func (p *Processor) ReadRegister(r I.Register) uint64 {
	if r >= I.NumRegisters {
		return 0
	}
	return p.regs[r]
}

// Set register, constant registers are not changed.
func (p *Processor) WriteRegister(r I.Register, value uint64) {
	if r >= I.NumRegisters || r.ReadOnly() {
		return
	}
	p.regs[r] = value
}

// Find register by name.
func (p *Processor) RegisterByName(name string) (I.Register, bool) {
	return I.RegisterByName(name)
}

func (p *Processor) SetDebugHandler(fn DebugFunc) {
	p.onDebug = fn
}

func (p *Processor) SetBreakHandler(fn BreakFunc) {
	p.lock.Lock()
	p.onBreak = fn
	p.lock.Unlock()
}

func (p *Processor) SetCacheEnabled(enable bool) {
	p.cache.invalidate()
	p.cache.enabled = enable
}

func (p *Processor) CacheEnabled() bool {
	return p.cache.enabled
}

// Drop decoded instructions, needed after memory is changed behind
// the processor's back.
func (p *Processor) InvalidateCache() {
	p.cache.invalidate()
}

func (p *Processor) CacheStats() CacheStats {
	return p.cache.stats()
}

func (p *Processor) SetTimerInterval(interval time.Duration) {
	p.timer.SetInterval(interval)
}

func (p *Processor) TimerInterval() time.Duration {
	return p.timer.Interval()
}

func (p *Processor) InterruptsEnabled() bool {
	return p.enabled
}

func (p *Processor) InISR() bool {
	return p.inISR
}

// Running reports if the run loop is active.
func (p *Processor) Running() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.running
}

// Err returns the fault that stopped the last run.
func (p *Processor) Err() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.err
}

// Decode instruction at RIP, false if opcode is not defined or
// can't be fetched.
func (p *Processor) CurrentInstruction() (inst I.Instruction, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, fault := r.(*D.FaultError); !fault {
				panic(r)
			}
			inst, ok = I.Instruction{}, false
		}
	}()
	inst = *p.cache.fetch(p.bus, p.regs[I.RIP])
	_, ok = op.Lookup(inst.Opcode)
	return inst, ok
}

// Run instructions until Break, BRK or a fault.
func (p *Processor) Continue() {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})
	p.running = true
	p.cancel = cancel
	p.stopped = stopped
	p.err = nil

	group.Go(func() error { return p.run(gctx) })
	group.Go(func() error { return p.timer.Run(gctx) })

	go func() {
		err := group.Wait()
		cancel()
		brk := errors.Is(err, errBreak)
		p.lock.Lock()
		p.running = false
		if err != nil && !brk {
			p.err = err
		}
		handler := p.onBreak
		p.lock.Unlock()
		close(stopped)
		if err != nil && !brk {
			slog.Error("Processor stopped: " + err.Error())
		}
		if brk && handler != nil {
			handler(p)
		}
	}()
}

// Stop run loop and wait for it to exit.
func (p *Processor) Break() {
	p.lock.Lock()
	if !p.running {
		p.lock.Unlock()
		return
	}
	cancel := p.cancel
	stopped := p.stopped
	p.lock.Unlock()

	cancel()
	p.irq.Wake()
	select {
	case <-stopped:
	case <-time.After(stopTimeout):
		slog.Warn("Timed out waiting for processor to stop.")
	}
}

// Wait for run loop to exit.
func (p *Processor) Wait() {
	p.lock.Lock()
	stopped := p.stopped
	p.lock.Unlock()
	if stopped != nil {
		<-stopped
	}
}

// Run loop.
func (p *Processor) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		brk, err := p.tick()
		if err != nil {
			return err
		}
		if brk {
			return errBreak
		}
	}
}

// Execute one instruction. Not to be used while running.
func (p *Processor) Step() error {
	brk, err := p.tick()
	if brk {
		p.lock.Lock()
		handler := p.onBreak
		p.lock.Unlock()
		if handler != nil {
			handler(p)
		}
	}
	return err
}

// Fetch, execute and check for interrupts. Bus faults end up in err.
func (p *Processor) tick() (brk bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*D.FaultError)
			if !ok {
				panic(r)
			}
			err = fault
		}
	}()

	step := stepInfo{addr: p.regs[I.RIP]}
	step.inst = p.cache.fetch(p.bus, step.addr)
	step.next = step.addr + step.inst.Length
	p.ipWritten = false
	p.breakHit = false

	if (debugMsk & debugInst) != 0 {
		debug.Debugf("CPU", debugMsk, debugInst, "%016x: %s", step.addr, disassemble.Format(step.inst))
	}

	if step.inst.Cond == nil || step.inst.Gate(p.getValue(step.inst.Cond)) {
		p.execute(&step)
	}

	if !p.ipWritten {
		p.regs[I.RIP] = step.next
	}
	p.checkInterrupt()
	return p.breakHit, nil
}

// Load operands, run instruction and store changed operands.
func (p *Processor) execute(step *stepInfo) {
	def, ok := op.Lookup(step.inst.Opcode)
	if !ok {
		p.raise(D.IrqInvalidInstruction, uint64(step.inst.Opcode), step.addr)
		return
	}
	params := step.inst.Params
	for i := range def.Count() {
		if def.Reads(i) {
			step.slots[i] = p.load(&params[i], def.Writes(i))
		}
	}
	p.table[step.inst.Opcode](step)
	for i := range def.Count() {
		if def.Writes(i) && step.slots[i].dirty {
			p.store(&params[i], &step.slots[i])
		}
	}
}

// Post interrupt from processor.
func (p *Processor) raise(ty uint16, data1, data2 uint64) {
	debug.Debugf("CPU", debugMsk, debugIrq, "raise %03x %016x %016x", ty, data1, data2)
	p.irq.Enqueue(ty, data1, data2)
}

// Enter handler for next pending interrupt if allowed.
func (p *Processor) checkInterrupt() {
	if !p.enabled || p.inISR || p.irq.PendingCount() == 0 {
		return
	}
	rec, err := p.irq.Dequeue()
	if err != nil {
		panic(&D.FaultError{Op: "dequeue", Addr: p.regs[I.RIP], Reason: err.Error()})
	}
	if rec.Handler == 0 {
		debug.Debugf("CPU", debugMsk, debugIrq, "drop %03x no handler", rec.Type)
		return
	}
	debug.Debugf("CPU", debugMsk, debugIrq, "enter %03x at %016x from %016x",
		rec.Type, rec.Handler, p.regs[I.RIP])
	p.regs[I.RSIP] = p.regs[I.RIP]
	p.regs[I.RIP] = rec.Handler
	p.regs[I.RIDA] = rec.Data1
	p.regs[I.RIDB] = rec.Data2
	p.regs[I.RIT] = uint64(rec.Type)
	p.inISR = true
}

// Leave interrupt handler.
func (p *Processor) exitInterrupt() {
	p.setIP(p.regs[I.RSIP])
	p.regs[I.RSIP] = 0
	p.regs[I.RIDA] = 0
	p.regs[I.RIDB] = 0
	p.regs[I.RIT] = 0
	p.inISR = false
}

// Set next instruction address.
func (p *Processor) setIP(addr uint64) {
	p.regs[I.RIP] = addr
	p.ipWritten = true
}

// Register values for display.
func (p *Processor) String() string {
	s := ""
	for r := range I.Register(I.NumRegisters) {
		s += fmt.Sprintf("%-5s %016x", r.String(), p.regs[r])
		if (r % 4) == 3 {
			s += "\n"
		} else {
			s += "  "
		}
	}
	return s
}
