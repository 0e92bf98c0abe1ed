/*
 * VM64 - Interrupt controller.
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

package interrupt

import (
	"errors"
	"strconv"
	"sync"
	"time"

	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/util/debug"
)

/*
   Device view:
      0x000 - 0xfff   Handler address for each interrupt type.
      0x1000          Number of pending interrupts, read only.
*/

const (
	NumVectors = 4096
	PendingReg = 0x1000
)

var ErrEmpty = errors.New("no interrupt pending")

// Pending interrupt.
type Record struct {
	Type    uint16 // Interrupt type.
	Handler uint64 // Vector captured when posted.
	Data1   uint64
	Data2   uint64
}

type Controller struct {
	lock    sync.Mutex
	queue   []Record
	vectors [NumVectors]uint64
	wake    chan struct{} // Signal waiter.
}

var debugMsk int

const (
	debugPost = 1 << iota
	debugVector
)

var debugOption = map[string]int{
	"POST":   debugPost,
	"VECTOR": debugVector,
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("interrupt debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}

func New() *Controller {
	return &Controller{wake: make(chan struct{}, 1)}
}

func (irq *Controller) signal() {
	select {
	case irq.wake <- struct{}{}:
	default:
	}
}

// Post an interrupt, handler is the vector at time of posting.
// An undelivered timer record is updated in place rather than queued again.
func (irq *Controller) Enqueue(ty uint16, data1, data2 uint64) {
	irq.lock.Lock()
	ty &= D.IrqMask
	rec := Record{Type: ty, Handler: irq.vectors[ty], Data1: data1, Data2: data2}
	merged := false
	if ty == D.IrqSystemTimer {
		for i := range irq.queue {
			if irq.queue[i].Type == ty && irq.queue[i].Handler == rec.Handler {
				irq.queue[i] = rec
				merged = true
				break
			}
		}
	}
	if !merged {
		irq.queue = append(irq.queue, rec)
	}
	irq.lock.Unlock()
	debug.Debugf("IRQ", debugMsk, debugPost, "post %03x handler %016x data %016x %016x",
		ty, rec.Handler, data1, data2)
	irq.signal()
}

// Remove oldest pending interrupt.
func (irq *Controller) Dequeue() (Record, error) {
	irq.lock.Lock()
	defer irq.lock.Unlock()
	if len(irq.queue) == 0 {
		return Record{}, ErrEmpty
	}
	rec := irq.queue[0]
	irq.queue[0] = Record{}
	irq.queue = irq.queue[1:]
	return rec, nil
}

// Number of pending interrupts.
func (irq *Controller) PendingCount() int {
	irq.lock.Lock()
	defer irq.lock.Unlock()
	return len(irq.queue)
}

// Copy of pending interrupts, oldest first.
func (irq *Controller) Pending() []Record {
	irq.lock.Lock()
	defer irq.lock.Unlock()
	return append([]Record(nil), irq.queue...)
}

// Wait for interrupt to be posted, Wake or timeout.
func (irq *Controller) WaitForInterrupt(timeout time.Duration) {
	irq.wait(timeout, true)
}

// Wait for a new post, Wake or timeout, ignoring what is already queued.
func (irq *Controller) WaitForPost(timeout time.Duration) {
	irq.wait(timeout, false)
}

func (irq *Controller) wait(timeout time.Duration, pending bool) {
	// Drop stale signal.
	select {
	case <-irq.wake:
	default:
	}
	if pending && irq.PendingCount() != 0 {
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-irq.wake:
	case <-timer.C:
	}
}

// Release anyone in WaitForInterrupt.
func (irq *Controller) Wake() {
	irq.signal()
}

// Vector for interrupt type.
func (irq *Controller) Vector(ty uint16) uint64 {
	irq.lock.Lock()
	defer irq.lock.Unlock()
	return irq.vectors[ty&D.IrqMask]
}

// Set vector for interrupt type.
func (irq *Controller) SetVector(ty uint16, handler uint64) {
	irq.lock.Lock()
	irq.vectors[ty&D.IrqMask] = handler
	irq.lock.Unlock()
	debug.Debugf("IRQ", debugMsk, debugVector, "vector %03x = %016x", ty&D.IrqMask, handler)
}

func (irq *Controller) ReadWord(addr uint64) uint64 {
	switch {
	case addr < NumVectors:
		return irq.Vector(uint16(addr))
	case addr == PendingReg:
		return uint64(irq.PendingCount())
	}
	return 0
}

func (irq *Controller) WriteWord(addr uint64, data uint64) {
	if addr < NumVectors {
		irq.SetVector(uint16(addr), data)
	}
}

func (irq *Controller) clear() {
	irq.lock.Lock()
	irq.queue = nil
	irq.vectors = [NumVectors]uint64{}
	irq.lock.Unlock()
	select {
	case <-irq.wake:
	default:
	}
}

// Clear queue and vectors.
func (irq *Controller) Reset() {
	irq.clear()
}

func (irq *Controller) Start() {}

// Clear queue and vectors, releasing any waiter.
func (irq *Controller) Stop() {
	irq.clear()
	irq.signal()
}

func (irq *Controller) Size() uint64 {
	return PendingReg + 1
}

func (irq *Controller) Identity() D.Identity {
	return D.Identity{Type: D.TypeInterrupt, VendorID: D.VendorVM64, ProductID: D.ProductIRQ}
}

// Describe controller for console.
func (irq *Controller) Show() string {
	return "pending=" + strconv.Itoa(irq.PendingCount())
}
