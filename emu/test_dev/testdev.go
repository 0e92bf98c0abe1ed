/*
 * VM64 - Test device.
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

package testdev

import (
	"sync"

	config "github.com/rcornwell/VM64/config/configparser"
	D "github.com/rcornwell/VM64/emu/device"
)

/*
   Scratch device for tests.

      0x0000 - 0xffff   Storage, every write is recorded.
      0x10000           Writing posts an interrupt of the written type,
                        data1 is device id, data2 is the count of writes.
*/

const (
	StoreSize = 0x10000
	RaiseReg  = 0x10000
)

// Recorded write.
type Write struct {
	Addr uint64
	Data uint64
}

type TestDev struct {
	lock    sync.Mutex
	ID      uint16 // Assigned device id.
	store   [StoreSize]uint64
	writes  []Write
	irq     D.Raiser
	Resets  int // Times Reset called.
	Started bool
}

func New() *TestDev {
	return &TestDev{ID: D.NoDev}
}

func (d *TestDev) Attach(id uint16, _ D.Bus, irq D.Raiser) {
	d.ID = id
	d.irq = irq
}

func (d *TestDev) ReadWord(addr uint64) uint64 {
	d.lock.Lock()
	defer d.lock.Unlock()
	if addr >= StoreSize {
		return 0
	}
	return d.store[addr]
}

func (d *TestDev) WriteWord(addr uint64, data uint64) {
	d.lock.Lock()
	d.writes = append(d.writes, Write{Addr: addr, Data: data})
	count := uint64(len(d.writes))
	if addr < StoreSize {
		d.store[addr] = data
	}
	d.lock.Unlock()
	if addr == RaiseReg && d.irq != nil {
		d.irq.Enqueue(uint16(data), uint64(d.ID), count)
	}
}

// Copy of writes seen so far.
func (d *TestDev) Writes() []Write {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]Write(nil), d.writes...)
}

func (d *TestDev) Reset() {
	d.lock.Lock()
	d.Resets++
	d.Started = false
	d.lock.Unlock()
}

func (d *TestDev) Start() {
	d.lock.Lock()
	d.Started = true
	d.lock.Unlock()
}

func (d *TestDev) Stop() {
	d.lock.Lock()
	d.Started = false
	d.lock.Unlock()
}

func (d *TestDev) Size() uint64 {
	return RaiseReg + 1
}

func (d *TestDev) Identity() D.Identity {
	return D.Identity{Type: D.TypeTest, VendorID: D.VendorVM64, ProductID: D.ProductTest}
}

// register a device on initialize.
func init() {
	config.RegisterSwitch("TESTDEV", create)
}

func create(m config.Machine, _ string, _ []config.Option) error {
	_, err := m.AddDevice(New())
	return err
}
