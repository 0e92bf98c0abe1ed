/*
 * VM64 - System bus.
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

package bus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/util/debug"
)

/*
   Addresses are 64 bits, the top 12 bits select a device and the
   remaining 52 bits are passed to the device as its local address.

      +------------+------------------------------------------------+
      |  device id |                 local address                  |
      +------------+------------------------------------------------+
       63        52 51                                              0

   Device 0xfff is the directory. Word 0 holds the number of devices,
   followed by four words for each device: type, vendor, product, id.
*/

var ErrBusFull = errors.New("no free device ids on bus")

// Attached device and its id.
type Entry struct {
	ID     uint16
	Device D.Device
}

type Bus struct {
	devices [D.MaxID]D.Device // Devices by id.
	count   uint16            // Next id to assign.
	dir     directory         // Directory of devices.
	irq     D.Raiser          // Interrupt controller.
	boot    uint64            // Address of boot device.
}

var debugMsk int

const (
	debugRead = 1 << iota
	debugWrite
	debugDev
)

var debugOption = map[string]int{
	"READ":  debugRead,
	"WRITE": debugWrite,
	"DEV":   debugDev,
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("bus debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}

// Create a new bus, devices raise interrupts on irq.
func New(irq D.Raiser) *Bus {
	return &Bus{irq: irq}
}

// Add a device at the next free id.
func (bus *Bus) AddDevice(dev D.Device) (uint16, error) {
	if bus.count >= D.MaxID {
		return D.NoDev, fmt.Errorf("%w: %s", ErrBusFull, dev.Identity().Type)
	}
	id := bus.count
	bus.devices[id] = dev
	bus.count++
	if a, ok := dev.(D.Attacher); ok {
		a.Attach(id, bus, bus.irq)
	}
	debug.Debugf("BUS", debugMsk, debugDev, "add %s id %03x", dev.Identity().Type, id)
	return id, nil
}

// Return device with given id.
func (bus *Bus) Device(id uint16) (D.Device, error) {
	if id == D.MaxID {
		return &bus.dir, nil
	}
	if id >= bus.count {
		return nil, fmt.Errorf("device %03x doesn't exist", id)
	}
	return bus.devices[id], nil
}

// Return list of attached devices in id order.
func (bus *Bus) Devices() []Entry {
	list := make([]Entry, 0, bus.count)
	for id := range bus.count {
		list = append(list, Entry{ID: id, Device: bus.devices[id]})
	}
	return list
}

// Address of boot device found by last Reset.
func (bus *Bus) BootAddress() uint64 {
	return bus.boot
}

// Find device for address, missing device is fatal.
func (bus *Bus) lookup(op string, addr uint64) (D.Device, uint16, uint64) {
	id, local := D.Split(addr)
	if id == D.MaxID {
		return &bus.dir, id, local
	}
	dev := bus.devices[id]
	if dev == nil {
		panic(&D.FaultError{Op: op, Addr: addr, Reason: "no device attached"})
	}
	return dev, id, local
}

// Read one word.
func (bus *Bus) ReadWord(addr uint64) uint64 {
	dev, _, local := bus.lookup("read", addr)
	data := dev.ReadWord(local)
	if (debugMsk & debugRead) != 0 {
		debug.Debugf("BUS", debugMsk, debugRead, "read %016x = %016x", addr, data)
	}
	return data
}

// Write one word.
func (bus *Bus) WriteWord(addr uint64, data uint64) {
	dev, _, local := bus.lookup("write", addr)
	if (debugMsk & debugWrite) != 0 {
		debug.Debugf("BUS", debugMsk, debugWrite, "write %016x = %016x", addr, data)
	}
	dev.WriteWord(local, data)
}

// Words of count that fit in device from local address.
func span(dev D.Device, local uint64, count uint64) uint64 {
	sz, ok := dev.(D.Sizer)
	if !ok {
		return min(count, D.MaxTransfer)
	}
	size := sz.Size()
	if local >= size {
		return 0
	}
	return min(count, size-local)
}

// Read a block of words from one device, stopping at its end.
func (bus *Bus) Read(addr uint64, count uint64) []uint64 {
	dev, _, local := bus.lookup("read", addr)
	count = span(dev, local, count)
	if br, ok := dev.(D.BulkReader); ok {
		return br.Read(local, count)
	}
	data := make([]uint64, count)
	for i := range count {
		data[i] = dev.ReadWord((local + i) & D.LocalMask)
	}
	return data
}

// Write a block of words to one device.
func (bus *Bus) Write(addr uint64, data []uint64) {
	dev, _, local := bus.lookup("write", addr)
	if bw, ok := dev.(D.BulkWriter); ok {
		bw.Write(local, data)
		return
	}
	for i, word := range data {
		dev.WriteWord((local+uint64(i))&D.LocalMask, word)
	}
}

// Copy block of words, within a device the device may do it directly.
// Count is clipped to the destination, source words past its end copy as 0.
func (bus *Bus) Copy(src uint64, dst uint64, count uint64) {
	sdev, sid, slocal := bus.lookup("read", src)
	ddev, did, dlocal := bus.lookup("write", dst)
	count = span(ddev, dlocal, count)
	if count == 0 {
		return
	}
	if sid == did {
		if c, ok := sdev.(D.Copier); ok {
			c.Copy(slocal, dlocal, count)
			return
		}
	}
	data := bus.Read(src, count)
	bus.Write(dst, data)
	for off := uint64(len(data)); off < count; off += fillSize {
		bus.Write(dst+off, zeros[:min(fillSize, count-off)])
	}
}

// Block used to zero fill copies.
const fillSize = 512

var zeros [fillSize]uint64

// Rebuild directory and find boot device.
func (bus *Bus) enumerate() {
	table := make([]uint64, 1, 1+4*int(bus.count))
	table[0] = uint64(bus.count)
	found := false
	for _, ent := range bus.Devices() {
		ident := ent.Device.Identity()
		table = append(table, uint64(ident.Type), ident.VendorID, ident.ProductID, uint64(ent.ID))
		if ident.Type == D.TypeBoot && !found {
			bus.boot = D.Address(ent.ID, 0)
			found = true
		}
	}
	bus.dir.table = table
	if !found {
		bus.boot = 0
		slog.Warn("No boot device attached")
	}
	for _, ent := range bus.Devices() {
		if b, ok := ent.Device.(D.Booter); ok {
			b.SetBootAddress(bus.boot)
		}
	}
}

// Call fn for each device, processors last or first.
func (bus *Bus) each(cpuLast bool, fn func(D.Device)) {
	var cpus []D.Device
	var others []D.Device
	for _, ent := range bus.Devices() {
		if ent.Device.Identity().Type == D.TypeProcessor {
			cpus = append(cpus, ent.Device)
		} else {
			others = append(others, ent.Device)
		}
	}
	var order []D.Device
	if cpuLast {
		order = append(others, cpus...)
	} else {
		order = append(cpus, others...)
	}
	for _, dev := range order {
		fn(dev)
	}
}

// Enumerate devices and reset them, processor last.
func (bus *Bus) Reset() {
	bus.enumerate()
	bus.each(true, func(dev D.Device) { dev.Reset() })
}

// Reset and start all devices, processor last.
func (bus *Bus) Start() {
	bus.Reset()
	bus.each(true, func(dev D.Device) { dev.Start() })
}

// Stop all devices, processor first.
func (bus *Bus) Stop() {
	bus.each(false, func(dev D.Device) { dev.Stop() })
}

// Stop and release all devices.
func (bus *Bus) Dispose() {
	bus.Stop()
	for id := range bus.count {
		if c, ok := bus.devices[id].(io.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Error(fmt.Sprintf("device %03x close: %s", id, err.Error()))
			}
		}
		bus.devices[id] = nil
	}
	bus.count = 0
	bus.dir.table = nil
}

// Directory of attached devices.
type directory struct {
	table []uint64
}

func (dir *directory) ReadWord(addr uint64) uint64 {
	if addr >= uint64(len(dir.table)) {
		return 0
	}
	return dir.table[addr]
}

// Directory is read only.
func (dir *directory) WriteWord(_ uint64, _ uint64) {}

func (dir *directory) Size() uint64 {
	return uint64(len(dir.table))
}

func (dir *directory) Reset() {}

func (dir *directory) Start() {}

func (dir *directory) Stop() {}

func (dir *directory) Identity() D.Identity {
	return D.Identity{Type: D.TypeDirectory, VendorID: D.VendorVM64, ProductID: D.ProductDirectory}
}
