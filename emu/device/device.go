/*
 * VM64 - Device interface.
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

package device

import "fmt"

// Address layout, top 12 bits select device.
const (
	IDShift   = 52
	LocalMask = (uint64(1) << IDShift) - 1
	MaxID     = 0xfff // Reserved for directory.
	NoDev     = 0xffff
)

// Type of device, reported in directory.
type Type uint64

const (
	TypeProcessor Type = 1 + iota
	TypeInterrupt
	TypeMemory
	TypeBoot
	TypeDisk
	TypeKeyboard
	TypeDisplay
	TypeTest
	TypeDirectory
)

var typeNames = map[Type]string{
	TypeProcessor: "processor",
	TypeInterrupt: "interrupt",
	TypeMemory:    "memory",
	TypeBoot:      "boot",
	TypeDisk:      "disk",
	TypeKeyboard:  "keyboard",
	TypeDisplay:   "display",
	TypeTest:      "test",
	TypeDirectory: "directory",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type%d", uint64(t))
}

// Vendor id for devices in this emulator.
const VendorVM64 = 0x564d3634

// Product ids.
const (
	ProductCPU = 0x0100 + iota
	ProductIRQ
	ProductRAM
	ProductROM
	ProductTest
	ProductDirectory
)

// Static identity of a device.
type Identity struct {
	Type      Type
	VendorID  uint64
	ProductID uint64
}

// Interrupt types.
const (
	IrqInvalidInstruction uint16 = 0
	IrqDivideByZero       uint16 = 1
	IrqSystemTimer        uint16 = 2
	IrqKeyboard           uint16 = 3
	IrqDisk               uint16 = 4
	IrqSoftware           uint16 = 16 // First type for guest use.
	IrqMask               uint16 = 0xfff
)

// Interface all devices on the bus implement.
type Device interface {
	ReadWord(addr uint64) uint64
	WriteWord(addr uint64, data uint64)
	Reset()
	Start()
	Stop()
	Identity() Identity
}

// Word access to the whole address space.
type Bus interface {
	ReadWord(addr uint64) uint64
	WriteWord(addr uint64, data uint64)
}

// Post interrupts.
type Raiser interface {
	Enqueue(irq uint16, data1, data2 uint64)
}

// Devices with a known number of addressable words.
type Sizer interface {
	Size() uint64
}

// Most words moved in one transfer with a device that has no size.
const MaxTransfer = 1 << 16

// Devices that can read a block faster than word at a time.
// Result stops at the end of the device.
type BulkReader interface {
	Read(addr uint64, count uint64) []uint64
}

// Devices that can write a block faster than word at a time.
type BulkWriter interface {
	Write(addr uint64, data []uint64)
}

// Devices that can move data internally.
type Copier interface {
	Copy(src uint64, dst uint64, count uint64)
}

// Devices that want to know where they live.
type Attacher interface {
	Attach(id uint16, bus Bus, irq Raiser)
}

// Devices that need the boot address before they start.
type Booter interface {
	SetBootAddress(addr uint64)
}

// Build address from device id and local address.
func Address(id uint16, local uint64) uint64 {
	return (uint64(id) << IDShift) | (local & LocalMask)
}

// Split address into device id and local address.
func Split(addr uint64) (uint16, uint64) {
	return uint16(addr >> IDShift), addr & LocalMask
}

// Host level failure, emulation can not continue.
type FaultError struct {
	Op     string // Operation.
	Addr   uint64 // Address referenced.
	Reason string // What went wrong.
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("bus %s %016x: %s", e.Op, e.Addr, e.Reason)
}
