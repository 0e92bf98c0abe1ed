/*
 * VM64 - System bus test set.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/VM64/emu/boot"
	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/emu/memory"
	testdev "github.com/rcornwell/VM64/emu/test_dev"
)

// Minimal device logging calls.
type stub struct {
	name   string
	ty     D.Type
	log    *[]string
	boot   uint64
	closed bool
}

func (s *stub) ReadWord(uint64) uint64  { return 0 }
func (s *stub) WriteWord(uint64, uint64) {}
func (s *stub) Reset()                   { s.record("reset") }
func (s *stub) Start()                   { s.record("start") }
func (s *stub) Stop()                    { s.record("stop") }
func (s *stub) SetBootAddress(a uint64)  { s.boot = a }
func (s *stub) Close() error             { s.closed = true; return nil }

func (s *stub) Identity() D.Identity {
	return D.Identity{Type: s.ty, VendorID: 1, ProductID: 2}
}

func (s *stub) record(op string) {
	if s.log != nil {
		*s.log = append(*s.log, s.name+" "+op)
	}
}

type nullIrq struct{}

func (nullIrq) Enqueue(uint16, uint64, uint64) {}

func TestAddDevice(t *testing.T) {
	bus := New(nullIrq{})
	dev := testdev.New()
	id, err := bus.AddDevice(memory.New(16))
	require.NoError(t, err)
	assert.Equal(t, uint16(0), id)
	id, err = bus.AddDevice(dev)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), id)
	assert.Equal(t, uint16(1), dev.ID, "attach not called")

	got, err := bus.Device(1)
	require.NoError(t, err)
	assert.Same(t, dev, got)
	_, err = bus.Device(2)
	assert.Error(t, err)
	dir, err := bus.Device(D.MaxID)
	require.NoError(t, err)
	assert.Equal(t, D.TypeDirectory, dir.Identity().Type)
	assert.Len(t, bus.Devices(), 2)
}

func TestBusFull(t *testing.T) {
	bus := New(nil)
	dev := &stub{ty: D.TypeTest}
	for i := range D.MaxID {
		id, err := bus.AddDevice(dev)
		require.NoError(t, err)
		require.Equal(t, uint16(i), id)
	}
	_, err := bus.AddDevice(dev)
	assert.ErrorIs(t, err, ErrBusFull)
}

func TestIsolation(t *testing.T) {
	bus := New(nil)
	for range 6 {
		_, err := bus.AddDevice(memory.New(64))
		require.NoError(t, err)
	}
	bus.WriteWord(D.Address(3, 10), 0x33)
	bus.WriteWord(D.Address(5, 10), 0x55)
	assert.Equal(t, uint64(0x33), bus.ReadWord(D.Address(3, 10)))
	assert.Equal(t, uint64(0x55), bus.ReadWord(D.Address(5, 10)))
	assert.Equal(t, uint64(0), bus.ReadWord(D.Address(4, 10)))
}

func TestBulk(t *testing.T) {
	bus := New(nil)
	_, err := bus.AddDevice(memory.New(64))
	require.NoError(t, err)
	dev := testdev.New()
	_, err = bus.AddDevice(dev)
	require.NoError(t, err)

	bus.Write(D.Address(0, 4), []uint64{1, 2, 3})
	assert.Equal(t, []uint64{0, 1, 2, 3, 0}, bus.Read(D.Address(0, 3), 5))

	// Within one device.
	bus.Copy(D.Address(0, 4), D.Address(0, 20), 3)
	assert.Equal(t, []uint64{1, 2, 3}, bus.Read(D.Address(0, 20), 3))

	// Across devices, no bulk support on test device.
	bus.Copy(D.Address(0, 4), D.Address(1, 8), 3)
	assert.Equal(t, []testdev.Write{{Addr: 8, Data: 1}, {Addr: 9, Data: 2}, {Addr: 10, Data: 3}}, dev.Writes())
	assert.Equal(t, []uint64{1, 2, 3}, bus.Read(D.Address(1, 8), 3))
}

// Counts larger than a device are clipped to it.
func TestBulkLimits(t *testing.T) {
	bus := New(nil)
	_, err := bus.AddDevice(memory.New(64))
	require.NoError(t, err)
	_, err = bus.AddDevice(&stub{ty: D.TypeTest})
	require.NoError(t, err)
	dev := testdev.New()
	_, err = bus.AddDevice(dev)
	require.NoError(t, err)

	bus.Write(D.Address(0, 0), []uint64{7, 8, 9})
	assert.Len(t, bus.Read(D.Address(0, 60), ^uint64(0)), 4)
	assert.Empty(t, bus.Read(D.Address(0, 100), 5))
	assert.Len(t, bus.Read(D.Address(1, 0), ^uint64(0)), D.MaxTransfer)

	bus.Copy(D.Address(0, 0), D.Address(0, 62), ^uint64(0))
	assert.Equal(t, []uint64{7, 8}, bus.Read(D.Address(0, 62), 2))

	// Source ends before destination, rest is zero filled.
	bus.Copy(D.Address(0, 62), D.Address(2, testdev.RaiseReg-3), ^uint64(0))
	assert.Equal(t, []testdev.Write{
		{Addr: testdev.RaiseReg - 3, Data: 7},
		{Addr: testdev.RaiseReg - 2, Data: 8},
		{Addr: testdev.RaiseReg - 1, Data: 0},
		{Addr: testdev.RaiseReg, Data: 0},
	}, dev.Writes())

	bus.Copy(D.Address(0, 0), D.Address(1, 0), ^uint64(0))
	bus.Copy(D.Address(0, 0), D.Address(0, 64), ^uint64(0))
}

func TestFault(t *testing.T) {
	bus := New(nil)
	_, err := bus.AddDevice(memory.New(4))
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r, "read of missing device did not panic")
		err, ok := r.(error)
		require.True(t, ok)
		var fault *D.FaultError
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, D.Address(7, 1), fault.Addr)
	}()
	bus.ReadWord(D.Address(7, 1))
}

func TestDirectory(t *testing.T) {
	bus := New(nil)
	_, err := bus.AddDevice(memory.New(4))
	require.NoError(t, err)
	_, err = bus.AddDevice(boot.New([]uint64{1}, true))
	require.NoError(t, err)
	bus.Reset()

	dir := bus.Read(D.Address(D.MaxID, 0), 10)
	wanted := []uint64{
		2,
		uint64(D.TypeMemory), D.VendorVM64, D.ProductRAM, 0,
		uint64(D.TypeBoot), D.VendorVM64, D.ProductROM, 1,
		0,
	}
	assert.Equal(t, wanted, dir)

	// Read only.
	bus.WriteWord(D.Address(D.MaxID, 0), 99)
	assert.Equal(t, uint64(2), bus.ReadWord(D.Address(D.MaxID, 0)))
}

func TestBootAddress(t *testing.T) {
	bus := New(nil)
	cpu := &stub{ty: D.TypeProcessor}
	_, err := bus.AddDevice(cpu)
	require.NoError(t, err)
	_, err = bus.AddDevice(memory.New(4))
	require.NoError(t, err)
	_, err = bus.AddDevice(boot.New(nil, false))
	require.NoError(t, err)
	_, err = bus.AddDevice(boot.New([]uint64{1}, true))
	require.NoError(t, err)
	_, err = bus.AddDevice(boot.New([]uint64{2}, true))
	require.NoError(t, err)

	bus.Reset()
	assert.Equal(t, uint64(3)<<D.IDShift, bus.BootAddress())
	assert.Equal(t, uint64(3)<<D.IDShift, cpu.boot)
}

func TestOrder(t *testing.T) {
	var log []string
	bus := New(nil)
	for _, dev := range []*stub{
		{name: "cpu", ty: D.TypeProcessor, log: &log},
		{name: "irq", ty: D.TypeInterrupt, log: &log},
		{name: "ram", ty: D.TypeMemory, log: &log},
	} {
		_, err := bus.AddDevice(dev)
		require.NoError(t, err)
	}

	bus.Start()
	assert.Equal(t, []string{
		"irq reset", "ram reset", "cpu reset",
		"irq start", "ram start", "cpu start",
	}, log)

	log = nil
	bus.Stop()
	assert.Equal(t, []string{"cpu stop", "irq stop", "ram stop"}, log)
}

func TestDispose(t *testing.T) {
	bus := New(nil)
	dev := &stub{ty: D.TypeTest}
	_, err := bus.AddDevice(dev)
	require.NoError(t, err)
	bus.Dispose()
	assert.True(t, dev.closed)
	assert.Empty(t, bus.Devices())
}
