/*
 * VM64 - Main memory test set.
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

package memory

import (
	"testing"
	"time"

	D "github.com/rcornwell/VM64/emu/device"
)

func TestReadWrite(t *testing.T) {
	ram := New(1024)
	if ram.Size() != 1024 {
		t.Errorf("Size not correct got: %d expected: %d", ram.Size(), 1024)
	}
	for i := range uint64(1024) {
		ram.WriteWord(i, i*3)
	}
	for i := range uint64(1024) {
		r := ram.ReadWord(i)
		if r != i*3 {
			t.Errorf("ReadWord not correct got: %d expected: %d", r, i*3)
		}
	}

	// Past end reads zero and drops writes.
	ram.WriteWord(1024, 0xff)
	if r := ram.ReadWord(1024); r != 0 {
		t.Errorf("ReadWord past end got: %x expected: 0", r)
	}

	ram.Reset()
	if r := ram.ReadWord(10); r != 30 {
		t.Errorf("Reset changed memory got: %d expected: 30", r)
	}
}

func TestBulk(t *testing.T) {
	ram := New(16)
	ram.Write(14, []uint64{1, 2, 3, 4})
	if ram.ReadWord(14) != 1 || ram.ReadWord(15) != 2 {
		t.Errorf("Write at end got: %d %d expected: 1 2", ram.ReadWord(14), ram.ReadWord(15))
	}
	data := ram.Read(13, 5)
	wanted := []uint64{0, 1, 2}
	if len(data) != len(wanted) {
		t.Fatalf("Read at end length got: %d expected: %d", len(data), len(wanted))
	}
	for i := range wanted {
		if data[i] != wanted[i] {
			t.Errorf("Read word %d got: %d expected: %d", i, data[i], wanted[i])
		}
	}
	if len(ram.Read(100, 3)) != 0 {
		t.Errorf("Read past end wrong length")
	}
}

// Huge or wrapping counts are clipped to memory.
func TestBulkLimits(t *testing.T) {
	ram := New(16)
	for i := range uint64(16) {
		ram.WriteWord(i, i+1)
	}
	if n := len(ram.Read(4, ^uint64(0))); n != 12 {
		t.Errorf("Read all ones count length got: %d expected: 12", n)
	}
	if n := len(ram.Read(^uint64(0)-1, 8)); n != 0 {
		t.Errorf("Read wrapping address length got: %d expected: 0", n)
	}

	ram.Copy(12, 2, ^uint64(0))
	wanted := []uint64{1, 2, 13, 14, 15, 16, 0, 0}
	for i, w := range wanted {
		if r := ram.ReadWord(uint64(i)); r != w {
			t.Errorf("Copy word %d got: %d expected: %d", i, r, w)
		}
	}
	if r := ram.ReadWord(15); r != 0 {
		t.Errorf("Copy fill at end got: %d expected: 0", r)
	}
	ram.Copy(^uint64(0)-2, 0, 4)
	if r := ram.ReadWord(0); r != 0 {
		t.Errorf("Copy from past end got: %d expected: 0", r)
	}
	ram.Copy(0, ^uint64(0)-2, 4)
}

func TestCopyOverlap(t *testing.T) {
	ram := New(16)
	for i := range uint64(8) {
		ram.WriteWord(i, i+1)
	}
	ram.Copy(0, 2, 6)
	wanted := []uint64{1, 2, 1, 2, 3, 4, 5, 6}
	for i, w := range wanted {
		r := ram.ReadWord(uint64(i))
		if r != w {
			t.Errorf("Copy word %d got: %d expected: %d", i, r, w)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		value string
		size  uint64
		err   bool
	}{
		{"4096", 4096, false},
		{"64k", 64 * 1024, false},
		{"2M", 2 * 1024 * 1024, false},
		{"0x100", 256, false},
		{"0", 0, true},
		{"100M", 0, true},
		{"abc", 0, true},
	}
	for _, test := range tests {
		size, err := ParseSize(test.value)
		if (err != nil) != test.err {
			t.Errorf("ParseSize %s error got: %v", test.value, err)
			continue
		}
		if size != test.size {
			t.Errorf("ParseSize %s got: %d expected: %d", test.value, size, test.size)
		}
	}
}

type testMachine struct {
	devices []D.Device
}

func (m *testMachine) AddDevice(dev D.Device) (uint16, error) {
	m.devices = append(m.devices, dev)
	return uint16(len(m.devices) - 1), nil
}

func (m *testMachine) SetTimerInterval(time.Duration) {}

func (m *testMachine) SetCacheEnabled(bool) {}

func TestCreate(t *testing.T) {
	m := &testMachine{}
	if err := create(m, "8K", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(m.devices) != 1 {
		t.Fatalf("Device not added")
	}
	ram, ok := m.devices[0].(*RAM)
	if !ok || ram.Size() != 8192 {
		t.Errorf("Created wrong device: %v", m.devices[0].Identity())
	}
	if err := create(m, "junk", nil); err == nil {
		t.Errorf("Create with bad size succeeded")
	}
}
