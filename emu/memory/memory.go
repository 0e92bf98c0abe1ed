/*
 * VM64 - Main memory.
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
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	config "github.com/rcornwell/VM64/config/configparser"
	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/util/debug"
)

// Largest memory in words.
const MaxSize = 64 * 1024 * 1024

type RAM struct {
	mem []uint64
}

var debugMsk int

const (
	debugRange = 1 << iota
)

// Enable debug options.
func Debug(opt string) error {
	if opt != "RANGE" {
		return errors.New("memory debug option invalid: " + opt)
	}
	debugMsk |= debugRange
	return nil
}

// Create memory of size words.
func New(size uint64) *RAM {
	if size > MaxSize {
		size = MaxSize
	}
	return &RAM{mem: make([]uint64, size)}
}

// Return size of memory in words.
func (ram *RAM) Size() uint64 {
	return uint64(len(ram.mem))
}

// Read a word, out of range returns 0.
func (ram *RAM) ReadWord(addr uint64) uint64 {
	if addr >= uint64(len(ram.mem)) {
		debug.Debugf("RAM", debugMsk, debugRange, "read past end %x", addr)
		return 0
	}
	return ram.mem[addr]
}

// Write a word, out of range is dropped.
func (ram *RAM) WriteWord(addr uint64, data uint64) {
	if addr >= uint64(len(ram.mem)) {
		debug.Debugf("RAM", debugMsk, debugRange, "write past end %x", addr)
		return
	}
	ram.mem[addr] = data
}

// Read block of words, stopping at end of memory.
func (ram *RAM) Read(addr uint64, count uint64) []uint64 {
	size := uint64(len(ram.mem))
	if addr >= size {
		return []uint64{}
	}
	return slices.Clone(ram.mem[addr : addr+min(count, size-addr)])
}

// Write block of words, any part past end is dropped.
func (ram *RAM) Write(addr uint64, data []uint64) {
	size := uint64(len(ram.mem))
	if addr >= size {
		return
	}
	copy(ram.mem[addr:], data)
}

// Copy within memory, overlapping moves work as memmove.
// Source words past end read as 0, destination words past end are dropped.
func (ram *RAM) Copy(src uint64, dst uint64, count uint64) {
	size := uint64(len(ram.mem))
	if dst >= size {
		return
	}
	count = min(count, size-dst)
	valid := uint64(0)
	if src < size {
		valid = min(count, size-src)
	}
	copy(ram.mem[dst:dst+valid], ram.mem[src:src+valid])
	clear(ram.mem[dst+valid : dst+count])
}

// Contents survive reset so a loaded image can be started.
func (ram *RAM) Reset() {}

func (ram *RAM) Start() {}

func (ram *RAM) Stop() {}

func (ram *RAM) Identity() D.Identity {
	return D.Identity{Type: D.TypeMemory, VendorID: D.VendorVM64, ProductID: D.ProductRAM}
}

// Parse size with optional K or M suffix.
func ParseSize(value string) (uint64, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	mult := uint64(1)
	switch {
	case strings.HasSuffix(value, "K"):
		mult = 1024
		value = strings.TrimSuffix(value, "K")
	case strings.HasSuffix(value, "M"):
		mult = 1024 * 1024
		value = strings.TrimSuffix(value, "M")
	}
	size, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid memory size: %s", value)
	}
	size *= mult
	if size == 0 || size > MaxSize {
		return 0, fmt.Errorf("memory size out of range: %d", size)
	}
	return size, nil
}

// register a device on initialize.
func init() {
	config.RegisterOption("RAM", create)
}

// Create memory and attach it.
func create(m config.Machine, value string, _ []config.Option) error {
	size, err := ParseSize(value)
	if err != nil {
		return err
	}
	_, err = m.AddDevice(New(size))
	return err
}

// Describe memory for console.
func (ram *RAM) Show() string {
	return fmt.Sprintf("size=%d words", len(ram.mem))
}
