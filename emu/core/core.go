/*
 * VM64 - Machine assembly and host control.
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

package core

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	config "github.com/rcornwell/VM64/config/configparser"
	"github.com/rcornwell/VM64/emu/boot"
	"github.com/rcornwell/VM64/emu/bus"
	"github.com/rcornwell/VM64/emu/cpu"
	D "github.com/rcornwell/VM64/emu/device"
	"github.com/rcornwell/VM64/emu/disassemble"
	I "github.com/rcornwell/VM64/emu/instruction"
	"github.com/rcornwell/VM64/emu/interrupt"
	"github.com/rcornwell/VM64/util/debug"
)

// Fixed device ids.
const (
	CPUID = 0
	IRQID = 1
)

type Core struct {
	Bus *bus.Bus
	IRQ *interrupt.Controller
	CPU *cpu.Processor
}

// Register and its value.
type RegisterValue struct {
	Name  string
	Value uint64
}

// Create machine with processor and interrupt controller attached.
func New() (*Core, error) {
	irq := interrupt.New()
	core := &Core{
		Bus: bus.New(irq),
		IRQ: irq,
	}
	core.CPU = cpu.New(core.Bus, irq)
	if _, err := core.Bus.AddDevice(core.CPU); err != nil {
		return nil, err
	}
	if _, err := core.Bus.AddDevice(irq); err != nil {
		return nil, err
	}
	return core, nil
}

// Attach device at next id.
func (core *Core) AddDevice(dev D.Device) (uint16, error) {
	id, err := core.Bus.AddDevice(dev)
	if err == nil {
		slog.Info(fmt.Sprintf("Attached %s at %03x", dev.Identity().Type, id))
	}
	return id, err
}

func (core *Core) SetTimerInterval(interval time.Duration) {
	core.CPU.SetTimerInterval(interval)
}

func (core *Core) SetCacheEnabled(enable bool) {
	core.CPU.SetCacheEnabled(enable)
}

// Attach devices from configuration file.
func (core *Core) LoadConfig(name string) error {
	return config.LoadConfigFile(name, core)
}

// Attach image as boot device.
func (core *Core) LoadBoot(name string) error {
	rom, err := boot.LoadFile(name)
	if err != nil {
		return err
	}
	rom.SetBootable(true)
	_, err = core.AddDevice(rom)
	return err
}

// Reset all devices and start processor.
func (core *Core) Start() {
	core.CPU.Break()
	core.Bus.Start()
}

// Stop all devices.
func (core *Core) Stop() {
	core.Bus.Stop()
}

// Stop processor and reset all devices.
func (core *Core) Reset() {
	core.CPU.Break()
	core.Bus.Reset()
}

// Resume processor.
func (core *Core) Continue() {
	core.CPU.Continue()
}

// Pause processor.
func (core *Core) Break() {
	core.CPU.Break()
}

func (core *Core) Running() bool {
	return core.CPU.Running()
}

// Execute count instructions.
func (core *Core) Step(count int) error {
	if core.CPU.Running() {
		return errors.New("processor is running")
	}
	for range count {
		if err := core.CPU.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Turn bus faults into errors.
func recoverFault(err *error) {
	if r := recover(); r != nil {
		fault, ok := r.(*D.FaultError)
		if !ok {
			panic(r)
		}
		*err = fault
	}
}

// Read count words.
func (core *Core) Examine(addr uint64, count uint64) (data []uint64, err error) {
	defer recoverFault(&err)
	return core.Bus.Read(addr, count), nil
}

// Write a word, dropping any decoded instructions.
func (core *Core) Deposit(addr uint64, value uint64) (err error) {
	defer recoverFault(&err)
	core.Bus.WriteWord(addr, value)
	core.CPU.InvalidateCache()
	return nil
}

// Disassemble instruction at addr, returning text and length.
func (core *Core) Disassemble(addr uint64) (text string, length uint64, err error) {
	defer recoverFault(&err)
	text, length = disassemble.PrintInst(core.Bus, addr)
	return text, length, nil
}

// All registers in order.
func (core *Core) Registers() []RegisterValue {
	regs := make([]RegisterValue, 0, I.NumRegisters)
	for r := range I.Register(I.NumRegisters) {
		regs = append(regs, RegisterValue{Name: r.String(), Value: core.CPU.ReadRegister(r)})
	}
	return regs
}

// Read register by name.
func (core *Core) Register(name string) (uint64, error) {
	r, ok := core.CPU.RegisterByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown register: %s", name)
	}
	return core.CPU.ReadRegister(r), nil
}

// Set register by name.
func (core *Core) SetRegister(name string, value uint64) error {
	r, ok := core.CPU.RegisterByName(name)
	if !ok {
		return fmt.Errorf("unknown register: %s", name)
	}
	if r.ReadOnly() {
		return fmt.Errorf("register %s is read only", r)
	}
	core.CPU.WriteRegister(r, value)
	if r == I.RIP {
		core.CPU.InvalidateCache()
	}
	return nil
}

// Stop everything and release devices.
func (core *Core) Shutdown() {
	slog.Info("Shutting down machine")
	core.Bus.Dispose()
	if err := debug.Close(); err != nil {
		slog.Warn("closing debug file: " + err.Error())
	}
}

// register options on initialize.
func init() {
	config.RegisterOption("TIMER", setTimer)
	config.RegisterOption("CACHE", setCache)
}

// Set timer interval in milliseconds.
func setTimer(m config.Machine, value string, _ []config.Option) error {
	ms, err := strconv.ParseUint(value, 10, 32)
	if err != nil || ms == 0 {
		return fmt.Errorf("timer interval invalid: %s", value)
	}
	m.SetTimerInterval(time.Duration(ms) * time.Millisecond)
	return nil
}

// Enable or disable instruction cache.
func setCache(m config.Machine, value string, _ []config.Option) error {
	switch strings.ToUpper(value) {
	case "ON":
		m.SetCacheEnabled(true)
	case "OFF":
		m.SetCacheEnabled(false)
	default:
		return fmt.Errorf("cache must be on or off: %s", value)
	}
	return nil
}
