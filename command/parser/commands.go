/*
 * VM64 - Console commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	command "github.com/rcornwell/VM64/command/command"
	core "github.com/rcornwell/VM64/emu/core"
	D "github.com/rcornwell/VM64/emu/device"
	I "github.com/rcornwell/VM64/emu/instruction"
	"github.com/rcornwell/VM64/emu/interrupt"
	"github.com/rcornwell/VM64/util/hex"
)

var cmdList = []cmd{
	{Name: "reset", Min: 3, Process: reset},
	{Name: "start", Min: 3, Process: start},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "break", Min: 1, Process: stop},
	{Name: "step", Min: 3, Process: step},
	{Name: "show", Min: 2, Process: show, Complete: func(line *cmdLine) []string {
		return line.scanOpts(command.ValidShow)
	}},
	{Name: "examine", Min: 1, Process: examine, Complete: func(line *cmdLine) []string {
		return line.scanOpts(command.ValidExamine)
	}},
	{Name: "deposit", Min: 1, Process: deposit},
	{Name: "register", Min: 3, Process: register, Complete: registerComplete},
	{Name: "quit", Min: 1, Process: quit},
}

// Make sure nothing follows command.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("unexpected text: " + line.line[line.pos:])
	}
	return nil
}

// Handle commands that quit simulation.
func quit(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, line.checkEOL()
}

// Reset all devices and processor.
func reset(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reset")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.Reset()
	return false, nil
}

// Reset and start the machine.
func start(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.Start()
	return false, nil
}

// Continue CPU from where it left off.
func cont(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Continue")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.Continue()
	return false, nil
}

// Stop the CPU.
func stop(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.Break()
	showInst(core)
	return false, nil
}

// Execute some instructions, default one.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	count := uint64(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
		if err = line.checkEOL(); err != nil {
			return false, err
		}
	}
	if err := core.Step(int(count)); err != nil {
		return false, err
	}
	showInst(core)
	return false, nil
}

// Process the show command.
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")
	optlist, err := line.getOptions(command.ValidShow)
	if err != nil {
		return false, err
	}
	if len(optlist) == 0 {
		return false, errors.New("show requires one of regs, devices, irq, inst or cache")
	}

	for _, opt := range optlist {
		switch opt.Name {
		case "regs":
			showRegs(core)
		case "devices":
			showDevices(core)
		case "irq":
			showIRQ(core)
		case "inst":
			showInst(core)
		case "cache":
			showCache(core)
		}
	}
	return false, nil
}

// Print registers four to a line.
func showRegs(core *core.Core) {
	var str strings.Builder
	for i, reg := range core.Registers() {
		fmt.Fprintf(&str, "%-5s ", reg.Name)
		hex.FormatWord(&str, reg.Value)
		if (i % 4) == 3 {
			str.WriteByte('\n')
		} else {
			str.WriteString("  ")
		}
	}
	fmt.Fprint(out, str.String())
}

// Print attached devices.
func showDevices(core *core.Core) {
	for _, entry := range core.Bus.Devices() {
		ident := entry.Device.Identity()
		text := fmt.Sprintf("%03x %-10s vendor=%08x product=%04x", entry.ID, ident.Type, ident.VendorID, ident.ProductID)
		if shower, ok := entry.Device.(command.Shower); ok {
			text += " " + shower.Show()
		}
		fmt.Fprintln(out, text)
	}
	fmt.Fprintf(out, "%03x %s\n", D.MaxID, D.TypeDirectory)
}

// Print interrupt state, queued records and installed handlers.
func showIRQ(core *core.Core) {
	fmt.Fprintf(out, "enabled=%t in_isr=%t %s\n", core.CPU.InterruptsEnabled(), core.CPU.InISR(), core.IRQ.Show())
	for _, rec := range core.IRQ.Pending() {
		fmt.Fprintf(out, "  type=%03x handler=%016x data1=%016x data2=%016x\n", rec.Type, rec.Handler, rec.Data1, rec.Data2)
	}
	for ty := range uint16(interrupt.NumVectors) {
		if handler := core.IRQ.Vector(ty); handler != 0 {
			fmt.Fprintf(out, "  vector %03x -> %016x\n", ty, handler)
		}
	}
}

// Print instruction at RIP.
func showInst(core *core.Core) {
	rip, _ := core.Register(I.RIP.String())
	var str strings.Builder
	hex.FormatAddr(&str, rip)
	text, _, err := core.Disassemble(rip)
	if err != nil {
		text = err.Error()
	}
	fmt.Fprintf(out, "%s  %s\n", str.String(), text)
}

// Print cache statistics.
func showCache(core *core.Core) {
	stats := core.CPU.CacheStats()
	fmt.Fprintf(out, "enabled=%t valid=%t base=%016x entries=%d hits=%d misses=%d flushes=%d\n",
		core.CPU.CacheEnabled(), stats.Valid, stats.Base, stats.Entries, stats.Hits, stats.Misses, stats.Flushes)
}
