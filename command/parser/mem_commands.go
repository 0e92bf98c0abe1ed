/*
 * VM64 - Memory and register console commands.
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
	"github.com/rcornwell/VM64/util/hex"
)

// Words per line of examine output.
const lineWords = 4

type memoryOpts struct {
	count uint64 // Number of words or instructions.
	inst  bool   // Disassemble.
	char  bool   // Show characters.
}

// Collect examine options.
func (line *cmdLine) parseMemoryOptions() (*memoryOpts, error) {
	options := &memoryOpts{count: 1}

	// Bare number is the count.
	line.skipSpace()
	if !line.isEOL() {
		if num, err := line.getNumber(); err == nil {
			options.count = num
		}
	}

	optlist, err := line.getOptions(command.ValidExamine)
	if err != nil {
		return nil, err
	}
	for _, opt := range optlist {
		switch opt.Name {
		case "inst":
			options.inst = true
		case "char":
			options.char = true
		case "hex":
			options.inst = false
			options.char = false
		case "count":
			options.count = opt.Value
		}
	}
	if options.count == 0 {
		return nil, errors.New("count must be greater than zero")
	}
	return options, nil
}

// Display memory.
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	addr, err := line.getAddress()
	if err != nil {
		return false, err
	}
	options, err := line.parseMemoryOptions()
	if err != nil {
		return false, err
	}

	var str strings.Builder
	if options.inst {
		for range options.count {
			text, length, err := core.Disassemble(addr)
			if err != nil {
				return false, err
			}
			hex.FormatAddr(&str, addr)
			str.WriteString("  " + text + "\n")
			addr += max(length, 1)
		}
		fmt.Fprint(out, str.String())
		return false, nil
	}

	data, err := core.Examine(addr, options.count)
	if err != nil {
		return false, err
	}
	for i := 0; i < len(data); i += lineWords {
		words := data[i:min(i+lineWords, len(data))]
		hex.FormatAddr(&str, addr+uint64(i))
		str.WriteString("  ")
		hex.FormatWords(&str, words)
		if options.char {
			str.WriteByte(' ')
			hex.FormatChars(&str, words)
		}
		str.WriteString("\n")
	}
	fmt.Fprint(out, str.String())
	return false, nil
}

// Store values at consecutive addresses.
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	addr, err := line.getAddress()
	if err != nil {
		return false, err
	}

	values := []uint64{}
	for {
		line.skipSpace()
		if line.isEOL() {
			break
		}
		value, err := line.getNumber()
		if err != nil {
			return false, err
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return false, errors.New("deposit requires a value")
	}

	for i, value := range values {
		if err := core.Deposit(addr+uint64(i), value); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Show or set a register.
func register(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Register")
	name := line.getToken()
	if name == "" {
		return false, errors.New("register name required")
	}

	line.skipSpace()
	if line.isEOL() {
		value, err := core.Register(name)
		if err != nil {
			return false, err
		}
		var str strings.Builder
		hex.FormatWord(&str, value)
		fmt.Fprintf(out, "%s=%s\n", strings.ToUpper(name), str.String())
		return false, nil
	}

	value, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return false, core.SetRegister(name, value)
}
