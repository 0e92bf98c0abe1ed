/*
 * VM64 - Console command parser.
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
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	command "github.com/rcornwell/VM64/command/command"
	core "github.com/rcornwell/VM64/emu/core"
	D "github.com/rcornwell/VM64/emu/device"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Where command output goes.
var out io.Writer = os.Stdout

// Redirect command output.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Execute the command line given, returns true if console should exit.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		line.skipSpace()
		if line.isEOL() {
			return false, nil
		}
		return false, errors.New("command not found: " + commandLine)
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, command) && len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	// If command empty just return.
	if command == "" {
		return []cmd{}
	}

	// Try and match one command.
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Match option by name, unique prefix allowed.
func matchOption(option string, cmdType int) command.Options {
	var found []command.Options
	for _, opt := range command.OptionList {
		if (opt.OptionValid & cmdType) == 0 {
			continue
		}
		if opt.Name == option {
			return opt
		}
		if strings.HasPrefix(opt.Name, option) {
			found = append(found, opt)
		}
	}
	if len(found) == 1 {
		return found[0]
	}
	return command.Options{OptionType: -1}
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Return next space separated token.
func (line *cmdLine) getToken() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Get a word of letters, returns empty and leaves position if not a word.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	pos := line.pos
	token := line.getToken()
	for _, by := range token {
		if !unicode.IsLetter(by) {
			line.pos = pos
			return ""
		}
	}
	return strings.ToLower(token)
}

// Parse number, decimal or with 0x, 0o or 0b prefix.
func (line *cmdLine) getNumber() (uint64, error) {
	pos := line.pos
	token := line.getToken()
	if token == "" {
		return 0, errors.New("number expected")
	}
	value, err := strconv.ParseUint(token, 0, 64)
	if err != nil {
		line.pos = pos
		return 0, errors.New("not a number: " + token)
	}
	return value, nil
}

// Parse address, either a number or device:local in hex.
func (line *cmdLine) getAddress() (uint64, error) {
	pos := line.pos
	token := line.getToken()
	if token == "" {
		return 0, errors.New("address expected")
	}
	dev, local, found := strings.Cut(token, ":")
	if !found {
		line.pos = pos
		return line.getNumber()
	}
	id, err := strconv.ParseUint(dev, 16, 12)
	if err != nil {
		return 0, errors.New("invalid device id: " + dev)
	}
	offset, err := strconv.ParseUint(local, 16, 52)
	if err != nil {
		return 0, errors.New("invalid device address: " + local)
	}
	return D.Address(uint16(id), offset), nil
}

// Get an option, name=value for number options.
func (line *cmdLine) getOption(cmdType int) (*command.CmdOption, error) {
	token := strings.ToLower(line.getToken())
	if token == "" {
		return nil, nil
	}
	name, value, equal := strings.Cut(token, "=")

	match := matchOption(name, cmdType)
	opt := command.CmdOption{Name: match.Name}
	switch match.OptionType {
	case -1:
		return nil, errors.New("unknown option: " + name)
	case command.OptionSwitch:
		if equal {
			return nil, errors.New("switch option can't have arguments: " + name)
		}
	case command.OptionNumber:
		if !equal {
			return nil, errors.New("number options must be followed by number: " + name)
		}
		num, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, errors.New("number options must be followed by number: " + name)
		}
		opt.Value = num
	default:
		return nil, errors.New("invalid option type: " + name)
	}
	return &opt, nil
}

// Scan options and return a list of options.
func (line *cmdLine) getOptions(cmdType int) ([]*command.CmdOption, error) {
	optlist := []*command.CmdOption{}
	for {
		opt, err := line.getOption(cmdType)
		if err != nil {
			return nil, err
		}
		if opt == nil {
			return optlist, nil
		}
		optlist = append(optlist, opt)
	}
}
