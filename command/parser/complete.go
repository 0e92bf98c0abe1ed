/*
 * VM64 - Console command completion.
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
	"slices"
	"strings"
	"unicode"

	command "github.com/rcornwell/VM64/command/command"
	I "github.com/rcornwell/VM64/emu/instruction"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// We have a command, let it try and complete it.
	if name != "" && line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		match := matchList(name)
		if len(match) != 1 || match[0].Complete == nil {
			return nil
		}
		return match[0].Complete(&line)
	}

	// Try and match one command.
	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, strings.ToLower(strings.TrimSpace(commandLine))) {
			matches = append(matches, m.Name+" ")
		}
	}
	slices.Sort(matches)
	return matches
}

// Split line into text before the last word and the word itself.
func (line *cmdLine) lastWord() (string, string) {
	split := strings.LastIndexFunc(line.line, unicode.IsSpace) + 1
	return line.line[:split], strings.ToLower(line.line[split:])
}

// Complete last word as an option.
func (line *cmdLine) scanOpts(cmdType int) []string {
	leading, partial := line.lastWord()
	matches := []string{}
	for _, opt := range command.OptionList {
		if (opt.OptionValid&cmdType) == 0 || !strings.HasPrefix(opt.Name, partial) {
			continue
		}
		if opt.OptionType == command.OptionNumber {
			matches = append(matches, leading+opt.Name+"=")
		} else {
			matches = append(matches, leading+opt.Name+" ")
		}
	}
	return matches
}

// Complete register name.
func registerComplete(line *cmdLine) []string {
	line.skipSpace()
	if strings.ContainsFunc(line.line[line.pos:], unicode.IsSpace) {
		return nil
	}
	leading, partial := line.lastWord()
	partial = strings.ToUpper(partial)
	matches := []string{}
	for r := range I.Register(I.NumRegisters) {
		name := r.String()
		if strings.HasPrefix(name, partial) {
			matches = append(matches, leading+name+" ")
		}
	}
	return matches
}
