/*
 * VM64 - Configuration file parser.
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	D "github.com/rcornwell/VM64/emu/device"
)

// Machine being configured.
type Machine interface {
	AddDevice(dev D.Device) (uint16, error)
	SetTimerInterval(interval time.Duration)
	SetCacheEnabled(enable bool)
}

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Current option line being parsed.
type optionLine struct {
	line   string // Current option line.
	pos    int    // Current position in line.
	number int    // Line number in file.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <model> <whitespace> <value> <whitespace> <options> |
 *           <model> <whitespace> <value> |
 *           <model>
 * <value> ::= <quoteopt> | <word>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <string> ['=' <quoteopt>] *(<commaopt>)
 * <commaopt> ::= ',' *(<whitespace>) <string>
 * <quoteopt> ::= <word> | '"' *(<letter> | <whitespace>) '"'
 * <word> ::= *(not <whitespace>)
 * <string> ::= *(<letter> | <number>)
 */

const (
	TypeModel   = 1 + iota // Device with value and options.
	TypeOption             // Accepts a single value.
	TypeOptions            // Accepts a value and list of options.
	TypeSwitch             // Name only.
)

type createFunc func(Machine, string, []Option) error

// Model creation list.
type modelDef struct {
	create createFunc
	ty     int
}

var models = map[string]modelDef{}

// Return type of model or 0 if no model.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

// Register should be called from init functions.
func RegisterModel(mod string, ty int, fn func(Machine, string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering model: " + mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn func(Machine, string, []Option) error) {
	RegisterModel(mod, TypeSwitch, fn)
}

// Register should be called from init functions.
func RegisterOption(mod string, fn func(Machine, string, []Option) error) {
	RegisterModel(mod, TypeOption, fn)
}

// Create model of given type.
func create(m Machine, mod string, ty int, value string, options []Option) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown model: " + mod)
	}
	if model.ty != ty {
		return fmt.Errorf("%s not a %s type", mod, typeName(ty))
	}
	return model.create(m, value, options)
}

func typeName(ty int) string {
	switch ty {
	case TypeModel:
		return "device"
	case TypeOption:
		return "option"
	case TypeOptions:
		return "options"
	case TypeSwitch:
		return "switch"
	}
	return "unknown"
}

// Load in a configuration file.
func LoadConfigFile(name string, m Machine) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file, m)
}

// Process configuration lines from reader.
func LoadConfig(in io.Reader, m Machine) error {
	reader := bufio.NewReader(in)
	number := 0
	for {
		text, err := reader.ReadString('\n')
		number++
		if len(text) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		line := optionLine{line: strings.TrimRight(text, "\r\n"), number: number}
		if err := line.parseLine(m); err != nil {
			return err
		}
	}
	return nil
}

// Parse one line from file.
func (line *optionLine) parseLine(m Machine) error {
	model := line.parseModel()
	if model == "" {
		return nil
	}
	switch getModel(model) {
	case TypeModel, TypeOptions:
		value, err := line.parseValue(false)
		if err != nil {
			return err
		}
		if value == "" {
			return fmt.Errorf("%s requires a value, line: %d", model, line.number)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return wrap(create(m, model, getModel(model), value, options), line.number)

	case TypeOption:
		value, err := line.parseValue(false)
		if err != nil {
			return err
		}
		line.skipSpace()
		if !line.isEOL() || value == "" {
			return fmt.Errorf("option: %s not followed by single value, line: %d", model, line.number)
		}
		return wrap(create(m, model, TypeOption, value, nil), line.number)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("switch: %s followed by options, line: %d", model, line.number)
		}
		return wrap(create(m, model, TypeSwitch, "", nil), line.number)
	}
	return fmt.Errorf("no type: %s registered, line: %d", model, line.number)
}

// Add line number to model errors.
func wrap(err error, number int) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w, line: %d", err, number)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Parse model name, empty if blank line.
func (line *optionLine) parseModel() string {
	line.skipSpace()
	model := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) {
			break
		}
		model += string([]byte{by})
		line.pos++
	}
	return strings.ToUpper(model)
}

// Parse value, either quoted or up to next space. Option values also
// stop at a comma.
func (line *optionLine) parseValue(option bool) (string, error) {
	line.skipSpace()
	if line.isEOL() {
		return "", nil
	}
	if line.line[line.pos] == '"' {
		return line.parseQuoteString()
	}
	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) || (option && by == ',') {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return value, nil
}

// Parse string enclosed in quotes, "" is a single quote.
func (line *optionLine) parseQuoteString() (string, error) {
	value := ""
	line.pos++ // Skip opening quote.
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				line.pos++
				value += "\""
				continue
			}
			return value, nil
		}
		value += string([]byte{by})
	}
	return "", fmt.Errorf("invalid quoted string line: %d [%d]", line.number, line.pos)
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid option encountered line: %d [%d]", line.number, line.pos)
	}
	value := ""
	for !line.isEOL() {
		by = line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return value, nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()

	value, err := line.getName()
	if value == "" {
		return nil, err
	}

	option := Option{Name: value}
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		line.pos++
		v, err := line.parseValue(true)
		if err != nil {
			return nil, err
		}
		option.EqualOpt = v
	}

	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++ // Skip comma
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}

// Return all option names and values flattened and upper cased.
func Flags(options []Option) []string {
	flags := []string{}
	for _, opt := range options {
		flags = append(flags, strings.ToUpper(opt.Name))
		for _, value := range opt.Value {
			flags = append(flags, strings.ToUpper(*value))
		}
	}
	return flags
}
