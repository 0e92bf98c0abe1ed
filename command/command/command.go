/*
 * VM64 - Console command definitions.
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

package command

// Option given to a console command.
type CmdOption struct {
	Name  string // Name of option.
	Value uint64 // Numeric value.
}

// List of option types.
const (
	OptionSwitch = 1 + iota
	OptionNumber
)

// Commands an option applies to.
const (
	ValidShow = 1 << iota
	ValidExamine
)

type Options struct {
	Name        string // Name of option.
	OptionType  int    // Type of argument.
	OptionValid int    // Option valid for command type.
}

// Options understood by the console.
var OptionList = []Options{
	{Name: "regs", OptionType: OptionSwitch, OptionValid: ValidShow},
	{Name: "devices", OptionType: OptionSwitch, OptionValid: ValidShow},
	{Name: "irq", OptionType: OptionSwitch, OptionValid: ValidShow},
	{Name: "inst", OptionType: OptionSwitch, OptionValid: ValidShow | ValidExamine},
	{Name: "cache", OptionType: OptionSwitch, OptionValid: ValidShow},
	{Name: "hex", OptionType: OptionSwitch, OptionValid: ValidExamine},
	{Name: "char", OptionType: OptionSwitch, OptionValid: ValidExamine},
	{Name: "count", OptionType: OptionNumber, OptionValid: ValidExamine},
}

// Devices which describe themselves in show devices.
type Shower interface {
	Show() string
}
