/*
 * VM64 - Debug options configuration.
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

package debugconfig

import (
	"errors"
	"strings"

	config "github.com/rcornwell/VM64/config/configparser"
	"github.com/rcornwell/VM64/emu/bus"
	"github.com/rcornwell/VM64/emu/cpu"
	"github.com/rcornwell/VM64/emu/interrupt"
	"github.com/rcornwell/VM64/emu/memory"
)

// Modules which accept debug flags.
var modules = map[string]func(string) error{
	"CPU": cpu.Debug,
	"BUS": bus.Debug,
	"IRQ": interrupt.Debug,
	"RAM": memory.Debug,
}

// register a device on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
}

// Enable debug flags for a module.
func setDebug(_ config.Machine, module string, options []config.Option) error {
	fn, ok := modules[strings.ToUpper(module)]
	if !ok {
		return errors.New("debug option invalid: " + module)
	}
	flags := config.Flags(options)
	if len(flags) == 0 {
		return errors.New("debug " + strings.ToLower(module) + " requires flags")
	}
	for _, flag := range flags {
		if err := fn(flag); err != nil {
			return err
		}
	}
	return nil
}
