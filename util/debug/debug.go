/*
 * VM64 - Log debug data to a file.
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

package debug

import (
	"fmt"
	"io"
	"os"
	"sync"

	config "github.com/rcornwell/VM64/config/configparser"
)

var (
	lock    sync.Mutex
	out     io.Writer = io.Discard
	logFile *os.File
)

// Generic debug message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if (mask & level) != 0 {
		lock.Lock()
		fmt.Fprintf(out, module+": "+format+"\n", a...)
		lock.Unlock()
	}
}

// Device debug message.
func DebugDevf(id uint16, mask int, level int, format string, a ...interface{}) {
	if (mask & level) != 0 {
		Debugf(fmt.Sprintf("%03x", id), mask, level, format, a...)
	}
}

// Direct debug output somewhere other than the debug file, nil discards.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	lock.Lock()
	out = w
	lock.Unlock()
}

// Close debug file.
func Close() error {
	lock.Lock()
	defer lock.Unlock()
	out = io.Discard
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// register a device on initialize.
func init() {
	config.RegisterOption("DEBUGFILE", create)
}

// Open the debug file.
func create(_ config.Machine, fileName string, _ []config.Option) error {
	lock.Lock()
	defer lock.Unlock()
	if logFile != nil {
		return fmt.Errorf("can't have more then one debug file, previous: %s", logFile.Name())
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}

	logFile = file
	out = file
	return nil
}
