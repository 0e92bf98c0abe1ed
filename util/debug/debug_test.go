/*
 * VM64 - Debug trace test set.
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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Debugf("CPU", 0x2, 0x1, "hidden %d", 1)
	Debugf("CPU", 0x2, 0x2, "shown %d", 2)
	DebugDevf(0x12, 0x1, 0x1, "dev")
	got := buf.String()
	wanted := "CPU: shown 2\n012: dev\n"
	if got != wanted {
		t.Errorf("Debug output got: %q wanted: %q", got, wanted)
	}
}

func TestDebugFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "debug.log")
	if err := create(nil, name, nil); err != nil {
		t.Fatalf("Unable to create debug file: %v", err)
	}
	if err := create(nil, name, nil); err == nil {
		t.Errorf("Second debug file accepted")
	}
	Debugf("BUS", 1, 1, "read %x", 0x10)
	if err := Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Unable to read debug file: %v", err)
	}
	if !strings.Contains(string(data), "BUS: read 10") {
		t.Errorf("Debug file got: %q", string(data))
	}
}
