/*
 * VM64 - Debug options configuration test cases.
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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	config "github.com/rcornwell/VM64/config/configparser"
)

func load(text string) error {
	return config.LoadConfig(strings.NewReader(text), nil)
}

func TestDebugModules(t *testing.T) {
	good := []string{
		"DEBUG CPU INST IRQ\n",
		"debug cpu cache\n",
		"DEBUG BUS READ, WRITE\n",
		"DEBUG IRQ POST VECTOR\n",
		"DEBUG RAM RANGE\n",
	}
	for _, text := range good {
		assert.NoError(t, load(text), text)
	}
}

func TestDebugErrors(t *testing.T) {
	bad := []string{
		"DEBUG DISK READ\n",
		"DEBUG CPU\n",
		"DEBUG CPU FOO\n",
		"DEBUG RAM READ\n",
		"DEBUG\n",
	}
	for _, text := range bad {
		assert.Error(t, load(text), text)
	}
}
