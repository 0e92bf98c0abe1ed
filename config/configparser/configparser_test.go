/*
 * VM64 - Configuration file parser test set.
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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	D "github.com/rcornwell/VM64/emu/device"
)

type testMachine struct {
	devices  []D.Device
	interval time.Duration
	cache    bool
}

func (m *testMachine) AddDevice(dev D.Device) (uint16, error) {
	m.devices = append(m.devices, dev)
	return uint16(len(m.devices) - 1), nil
}

func (m *testMachine) SetTimerInterval(interval time.Duration) {
	m.interval = interval
}

func (m *testMachine) SetCacheEnabled(enable bool) {
	m.cache = enable
}

var (
	testOptions []Option
	testValue   string
	testType    string
)

func cleanUpConfig() {
	models = map[string]modelDef{}
	testOptions = nil
	testValue = "error"
	testType = ""
}

func record(ty string) func(Machine, string, []Option) error {
	return func(_ Machine, value string, options []Option) error {
		testType = ty
		testValue = value
		testOptions = options
		return nil
	}
}

func load(t *testing.T, text string) error {
	t.Helper()
	return LoadConfig(strings.NewReader(text), &testMachine{})
}

func TestRegisterModel(t *testing.T) {
	cleanUpConfig()

	RegisterModel("testdev", TypeModel, record("model"))
	err := create(nil, "test", TypeModel, "x", nil)
	assert.Error(t, err, "create of unknown model")
	err = create(nil, "TESTDEV", TypeModel, "value", nil)
	require.NoError(t, err)
	assert.Equal(t, "model", testType)
	assert.Equal(t, "value", testValue)
	err = create(nil, "testdev", TypeSwitch, "", nil)
	assert.Error(t, err, "create device as switch")
}

func TestSwitch(t *testing.T) {
	cleanUpConfig()

	RegisterSwitch("trace", record("switch"))
	require.NoError(t, load(t, "trace\n"))
	assert.Equal(t, "switch", testType)
	assert.Equal(t, "", testValue)

	assert.Error(t, load(t, "trace on\n"), "switch with value")
}

func TestOption(t *testing.T) {
	cleanUpConfig()

	RegisterOption("ram", record("option"))
	require.NoError(t, load(t, "  RAM 64K   # main memory\n"))
	assert.Equal(t, "option", testType)
	assert.Equal(t, "64K", testValue)
	assert.Empty(t, testOptions)

	assert.Error(t, load(t, "RAM\n"), "option without value")
	assert.Error(t, load(t, "RAM 64K 12\n"), "option with two values")
}

func TestModelOptions(t *testing.T) {
	cleanUpConfig()

	RegisterModel("boot", TypeModel, record("model"))
	require.NoError(t, load(t, "boot \"my image.bin\" rom speed=fast, a, b\n"))
	assert.Equal(t, "my image.bin", testValue)
	require.Len(t, testOptions, 2)
	assert.Equal(t, "rom", testOptions[0].Name)
	assert.Equal(t, "speed", testOptions[1].Name)
	assert.Equal(t, "fast", testOptions[1].EqualOpt)
	require.Len(t, testOptions[1].Value, 2)
	assert.Equal(t, "a", *testOptions[1].Value[0])
	assert.Equal(t, "b", *testOptions[1].Value[1])
}

func TestFlags(t *testing.T) {
	cleanUpConfig()

	RegisterModel("debug", TypeOptions, record("options"))
	require.NoError(t, load(t, "debug cpu inst, irq cache\n"))
	assert.Equal(t, "cpu", testValue)
	assert.Equal(t, []string{"INST", "IRQ", "CACHE"}, Flags(testOptions))
}

func TestQuote(t *testing.T) {
	cleanUpConfig()

	RegisterOption("file", record("option"))
	require.NoError(t, load(t, "file \"a \"\"b\"\"\"\n"))
	assert.Equal(t, "a \"b\"", testValue)
	assert.Error(t, load(t, "file \"abc\n"), "unterminated quote")
}

func TestUnknown(t *testing.T) {
	cleanUpConfig()

	err := load(t, "# comment only\n\nwidget 1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line: 3")
}

func TestLoadFile(t *testing.T) {
	cleanUpConfig()

	RegisterOption("ram", record("option"))
	name := filepath.Join(t.TempDir(), "vm64.cfg")
	require.NoError(t, os.WriteFile(name, []byte("ram 1M\r\n"), 0o600))
	require.NoError(t, LoadConfigFile(name, &testMachine{}))
	assert.Equal(t, "1M", testValue)

	assert.Error(t, LoadConfigFile(filepath.Join(t.TempDir(), "missing"), &testMachine{}))
}
