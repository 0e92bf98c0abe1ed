/*
 * VM64 - Test device test cases.
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

package testdev

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/rcornwell/VM64/config/configparser"
	"github.com/rcornwell/VM64/emu/core"
	D "github.com/rcornwell/VM64/emu/device"
	I "github.com/rcornwell/VM64/emu/instruction"
	"github.com/rcornwell/VM64/emu/memory"
	op "github.com/rcornwell/VM64/emu/opcodemap"
)

const (
	ramID  = 2
	testID = 3
	irqTy  = 0x10
)

func TestStore(t *testing.T) {
	d := New()
	d.WriteWord(5, 0x55)
	d.WriteWord(StoreSize+7, 1)
	assert.Equal(t, uint64(0x55), d.ReadWord(5))
	assert.Equal(t, uint64(0), d.ReadWord(StoreSize+7))
	assert.Equal(t, []Write{{Addr: 5, Data: 0x55}, {Addr: StoreSize + 7, Data: 1}}, d.Writes())
	d.Start()
	assert.True(t, d.Started)
	d.Reset()
	assert.False(t, d.Started)
	assert.Equal(t, 1, d.Resets)
	assert.Equal(t, D.TypeTest, d.Identity().Type)
}

// Program writes raise register, handler records interrupt data.
func TestRaiseInterrupt(t *testing.T) {
	c, err := core.New()
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	_, err = c.AddDevice(memory.New(4096))
	require.NoError(t, err)
	require.NoError(t, config.LoadConfig(strings.NewReader("TESTDEV\n"), c))
	c.Reset()

	dev, err := c.Bus.Device(testID)
	require.NoError(t, err)
	td, ok := dev.(*TestDev)
	require.True(t, ok)
	assert.Equal(t, uint16(testID), td.ID)

	main := D.Address(ramID, 0)
	handler := D.Address(ramID, 0x100)
	program := []I.Instruction{
		I.New(op.OpINTE),
		I.New(op.OpSET, I.Lit(D.Address(testID, RaiseReg)).Deref(), I.Lit(irqTy)),
		I.New(op.OpNOP),
	}
	isr := []I.Instruction{
		I.New(op.OpSET, I.Reg(I.R7), I.Reg(I.RIDA)),
		I.New(op.OpSET, I.Reg(I.R8), I.Reg(I.RIDB)),
		I.New(op.OpSET, I.Reg(I.R9), I.Reg(I.RIT)),
		I.New(op.OpEINT),
	}
	addr := main
	for i := range program {
		n, err := I.Encode(c.Bus, addr, &program[i])
		require.NoError(t, err)
		addr += n
	}
	addr = handler
	for i := range isr {
		n, err := I.Encode(c.Bus, addr, &isr[i])
		require.NoError(t, err)
		addr += n
	}
	c.IRQ.SetVector(irqTy, handler)
	require.NoError(t, c.SetRegister("RIP", main))

	require.NoError(t, c.Step(2))
	rip, _ := c.Register("RIP")
	assert.Equal(t, handler, rip, "entered handler")
	require.NoError(t, c.Step(4))

	for name, want := range map[string]uint64{"R7": testID, "R8": 1, "R9": irqTy} {
		value, err := c.Register(name)
		require.NoError(t, err)
		assert.Equal(t, want, value, name)
	}
	assert.False(t, c.CPU.InISR())
	assert.Equal(t, []Write{{Addr: RaiseReg, Data: irqTy}}, td.Writes())
}
