/*
 * VM64 - Instruction disassembler test set.
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

package disassemble

import (
	"strings"
	"testing"

	I "github.com/rcornwell/VM64/emu/instruction"
	op "github.com/rcornwell/VM64/emu/opcodemap"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		inst  I.Instruction
		match string
	}{
		{I.New(op.OpHLT), "HLT"},
		{I.New(op.OpSET, I.Reg(I.R0), I.Inline(5)), "SET   R0,5"},
		{I.New(op.OpADD, I.Reg(I.R2), I.Reg(I.R0), I.Reg(I.R1)), "ADD   R2,R0,R1"},
		{I.New(op.OpSET, I.Stack(), I.Lit(0x1234)), "SET   STK,0x1234"},
		{I.New(op.OpSET, I.Reg(I.R1), I.Reg(I.R2).Deref()), "SET   R1,[R2]"},
		{I.New(op.OpSET, I.Reg(I.R1), I.Lit(4).RelativeTo(I.RelBP).Deref()), "SET   R1,[0x4+RBP]"},
		{I.New(op.OpCALL, I.Reg(I.RSP)), "CALL  RSP"},
		{
			I.New(op.OpSET, I.Reg(I.R1),
				I.Calc(I.Reg(I.R2)).WithIndex(I.Reg(I.R3), I.Inline(8), false).WithOffset(I.Inline(1), true).Deref()),
			"SET   R1,[(R2+R3*8-1)]",
		},
		{I.New(op.OpNOP).If(I.Reg(I.R4), I.WhenZero), "NOP IFZ R4"},
		{I.New(op.OpSET, I.Reg(I.RIP), I.Lit(0x10)).If(I.Reg(I.R4), I.WhenNotZero), "SET   RIP,0x10 IFNZ R4"},
		{I.Instruction{Opcode: 0x5c}, "???   5c"},
	}
	for _, test := range tests {
		got := Format(&test.inst)
		if got != test.match {
			t.Errorf("Inst Got: %q Expected %q", got, test.match)
		}
	}
}

func TestDisassemble(t *testing.T) {
	inst := I.New(op.OpADD, I.Reg(I.R2), I.Lit(100), I.Reg(I.R1))
	words, err := I.Words(&inst)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	text, length := Disassemble(I.SliceReader(words), 0)
	if text != "ADD   R2,0x64,R1" {
		t.Errorf("Inst Got: %s", text)
	}
	if length != 2 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 2)
	}

	text, length = PrintInst(I.SliceReader(words), 0)
	if !strings.HasSuffix(text, " ADD   R2,0x64,R1") || !strings.Contains(text, "0000000000000064 ") {
		t.Errorf("PrintInst Got: %q", text)
	}
	if length != 2 {
		t.Errorf("Returned wrong number of words: %d expected: %d", length, 2)
	}
}
