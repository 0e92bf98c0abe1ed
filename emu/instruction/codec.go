/*
 * VM64 - Instruction encoder and decoder.
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

package instruction

import (
	"errors"

	"github.com/rcornwell/VM64/emu/bitstream"
	op "github.com/rcornwell/VM64/emu/opcodemap"
)

/*
   Control word, bit 0 first:

      +--------+----------+----------+----------+---+---+----------+----------+
      | opcode | operand0 | operand1 | operand2 | C | W |   cond   | reserved |
      +--------+----------+----------+----------+---+---+----------+----------+
          8         10         10         10      1   1     10         14

   Operand slot:

      +----------+------+---+-----+
      | reg/sub  | kind | I | rel |
      +----------+------+---+-----+
           5        2     1    2

   Literals with bit 4 of reg/sub set hold their value in bits 0-3,
   otherwise the value is in the next trailing word. Calculated operands
   are followed by a nested control word of four 12 bit term slots
   (Base, Index, Scale, Offset), each an operand slot plus a present
   bit and a negative bit, then the trailing words of the terms.
*/

const (
	opcodeBits = 8
	slotBits   = 10
	termBits   = 12
	regBits    = 5
	kindBits   = 2
	relBits    = 2
	maxParams  = 3
	embedFlag  = 0x10
	embedMask  = 0x0f
)

var (
	ErrTooManyParams = errors.New("instruction has more than three operands")
	ErrParamCount    = errors.New("operand count does not match opcode")
	ErrEmbeddedRange = errors.New("embedded literal out of range")
	ErrRegister      = errors.New("register number out of range")
	ErrInvalid       = errors.New("invalid operand")
)

// Source of instruction words.
type WordReader interface {
	ReadWord(addr uint64) uint64
}

// Destination of instruction words.
type WordWriter interface {
	WriteWord(addr uint64, data uint64)
}

type decoder struct {
	r    WordReader
	next uint64 // Address of next trailing word.
}

func (d *decoder) trailing() uint64 {
	v := d.r.ReadWord(d.next)
	d.next++
	return v
}

// Decode an instruction at addr. Opcodes without a definition decode
// with no operands, the caller decides what to do with them.
func Decode(r WordReader, addr uint64) Instruction {
	d := decoder{r: r, next: addr + 1}
	ctl := bitstream.NewReader(r.ReadWord(addr))

	inst := Instruction{Opcode: uint8(ctl.Read(opcodeBits))}
	count := 0
	if def, ok := op.Lookup(inst.Opcode); ok {
		count = def.Count()
	}

	var slots [maxParams]uint64
	for i := range maxParams {
		slots[i] = ctl.Read(slotBits)
	}
	for i := range count {
		inst.Params = append(inst.Params, d.param(slots[i]))
	}

	if ctl.ReadBool() {
		if ctl.ReadBool() {
			inst.When = WhenNotZero
		}
		cond := d.param(ctl.Read(slotBits))
		inst.Cond = &cond
	}

	inst.Length = d.next - addr
	return inst
}

// Decode one operand slot, consuming trailing words as needed.
func (d *decoder) param(slot uint64) Parameter {
	s := bitstream.NewReader(slot)
	sub := s.Read(regBits)
	p := Parameter{Kind: Kind(s.Read(kindBits))}
	p.Indirect = s.ReadBool()
	p.Relative = RelativeTo(s.Read(relBits))

	switch p.Kind {
	case KindRegister:
		p.Register = Register(sub)
	case KindStack:
	case KindLiteral:
		if (sub & embedFlag) != 0 {
			p.Embedded = true
			p.Literal = sub & embedMask
		} else {
			p.Literal = d.trailing()
		}
	case KindCalculated:
		terms := bitstream.NewReader(d.trailing())
		var present [4]bool
		var neg [4]bool
		var tslot [4]uint64
		for i := range 4 {
			tslot[i] = terms.Read(slotBits)
			present[i] = terms.ReadBool()
			neg[i] = terms.ReadBool()
		}
		c := &Calculated{}
		c.Base = Term{Param: d.param(tslot[0]), Negative: neg[0]}
		optional := []**Term{&c.Index, &c.Scale, &c.Offset}
		for i, t := range optional {
			if present[i+1] {
				*t = &Term{Param: d.param(tslot[i+1]), Negative: neg[i+1]}
			}
		}
		p.Calculated = c
	}
	return p
}

type encoder struct {
	words []uint64
}

// Reserve a word to be filled in later.
func (e *encoder) reserve() int {
	e.words = append(e.words, 0)
	return len(e.words) - 1
}

// Words encodes instruction into a slice of words.
func Words(inst *Instruction) ([]uint64, error) {
	if len(inst.Params) > maxParams {
		return nil, ErrTooManyParams
	}
	count := 0
	if def, ok := op.Lookup(inst.Opcode); ok {
		count = def.Count()
	}
	if len(inst.Params) != count {
		return nil, ErrParamCount
	}

	e := encoder{}
	head := e.reserve()
	ctl := bitstream.Writer{}
	ctl.Write(uint64(inst.Opcode), opcodeBits)
	for i := range maxParams {
		if i >= count {
			ctl.Skip(slotBits)
			continue
		}
		slot, err := e.param(&inst.Params[i])
		if err != nil {
			return nil, err
		}
		ctl.Write(slot, slotBits)
	}

	if inst.Cond != nil {
		ctl.WriteBool(true)
		ctl.WriteBool(inst.When == WhenNotZero)
		slot, err := e.param(inst.Cond)
		if err != nil {
			return nil, err
		}
		ctl.Write(slot, slotBits)
	}

	e.words[head] = ctl.Word()
	return e.words, nil
}

// Encode instruction at addr, returns number of words written.
func Encode(w WordWriter, addr uint64, inst *Instruction) (uint64, error) {
	words, err := Words(inst)
	if err != nil {
		return 0, err
	}
	for i, word := range words {
		w.WriteWord(addr+uint64(i), word)
	}
	return uint64(len(words)), nil
}

// Encode one operand, returning its slot value.
func (e *encoder) param(p *Parameter) (uint64, error) {
	if p.Kind > KindCalculated || p.Relative > RelBP {
		return 0, ErrInvalid
	}
	var sub uint64
	switch p.Kind {
	case KindRegister:
		if p.Register >= NumRegisters {
			return 0, ErrRegister
		}
		sub = uint64(p.Register)
	case KindStack:
	case KindLiteral:
		if p.Embedded {
			if p.Literal > MaxEmbedded {
				return 0, ErrEmbeddedRange
			}
			sub = embedFlag | p.Literal
		} else {
			e.words = append(e.words, p.Literal)
		}
	case KindCalculated:
		if p.Calculated == nil {
			return 0, ErrInvalid
		}
		head := e.reserve()
		terms := bitstream.Writer{}
		list := []*Term{&p.Calculated.Base, p.Calculated.Index, p.Calculated.Scale, p.Calculated.Offset}
		for _, t := range list {
			if t == nil {
				terms.Skip(termBits)
				continue
			}
			slot, err := e.param(&t.Param)
			if err != nil {
				return 0, err
			}
			terms.Write(slot, slotBits)
			terms.WriteBool(true)
			terms.WriteBool(t.Negative)
		}
		e.words[head] = terms.Word()
	}

	s := bitstream.Writer{}
	s.Write(sub, regBits)
	s.Write(uint64(p.Kind), kindBits)
	s.WriteBool(p.Indirect)
	s.Write(uint64(p.Relative), relBits)
	return s.Word(), nil
}

// Words held in a slice, reads past the end return zero.
type SliceReader []uint64

func (s SliceReader) ReadWord(addr uint64) uint64 {
	if addr >= uint64(len(s)) {
		return 0
	}
	return s[addr]
}
