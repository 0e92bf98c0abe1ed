/*
 * VM64 - Boot ROM device.
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

package boot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	config "github.com/rcornwell/VM64/config/configparser"
	D "github.com/rcornwell/VM64/emu/device"
)

/*
   Image files are a sequence of little endian 64 bit words. An image
   starting with the eight bytes "VM64BOOT" is bootable, the marker is
   not part of the image.
*/

// Marker at start of bootable image.
const Magic = "VM64BOOT"

var ErrShortWord = errors.New("image length not a multiple of 8 bytes")

type ROM struct {
	words    []uint64
	bootable bool
	name     string
}

// Create ROM holding words.
func New(words []uint64, bootable bool) *ROM {
	return &ROM{words: words, bootable: bootable}
}

// Load an image.
func Load(in io.Reader) (*ROM, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	bootable := false
	if bytes.HasPrefix(data, []byte(Magic)) {
		bootable = true
		data = data[len(Magic):]
	}
	if len(data)%8 != 0 {
		return nil, ErrShortWord
	}
	words := make([]uint64, len(data)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return New(words, bootable), nil
}

// Load an image from a file.
func LoadFile(name string) (*ROM, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	rom, err := Load(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rom.name = name
	return rom, nil
}

// Write words as an image.
func WriteImage(out io.Writer, words []uint64, bootable bool) error {
	buf := make([]byte, 0, len(Magic)+8*len(words))
	if bootable {
		buf = append(buf, Magic...)
	}
	for _, word := range words {
		buf = binary.LittleEndian.AppendUint64(buf, word)
	}
	_, err := out.Write(buf)
	return err
}

// File image was loaded from.
func (rom *ROM) Name() string {
	return rom.name
}

// Size in words.
func (rom *ROM) Size() uint64 {
	return uint64(len(rom.words))
}

func (rom *ROM) Bootable() bool {
	return rom.bootable
}

// Mark image bootable or not, takes effect at next bus reset.
func (rom *ROM) SetBootable(bootable bool) {
	rom.bootable = bootable
}

func (rom *ROM) ReadWord(addr uint64) uint64 {
	if addr >= uint64(len(rom.words)) {
		return 0
	}
	return rom.words[addr]
}

// ROM is read only.
func (rom *ROM) WriteWord(_ uint64, _ uint64) {}

// Read block of words, stopping at end of image.
func (rom *ROM) Read(addr uint64, count uint64) []uint64 {
	size := uint64(len(rom.words))
	if addr >= size {
		return []uint64{}
	}
	return slices.Clone(rom.words[addr : addr+min(count, size-addr)])
}

func (rom *ROM) Reset() {}

func (rom *ROM) Start() {}

func (rom *ROM) Stop() {}

func (rom *ROM) Identity() D.Identity {
	ty := D.TypeMemory
	if rom.bootable {
		ty = D.TypeBoot
	}
	return D.Identity{Type: ty, VendorID: D.VendorVM64, ProductID: D.ProductROM}
}

// register a device on initialize.
func init() {
	config.RegisterModel("BOOT", config.TypeModel, create)
}

// Load image and attach it, option ROM makes it not bootable.
func create(m config.Machine, fileName string, options []config.Option) error {
	rom, err := LoadFile(fileName)
	if err != nil {
		return err
	}
	for _, flag := range config.Flags(options) {
		switch flag {
		case "ROM":
			rom.SetBootable(false)
		case "BOOT":
			rom.SetBootable(true)
		default:
			return fmt.Errorf("boot option invalid: %s", strings.ToLower(flag))
		}
	}
	_, err = m.AddDevice(rom)
	return err
}

// Describe image for console.
func (rom *ROM) Show() string {
	text := fmt.Sprintf("image=%s size=%d", rom.name, len(rom.words))
	if rom.bootable {
		text += " bootable"
	}
	return text
}
