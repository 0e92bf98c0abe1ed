/*
 * VM64 - Instruction cache.
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

package cpu

import (
	I "github.com/rcornwell/VM64/emu/instruction"
	"github.com/rcornwell/VM64/util/debug"
)

/*
   Decoded instructions are kept for one aligned window of cacheSize
   words. Fetching outside the window, or writing anywhere inside the
   words the window has decoded, drops the whole window.
*/

const (
	cacheSize = 256
	cacheMask = ^uint64(cacheSize - 1)
)

// Cache statistics.
type CacheStats struct {
	Base    uint64 // Start of window.
	Valid   bool   // Window holds entries.
	Entries int    // Decoded entries.
	Hits    uint64
	Misses  uint64
	Flushes uint64
}

type cache struct {
	enabled bool
	valid   bool
	base    uint64 // Start of window.
	end     uint64 // One past last word decoded.
	entries [cacheSize]*I.Instruction
	hits    uint64
	misses  uint64
	flushes uint64
}

// Drop all entries.
func (c *cache) invalidate() {
	if !c.valid {
		return
	}
	c.valid = false
	c.entries = [cacheSize]*I.Instruction{}
	c.flushes++
	debug.Debugf("CPU", debugMsk, debugCache, "flush %016x-%016x", c.base, c.end)
}

// Return instruction at addr, decoding if needed.
func (c *cache) fetch(r I.WordReader, addr uint64) *I.Instruction {
	if !c.enabled {
		inst := I.Decode(r, addr)
		return &inst
	}
	if c.valid && (addr&cacheMask) != c.base {
		c.invalidate()
	}
	if !c.valid {
		c.valid = true
		c.base = addr & cacheMask
		c.end = c.base
	}
	off := addr - c.base
	if inst := c.entries[off]; inst != nil {
		c.hits++
		return inst
	}
	c.misses++
	inst := I.Decode(r, addr)
	c.entries[off] = &inst
	c.end = max(c.end, addr+inst.Length)
	return &inst
}

// Check if write hits decoded words.
func (c *cache) written(addr uint64) {
	if c.valid && addr >= c.base && addr < c.end {
		c.invalidate()
	}
}

// Check if write of count words hits decoded words.
func (c *cache) writtenRange(addr uint64, count uint64) {
	if c.valid && count != 0 && addr < c.end && (addr >= c.base || c.base-addr < count) {
		c.invalidate()
	}
}

func (c *cache) stats() CacheStats {
	s := CacheStats{Base: c.base, Valid: c.valid, Hits: c.hits, Misses: c.misses, Flushes: c.flushes}
	for _, inst := range c.entries {
		if inst != nil {
			s.Entries++
		}
	}
	return s
}
