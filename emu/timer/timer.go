/*
 * VM64 - System interval timer.
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

package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	D "github.com/rcornwell/VM64/emu/device"
)

// Default timer interval.
const DefaultInterval = 50 * time.Millisecond

type Timer struct {
	irq      D.Raiser           // Where to post timer interrupts.
	lock     sync.Mutex         // Protect interval.
	interval time.Duration      // Time between interrupts.
	change   chan time.Duration // Interval changed while running.
	ticks    atomic.Uint64      // Interrupts posted.
}

// Create a timer posting SystemTimer interrupts to irq.
func New(irq D.Raiser, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{
		irq:      irq,
		interval: interval,
		change:   make(chan time.Duration, 1),
	}
}

// Current interval.
func (timer *Timer) Interval() time.Duration {
	timer.lock.Lock()
	defer timer.lock.Unlock()
	return timer.interval
}

// Change interval, takes effect at once if running.
func (timer *Timer) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	timer.lock.Lock()
	timer.interval = interval
	timer.lock.Unlock()
	// Replace any change not yet picked up.
	select {
	case <-timer.change:
	default:
	}
	select {
	case timer.change <- interval:
	default:
	}
}

// Number of interrupts posted.
func (timer *Timer) Ticks() uint64 {
	return timer.ticks.Load()
}

// Post timer interrupts until context is cancelled.
func (timer *Timer) Run(ctx context.Context) error {
	ticker := time.NewTicker(timer.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count := timer.ticks.Add(1)
			timer.irq.Enqueue(D.IrqSystemTimer, count, 0)
		case interval := <-timer.change:
			ticker.Reset(interval)
		case <-ctx.Done():
			return nil
		}
	}
}
