// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package history records used codes once the user has stopped editing.
//
// Saving on every keystroke would fill the history with prefixes
// ("g", "go", "goo", ...). The Recorder instead waits until a code has been
// left alone for a quiet period and only then stores it.
package history

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/internal/model"
)

// DefaultDelay is the quiet period before a code is saved.
const DefaultDelay = 5 * time.Second

const saveTimeout = 5 * time.Second

// Options configures a Recorder. Zero values get defaults, except Delay:
// a zero Delay saves synchronously inside Schedule.
type Options struct {
	Delay time.Duration
	Clock Clock
	// Current returns the code currently being edited. A scheduled save is
	// dropped when it no longer matches.
	Current func() string
	OnSaved func(model.HistoryItem)
	OnError func(error)
}

// Recorder debounces history saves.
type Recorder struct {
	store db.HistoryStore
	opts  Options

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	gen     uint64
	closed  bool
}

// NewRecorder returns a Recorder writing to store.
func NewRecorder(store db.HistoryStore, opts Options) *Recorder {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Delay < 0 {
		opts.Delay = DefaultDelay
	}
	return &Recorder{store: store, opts: opts}
}

// Delay returns the configured quiet period.
func (r *Recorder) Delay() time.Duration { return r.opts.Delay }

// Schedule replaces any pending save with code. Blank codes only cancel.
func (r *Recorder) Schedule(code string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.stopLocked()
	if strings.TrimSpace(code) == "" {
		r.mu.Unlock()
		return
	}
	r.pending = code
	g := r.gen
	if r.opts.Delay == 0 {
		r.mu.Unlock()
		r.fire(g)
		return
	}
	r.timer = time.AfterFunc(r.opts.Delay, func() { r.fire(g) })
	r.mu.Unlock()
}

// Cancel drops a pending save, if any.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// Pending returns the code waiting to be saved, or "".
func (r *Recorder) Pending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Flush saves a pending code immediately instead of waiting for the timer.
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	code := r.pending
	r.stopLocked()
	r.mu.Unlock()
	if code == "" || !r.stillCurrent(code) {
		return nil
	}
	_, err := r.save(ctx, code)
	return err
}

// Close cancels pending work. Later calls to Schedule are ignored.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.closed = true
}

// stopLocked invalidates the armed timer. Bumping gen makes a timer that
// already fired but has not yet taken the lock a no-op.
func (r *Recorder) stopLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = ""
	r.gen++
}

func (r *Recorder) fire(g uint64) {
	r.mu.Lock()
	if g != r.gen || r.closed || r.pending == "" {
		r.mu.Unlock()
		return
	}
	code := r.pending
	r.pending = ""
	r.timer = nil
	r.mu.Unlock()

	if !r.stillCurrent(code) {
		logging.Debugf("history: dropping stale save")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	_, _ = r.save(ctx, code)
}

func (r *Recorder) stillCurrent(code string) bool {
	if r.opts.Current == nil {
		return true
	}
	cur := r.opts.Current()
	return cur == code && strings.TrimSpace(cur) != ""
}

func (r *Recorder) save(ctx context.Context, code string) (*model.HistoryItem, error) {
	item, err := r.store.TouchHistory(ctx, code, r.opts.Clock.Now())
	if err != nil {
		logging.Errorf("history: save failed: %v", err)
		if r.opts.OnError != nil {
			r.opts.OnError(err)
		}
		return nil, err
	}
	if r.opts.OnSaved != nil && item != nil {
		r.opts.OnSaved(*item)
	}
	return item, nil
}
