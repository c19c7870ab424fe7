// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package session holds the interactive state shared by the user
// interfaces: the keyword and code being edited, the derived password and
// the history list.
//
// Every edit re-derives the password. A valid derivation remembers the
// keyword (subject to the user's preference) and schedules the code for the
// history once editing pauses; an invalid one clears the password and drops
// the pending save.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/generator"
	"github.com/toeirei/flowerpassword/internal/history"
	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/internal/model"
)

// ErrNoPassword is returned by Copy when there is nothing to copy.
var ErrNoPassword = errors.New("no password to copy")

// maskRune hides the password while ShowPassword is off.
const maskRune = "•"

// Clipboard is satisfied by the atotto/clipboard adapter and by fakes.
type Clipboard interface {
	WriteAll(text string) error
}

// Preferences is the subset of prefs.Manager the session needs.
type Preferences interface {
	SavedKeyword(ctx context.Context) (string, error)
	SetSavedKeyword(ctx context.Context, keyword string) error
}

// Deps are the collaborators of a Session.
type Deps struct {
	History   db.HistoryStore
	Prefs     Preferences
	Clipboard Clipboard
	// Delay is the quiet period before a code is saved; see history.Options.
	Delay time.Duration
	Clock history.Clock
}

// State is a snapshot of the session.
type State struct {
	Keyword      string
	Code         string
	Password     string
	ShowPassword bool
	History      []model.HistoryItem
	Err          error
}

// Session is safe for concurrent use; the history recorder calls back into
// it from timer goroutines.
type Session struct {
	deps     Deps
	recorder *history.Recorder
	changes  chan struct{}

	// editMu orders edits so the recorder sees codes in the order they were set.
	editMu sync.Mutex

	mu           sync.Mutex
	state        State
	savedKeyword string
}

// New creates a session, loads the history and restores a remembered keyword.
func New(ctx context.Context, deps Deps) (*Session, error) {
	if deps.History == nil {
		return nil, fmt.Errorf("session: history store is required")
	}
	s := &Session{deps: deps, changes: make(chan struct{}, 1)}
	s.recorder = history.NewRecorder(deps.History, history.Options{
		Delay:   deps.Delay,
		Clock:   deps.Clock,
		Current: s.currentCode,
		OnSaved: func(model.HistoryItem) { s.reloadAsync() },
		OnError: s.setErr,
	})

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	if deps.Prefs != nil {
		kw, err := deps.Prefs.SavedKeyword(ctx)
		if err != nil {
			logging.Warnf("could not restore saved keyword: %v", err)
		} else if kw != "" {
			s.mu.Lock()
			if s.state.Keyword == "" {
				s.state.Keyword = kw
				s.savedKeyword = kw
			}
			s.mu.Unlock()
		}
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.History = append([]model.HistoryItem(nil), s.state.History...)
	return st
}

// Changes signals background updates (a history save finished). The
// channel is buffered; bursts collapse into one notification.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// PendingCode returns the code waiting to be written to the history.
func (s *Session) PendingCode() string {
	return s.recorder.Pending()
}

// SetKeyword updates the keyword and re-derives the password.
func (s *Session) SetKeyword(ctx context.Context, keyword string) {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	s.mu.Lock()
	s.state.Keyword = keyword
	s.state.Err = nil
	s.mu.Unlock()
	s.regenerate(ctx, true)
}

// SetCode updates the code and re-derives the password.
func (s *Session) SetCode(ctx context.Context, code string) {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	s.mu.Lock()
	s.state.Code = code
	s.state.Err = nil
	s.mu.Unlock()
	s.regenerate(ctx, true)
}

// SelectHistory switches to a stored code. The code is already in the
// history, so no save is scheduled.
func (s *Session) SelectHistory(ctx context.Context, item model.HistoryItem) {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	s.mu.Lock()
	s.state.Code = item.Code
	s.state.Err = nil
	s.mu.Unlock()
	s.regenerate(ctx, false)
}

// DeleteHistory removes item from the store and reloads the list.
func (s *Session) DeleteHistory(ctx context.Context, item model.HistoryItem) error {
	if err := s.deps.History.DeleteHistory(ctx, item.ID); err != nil && !errors.Is(err, db.ErrNotFound) {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// ClearHistory removes every stored code.
func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.deps.History.ClearHistory(ctx); err != nil {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// Refresh reloads the history list from the store.
func (s *Session) Refresh(ctx context.Context) error {
	items, err := s.deps.History.ListHistory(ctx)
	if err != nil {
		s.setErr(err)
		return fmt.Errorf("load history: %w", err)
	}
	s.mu.Lock()
	s.state.History = items
	s.mu.Unlock()
	return nil
}

// ToggleShowPassword flips password visibility.
func (s *Session) ToggleShowPassword() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowPassword = !s.state.ShowPassword
}

// DisplayPassword returns the password, masked unless ShowPassword is on.
func (s *Session) DisplayPassword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ShowPassword || s.state.Password == "" {
		return s.state.Password
	}
	return strings.Repeat(maskRune, len(s.state.Password))
}

// Copy writes the password to the clipboard and returns it.
func (s *Session) Copy() (string, error) {
	s.mu.Lock()
	pw := s.state.Password
	s.mu.Unlock()
	if pw == "" {
		return "", ErrNoPassword
	}
	if s.deps.Clipboard == nil {
		return "", fmt.Errorf("clipboard not available")
	}
	if err := s.deps.Clipboard.WriteAll(pw); err != nil {
		s.setErr(err)
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return pw, nil
}

// ClearError resets the last error.
func (s *Session) ClearError() {
	s.setErr(nil)
}

// Close flushes a pending history save and stops the recorder.
func (s *Session) Close(ctx context.Context) error {
	err := s.recorder.Flush(ctx)
	s.recorder.Close()
	return err
}

// regenerate derives the password from the current inputs. Callers hold
// s.editMu. Side effects run without s.mu held: the recorder may call
// currentCode synchronously.
func (s *Session) regenerate(ctx context.Context, schedule bool) {
	s.mu.Lock()
	keyword, code := s.state.Keyword, s.state.Code
	pw, err := generator.Generate(keyword, code)
	if err != nil {
		s.state.Password = ""
		s.mu.Unlock()
		s.recorder.Cancel()
		return
	}
	s.state.Password = pw
	saveKeyword := keyword != s.savedKeyword
	s.mu.Unlock()

	if saveKeyword && s.deps.Prefs != nil {
		if err := s.deps.Prefs.SetSavedKeyword(ctx, keyword); err != nil {
			logging.Warnf("could not save keyword: %v", err)
		} else {
			s.mu.Lock()
			s.savedKeyword = keyword
			s.mu.Unlock()
		}
	}
	if schedule {
		s.recorder.Schedule(code)
	}
}

func (s *Session) currentCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Code
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.state.Err = err
	s.mu.Unlock()
	if err != nil {
		s.notify()
	}
}

func (s *Session) reloadAsync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		logging.Warnf("history reload failed: %v", err)
	}
	s.notify()
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
