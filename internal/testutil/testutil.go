// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil contains in-memory fakes shared by package tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/model"
)

// FakeStore is an in-memory db.Store. Err, when set, is returned by every
// history method.
type FakeStore struct {
	mu       sync.Mutex
	items    []model.HistoryItem
	settings map[string]string
	nextID   int64
	touches  []string

	Err error
}

var _ db.Store = (*FakeStore)(nil)

// NewFakeStore returns an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{settings: map[string]string{}}
}

func (f *FakeStore) DBType() string { return "fake" }
func (f *FakeStore) Close() error   { return nil }

// Touches returns every code passed to TouchHistory, in order.
func (f *FakeStore) Touches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.touches...)
}

func (f *FakeStore) ListHistory(ctx context.Context) ([]model.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := append([]model.HistoryItem(nil), f.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *FakeStore) FindHistoryByCode(ctx context.Context, code string) (*model.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, it := range f.items {
		if it.Code == code {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeStore) TouchHistory(ctx context.Context, code string, at time.Time) (*model.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("history code must not be blank")
	}
	f.touches = append(f.touches, code)
	for i := range f.items {
		if f.items[i].Code == code {
			f.items[i].Timestamp = at
			cp := f.items[i]
			return &cp, nil
		}
	}
	f.nextID++
	it := model.HistoryItem{ID: f.nextID, Code: code, Timestamp: at}
	f.items = append(f.items, it)
	return &it, nil
}

func (f *FakeStore) DeleteHistory(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *FakeStore) ClearHistory(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.items = nil
	return nil
}

func (f *FakeStore) ImportHistory(ctx context.Context, items []model.HistoryItem, replace bool) error {
	if replace {
		if err := f.ClearHistory(ctx); err != nil {
			return err
		}
	}
	for _, it := range items {
		existing, err := f.FindHistoryByCode(ctx, it.Code)
		if err != nil {
			return err
		}
		if existing != nil && !it.Timestamp.After(existing.Timestamp) {
			continue
		}
		if _, err := f.TouchHistory(ctx, it.Code, it.Timestamp); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeStore) GetSetting(ctx context.Context, name string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.settings[name]
	return v, ok, nil
}

func (f *FakeStore) SetSetting(ctx context.Context, name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[name] = value
	return nil
}

func (f *FakeStore) DeleteSetting(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.settings, name)
	return nil
}

// FakeClipboard records the last text written.
type FakeClipboard struct {
	mu   sync.Mutex
	Text string
	Err  error
}

func (c *FakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}

// Last returns the last copied text.
func (c *FakeClipboard) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Text
}
