// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"strings"
	"testing"
)

// newTestStore opens a private in-memory sqlite store for t and installs it
// as the package default until the test ends.
func newTestStore(t *testing.T) *BunStore {
	t.Helper()

	prev := store
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := New("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bs, ok := s.(*BunStore)
	if !ok {
		t.Fatalf("store is not *BunStore")
	}
	t.Cleanup(func() {
		_ = bs.Close()
		store = prev
	})
	return bs
}
