package model

import (
	"testing"
	"time"
)

func TestHistoryItemString(t *testing.T) {
	h := HistoryItem{ID: 3, Code: "github", Timestamp: time.Now()}
	if h.String() != "github" {
		t.Fatalf("expected code as string form, got %q", h.String())
	}
}
