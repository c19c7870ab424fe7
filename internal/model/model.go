// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the data structures shared between the store,
// the session and the user interfaces.
package model // import "github.com/toeirei/flowerpassword/internal/model"

import "time"

// HistoryItem is a previously used code. Codes are unique; using a code
// again only refreshes its timestamp.
type HistoryItem struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// String returns the code itself.
func (h HistoryItem) String() string {
	return h.Code
}

// BackupData is the document written by `backup` and read by `restore`.
type BackupData struct {
	SchemaVersion int           `json:"schema_version"`
	CreatedAt     time.Time     `json:"created_at"`
	History       []HistoryItem `json:"history"`
}

// BackupSchemaVersion is the current BackupData layout.
const BackupSchemaVersion = 1
