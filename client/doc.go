// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client lets other programs derive passwords and manage the code
// history without going through the CLI or TUI.
package client
