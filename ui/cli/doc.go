// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for FlowerPassword using
// Cobra. It loads configuration, opens the store and either starts the TUI
// or runs one of the subcommands.
package cli
