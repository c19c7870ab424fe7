// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for FlowerPassword.
//
// Usage:
//
//	go run . [flags]
//	./flowerpassword [flags]
//
// Without a subcommand the interactive TUI starts. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
