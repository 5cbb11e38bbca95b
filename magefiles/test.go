//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// Package groups tested by the narrower targets.
var (
	unitPkgs    = []string{"./pkg/catalog/...", "./pkg/store/...", "./internal/paths/...", "./internal/logging/..."}
	storagePkgs = []string{"./internal/sqlite/...", "./pkg/sqlite/..."}
	cliPkgs     = []string{"./internal/cli/..."}
)

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs the tests of the packages that touch neither disk nor SQLite.
func (Test) Unit() error {
	return goTest(unitPkgs)
}

// Storage runs the SQLite backend tests.
func (Test) Storage() error {
	return goTest(storagePkgs)
}

// CLI runs the command-line tests against a temporary data directory.
func (Test) CLI() error {
	return goTest(cliPkgs)
}

// Cover runs every test and writes a coverage profile to bin/.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

func goTest(pkgs []string) error {
	args := append([]string{"test", "-v"}, pkgs...)
	return sh.RunV(binGo, args...)
}
