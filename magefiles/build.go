//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for datebug using Mage.
//
// Usage:
//
//	mage build             Compile datebug binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install datebug to GOPATH/bin
//	mage postgres:up       Start a throwaway Postgres container
//	mage postgres:down     Stop and remove it
//	mage repro             Migrate and run against the container
//	mage stats             Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "datebug"
	binaryDir  = "bin"
	cmdDir     = "./cmd/datebug"
)

// Build compiles the datebug binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath(), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, binaryPath())
}

// Repro starts Postgres, creates the TestData table, and runs every fixture
// against it. The container is left running; stop it with postgres:down.
func Repro() error {
	mg.Deps(Build, Postgres.Up)
	env := map[string]string{"DATABASE_URL": postgresURL()}
	if err := sh.RunWithV(env, binaryPath(), "--backend", "postgres", "migrate", "up"); err != nil {
		return err
	}
	return sh.RunWithV(env, binaryPath(), "--backend", "postgres", "run")
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}
