// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DSN", "postgres://localhost/leaderboard")

	specs, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if specs.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", specs.Port)
	}

	if specs.InvitationLifetime != 168*time.Hour {
		t.Fatalf("expected default invitation lifetime, got %s", specs.InvitationLifetime)
	}

	if specs.LiveBufferSize != 16 {
		t.Fatalf("expected default live buffer size 16, got %d", specs.LiveBufferSize)
	}
}

func TestLoadDotenvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")

	content := "DSN=postgres://dotenv/leaderboard\nPORT=9090\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "7070")
	t.Setenv("DSN", "")
	os.Unsetenv("DSN")

	specs, err := Load(file)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if specs.DSN != "postgres://dotenv/leaderboard" {
		t.Fatalf("expected DSN from dotenv, got %s", specs.DSN)
	}

	if specs.Port != 7070 {
		t.Fatalf("expected environment to win over dotenv, got %d", specs.Port)
	}
}

func TestLoadMissingDSN(t *testing.T) {
	t.Setenv("DSN", "")
	os.Unsetenv("DSN")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error when DSN is missing")
	}
}
