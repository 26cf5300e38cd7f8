// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l := NewLoggerWithFile("info", path)
	l.Infof("sale recorded for %s", "seller-1")
	l.Security().AdminAction("admin-1", "delete_sale", "sale-1")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to be written: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected log file to contain entries")
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Errorf("ignored %d", 1)
	l.Security().AuthzFailure("user-1", "sales")
}
