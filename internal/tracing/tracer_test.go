// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"
)

func TestNoopTracerStartsNonRecordingSpans(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "tracing.TestNoopTracer")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected context to be returned")
	}

	if span.IsRecording() {
		t.Fatal("noop span must not record")
	}
}
