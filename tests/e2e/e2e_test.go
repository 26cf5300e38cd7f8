// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// apiClient calls the JSON API as a given user, authentication is disabled in the
// test deployment so the bearer token is the user id
type apiClient struct {
	baseURL string
	http    *http.Client
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
}

func baseURL() string {
	if u := os.Getenv("HTTP_BASE_URL"); u != "" {
		return u
	}

	if stack != nil {
		return stack.baseURL
	}

	return defaultBaseURL
}

// newTestClient creates a new HTTP client configured for the test environment
func newTestClient() *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do returns the status code, out receives the data field of successful responses
func (c *apiClient) do(ctx context.Context, user, method, path string, body, out any) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v0"+path, &buf)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if out == nil || resp.StatusCode >= http.StatusBadRequest || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode %s: %w", string(raw), err)
	}

	return resp.StatusCode, json.Unmarshal(env.Data, out)
}

// mustDo fails the test unless the call answers with the expected status
func (c *apiClient) mustDo(t *testing.T, ctx context.Context, user, method, path string, body, out any, expected int) {
	t.Helper()

	status, err := c.do(ctx, user, method, path, body, out)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	if status != expected {
		t.Fatalf("%s %s: expected status %d, got %d", method, path, expected, status)
	}
}

// TestHTTPAuthentication tests that HTTP endpoints require authentication
func TestHTTPAuthentication(t *testing.T) {
	client := newTestClient()
	ctx := context.Background()

	t.Run("Request Without Auth Should Fail", func(t *testing.T) {
		client.mustDo(t, ctx, "", http.MethodGet, "/campaigns", nil, nil, http.StatusUnauthorized)
	})

	t.Run("Unregistered Identity Has No Profile", func(t *testing.T) {
		client.mustDo(t, ctx, fmt.Sprintf("ghost-%d", time.Now().UnixNano()), http.MethodGet, "/me", nil, nil, http.StatusNotFound)
	})

	t.Run("Public Endpoints Need No Auth", func(t *testing.T) {
		client.mustDo(t, ctx, "", http.MethodGet, "/status", nil, nil, http.StatusOK)
		client.mustDo(t, ctx, "", http.MethodGet, "/metrics", nil, nil, http.StatusOK)
	})
}
