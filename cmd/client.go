// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/canonical/sales-leaderboard/internal/validation"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
	"github.com/canonical/sales-leaderboard/pkg/web"
)

const clientRetries = 3

// apiClient talks to the JSON API, transient failures are retried
type apiClient struct {
	base  *url.URL
	token string
	http  *retryablehttp.Client
}

type apiError struct {
	Status  int                     `json:"status"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func (e *apiError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}

	fields := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors {
		fields = append(fields, f.Field+" "+f.Reason)
	}

	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, strings.Join(fields, ", "))
}

func newAPIClient(rawURL, token string) (*apiClient, error) {
	base, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", rawURL, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", rawURL)
	}

	c := retryablehttp.NewClient()
	c.RetryMax = clientRetries
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 5 * time.Second
	c.Logger = nil

	return &apiClient{base: base, token: token, http: c}, nil
}

// endpoint resolves path below the versioned API prefix
func (c *apiClient) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = u.Path + web.APIPrefix + path

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// do sends body as JSON and unwraps the data envelope into out
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload any
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = raw
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.endpoint(path, query), payload)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("unexpected response: %w", err)
	}

	return json.Unmarshal(envelope.Data, out)
}

// wsURL is the live endpoint, the token travels as a query parameter
func (c *apiClient) wsURL(campaignID string) string {
	u := *c.base
	u.Path = u.Path + web.APIPrefix + "/ws"

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	q := url.Values{}
	if c.token != "" {
		q.Set(authentication.AccessTokenParam, c.token)
	}
	if campaignID != "" {
		q.Set("campaign_id", campaignID)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func clientFromFlags() (*apiClient, error) {
	return newAPIClient(apiURL, accessToken)
}
