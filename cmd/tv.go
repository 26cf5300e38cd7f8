// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fatih/color"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/internal/live"
)

const (
	tvPollInterval    = 5 * time.Second
	reconnectDelay    = time.Second
	reconnectMaxDelay = 30 * time.Second
	reconnectAttempts = 5
	handshakeTimeout  = 10 * time.Second

	// one server ping period
	stableConnection = 30 * time.Second
)

var errStreamDropped = errors.New("live stream dropped")

var tvCmd = &cobra.Command{
	Use:   "tv [campaign-id]",
	Short: "Display a campaign leaderboard live, refreshed on every sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return newViewer(client, args[0], os.Stdout).Run(ctx)
	},
}

// viewer keeps a leaderboard on screen: a live stream triggers refreshes and a poll
// resyncs whatever the stream missed
type viewer struct {
	client     *apiClient
	campaignID string
	dialer     *websocket.Dialer

	pollInterval      time.Duration
	reconnectDelay    time.Duration
	reconnectMaxDelay time.Duration
	reconnectAttempts uint
	stableAfter       time.Duration

	mu  sync.Mutex
	out io.Writer
}

func newViewer(client *apiClient, campaignID string, out io.Writer) *viewer {
	v := new(viewer)

	v.client = client
	v.campaignID = campaignID
	v.out = out
	v.dialer = &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	v.pollInterval = tvPollInterval
	v.reconnectDelay = reconnectDelay
	v.reconnectMaxDelay = reconnectMaxDelay
	v.reconnectAttempts = reconnectAttempts
	v.stableAfter = stableConnection

	return v
}

// Run blocks until ctx is done, losing the stream falls back to polling only
func (v *viewer) Run(ctx context.Context) error {
	if err := v.refresh(ctx); err != nil {
		return err
	}

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		v.poll(ctx)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		if err := v.stream(ctx); err != nil && ctx.Err() == nil {
			v.notice(color.FgRed, "live updates unavailable, polling every %s: %v", v.pollInterval, err)
		}
		return nil
	})

	return p.Wait()
}

func (v *viewer) poll(ctx context.Context) {
	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.refresh(ctx); err != nil && ctx.Err() == nil {
				v.notice(color.FgRed, "%v", err)
			}
		}
	}
}

// stream follows the live channel. A connection that stayed up for stableAfter
// restarts the retry budget, a normal close ends streaming for good.
func (v *viewer) stream(ctx context.Context) error {
	for {
		err := retry.Do(
			func() error { return v.follow(ctx) },
			retry.Context(ctx),
			retry.Attempts(v.reconnectAttempts),
			retry.Delay(v.reconnectDelay),
			retry.MaxDelay(v.reconnectMaxDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				v.notice(color.FgRed, "live connection lost (%v), reconnect attempt %d", err, n+1)
			}),
		)

		switch {
		case errors.Is(err, errStreamDropped):
		case isNormalClose(err):
			return nil
		default:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(v.reconnectDelay):
		}
	}
}

// follow reads one connection until it ends. A connection that was up for at
// least stableAfter reports errStreamDropped so the caller restarts the backoff,
// shorter ones count as a failed attempt.
func (v *viewer) follow(ctx context.Context) error {
	conn, _, err := v.dialer.DialContext(ctx, v.client.wsURL(v.campaignID), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			conn.Close()
		case <-done:
		}
	}()

	connectedAt := time.Now()
	v.notice(color.FgGreen, "live updates connected")

	for {
		event := new(live.Event)
		if err := conn.ReadJSON(event); err != nil {
			if isNormalClose(err) || ctx.Err() != nil {
				return retry.Unrecoverable(err)
			}
			if time.Since(connectedAt) < v.stableAfter {
				return err
			}
			return retry.Unrecoverable(fmt.Errorf("%w: %v", errStreamDropped, err))
		}

		if event.Type != live.EventNewSale {
			continue
		}

		v.celebrate(event)

		if err := v.refresh(ctx); err != nil && ctx.Err() == nil {
			v.notice(color.FgRed, "%v", err)
		}
	}
}

func isNormalClose(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) && ce.Code == websocket.CloseNormalClosure
}

func (v *viewer) refresh(ctx context.Context) error {
	board, err := fetchLeaderboard(ctx, v.client, v.campaignID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "\n[%s]\n", time.Now().Format(time.Kitchen))
	renderLeaderboard(v.out, board)

	return nil
}

func (v *viewer) celebrate(e *live.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	msg := fmt.Sprintf("NEW SALE! %s closed %s", e.Data.SellerName, e.Data.Amount)
	if e.Data.CustomerName != "" {
		msg += " with " + e.Data.CustomerName
	}

	color.New(color.FgGreen, color.Bold).Fprintln(v.out, msg)
}

func (v *viewer) notice(attr color.Attribute, format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	color.New(attr).Fprintf(v.out, format+"\n", args...)
}

func init() {
	rootCmd.AddCommand(tvCmd)
}
