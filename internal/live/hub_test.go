// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package live

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
)

func newTestHub(bufferSize int) *Hub {
	logger := logging.NewNoopLogger()

	return NewHub(bufferSize, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func saleEvent(id, campaignID, seller, amount string) *Event {
	return NewSaleEvent(&types.Sale{
		ID:           id,
		CampaignID:   campaignID,
		SellerID:     seller,
		Amount:       types.MustAmount(amount),
		CustomerName: "X",
	}, seller)
}

func receive(t *testing.T, sub *Subscription) *Event {
	t.Helper()

	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "subscription closed unexpectedly")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func assertNoEvent(t *testing.T, sub *Subscription) {
	t.Helper()

	select {
	case e := <-sub.Events():
		t.Fatalf("unexpected event %+v", e)
	default:
	}
}

func TestPublishReachesCompanySubscribersOnly(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(4)

	viewer, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)
	other, err := h.Subscribe(ctx, "globex", "")
	require.NoError(t, err)

	delivered := h.Publish(ctx, "acme", saleEvent("s1", "c1", "Bob", "50.00"))
	assert.Equal(t, 1, delivered)

	e := receive(t, viewer)
	assert.Equal(t, EventNewSale, e.Type)
	assert.Equal(t, "Bob", e.Data.SellerName)
	assert.Equal(t, "50.00", e.Data.Amount)

	assertNoEvent(t, viewer)
	assertNoEvent(t, other)
}

func TestCampaignFilter(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(4)

	c1, err := h.Subscribe(ctx, "acme", "c1")
	require.NoError(t, err)
	all, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)

	h.Publish(ctx, "acme", saleEvent("s1", "c2", "Bob", "10"))

	assertNoEvent(t, c1)
	assert.Equal(t, "s1", receive(t, all).Data.SaleID)
}

func TestOrderIsPreservedPerSubscriber(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(8)

	sub, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)

	for _, id := range []string{"s1", "s2", "s3"} {
		h.Publish(ctx, "acme", saleEvent(id, "c1", "Bob", "1"))
	}

	assert.Equal(t, "s1", receive(t, sub).Data.SaleID)
	assert.Equal(t, "s2", receive(t, sub).Data.SaleID)
	assert.Equal(t, "s3", receive(t, sub).Data.SaleID)
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(1)

	slow, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)
	fast, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)

	assert.Equal(t, 2, h.Publish(ctx, "acme", saleEvent("s1", "c1", "Bob", "1")))
	receive(t, fast)

	// slow never drained its buffer of one
	assert.Equal(t, 1, h.Publish(ctx, "acme", saleEvent("s2", "c1", "Bob", "1")))
	assert.Equal(t, "s2", receive(t, fast).Data.SaleID)

	assert.Equal(t, "s1", receive(t, slow).Data.SaleID)
	assertNoEvent(t, slow)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(1)

	sub, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)
	assert.Equal(t, 1, h.Subscribers("acme"))

	sub.Close()
	sub.Close()

	_, ok := <-sub.Events()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers("acme"))
	assert.Equal(t, 0, h.Publish(ctx, "acme", saleEvent("s1", "c1", "Bob", "1")))
}

func TestCloseDropsSubscribers(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(1)

	sub, err := h.Subscribe(ctx, "acme", "")
	require.NoError(t, err)

	h.Close()

	_, ok := <-sub.Events()
	assert.False(t, ok)

	sub.Close()

	_, err = h.Subscribe(ctx, "acme", "")
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	ctx := context.Background()
	h := newTestHub(64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			sub, err := h.Subscribe(ctx, "acme", "")
			if err != nil {
				return
			}
			sub.Close()
		}()

		go func() {
			defer wg.Done()
			h.Publish(ctx, "acme", saleEvent("s", "c1", "Bob", "1"))
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, h.Subscribers("acme"))
}
