// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package live

import (
	"context"
	"errors"
	"sync"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
)

const defaultBufferSize = 16

var ErrHubClosed = errors.New("live hub is closed")

// Hub fans events out to the subscribers of a company.
// Delivery is best effort: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	count  int
	closed bool

	bufferSize int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type Subscription struct {
	companyID  string
	campaignID string

	events chan *Event
	hub    *Hub
	once   sync.Once
}

// Events is closed when the subscription ends or the hub shuts down
func (s *Subscription) Events() <-chan *Event {
	return s.events
}

func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

func (s *Subscription) wants(e *Event) bool {
	return s.campaignID == "" || s.campaignID == e.Data.CampaignID
}

// Subscribe registers a subscriber for the company, campaignID optionally narrows the stream
func (h *Hub) Subscribe(ctx context.Context, companyID, campaignID string) (*Subscription, error) {
	_, span := h.tracer.Start(ctx, "live.Hub.Subscribe")
	defer span.End()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscription{
		companyID:  companyID,
		campaignID: campaignID,
		events:     make(chan *Event, h.bufferSize),
		hub:        h,
	}

	subs, ok := h.topics[companyID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[companyID] = subs
	}

	subs[sub] = struct{}{}
	h.count++
	h.reportSubscribers()

	return sub, nil
}

// Publish delivers the event to every matching subscriber of the company without
// blocking and returns how many received it
func (h *Hub) Publish(ctx context.Context, companyID string, e *Event) int {
	_, span := h.tracer.Start(ctx, "live.Hub.Publish")
	defer span.End()

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.topics[companyID] {
		if !sub.wants(e) {
			continue
		}

		select {
		case sub.events <- e:
			delivered++
		default:
			h.logger.Warnf("live subscriber buffer full, dropping %s event for sale %s", e.Type, e.Data.SaleID)
		}
	}

	return delivered
}

// Subscribers returns the number of subscribers of the company
func (h *Hub) Subscribers(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[companyID])
}

// Close ends every subscription, later Subscribe calls fail
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true

	for companyID, subs := range h.topics {
		for sub := range subs {
			sub.once.Do(func() { close(sub.events) })
		}
		delete(h.topics, companyID)
	}

	h.count = 0
	h.reportSubscribers()
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.topics[sub.companyID]; ok {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			h.count--

			if len(subs) == 0 {
				delete(h.topics, sub.companyID)
			}
		}
	}

	sub.once.Do(func() { close(sub.events) })
	h.reportSubscribers()
}

// reportSubscribers must be called with the lock held
func (h *Hub) reportSubscribers() {
	if err := h.monitor.SetLiveSubscribers(nil, float64(h.count)); err != nil {
		h.logger.Debugf("failed to set live subscribers metric: %v", err)
	}
}

func NewHub(bufferSize int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Hub {
	h := new(Hub)

	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	h.topics = make(map[string]map[*Subscription]struct{})
	h.bufferSize = bufferSize

	h.tracer = tracer
	h.monitor = monitor
	h.logger = logger

	return h
}
