// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime    *prometheus.HistogramVec
	dependencies    *prometheus.GaugeVec
	liveSubscribers *prometheus.GaugeVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(m.labels(tags)).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(m.labels(tags)).Set(value)

	return nil
}

func (m *Monitor) SetLiveSubscribers(tags map[string]string, value float64) error {
	if m.liveSubscribers == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.liveSubscribers.With(m.labels(tags)).Set(value)

	return nil
}

func (m *Monitor) labels(tags map[string]string) prometheus.Labels {
	l := prometheus.Labels{"service": m.service}

	for k, v := range tags {
		l[k] = v
	}

	return l
}

func (m *Monitor) registerHistograms(registerer prometheus.Registerer) {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status", "service"},
	)

	if err := registerer.Register(m.responseTime); err != nil {
		m.logger.Debugf("metric already registered: %s", err)
	}
}

func (m *Monitor) registerGauges(registerer prometheus.Registerer) {
	m.dependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	)

	m.liveSubscribers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "live_subscribers",
			Help: "number of connected live leaderboard subscribers",
		},
		[]string{"service"},
	)

	for _, c := range []prometheus.Collector{m.dependencies, m.liveSubscribers} {
		if err := registerer.Register(c); err != nil {
			m.logger.Debugf("metric already registered: %s", err)
		}
	}
}

// NewMonitor registers the service metrics on the default prometheus registry
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	return NewMonitorWithRegisterer(service, prometheus.DefaultRegisterer, logger)
}

func NewMonitorWithRegisterer(service string, registerer prometheus.Registerer, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms(registerer)
	m.registerGauges(registerer)

	return m
}
