package navmw

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/termo-dev/termo/pkg/nav"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestPrometheusObserverRecordsSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := Prometheus(WithRegistry(reg))

	to := &nav.Route{Path: "/users/42"}
	obs.TransitionStarted("/users/42", nav.DirectionForward)
	obs.TransitionFinished(to, nil, nav.DirectionForward, nil, 3*time.Millisecond)

	if got := counterValue(t, obs.transitionsTotal.WithLabelValues("forward", "success")); got != 1 {
		t.Errorf("transitions_total(forward,success) = %v, want 1", got)
	}
	if got := counterValue(t, obs.transitionsTotal.WithLabelValues("forward", "error")); got != 0 {
		t.Errorf("transitions_total(forward,error) = %v, want 0", got)
	}
	if got := gaugeValue(t, obs.transitionsInFlight); got != 0 {
		t.Errorf("transitions_in_flight = %v, want 0 after settle", got)
	}
}

func TestPrometheusObserverRecordsFailureReason(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := Prometheus(WithRegistry(reg))

	err := &nav.NavError{Op: "navigate", Path: "/blocked", Err: nav.ErrGuardAbort}
	obs.TransitionStarted("/blocked", nav.DirectionForward)
	obs.TransitionFinished(&nav.Route{Path: "/blocked"}, nil, nav.DirectionForward, err, time.Millisecond)

	if got := counterValue(t, obs.transitionFailures.WithLabelValues("forward", "guard_abort")); got != 1 {
		t.Errorf("transition_failures(guard_abort) = %v, want 1", got)
	}
	if got := counterValue(t, obs.transitionsTotal.WithLabelValues("forward", "error")); got != 1 {
		t.Errorf("transitions_total(forward,error) = %v, want 1", got)
	}
}

func TestPrometheusObserverInFlightGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := Prometheus(WithRegistry(reg))

	obs.TransitionStarted("/a", nav.DirectionForward)
	if got := gaugeValue(t, obs.transitionsInFlight); got != 1 {
		t.Errorf("transitions_in_flight = %v, want 1 while in flight", got)
	}
	obs.TransitionFinished(&nav.Route{Path: "/a"}, nil, nav.DirectionForward, nil, time.Millisecond)
	if got := gaugeValue(t, obs.transitionsInFlight); got != 0 {
		t.Errorf("transitions_in_flight = %v, want 0", got)
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"guard abort", &nav.NavError{Err: nav.ErrGuardAbort}, "guard_abort"},
		{"redirect loop", &nav.NavError{Err: nav.ErrRedirectLoop}, "redirect_loop"},
		{"invalid target", &nav.NavError{Err: nav.ErrInvalidTarget}, "invalid_target"},
		{"queue full", nav.ErrQueueFull, "queue_full"},
		{"engine closed", nav.ErrEngineClosed, "engine_closed"},
		{"view error", &nav.ViewError{Path: "/x", Err: errors.New("boom")}, "view_error"},
		{"view panic", &nav.ViewError{Path: "/x", Panic: "boom"}, "view_panic"},
		{"unknown", errors.New("weird"), "internal"},
	}

	for _, tt := range tests {
		if got := failureReason(tt.err); got != tt.want {
			t.Errorf("%s: failureReason = %q, want %q", tt.name, got, tt.want)
		}
	}
}
