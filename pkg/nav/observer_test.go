package nav

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordingObserver captures lifecycle notifications.
type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	finished []error
	panicOn  string
}

func (r *recordingObserver) TransitionStarted(path string, direction Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panicOn == "started" {
		panic("observer boom")
	}
	r.started = append(r.started, path)
}

func (r *recordingObserver) TransitionFinished(to, from *Route, direction Direction, err error, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.panicOn == "finished" {
		panic("observer boom")
	}
	r.finished = append(r.finished, err)
}

func (r *recordingObserver) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.started), len(r.finished)
}

func TestObserverNotifiedOncePerRequest(t *testing.T) {
	obs := &recordingObserver{}
	e, _ := newTestEngine(t, &Config{
		Observers: []Observer{obs},
		Routes: []RouteDefinition{
			{Path: "/login", View: textView("login")},
			{
				Path: "/protected",
				View: textView("secret"),
				BeforeEnter: func(ctx context.Context, to, from *Route) (Decision, error) {
					return Redirect("/login"), nil
				},
			},
		},
	})

	// A redirect chain is one queued request: one started, one finished.
	e.Push("/protected")

	started, finished := obs.counts()
	if started != 1 || finished != 1 {
		t.Errorf("started=%d finished=%d, want 1/1 per queued request", started, finished)
	}
}

func TestObserverReceivesError(t *testing.T) {
	obs := &recordingObserver{}
	e, _ := newTestEngine(t, &Config{
		Observers: []Observer{obs},
		Routes:    []RouteDefinition{{Path: "/a", View: textView("a")}},
	})
	e.BeforeEach(func(ctx context.Context, to, from *Route) (Decision, error) {
		return Abort(), nil
	})

	e.Push("/a")

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.finished) != 1 || obs.finished[0] == nil {
		t.Errorf("finished = %v, want one non-nil error", obs.finished)
	}
}

func TestObserverPanicIsolated(t *testing.T) {
	bad := &recordingObserver{panicOn: "finished"}
	good := &recordingObserver{}
	e, _ := newTestEngine(t, &Config{
		Observers: []Observer{bad, good},
		Routes:    []RouteDefinition{{Path: "/a", View: textView("a")}},
	})

	if !e.Push("/a") {
		t.Fatal("observer panic must not fail the transition")
	}
	if _, finished := good.counts(); finished != 1 {
		t.Error("later observers must still be notified after a panic")
	}
}

func TestAddObserverAndRemove(t *testing.T) {
	e, _ := newTestEngine(t, &Config{
		Routes: []RouteDefinition{{Path: "/a", View: textView("a")}},
	})

	obs := &recordingObserver{}
	off := e.AddObserver(obs)

	e.Push("/a")
	off()
	e.Push("/a")

	if started, _ := obs.counts(); started != 1 {
		t.Errorf("observer saw %d starts, want 1 after unsubscribe", started)
	}
}
