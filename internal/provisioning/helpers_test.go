package provisioning

import (
	"context"
	"sync"
	"time"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/platform/shell"
)

// fakeHost records requests and answers them through respond.
type fakeHost struct {
	mu       sync.Mutex
	requests []shell.Request
	respond  func(ctx context.Context, req shell.Request) (shell.Response, error)
}

func (h *fakeHost) Name() string { return "fake-host" }

func (h *fakeHost) Run(ctx context.Context, req shell.Request) (shell.Response, error) {
	h.mu.Lock()
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	if h.respond == nil {
		return shell.Response{}, nil
	}
	return h.respond(ctx, req)
}

func (h *fakeHost) programs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.requests))
	for i, r := range h.requests {
		out[i] = r.Program
	}
	return out
}

func (h *fakeHost) teeTo(path string) (shell.Request, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.requests {
		if r.Program == "tee" && len(r.Args) == 1 && r.Args[0] == path {
			return r, true
		}
	}
	return shell.Request{}, false
}

// recordingObserver keeps every event, including those emitted through WithFields.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
	fields map[string]string
}

func (o *recordingObserver) Printf(string, ...interface{}) {}

func (o *recordingObserver) Event(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) Progress(string, int, int) {}

func (o *recordingObserver) WithFields(fields map[string]string) Observer {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fields == nil {
		o.fields = make(map[string]string)
	}
	for k, v := range fields {
		o.fields[k] = v
	}
	return o
}

func (o *recordingObserver) types() []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]EventType, len(o.events))
	for i, e := range o.events {
		out[i] = e.Type
	}
	return out
}

func (o *recordingObserver) count(t EventType) int {
	n := 0
	for _, et := range o.types() {
		if et == t {
			n++
		}
	}
	return n
}

func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		Command:           time.Minute,
		Network:           time.Minute,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Millisecond,
		RetryMaxDelay:     5 * time.Millisecond,
	}
}

func noSleep(context.Context, time.Duration) error { return nil }
