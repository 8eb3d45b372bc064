package addrstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/vanitystore/pkg/logger"
)

// Runtime owns the process-scoped side of the store: it is started once,
// before the first Gateway opens, and shut down once, after which no Gateway
// can be opened and any still open are closed.
//
// Most programs use the package default runtime; pass WithRuntime to scope
// gateways to an explicit one.
type Runtime struct {
	mu      sync.Mutex
	started bool
	closed  bool
	live    map[*Gateway]struct{}
	log     *slog.Logger
}

var defaultRuntime = NewRuntime(nil)

// DefaultRuntime returns the runtime used when no WithRuntime option is given.
func DefaultRuntime() *Runtime { return defaultRuntime }

// NewRuntime creates a runtime. A nil log discards records.
func NewRuntime(log *slog.Logger) *Runtime {
	if log == nil {
		log = logger.Discard()
	}
	return &Runtime{
		live: make(map[*Gateway]struct{}),
		log:  log.With(logger.Component("addrstore.runtime")),
	}
}

// Live reports how many gateways are currently registered.
func (r *Runtime) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Closed reports whether Shutdown has run.
func (r *Runtime) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Runtime) register(g *Gateway) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRuntimeClosed
	}
	if !r.started {
		r.started = true
		r.log.Debug("runtime started")
	}
	r.live[g] = struct{}{}
	return nil
}

func (r *Runtime) unregister(g *Gateway) {
	r.mu.Lock()
	delete(r.live, g)
	r.mu.Unlock()
}

// Shutdown closes every gateway still registered and marks the runtime closed.
// Only the first call does work; later calls return nil.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	open := make([]*Gateway, 0, len(r.live))
	for g := range r.live {
		open = append(open, g)
	}
	r.mu.Unlock()

	var (
		errs     []error
		leftover int
	)
	for _, g := range open {
		// Gateways still inside Open are not leaks; Open sees the closed
		// runtime and backs out on its own.
		if g.initialized() {
			leftover++
		}
		if err := g.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if leftover > 0 {
		r.log.WarnContext(ctx, "closed gateways left open at shutdown",
			logger.Count("gateways", leftover),
			logger.Errors(errs...),
		)
	}
	r.log.DebugContext(ctx, "runtime shut down")
	return errors.Join(errs...)
}
