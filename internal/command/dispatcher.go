// Package command routes every state-mutating and query intent through a
// single typed registry. Handlers are looked up by command name; a set of
// observing middleware sees each dispatch without being able to change
// its outcome.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fabworks/caseboard/internal/domain"
)

// Command is one intent: a registered name plus its typed payload.
// Commands are ephemeral and never persisted.
type Command struct {
	Name    string
	Payload any
}

// Env holds the shared read accessors every handler gets. Injecting them
// here keeps handlers free of global lookups.
type Env struct {
	// CaseByID resolves a case from the local cache mirror.
	CaseByID func(id uuid.UUID) (domain.Case, bool)
	// Cases returns the mirror's cases in display order.
	Cases func() []domain.Case
	// Actor returns the acting user's display name for the dispatch.
	Actor func(ctx context.Context) (string, bool)
}

// Handler executes one command. It receives the payload as declared by
// the command's input type and returns its result.
type Handler func(ctx context.Context, env Env, payload any) (any, error)

// Observation is what middleware sees for one dispatch.
type Observation struct {
	Command Command
	Result  any
	Err     error
	Elapsed time.Duration
}

// Middleware observes a dispatch after its handler has run. It cannot
// alter the result and must not swallow the error; the dispatcher
// propagates both to the caller unchanged.
type Middleware func(ctx context.Context, obs Observation)

// BatchOptions controls DispatchBatch failure behavior. The zero value
// is abort-on-error.
type BatchOptions struct {
	// ContinueOnError runs every command regardless of failures and
	// returns the joined errors; by default the first failure aborts
	// the remaining commands.
	ContinueOnError bool
}

// Dispatcher is the command registry. Re-registering a name replaces the
// previous handler (last write wins); this is an intentional override
// capability, not an error.
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	middleware []Middleware
	env        Env
}

// New creates a dispatcher with the built-in logging middleware already
// installed.
func New(log *slog.Logger) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]Handler)}
	d.Use(Logging(log))
	return d
}

// Register binds a handler to a command name. The binding is exclusive:
// a later Register for the same name wins.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// SetEnv injects the shared read accessors passed to every handler.
func (d *Dispatcher) SetEnv(env Env) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.env = env
}

// Use appends an observing middleware. Middleware run in registration
// order after every dispatch, including failed ones.
func (d *Dispatcher) Use(mw Middleware) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.middleware = append(d.middleware, mw)
}

// Dispatch looks up the handler for cmd.Name, runs it, notifies the
// middleware, and returns the handler's result and error unchanged.
// Dispatching an unregistered name fails with domain.ErrUnknownCommand.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[cmd.Name]
	env := d.env
	mws := d.middleware
	d.mu.RUnlock()

	if !ok {
		err := fmt.Errorf("dispatch %q: %w", cmd.Name, domain.ErrUnknownCommand)
		d.observe(ctx, mws, Observation{Command: cmd, Err: err})
		return nil, err
	}

	start := time.Now()
	result, err := h(ctx, env, cmd.Payload)
	d.observe(ctx, mws, Observation{Command: cmd, Result: result, Err: err, Elapsed: time.Since(start)})
	return result, err
}

// DispatchBatch executes commands sequentially, in order, so each
// handler observes the effects of all prior commands in the batch. By
// default the first failure aborts the rest; the results accumulated up
// to that point are returned alongside the error. With ContinueOnError
// every command runs, failed positions hold a nil result, and the
// joined errors are returned.
func (d *Dispatcher) DispatchBatch(ctx context.Context, cmds []Command, opts BatchOptions) ([]any, error) {
	var (
		results []any
		errs    []error
	)
	for _, cmd := range cmds {
		result, err := d.Dispatch(ctx, cmd)
		if err != nil {
			if !opts.ContinueOnError {
				return results, err
			}
			errs = append(errs, fmt.Errorf("%s: %w", cmd.Name, err))
			results = append(results, nil)
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

func (d *Dispatcher) observe(ctx context.Context, mws []Middleware, obs Observation) {
	for _, mw := range mws {
		mw(ctx, obs)
	}
}
