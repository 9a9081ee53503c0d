package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
)

// Doer performs one backend call. *gateway.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Controller owns the mirror of one backend collection.
type Controller[E any, D any] struct {
	def      Definition[E, D]
	client   Doer
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	mu       sync.Mutex
	status   Status
	items    []E
	message  string
	loadedAt time.Time
	busy     bool
	gen      uint64
	lifetime context.Context
	cancel   context.CancelFunc

	loads singleflight.Group
}

// New constructs a Controller. It panics on an incomplete definition,
// which is a programming error caught at start-up.
func New[E any, D any](def Definition[E, D], client Doer, logger *slog.Logger) *Controller[E, D] {
	if err := def.check(); err != nil {
		panic(err)
	}
	if def.Noun == "" {
		def.Noun = def.Name
	}
	if def.Plural == "" {
		def.Plural = def.Name
	}
	if logger == nil {
		logger = slog.Default()
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &Controller[E, D]{
		def:      def,
		client:   client,
		logger:   logger.With(slog.String("resource", def.Name)),
		validate: newValidator(),
		now:      time.Now,
		lifetime: lifetime,
		cancel:   cancel,
	}
}

// Name returns the resource name.
func (c *Controller[E, D]) Name() string { return c.def.Name }

// Definition returns the controller's definition.
func (c *Controller[E, D]) Definition() Definition[E, D] { return c.def }

// Snapshot returns a copy of the current state.
func (c *Controller[E, D]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[E]{
		Status:   c.status,
		Items:    slices.Clone(c.items),
		Message:  c.message,
		LoadedAt: c.loadedAt,
	}
}

// Status returns the current lifecycle state.
func (c *Controller[E, D]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Failure returns the notice of the last failed load, or "".
func (c *Controller[E, D]) Failure() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusLoadFailed {
		return ""
	}
	return c.message
}

// Find returns the mirrored entity with the given identifier.
func (c *Controller[E, D]) Find(id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.def.ID(item) == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Notice converts an error returned by op into a user-facing message.
func (c *Controller[E, D]) Notice(op Op, err error) string {
	return notice(op, c.def.Noun, c.def.Plural, err)
}

// Detach is the teardown boundary: in-flight calls are canceled, late
// results are dropped and the mirror returns to Idle.
func (c *Controller[E, D]) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.gen++
	c.lifetime, c.cancel = context.WithCancel(context.Background())
	c.items = nil
	c.status = StatusIdle
	c.message = ""
	c.loadedAt = time.Time{}
	c.busy = false
}

// Load replaces the mirror with the backend collection. On failure the
// mirror is left untouched and the failure is recorded in the state; the
// returned error is informational. A shared fetch outlives the caller that
// started it; ctx only bounds how long this caller waits for the result.
func (c *Controller[E, D]) Load(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	lifetime := c.lifetime
	c.status = StatusLoading
	c.mu.Unlock()

	key := strconv.FormatUint(gen, 10)
	ch := c.loads.DoChan(key, func() (any, error) {
		callCtx, cancel := bind(context.WithoutCancel(ctx), lifetime)
		defer cancel()
		return nil, c.fetch(callCtx, gen)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (c *Controller[E, D]) fetch(ctx context.Context, gen uint64) error {
	var items []E
	err := c.client.Do(ctx, http.MethodGet, c.def.Path, nil, &items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrDetached
	}
	if err != nil {
		c.status = StatusLoadFailed
		c.message = c.Notice(OpLoad, err)
		c.logger.Warn("load failed", slog.Any("error", err))
		return err
	}
	c.items = c.dedupe(items)
	c.status = StatusReady
	c.message = ""
	c.loadedAt = c.now()
	return nil
}

func (c *Controller[E, D]) dedupe(items []E) []E {
	seen := make(map[string]struct{}, len(items))
	out := make([]E, 0, len(items))
	for _, item := range items {
		id := c.def.ID(item)
		if _, dup := seen[id]; dup {
			c.logger.Warn("duplicate identifier in collection", slog.String("id", id))
			continue
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Create validates draft, POSTs it and resynchronizes the mirror.
func (c *Controller[E, D]) Create(ctx context.Context, draft D) error {
	if err := c.check(draft, false); err != nil {
		return err
	}
	payload, err := c.def.Encode(draft)
	if err != nil {
		return err
	}
	return c.mutate(ctx, http.MethodPost, c.def.Path, payload, OpCreate)
}

// Update validates draft and PATCHes the fields that differ from the
// mirrored entity. Blank secret fields are never sent.
func (c *Controller[E, D]) Update(ctx context.Context, id string, draft D) error {
	if id == "" {
		return ErrNotFound
	}
	if err := c.check(draft, true); err != nil {
		return err
	}
	payload, err := c.def.Encode(draft)
	if err != nil {
		return err
	}
	c.stripBlankSecrets(payload)

	if current, ok := c.Find(id); ok {
		if before, err := c.def.Encode(c.def.Edit(current)); err == nil {
			payload = diff(before, payload)
		}
	}
	if len(payload) == 0 {
		return nil
	}
	return c.mutate(ctx, http.MethodPatch, c.def.itemPath(id), payload, OpUpdate)
}

// Delete asks confirm for approval, DELETEs the entity and resynchronizes.
func (c *Controller[E, D]) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if id == "" {
		return ErrNotFound
	}
	if confirm == nil || !confirm.Confirm(ctx, c.Prompt(id)) {
		return ErrNotConfirmed
	}
	err := c.mutate(ctx, http.MethodDelete, c.def.itemPath(id), nil, OpDelete)
	if err != nil && c.def.Dependents != "" && gateway.IsRejected(err) {
		return &ConflictError{Noun: c.def.Noun, Dependents: c.def.Dependents, Err: err}
	}
	return err
}

// Prompt returns the confirmation question asked before deleting id.
func (c *Controller[E, D]) Prompt(id string) string {
	if item, ok := c.Find(id); ok {
		return fmt.Sprintf("Delete %s %q?", c.def.Noun, c.def.label(item))
	}
	return fmt.Sprintf("Delete %s %s?", c.def.Noun, id)
}

func (c *Controller[E, D]) check(draft D, update bool) error {
	var err error
	if update && len(c.def.Secrets) > 0 {
		err = c.validate.StructExcept(draft, c.def.secretFields()...)
	} else {
		err = c.validate.Struct(draft)
	}
	if err != nil {
		return validationFailure(err)
	}
	return nil
}

func (c *Controller[E, D]) stripBlankSecrets(p Payload) {
	for _, s := range c.def.Secrets {
		if v, ok := p[s.Key]; ok {
			if str, isStr := v.(string); !isStr || str == "" {
				delete(p, s.Key)
			}
		}
	}
}

// mutate runs one network mutation and always resynchronizes afterwards.
func (c *Controller[E, D]) mutate(ctx context.Context, method, path string, payload Payload, op Op) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.status = StatusMutating
	gen := c.gen
	lifetime := c.lifetime
	c.mu.Unlock()

	callCtx, cancel := bind(ctx, lifetime)
	var body any
	if payload != nil {
		body = payload
	}
	callErr := c.client.Do(callCtx, method, path, body, nil)
	cancel()

	c.mu.Lock()
	detached := gen != c.gen
	if !detached {
		c.busy = false
	}
	c.mu.Unlock()
	if detached {
		return ErrDetached
	}

	if callErr != nil {
		c.logger.Warn("mutation failed", slog.String("op", string(op)), slog.String("path", path), slog.Any("error", callErr))
	}
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrDetached) {
		c.logger.Warn("resync after mutation failed", slog.String("op", string(op)), slog.Any("error", err))
	}
	return callErr
}

// bind derives a context canceled by either parent or lifetime.
func bind(parent, lifetime context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func diff(before, after Payload) Payload {
	out := Payload{}
	for k, v := range after {
		if old, ok := before[k]; ok && reflect.DeepEqual(old, v) {
			continue
		}
		out[k] = v
	}
	return out
}
