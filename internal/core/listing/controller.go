package listing

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned by Refresh when a newer refresh started before
// this one completed. The late response is discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// State is the controller's remote-operation state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
)

// FetchFunc loads the full record set from the remote API.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// View is the controller's derived state.
type View[T any] struct {
	Page[T]
	Entity   string    `json:"entity"`
	Criteria Criteria  `json:"criteria"`
	State    State     `json:"state"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// Controller owns the filter criteria, current page and record cache of one
// listing. It is safe for concurrent use.
type Controller[T any] struct {
	schema   Schema[T]
	fetch    FetchFunc[T]
	pageSize int
	now      func() time.Time

	mu       sync.Mutex
	criteria Criteria
	page     int
	records  []T
	state    State
	loadedAt time.Time
	gen      uint64
	cancel   context.CancelFunc
}

// NewController returns an idle controller on page 1 with an empty cache.
func NewController[T any](schema Schema[T], pageSize int, fetch FetchFunc[T]) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		schema:   schema,
		fetch:    fetch,
		pageSize: pageSize,
		now:      time.Now,
		page:     1,
		state:    StateIdle,
	}
}

// SetFilter replaces one criterion and resets the current page to 1.
func (c *Controller[T]) SetFilter(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.schema.Set(c.criteria, name, value)
	if err != nil {
		return err
	}
	c.criteria = next
	c.page = 1
	return nil
}

// SetPage moves to page n, clamped to the pages of the filtered sequence.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = ClampPage(n, c.totalPagesLocked())
}

// Refresh reloads the cache. A refresh started later cancels this one; if the
// fetch still completes, its result is dropped and ErrSuperseded returned.
// On failure the previous cache is kept.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.mu.Unlock()

	records, err := c.fetch(fetchCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if gen != c.gen {
		return ErrSuperseded
	}
	c.cancel = nil
	c.state = StateIdle
	if err != nil {
		return err
	}

	c.records = records
	c.loadedAt = c.now()
	c.page = ClampPage(c.page, c.totalPagesLocked())
	return nil
}

// Loaded reports whether at least one refresh has succeeded.
func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loadedAt.IsZero()
}

// View recomputes the filtered, paginated view.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View[T]{
		Page:     Apply(c.records, c.criteria, c.page, c.pageSize, c.schema),
		Entity:   c.schema.Entity,
		Criteria: c.criteria,
		State:    c.state,
		LoadedAt: c.loadedAt,
	}
}

// Close cancels any in-flight refresh.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller[T]) totalPagesLocked() int {
	return TotalPages(len(Filter(c.records, c.criteria, c.schema)), c.pageSize)
}
