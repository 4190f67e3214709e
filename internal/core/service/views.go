package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/api/metrics"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

// Listing views available per session.
const (
	ViewUsers  = "users"
	ViewEvents = "events"
)

// viewer erases the record type of a listing controller.
type viewer interface {
	SetFilter(name, value string) error
	SetPage(n int)
	Refresh(ctx context.Context) error
	Loaded() bool
	Close()
	snapshot() any
}

type controller[T any] struct {
	*listing.Controller[T]
}

func (c controller[T]) snapshot() any { return c.View() }

// viewEntry is one session's controller plus the entity generation its
// records were loaded at.
type viewEntry struct {
	viewer
	gen atomic.Uint64
}

func (e *viewEntry) loadedAt(gen uint64) {
	for {
		old := e.gen.Load()
		if old >= gen || e.gen.CompareAndSwap(old, gen) {
			return
		}
	}
}

type sessionViews struct {
	views    map[string]*viewEntry
	lastUsed time.Time
}

// ViewRegistry holds the users and events listing controllers of every
// signed-in admin. Controllers are created on first use and dropped at logout
// or after sitting idle.
type ViewRegistry struct {
	users    ports.UserGateway
	events   ports.EventGateway
	pageSize int
	log      zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionViews
	// gens counts mutations per entity; a view loaded at an older
	// generation is re-fetched on its next read.
	gens map[string]uint64
}

var (
	_ ports.ViewService     = (*ViewRegistry)(nil)
	_ ports.ViewInvalidator = (*ViewRegistry)(nil)
	_ SessionCloser         = (*ViewRegistry)(nil)
)

func NewViewRegistry(users ports.UserGateway, events ports.EventGateway, pageSize int, log zerolog.Logger) *ViewRegistry {
	return &ViewRegistry{
		users:    users,
		events:   events,
		pageSize: pageSize,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*sessionViews),
		gens:     make(map[string]uint64),
	}
}

func (r *ViewRegistry) newViewer(entity string) (viewer, error) {
	switch entity {
	case ViewUsers:
		return controller[domain.User]{listing.NewController(listing.Users, r.pageSize, r.users.ListUsers)}, nil
	case ViewEvents:
		return controller[domain.Event]{listing.NewController(listing.Events, r.pageSize, r.events.Events().List)}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownView, entity)
}

func (r *ViewRegistry) get(sessionID, entity string) (*viewEntry, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sv, ok := r.sessions[sessionID]
	if !ok {
		sv = &sessionViews{views: make(map[string]*viewEntry)}
		r.sessions[sessionID] = sv
	}
	sv.lastUsed = r.now()

	if e, ok := sv.views[entity]; ok {
		return e, r.gens[entity], nil
	}
	v, err := r.newViewer(entity)
	if err != nil {
		return nil, 0, err
	}
	e := &viewEntry{viewer: v}
	sv.views[entity] = e
	return e, r.gens[entity], nil
}

// MarkStale makes every session re-fetch the entity's records on its next
// read. Unknown entities are ignored.
func (r *ViewRegistry) MarkStale(entity string) {
	r.mu.Lock()
	r.gens[entity]++
	r.mu.Unlock()
}

// ensureLoaded fetches the records when the view was never loaded or was
// loaded before the latest mutation of its entity.
func (r *ViewRegistry) ensureLoaded(ctx context.Context, entity string, e *viewEntry, gen uint64) error {
	if e.Loaded() && e.gen.Load() >= gen {
		return nil
	}
	return r.load(ctx, entity, e, gen)
}

func (r *ViewRegistry) load(ctx context.Context, entity string, e *viewEntry, gen uint64) error {
	if err := r.refresh(ctx, entity, e); err != nil {
		return err
	}
	e.loadedAt(gen)
	return nil
}

// View returns the current page, loading the records on first access and
// after the entity has been modified.
func (r *ViewRegistry) View(ctx context.Context, sessionID, entity string) (any, error) {
	e, gen, err := r.get(sessionID, entity)
	if err != nil {
		return nil, err
	}
	if err := r.ensureLoaded(ctx, entity, e, gen); err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

// SetFilter changes one criterion. The view goes back to page 1.
func (r *ViewRegistry) SetFilter(ctx context.Context, sessionID, entity, name, value string) (any, error) {
	e, _, err := r.get(sessionID, entity)
	if err != nil {
		return nil, err
	}
	if err := e.SetFilter(name, value); err != nil {
		return nil, err
	}
	return r.View(ctx, sessionID, entity)
}

func (r *ViewRegistry) SetPage(ctx context.Context, sessionID, entity string, page int) (any, error) {
	e, gen, err := r.get(sessionID, entity)
	if err != nil {
		return nil, err
	}
	if err := r.ensureLoaded(ctx, entity, e, gen); err != nil {
		return nil, err
	}
	e.SetPage(page)
	return e.snapshot(), nil
}

// Refresh reloads the records. When a newer refresh overtakes this one the
// current view is returned as is.
func (r *ViewRegistry) Refresh(ctx context.Context, sessionID, entity string) (any, error) {
	e, gen, err := r.get(sessionID, entity)
	if err != nil {
		return nil, err
	}
	if err := r.load(ctx, entity, e, gen); err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

func (r *ViewRegistry) refresh(ctx context.Context, entity string, v viewer) error {
	err := v.Refresh(ctx)
	switch {
	case err == nil:
		metrics.ListingRefreshTotal.WithLabelValues(entity, "ok").Inc()
		return nil
	case errors.Is(err, listing.ErrSuperseded):
		metrics.ListingRefreshTotal.WithLabelValues(entity, "superseded").Inc()
		return nil
	default:
		metrics.ListingRefreshTotal.WithLabelValues(entity, "error").Inc()
		return fmt.Errorf("refresh %s: %w", entity, err)
	}
}

// Drop closes and forgets every view of the session.
func (r *ViewRegistry) Drop(sessionID string) {
	r.mu.Lock()
	sv, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if ok {
		for _, v := range sv.views {
			v.Close()
		}
	}
}

// Prune drops sessions that have not been used for longer than idle and
// returns how many were removed.
func (r *ViewRegistry) Prune(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*sessionViews
	for id, sv := range r.sessions {
		if sv.lastUsed.Before(cutoff) {
			stale = append(stale, sv)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, sv := range stale {
		for _, v := range sv.views {
			v.Close()
		}
	}
	if len(stale) > 0 {
		r.log.Debug().Int("sessions", len(stale)).Msg("pruned idle listing views")
	}
	return len(stale)
}
