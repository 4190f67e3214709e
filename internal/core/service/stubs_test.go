package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Gateway stubs
// ---------------------------------------------------------------------------

type stubUserGateway struct {
	mu          sync.Mutex
	users       []domain.User
	listErr     error
	approvalErr error
	echo        bool
	listCalls   int
	approvals   []string
	statusCalls []string
}

func (g *stubUserGateway) ListUsers(context.Context) ([]domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]domain.User(nil), g.users...), nil
}

func (g *stubUserGateway) GetUser(_ context.Context, id string) (*domain.User, error) {
	for _, u := range g.users {
		if u.ID.String() == id {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (g *stubUserGateway) UpdateUserStatus(_ context.Context, id string, status domain.UserStatus) error {
	g.statusCalls = append(g.statusCalls, id+":"+string(status))
	return nil
}

func (g *stubUserGateway) UpdateApproval(_ context.Context, id string, status domain.ApprovalStatus, comments string) (*domain.User, error) {
	g.approvals = append(g.approvals, id+":"+string(status))
	if g.approvalErr != nil {
		return nil, g.approvalErr
	}
	if !g.echo {
		return nil, nil
	}
	u, err := g.GetUser(context.Background(), id)
	if err != nil {
		return nil, err
	}
	u.ApprovalStatus = status
	u.AdminComments = comments
	return u, nil
}

func (g *stubUserGateway) DeleteUser(context.Context, string) error { return nil }

type stubResource[T any] struct {
	items   []T
	listErr error
	created []*T
}

func (r *stubResource[T]) List(context.Context) ([]T, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]T(nil), r.items...), nil
}

func (r *stubResource[T]) Get(context.Context, string) (*T, error) {
	if len(r.items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &r.items[0], nil
}

func (r *stubResource[T]) Create(_ context.Context, in *T) (*T, error) {
	r.created = append(r.created, in)
	return in, nil
}

func (r *stubResource[T]) Update(_ context.Context, _ string, in *T) (*T, error) { return in, nil }

func (r *stubResource[T]) Delete(context.Context, string) error { return nil }

type stubEventGateway struct {
	events   *stubResource[domain.Event]
	featured map[string]bool
}

func (g *stubEventGateway) Events() ports.Resource[domain.Event] { return g.events }

func (g *stubEventGateway) UpdateEventStatus(context.Context, string, domain.EventStatus) error {
	return nil
}

func (g *stubEventGateway) SetEventFeatured(_ context.Context, id string, featured bool) error {
	if g.featured == nil {
		g.featured = map[string]bool{}
	}
	g.featured[id] = featured
	return nil
}

type stubMessenger struct {
	mu            sync.Mutex
	emailErr      error
	notifyErr     error
	emails        []domain.Email
	notifications []domain.Notification
}

func (m *stubMessenger) SendEmail(_ context.Context, e domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailErr != nil {
		return m.emailErr
	}
	m.emails = append(m.emails, e)
	return nil
}

func (m *stubMessenger) SendNotification(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.notifications = append(m.notifications, n)
	return nil
}

type stubAuthGateway struct {
	token string
	admin *domain.AdminProfile
	err   error
}

func (g *stubAuthGateway) Login(context.Context, string, string) (string, *domain.AdminProfile, error) {
	if g.err != nil {
		return "", nil, g.err
	}
	a := *g.admin
	return g.token, &a, nil
}

type stubStatsGateway struct {
	stats *domain.DashboardStats
	calls int
}

func (g *stubStatsGateway) DashboardStats(context.Context) (*domain.DashboardStats, error) {
	g.calls++
	s := *g.stats
	return &s, nil
}

func (g *stubStatsGateway) Report(_ context.Context, from, to string) (*domain.Report, error) {
	return &domain.Report{From: from, To: to}, nil
}

// ---------------------------------------------------------------------------
// Store stubs
// ---------------------------------------------------------------------------

type stubCache struct {
	data        map[string][]byte
	invalidated []string
	invErr      error
}

func newStubCache() *stubCache { return &stubCache{data: map[string][]byte{}} }

func (c *stubCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *stubCache) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, keys ...string) error {
	if c.invErr != nil {
		return c.invErr
	}
	for _, k := range keys {
		delete(c.data, k)
		c.invalidated = append(c.invalidated, k)
	}
	return nil
}

type stubAudit struct {
	approvals  []*domain.ApprovalRecord
	broadcasts []*domain.Broadcast
	err        error
}

func (a *stubAudit) RecordApproval(_ context.Context, rec *domain.ApprovalRecord) error {
	if a.err != nil {
		return a.err
	}
	a.approvals = append(a.approvals, rec)
	return nil
}

func (a *stubAudit) ApprovalHistory(_ context.Context, userID string) ([]domain.ApprovalRecord, error) {
	var out []domain.ApprovalRecord
	for _, r := range a.approvals {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (a *stubAudit) RecordBroadcast(_ context.Context, b *domain.Broadcast) error {
	if a.err != nil {
		return a.err
	}
	a.broadcasts = append(a.broadcasts, b)
	return nil
}

func (a *stubAudit) RecentBroadcasts(context.Context, int) ([]domain.Broadcast, error) {
	out := make([]domain.Broadcast, 0, len(a.broadcasts))
	for _, b := range a.broadcasts {
		out = append(out, *b)
	}
	return out, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	ttls     map[string]time.Duration
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]domain.Session{}, ttls: map[string]time.Duration{}}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session, ttl time.Duration) error {
	s.sessions[sess.ID] = *sess
	s.ttls[sess.ID] = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubDedup struct {
	claimed map[string]bool
	err     error
}

func (d *stubDedup) Claim(_ context.Context, key string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.claimed == nil {
		d.claimed = map[string]bool{}
	}
	if d.claimed[key] {
		return false, nil
	}
	d.claimed[key] = true
	return true, nil
}

type stubQueue struct {
	batches  int
	enqueued []ports.Delivery
	err      error
}

func (q *stubQueue) Submit(batch []ports.Delivery) error {
	if q.err != nil {
		return q.err
	}
	q.batches++
	q.enqueued = append(q.enqueued, batch...)
	return nil
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, path string) (string, error) {
	if path == "bad" {
		return "", errors.New("unresolvable")
	}
	return "https://files.test/" + path, nil
}

type recordingCloser struct{ dropped []string }

func (c *recordingCloser) Drop(id string) { c.dropped = append(c.dropped, id) }
