package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

type userService struct {
	gw       ports.UserGateway
	cache    ports.Cache
	views    ports.ViewInvalidator
	docs     ports.DocumentResolver
	audit    ports.AuditRepository
	pageSize int
	log      zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	gw ports.UserGateway,
	cache ports.Cache,
	views ports.ViewInvalidator,
	docs ports.DocumentResolver,
	audit ports.AuditRepository,
	pageSize int,
	log zerolog.Logger,
) ports.UserService {
	return &userService{gw: gw, cache: cache, views: orNoViews(views), docs: docs, audit: audit, pageSize: pageSize, log: log}
}

func (s *userService) All(ctx context.Context) ([]domain.User, error) {
	users, err := cachedList(ctx, s.cache, ports.CacheKeyUsers, s.log, s.gw.ListUsers)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// List filters and paginates the full user set.
func (s *userService) List(ctx context.Context, q ports.ListQuery) (listing.Page[domain.User], error) {
	users, err := s.All(ctx)
	if err != nil {
		return listing.Page[domain.User]{}, err
	}
	return listing.Apply(users, q.Criteria, q.Page, s.pageSize, listing.Users), nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.gw.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (s *userService) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if !status.Valid() {
		return domain.Invalid(fmt.Sprintf("status must be %q or %q", domain.UserActive, domain.UserInactive))
	}
	if err := s.gw.UpdateUserStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update user %s status: %w", id, err)
	}
	s.changed(ctx)
	s.log.Info().Str("user_id", id).Str("status", string(status)).Msg("user status updated")
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.changed(ctx)
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Documents resolves each uploaded document to a URL. A document whose path
// cannot be resolved is returned without a URL.
func (s *userService) Documents(ctx context.Context, id string) ([]ports.ResolvedDocument, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ResolvedDocument, 0, len(u.Documents))
	for _, d := range u.Documents {
		if strings.TrimSpace(d.Path) == "" {
			continue
		}
		rd := ports.ResolvedDocument{Name: d.Name, Type: d.Type, Path: d.Path}
		url, err := s.docs.Resolve(ctx, d.Path)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Str("path", d.Path).Msg("document not resolvable")
		} else {
			rd.URL = url
		}
		out = append(out, rd)
	}
	return out, nil
}

func (s *userService) ApprovalHistory(ctx context.Context, id string) ([]domain.ApprovalRecord, error) {
	recs, err := s.audit.ApprovalHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approval history %s: %w", id, err)
	}
	return recs, nil
}

// changed drops cached user lists and marks every session's users view stale.
func (s *userService) changed(ctx context.Context) {
	invalidate(ctx, s.cache, s.log, ports.CacheKeyUsers, ports.CacheKeyDashboard)
	s.views.MarkStale(ViewUsers)
}
