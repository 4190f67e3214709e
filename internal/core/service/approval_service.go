package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/api/metrics"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
	"github.com/share2care/admin-console/internal/core/saga"
)

const approvalSaga = "user_approval"

// Step names of the approval workflow.
const (
	StepPersist      = "persist"
	StepEmail        = "email"
	StepNotification = "notification"
	StepRefresh      = "refresh"
)

type approvalService struct {
	users     ports.UserGateway
	messenger ports.Messenger
	cache     ports.Cache
	views     ports.ViewInvalidator
	audit     ports.AuditRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewApprovalService returns an ApprovalService implementation.
func NewApprovalService(
	users ports.UserGateway,
	messenger ports.Messenger,
	cache ports.Cache,
	views ports.ViewInvalidator,
	audit ports.AuditRepository,
	log zerolog.Logger,
) ports.ApprovalService {
	return &approvalService{
		users:     users,
		messenger: messenger,
		cache:     cache,
		views:     orNoViews(views),
		audit:     audit,
		log:       log,
		now:       time.Now,
	}
}

// Decide records an approval decision. Persisting the status is mandatory;
// the email, the notification and the cache refresh are best effort and only
// show up as warnings when they fail.
func (s *approvalService) Decide(ctx context.Context, in ports.ApprovalInput) (*ports.ApprovalResult, error) {
	in.Comments = strings.TrimSpace(in.Comments)
	if err := validateApproval(in); err != nil {
		metrics.ApprovalDecisionsTotal.WithLabelValues(string(in.Status), "invalid").Inc()
		return nil, err
	}

	var user *domain.User
	target := func(ctx context.Context) (*domain.User, error) {
		if user != nil {
			return user, nil
		}
		u, err := s.users.GetUser(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		user = u
		return user, nil
	}

	wf := saga.Saga{
		Name: approvalSaga,
		Mandatory: saga.Step{Name: StepPersist, Run: func(ctx context.Context) error {
			u, err := s.users.UpdateApproval(ctx, in.UserID, in.Status, in.Comments)
			if err != nil {
				return err
			}
			user = u
			return nil
		}},
		Optional: []saga.Step{
			{Name: StepEmail, Run: func(ctx context.Context) error {
				u, err := target(ctx)
				if err != nil {
					return err
				}
				if u.Email == "" {
					return errors.New("user has no email address")
				}
				return s.messenger.SendEmail(ctx, approvalEmail(u, in.Status, in.Comments))
			}},
			{Name: StepNotification, Run: func(ctx context.Context) error {
				return s.messenger.SendNotification(ctx, approvalNotification(in.UserID, in.Status, in.Comments))
			}},
			{Name: StepRefresh, Run: func(ctx context.Context) error {
				s.views.MarkStale(ViewUsers)
				return s.cache.Invalidate(ctx, ports.CacheKeyUsers, ports.CacheKeyDashboard)
			}},
		},
	}

	rep := wf.Run(ctx, s.log, func(sagaName, step string, _ error) {
		metrics.SagaStepFailuresTotal.WithLabelValues(sagaName, step).Inc()
	})

	s.recordAudit(ctx, in, rep)

	if !rep.Succeeded() {
		metrics.ApprovalDecisionsTotal.WithLabelValues(string(in.Status), "failed").Inc()
		return nil, rep.Err
	}
	metrics.ApprovalDecisionsTotal.WithLabelValues(string(in.Status), "ok").Inc()

	res := &ports.ApprovalResult{
		UserID: in.UserID,
		Status: in.Status,
		User:   user,
		Steps:  rep.Outcomes,
	}
	for _, o := range rep.Outcomes {
		if o.Optional && !o.OK {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", o.Step, o.Error))
		}
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("status", string(in.Status)).
		Str("decided_by", in.DecidedBy).
		Strs("failed_steps", rep.Failed()).
		Msg("approval decided")
	return res, nil
}

func validateApproval(in ports.ApprovalInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return domain.Invalid("user id is required")
	}
	if !in.Status.Decidable() {
		return domain.Invalid(fmt.Sprintf("status must be %q or %q", domain.ApprovalApproved, domain.ApprovalRejected))
	}
	if in.Status == domain.ApprovalRejected && in.Comments == "" {
		return domain.Invalid("comments are required when rejecting a user")
	}
	return nil
}

// recordAudit is best effort: a failed write is logged and the decision stands.
func (s *approvalService) recordAudit(ctx context.Context, in ports.ApprovalInput, rep saga.Report) {
	rec := &domain.ApprovalRecord{
		UserID:    in.UserID,
		Status:    in.Status,
		Comments:  in.Comments,
		DecidedBy: in.DecidedBy,
		Succeeded: rep.Succeeded(),
		Steps:     rep.Outcomes,
		DecidedAt: s.now().UTC(),
	}
	if err := s.audit.RecordApproval(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to record approval audit")
	}
}

func approvalEmail(u *domain.User, status domain.ApprovalStatus, comments string) domain.Email {
	name := u.Name
	if name == "" {
		name = "volunteer"
	}
	if status == domain.ApprovalApproved {
		return domain.Email{
			To:      u.Email,
			Subject: "Your Share2care account has been approved",
			Body: fmt.Sprintf("Dear %s,\n\nYour Share2care volunteer account has been approved. "+
				"You can now sign in and register for events.\n\nThank you for joining us.", name),
		}
	}
	return domain.Email{
		To:      u.Email,
		Subject: "Update on your Share2care account",
		Body: fmt.Sprintf("Dear %s,\n\nWe could not approve your Share2care volunteer account at this time.\n\n"+
			"Reason: %s\n\nYou may update your profile and documents and apply again.", name, comments),
	}
}

func approvalNotification(userID string, status domain.ApprovalStatus, comments string) domain.Notification {
	n := domain.Notification{UserID: domain.FlexString(userID), Type: "approval"}
	if status == domain.ApprovalApproved {
		n.Title = "Account approved"
		n.Message = "Your account has been approved. Welcome to Share2care!"
		return n
	}
	n.Title = "Account not approved"
	n.Message = "Your account was not approved: " + comments
	return n
}
