package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/api/metrics"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

type messagingService struct {
	users ports.UserGateway
	dedup ports.BroadcastDedup
	queue ports.DeliveryQueue
	audit ports.AuditRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewMessagingService returns a MessagingService implementation.
func NewMessagingService(
	users ports.UserGateway,
	dedup ports.BroadcastDedup,
	queue ports.DeliveryQueue,
	audit ports.AuditRepository,
	log zerolog.Logger,
) ports.MessagingService {
	return &messagingService{users: users, dedup: dedup, queue: queue, audit: audit, log: log, now: time.Now}
}

// Broadcast fans a message out to every active volunteer (optionally only the
// approved ones). Deliveries are handed to the queue in one batch; the call
// does not wait for them to be queued or sent.
func (s *messagingService) Broadcast(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error) {
	if err := validateBroadcast(&in); err != nil {
		return nil, err
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("broadcast: list users: %w", err)
	}
	recipients := audience(users, in.Channel, in.ApprovedOnly)
	if len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}

	if in.IdempotencyKey != "" {
		ok, err := s.dedup.Claim(ctx, in.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("dedup claim failed, sending anyway")
		case !ok:
			return nil, domain.ErrDuplicateBroadcast
		}
	}

	b := &domain.Broadcast{
		ID:           uuid.NewString(),
		Channel:      in.Channel,
		Subject:      in.Subject,
		Message:      in.Message,
		ApprovedOnly: in.ApprovedOnly,
		Recipients:   len(recipients),
		SentBy:       in.SentBy,
		CreatedAt:    s.now().UTC(),
	}

	token := ports.TokenFrom(ctx)
	batch := make([]ports.Delivery, 0, len(recipients))
	for _, u := range recipients {
		batch = append(batch, ports.Delivery{
			BroadcastID: b.ID,
			Token:       token,
			Recipient:   u,
			Channel:     in.Channel,
			Subject:     in.Subject,
			Message:     in.Message,
		})
	}
	if err := s.queue.Submit(batch); err != nil {
		return nil, fmt.Errorf("broadcast: queue deliveries: %w", err)
	}
	metrics.BroadcastsTotal.WithLabelValues(string(in.Channel)).Inc()

	if err := s.audit.RecordBroadcast(ctx, b); err != nil {
		s.log.Warn().Err(err).Str("broadcast_id", b.ID).Msg("failed to record broadcast")
	}

	s.log.Info().
		Str("broadcast_id", b.ID).
		Str("channel", string(b.Channel)).
		Int("recipients", b.Recipients).
		Msg("broadcast queued")
	return b, nil
}

func (s *messagingService) Recent(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	out, err := s.audit.RecentBroadcasts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent broadcasts: %w", err)
	}
	return out, nil
}

func validateBroadcast(in *ports.BroadcastInput) error {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Channel == "" {
		in.Channel = domain.ChannelBoth
	}
	switch in.Channel {
	case domain.ChannelEmail, domain.ChannelNotification, domain.ChannelBoth:
	default:
		return domain.Invalid("channel must be email, notification or both")
	}
	if in.Subject == "" {
		return domain.Invalid("subject is required")
	}
	if in.Message == "" {
		return domain.Invalid("message is required")
	}
	return nil
}

// audience keeps active users, optionally only approved ones. Email-only
// broadcasts skip users without an address.
func audience(users []domain.User, ch domain.Channel, approvedOnly bool) []domain.User {
	var out []domain.User
	for _, u := range users {
		if u.Status != domain.UserActive {
			continue
		}
		if approvedOnly && u.ApprovalStatus != domain.ApprovalApproved {
			continue
		}
		if ch == domain.ChannelEmail && u.Email == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}

// DeliverySender sends a queued delivery through the API messenger.
type DeliverySender struct {
	messenger ports.Messenger
}

var _ ports.DeliverySender = (*DeliverySender)(nil)

func NewDeliverySender(m ports.Messenger) *DeliverySender {
	return &DeliverySender{messenger: m}
}

func (s *DeliverySender) Deliver(ctx context.Context, d ports.Delivery) error {
	var errs []error
	if (d.Channel == domain.ChannelEmail || d.Channel == domain.ChannelBoth) && d.Recipient.Email != "" {
		err := s.messenger.SendEmail(ctx, domain.Email{To: d.Recipient.Email, Subject: d.Subject, Body: d.Message})
		countDelivery(domain.ChannelEmail, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}
	if d.Channel == domain.ChannelNotification || d.Channel == domain.ChannelBoth {
		err := s.messenger.SendNotification(ctx, domain.Notification{
			UserID:  d.Recipient.ID,
			Title:   d.Subject,
			Message: d.Message,
			Type:    "announcement",
		})
		countDelivery(domain.ChannelNotification, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("notification: %w", err))
		}
	}
	return errors.Join(errs...)
}

func countDelivery(ch domain.Channel, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.DeliveriesTotal.WithLabelValues(string(ch), result).Inc()
}
