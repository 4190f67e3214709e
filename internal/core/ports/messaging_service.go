package ports

import (
	"context"

	"github.com/share2care/admin-console/internal/core/domain"
)

// BroadcastInput is a mass message request.
type BroadcastInput struct {
	Channel        domain.Channel
	Subject        string
	Message        string
	ApprovedOnly   bool
	IdempotencyKey string
	SentBy         string
}

// Delivery is one recipient's share of a broadcast. Token is the API bearer
// token of the admin who sent it; deliveries outlive the request.
type Delivery struct {
	BroadcastID string
	Token       string
	Recipient   domain.User
	Channel     domain.Channel
	Subject     string
	Message     string
}

// DeliveryQueue accepts deliveries for asynchronous sending.
type DeliveryQueue interface {
	// Submit hands over one broadcast's deliveries and returns without
	// waiting for them to be queued or sent.
	Submit(batch []Delivery) error
}

// DeliverySender sends a single delivery.
type DeliverySender interface {
	Deliver(ctx context.Context, d Delivery) error
}

// MessagingService broadcasts messages to the volunteer base.
type MessagingService interface {
	Broadcast(ctx context.Context, in BroadcastInput) (*domain.Broadcast, error)
	Recent(ctx context.Context, limit int) ([]domain.Broadcast, error)
}

// DashboardService serves aggregate statistics.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	Report(ctx context.Context, from, to string) (*domain.Report, error)
}
