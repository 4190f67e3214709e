package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const (
	historyLimit      = 50
	maxBroadcastLimit = 100
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	approvals  *mongo.Collection
	broadcasts *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{
		approvals:  db.Collection(collectionApprovals),
		broadcasts: db.Collection(collectionBroadcasts),
	}
}

// RecordApproval appends a decision and its step outcomes to the audit trail.
func (r *AuditRepository) RecordApproval(ctx context.Context, rec *domain.ApprovalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.approvals.InsertOne(ctx, rec)
	return err
}

// ApprovalHistory returns the most recent decisions for a user, newest first.
func (r *AuditRepository) ApprovalHistory(ctx context.Context, userID string) ([]domain.ApprovalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "decided_at", Value: -1}}).
		SetLimit(historyLimit)

	cursor, err := r.approvals.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("approval history: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.ApprovalRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("approval history decode: %w", err)
	}
	return out, nil
}

func (r *AuditRepository) RecordBroadcast(ctx context.Context, b *domain.Broadcast) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.broadcasts.InsertOne(ctx, b)
	return err
}

// RecentBroadcasts lists mass messages, newest first. limit is clamped to
// [1, 100].
func (r *AuditRepository) RecentBroadcasts(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	limit = min(max(limit, 1), maxBroadcastLimit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.broadcasts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent broadcasts: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.Broadcast{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("recent broadcasts decode: %w", err)
	}
	return out, nil
}
