package ports

import "context"

// CatalogService administers categories, pages, form options, reviews,
// contacts and settings. It validates input before forwarding to the API.
type CatalogService interface {
	CatalogGateway
}

// ViewService keeps one stateful listing per admin session and entity
// ("users" or "events"). Returned views are listing.View values ready to
// encode as JSON.
type ViewService interface {
	View(ctx context.Context, sessionID, entity string) (any, error)
	SetFilter(ctx context.Context, sessionID, entity, name, value string) (any, error)
	SetPage(ctx context.Context, sessionID, entity string, page int) (any, error)
	Refresh(ctx context.Context, sessionID, entity string) (any, error)
	// Drop discards every view held for the session.
	Drop(sessionID string)
}

// ViewInvalidator marks every session's listing of an entity as out of date,
// so the next read re-fetches it.
type ViewInvalidator interface {
	MarkStale(entity string)
}
