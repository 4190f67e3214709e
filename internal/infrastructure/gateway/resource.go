package gateway

import (
	"context"
	"net/http"

	"github.com/share2care/admin-console/internal/core/ports"
)

// resource implements ports.Resource over one REST collection.
type resource[T any] struct {
	c    *Client
	path string
}

var _ ports.Resource[struct{}] = resource[struct{}]{}

func (r resource[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodGet, itemPath(r.path, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Create(ctx context.Context, in *T) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Update(ctx context.Context, id string, in *T) (*T, error) {
	var out T
	if err := r.c.do(ctx, http.MethodPut, itemPath(r.path, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, itemPath(r.path, id), nil, nil, nil)
}
