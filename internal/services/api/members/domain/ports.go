package domain

import "context"

// ServicePort is what other modules and the transport use
type ServicePort interface {
	Create(ctx context.Context, staffID string, in CreateInput) (View, error)
	List(ctx context.Context, q ListQuery) (ListResult, error)
	Get(ctx context.Context, memberID string) (View, error)
	Update(ctx context.Context, staffID, memberID string, in UpdateInput) (View, error)
	Delete(ctx context.Context, staffID, memberID string) error
	Search(ctx context.Context, q SearchQuery) ([]Hit, error)
}
