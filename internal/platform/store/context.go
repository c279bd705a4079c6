package store

import "context"

type actorKey struct{}

// WithActor attaches the acting staff id to the context so repos can stamp
// created_by and processed_by columns
func WithActor(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, actorKey{}, staffID)
}

// Actor returns the acting staff id; an empty id counts as absent
func Actor(ctx context.Context) (string, bool) {
	s, _ := ctx.Value(actorKey{}).(string)
	return s, s != ""
}

// RunAs runs fn inside one transaction with staffID as the actor
func RunAs(ctx context.Context, tx TxRunner, staffID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithActor(ctx, staffID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
