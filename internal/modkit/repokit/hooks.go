package repokit

import (
	"context"

	"gymdesk/internal/platform/store"
)

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps a TxRunner so every Tx runs hooks, in order, before fn.
// Statements outside a Tx pass straight through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{inner: inner, hooks: hooks}
}

type hookedTx struct {
	inner TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.inner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// Ping reaches the wrapped runner so readiness checks still see the pool
func (h hookedTx) Ping(ctx context.Context) error {
	if p, ok := h.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (h hookedTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return h.inner.Exec(ctx, sql, args...)
}

func (h hookedTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return h.inner.Query(ctx, sql, args...)
}

func (h hookedTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return h.inner.QueryRow(ctx, sql, args...)
}

// ActorSetting is the session setting the members trigger reads for updated_by
const ActorSetting = "gymdesk.staff_id"

// ActorHook copies the acting staff id from ctx into the transaction's settings.
// Contexts without an actor are left alone
func ActorHook(ctx context.Context, q Queryer) error {
	id, ok := store.Actor(ctx)
	if !ok {
		return nil
	}
	_, err := q.Exec(ctx, `select set_config($1, $2, true)`, ActorSetting, id)
	return err
}
