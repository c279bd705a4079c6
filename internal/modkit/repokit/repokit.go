// Package repokit is the glue between services and their postgres repos:
// store aliases, binders that attach a repo to a pool or an open tx, and tx hooks
package repokit

import "gymdesk/internal/platform/store"

type (
	// Queryer is what a bound repo runs statements on
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// Binder attaches a repo to a Queryer, either the pool or an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor into a Binder; tests use it to hand out fakes
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
