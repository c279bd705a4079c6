// Package store opens postgres, the record store, and the optional
// clickhouse event mirror. Repos see both only through the interfaces in
// querier.go so tests can hand them fakes
package store

import (
	"context"
	"errors"

	"gymdesk/internal/platform/logger"
)

// Store holds the opened backends. A disabled backend is nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Option configures a Store before Open connects anything
type Option func(*Store) error

// WithLogger is the logger the SQL tracer and connection messages use
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

// Open connects postgres, then clickhouse, as cfg enables them. When
// clickhouse fails the pool is closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return nil, err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			return nil, errors.Join(err, s.Close(ctx))
		}
	}
	return s, nil
}

// Close releases every opened backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
