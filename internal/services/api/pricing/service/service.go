// Package service manages membership plans
package service

import (
	"context"
	"errors"
	"math"

	"gymdesk/internal/core/normalize"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/pricing/domain"
	"gymdesk/internal/services/api/pricing/repo"
)

// Service defines the pricing service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the pricing service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a pricing service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("pricing.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("pricing.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns active plans ordered by duration
func (s *Svc) List(ctx context.Context) ([]domain.Plan, error) {
	return s.Repo.Active(ctx)
}

// Get returns one plan, active or not
func (s *Svc) Get(ctx context.Context, id int64) (domain.Plan, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Plan{}, notFound(err, id)
	}
	return p, nil
}

// Create adds an active plan
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Plan, error) {
	p := domain.Plan{
		DurationDays:  in.DurationDays,
		DurationLabel: normalize.Text(in.DurationLabel),
		Price:         roundCents(*in.Price),
	}
	if p.DurationLabel == "" {
		return domain.Plan{}, perr.Validationf("duration_label is required")
	}
	out, err := s.Repo.Insert(ctx, p)
	if err != nil {
		return domain.Plan{}, err
	}
	logger.C(ctx).Info().Int64("plan_id", out.ID).Int("days", out.DurationDays).Msg("pricing: plan created")
	return out, nil
}

// Update applies a partial change under a row read in the same transaction
func (s *Svc) Update(ctx context.Context, id int64, in domain.UpdateInput) (domain.Plan, error) {
	if in.Empty() {
		return domain.Plan{}, perr.Validationf("nothing to update")
	}

	var out domain.Plan
	err := s.db.Tx(ctx, func(q store.RowQuerier) error {
		r := s.binder.Bind(q)
		p, err := r.Get(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if in.DurationDays != nil {
			p.DurationDays = *in.DurationDays
		}
		if in.DurationLabel != nil {
			if p.DurationLabel = normalize.Text(*in.DurationLabel); p.DurationLabel == "" {
				return perr.Validationf("duration_label cannot be blank")
			}
		}
		if in.Price != nil {
			p.Price = roundCents(*in.Price)
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		out, err = r.Save(ctx, p)
		return err
	})
	if err != nil {
		return domain.Plan{}, err
	}
	return out, nil
}

// Delete deactivates a plan; payments keep their snapshot of it
func (s *Svc) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Deactivate(ctx, id); err != nil {
		return notFound(err, id)
	}
	logger.C(ctx).Info().Int64("plan_id", id).Msg("pricing: plan deactivated")
	return nil
}

// SeedDefaults makes the default plans present and active, matching on duration
func (s *Svc) SeedDefaults(ctx context.Context) (domain.SeedResult, error) {
	var res domain.SeedResult
	err := s.db.Tx(ctx, func(q store.RowQuerier) error {
		r := s.binder.Bind(q)
		for _, p := range domain.Defaults() {
			n, err := r.SetByDuration(ctx, p)
			if err != nil {
				return err
			}
			if n > 0 {
				res.Updated++
				continue
			}
			if _, err := r.Insert(ctx, p); err != nil {
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return domain.SeedResult{}, err
	}
	logger.C(ctx).Info().Int("created", res.Created).Int("updated", res.Updated).Msg("pricing: defaults seeded")
	return res, nil
}

func notFound(err error, id int64) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("plan %d not found", id)
	}
	return err
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
