// Package repo provides postgres access for membership plans
package repo

import (
	"context"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/pricing/domain"
)

// Repo is the persistence surface for plans
type Repo interface {
	Active(ctx context.Context) ([]domain.Plan, error)
	Get(ctx context.Context, id int64) (domain.Plan, error)
	Insert(ctx context.Context, p domain.Plan) (domain.Plan, error)
	Save(ctx context.Context, p domain.Plan) (domain.Plan, error)
	Deactivate(ctx context.Context, id int64) error
	// SetByDuration updates every plan with p's duration; it reports how many matched
	SetByDuration(ctx context.Context, p domain.Plan) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const columns = `id, duration_days, duration_label, price::float8, is_active, last_modified`

func scanPlan(row store.Row) (domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(&p.ID, &p.DurationDays, &p.DurationLabel, &p.Price, &p.IsActive, &p.LastModified)
	return p, err
}

func (r *queries) Active(ctx context.Context) ([]domain.Plan, error) {
	return store.Many(ctx, r.q, scanPlan,
		`select `+columns+` from membership_pricing where is_active order by duration_days, id`)
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Plan, error) {
	return store.One(ctx, r.q, scanPlan, `select `+columns+` from membership_pricing where id = $1`, id)
}

func (r *queries) Insert(ctx context.Context, p domain.Plan) (domain.Plan, error) {
	out, err := store.One(ctx, r.q, scanPlan, `
insert into membership_pricing (duration_days, duration_label, price, is_active)
values ($1, $2, $3, true)
returning `+columns, p.DurationDays, p.DurationLabel, p.Price)
	if err != nil {
		return domain.Plan{}, perr.FromPostgres(err, "insert plan")
	}
	return out, nil
}

func (r *queries) Save(ctx context.Context, p domain.Plan) (domain.Plan, error) {
	out, err := store.One(ctx, r.q, scanPlan, `
update membership_pricing
set duration_days = $2, duration_label = $3, price = $4, is_active = $5, last_modified = now()
where id = $1
returning `+columns, p.ID, p.DurationDays, p.DurationLabel, p.Price, p.IsActive)
	if err != nil {
		return domain.Plan{}, perr.FromPostgres(err, "update plan")
	}
	return out, nil
}

func (r *queries) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx,
		`update membership_pricing set is_active = false, last_modified = now() where id = $1 and is_active`, id)
	if err != nil {
		return perr.FromPostgres(err, "delete plan")
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) SetByDuration(ctx context.Context, p domain.Plan) (int64, error) {
	tag, err := r.q.Exec(ctx, `
update membership_pricing
set duration_label = $2, price = $3, is_active = true, last_modified = now()
where duration_days = $1`, p.DurationDays, p.DurationLabel, p.Price)
	if err != nil {
		return 0, perr.FromPostgres(err, "seed plan")
	}
	return tag.RowsAffected(), nil
}
