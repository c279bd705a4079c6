// Package domain holds membership plans and their DTOs
package domain

import (
	"context"
	"time"
)

// Plan is a purchasable membership duration
type Plan struct {
	ID            int64     `json:"id"`
	DurationDays  int       `json:"duration_days" example:"30"`
	DurationLabel string    `json:"duration_label" example:"1 Month"`
	Price         float64   `json:"price" example:"500"`
	IsActive      bool      `json:"is_active"`
	LastModified  time.Time `json:"last_modified"`
}

// CreateInput adds a plan; durations may repeat
type CreateInput struct {
	DurationDays  int      `json:"duration_days" validate:"required,min=1,max=3660" example:"30"`
	DurationLabel string   `json:"duration_label" validate:"required,max=50" example:"1 Month"`
	Price         *float64 `json:"price" validate:"required,min=0" example:"500"`
}

// UpdateInput changes any subset of a plan
type UpdateInput struct {
	DurationDays  *int     `json:"duration_days,omitempty" validate:"omitempty,min=1,max=3660"`
	DurationLabel *string  `json:"duration_label,omitempty" validate:"omitempty,min=1,max=50"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// Empty reports whether the patch changes nothing
func (u UpdateInput) Empty() bool {
	return u.DurationDays == nil && u.DurationLabel == nil && u.Price == nil && u.IsActive == nil
}

// SeedResult counts what SeedDefaults changed
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Defaults are the plans a fresh gym starts with, matched on duration
func Defaults() []Plan {
	return []Plan{
		{DurationDays: 30, DurationLabel: "1 Month", Price: 500},
		{DurationDays: 90, DurationLabel: "3 Months", Price: 1400},
		{DurationDays: 180, DurationLabel: "6 Months", Price: 2700},
		{DurationDays: 365, DurationLabel: "1 Year", Price: 5000},
	}
}

// ServicePort is the pricing contract
type ServicePort interface {
	List(ctx context.Context) ([]Plan, error)
	Get(ctx context.Context, id int64) (Plan, error)
	Create(ctx context.Context, in CreateInput) (Plan, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Plan, error)
	Delete(ctx context.Context, id int64) error
	SeedDefaults(ctx context.Context) (SeedResult, error)
}
