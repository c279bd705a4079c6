// Package http provides http transport for pricing
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/pricing/domain"
	svc "gymdesk/internal/services/api/pricing/service"
	staffdomain "gymdesk/internal/services/api/staff/domain"
)

// Register mounts pricing endpoints; writes are owner only
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)

	httpkit.Restricted(r, func(or httpkit.Router) {
		httpkit.PostJSON[domain.CreateInput](or, "/", h.create)
		httpkit.PatchJSON[domain.UpdateInput](or, "/{id}", h.update)
		httpkit.Delete(or, "/{id}", h.remove)
	}, staffdomain.RoleOwner)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /pricing Pricing pricingList
// @Summary List active membership plans
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Plan
// @Router /pricing [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /pricing/{id} Pricing pricingGet
// @Summary Get a plan
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Param id path int true "plan id"
// @Success 200 {object} domain.Plan
// @Failure 404 {object} map[string]any
// @Router /pricing/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route POST /pricing Pricing pricingCreate
// @Summary Create a plan
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CreateInput true "plan"
// @Success 201 {object} domain.Plan
// @Failure 403 {object} map[string]any
// @Router /pricing [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(p), nil
}

// swagger:route PATCH /pricing/{id} Pricing pricingUpdate
// @Summary Update a plan
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "plan id"
// @Param body body domain.UpdateInput true "changes"
// @Success 200 {object} domain.Plan
// @Router /pricing/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// swagger:route DELETE /pricing/{id} Pricing pricingDelete
// @Summary Deactivate a plan
// @Tags Pricing
// @Security BearerAuth
// @Param id path int true "plan id"
// @Success 204
// @Router /pricing/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
