// Package http provides http transport for members
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/members/domain"
	svc "gymdesk/internal/services/api/members/service"
)

// Register mounts member endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.GetQuery[domain.ListQuery](r, "/", h.list)
	httpkit.GetQuery[domain.SearchQuery](r, "/search", h.search)

	httpkit.Get(r, "/{memberID}", h.get)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{memberID}", h.update)
	httpkit.Delete(r, "/{memberID}", h.remove)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /members Members membersCreate
// @Summary Register a member
// @Description New members start inactive with today's dates until their first payment
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CreateInput true "member details"
// @Success 201 {object} domain.View
// @Router /members [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	v, err := h.svc.Create(r.Context(), staff, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(v), nil
}

// swagger:route GET /members Members membersList
// @Summary List members with status totals
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param filter query string false "all active expiring expired inactive"
// @Param q query string false "name, email or member id"
// @Success 200 {object} domain.ListResult
// @Router /members [get]
func (h *handlers) list(r *stdhttp.Request, q domain.ListQuery) (any, error) {
	return h.svc.List(r.Context(), q)
}

// swagger:route GET /members/search Members membersSearch
// @Summary Quick member search
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param q query string true "at least 2 characters"
// @Param active query bool false "only members with a current subscription"
// @Success 200 {array} domain.Hit
// @Router /members/search [get]
func (h *handlers) search(r *stdhttp.Request, q domain.SearchQuery) (any, error) {
	return h.svc.Search(r.Context(), q)
}

// swagger:route GET /members/{memberID} Members membersGet
// @Summary Member detail
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "member id" example(GYM4K2Q9ZP)
// @Success 200 {object} domain.View
// @Router /members/{memberID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.MustParam(r, "memberID")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route PATCH /members/{memberID} Members membersUpdate
// @Summary Update member contact details
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "member id"
// @Param body body domain.UpdateInput true "fields to change"
// @Success 200 {object} domain.View
// @Router /members/{memberID} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.MustParam(r, "memberID")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), staff, id, in)
}

// swagger:route DELETE /members/{memberID} Members membersDelete
// @Summary Soft delete a member without a current subscription
// @Tags Members
// @Security BearerAuth
// @Param memberID path string true "member id"
// @Success 204
// @Failure 409 {object} map[string]any "membership still active"
// @Router /members/{memberID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.MustParam(r, "memberID")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), staff, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
