// Package http provides http transport for check-ins
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/checkins/domain"
	svc "gymdesk/internal/services/api/checkins/service"
)

// Register mounts check-in endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CheckInInput](r, "/", h.checkIn)
	httpkit.Post(r, "/{id}/checkout", h.checkOut)
	httpkit.Get(r, "/today", h.today)
	httpkit.GetQuery[domain.SearchQuery](r, "/search", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /checkins CheckIns checkinsCreate
// @Summary Check a member in
// @Tags CheckIns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CheckInInput true "member to check in"
// @Success 201 {object} domain.CheckIn
// @Failure 409 {object} map[string]any "already checked in today"
// @Failure 422 {object} map[string]any "membership not active"
// @Router /checkins [post]
func (h *handlers) checkIn(r *stdhttp.Request, in domain.CheckInInput) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	c, err := h.svc.CheckIn(r.Context(), staff, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}

// swagger:route POST /checkins/{id}/checkout CheckIns checkinsCheckout
// @Summary Check a member out
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path int true "check-in id"
// @Success 200 {object} domain.CheckIn
// @Failure 409 {object} map[string]any "already checked out"
// @Router /checkins/{id}/checkout [post]
func (h *handlers) checkOut(r *stdhttp.Request) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.CheckOut(r.Context(), staff, id)
}

// swagger:route GET /checkins/today CheckIns checkinsToday
// @Summary Today's check-ins, newest first
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.CheckIn
// @Router /checkins/today [get]
func (h *handlers) today(r *stdhttp.Request) (any, error) {
	return h.svc.Today(r.Context())
}

// swagger:route GET /checkins/search CheckIns checkinsSearch
// @Summary Search members with an active membership
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param q query string true "name, email or member id"
// @Success 200 {array} map[string]any "member search hits"
// @Router /checkins/search [get]
func (h *handlers) search(r *stdhttp.Request, q domain.SearchQuery) (any, error) {
	return h.svc.Search(r.Context(), q)
}
