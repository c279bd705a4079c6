// Package http provides http transport for payments
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/payments/domain"
	svc "gymdesk/internal/services/api/payments/service"
	staffdomain "gymdesk/internal/services/api/staff/domain"
)

// Register mounts payment endpoints; refunds are owner only
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.GetQuery[domain.ListQuery](r, "/", h.list)
	httpkit.Get(r, "/methods", h.methods)
	httpkit.Get(r, "/{id}", h.get)

	httpkit.Restricted(r, func(or httpkit.Router) {
		httpkit.Post(or, "/{id}/refund", h.refund)
	}, staffdomain.RoleOwner)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /payments Payments paymentsCreate
// @Summary Record a payment
// @Description Member payments renew the membership in the same transaction. Digital methods need a reference number
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CreateInput true "payment"
// @Success 201 {object} domain.Receipt
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /payments [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	rc, err := h.svc.Create(r.Context(), staff, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rc), nil
}

// swagger:route GET /payments Payments paymentsList
// @Summary Transaction history
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param member_id query string false "member id"
// @Param status query string false "Completed Failed Refunded"
// @Param method query string false "payment method"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param page query int false "page, from 1"
// @Param size query int false "page size, max 100"
// @Success 200 {object} map[string]any
// @Router /payments [get]
func (h *handlers) list(r *stdhttp.Request, q domain.ListQuery) (any, error) {
	p, err := h.svc.List(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return httpkit.List(p.Items, p.Total, p.Page, p.Size, ""), nil
}

// swagger:route GET /payments/methods Payments paymentsMethods
// @Summary Accepted payment methods
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /payments/methods [get]
func (h *handlers) methods(*stdhttp.Request) (any, error) {
	return domain.Methods(), nil
}

// swagger:route GET /payments/{id} Payments paymentsGet
// @Summary Get a payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "payment uuid"
// @Success 200 {object} domain.Payment
// @Router /payments/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.MustParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route POST /payments/{id}/refund Payments paymentsRefund
// @Summary Refund a completed payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "payment uuid"
// @Success 200 {object} domain.Payment
// @Failure 409 {object} map[string]any
// @Router /payments/{id}/refund [post]
func (h *handlers) refund(r *stdhttp.Request) (any, error) {
	staff, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.MustParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Refund(r.Context(), staff, id)
}
