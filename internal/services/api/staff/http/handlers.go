// Package http provides http transport for staff accounts and auth
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/platform/net/middleware"
	"gymdesk/internal/services/api/staff/domain"
	svc "gymdesk/internal/services/api/staff/service"
)

// RegisterStaff mounts account management; every route is owner only
func RegisterStaff(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Restricted(r, func(or httpkit.Router) {
		httpkit.Get(or, "/", h.list)
		httpkit.PostJSON[domain.CreateInput](or, "/", h.create)
		httpkit.Get(or, "/{id}", h.get)
		httpkit.PatchJSON[domain.UpdateInput](or, "/{id}", h.update)
		httpkit.Delete(or, "/{id}", h.remove)
	}, domain.RoleOwner)
}

// RegisterAuth mounts login in the open and logout and me behind the bearer port
func RegisterAuth(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Post(pr, "/logout", h.logout)
		httpkit.Get(pr, "/me", h.me)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /staff Staff staffList
// @Summary List staff accounts
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Staff
// @Failure 403 {object} map[string]any
// @Router /staff [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route POST /staff Staff staffCreate
// @Summary Create a staff account
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.CreateInput true "account"
// @Success 201 {object} domain.Staff
// @Failure 409 {object} map[string]any
// @Router /staff [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	st, err := h.svc.Create(r.Context(), owner, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(st), nil
}

// swagger:route GET /staff/{id} Staff staffGet
// @Summary Get a staff account
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "staff id"
// @Success 200 {object} domain.Staff
// @Router /staff/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route PATCH /staff/{id} Staff staffUpdate
// @Summary Update name, email or phone
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "staff id"
// @Param body body domain.UpdateInput true "changes"
// @Success 200 {object} domain.Staff
// @Router /staff/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// swagger:route DELETE /staff/{id} Staff staffDelete
// @Summary Deactivate a staff account and revoke its sessions
// @Tags Staff
// @Security BearerAuth
// @Param id path int true "staff id"
// @Success 204
// @Router /staff/{id} [delete]
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

// swagger:route POST /auth/login Auth authLogin
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body domain.LoginInput true "credentials"
// @Success 200 {object} domain.Session
// @Failure 401 {object} map[string]any
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// swagger:route POST /auth/logout Auth authLogout
// @Summary Revoke the current token
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	tok, err := httpkit.Bearer(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Logout(r.Context(), tok); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route GET /auth/me Auth authMe
// @Summary The signed in account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Staff
// @Router /auth/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	id, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Me(r.Context(), id)
}
