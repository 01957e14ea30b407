// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/users/auth"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/query"
	"github.com/taibuivan/sociallink/pkg/slice"
)

const resourceAccount = "Account"

// Handler implements the HTTP layer for /api/admin.
type Handler struct {
	adminService    *Service
	settingsService *SettingsService
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service, settings *SettingsService) *Handler {
	return &Handler{adminService: service, settingsService: settings}
}

// Routes returns a [chi.Router] for /api/admin. Every route requires the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/users", handler.listUsers)
	router.Get("/users/{id}", handler.getUser)
	router.Patch("/users/{id}", handler.updateUser)
	router.Delete("/users/{id}", handler.deleteUser)

	router.Get("/stats", handler.stats)
	router.Get("/settings", handler.getSettings)
	router.Patch("/settings", handler.updateSettings)

	return router
}

// listUsers handles GET /api/admin/users?q=&status=&plan=&page=&limit=.
// plan accepts a comma-separated list or repeats.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	filter := auth.ListFilter{
		Query:  values.Get("q"),
		Status: auth.Status(strings.ToLower(strings.TrimSpace(values.Get("status")))),
		Plans:  slice.Map(query.Values(values["plan"]), func(plan string) policy.Plan { return policy.Plan(plan) }),
	}
	params := pagination.FromRequest(request)

	accounts, total, err := handler.adminService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, accounts, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", resourceAccount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

type updateUserRequest struct {
	Status *auth.Status  `json:"status"`
	Role   *sec.UserRole `json:"role"`
	Plan   *policy.Plan  `json:"plan"`
}

/*
PATCH /api/admin/users/{id}.

Response:
  - 200: Account
  - 400: Unknown status, role or plan
  - 403: Role rules
  - 404: Unknown account
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceAccount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.adminService.Update(request.Context(), claims.UserID, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceAccount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.Delete(request.Context(), claims.UserID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.adminService.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.settingsService.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	var input SettingsInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.settingsService.Update(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}
