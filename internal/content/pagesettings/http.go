// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagesettings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
)

// Handler implements the HTTP layer for page settings and the theme catalog.
type Handler struct {
	settingsService *Service
}

// NewHandler constructs a new page settings [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{settingsService: service}
}

// Routes returns a [chi.Router] for /api/page-settings. Mount it behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Patch("/", handler.update)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.settingsService.Get(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

type updateRequest struct {
	ThemeID          *string  `json:"themeId"`
	CustomBackground *string  `json:"customBackground"`
	CustomAccent     *string  `json:"customAccent"`
	SEO              *SEO     `json:"seo"`
	Socials          []Social `json:"socials"`
}

/*
PATCH /api/page-settings.

Response:
  - 200: Settings
  - 400: Invalid colors, URLs or unknown theme
  - 403: Premium theme on a free plan
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.settingsService.Update(request.Context(), ownerID, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

// Themes serves GET /api/themes. Authentication is optional; anonymous callers
// see the free-plan accessibility.
func (handler *Handler) Themes(writer http.ResponseWriter, request *http.Request) {
	userID := ""
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	plan := handler.settingsService.PlanFor(request.Context(), userID)
	respond.OK(writer, handler.settingsService.Themes(plan))
}
