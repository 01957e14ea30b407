// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sociallink/internal/platform/middleware"
	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// Handler implements the HTTP layer for /api/analytics.
type Handler struct {
	analyticsService *Service
}

// NewHandler constructs a new analytics [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{analyticsService: service}
}

// Routes returns a [chi.Router] for /api/analytics.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/track", handler.track)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Get("/summary", handler.summary)
	})

	return router
}

type trackRequest struct {
	Type     Type   `json:"type"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	LinkID   string `json:"linkId"`
	FileID   string `json:"fileId"`
	FormID   string `json:"formId"`
}

/*
POST /api/analytics/track.

Response:
  - 200: {"success": true}
  - 400: Unknown type or missing ids
  - 404: Unknown owner, or a target outside the owner's content
*/
func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	var input trackRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.analyticsService.Track(request.Context(), TrackInput(input)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"success": true})
}

// summary handles GET /api/analytics/summary?days=N.
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	days := DefaultSummaryDays
	if raw := request.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("days", "Must be a number"))
			return
		}
	}

	summary, err := handler.analyticsService.Summary(request.Context(), ownerID, days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
