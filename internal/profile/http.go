// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// Handler implements the public profile endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new profile [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] for /api/profile. Every route is public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{username}", handler.get)
	router.Get("/{username}/qr", handler.qr)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.profileService.Resolve(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
GET /api/profile/{username}/qr?size=&level=.

Response:
  - 200: image/png
  - 400: Size outside 128..1024 or an unknown level
  - 404: Malformed username
*/
func (handler *Handler) qr(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	size := DefaultQRSize
	if raw := query.Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("size", "Must be a number"))
			return
		}
		size = parsed
	}

	level := query.Get("level")
	if level == "" {
		level = "medium"
	}

	png, err := handler.profileService.QRCode(request.Context(), requestutil.Param(request, "username"), size, level)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Bytes(writer, "image/png", png, "public, max-age=3600")
}
