// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sociallink/internal/platform/middleware"
	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// ClickTracker records a link click together with its analytics event.
type ClickTracker interface {
	TrackLinkClick(ctx context.Context, ownerID, linkID string) error
}

// Handler implements the HTTP layer for links.
type Handler struct {
	linkService *Service
	tracker     ClickTracker
}

// NewHandler constructs a new link [Handler]. A nil tracker only bumps the counter.
func NewHandler(service *Service, tracker ClickTracker) *Handler {
	return &Handler{linkService: service, tracker: tracker}
}

// Routes returns a [chi.Router] for /api/links. Click tracking is public; the
// rest requires an authenticated owner.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/click", handler.click)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Get("/", handler.list)
		owner.Post("/", handler.create)
		owner.Get("/{id}", handler.get)
		owner.Patch("/{id}", handler.update)
		owner.Delete("/{id}", handler.delete)
	})

	return router
}

// linkHeader is the non-variant part of a link payload.
type linkHeader struct {
	Title     *string `json:"title"`
	Type      *Type   `json:"type"`
	Visible   *bool   `json:"visible"`
	Spotlight *bool   `json:"spotlight"`
	Order     *int    `json:"order"`
}

func decodeLinkBody(writer http.ResponseWriter, request *http.Request) (json.RawMessage, linkHeader, error) {
	var raw json.RawMessage
	if err := requestutil.DecodeJSON(writer, request, &raw); err != nil {
		return nil, linkHeader{}, err
	}
	var header linkHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, linkHeader{}, validate.ErrInvalidJSON
	}
	return raw, header, nil
}

func invalidType() error {
	return validate.RequiredError("type", "Must be one of the link types")
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	links, err := handler.linkService.List(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, links)
}

/*
POST /api/links.

Request:
  - body: flat link object; "type" defaults to "link" and selects the variant fields

Response:
  - 201: Link
  - 400: Missing or malformed fields
  - 403: Plan limit reached
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	raw, header, err := decodeLinkBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := TypeLink
	if header.Type != nil {
		kind = *header.Type
	}
	variant, err := DecodeVariant(kind, raw)
	if err != nil {
		respond.Error(writer, request, invalidType())
		return
	}

	input := CreateInput{Variant: variant, Visible: header.Visible}
	if header.Title != nil {
		input.Title = *header.Title
	}
	if header.Spotlight != nil {
		input.Spotlight = *header.Spotlight
	}

	link, err := handler.linkService.Create(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, link)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceLink)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.linkService.Get(request.Context(), ownerID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}

/*
PATCH /api/links/{id}.

Description: Variant fields are merged onto the stored variant; sending a new
"type" replaces the variant entirely.
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceLink)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	raw, header, err := decodeLinkBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.linkService.Get(request.Context(), ownerID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := current.Type
	if header.Type != nil {
		kind = *header.Type
	}
	variant, err := PatchVariant(current.Variant, kind, raw)
	if err != nil {
		respond.Error(writer, request, invalidType())
		return
	}

	link, err := handler.linkService.Update(request.Context(), ownerID, id, UpdateInput{
		Title:     header.Title,
		Variant:   variant,
		Visible:   header.Visible,
		Spotlight: header.Spotlight,
		Order:     header.Order,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, link)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceLink)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.linkService.Delete(request.Context(), ownerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type clickRequest struct {
	LinkID string `json:"linkId"`
}

/*
POST /api/links/click.

Description: Every call counts; there is no deduplication window.

Response:
  - 200: Click recorded
  - 400: Missing or malformed linkId
  - 404: Unknown link
  - 503: Store unavailable
*/
func (handler *Handler) click(writer http.ResponseWriter, request *http.Request) {
	var input clickRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("linkId", input.LinkID)
	if input.LinkID != "" {
		v.UUID("linkId", input.LinkID)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	context := request.Context()
	ownerID, err := handler.linkService.OwnerOf(context, input.LinkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handler.tracker != nil {
		err = handler.tracker.TrackLinkClick(context, ownerID, input.LinkID)
	} else {
		err = handler.linkService.IncrementClicks(context, ownerID, input.LinkID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"success": true})
}
