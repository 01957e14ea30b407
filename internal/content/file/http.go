// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// Handler implements the HTTP layer for files.
type Handler struct {
	fileService *Service
}

// NewHandler constructs a new file [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{fileService: service}
}

// Routes returns a [chi.Router] for /api/files.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.view)
	router.Get("/{id}/raw", handler.raw)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Get("/", handler.list)
		owner.Post("/", handler.create)
		owner.Delete("/", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	files, err := handler.fileService.List(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, files)
}

type createFileRequest struct {
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

/*
POST /api/files.

Request:
  - body: createFileRequest; content is a base64 data URL, or plain text for type "text"

Response:
  - 201: File metadata
  - 400: Missing or malformed fields
  - 403: Plan limit or size limit reached
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createFileRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Type == "" {
		input.Type = TypeFile
	}

	file, err := handler.fileService.Create(request.Context(), ownerID, CreateInput{
		Name:     input.Name,
		Type:     input.Type,
		Content:  input.Content,
		MimeType: input.MimeType,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, file)
}

// DELETE /api/files?id=.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := strings.TrimSpace(request.URL.Query().Get("id"))
	v := &validate.Validator{}
	v.Required("id", id)
	if id != "" {
		v.UUID("id", id)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.fileService.Delete(request.Context(), ownerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"success": true})
}

// GET /api/files/{id}. Public; counts one view.
func (handler *Handler) view(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", resourceFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.View(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

// GET /api/files/{id}/raw. Public; serves the decoded bytes and counts one view.
func (handler *Handler) raw(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", resourceFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, err := handler.fileService.View(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if file.Type == TypeText {
		respond.Bytes(writer, textMimeType+"; charset=utf-8", []byte(file.Content), "no-cache")
		return
	}
	decoded, ok := ParseDataURL(file.Content)
	if !ok {
		respond.Error(writer, request, apperr.NotFound(resourceFile))
		return
	}
	respond.Bytes(writer, file.MimeType, decoded.Data, "no-cache")
}
