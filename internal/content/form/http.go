// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sociallink/internal/platform/middleware"
	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/pagination"
)

// Handler implements the HTTP layer for forms and responses.
type Handler struct {
	formService *Service
}

// NewHandler constructs a new form [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{formService: service}
}

// Routes returns a [chi.Router] for /api/forms.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/responses", handler.submit)
	router.Get("/{id}", handler.get)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)
		owner.Get("/", handler.list)
		owner.Post("/", handler.create)
		owner.Get("/responses", handler.responses)
		owner.Patch("/{id}", handler.update)
		owner.Delete("/{id}", handler.delete)
	})

	return router
}

type formRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Fields      []Field `json:"fields"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	forms, err := handler.formService.List(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, forms)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input formRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.formService.Create(request.Context(), ownerID, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, form)
}

// GET /api/forms/{id}. Public.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id", resourceForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.formService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input formRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := handler.formService.Update(request.Context(), ownerID, id, Input(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.UUIDParam(request, "id", resourceForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.formService.Delete(request.Context(), ownerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type submitRequest struct {
	FormID    string                     `json:"formId"`
	Responses map[string]json.RawMessage `json:"responses"`
}

/*
POST /api/forms/responses.

Description: Public. Answer values may be strings, numbers or booleans.

Response:
  - 201: Response
  - 400: Missing formId or invalid answers
  - 404: Unknown form
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("formId", input.FormID)
	if input.FormID != "" {
		v.UUID("formId", input.FormID)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.formService.Submit(request.Context(), input.FormID, flattenAnswers(input.Responses))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, response)
}

// flattenAnswers turns JSON scalars into their string form. Other values are dropped.
func flattenAnswers(raw map[string]json.RawMessage) map[string]string {
	answers := make(map[string]string, len(raw))
	for key, value := range raw {
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		switch typed := decoded.(type) {
		case string:
			answers[key] = typed
		case bool:
			answers[key] = strconv.FormatBool(typed)
		case float64:
			answers[key] = strconv.FormatFloat(typed, 'f', -1, 64)
		}
	}
	return answers
}

// GET /api/forms/responses?formId=. Owner only, paginated.
func (handler *Handler) responses(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	formID := strings.TrimSpace(request.URL.Query().Get("formId"))
	v := &validate.Validator{}
	v.Required("formId", formID)
	if formID != "" {
		v.UUID("formId", formID)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	responses, total, err := handler.formService.Responses(request.Context(), ownerID, formID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, responses, pagination.NewMeta(params.Page, params.Limit, total))
}
