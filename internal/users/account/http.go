// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/sociallink/internal/platform/request"
	"github.com/taibuivan/sociallink/internal/platform/respond"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// maxAvatarDataURL caps an inline avatar image.
const maxAvatarDataURL = 1 << 20

// Handler implements the HTTP layer for account self-service.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
// Mount it behind RequireAuth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getAccount)
	router.Patch("/", handler.updateAccount)
	router.Post("/password", handler.changePassword)

	return router
}

/*
GET /api/account.

Response:
  - 200: User: The signed-in account
  - 401: Authentication required
*/
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateAccountRequest defines the expected JSON payload for profile updates.
type updateAccountRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	Website  *string `json:"website"`
}

/*
PATCH /api/account.

Request:
  - body: updateAccountRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: Validation failure
  - 409: Username taken or reserved
*/
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 100)
	}
	if input.Username != nil {
		v.Username(auth.FieldUsername, NormalizeUsername(*input.Username))
	}
	if input.Bio != nil {
		v.MaxLen("bio", *input.Bio, 500)
	}
	if input.Website != nil {
		v.URL("website", strings.TrimSpace(*input.Website))
	}
	if input.Avatar != nil {
		avatar := strings.TrimSpace(*input.Avatar)
		if strings.HasPrefix(avatar, "data:") {
			v.Custom("avatar", !strings.HasPrefix(avatar, "data:image/"), "Must be an image").
				Custom("avatar", len(avatar) > maxAvatarDataURL, "Image is too large")
		} else {
			v.URL("avatar", avatar)
		}
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.Name,
		Username:    input.Username,
		Bio:         input.Bio,
		AvatarURL:   input.Avatar,
		Website:     input.Website,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

/*
POST /api/account/password.

Description: Every session of the account is revoked; the current access token
stays valid until it expires.

Response:
  - 200: Password changed
  - 401: Current password is incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(auth.FieldCurrentPassword, input.CurrentPassword).
		Required(auth.FieldNewPassword, input.NewPassword).
		MinLen(auth.FieldNewPassword, input.NewPassword, auth.MinPasswordLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		auth.FieldMessage: "Password changed successfully",
	})
}
