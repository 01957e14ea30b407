// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

func TestFlattenAnswers(t *testing.T) {
	answers := flattenAnswers(map[string]json.RawMessage{
		"name":   json.RawMessage(`"Bo"`),
		"agree":  json.RawMessage(`true`),
		"budget": json.RawMessage(`1500.5`),
		"nested": json.RawMessage(`{"a":1}`),
	})
	assert.Equal(t, map[string]string{"name": "Bo", "agree": "true", "budget": "1500.5"}, answers)
}

func TestHTTP_Forms(t *testing.T) {
	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)
	token, err := tokens.GenerateAccessToken(ownerA, "ann", string(sec.RoleUser), time.Minute)
	require.NoError(t, err)

	service := newTestService()
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/forms", NewHandler(service).Routes())

	do := func(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		if authenticated {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	created := do(http.MethodPost, "/api/forms",
		`{"title":"Contact","fields":[{"id":"email","label":"Email","type":"email","required":true}]}`, true)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var envelope struct {
		Data Form `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))
	formID := envelope.Data.ID

	t.Run("public read", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/forms/"+formID, "", false).Code)
	})

	t.Run("public submit", func(t *testing.T) {
		recorder := do(http.MethodPost, "/api/forms/responses", `{"formId":"`+formID+`","responses":{"email":"v@x.io"}}`, false)
		assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

		missing := do(http.MethodPost, "/api/forms/responses", `{"responses":{}}`, false)
		assert.Equal(t, http.StatusBadRequest, missing.Code)
	})

	t.Run("owner lists responses", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/forms/responses?formId="+formID, "", false).Code)

		recorder := do(http.MethodGet, "/api/forms/responses?formId="+formID, "", true)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"total":1`)
	})

	t.Run("owner deletes", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/forms/"+formID, "", true).Code)
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/forms/"+formID, "", false).Code)
	})
}
