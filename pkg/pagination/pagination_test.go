// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Clamps(t *testing.T) {
	params := FromRequest(httptest.NewRequest("GET", "/api/admin/users?page=-2&limit=500", nil))
	assert.Equal(t, Params{Page: 1, Limit: MaxLimit}, params)

	params = FromRequest(httptest.NewRequest("GET", "/api/admin/users?page=3&limit=10", nil))
	assert.Equal(t, 20, params.Offset())
}

func TestParams_Window(t *testing.T) {
	start, end := Params{Page: 2, Limit: 10}.Window(15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = Params{Page: 5, Limit: 10}.Window(15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, Meta{Page: 1, Limit: 20, Total: 41, TotalPages: 3}, NewMeta(1, 20, 41))
}
