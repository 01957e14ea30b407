// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers_TraverseWrappedChain(t *testing.T) {
	err := fmt.Errorf("link_service_get_failed: %w", NotFound("Link"))

	assert.True(t, IsAppError(err))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, http.StatusNotFound, As(err).HTTPStatus)
}

func TestDatabaseUnavailable_HidesCause(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	err := DatabaseUnavailable(cause)

	assert.Equal(t, DatabaseUnavailableMessage, err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestPlanLimit_IsForbidden(t *testing.T) {
	err := PlanLimit("Link limit reached for the free plan")

	assert.Equal(t, http.StatusForbidden, err.HTTPStatus)
	assert.Equal(t, CodePlanLimitReached, err.Code)
}
