// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	order := 3

	assert.False(t, Apply(&order, nil))
	assert.Equal(t, 3, order)

	assert.True(t, Apply(&order, To(0)))
	assert.Equal(t, 0, order)
}
