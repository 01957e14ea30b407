// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIntD(t *testing.T) {
	assert.Equal(t, 30, ToIntD("", 30))
	assert.Equal(t, 30, ToIntD("abc", 30))
	assert.Equal(t, 7, ToIntD(" 7 ", 30))
	assert.Equal(t, -2, ToIntD("-2", 30))
}
