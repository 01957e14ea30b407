// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/sociallink", convertToPgx5DSN("postgres://u:p@db:5432/sociallink"))
	assert.Equal(t, "pgx5://db/sociallink", convertToPgx5DSN("postgresql://db/sociallink"))
	assert.Equal(t, "pgx5://db/sociallink", convertToPgx5DSN("pgx5://db/sociallink"))
	assert.Equal(t, "host=db dbname=sociallink", convertToPgx5DSN("host=db dbname=sociallink"))
}
