package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNextQuery(t *testing.T) {
	itemA, itemB := uuid.New(), uuid.New()
	owner := uuid.New()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	last, err := lastNextQuery(sideLast, []uuid.UUID{itemA, itemB}, owner, now)
	require.NoError(t, err)
	assert.Contains(t, last, `DISTINCT ON ("b"."item_id")`)
	assert.Contains(t, last, `"b"."start_date" < '2026-05-10T12:00:00Z'`)
	assert.Contains(t, last, `ORDER BY "b"."item_id" ASC, "b"."start_date" DESC`)
	assert.Contains(t, last, itemA.String())
	assert.Contains(t, last, itemB.String())
	assert.Contains(t, last, owner.String())

	next, err := lastNextQuery(sideNext, []uuid.UUID{itemA}, owner, now)
	require.NoError(t, err)
	assert.Contains(t, next, `"b"."start_date" > '2026-05-10T12:00:00Z'`)
	assert.Contains(t, next, `ORDER BY "b"."item_id" ASC, "b"."start_date" ASC`)
	assert.Contains(t, next, `'APPROVED'`)
}
