package request

import (
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemRequest(t *testing.T) {
	requester := uuid.New()
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))

	r, err := NewItemRequest(requester, "  need a tent for two  ", now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, requester, r.RequesterID())
	assert.Equal(t, "need a tent for two", r.Description())
	assert.Equal(t, now.UTC(), r.CreatedAt())
}

func TestNewItemRequest_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewItemRequest(uuid.New(), "   ", now)
	assert.True(t, domain.IsValidation(err))

	_, err = NewItemRequest(uuid.Nil, "drill", now)
	assert.True(t, domain.IsValidation(err))
}
