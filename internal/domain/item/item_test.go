package item

import (
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewItem_Validation(t *testing.T) {
	_, err := NewItem(uuid.Nil, "Drill", "cordless", true, created)
	assert.True(t, domain.IsValidation(err))

	_, err = NewItem(uuid.New(), " ", "cordless", true, created)
	assert.True(t, domain.IsValidation(err))

	_, err = NewItem(uuid.New(), "Drill", "", true, created)
	assert.True(t, domain.IsValidation(err))
}

func TestItem_Update(t *testing.T) {
	owner := uuid.New()
	it, err := NewItem(owner, "Drill", "cordless drill", true, created)
	require.NoError(t, err)

	name := "Hammer drill"
	off := false
	edited := created.Add(time.Hour)
	it.Update(&name, nil, &off, edited)

	assert.Equal(t, "Hammer drill", it.Name())
	assert.Equal(t, "cordless drill", it.Description())
	assert.False(t, it.Available())
	assert.Equal(t, int64(2), it.Version())
	assert.True(t, it.IsOwnedBy(owner))
	assert.Equal(t, created, it.CreatedAt())
	assert.Equal(t, edited, it.UpdatedAt())
}

func TestItem_SetAvailability(t *testing.T) {
	it, err := NewItem(uuid.New(), "Drill", "cordless drill", true, created)
	require.NoError(t, err)

	it.SetAvailability(true, created.Add(time.Hour))
	assert.Equal(t, int64(1), it.Version())
	assert.Equal(t, created, it.UpdatedAt())

	it.SetAvailability(false, created.Add(time.Hour))
	assert.False(t, it.Available())
	assert.Equal(t, int64(2), it.Version())
	assert.Equal(t, created.Add(time.Hour), it.UpdatedAt())
}

func TestItem_AnswerRequest(t *testing.T) {
	it, err := NewItem(uuid.New(), "Drill", "cordless drill", true, created)
	require.NoError(t, err)
	assert.Nil(t, it.RequestID())

	requestID := uuid.New()
	it.AnswerRequest(requestID)
	require.NotNil(t, it.RequestID())
	assert.Equal(t, requestID, *it.RequestID())
}

func TestItem_Matches(t *testing.T) {
	it, err := NewItem(uuid.New(), "Cordless Drill", "Makita 18V", true, created)
	require.NoError(t, err)

	assert.True(t, it.Matches("drill"))
	assert.True(t, it.Matches("MAKITA"))
	assert.False(t, it.Matches("saw"))
}
