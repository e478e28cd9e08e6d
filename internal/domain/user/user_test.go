package user

import (
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registered = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Ann ", "Ann@Example.com", registered)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name())
	assert.Equal(t, "ann@example.com", u.Email())
	assert.Equal(t, registered, u.CreatedAt())

	_, err = NewUser("", "a@b.c", registered)
	assert.True(t, domain.IsValidation(err))

	_, err = NewUser("Ann", "not-an-email", registered)
	assert.True(t, domain.IsValidation(err))
}

func TestUser_UpdateIsPartial(t *testing.T) {
	u, err := NewUser("Ann", "ann@example.com", registered)
	require.NoError(t, err)

	edited := registered.Add(time.Hour)
	require.NoError(t, u.Update("", "new@example.com", edited))
	assert.Equal(t, "Ann", u.Name())
	assert.Equal(t, "new@example.com", u.Email())
	assert.Equal(t, edited, u.UpdatedAt())

	assert.Error(t, u.Update("", "broken", edited))
}
