package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError_MapsKindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.NewNotFoundError("Booking", "x"), http.StatusNotFound},
		{"invalid range", domain.NewInvalidRangeError("bad"), http.StatusBadRequest},
		{"not allowed", domain.NewNotAllowedError("no"), http.StatusBadRequest},
		{"conflict", domain.NewConflictError("dup"), http.StatusConflict},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestError_HidesUnexpectedMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: connection refused"))

	assert.NotContains(t, w.Body.String(), "connection refused")
}
