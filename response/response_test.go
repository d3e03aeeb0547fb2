package response

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/errors"
	"residence/services/occupancy"
)

func writeError(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, err)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not_found", errors.NewAppError(errors.ErrCodeDBNotFound, "room not found", errors.ErrRoomNotFound), http.StatusNotFound},
		{"overlap", errors.NewAppError(errors.ErrCodeBookingOverlap, "overlap", errors.ErrBookingOverlap), http.StatusConflict},
		{"maintenance", errors.NewAppError(errors.ErrCodeRoomUnderMaintenance, "maintenance", nil), http.StatusConflict},
		{"duplicate", errors.NewAppError(errors.ErrCodeDBDuplicate, "duplicate", nil), http.StatusConflict},
		{"transition", errors.NewAppError(errors.ErrCodeInvalidTransition, "bad transition", nil), http.StatusUnprocessableEntity},
		{"operation", errors.NewAppError(errors.ErrCodeInvalidOperation, "bad operation", nil), http.StatusUnprocessableEntity},
		{"required", errors.NewAppError(errors.ErrCodeRequiredField, "required", nil), http.StatusBadRequest},
		{"interval", errors.NewAppError(errors.ErrCodeInvalidInterval, "interval", nil), http.StatusBadRequest},
		{"wrapped", fmt.Errorf("create: %w", errors.NewAppError(errors.ErrCodeBookingOverlap, "overlap", nil)), http.StatusConflict},
		{"db_error", errors.NewAppError(errors.ErrCodeDBError, "database error", nil), http.StatusInternalServerError},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := writeError(t, tt.err)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, 0, body.Code)
		})
	}
}

func TestFromError_StoreErrors(t *testing.T) {
	t.Run("raw_cause_answers_503", func(t *testing.T) {
		err := &occupancy.StoreError{Op: "load bookings", RoomID: 3, Err: stderrors.New("connection refused")}
		code, body := writeError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "storage unavailable", body.Mess)
	})

	t.Run("database_error_cause_answers_503", func(t *testing.T) {
		cause := errors.NewAppError(errors.ErrCodeDBError, "database error", stderrors.New("timeout"))
		code, _ := writeError(t, &occupancy.StoreError{Op: "set status", RoomID: 3, Err: cause})
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})

	t.Run("missing_room_keeps_404", func(t *testing.T) {
		cause := errors.NewAppError(errors.ErrCodeDBNotFound, "room not found", errors.ErrRoomNotFound)
		code, _ := writeError(t, &occupancy.StoreError{Op: "get status", RoomID: 3, Err: cause})
		assert.Equal(t, http.StatusNotFound, code)
	})
}
