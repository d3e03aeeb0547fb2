package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"residence/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupRoutes(router, Controllers{
		Rooms:     controllers.NewRoomController(nil, nil),
		Bookings:  controllers.NewBookingController(nil, nil),
		Dashboard: controllers.NewDashboardController(nil, nil),
	})

	got := make(map[string]bool)
	for _, r := range router.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /ping",
		"GET /api/v1/rooms",
		"GET /api/v1/rooms/:id/occupancy",
		"POST /api/v1/rooms/:id/reconcile",
		"POST /api/v1/rooms/reconcile",
		"PUT /api/v1/roomStatus",
		"POST /api/v1/bookings",
		"GET /api/v1/bookings/:id",
		"PUT /api/v1/bookingStatus",
		"PUT /api/v1/bookingExtend",
		"GET /api/v1/dashboard",
	} {
		assert.True(t, got[want], want)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}
