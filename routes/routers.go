package routes

import (
	"net/http"

	"residence/controllers"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Rooms     *controllers.RoomController
	Bookings  *controllers.BookingController
	Dashboard *controllers.DashboardController
}

func SetupRoutes(router *gin.Engine, ctl Controllers) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	v1 := router.Group("/api/v1")

	v1.GET("/rooms", ctl.Rooms.GetRooms)
	v1.GET("/rooms/:id/occupancy", ctl.Rooms.GetRoomOccupancy)
	v1.POST("/rooms/:id/reconcile", ctl.Rooms.ReconcileRoom)
	v1.POST("/rooms/reconcile", ctl.Rooms.ReconcileAllRooms)
	v1.PUT("/roomStatus", ctl.Rooms.ChangeRoomStatus)

	v1.POST("/bookings", ctl.Bookings.CreateBooking)
	v1.GET("/bookings/:id", ctl.Bookings.GetBookingDetail)
	v1.PUT("/bookingStatus", ctl.Bookings.ChangeBookingStatus)
	v1.PUT("/bookingExtend", ctl.Bookings.ExtendBooking)

	v1.GET("/dashboard", ctl.Dashboard.GetDashboard)
}
