package occupancy

import (
	"time"

	"residence/constants"
	"residence/models"
)

// ComputeStatus derives the status of roomID from its bookings at now.
// Bookings that are not occupancy-relevant are ignored even if the caller
// passes them in.
func ComputeStatus(roomID uint, bookings []models.Booking, now time.Time) constants.RoomStatus {
	for _, b := range bookings {
		if !IsOccupancyRelevant(b.Status) {
			continue
		}
		if IsActiveAt(b, now) {
			return constants.RoomStatusOccupied
		}
	}
	return constants.RoomStatusAvailable
}

// MalformedBookings returns the ids of bookings whose check-out is not after
// their check-in.
func MalformedBookings(bookings []models.Booking) []uint {
	var ids []uint
	for _, b := range bookings {
		if !ValidInterval(b) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
