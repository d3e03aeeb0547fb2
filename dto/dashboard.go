package dto

import "time"

type CheckoutItem struct {
	BookingID uint      `json:"bookingId"`
	RoomID    uint      `json:"roomId"`
	CheckOut  time.Time `json:"checkOut"`
	Overdue   bool      `json:"overdue"`
}

type DashboardSummary struct {
	At                time.Time        `json:"at"`
	RoomCounts        map[string]int64 `json:"roomCounts"`
	DriftedRooms      []uint           `json:"driftedRooms"`
	CriticalCheckouts []CheckoutItem   `json:"criticalCheckouts"`
}
