package dto

import (
	"time"

	"residence/models"
)

type CreateBookingRequest struct {
	RoomID     uint      `json:"roomId" binding:"required"`
	UserID     uint      `json:"userId" binding:"required"`
	CheckIn    time.Time `json:"checkIn" binding:"required"`
	CheckOut   time.Time `json:"checkOut" binding:"required,gtfield=CheckIn"`
	GuestName  string    `json:"guestName,omitempty"`
	GuestEmail string    `json:"guestEmail,omitempty" binding:"omitempty,email"`
	GuestPhone string    `json:"guestPhone,omitempty"`
}

type BookingStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Action string `json:"action" binding:"required,bookingaction"`
}

type ExtendBookingRequest struct {
	ID       uint      `json:"id" binding:"required"`
	CheckOut time.Time `json:"checkOut" binding:"required"`
}

type BookingResponse struct {
	ID         uint       `json:"id"`
	RoomID     uint       `json:"roomId"`
	UserID     uint       `json:"userId"`
	Status     int        `json:"status"`
	StatusName string     `json:"statusName"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   time.Time  `json:"checkOut"`
	GuestName  string     `json:"guestName,omitempty"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

func NewBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		UserID:     b.UserID,
		Status:     int(b.Status),
		StatusName: b.Status.String(),
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestName:  b.GuestName,
		NotifiedAt: b.NotifiedAt,
	}
}
