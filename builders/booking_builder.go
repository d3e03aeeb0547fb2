package builders

import (
	"time"

	"residence/constants"
	"residence/models"
)

// BookingBuilder assembles a booking step by step.
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder starts a PENDING booking.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: constants.BookingStatusPending},
	}
}

func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

func (b *BookingBuilder) WithRoom(roomID uint) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithStatus(status constants.BookingStatus) *BookingBuilder {
	b.booking.Status = status
	return b
}

func (b *BookingBuilder) WithGuestInfo(guestName, guestPhone, guestEmail string) *BookingBuilder {
	b.booking.GuestName = guestName
	b.booking.GuestPhone = guestPhone
	b.booking.GuestEmail = guestEmail
	return b
}

// WithStay sets the half-open stay [checkIn, checkOut), stored in UTC.
func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.booking.CheckIn = checkIn.UTC()
	b.booking.CheckOut = checkOut.UTC()
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}
