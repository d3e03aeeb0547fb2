package notification

import (
	"fmt"
	"math"

	"residence/constants"
	"residence/models"
)

// MessageBuilder assembles the stay-progress notice for a booking.
type MessageBuilder struct {
	booking  models.Booking
	progress float64
}

func NewMessageBuilder(b models.Booking, progress float64) *MessageBuilder {
	return &MessageBuilder{booking: b, progress: progress}
}

func (b *MessageBuilder) Build() Message {
	msg := Message{
		Template:  constants.TemplateStayProgress,
		UserID:    b.booking.UserID,
		BookingID: b.booking.ID,
		Email:     b.booking.GuestEmail,
		Phone:     b.booking.GuestPhone,
	}
	if b.booking.User != nil {
		if msg.Email == "" {
			msg.Email = b.booking.User.Email
		}
		if msg.Phone == "" {
			msg.Phone = b.booking.User.PhoneNumber
		}
	}
	name := b.booking.GuestName
	if name == "" && b.booking.User != nil {
		name = b.booking.User.Name
	}
	if name == "" {
		name = "Guest"
	}
	msg.Body = fmt.Sprintf("Hi %s, %d%% of your stay in room %d has passed. Check-out is %s. Contact the front desk to extend.",
		name, int(math.Floor(b.progress*100)), b.booking.RoomID, b.booking.CheckOut.Format("02/01/2006 15:04"))
	return msg
}
