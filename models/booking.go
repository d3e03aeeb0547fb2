package models

import (
	"time"

	"residence/constants"
)

type Booking struct {
	ID         uint                    `json:"id" gorm:"primaryKey"`
	RoomID     uint                    `json:"roomId" gorm:"index;not null"`
	Room       *Room                   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	UserID     uint                    `json:"userId" gorm:"index;not null"`
	User       *User                   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status     constants.BookingStatus `json:"status" gorm:"index;default:0"`
	CheckIn    time.Time               `json:"checkIn" gorm:"not null"`
	CheckOut   time.Time               `json:"checkOut" gorm:"not null"`
	GuestName  string                  `json:"guestName,omitempty"`
	GuestEmail string                  `json:"guestEmail,omitempty"`
	GuestPhone string                  `json:"guestPhone,omitempty"`
	NotifiedAt *time.Time              `json:"notifiedAt,omitempty"`
	CreatedAt  time.Time               `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time               `gorm:"autoUpdateTime" json:"updatedAt"`
}
