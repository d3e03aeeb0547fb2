package models

import (
	"fmt"
	"time"

	"residence/constants"
)

type Room struct {
	RoomId    uint                 `json:"id" gorm:"primaryKey"`
	Number    string               `json:"number" gorm:"uniqueIndex;type:varchar(20)"`
	Floor     int                  `json:"floor"`
	Block     string               `json:"block" gorm:"type:varchar(20)"`
	Status    constants.RoomStatus `json:"status" gorm:"index;default:1"`
	CreatedAt time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
	Bookings  []Booking            `json:"bookings,omitempty" gorm:"foreignKey:RoomID"`
}

func (r *Room) ValidateStatus() error {
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status: %d, must be between %d and %d",
			r.Status, constants.RoomStatusAvailable, constants.RoomStatusMaintenance)
	}
	return nil
}
