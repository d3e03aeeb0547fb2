package dto

import (
	"time"

	"residence/constants"
	"residence/models"
)

type RoomResponse struct {
	RoomId     uint      `json:"id"`
	Number     string    `json:"number"`
	Floor      int       `json:"floor"`
	Block      string    `json:"block"`
	Status     int       `json:"status"`
	StatusName string    `json:"statusName"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewRoomResponse(r models.Room) RoomResponse {
	return RoomResponse{
		RoomId:     r.RoomId,
		Number:     r.Number,
		Floor:      r.Floor,
		Block:      r.Block,
		Status:     int(r.Status),
		StatusName: r.Status.String(),
		UpdatedAt:  r.UpdatedAt,
	}
}

// RoomStatusRequest toggles maintenance. Only MAINTENANCE and AVAILABLE are accepted;
// OCCUPIED is derived from bookings.
type RoomStatusRequest struct {
	RoomId uint                 `json:"id" binding:"required"`
	Status constants.RoomStatus `json:"status" binding:"required,roomstatus"`
}

type ReconcileResponse struct {
	RoomId     uint   `json:"id"`
	Status     int    `json:"status"`
	StatusName string `json:"statusName"`
}
