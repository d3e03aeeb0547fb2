package controllers

import (
	"strconv"

	"residence/constants"
	"residence/dto"
	"residence/response"
	"residence/services"
	"residence/services/logger"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms  *services.RoomService
	logger logger.Logger
}

func NewRoomController(rooms *services.RoomService, l logger.Logger) *RoomController {
	if l == nil {
		l = logger.Nop()
	}
	return &RoomController{rooms: rooms, logger: l}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.List(c.Request.Context())
	if err != nil {
		rc.logger.Error("list rooms: %v", err)
		response.FromError(c, err)
		return
	}

	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, dto.NewRoomResponse(r))
	}
	response.SuccessWithPagination(c, out, 1, len(out), len(out))
}

// GetRoomOccupancy shows stored and derived status side by side without writing.
func (rc *RoomController) GetRoomOccupancy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	preview, err := rc.rooms.Preview(c.Request.Context(), id)
	if err != nil {
		rc.logger.Error("preview room %d: %v", id, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, preview)
}

func (rc *RoomController) ReconcileRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, err := rc.rooms.Reconcile(c.Request.Context(), id)
	if err != nil {
		rc.logger.Error("reconcile room %d: %v", id, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ReconcileResponse{RoomId: id, Status: int(status), StatusName: status.String()})
}

func (rc *RoomController) ReconcileAllRooms(c *gin.Context) {
	rep, err := rc.rooms.ReconcileAll(c.Request.Context())
	if err != nil {
		rc.logger.Error("reconcile all: %v", err)
		if rep != nil && len(rep.Statuses)+len(rep.Failures) > 0 {
			response.PartialSuccess(c, "some rooms failed to reconcile", rep)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, rep)
}

// ChangeRoomStatus flags or clears maintenance.
func (rc *RoomController) ChangeRoomStatus(c *gin.Context) {
	var input dto.RoomStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	room, err := rc.rooms.SetMaintenance(c.Request.Context(), input.RoomId, input.Status == constants.RoomStatusMaintenance)
	if err != nil {
		rc.logger.Error("change room %d status: %v", input.RoomId, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewRoomResponse(*room))
}
