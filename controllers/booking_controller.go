package controllers

import (
	"residence/dto"
	"residence/response"
	"residence/services"
	"residence/services/logger"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
	logger   logger.Logger
}

func NewBookingController(bookings *services.BookingService, l logger.Logger) *BookingController {
	if l == nil {
		l = logger.Nop()
	}
	return &BookingController{bookings: bookings, logger: l}
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := bc.bookings.Create(c.Request.Context(), req)
	if err != nil {
		bc.logger.Warn("create booking for room %d: %v", req.RoomID, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(*b))
}

func (bc *BookingController) GetBookingDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := bc.bookings.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(*b))
}

func (bc *BookingController) ChangeBookingStatus(c *gin.Context) {
	var req dto.BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := bc.bookings.Transition(c.Request.Context(), req.ID, req.Action)
	if err != nil {
		bc.logger.Warn("booking %d %s: %v", req.ID, req.Action, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(*b))
}

func (bc *BookingController) ExtendBooking(c *gin.Context) {
	var req dto.ExtendBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	b, err := bc.bookings.Extend(c.Request.Context(), req.ID, req.CheckOut)
	if err != nil {
		bc.logger.Warn("extend booking %d: %v", req.ID, err)
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(*b))
}
