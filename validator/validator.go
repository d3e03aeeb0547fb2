package validator

import (
	"fmt"
	"time"

	"residence/constants"
	"residence/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom tags used by request DTOs to gin's validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// Register adds the custom tags to v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("bookingaction", validateBookingAction); err != nil {
		return err
	}
	return v.RegisterValidation("roomstatus", validateRoomStatusRequest)
}

func validateBookingAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constants.BookingActionConfirm,
		constants.BookingActionCheckIn,
		constants.BookingActionCheckOut,
		constants.BookingActionCancel:
		return true
	}
	return false
}

// OCCUPIED is derived, never requested.
func validateRoomStatusRequest(fl validator.FieldLevel) bool {
	s := constants.RoomStatus(fl.Field().Int())
	return s == constants.RoomStatusAvailable || s == constants.RoomStatusMaintenance
}

// ValidateBookingInterval checks that a stay has positive length.
func ValidateBookingInterval(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "checkIn and checkOut are required", errors.ErrMissingRequired)
	}
	if !checkOut.After(checkIn) {
		return errors.NewAppError(errors.ErrCodeInvalidInterval, "checkOut must be after checkIn", errors.ErrInvalidInterval)
	}
	return nil
}
