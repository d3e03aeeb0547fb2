package models

import (
	"fmt"

	"residence/constants"
	apperrors "residence/errors"
)

// BookingState holds the transitions allowed from one booking status.
type BookingState interface {
	Confirm(b *Booking) error
	CheckIn(b *Booking) error
	CheckOut(b *Booking) error
	Cancel(b *Booking) error
}

func invalidTransition(b *Booking, action string) error {
	return apperrors.NewAppError(
		apperrors.ErrCodeInvalidTransition,
		fmt.Sprintf("cannot %s a %s booking", action, b.Status),
		apperrors.ErrInvalidTransition,
	)
}

type PendingState struct{}

func (s *PendingState) Confirm(b *Booking) error {
	b.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *PendingState) CheckIn(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckIn)
}

func (s *PendingState) CheckOut(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckOut)
}

func (s *PendingState) Cancel(b *Booking) error {
	b.Status = constants.BookingStatusCancelled
	return nil
}

type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(b *Booking) error {
	return invalidTransition(b, constants.BookingActionConfirm)
}

func (s *ConfirmedState) CheckIn(b *Booking) error {
	b.Status = constants.BookingStatusCheckedIn
	return nil
}

func (s *ConfirmedState) CheckOut(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckOut)
}

func (s *ConfirmedState) Cancel(b *Booking) error {
	b.Status = constants.BookingStatusCancelled
	return nil
}

type CheckedInState struct{}

func (s *CheckedInState) Confirm(b *Booking) error {
	return invalidTransition(b, constants.BookingActionConfirm)
}

func (s *CheckedInState) CheckIn(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckIn)
}

func (s *CheckedInState) CheckOut(b *Booking) error {
	b.Status = constants.BookingStatusCheckedOut
	return nil
}

// A guest already in the room has to check out instead.
func (s *CheckedInState) Cancel(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCancel)
}

// TerminalState covers CHECKED_OUT and CANCELLED.
type TerminalState struct{}

func (s *TerminalState) Confirm(b *Booking) error {
	return invalidTransition(b, constants.BookingActionConfirm)
}

func (s *TerminalState) CheckIn(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckIn)
}

func (s *TerminalState) CheckOut(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCheckOut)
}

func (s *TerminalState) Cancel(b *Booking) error {
	return invalidTransition(b, constants.BookingActionCancel)
}

// GetBookingState returns the state object for a booking status.
func GetBookingState(status constants.BookingStatus) BookingState {
	switch status {
	case constants.BookingStatusPending:
		return &PendingState{}
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCheckedIn:
		return &CheckedInState{}
	default:
		return &TerminalState{}
	}
}

// ApplyAction runs the named transition against b.
func ApplyAction(b *Booking, action string) error {
	state := GetBookingState(b.Status)
	switch action {
	case constants.BookingActionConfirm:
		return state.Confirm(b)
	case constants.BookingActionCheckIn:
		return state.CheckIn(b)
	case constants.BookingActionCheckOut:
		return state.CheckOut(b)
	case constants.BookingActionCancel:
		return state.Cancel(b)
	default:
		return apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "unknown booking action: "+action, apperrors.ErrInvalidInput)
	}
}
