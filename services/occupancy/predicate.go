package occupancy

import (
	"time"

	"residence/constants"
	"residence/models"
)

// IsOccupancyRelevant reports whether a booking in this status can hold a room.
func IsOccupancyRelevant(status constants.BookingStatus) bool {
	switch status {
	case constants.BookingStatusPending, constants.BookingStatusConfirmed, constants.BookingStatusCheckedIn:
		return true
	default:
		return false
	}
}

// ValidInterval reports whether CheckOut is strictly after CheckIn.
func ValidInterval(b models.Booking) bool {
	return b.CheckOut.After(b.CheckIn)
}

// IsActiveAt reports whether b occupies its room at now.
func IsActiveAt(b models.Booking, now time.Time) bool {
	switch b.Status {
	case constants.BookingStatusCheckedIn:
		return true
	case constants.BookingStatusPending, constants.BookingStatusConfirmed:
		if !ValidInterval(b) {
			return false
		}
		return !now.Before(b.CheckIn) && now.Before(b.CheckOut)
	default:
		return false
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Blocks reports whether b holds its room during some instant of [from, to).
// A checked-in guest past check-out has not left yet, so the stay is treated
// as running until at least now.
func Blocks(b models.Booking, from, to, now time.Time) bool {
	if !from.Before(to) || !IsOccupancyRelevant(b.Status) {
		return false
	}
	if b.Status == constants.BookingStatusCheckedIn && !now.Before(b.CheckOut) {
		return !from.After(now) && b.CheckIn.Before(to)
	}
	if !ValidInterval(b) {
		return false
	}
	return Overlaps(from, to, b.CheckIn, b.CheckOut)
}

// StayProgress is the elapsed fraction of b's stay at now, clamped to [0, 1].
// A malformed interval reports 0.
func StayProgress(b models.Booking, now time.Time) float64 {
	if !ValidInterval(b) {
		return 0
	}
	if !now.After(b.CheckIn) {
		return 0
	}
	if !now.Before(b.CheckOut) {
		return 1
	}
	total := b.CheckOut.Sub(b.CheckIn)
	return float64(now.Sub(b.CheckIn)) / float64(total)
}

// CriticalCheckouts returns the active bookings that are due to leave within
// window of now, together with checked-in bookings already past their check-out.
func CriticalCheckouts(bookings []models.Booking, now time.Time, window time.Duration) []models.Booking {
	deadline := now.Add(window)
	var out []models.Booking
	for _, b := range bookings {
		if !IsActiveAt(b, now) {
			continue
		}
		overdue := b.Status == constants.BookingStatusCheckedIn && !now.Before(b.CheckOut)
		dueSoon := now.Before(b.CheckOut) && !b.CheckOut.After(deadline)
		if overdue || dueSoon {
			out = append(out, b)
		}
	}
	return out
}
