// Package occupancy derives a room's availability from its bookings and
// writes the result back to the room store.
//
// Every check of whether a booking holds a room at an instant goes through
// IsActiveAt. Intervals are half-open: a booking occupies [CheckIn, CheckOut).
// A CHECKED_IN booking occupies its room whatever its recorded interval says.
// Rooms in MAINTENANCE are never written.
package occupancy
