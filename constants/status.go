package constants

// RoomStatus is the persisted availability state of a room.
type RoomStatus int

const (
	RoomStatusAvailable   RoomStatus = 1
	RoomStatusOccupied    RoomStatus = 2
	RoomStatusMaintenance RoomStatus = 3
)

func (s RoomStatus) String() string {
	switch s {
	case RoomStatusAvailable:
		return "AVAILABLE"
	case RoomStatusOccupied:
		return "OCCUPIED"
	case RoomStatusMaintenance:
		return "MAINTENANCE"
	default:
		return "UNKNOWN"
	}
}

func (s RoomStatus) Valid() bool {
	return s >= RoomStatusAvailable && s <= RoomStatusMaintenance
}

// BookingStatus
type BookingStatus int

const (
	BookingStatusPending    BookingStatus = 0
	BookingStatusConfirmed  BookingStatus = 1
	BookingStatusCheckedIn  BookingStatus = 2
	BookingStatusCheckedOut BookingStatus = 3
	BookingStatusCancelled  BookingStatus = 4
)

func (s BookingStatus) String() string {
	switch s {
	case BookingStatusPending:
		return "PENDING"
	case BookingStatusConfirmed:
		return "CONFIRMED"
	case BookingStatusCheckedIn:
		return "CHECKED_IN"
	case BookingStatusCheckedOut:
		return "CHECKED_OUT"
	case BookingStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

func (s BookingStatus) Valid() bool {
	return s >= BookingStatusPending && s <= BookingStatusCancelled
}

// OccupancyRelevantBookingStatuses lists the statuses that can hold a room.
var OccupancyRelevantBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

// Booking actions accepted by the status endpoint.
const (
	BookingActionConfirm  = "confirm"
	BookingActionCheckIn  = "checkin"
	BookingActionCheckOut = "checkout"
	BookingActionCancel   = "cancel"
)

// Notification templates
const (
	TemplateStayProgress = "stay_progress"
)
