package repository

import (
	"context"
	"time"

	"residence/constants"
	apperrors "residence/errors"
	"residence/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, apperrors.ErrBookingNotFound)
}

func (r *BookingRepository) Save(ctx context.Context, b *models.Booking) error {
	return translate(r.db.WithContext(ctx).Save(b).Error, apperrors.ErrBookingNotFound)
}

func (r *BookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrBookingNotFound)
	}
	return &b, nil
}

// FindActiveBookingsForRoom returns the room's PENDING, CONFIRMED and CHECKED_IN bookings.
func (r *BookingRepository) FindActiveBookingsForRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, constants.OccupancyRelevantBookingStatuses).
		Order("check_in").
		Find(&bookings).Error
	return bookings, translate(err, apperrors.ErrBookingNotFound)
}

// FindAllNonMaintenanceRooms returns the ids of every room not in MAINTENANCE.
func (r *BookingRepository) FindAllNonMaintenanceRooms(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("status <> ?", constants.RoomStatusMaintenance).
		Order("room_id").
		Pluck("room_id", &ids).Error
	return ids, translate(err, apperrors.ErrRoomNotFound)
}

// FindOccupancyRelevant returns every PENDING, CONFIRMED and CHECKED_IN booking.
func (r *BookingRepository) FindOccupancyRelevant(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", constants.OccupancyRelevantBookingStatuses).
		Order("check_out").
		Find(&bookings).Error
	return bookings, translate(err, apperrors.ErrBookingNotFound)
}

// FindCheckedInUnnotified returns checked-in bookings that have not had a stay notice.
func (r *BookingRepository) FindCheckedInUnnotified(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ? AND notified_at IS NULL", constants.BookingStatusCheckedIn).
		Find(&bookings).Error
	return bookings, translate(err, apperrors.ErrBookingNotFound)
}

func (r *BookingRepository) MarkNotified(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Update("notified_at", at).Error
	return translate(err, apperrors.ErrBookingNotFound)
}
