package repository

import (
	"context"

	apperrors "residence/errors"
	"residence/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error, apperrors.ErrInvalidInput)
}

func (r *NotificationRepository) ListForBooking(ctx context.Context, bookingID uint) ([]models.Notification, error) {
	var out []models.Notification
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id").Find(&out).Error
	return out, translate(err, apperrors.ErrInvalidInput)
}
