package repository

import (
	"context"

	"residence/constants"
	apperrors "residence/errors"
	"residence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *RoomRepository) WithTx(tx *gorm.DB) *RoomRepository {
	return &RoomRepository{db: tx}
}

func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error, apperrors.ErrRoomNotFound)
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

// GetByIDForUpdate locks the room row until the surrounding transaction ends.
// Bookings for one room are serialised on this lock.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Order("room_id").Find(&rooms).Error
	return rooms, translate(err, apperrors.ErrRoomNotFound)
}

func (r *RoomRepository) GetStatus(ctx context.Context, roomID uint) (constants.RoomStatus, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Select("room_id", "status").First(&room, roomID).Error
	if err != nil {
		return 0, translate(err, apperrors.ErrRoomNotFound)
	}
	return room.Status, nil
}

// SetStatus stores a derived status. A room in MAINTENANCE is left as it is and
// written is false. The check and the write are one statement, so a
// maintenance flag set after the caller read the status is never overwritten.
func (r *RoomRepository) SetStatus(ctx context.Context, roomID uint, status constants.RoomStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_id = ? AND status <> ?", roomID, constants.RoomStatusMaintenance).
		Update("status", status)
	if res.Error != nil {
		return false, translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// no row matched: either the room is missing or it is under maintenance
	if _, err := r.GetStatus(ctx, roomID); err != nil {
		return false, err
	}
	return false, nil
}

// UpdateStatus sets the status unconditionally. Only the maintenance flow uses it.
func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID uint, status constants.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_id = ?", roomID).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, apperrors.ErrRoomNotFound)
	}
	return nil
}

// CountByStatus returns the number of rooms in each status.
func (r *RoomRepository) CountByStatus(ctx context.Context) (map[constants.RoomStatus]int64, error) {
	var rows []struct {
		Status constants.RoomStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	counts := make(map[constants.RoomStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
