package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"traveling-backend/models"
)

type GormBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) FindAll(ctx context.Context) ([]models.BookedRoom, error) {
	bookings := []models.BookedRoom{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) FindByRoomID(ctx context.Context, roomID uint) ([]models.BookedRoom, error) {
	bookings := []models.BookedRoom{}
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("check_in_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings of room %d: %w", roomID, err)
	}
	return bookings, nil
}

func (r *GormBookingRepository) FindByID(ctx context.Context, id uint) (*models.BookedRoom, error) {
	var booking models.BookedRoom
	if err := r.db.WithContext(ctx).Take(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking %d: %w", id, err)
	}
	return &booking, nil
}

func (r *GormBookingRepository) FindByConfirmationCode(ctx context.Context, code string) (*models.BookedRoom, error) {
	var booking models.BookedRoom
	if err := r.db.WithContext(ctx).Where("confirmation_code = ?", code).Take(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by code: %w", err)
	}
	return &booking, nil
}

// Create locks the room row first so that concurrent requests for the same
// room run the overlap check one after another.
func (r *GormBookingRepository) Create(ctx context.Context, booking *models.BookedRoom) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, booking.RoomID); err != nil {
			return err
		}

		var overlapping int64
		if err := tx.Model(&models.BookedRoom{}).
			Where("room_id = ? AND check_in_date < ? AND check_out_date > ?",
				booking.RoomID, booking.CheckOutDate, booking.CheckInDate).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}
		if overlapping > 0 {
			return ErrBookingOverlap
		}

		if err := tx.Create(booking).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrDuplicateCode
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("is_booked", true).Error; err != nil {
			return fmt.Errorf("failed to flag room %d as booked: %w", booking.RoomID, err)
		}
		return nil
	})
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.BookedRoom
		if err := tx.Select("id", "room_id").Take(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to find booking %d: %w", id, err)
		}

		if err := lockRoom(tx, booking.RoomID); err != nil {
			return err
		}

		if err := tx.Delete(&models.BookedRoom{}, booking.ID).Error; err != nil {
			return fmt.Errorf("failed to delete booking %d: %w", id, err)
		}

		var remaining int64
		if err := tx.Model(&models.BookedRoom{}).Where("room_id = ?", booking.RoomID).Count(&remaining).Error; err != nil {
			return fmt.Errorf("failed to count bookings of room %d: %w", booking.RoomID, err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Update("is_booked", remaining > 0).Error; err != nil {
			return fmt.Errorf("failed to refresh booked flag of room %d: %w", booking.RoomID, err)
		}
		return nil
	})
}

func lockRoom(tx *gorm.DB, roomID uint) error {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Take(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock room %d: %w", roomID, err)
	}
	return nil
}
