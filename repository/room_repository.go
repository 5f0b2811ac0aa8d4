package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"traveling-backend/models"
)

type GormRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *GormRoomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

// FindByID leaves Photo empty; use FindPhoto for the blob.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Omit("photo").Take(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room %d: %w", id, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) FindPhoto(ctx context.Context, id uint) ([]byte, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Select("id", "photo").
		Where("id = ?", id).
		Take(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read photo of room %d: %w", id, err)
	}
	return room.Photo, nil
}

// Save writes type, price and photo. The booked flag belongs to the booking
// store and is never written from here.
// Save returns ErrNotFound when the room no longer exists.
func (r *GormRoomRepository) Save(ctx context.Context, room *models.Room) error {
	result := r.db.WithContext(ctx).
		Model(&models.Room{ID: room.ID}).
		Updates(map[string]interface{}{
			"room_type":  room.RoomType,
			"room_price": room.RoomPrice,
			"photo":      room.Photo,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room %d: %w", room.ID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL counts unchanged rows as unaffected, so recheck existence.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", room.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check room %d: %w", room.ID, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, id); err != nil {
			return err
		}

		var bookings int64
		if err := tx.Model(&models.BookedRoom{}).Where("room_id = ?", id).Count(&bookings).Error; err != nil {
			return fmt.Errorf("failed to count bookings of room %d: %w", id, err)
		}
		if bookings > 0 {
			return ErrRoomHasBookings
		}

		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete room %d: %w", id, err)
		}
		return nil
	})
}

func (r *GormRoomRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	types := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Distinct().
		Order("room_type ASC").
		Pluck("room_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room types: %w", err)
	}
	return types, nil
}

// FindAvailable returns rooms with no booking overlapping [checkIn, checkOut).
// An empty roomType matches every type.
func (r *GormRoomRepository) FindAvailable(ctx context.Context, checkIn, checkOut models.StayDate, roomType string) ([]models.Room, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where(`NOT EXISTS (
			SELECT 1 FROM booked_rooms b
			WHERE b.room_id = rooms.id AND b.check_in_date < ? AND b.check_out_date > ?
		)`, checkOut, checkIn)
	if roomType != "" {
		q = q.Where("room_type = ?", roomType)
	}

	rooms := []models.Room{}
	if err := q.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to search available rooms: %w", err)
	}
	return rooms, nil
}
