// Package repository holds the room and booking stores used by the services.
package repository

import (
	"context"
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"traveling-backend/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrBookingOverlap  = errors.New("room already booked for the selected dates")
	ErrDuplicateCode   = errors.New("confirmation code already in use")
	ErrRoomHasBookings = errors.New("room has active bookings")
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindPhoto(ctx context.Context, id uint) ([]byte, error)
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	DistinctTypes(ctx context.Context) ([]string, error)
	FindAvailable(ctx context.Context, checkIn, checkOut models.StayDate, roomType string) ([]models.Room, error)
}

type BookingRepository interface {
	FindAll(ctx context.Context) ([]models.BookedRoom, error)
	FindByRoomID(ctx context.Context, roomID uint) ([]models.BookedRoom, error)
	FindByID(ctx context.Context, id uint) (*models.BookedRoom, error)
	FindByConfirmationCode(ctx context.Context, code string) (*models.BookedRoom, error)
	// Create inserts the booking and flags its room as booked. It fails with
	// ErrNotFound when the room is missing, ErrBookingOverlap when the dates
	// collide with an existing booking and ErrDuplicateCode on a code clash.
	Create(ctx context.Context, booking *models.BookedRoom) error
	// Delete removes the booking and recomputes the booked flag of its room.
	Delete(ctx context.Context, id uint) error
}

// isDuplicateKeyError detects unique index violations across drivers.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	// SQLite drivers that do not translate errors report the raw message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
