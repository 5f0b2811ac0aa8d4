package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"traveling-backend/models"
	"traveling-backend/repository"
)

const roomTypesCacheKey = "rooms:types"

type RoomService struct {
	repo          repository.RoomRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	maxPhotoBytes int64
	log           *zap.Logger
}

// RoomUpdate carries the fields of a partial update; nil or empty fields are left unchanged.
type RoomUpdate struct {
	RoomType  *string
	RoomPrice *float64
	Photo     []byte
}

// NewRoomService wires the room store. cache may be nil, in which case room
// types are always read from the store.
func NewRoomService(repo repository.RoomRepository, cache *redis.Client, cacheTTL time.Duration, maxPhotoBytes int64, log *zap.Logger) *RoomService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomService{
		repo:          repo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		maxPhotoBytes: maxPhotoBytes,
		log:           log.Named("rooms"),
	}
}

func normalizeRoomType(roomType string) (string, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return "", fmt.Errorf("%w: room type is required", ErrInvalidInput)
	}
	return roomType, nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return fmt.Errorf("%w: room price must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

func (s *RoomService) AddNewRoom(ctx context.Context, photo []byte, roomType string, roomPrice float64) (*models.Room, error) {
	roomType, err := normalizeRoomType(roomType)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(roomPrice); err != nil {
		return nil, err
	}
	if err := validatePhoto(photo, s.maxPhotoBytes); err != nil {
		return nil, err
	}

	room := &models.Room{RoomType: roomType, RoomPrice: roomPrice}
	if len(photo) > 0 {
		room.Photo = photo
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.invalidateRoomTypes(ctx)
	s.log.Info("room created", zap.Uint("room_id", room.ID), zap.String("room_type", room.RoomType))
	return room, nil
}

func (s *RoomService) GetAllRoomTypes(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, roomTypesCacheKey).Result()
		switch {
		case err == nil:
			var types []string
			if jsonErr := json.Unmarshal([]byte(cached), &types); jsonErr == nil {
				return types, nil
			}
			s.log.Warn("discarding malformed room types cache entry")
		case !errors.Is(err, redis.Nil):
			s.log.Warn("room types cache read failed", zap.Error(err))
		}
	}

	types, err := s.repo.DistinctTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(types); err == nil {
			if err := s.cache.Set(ctx, roomTypesCacheKey, string(data), s.cacheTTL).Err(); err != nil {
				s.log.Warn("room types cache write failed", zap.Error(err))
			}
		}
	}
	return types, nil
}

func (s *RoomService) invalidateRoomTypes(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, roomTypesCacheKey).Err(); err != nil {
		s.log.Warn("room types cache invalidation failed", zap.Error(err))
	}
}

func (s *RoomService) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return rooms, nil
}

// GetRoomByID reports found=false, with a nil error, when the room does not exist.
func (s *RoomService) GetRoomByID(ctx context.Context, id uint) (*models.Room, bool, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return room, true, nil
}

func (s *RoomService) GetRoomPhotoByRoomID(ctx context.Context, id uint) ([]byte, error) {
	photo, err := s.repo.FindPhoto(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrResourceNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrPhotoRetrieval, err)
	}
	return photo, nil
}

// UpdateRoom merges the supplied fields into the stored room. Without a new
// photo the stored one is read back and written unchanged.
func (s *RoomService) UpdateRoom(ctx context.Context, id uint, upd RoomUpdate) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrResourceNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if upd.RoomType != nil {
		roomType, err := normalizeRoomType(*upd.RoomType)
		if err != nil {
			return nil, err
		}
		room.RoomType = roomType
	}
	if upd.RoomPrice != nil {
		if err := validatePrice(*upd.RoomPrice); err != nil {
			return nil, err
		}
		room.RoomPrice = *upd.RoomPrice
	}

	if len(upd.Photo) > 0 {
		if err := validatePhoto(upd.Photo, s.maxPhotoBytes); err != nil {
			return nil, err
		}
		room.Photo = upd.Photo
	} else {
		photo, err := s.GetRoomPhotoByRoomID(ctx, id)
		if err != nil {
			return nil, err
		}
		room.Photo = photo
	}

	if err := s.repo.Save(ctx, room); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrResourceNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.invalidateRoomTypes(ctx)
	s.log.Info("room updated", zap.Uint("room_id", room.ID))
	return room, nil
}

// EditRoom replaces type and price; the photo is replaced only when one is given.
func (s *RoomService) EditRoom(ctx context.Context, id uint, photo []byte, roomType string, roomPrice float64) (*models.Room, error) {
	return s.UpdateRoom(ctx, id, RoomUpdate{
		RoomType:  &roomType,
		RoomPrice: &roomPrice,
		Photo:     photo,
	})
}

func (s *RoomService) DeleteRoom(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%w: room %d", ErrResourceNotFound, id)
		case errors.Is(err, repository.ErrRoomHasBookings):
			return fmt.Errorf("%w: room %d", ErrRoomHasBookings, id)
		default:
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}

	s.invalidateRoomTypes(ctx)
	s.log.Info("room deleted", zap.Uint("room_id", id))
	return nil
}

// GetAvailableRooms lists rooms free for the whole stay. An empty roomType matches all types.
func (s *RoomService) GetAvailableRooms(ctx context.Context, checkIn, checkOut models.StayDate, roomType string) ([]models.Room, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInput)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrInvalidInput)
	}

	rooms, err := s.repo.FindAvailable(ctx, checkIn, checkOut, strings.TrimSpace(roomType))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return rooms, nil
}
