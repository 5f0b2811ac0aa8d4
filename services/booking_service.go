package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"traveling-backend/models"
	"traveling-backend/repository"
	"traveling-backend/utils"
)

const maxCodeAttempts = 5

var validate = validator.New()

// BookingRequest is the client payload for a new booking. The confirmation
// code and the guest total are computed by the service.
type BookingRequest struct {
	CheckInDate   models.StayDate `json:"checkInDate"`
	CheckOutDate  models.StayDate `json:"checkOutDate"`
	GuestFullName string          `json:"guestFullName" validate:"required,max=255"`
	GuestEmail    string          `json:"guestEmail" validate:"required,email,max=255"`
	NumOfAdults   int             `json:"numOfAdults" validate:"gte=1"`
	NumOfChildren int             `json:"numOfChildren" validate:"gte=0"`
}

type BookingService struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	log      *zap.Logger
}

func NewBookingService(bookings repository.BookingRepository, rooms repository.RoomRepository, log *zap.Logger) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{bookings: bookings, rooms: rooms, log: log.Named("bookings")}
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.BookedRoom, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return bookings, nil
}

func (s *BookingService) GetAllBookingsByRoomID(ctx context.Context, roomID uint) ([]models.BookedRoom, error) {
	bookings, err := s.bookings.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if bookings == nil {
		bookings = []models.BookedRoom{}
	}
	return bookings, nil
}

func validateBookingRequest(req *BookingRequest) error {
	req.GuestFullName = strings.TrimSpace(req.GuestFullName)
	req.GuestEmail = strings.TrimSpace(req.GuestEmail)

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookingRequest, err)
	}
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidBookingRequest)
	}
	if !req.CheckOutDate.After(req.CheckInDate) {
		return fmt.Errorf("%w: check-out date must come after check-in date", ErrInvalidBookingRequest)
	}
	return nil
}

// SaveBooking books the room for the requested stay and returns the new
// confirmation code. The store rejects stays that overlap an existing booking.
func (s *BookingService) SaveBooking(ctx context.Context, roomID uint, req BookingRequest) (string, error) {
	if err := validateBookingRequest(&req); err != nil {
		return "", err
	}

	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: room %d does not exist", ErrInvalidBookingRequest, roomID)
		}
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateConfirmationCode(utils.ConfirmationCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}

		booking := &models.BookedRoom{
			RoomID:           roomID,
			CheckInDate:      req.CheckInDate,
			CheckOutDate:     req.CheckOutDate,
			GuestFullName:    req.GuestFullName,
			GuestEmail:       req.GuestEmail,
			NumOfAdults:      req.NumOfAdults,
			NumOfChildren:    req.NumOfChildren,
			TotalNumOfGuests: req.NumOfAdults + req.NumOfChildren,
			ConfirmationCode: code,
		}

		err = s.bookings.Create(ctx, booking)
		switch {
		case err == nil:
			s.log.Info("booking created",
				zap.Uint("booking_id", booking.ID),
				zap.Uint("room_id", roomID),
				zap.Stringer("check_in", booking.CheckInDate),
				zap.Stringer("check_out", booking.CheckOutDate),
				zap.Int("nights", booking.Nights()),
			)
			return code, nil
		case errors.Is(err, repository.ErrDuplicateCode):
			s.log.Debug("confirmation code collision, retrying", zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, repository.ErrBookingOverlap):
			return "", fmt.Errorf("%w: room %d is already booked between %s and %s",
				ErrInvalidBookingRequest, roomID, req.CheckInDate, req.CheckOutDate)
		case errors.Is(err, repository.ErrNotFound):
			return "", fmt.Errorf("%w: room %d does not exist", ErrInvalidBookingRequest, roomID)
		default:
			return "", fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return "", fmt.Errorf("%w: no unique confirmation code after %d attempts", ErrPersistence, maxCodeAttempts)
}

// FindBookingByConfirmationCode ignores case and separators in code.
func (s *BookingService) FindBookingByConfirmationCode(ctx context.Context, code string) (*models.BookedRoom, error) {
	normalized := utils.NormalizeConfirmationCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty confirmation code", ErrBookingNotFound)
	}

	booking, err := s.bookings.FindByConfirmationCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, normalized)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID uint) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: booking %d", ErrResourceNotFound, bookingID)
		}
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.log.Info("booking cancelled", zap.Uint("booking_id", bookingID))
	return nil
}
