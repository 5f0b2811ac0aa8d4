package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"traveling-backend/models"
	"traveling-backend/services"
	"traveling-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// Prices arrive as text so that an empty field reads as absent rather than 0.
type addRoomForm struct {
	Photo     *multipart.FileHeader `form:"photo"`
	RoomType  string                `form:"roomType" binding:"required"`
	RoomPrice *string               `form:"roomPrice"`
}

// updateRoomForm fields are all optional; blank values count as omitted.
type updateRoomForm struct {
	Photo     *multipart.FileHeader `form:"photo"`
	RoomType  *string               `form:"roomType"`
	RoomPrice *string               `form:"roomPrice"`
}

type availableRoomsQuery struct {
	CheckInDate  string `form:"checkInDate" binding:"required"`
	CheckOutDate string `form:"checkOutDate" binding:"required"`
	RoomType     string `form:"roomType"`
}

// RoomResponse is the reduced room view. Booked is only set by the endpoints
// that report availability.
type RoomResponse struct {
	ID        uint    `json:"id"`
	RoomType  string  `json:"roomType"`
	RoomPrice float64 `json:"roomPrice"`
	Booked    *bool   `json:"booked,omitempty"`
}

func newRoomResponse(room *models.Room) RoomResponse {
	return RoomResponse{ID: room.ID, RoomType: room.RoomType, RoomPrice: room.RoomPrice}
}

func newBookedRoomResponse(room *models.Room) RoomResponse {
	resp := newRoomResponse(room)
	booked := room.IsBooked
	resp.Booked = &booked
	return resp
}

// ---------------------------
// Controller
// ---------------------------

type RoomController struct {
	RoomSvc    *services.RoomService
	BookingSvc *services.BookingService
}

func NewRoomController(roomSvc *services.RoomService, bookingSvc *services.BookingService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, BookingSvc: bookingSvc}
}

// bindStatus maps validation failures to 400; anything else, such as a
// broken multipart body, is a 500.
func bindStatus(err error) int {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// optionalField returns nil for a missing or blank form value.
func optionalField(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parsePrice(raw *string) (*float64, error) {
	value := optionalField(raw)
	if value == nil {
		return nil, nil
	}
	price, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		return nil, fmt.Errorf("roomPrice %q is not a number", *value)
	}
	return &price, nil
}

// requiredPrice is parsePrice for forms where the price is mandatory.
func requiredPrice(raw *string) (float64, error) {
	price, err := parsePrice(raw)
	if err != nil {
		return 0, err
	}
	if price == nil {
		return 0, errors.New("roomPrice is required")
	}
	return *price, nil
}

// errorStatus maps service error kinds to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidBookingRequest):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrResourceNotFound), errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRoomHasBookings):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError exposes the error text for client errors only.
func respondError(c *gin.Context, err error, fallback string) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		utils.JSONError(c, status, fallback, err)
		return
	}
	utils.JSONError(c, status, err.Error(), err)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return uint(id), true
}

func readPhoto(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ---------------------------
// Rooms
// ---------------------------

// POST /rooms/add/new-room
func (rc *RoomController) AddNewRoom(c *gin.Context) {
	var form addRoomForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, bindStatus(err), "Invalid room form", err)
		return
	}
	price, err := requiredPrice(form.RoomPrice)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	photo, err := readPhoto(form.Photo)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read photo", err)
		return
	}

	room, err := rc.RoomSvc.AddNewRoom(c.Request.Context(), photo, form.RoomType, price)
	if err != nil {
		respondError(c, err, "Failed to add room")
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// GET /rooms/room/types
func (rc *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := rc.RoomSvc.GetAllRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load room types")
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /rooms/all
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	rooms, err := rc.RoomSvc.GetAllRooms(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /rooms/room/:roomId
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	room, found, err := rc.RoomSvc.GetRoomByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load room")
		return
	}
	if !found {
		utils.JSONError(c, http.StatusNotFound, "Room not found", nil)
		return
	}
	c.JSON(http.StatusOK, newBookedRoomResponse(room))
}

// GET /rooms/room/:roomId/photo
func (rc *RoomController) GetRoomPhoto(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	photo, err := rc.RoomSvc.GetRoomPhotoByRoomID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Error retrieving photo")
		return
	}
	if len(photo) == 0 {
		utils.JSONError(c, http.StatusNotFound, "Room has no photo", nil)
		return
	}
	c.Data(http.StatusOK, mimetype.Detect(photo).String(), photo)
}

// PUT /rooms/update/:roomId
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	var form updateRoomForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, bindStatus(err), "Invalid room form", err)
		return
	}
	price, err := parsePrice(form.RoomPrice)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	photo, err := readPhoto(form.Photo)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read photo", err)
		return
	}

	room, err := rc.RoomSvc.UpdateRoom(c.Request.Context(), id, services.RoomUpdate{
		RoomType:  optionalField(form.RoomType),
		RoomPrice: price,
		Photo:     photo,
	})
	if err != nil {
		respondError(c, err, "Failed to update room")
		return
	}
	c.JSON(http.StatusOK, newBookedRoomResponse(room))
}

// PUT /rooms/edit/:roomId
func (rc *RoomController) EditRoom(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	var form addRoomForm
	if err := c.ShouldBind(&form); err != nil {
		utils.JSONError(c, bindStatus(err), "Invalid room form", err)
		return
	}
	price, err := requiredPrice(form.RoomPrice)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	photo, err := readPhoto(form.Photo)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read photo", err)
		return
	}

	room, err := rc.RoomSvc.EditRoom(c.Request.Context(), id, photo, form.RoomType, price)
	if err != nil {
		respondError(c, err, "Failed to edit room")
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// DELETE /rooms/delete/:roomId
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	err := rc.RoomSvc.DeleteRoom(c.Request.Context(), id)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Room deleted successfully.")
	case errors.Is(err, services.ErrResourceNotFound):
		c.String(http.StatusNotFound, "Room not found.")
	case errors.Is(err, services.ErrRoomHasBookings):
		c.String(http.StatusConflict, "Room has bookings and cannot be deleted.")
	default:
		utils.GetLogger().Sugar().Errorw("delete room failed", "room_id", id, "error", err)
		c.String(http.StatusInternalServerError, "Error deleting room.")
	}
}

// GET /rooms/available-rooms?checkInDate=&checkOutDate=&roomType=
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	var q availableRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkInDate and checkOutDate are required", err)
		return
	}

	checkIn, err := models.ParseStayDate(q.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	checkOut, err := models.ParseStayDate(q.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	rooms, err := rc.RoomSvc.GetAvailableRooms(c.Request.Context(), checkIn, checkOut, q.RoomType)
	if err != nil {
		respondError(c, err, "Failed to search available rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ---------------------------
// Bookings
// ---------------------------

// GET /rooms/bookings
func (rc *RoomController) GetAllBookings(c *gin.Context) {
	bookings, err := rc.BookingSvc.GetAllBookings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /rooms/bookings/room/:roomId
func (rc *RoomController) GetBookingsByRoomID(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	bookings, err := rc.BookingSvc.GetAllBookingsByRoomID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// POST /rooms/bookings/room/:roomId
func (rc *RoomController) SaveBooking(c *gin.Context) {
	id, ok := parseID(c, "roomId")
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid booking request: "+err.Error())
		return
	}

	code, err := rc.BookingSvc.SaveBooking(c.Request.Context(), id, req)
	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			utils.GetLogger().Sugar().Errorw("save booking failed", "room_id", id, "error", err)
			c.String(status, "Error saving booking.")
			return
		}
		c.String(status, err.Error())
		return
	}
	c.String(http.StatusOK, code)
}

// GET /rooms/bookings/:confirmationCode
func (rc *RoomController) GetBookingByConfirmationCode(c *gin.Context) {
	booking, err := rc.BookingSvc.FindBookingByConfirmationCode(c.Request.Context(), c.Param("confirmationCode"))
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DELETE /rooms/bookings/:bookingId
func (rc *RoomController) CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "bookingId")
	if !ok {
		return
	}

	if err := rc.BookingSvc.CancelBooking(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}
	c.Status(http.StatusNoContent)
}
