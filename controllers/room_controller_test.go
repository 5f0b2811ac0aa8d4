package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"traveling-backend/config"
	"traveling-backend/controllers"
	"traveling-backend/models"
	"traveling-backend/repository"
	"traveling-backend/routes"
	"traveling-backend/services"
)

var pngPhoto = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

const frontendOrigin = "http://localhost:5173"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	rc := controllers.NewRoomController(
		services.NewRoomService(roomRepo, nil, time.Minute, 1<<20, zap.NewNop()),
		services.NewBookingService(bookingRepo, roomRepo, zap.NewNop()),
	)
	return routes.SetupRouter(rc, &config.Config{CorsOrigin: frontendOrigin}, zap.NewNop())
}

func roomForm(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		part, err := w.CreateFormFile("photo", "room.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func do(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addRoom(t *testing.T, r *gin.Engine, roomType, price string, photo []byte) controllers.RoomResponse {
	t.Helper()
	body, ct := roomForm(t, map[string]string{"roomType": roomType, "roomPrice": price}, photo)
	w := do(r, http.MethodPost, "/rooms/add/new-room", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp controllers.RoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func bookingJSON(in, out string) *bytes.Buffer {
	return bytes.NewBufferString(fmt.Sprintf(`{
		"checkInDate": %q,
		"checkOutDate": %q,
		"guestFullName": "Jane Doe",
		"guestEmail": "jane@example.com",
		"numOfAdults": 1,
		"numOfChildren": 0
	}`, in, out))
}

func saveBooking(r *gin.Engine, roomID uint, in, out string) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, fmt.Sprintf("/rooms/bookings/room/%d", roomID), bookingJSON(in, out), "application/json")
}

func getRoom(t *testing.T, r *gin.Engine, id uint) controllers.RoomResponse {
	t.Helper()
	w := do(r, http.MethodGet, fmt.Sprintf("/rooms/room/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp controllers.RoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBookingLifecycle(t *testing.T) {
	r := setupRouter(t)

	room := addRoom(t, r, "Single", "100.00", nil)
	assert.Equal(t, uint(1), room.ID)
	assert.Equal(t, "Single", room.RoomType)
	assert.Equal(t, 100.0, room.RoomPrice)
	assert.Nil(t, room.Booked)

	w := saveBooking(r, room.ID, "2024-01-10", "2024-01-12")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code := w.Body.String()
	assert.Regexp(t, `^[A-Z0-9]{10}$`, code)

	w = do(r, http.MethodGet, "/rooms/bookings/"+code, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var booking models.BookedRoom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, code, booking.ConfirmationCode)
	assert.Equal(t, room.ID, booking.RoomID)
	assert.Equal(t, "2024-01-10", booking.CheckInDate.String())
	assert.Equal(t, "2024-01-12", booking.CheckOutDate.String())
	assert.Equal(t, 1, booking.TotalNumOfGuests)

	w = do(r, http.MethodGet, "/rooms/bookings/"+strings.ToLower(code), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	fetched := getRoom(t, r, room.ID)
	require.NotNil(t, fetched.Booked)
	assert.True(t, *fetched.Booked)

	w = do(r, http.MethodDelete, fmt.Sprintf("/rooms/bookings/%d", booking.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	fetched = getRoom(t, r, room.ID)
	require.NotNil(t, fetched.Booked)
	assert.False(t, *fetched.Booked)

	w = do(r, http.MethodGet, fmt.Sprintf("/rooms/bookings/room/%d", room.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodDelete, fmt.Sprintf("/rooms/bookings/%d", booking.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveBooking_Rejections(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Double", "150", nil)

	require.Equal(t, http.StatusOK, saveBooking(r, room.ID, "2024-03-01", "2024-03-05").Code)

	w := saveBooking(r, room.ID, "2024-03-04", "2024-03-06")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")

	w = saveBooking(r, room.ID, "2024-03-10", "2024-03-09")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = saveBooking(r, 999, "2024-03-10", "2024-03-12")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, fmt.Sprintf("/rooms/bookings/room/%d", room.ID),
		bytes.NewBufferString(`{"checkInDate":"next week"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusOK, saveBooking(r, room.ID, "2024-03-05", "2024-03-07").Code, "back-to-back stay")

	w = do(r, http.MethodGet, "/rooms/bookings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.BookedRoom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestGetBookingByConfirmationCode_Unknown(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/rooms/bookings/ABC123", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestUpdateRoom_KeepsPhoto(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Suite", "300", pngPhoto)

	body, ct := roomForm(t, map[string]string{"roomPrice": "320.5"}, nil)
	w := do(r, http.MethodPut, fmt.Sprintf("/rooms/update/%d", room.ID), body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated controllers.RoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Suite", updated.RoomType)
	assert.Equal(t, 320.5, updated.RoomPrice)
	require.NotNil(t, updated.Booked)
	assert.False(t, *updated.Booked)

	w = do(r, http.MethodGet, fmt.Sprintf("/rooms/room/%d/photo", room.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngPhoto, w.Body.Bytes())

	w = do(r, http.MethodGet, "/rooms/all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, pngPhoto, rooms[0].Photo)
}

func TestUpdateRoom_WithoutBody(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Suite", "300", nil)

	w := do(r, http.MethodPut, fmt.Sprintf("/rooms/update/%d", room.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPut, "/rooms/update/77", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditRoom(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Single", "100", pngPhoto)

	body, ct := roomForm(t, map[string]string{"roomType": "Double", "roomPrice": "180"}, nil)
	w := do(r, http.MethodPut, fmt.Sprintf("/rooms/edit/%d", room.ID), body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"roomType":"Double","roomPrice":180}`, room.ID), w.Body.String())

	body, ct = roomForm(t, map[string]string{"roomType": "Double"}, nil)
	w = do(r, http.MethodPut, fmt.Sprintf("/rooms/edit/%d", room.ID), body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, fmt.Sprintf("/rooms/room/%d/photo", room.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pngPhoto, w.Body.Bytes())
}

func TestAddNewRoom_BadInput(t *testing.T) {
	r := setupRouter(t)

	body, ct := roomForm(t, map[string]string{"roomType": "Single"}, nil)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/rooms/add/new-room", body, ct).Code)

	body, ct = roomForm(t, map[string]string{"roomType": "Single", "roomPrice": "cheap"}, nil)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/rooms/add/new-room", body, ct).Code)

	body, ct = roomForm(t, map[string]string{"roomType": "Single", "roomPrice": "-5"}, nil)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/rooms/add/new-room", body, ct).Code)

	body, ct = roomForm(t, map[string]string{"roomType": "Single", "roomPrice": "50"}, []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/rooms/add/new-room", body, ct).Code)

	broken := bytes.NewBufferString("--nope\r\ngarbage")
	w := do(r, http.MethodPost, "/rooms/add/new-room", broken, "multipart/form-data; boundary=xyz")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteRoom(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Single", "100", nil)
	require.Equal(t, http.StatusOK, saveBooking(r, room.ID, "2024-01-10", "2024-01-12").Code)

	w := do(r, http.MethodDelete, fmt.Sprintf("/rooms/delete/%d", room.ID), nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Room has bookings and cannot be deleted.", w.Body.String())

	w = do(r, http.MethodDelete, "/rooms/delete/404", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found.", w.Body.String())

	empty := addRoom(t, r, "Suite", "300", nil)
	w = do(r, http.MethodDelete, fmt.Sprintf("/rooms/delete/%d", empty.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Room deleted successfully.", w.Body.String())

	w = do(r, http.MethodGet, fmt.Sprintf("/rooms/room/%d", empty.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoomByID_BadID(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/rooms/room/abc", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/rooms/room/5", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/rooms/room/5/photo", nil, "").Code)
}

func TestRoomTypesAndAvailability(t *testing.T) {
	r := setupRouter(t)
	single := addRoom(t, r, "Single", "100", nil)
	addRoom(t, r, "Suite", "300", nil)
	other := addRoom(t, r, "Single", "110", nil)

	w := do(r, http.MethodGet, "/rooms/room/types", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Single","Suite"]`, w.Body.String())

	require.Equal(t, http.StatusOK, saveBooking(r, single.ID, "2024-06-01", "2024-06-05").Code)

	w = do(r, http.MethodGet, "/rooms/available-rooms?checkInDate=2024-06-02&checkOutDate=2024-06-03&roomType=Single", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, other.ID, rooms[0].ID)

	w = do(r, http.MethodGet, "/rooms/available-rooms?checkInDate=2024-06-03&checkOutDate=2024-06-02", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/rooms/available-rooms?checkInDate=2024-06-03", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", frontendOrigin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, frontendOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddNewRoom_BlankFields(t *testing.T) {
	r := setupRouter(t)

	for _, fields := range []map[string]string{
		{"roomType": "Single", "roomPrice": ""},
		{"roomType": "Single", "roomPrice": "   "},
		{"roomType": "", "roomPrice": "100"},
		{"roomType": "  ", "roomPrice": "100"},
	} {
		body, ct := roomForm(t, fields, nil)
		w := do(r, http.MethodPost, "/rooms/add/new-room", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code, "fields %v: %s", fields, w.Body.String())
	}

	w := do(r, http.MethodGet, "/rooms/all", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEditRoom_BlankFields(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Single", "100", nil)

	for _, fields := range []map[string]string{
		{"roomType": "Double", "roomPrice": ""},
		{"roomType": "", "roomPrice": "150"},
	} {
		body, ct := roomForm(t, fields, nil)
		w := do(r, http.MethodPut, fmt.Sprintf("/rooms/edit/%d", room.ID), body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code, "fields %v: %s", fields, w.Body.String())
	}

	fetched := getRoom(t, r, room.ID)
	assert.Equal(t, "Single", fetched.RoomType)
	assert.Equal(t, 100.0, fetched.RoomPrice)
}

func TestUpdateRoom_BlankFieldsAreLeftUnchanged(t *testing.T) {
	r := setupRouter(t)
	room := addRoom(t, r, "Single", "100.00", nil)

	body, ct := roomForm(t, map[string]string{"roomType": "Double", "roomPrice": ""}, nil)
	w := do(r, http.MethodPut, fmt.Sprintf("/rooms/update/%d", room.ID), body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	fetched := getRoom(t, r, room.ID)
	assert.Equal(t, "Double", fetched.RoomType)
	assert.Equal(t, 100.0, fetched.RoomPrice)

	body, ct = roomForm(t, map[string]string{"roomType": " ", "roomPrice": "125"}, nil)
	w = do(r, http.MethodPut, fmt.Sprintf("/rooms/update/%d", room.ID), body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	fetched = getRoom(t, r, room.ID)
	assert.Equal(t, "Double", fetched.RoomType)
	assert.Equal(t, 125.0, fetched.RoomPrice)

	body, ct = roomForm(t, map[string]string{"roomPrice": "a lot"}, nil)
	w = do(r, http.MethodPut, fmt.Sprintf("/rooms/update/%d", room.ID), body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
