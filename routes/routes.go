package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traveling-backend/config"
	"traveling-backend/controllers"
	"traveling-backend/middleware"
)

// SetupRouter registers the room and booking routes under /rooms.
func SetupRouter(rc *controllers.RoomController, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.RateLimit(cfg.MaxRequestsPerMin, logger))

	origin := strings.TrimSpace(cfg.CorsOrigin)
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rooms := r.Group("/rooms")
	{
		rooms.POST("/add/new-room", rc.AddNewRoom)
		rooms.GET("/room/types", rc.GetRoomTypes)
		rooms.GET("/all", rc.GetAllRooms)
		rooms.GET("/room/:roomId", rc.GetRoomByID)
		rooms.GET("/room/:roomId/photo", rc.GetRoomPhoto)
		rooms.PUT("/update/:roomId", rc.UpdateRoom)
		rooms.PUT("/edit/:roomId", rc.EditRoom)
		rooms.DELETE("/delete/:roomId", rc.DeleteRoom)
		rooms.GET("/available-rooms", rc.GetAvailableRooms)

		bookings := rooms.Group("/bookings")
		{
			bookings.GET("", rc.GetAllBookings)
			bookings.GET("/room/:roomId", rc.GetBookingsByRoomID)
			bookings.POST("/room/:roomId", rc.SaveBooking)
			bookings.GET("/:confirmationCode", rc.GetBookingByConfirmationCode)
			bookings.DELETE("/:bookingId", rc.CancelBooking)
		}
	}

	return r
}
