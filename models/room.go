package models

import (
	"time"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomType  string  `gorm:"column:room_type;type:varchar(100);not null;index" json:"roomType"`
	RoomPrice float64 `gorm:"column:room_price;type:decimal(10,2);not null" json:"roomPrice"`

	// Maintained by the booking store in the same transaction that adds or removes a booking.
	IsBooked bool `gorm:"column:is_booked;not null;default:false" json:"booked"`

	// Raw image bytes; encoding/json renders them as base64 for the listing endpoint.
	Photo []byte `gorm:"column:photo;type:longblob" json:"photo,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Bookings []BookedRoom `gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT" json:"-"`
}
