package models

import (
	"time"
)

type BookedRoom struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	RoomID uint `gorm:"column:room_id;not null;index" json:"roomId"`

	CheckInDate  StayDate `gorm:"column:check_in_date;not null;index" json:"checkInDate"`
	CheckOutDate StayDate `gorm:"column:check_out_date;not null" json:"checkOutDate"`

	GuestFullName    string `gorm:"column:guest_full_name;type:varchar(255);not null" json:"guestFullName"`
	GuestEmail       string `gorm:"column:guest_email;type:varchar(255);not null" json:"guestEmail"`
	NumOfAdults      int    `gorm:"column:num_of_adults;not null;default:1" json:"numOfAdults"`
	NumOfChildren    int    `gorm:"column:num_of_children;not null;default:0" json:"numOfChildren"`
	TotalNumOfGuests int    `gorm:"column:total_num_of_guests;not null;default:1" json:"totalNumOfGuests"`

	ConfirmationCode string `gorm:"column:confirmation_code;type:varchar(32);not null;uniqueIndex" json:"confirmationCode"`

	CreatedAt time.Time `json:"createdAt"`
}

// Nights is the number of nights between check-in and check-out.
func (b BookedRoom) Nights() int {
	return int(b.CheckOutDate.Time().Sub(b.CheckInDate.Time()).Hours() / 24)
}
