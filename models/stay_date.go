package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// StayDate is a calendar day. It is stored in a DATE column and exchanged as YYYY-MM-DD.
type StayDate struct {
	datatypes.Date
}

func NewStayDate(t time.Time) StayDate {
	y, m, d := t.Date()
	return StayDate{Date: datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

// ParseStayDate accepts "2006-01-02" and, like the booking forms of the frontend, RFC3339.
func ParseStayDate(raw string) (StayDate, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return NewStayDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return StayDate{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return NewStayDate(t), nil
}

func (d StayDate) Time() time.Time {
	return time.Time(d.Date)
}

func (d StayDate) IsZero() bool {
	return d.Time().IsZero()
}

func (d StayDate) Before(other StayDate) bool {
	return d.Time().Before(other.Time())
}

func (d StayDate) After(other StayDate) bool {
	return d.Time().After(other.Time())
}

func (d StayDate) String() string {
	return d.Time().Format(DateLayout)
}

// Scan normalises whatever location the driver hands back to a UTC midnight.
func (d *StayDate) Scan(value interface{}) error {
	if err := d.Date.Scan(value); err != nil {
		return err
	}
	*d = NewStayDate(d.Time())
	return nil
}

func (d StayDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *StayDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = StayDate{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*d = StayDate{}
		return nil
	}
	parsed, err := ParseStayDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
