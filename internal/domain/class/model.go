package class

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrNotFound       = errors.New("class not found")
	ErrIntegratedMode = errors.New("cannot manage classes in integrated mode")
)

// Class is a scheduled training session with a fixed capacity.
type Class struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24h
	MaxSlots  int       `json:"maxSlots"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks if the Class has valid data.
// PRE: Class struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MaxSlots >= 1, Date parses as YYYY-MM-DD
func (c *Class) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("class name cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return errors.New("class date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", c.Time); err != nil {
		return errors.New("class time must be in HH:MM format")
	}
	if c.MaxSlots < 1 {
		return errors.New("class must have at least one slot")
	}
	return nil
}
