package award

import (
	"errors"
	"time"

	"membo/internal/domain/user"
)

// TitleMemberOfMonth is the recognition handed out by auto-selection.
const TitleMemberOfMonth = "Member of the Month"

// Domain errors
var (
	ErrNotFound      = errors.New("award not found")
	ErrAlreadyExists = errors.New("award already exists for this month")
	ErrNoMembers     = errors.New("no members found for this month")
)

// Award records a monthly recognition for one user. At most one award
// exists per (month, title) pair.
type Award struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Month     string    `json:"month"` // YYYY-MM
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Detail is an award joined with the recognized user.
type Detail struct {
	Award
	User *user.User `json:"user,omitempty"`
}

// Validate checks if the Award has valid data.
// PRE: Award struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Award) Validate() error {
	if a.UserID == "" {
		return errors.New("award must be associated with a user")
	}
	if a.Title == "" {
		return errors.New("award title cannot be empty")
	}
	if _, err := time.Parse("2006-01", a.Month); err != nil {
		return errors.New("award month must be in YYYY-MM format")
	}
	return nil
}

// MonthWindow returns the half-open date range [first, next) covering the
// given YYYY-MM month, as YYYY-MM-DD strings.
// PRE: month is YYYY-MM
// POST: start is the first day of the month, end the first day of the next
func MonthWindow(month string) (start, end string, err error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", errors.New("month must be in YYYY-MM format")
	}
	next := first.AddDate(0, 1, 0)
	return first.Format("2006-01-02"), next.Format("2006-01-02"), nil
}

// CurrentMonth returns the YYYY-MM key for the given time.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
