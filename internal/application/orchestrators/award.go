package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"membo/internal/adapters/email"
	"membo/internal/domain/award"
	"membo/internal/domain/user"
)

// AwardStore is the award store surface award commands need.
type AwardStore interface {
	GetByMonthAndTitle(ctx context.Context, month, title string) (award.Award, error)
	GetByID(ctx context.Context, id string) (award.Award, error)
	Save(ctx context.Context, value award.Award) error
	Delete(ctx context.Context, id string) error
}

// AwardUserStore is the user store surface award commands need.
type AwardUserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	ListByRole(ctx context.Context, role string) ([]user.User, error)
}

// AttendanceCounter counts attended bookings per user in a date window.
type AttendanceCounter interface {
	AttendedCountsByDateRange(ctx context.Context, startDate, endDate string) (map[string]int, error)
}

// CreateAwardInput carries input for manual award creation.
type CreateAwardInput struct {
	UserID string `json:"userId"`
	Month  string `json:"month"`
	Title  string `json:"title"`
}

// CreateAwardDeps holds dependencies for CreateAward.
type CreateAwardDeps struct {
	AwardStore AwardStore
	UserStore  AwardUserStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateAward hands out an award manually.
// PRE: Month is YYYY-MM; Title is non-empty
// POST: At most one award exists per (month, title)
func ExecuteCreateAward(ctx context.Context, input CreateAwardInput, deps CreateAwardDeps) (award.Detail, error) {
	created := award.Award{
		ID:        deps.GenerateID(),
		UserID:    input.UserID,
		Month:     input.Month,
		Title:     input.Title,
		CreatedAt: deps.Now(),
	}
	if err := created.Validate(); err != nil {
		return award.Detail{}, err
	}

	recipient, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return award.Detail{}, err
	}
	if _, err := deps.AwardStore.GetByMonthAndTitle(ctx, input.Month, input.Title); err == nil {
		return award.Detail{}, award.ErrAlreadyExists
	} else if !errors.Is(err, award.ErrNotFound) {
		return award.Detail{}, err
	}

	if err := deps.AwardStore.Save(ctx, created); err != nil {
		return award.Detail{}, err
	}
	slog.Info("award_event", "event", "award_created", "award_id", created.ID, "user_id", input.UserID, "month", input.Month, "title", input.Title)

	return award.Detail{Award: created, User: &recipient}, nil
}

// AutoSelectAwardDeps holds dependencies for AutoSelectAward.
type AutoSelectAwardDeps struct {
	AwardStore   AwardStore
	UserStore    AwardUserStore
	BookingStore AttendanceCounter
	EmailSender  email.Sender // optional: nil skips the congratulation
	ClubName     string
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteAutoSelectAward picks the Member of the Month for a month by
// attended-class count. Members are ranked over the exact calendar month;
// ties go to the earliest-created user, then the lowest ID. Members with
// zero attendance still qualify, so a club with members always gets a
// winner.
// PRE: month is YYYY-MM
// POST: Award persisted for (month, "Member of the Month"); a second call
// for the same month fails with ErrAlreadyExists
func ExecuteAutoSelectAward(ctx context.Context, month string, deps AutoSelectAwardDeps) (award.Detail, error) {
	start, end, err := award.MonthWindow(month)
	if err != nil {
		return award.Detail{}, err
	}

	if _, err := deps.AwardStore.GetByMonthAndTitle(ctx, month, award.TitleMemberOfMonth); err == nil {
		return award.Detail{}, award.ErrAlreadyExists
	} else if !errors.Is(err, award.ErrNotFound) {
		return award.Detail{}, err
	}

	// Ordered by created_at then id, so the scan below is deterministic
	// under ties.
	members, err := deps.UserStore.ListByRole(ctx, user.RoleMember)
	if err != nil {
		return award.Detail{}, err
	}
	if len(members) == 0 {
		return award.Detail{}, award.ErrNoMembers
	}

	counts, err := deps.BookingStore.AttendedCountsByDateRange(ctx, start, end)
	if err != nil {
		return award.Detail{}, err
	}

	winner := members[0]
	best := counts[winner.ID]
	for _, m := range members[1:] {
		if counts[m.ID] > best {
			winner = m
			best = counts[m.ID]
		}
	}

	created := award.Award{
		ID:        deps.GenerateID(),
		UserID:    winner.ID,
		Month:     month,
		Title:     award.TitleMemberOfMonth,
		CreatedAt: deps.Now(),
	}
	if err := deps.AwardStore.Save(ctx, created); err != nil {
		return award.Detail{}, err
	}
	slog.Info("award_event", "event", "member_of_month_selected", "award_id", created.ID, "user_id", winner.ID, "month", month, "attended", best)

	// Best-effort congratulation; selection stands even if mail fails.
	if deps.EmailSender != nil && winner.Email != "" {
		req := email.AwardCongratulation(winner.Email, winner.Name, deps.ClubName, month)
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Error("award_email_failed", "error", err, "user_id", winner.ID, "month", month)
		}
	}

	return award.Detail{Award: created, User: &winner}, nil
}

// DeleteAwardDeps holds dependencies for DeleteAward.
type DeleteAwardDeps struct {
	AwardStore AwardStore
}

// ExecuteDeleteAward revokes an award.
// POST: Returns award.ErrNotFound when the award does not exist
func ExecuteDeleteAward(ctx context.Context, id string, deps DeleteAwardDeps) error {
	if id == "" {
		return errors.New("award id is required")
	}
	if _, err := deps.AwardStore.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deps.AwardStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("award_event", "event", "award_deleted", "award_id", id)
	return nil
}
