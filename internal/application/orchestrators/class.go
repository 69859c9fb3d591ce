package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"membo/internal/domain/class"
	"membo/internal/domain/setting"
)

// ClassStore is the class store surface class commands need.
type ClassStore interface {
	GetByID(ctx context.Context, id string) (class.Class, error)
	Save(ctx context.Context, value class.Class) error
	Delete(ctx context.Context, id string) error
}

// SettingsReader reads the singleton settings row.
type SettingsReader interface {
	Get(ctx context.Context) (setting.Settings, error)
}

// CreateClassInput carries input for class creation.
type CreateClassInput struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	MaxSlots int    `json:"maxSlots"`
}

// CreateClassDeps holds dependencies for class commands.
type CreateClassDeps struct {
	ClassStore    ClassStore
	SettingsStore SettingsReader
	GenerateID    func() string
	Now           func() time.Time
}

// requireStandalone rejects local schedule edits while classes come from
// the external provider.
func requireStandalone(ctx context.Context, settings SettingsReader) error {
	s, err := settings.Get(ctx)
	if err != nil {
		return err
	}
	if s.IsIntegrated() {
		return class.ErrIntegratedMode
	}
	return nil
}

// ExecuteCreateClass adds a class to the local schedule.
// PRE: mode is standalone
// POST: Class persisted with the given capacity
func ExecuteCreateClass(ctx context.Context, input CreateClassInput, deps CreateClassDeps) (class.Class, error) {
	if err := requireStandalone(ctx, deps.SettingsStore); err != nil {
		return class.Class{}, err
	}

	created := class.Class{
		ID:        deps.GenerateID(),
		Name:      input.Name,
		Date:      input.Date,
		Time:      input.Time,
		MaxSlots:  input.MaxSlots,
		CreatedAt: deps.Now(),
	}
	if err := created.Validate(); err != nil {
		return class.Class{}, err
	}
	if err := deps.ClassStore.Save(ctx, created); err != nil {
		return class.Class{}, err
	}
	slog.Info("class_event", "event", "class_created", "class_id", created.ID, "date", created.Date)
	return created, nil
}

// UpdateClassInput carries input for class edits.
type UpdateClassInput struct {
	ID       string
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	MaxSlots *int    `json:"maxSlots"`
}

// ExecuteUpdateClass edits a local class.
// PRE: mode is standalone
// POST: Omitted fields keep their values
func ExecuteUpdateClass(ctx context.Context, input UpdateClassInput, deps CreateClassDeps) (class.Class, error) {
	if err := requireStandalone(ctx, deps.SettingsStore); err != nil {
		return class.Class{}, err
	}

	current, err := deps.ClassStore.GetByID(ctx, input.ID)
	if err != nil {
		return class.Class{}, err
	}
	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Date != nil {
		current.Date = *input.Date
	}
	if input.Time != nil {
		current.Time = *input.Time
	}
	if input.MaxSlots != nil {
		current.MaxSlots = *input.MaxSlots
	}
	if err := current.Validate(); err != nil {
		return class.Class{}, err
	}
	if err := deps.ClassStore.Save(ctx, current); err != nil {
		return class.Class{}, err
	}
	slog.Info("class_event", "event", "class_updated", "class_id", current.ID)
	return current, nil
}

// ExecuteDeleteClass removes a local class.
// PRE: mode is standalone
// POST: Returns class.ErrNotFound when the class does not exist
func ExecuteDeleteClass(ctx context.Context, id string, deps CreateClassDeps) error {
	if err := requireStandalone(ctx, deps.SettingsStore); err != nil {
		return err
	}
	if _, err := deps.ClassStore.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deps.ClassStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("class_event", "event", "class_deleted", "class_id", id)
	return nil
}
