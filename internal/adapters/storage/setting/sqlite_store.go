package setting

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/setting"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new settings store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the singleton settings row. When the row does not exist yet
// it is created from domain defaults, so callers always see a row.
// POST: Returns a persisted settings row
func (s *SQLiteStore) Get(ctx context.Context) (domain.Settings, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, mode, api_config, updated_at FROM setting WHERE id = ?", domain.SingletonID)

	var entity domain.Settings
	var updatedStr string
	err := row.Scan(&entity.ID, &entity.Mode, &entity.APIConfig, &updatedStr)
	if err == sql.ErrNoRows {
		defaults := domain.Defaults()
		defaults.UpdatedAt = time.Now().UTC()
		if err := s.Save(ctx, defaults); err != nil {
			return domain.Settings{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	entity.UpdatedAt, err = storage.ParseStoredTime(updatedStr)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return entity, nil
}

// Save persists the settings row (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted under the singleton ID
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Settings) error {
	query := `INSERT INTO setting (id, mode, api_config, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode, api_config=excluded.api_config, updated_at=excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query,
		domain.SingletonID, entity.Mode, entity.APIConfig,
		entity.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}
