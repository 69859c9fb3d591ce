package class

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/class"
)

const classColumns = "id, name, date, time, max_slots, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Class by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Class, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+classColumns+" FROM class WHERE id = ?", id)
	entity, err := scanClass(row)
	if err == sql.ErrNoRows {
		return domain.Class{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a Class to the database (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Class) error {
	query := `INSERT INTO class (` + classColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, date=excluded.date, time=excluded.time,
			max_slots=excluded.max_slots`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.Name, entity.Date, entity.Time,
		entity.MaxSlots, entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Class from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class WHERE id = ?", id)
	return err
}

// List retrieves all classes ordered by date ascending.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+classColumns+" FROM class ORDER BY date ASC, time ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Class
	for rows.Next() {
		entity, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClass(row rowScanner) (domain.Class, error) {
	var entity domain.Class
	var createdStr string
	err := row.Scan(&entity.ID, &entity.Name, &entity.Date, &entity.Time, &entity.MaxSlots, &createdStr)
	if err != nil {
		return domain.Class{}, err
	}
	entity.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Class{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
