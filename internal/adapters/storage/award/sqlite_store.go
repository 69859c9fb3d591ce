package award

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/award"
	userDomain "membo/internal/domain/user"
)

const awardColumns = "a.id, a.user_id, a.month, a.title, a.created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new award store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Award by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Award, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+awardColumns+" FROM award a WHERE a.id = ?", id)
	entity, err := scanAward(row)
	if err == sql.ErrNoRows {
		return domain.Award{}, domain.ErrNotFound
	}
	return entity, err
}

// GetByMonthAndTitle retrieves the award for a given month and title.
// POST: Returns domain.ErrNotFound when the month has no such award
func (s *SQLiteStore) GetByMonthAndTitle(ctx context.Context, month, title string) (domain.Award, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+awardColumns+" FROM award a WHERE a.month = ? AND a.title = ?", month, title)
	entity, err := scanAward(row)
	if err == sql.ErrNoRows {
		return domain.Award{}, domain.ErrNotFound
	}
	return entity, err
}

const detailQuery = `SELECT ` + awardColumns + `,
		u.id, u.name, u.email, u.role, u.belt_level, u.status
	FROM award a
	JOIN user u ON u.id = a.user_id`

// GetLatestByMonth returns the newest award for a month joined with its
// recipient.
// POST: Returns domain.ErrNotFound when the month has no award
func (s *SQLiteStore) GetLatestByMonth(ctx context.Context, month string) (domain.Detail, error) {
	rows, err := s.db.QueryContext(ctx,
		detailQuery+" WHERE a.month = ? ORDER BY a.created_at DESC LIMIT 1", month)
	if err != nil {
		return domain.Detail{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Detail{}, err
		}
		return domain.Detail{}, domain.ErrNotFound
	}
	return scanDetail(rows)
}

// Save persists an Award to the database (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Award) error {
	query := `INSERT INTO award (id, user_id, month, title, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id, month=excluded.month, title=excluded.title`
	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.UserID, entity.Month, entity.Title,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes an Award from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM award WHERE id = ?", id)
	return err
}

// List retrieves all awards joined with their recipients, newest month
// first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Detail, error) {
	rows, err := s.db.QueryContext(ctx, detailQuery+" ORDER BY a.month DESC, a.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Detail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, detail)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAward(row rowScanner) (domain.Award, error) {
	var entity domain.Award
	var createdStr string
	err := row.Scan(&entity.ID, &entity.UserID, &entity.Month, &entity.Title, &createdStr)
	if err != nil {
		return domain.Award{}, err
	}
	entity.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Award{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func scanDetail(row rowScanner) (domain.Detail, error) {
	var d domain.Detail
	var createdStr string
	var u userDomain.User
	err := row.Scan(
		&d.ID, &d.UserID, &d.Month, &d.Title, &createdStr,
		&u.ID, &u.Name, &u.Email, &u.Role, &u.BeltLevel, &u.Status,
	)
	if err != nil {
		return domain.Detail{}, err
	}
	d.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Detail{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	d.User = &u
	return d, nil
}
