package user

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/user"
)

const userColumns = "id, name, email, phone, role, belt_level, status, password_hash, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE id = ?", id)
	return scanUser(row)
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE email = ?", email)
	return scanUser(row)
}

// Save persists a User to the database (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	query := `INSERT INTO user (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, email=excluded.email, phone=excluded.phone,
			role=excluded.role, belt_level=excluded.belt_level, status=excluded.status,
			password_hash=excluded.password_hash`

	var phone any
	if entity.Phone != "" {
		phone = entity.Phone
	}
	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.Name, entity.Email, phone,
		entity.Role, entity.BeltLevel, entity.Status,
		entity.PasswordHash, entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a User from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM user WHERE id = ?", id)
	return err
}

// List retrieves all users, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx, "SELECT "+userColumns+" FROM user ORDER BY created_at DESC")
}

// ListByRole retrieves all users with the given role, oldest first. The
// stable join-order matters for deterministic award tie-breaking.
func (s *SQLiteStore) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	return s.list(ctx, "SELECT "+userColumns+" FROM user WHERE role = ? ORDER BY created_at ASC, id ASC", role)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.User
	for rows.Next() {
		entity, err := scanUserRow(rows)
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

func scanUser(row *sql.Row) (domain.User, error) {
	entity, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	return entity, err
}

func scanUserRow(row rowScanner) (domain.User, error) {
	var entity domain.User
	var phone sql.NullString
	var createdStr string
	err := row.Scan(
		&entity.ID, &entity.Name, &entity.Email, &phone,
		&entity.Role, &entity.BeltLevel, &entity.Status,
		&entity.PasswordHash, &createdStr,
	)
	if err != nil {
		return domain.User{}, err
	}
	if phone.Valid {
		entity.Phone = phone.String
	}
	entity.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
