package branding

import (
	"context"
	"database/sql"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/branding"
)

const brandingColumns = "key, name, tagline, about_markdown, primary_color"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new branding store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByKey retrieves a branding tenant by its key.
// PRE: key is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByKey(ctx context.Context, key string) (domain.Tenant, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+brandingColumns+" FROM branding WHERE key = ?", key)
	entity, err := scanTenant(row)
	if err == sql.ErrNoRows {
		return domain.Tenant{}, domain.ErrNotFound
	}
	return entity, err
}

// Save persists a branding tenant (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Tenant) error {
	query := `INSERT INTO branding (` + brandingColumns + `) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name=excluded.name, tagline=excluded.tagline,
			about_markdown=excluded.about_markdown, primary_color=excluded.primary_color`
	_, err := s.db.ExecContext(ctx, query,
		entity.Key, entity.Name, entity.Tagline, entity.AboutMarkdown, entity.PrimaryColor,
	)
	return err
}

// List retrieves all branding tenants ordered by key.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+brandingColumns+" FROM branding ORDER BY key ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Tenant
	for rows.Next() {
		entity, err := scanTenant(rows)
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

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var entity domain.Tenant
	err := row.Scan(&entity.Key, &entity.Name, &entity.Tagline, &entity.AboutMarkdown, &entity.PrimaryColor)
	if err != nil {
		return domain.Tenant{}, err
	}
	return entity, nil
}
