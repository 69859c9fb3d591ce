package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"membo/internal/adapters/storage"
	domain "membo/internal/domain/booking"
	classDomain "membo/internal/domain/class"
	userDomain "membo/internal/domain/user"
)

const bookingColumns = "b.id, b.user_id, b.class_id, b.status, b.created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM booking b WHERE b.id = ?", id)
	entity, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return entity, err
}

// GetDetailByID retrieves a booking joined with its class and user.
// PRE: id is non-empty
// POST: Returns the joined record or domain.ErrNotFound
func (s *SQLiteStore) GetDetailByID(ctx context.Context, id string) (domain.Detail, error) {
	rows, err := s.db.QueryContext(ctx, detailQuery+" WHERE b.id = ?", id)
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

// GetActiveByUserAndClass returns the user's booked-or-attended booking on
// a class, if any.
// POST: Returns domain.ErrNotFound when no active booking exists
func (s *SQLiteStore) GetActiveByUserAndClass(ctx context.Context, userID, classID string) (domain.Booking, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM booking b WHERE b.user_id = ? AND b.class_id = ? AND b.status != ? LIMIT 1",
		userID, classID, domain.StatusCanceled)
	entity, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	return entity, err
}

// InsertIfCapacity inserts the booking only while the class has a free
// slot. The capacity check and the insert happen in one statement, so two
// concurrent requests cannot both take the last slot. The partial unique
// index on (user_id, class_id) backstops duplicate active bookings.
// PRE: value has been validated; maxSlots is the class capacity
// POST: Row inserted, or ErrClassFull / ErrAlreadyBooked
func (s *SQLiteStore) InsertIfCapacity(ctx context.Context, value domain.Booking, maxSlots int) error {
	query := `INSERT INTO booking (id, user_id, class_id, status, created_at)
		SELECT ?, ?, ?, ?, ?
		WHERE (SELECT COUNT(*) FROM booking WHERE class_id = ? AND status != ?) < ?`

	result, err := s.db.ExecContext(ctx, query,
		value.ID, value.UserID, value.ClassID, value.Status,
		value.CreatedAt.Format(time.RFC3339Nano),
		value.ClassID, domain.StatusCanceled, maxSlots,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyBooked
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrClassFull
	}
	return nil
}

// UpdateStatus sets the status of one booking.
// PRE: status is a valid lifecycle state
// POST: Returns domain.ErrNotFound when the booking does not exist
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE booking SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusBulk applies all updates in one transaction, all-or-nothing.
// PRE: every update carries a valid status
// POST: Either every row is updated or none are
func (s *SQLiteStore) UpdateStatusBulk(ctx context.Context, updates []StatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		result, err := tx.ExecContext(ctx, "UPDATE booking SET status = ? WHERE id = ?", u.Status, u.BookingID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("booking %s: %w", u.BookingID, domain.ErrNotFound)
		}
	}
	return tx.Commit()
}

// Delete removes a Booking from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM booking WHERE id = ?", id)
	return err
}

// CountActiveByClassID counts non-canceled bookings on a class.
func (s *SQLiteStore) CountActiveByClassID(ctx context.Context, classID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking WHERE class_id = ? AND status != ?",
		classID, domain.StatusCanceled).Scan(&count)
	return count, err
}

const detailQuery = `SELECT ` + bookingColumns + `,
		c.id, c.name, c.date, c.time, c.max_slots,
		u.id, u.name, u.email, u.role, u.belt_level, u.status
	FROM booking b
	JOIN class c ON c.id = b.class_id
	JOIN user u ON u.id = b.user_id`

// ListByUserID retrieves all bookings for a user, newest first, joined
// with their classes.
func (s *SQLiteStore) ListByUserID(ctx context.Context, userID string) ([]domain.Detail, error) {
	return s.listDetails(ctx, detailQuery+" WHERE b.user_id = ? ORDER BY b.created_at DESC", userID)
}

// ListByClassID retrieves all bookings on a class.
func (s *SQLiteStore) ListByClassID(ctx context.Context, classID string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM booking b WHERE b.class_id = ? ORDER BY b.created_at ASC", classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Booking
	for rows.Next() {
		entity, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// List retrieves bookings joined with user and class, newest first.
// PRE: limit >= 0; zero means no limit
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Detail, error) {
	query := detailQuery + " ORDER BY b.created_at DESC"
	if limit > 0 {
		return s.listDetails(ctx, query+" LIMIT ?", limit)
	}
	return s.listDetails(ctx, query)
}

// AttendedCountsByDateRange returns attended-booking counts per user for
// classes dated in [startDate, endDate).
// PRE: startDate and endDate are YYYY-MM-DD
func (s *SQLiteStore) AttendedCountsByDateRange(ctx context.Context, startDate, endDate string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.user_id, COUNT(*)
			FROM booking b JOIN class c ON c.id = b.class_id
			WHERE b.status = ? AND c.date >= ? AND c.date < ?
			GROUP BY b.user_id`,
		domain.StatusAttended, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var n int
		if err := rows.Scan(&userID, &n); err != nil {
			return nil, err
		}
		counts[userID] = n
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) listDetails(ctx context.Context, query string, args ...any) ([]domain.Detail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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

func scanBooking(row rowScanner) (domain.Booking, error) {
	var entity domain.Booking
	var createdStr string
	err := row.Scan(&entity.ID, &entity.UserID, &entity.ClassID, &entity.Status, &createdStr)
	if err != nil {
		return domain.Booking{}, err
	}
	entity.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func scanDetail(row rowScanner) (domain.Detail, error) {
	var d domain.Detail
	var createdStr string
	var c classDomain.Class
	var u userDomain.User
	err := row.Scan(
		&d.ID, &d.UserID, &d.ClassID, &d.Status, &createdStr,
		&c.ID, &c.Name, &c.Date, &c.Time, &c.MaxSlots,
		&u.ID, &u.Name, &u.Email, &u.Role, &u.BeltLevel, &u.Status,
	)
	if err != nil {
		return domain.Detail{}, err
	}
	d.CreatedAt, err = storage.ParseStoredTime(createdStr)
	if err != nil {
		return domain.Detail{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	d.Class = &c
	d.User = &u
	return d, nil
}
