package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // optional shared index backend
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // default embedded index backend

	"fotocamera/internal/domain"
)

// Supported media index drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// ErrMediaNotFound is returned when no record has the requested ID.
var ErrMediaNotFound = errors.New("media record not found")

var mediaSchema = map[string]string{
	DriverSQLite: `
	CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		relative_path TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		is_pending INTEGER NOT NULL DEFAULT 1,
		fingerprint TEXT NOT NULL DEFAULT '',
		size INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	DriverMySQL: `
	CREATE TABLE IF NOT EXISTS media (
		id VARCHAR(36) PRIMARY KEY,
		display_name VARCHAR(255) NOT NULL,
		relative_path VARCHAR(255) NOT NULL,
		mime_type VARCHAR(64) NOT NULL,
		is_pending TINYINT(1) NOT NULL DEFAULT 1,
		fingerprint VARCHAR(64) NOT NULL DEFAULT '',
		size BIGINT NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

const mediaColumns = `id, display_name, relative_path, mime_type, is_pending, fingerprint, size, created_at, updated_at`

// MediaIndex is a SQL-backed catalogue of published photos.
type MediaIndex struct {
	db  *sql.DB
	now func() time.Time
}

// OpenMediaIndex connects to driver/dsn and ensures the schema exists.
func OpenMediaIndex(ctx context.Context, driver, dsn string) (*MediaIndex, error) {
	schema, ok := mediaSchema[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported media index driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open media index: %w", err)
	}
	if driver == DriverSQLite {
		// A single connection serialises writers on the embedded file.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping media index: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create media table: %w", err)
	}
	return &MediaIndex{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (m *MediaIndex) Close() error { return m.db.Close() }

// InsertPending adds rec as a pending entry. Missing ID, path and mime type are filled in.
func (m *MediaIndex) InsertPending(ctx context.Context, rec domain.MediaRecord) (domain.MediaRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RelativePath == "" {
		rec.RelativePath = domain.DefaultRelativePath
	}
	if rec.MimeType == "" {
		rec.MimeType = domain.MimeTypeJPEG
	}
	now := m.now().UTC()
	rec.Pending = true
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO media (`+mediaColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DisplayName, rec.RelativePath, rec.MimeType, 1,
		rec.Fingerprint, rec.Size, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return domain.MediaRecord{}, fmt.Errorf("insert media %s: %w", rec.DisplayName, err)
	}
	return rec, nil
}

// Publish clears the pending flag and records the fingerprint of the final bytes.
func (m *MediaIndex) Publish(ctx context.Context, id, fingerprint string, size int64) (domain.MediaRecord, error) {
	res, err := m.db.ExecContext(ctx,
		`UPDATE media SET is_pending = 0, fingerprint = ?, size = ?, updated_at = ? WHERE id = ?`,
		fingerprint, size, m.now().UTC().UnixNano(), id,
	)
	if err != nil {
		return domain.MediaRecord{}, fmt.Errorf("publish media %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.MediaRecord{}, fmt.Errorf("publish media %s: %w", id, ErrMediaNotFound)
	}
	return m.Get(ctx, id)
}

// Remove deletes the record with id. Removing a missing record is not an error.
func (m *MediaIndex) Remove(ctx context.Context, id string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove media %s: %w", id, err)
	}
	return nil
}

// Get returns the record with id.
func (m *MediaIndex) Get(ctx context.Context, id string) (domain.MediaRecord, error) {
	row := m.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	rec, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MediaRecord{}, fmt.Errorf("get media %s: %w", id, ErrMediaNotFound)
	}
	if err != nil {
		return domain.MediaRecord{}, fmt.Errorf("get media %s: %w", id, err)
	}
	return rec, nil
}

// List returns records oldest first. Pending records are skipped unless includePending.
func (m *MediaIndex) List(ctx context.Context, includePending bool) ([]domain.MediaRecord, error) {
	q := `SELECT ` + mediaColumns + ` FROM media`
	if !includePending {
		q += ` WHERE is_pending = 0`
	}
	q += ` ORDER BY created_at, display_name`

	rows, err := m.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var out []domain.MediaRecord
	for rows.Next() {
		rec, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedia(r rowScanner) (domain.MediaRecord, error) {
	var (
		rec              domain.MediaRecord
		pending          int
		created, updated int64
	)
	err := r.Scan(&rec.ID, &rec.DisplayName, &rec.RelativePath, &rec.MimeType,
		&pending, &rec.Fingerprint, &rec.Size, &created, &updated)
	if err != nil {
		return domain.MediaRecord{}, err
	}
	rec.Pending = pending != 0
	rec.CreatedAt = time.Unix(0, created).UTC()
	rec.UpdatedAt = time.Unix(0, updated).UTC()
	return rec, nil
}

// Compile-time assertion that MediaIndex implements domain.MediaIndex.
var _ domain.MediaIndex = (*MediaIndex)(nil)
