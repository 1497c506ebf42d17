package conversions

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a ledger entry.
func (r *PGRepo) Create(ctx context.Context, c Conversion) error {
	const query = `
INSERT INTO conversions (
    id,
    request_id,
    file_name,
    mime_type,
    size_bytes,
    provider,
    model,
    status,
    error_code,
    output_bytes,
    duration_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		nullString(c.RequestID),
		c.FileName,
		c.MimeType,
		c.SizeBytes,
		c.Provider,
		c.Model,
		c.Status,
		nullString(c.ErrorCode),
		c.OutputBytes,
		c.DurationMs,
		c.CreatedAt,
	)
	return err
}

// ListRecent lists entries ordered newest-first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Conversion, error) {
	const query = `
SELECT id, request_id, file_name, mime_type, size_bytes, provider, model, status, error_code, output_bytes, duration_ms, created_at
FROM conversions
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		var requestID sql.NullString
		var errorCode sql.NullString
		if err := rows.Scan(
			&c.ID,
			&requestID,
			&c.FileName,
			&c.MimeType,
			&c.SizeBytes,
			&c.Provider,
			&c.Model,
			&c.Status,
			&errorCode,
			&c.OutputBytes,
			&c.DurationMs,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		if requestID.Valid {
			c.RequestID = requestID.String
		}
		if errorCode.Valid {
			c.ErrorCode = errorCode.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
