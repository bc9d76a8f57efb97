package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/promptdesk/internal/lookup"
	"github.com/dmitrymomot/promptdesk/pkg/db"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	db.TxBeginner
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const recordColumns = "id, name, description, body, created_at, updated_at"

// Repository stores records in Postgres, one table per resource.
type Repository struct {
	db DB
}

// NewRepository creates a repository over db.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, resource string, opts ListOptions) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE $1 = '' OR name ILIKE $2 OR id LIKE $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4
	`, recordColumns, table(resource))

	pattern := "%" + lookup.EscapeLike(opts.Query) + "%"
	rows, err := r.db.Query(ctx, query, opts.Query, pattern, opts.limit(), max(opts.Offset, 0))
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Record])
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return records, nil
}

func (r *Repository) Get(ctx context.Context, resource, id string) (Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, recordColumns, table(resource))
	return scanRecord(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) Create(ctx context.Context, resource string, rec Record) (Record, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, body)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, table(resource), recordColumns)

	return scanRecord(r.db.QueryRow(ctx, query, rec.ID, rec.Name, rec.Description, rec.Body))
}

// Update locks the row before writing so a concurrent delete surfaces as
// ErrNotFound rather than a silent no-op.
func (r *Repository) Update(ctx context.Context, resource string, rec Record) (Record, error) {
	var out Record
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		lock := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, table(resource))
		var id string
		if err := tx.QueryRow(ctx, lock, rec.ID).Scan(&id); err != nil {
			return mapError(err)
		}

		update := fmt.Sprintf(`
			UPDATE %s
			SET name = $2, description = $3, body = $4, updated_at = now()
			WHERE id = $1
			RETURNING %s
		`, table(resource), recordColumns)

		var err error
		out, err = scanRecord(tx.QueryRow(ctx, update, rec.ID, rec.Name, rec.Description, rec.Body))
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, resource, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table(resource))
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return Record{}, mapError(err)
	}
	return rec, nil
}

func mapError(err error) error {
	switch {
	case db.IsNoRows(err):
		return ErrNotFound
	case db.IsUniqueViolation(err):
		return errors.Join(ErrConflict, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return err
	default:
		return errors.Join(ErrStore, err)
	}
}

func table(resource string) string {
	return pgx.Identifier{resource}.Sanitize()
}

var _ Store = (*Repository)(nil)
