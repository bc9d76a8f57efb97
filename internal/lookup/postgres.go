package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Whitelist maps a requested resource and field to a known target.
// Implementations return an error for anything not registered.
type Whitelist interface {
	Target(resource, field string) (slugfield.Target, error)
}

// Querier is the subset of *pgxpool.Pool the backend needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres answers lookups from tables named after their resource.
type Postgres struct {
	db    Querier
	allow Whitelist
}

// NewPostgres creates a backend over db. Every query is checked against allow.
func NewPostgres(db Querier, allow Whitelist) *Postgres {
	return &Postgres{db: db, allow: allow}
}

func (p *Postgres) Count(ctx context.Context, resource, field, value string) (int, error) {
	table, column, err := p.identifiers(resource, field)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1", table, column)

	var n int
	if err := p.db.QueryRow(ctx, query, value).Scan(&n); err != nil {
		return 0, errors.Join(ErrCountFailed, err)
	}
	return n, nil
}

// SelectPrefix returns every value of field starting with prefix, sorted.
func (p *Postgres) SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error) {
	table, column, err := p.identifiers(resource, field)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %[2]s FROM %[1]s WHERE %[2]s LIKE $1 ESCAPE '\' ORDER BY %[2]s`,
		table, column,
	)

	rows, err := p.db.Query(ctx, query, EscapeLike(prefix)+"%")
	if err != nil {
		return nil, errors.Join(ErrSelectFailed, err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrSelectFailed, err)
	}
	return values, nil
}

func (p *Postgres) identifiers(resource, field string) (string, string, error) {
	t, err := p.allow.Target(resource, field)
	if err != nil {
		return "", "", err
	}
	return pgx.Identifier{t.Resource}.Sanitize(), pgx.Identifier{t.Field}.Sanitize(), nil
}

// EscapeLike quotes the LIKE wildcards in s using backslash as escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var _ slugfield.Backend = (*Postgres)(nil)
