package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Conversly/community-api/internal/types"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrOverlap   = errors.New("overlapping record")
	ErrReference = errors.New("record is referenced or references a missing record")
)

// Store implements every query the API needs against PostgreSQL. A Store
// created inside inTx runs its queries on that transaction.
type Store struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, ext: db}
}

// Ping checks connectivity for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) inTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.ext.(*sqlx.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&Store{db: s.db, ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) get(ctx context.Context, dst interface{}, query string, args ...interface{}) error {
	return mapError(sqlx.GetContext(ctx, s.ext, dst, s.ext.Rebind(query), args...))
}

func (s *Store) selectAll(ctx context.Context, dst interface{}, query string, args ...interface{}) error {
	return mapError(sqlx.SelectContext(ctx, s.ext, dst, s.ext.Rebind(query), args...))
}

func (s *Store) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := s.ext.ExecContext(ctx, s.ext.Rebind(query), args...)
	if err != nil {
		return 0, mapError(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// execOne runs a statement that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, query string, args ...interface{}) error {
	n, err := s.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ConstraintError is a sentinel error tagged with the constraint that raised it.
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string { return e.Err.Error() + ": " + e.Constraint }

func (e *ConstraintError) Unwrap() error { return e.Err }

// Constraint names the violated constraint, or "" when err carries none.
func Constraint(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// mapError folds driver errors into the package's sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &ConstraintError{Err: ErrDuplicate, Constraint: pgErr.ConstraintName}
		case "23P01":
			return &ConstraintError{Err: ErrOverlap, Constraint: pgErr.ConstraintName}
		case "23503":
			return &ConstraintError{Err: ErrReference, Constraint: pgErr.ConstraintName}
		}
	}
	return err
}

// filter accumulates AND-ed conditions written with ? placeholders.
type filter struct {
	conds []string
	args  []interface{}
}

func scoped(communityID string) *filter {
	f := &filter{}
	return f.add("community_id = ?", communityID)
}

func (f *filter) add(cond string, args ...interface{}) *filter {
	f.conds = append(f.conds, cond)
	f.args = append(f.args, args...)
	return f
}

// eq adds column = value unless value is empty.
func (f *filter) eq(column, value string) *filter {
	if value == "" {
		return f
	}
	return f.add(column+" = ?", value)
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page runs the count and the limited select for one list endpoint.
func page[T any](ctx context.Context, s *Store, columns, from string, f *filter, orderBy string, p types.Pagination) ([]T, int, error) {
	var total int
	if err := s.get(ctx, &total, "SELECT count(*) FROM "+from+f.where(), f.args...); err != nil {
		return nil, 0, err
	}

	args := make([]interface{}, 0, len(f.args)+2)
	args = append(args, f.args...)
	args = append(args, p.Limit, p.Offset())

	items := []T{}
	query := "SELECT " + columns + " FROM " + from + f.where() + " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	if err := s.selectAll(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likePattern escapes LIKE wildcards in user input.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// Scoped helpers shared by the registries. table is always a constant.

func (s *Store) setStatus(ctx context.Context, table, communityID, id, status string) error {
	return s.execOne(ctx, "UPDATE "+table+" SET status = ?, updated_at = now() WHERE community_id = ? AND id = ?",
		status, communityID, id)
}

func (s *Store) rotateToken(ctx context.Context, table, communityID, id, token string) error {
	return s.execOne(ctx, "UPDATE "+table+" SET qr_token = ?, updated_at = now() WHERE community_id = ? AND id = ?",
		token, communityID, id)
}

func (s *Store) deleteScoped(ctx context.Context, table, communityID, id string) error {
	return s.execOne(ctx, "DELETE FROM "+table+" WHERE community_id = ? AND id = ?", communityID, id)
}
