package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/deppfellow/menu-service/internal/database"
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/sqlerr"
)

// ErrNoParent is returned by ListByParent for tables without a parent column.
var ErrNoParent = errors.New("resource has no parent column")

// Definition describes one resource table.
//
// Columns lists the payload columns in the order P.Values() returns them.
// ParentColumn is empty for top-level resources.
type Definition[P model.Payload, S any] struct {
	Table        string
	Columns      []string
	ParentColumn string
	NewStored    func(P, model.Timestamps) S
}

// HasParent reports whether rows of this table can be filtered by parent id.
func (d Definition[P, S]) HasParent() bool {
	return d.ParentColumn != ""
}

// Repository implements the CRUD statements for one resource table.
//
// P is the create payload, S the stored record and V the read projection.
type Repository[P model.Payload, S any, V any] struct {
	db  *database.Database
	def Definition[P, S]
	now func() time.Time

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Now is the default clock: UTC truncated to the microsecond so values
// round-trip through every supported driver unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// New builds the statements for def once and returns the repository.
func New[P model.Payload, S any, V any](db *database.Database, def Definition[P, S], opts ...Option) *Repository[P, S, V] {
	o := options{now: Now}
	for _, opt := range opts {
		opt(&o)
	}

	columns := strings.Join(def.Columns, ", ")

	assignments := make([]string, 0, len(def.Columns)+1)
	for _, column := range def.Columns {
		assignments = append(assignments, column+" = ?")
	}
	assignments = append(assignments, "updated_at = ?")

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(def.Columns)+2), ", ")

	return &Repository[P, S, V]{
		db:  db,
		def: def,
		now: o.now,

		selectSQL: fmt.Sprintf("SELECT id, %s, created_at, updated_at FROM %s", columns, def.Table),
		insertSQL: db.DB.Rebind(fmt.Sprintf("INSERT INTO %s (%s, created_at, updated_at) VALUES (%s)", def.Table, columns, placeholders)),
		updateSQL: db.DB.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING id, %s, created_at, updated_at", def.Table, strings.Join(assignments, ", "), columns)),
		deleteSQL: db.DB.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", def.Table)),
	}
}

// Table returns the table name.
func (r *Repository[P, S, V]) Table() string {
	return r.def.Table
}

// HasParent reports whether ListByParent is supported.
func (r *Repository[P, S, V]) HasParent() bool {
	return r.def.HasParent()
}

// Create inserts payload with both timestamps set to the same instant and
// returns the stored record. The generated id is not part of the result.
func (r *Repository[P, S, V]) Create(ctx context.Context, payload P) (*S, error) {
	ts := model.NewTimestamps(r.now())
	args := append(payload.Values(), ts.CreatedAt, ts.UpdatedAt)

	defer r.db.ObserveQuery(ctx, r.insertSQL, time.Now())

	if _, err := r.db.DB.ExecContext(ctx, r.insertSQL, args...); err != nil {
		return nil, r.wrap(err, "create")
	}

	stored := r.def.NewStored(payload, ts)
	return &stored, nil
}

// List returns every row in store order. An empty table yields an empty slice.
func (r *Repository[P, S, V]) List(ctx context.Context) ([]V, error) {
	defer r.db.ObserveQuery(ctx, r.selectSQL, time.Now())

	rows := make([]V, 0)
	if err := r.db.DB.SelectContext(ctx, &rows, r.selectSQL); err != nil {
		return nil, r.wrap(err, "list")
	}
	return rows, nil
}

// ListByParent returns the rows whose parent column equals parentID.
// No match yields an empty slice, never sql.ErrNoRows.
func (r *Repository[P, S, V]) ListByParent(ctx context.Context, parentID int64) ([]V, error) {
	if !r.def.HasParent() {
		return nil, r.wrap(ErrNoParent, "list by parent")
	}

	query := r.db.DB.Rebind(r.selectSQL + " WHERE " + r.def.ParentColumn + " = ?")
	defer r.db.ObserveQuery(ctx, query, time.Now())

	rows := make([]V, 0)
	if err := r.db.DB.SelectContext(ctx, &rows, query, parentID); err != nil {
		return nil, r.wrap(err, "list by parent")
	}
	return rows, nil
}

// Update replaces every payload column of row id (parent column included),
// refreshes updated_at and returns the updated row, all in one statement.
//
// It returns an error wrapping sql.ErrNoRows when no row matched.
func (r *Repository[P, S, V]) Update(ctx context.Context, id int64, payload P) (*V, error) {
	args := append(payload.Values(), r.now(), id)

	defer r.db.ObserveQuery(ctx, r.updateSQL, time.Now())

	var row V
	if err := r.db.DB.GetContext(ctx, &row, r.updateSQL, args...); err != nil {
		return nil, r.wrap(err, fmt.Sprintf("update id=%d", id))
	}
	return &row, nil
}

// Delete removes row id. It returns an error wrapping sql.ErrNoRows when no row matched.
func (r *Repository[P, S, V]) Delete(ctx context.Context, id int64) error {
	defer r.db.ObserveQuery(ctx, r.deleteSQL, time.Now())

	result, err := r.db.DB.ExecContext(ctx, r.deleteSQL, id)
	if err != nil {
		return r.wrap(err, fmt.Sprintf("delete id=%d", id))
	}

	return r.requireAffected(result, fmt.Sprintf("delete id=%d", id))
}

func (r *Repository[P, S, V]) requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return r.wrap(err, op)
	}
	if affected == 0 {
		return r.wrap(sql.ErrNoRows, op)
	}
	return nil
}

// wrap prefixes err with the table so sqlerr.HandleError can name the entity.
func (r *Repository[P, S, V]) wrap(err error, op string) error {
	return errors.Wrapf(err, "%s%s: %s", sqlerr.TablePrefix, r.def.Table, op)
}
