// Package dbfake provides a scripted store.TxRunner for repo and service tests.
// Queries are matched by SQL substring in registration order
package dbfake

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
)

// Call is one recorded statement
type Call struct {
	SQL  string
	Args []any
}

type rule struct {
	match string
	rows  [][]any
	err   error
	tag   int64
}

// DB is a scripted fake of store.TxRunner
type DB struct {
	mu sync.Mutex

	queries []rule
	execs   []rule

	// TxErr makes Tx fail before fn runs
	TxErr error

	Calls   []Call
	TxCount int
}

// New returns an empty fake
func New() *DB { return &DB{} }

// OnQuery answers any Query or QueryRow whose SQL contains match with rows
func (d *DB) OnQuery(match string, rows ...[]any) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, rule{match: match, rows: rows})
	return d
}

// OnQueryErr fails any Query or QueryRow whose SQL contains match
func (d *DB) OnQueryErr(match string, err error) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, rule{match: match, err: err})
	return d
}

// OnExec sets the affected row count, or the error, for matching Exec calls
func (d *DB) OnExec(match string, affected int64, err error) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execs = append(d.execs, rule{match: match, tag: affected, err: err})
	return d
}

// Executed reports whether any recorded statement contains match
func (d *DB) Executed(match string) bool {
	_, ok := d.Find(match)
	return ok
}

// Find returns the first recorded statement containing match
func (d *DB) Find(match string) (Call, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.Calls {
		if strings.Contains(c.SQL, match) {
			return c, true
		}
	}
	return Call{}, false
}

func (d *DB) record(sql string, args []any) {
	d.mu.Lock()
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	d.mu.Unlock()
}

func (d *DB) lookup(rules []rule, sql string) (rule, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range rules {
		if strings.Contains(sql, r.match) {
			return r, true
		}
	}
	return rule{}, false
}

// Exec records the statement and answers from OnExec, defaulting to one row affected
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	d.record(sql, args)
	r, ok := d.lookup(d.execs, sql)
	if !ok {
		return Tag(1), nil
	}
	if r.err != nil {
		return nil, r.err
	}
	return Tag(r.tag), nil
}

// Query records the statement and returns the scripted rows; unmatched SQL yields no rows
func (d *DB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	d.record(sql, args)
	r, _ := d.lookup(d.queries, sql)
	if r.err != nil {
		return nil, r.err
	}
	return &Rows{data: r.rows, i: -1}, nil
}

// QueryRow returns the first scripted row or a row that scans perr.ErrNotFound
func (d *DB) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	d.record(sql, args)
	r, _ := d.lookup(d.queries, sql)
	if r.err != nil {
		return Row{err: r.err}
	}
	if len(r.rows) == 0 {
		return Row{err: perr.ErrNotFound}
	}
	return Row{vals: r.rows[0]}
}

// Tx runs fn against the same fake
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.TxCount++
	txErr := d.TxErr
	d.mu.Unlock()
	if txErr != nil {
		return txErr
	}
	return fn(d)
}

// Tag is a fake command tag reporting n affected rows
type Tag int64

// String renders the tag the way pg does for updates
func (t Tag) String() string { return fmt.Sprintf("UPDATE %d", int64(t)) }

// RowsAffected returns n
func (t Tag) RowsAffected() int64 { return int64(t) }

// Rows iterates scripted rows
type Rows struct {
	data [][]any
	i    int
	cols []string
}

// Next advances to the next row
func (r *Rows) Next() bool { r.i++; return r.i < len(r.data) }

// Scan copies the current row into dest
func (r *Rows) Scan(dest ...any) error { return Assign(r.data[r.i], dest) }

// Err is always nil
func (r *Rows) Err() error { return nil }

// Close is a no-op
func (r *Rows) Close() {}

// Columns is nil; scripted rows are positional
func (r *Rows) Columns() []string { return r.cols }

// Row is a single scripted row
type Row struct {
	vals []any
	err  error
}

// Scan copies the row into dest or returns the scripted error
func (r Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return Assign(r.vals, dest)
}

// Assign copies src values into pointer destinations, converting between
// compatible kinds and allocating for pointer-to-pointer targets
func Assign(src []any, dest []any) error {
	if len(src) < len(dest) {
		return fmt.Errorf("dbfake: row has %d values, scan wants %d", len(src), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("dbfake: dest %d is not a pointer", i)
		}
		if err := set(dv.Elem(), src[i]); err != nil {
			return fmt.Errorf("dbfake: column %d: %w", i, err)
		}
	}
	return nil
}

func set(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	sv := reflect.ValueOf(v)
	switch {
	case sv.Type().AssignableTo(dst.Type()):
		dst.Set(sv)
	case dst.Kind() == reflect.Pointer:
		p := reflect.New(dst.Type().Elem())
		if err := set(p.Elem(), v); err != nil {
			return err
		}
		dst.Set(p)
	case sv.Type().ConvertibleTo(dst.Type()) && sv.Kind() != reflect.String && dst.Kind() != reflect.String:
		dst.Set(sv.Convert(dst.Type()))
	case sv.Kind() == reflect.String && dst.Kind() == reflect.String:
		dst.SetString(sv.String())
	default:
		return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
	}
	return nil
}
