package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// Queryer is implemented by both *sql.DB and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QueryInterceptor debug-logs every statement before handing it to the database or transaction.
type QueryInterceptor struct {
	q   Queryer
	log *zap.SugaredLogger
}

func NewQueryInterceptor(q Queryer) QueryInterceptor {
	return QueryInterceptor{q: q, log: zap.S().Named("store")}
}

func (i QueryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	i.log.Debugw("query", "sql", query, "args", args)
	return i.q.QueryContext(ctx, query, args...)
}

func (i QueryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	i.log.Debugw("query row", "sql", query, "args", args)
	return i.q.QueryRowContext(ctx, query, args...)
}

func (i QueryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	i.log.Debugw("exec", "sql", query, "args", args)
	return i.q.ExecContext(ctx, query, args...)
}

// exec binds values to stmt and executes it.
func (i QueryInterceptor) exec(ctx context.Context, stmt Statement, values Values) (int64, error) {
	args, err := stmt.Bind(values)
	if err != nil {
		return 0, err
	}
	res, err := i.ExecContext(ctx, stmt.SQL, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// query binds values to stmt and runs it.
func (i QueryInterceptor) query(ctx context.Context, stmt Statement, values Values) (*sql.Rows, error) {
	args, err := stmt.Bind(values)
	if err != nil {
		return nil, err
	}
	return i.QueryContext(ctx, stmt.SQL, args...)
}

// selectChunked runs fn on every row of table in the scope of values. With ids, the rows
// are restricted to inColumn IN ids, one statement per chunk of maxIn ids.
func (i QueryInterceptor) selectChunked(ctx context.Context, table string, columns []string, values Values, inColumn string, ids []string, maxIn int, orderBy []string, fn func(scanner) error) error {
	run := func(stmt Statement, values Values) error {
		rows, err := i.query(ctx, stmt, values)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := fn(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	}

	if len(ids) == 0 {
		stmt, err := Select(table, columns, nil, orderBy...)
		if err != nil {
			return err
		}
		return run(stmt, values)
	}

	for _, chunk := range chunks(ids, maxIn) {
		stmt, err := SelectIn(table, columns, nil, inColumn, len(chunk), orderBy...)
		if err != nil {
			return err
		}
		v := Values{inColumn: List(chunk)}
		for k, val := range values {
			v[k] = val
		}
		if err := run(stmt, v); err != nil {
			return err
		}
	}
	return nil
}

// deleteChunked deletes the rows of table in the scope of values, restricted to inColumn IN ids when ids is set.
func (i QueryInterceptor) deleteChunked(ctx context.Context, table string, values Values, inColumn string, ids []string, maxIn int) (int64, error) {
	if len(ids) == 0 {
		stmt, err := Delete(table)
		if err != nil {
			return 0, err
		}
		return i.exec(ctx, stmt, values)
	}

	var total int64
	for _, chunk := range chunks(ids, maxIn) {
		stmt, err := DeleteIn(table, inColumn, len(chunk))
		if err != nil {
			return total, err
		}
		v := Values{inColumn: List(chunk)}
		for k, val := range values {
			v[k] = val
		}
		n, err := i.exec(ctx, stmt, v)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
