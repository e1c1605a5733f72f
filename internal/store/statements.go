package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// Scope columns. Every statement of the catalog is filtered on both of them, in this order.
const (
	ColNetworkUUID = "network_uuid"
	ColVariantNum  = "variant_num"

	// ParamTargetVariantNum is the parameter receiving the destination variant of a copy.
	ParamTargetVariantNum = "target_variant_num"
)

// psql renders $n placeholders, accepted by both DuckDB and PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Statement is a parameterized statement. Params names the column bound to each
// placeholder, in placeholder order. A name appears several times in batched statements.
type Statement struct {
	SQL    string
	Params []string
}

// Values maps a parameter name to its value. A []any value is consumed one element
// per occurrence of the parameter; any other value is bound to every occurrence.
type Values map[string]any

// List converts a typed slice into a value consumed one element per occurrence.
func List[T any](items []T) []any {
	l := make([]any, len(items))
	for i, item := range items {
		l[i] = item
	}
	return l
}

// Bind returns the positional arguments of the statement.
func (s Statement) Bind(values Values) ([]any, error) {
	args := make([]any, 0, len(s.Params))
	seen := make(map[string]int, len(values))
	for _, p := range s.Params {
		v, ok := values[p]
		if !ok {
			return nil, srvErrors.NewInvalidArgumentError("no value for parameter %q", p)
		}
		if l, isList := v.([]any); isList {
			idx := seen[p]
			if idx >= len(l) {
				return nil, srvErrors.NewInvalidArgumentError("parameter %q has %d values, statement needs more", p, len(l))
			}
			v = l[idx]
		}
		seen[p]++
		args = append(args, v)
	}
	for name, v := range values {
		if l, isList := v.([]any); isList && len(l) != seen[name] {
			return nil, srvErrors.NewInvalidArgumentError("parameter %q has %d values, statement binds %d", name, len(l), seen[name])
		}
	}
	return args, nil
}

func scopeColumns(selectors []string) []string {
	return append([]string{ColNetworkUUID, ColVariantNum}, selectors...)
}

func equals(selectors []string) sq.And {
	cond := sq.And{}
	for _, col := range scopeColumns(selectors) {
		cond = append(cond, sq.Expr(col+" = ?", col))
	}
	return cond
}

func in(column string, count int) sq.Sqlizer {
	params := make([]any, count)
	for i := range params {
		params[i] = column
	}
	return sq.Expr(column+" IN ("+sq.Placeholders(count)+")", params...)
}

func checkCount(count int) error {
	if count < 1 {
		return srvErrors.NewInvalidArgumentError("batch size must be at least 1, got %d", count)
	}
	return nil
}

func toStatement(b sq.Sqlizer) (Statement, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return Statement{}, err
	}
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = a.(string)
	}
	return Statement{SQL: query, Params: params}, nil
}

// Select reads columns of table for one (network, variant) and the extra equality selectors.
func Select(table string, columns []string, selectors []string, orderBy ...string) (Statement, error) {
	b := psql.Select(columns...).From(table).Where(equals(selectors))
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}
	return toStatement(b)
}

// SelectIn is Select restricted to count values of inColumn.
func SelectIn(table string, columns []string, selectors []string, inColumn string, count int, orderBy ...string) (Statement, error) {
	if err := checkCount(count); err != nil {
		return Statement{}, err
	}
	b := psql.Select(columns...).From(table).Where(equals(selectors)).Where(in(inColumn, count))
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}
	return toStatement(b)
}

// Upsert inserts one row or overwrites valueColumns of the row with the same key.
// The scope columns are prepended to keyColumns.
func Upsert(table string, keyColumns, valueColumns []string) (Statement, error) {
	keys := scopeColumns(keyColumns)
	columns := append(append([]string{}, keys...), valueColumns...)

	suffix := "ON CONFLICT (" + strings.Join(keys, ", ") + ") DO NOTHING"
	if len(valueColumns) > 0 {
		sets := make([]string, len(valueColumns))
		for i, c := range valueColumns {
			sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", c, c)
		}
		suffix = "ON CONFLICT (" + strings.Join(keys, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return toStatement(psql.Insert(table).Columns(columns...).Values(List(columns)...).Suffix(suffix))
}

// InsertBatch inserts count rows. The scope columns are prepended to columns.
func InsertBatch(table string, columns []string, count int) (Statement, error) {
	if err := checkCount(count); err != nil {
		return Statement{}, err
	}
	all := scopeColumns(columns)
	b := psql.Insert(table).Columns(all...)
	for range count {
		b = b.Values(List(all)...)
	}
	return toStatement(b)
}

// Delete removes the rows of one (network, variant) matching the extra selectors.
func Delete(table string, selectors ...string) (Statement, error) {
	return toStatement(psql.Delete(table).Where(equals(selectors)))
}

// DeleteIn removes the rows of one (network, variant) whose inColumn is one of count values.
func DeleteIn(table string, inColumn string, count int, selectors ...string) (Statement, error) {
	if err := checkCount(count); err != nil {
		return Statement{}, err
	}
	return toStatement(psql.Delete(table).Where(equals(selectors)).Where(in(inColumn, count)))
}

// CopyToVariant duplicates the rows of one (network, variant) into ParamTargetVariantNum.
// columns are the non-scope columns of table.
func CopyToVariant(table string, columns []string) (Statement, error) {
	source := sq.Select(ColNetworkUUID).
		Column(sq.Expr("CAST(? AS INTEGER)", ParamTargetVariantNum)).
		Columns(columns...).
		From(table).
		Where(equals(nil))
	return toStatement(psql.Insert(table).Columns(scopeColumns(columns)...).Select(source))
}
