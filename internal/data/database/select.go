// Package database builds parameterized SELECT statements with quoted identifiers.
package database

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Op is a comparison operator accepted by Where.
type Op string

// Supported comparison operators.
const (
	Eq    Op = "="
	ILike Op = "ILIKE"
)

// Query is a single-table SELECT. The zero value is not usable; start from Select or Count.
type Query struct {
	table   string
	columns []string
	count   bool
	where   []string
	args    []any
	orderBy string
	desc    bool
	limit   int
	offset  int
}

// Select starts a query returning columns from table, or every column when none are given.
func Select(table string, columns ...string) *Query {
	return &Query{table: table, columns: columns, limit: -1, offset: -1}
}

// Count starts a COUNT(*) query over table. Ordering and paging are ignored.
func Count(table string) *Query {
	q := Select(table)
	q.count = true
	return q
}

// Where ANDs "column op value" onto the query. Unknown operators are ignored.
func (q *Query) Where(column string, op Op, value any) *Query {
	switch op {
	case Eq, ILike:
	default:
		return q
	}
	q.args = append(q.args, value)
	q.where = append(q.where, ident(column)+" "+string(op)+" $"+strconv.Itoa(len(q.args)))
	return q
}

// OrderBy sets the sort column.
func (q *Query) OrderBy(column string, desc bool) *Query {
	q.orderBy, q.desc = column, desc
	return q
}

// Page sets LIMIT and OFFSET. Negative values leave the clause out.
func (q *Query) Page(limit, offset int) *Query {
	q.limit, q.offset = limit, offset
	return q
}

// SQL renders the statement and its positional arguments.
func (q *Query) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	switch {
	case q.count:
		b.WriteString("COUNT(*)")
	case len(q.columns) == 0:
		b.WriteString("*")
	default:
		for i, c := range q.columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(c))
		}
	}
	b.WriteString(" FROM " + ident(q.table))
	if len(q.where) > 0 {
		b.WriteString(" WHERE " + strings.Join(q.where, " AND "))
	}

	args := append([]any(nil), q.args...)
	if q.count {
		return b.String(), args
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY " + ident(q.orderBy))
		if q.desc {
			b.WriteString(" DESC")
		}
	}
	if q.limit >= 0 {
		args = append(args, q.limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if q.offset >= 0 {
		args = append(args, q.offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}
	return b.String(), args
}

// ident quotes a possibly qualified identifier such as "s.name".
func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
