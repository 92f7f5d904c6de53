// Package query holds the filter and sort primitives shared by every
// repository. A caller describes constraints as data; the package turns them
// into GORM clauses so no raw SQL fragments travel through the app.
package query

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq    Op = "eq"
	OpNeq   Op = "neq"
	OpGt    Op = "gt"
	OpGte   Op = "gte"
	OpLt    Op = "lt"
	OpLte   Op = "lte"
	OpLike  Op = "like"
	OpILike Op = "ilike"
)

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidSort   = errors.New("invalid sort")
)

// identPattern matches plain column identifiers. Qualified or quoted names
// are rejected; callers name columns, never SQL.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Filter constrains one column. Multiple filters are combined with AND in
// the order given; there is no OR combination.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter    { return Filter{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Filter   { return Filter{Column: column, Op: OpNeq, Value: value} }
func Gt(column string, value any) Filter    { return Filter{Column: column, Op: OpGt, Value: value} }
func Gte(column string, value any) Filter   { return Filter{Column: column, Op: OpGte, Value: value} }
func Lt(column string, value any) Filter    { return Filter{Column: column, Op: OpLt, Value: value} }
func Lte(column string, value any) Filter   { return Filter{Column: column, Op: OpLte, Value: value} }
func Like(column string, value any) Filter  { return Filter{Column: column, Op: OpLike, Value: value} }
func ILike(column string, value any) Filter { return Filter{Column: column, Op: OpILike, Value: value} }

// Sort orders a result set by a single column.
type Sort struct {
	Column    string
	Ascending bool
}

// DefaultSort orders by creation time, newest first. Every list falls back
// to it when the caller does not sort explicitly.
var DefaultSort = Sort{Column: "created_at", Ascending: false}

func Asc(column string) *Sort  { return &Sort{Column: column, Ascending: true} }
func Desc(column string) *Sort { return &Sort{Column: column, Ascending: false} }

// Apply adds every filter as an AND constraint in the order given, then a
// single ORDER BY. A nil sort falls back to DefaultSort.
func Apply(tx *gorm.DB, sort *Sort, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		cond, err := f.expression()
		if err != nil {
			return nil, err
		}
		tx = tx.Where(cond)
	}
	s := DefaultSort
	if sort != nil {
		s = *sort
	}
	if !identPattern.MatchString(s.Column) {
		return nil, fmt.Errorf("%w: column %q", ErrInvalidSort, s.Column)
	}
	return tx.Order(clause.OrderByColumn{
		Column: clause.Column{Name: s.Column},
		Desc:   !s.Ascending,
	}), nil
}

func (f Filter) expression() (clause.Expression, error) {
	if !identPattern.MatchString(f.Column) {
		return nil, fmt.Errorf("%w: column %q", ErrInvalidFilter, f.Column)
	}
	col := clause.Column{Name: f.Column}
	switch f.Op {
	case OpEq:
		return clause.Eq{Column: col, Value: f.Value}, nil
	case OpNeq:
		return clause.Neq{Column: col, Value: f.Value}, nil
	case OpGt:
		return clause.Gt{Column: col, Value: f.Value}, nil
	case OpGte:
		return clause.Gte{Column: col, Value: f.Value}, nil
	case OpLt:
		return clause.Lt{Column: col, Value: f.Value}, nil
	case OpLte:
		return clause.Lte{Column: col, Value: f.Value}, nil
	case OpLike:
		return clause.Like{Column: col, Value: f.Value}, nil
	case OpILike:
		// LOWER on both sides behaves the same on PostgreSQL and SQLite;
		// ILIKE itself is PostgreSQL-only.
		return clause.Expr{SQL: "LOWER(?) LIKE LOWER(?)", Vars: []any{col, f.Value}}, nil
	default:
		return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
	}
}
