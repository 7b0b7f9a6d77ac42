package database

import "strings"

// Filter collects AND-ed predicates for a WHERE clause and renders them with a fixed
// ORDER BY suffix. Predicates are emitted in the order they are added.
type Filter struct {
	preds   *Builder
	orderBy string
}

// NewFilter creates a Filter ordered by the given column. An empty orderBy omits ORDER BY.
func NewFilter(orderBy string) *Filter {
	return &Filter{preds: NewBuilder(" AND "), orderBy: orderBy}
}

// Where adds a predicate. See Builder.Add for placeholder rules.
func (f *Filter) Where(expr string, values ...any) *Filter {
	f.preds.Add(expr, values...)
	return f
}

// Build renders "WHERE p1 AND p2 ORDER BY col". With no predicates the WHERE keyword is
// omitted entirely.
func (f *Filter) Build() Fragment {
	where := f.preds.Build()

	var sb strings.Builder
	if f.preds.Len() > 0 {
		sb.WriteString("WHERE ")
		sb.WriteString(where.SQL)
	}
	if f.orderBy != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("ORDER BY ")
		sb.WriteString(f.orderBy)
	}
	return Fragment{SQL: sb.String(), Args: where.Args}
}
