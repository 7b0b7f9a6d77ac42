// Package database builds parameterized SQL fragments for PostgreSQL.
//
// Every fragment keeps its clause text and its positional arguments together so that the
// Nth placeholder ($N) in the clause always binds the Nth argument.
package database

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// localPlaceholder matches $N placeholders inside a single predicate expression.
var localPlaceholder = regexp.MustCompile(`\$(\d+)`)

// Fragment is a partial SQL clause plus its positionally aligned arguments.
type Fragment struct {
	SQL  string
	Args []any
}

// NextPlaceholder returns the placeholder a caller should use for the next argument
// appended after this fragment's Args.
func (f Fragment) NextPlaceholder() string {
	return Placeholder(len(f.Args) + 1)
}

// Placeholder renders the 1-based positional placeholder for index i.
func Placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

// Builder accumulates predicates joined by a separator. Each call to Add appends one
// expression together with the values it binds, so indices are derived from position
// and cannot drift.
type Builder struct {
	sep   string
	parts []string
	args  []any
}

// NewBuilder creates a Builder that joins expressions with sep (e.g. " AND " or ", ").
func NewBuilder(sep string) *Builder {
	return &Builder{sep: sep}
}

// Add appends expr and binds values to it. Placeholders inside expr are local to this call:
// $1 refers to values[0], $2 to values[1], and so on. They are renumbered to absolute
// positions when appended. An expression without placeholders (e.g. "equity > 0") takes no
// values and consumes no index.
func (b *Builder) Add(expr string, values ...any) *Builder {
	base := len(b.args)
	used := make([]bool, len(values))

	rendered := localPlaceholder.ReplaceAllStringFunc(expr, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(values) {
			//nolint:forbidigo // panic prevents misuse; a dangling placeholder would misalign every later argument.
			panic(fmt.Sprintf("database: placeholder %s in %q has no bound value", m, expr))
		}
		used[n-1] = true
		return Placeholder(base + n)
	})
	for i, ok := range used {
		if !ok {
			//nolint:forbidigo // panic prevents misuse; an unused value would shift later placeholders.
			panic(fmt.Sprintf("database: value %d for %q is never referenced", i+1, expr))
		}
	}

	b.parts = append(b.parts, rendered)
	b.args = append(b.args, values...)
	return b
}

// Len returns the number of expressions added so far.
func (b *Builder) Len() int {
	return len(b.parts)
}

// Build joins the accumulated expressions into a Fragment.
func (b *Builder) Build() Fragment {
	args := make([]any, len(b.args))
	copy(args, b.args)
	return Fragment{
		SQL:  strings.Join(b.parts, b.sep),
		Args: args,
	}
}

// QuoteIdentifier quotes a single column or table identifier.
func QuoteIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// Contains wraps v for a case-insensitive substring match with ILIKE.
func Contains(v string) string {
	return "%" + v + "%"
}
