package repository

import (
	"fmt"
	"strings"
)

// conditions accumulates optional predicates in order and renders them as a
// single AND-combined WHERE clause with positional placeholders. Values are
// never interpolated into the SQL text.
type conditions struct {
	exprs []string
	args  []any
}

func (c *conditions) eq(column string, value any) {
	c.add(column+" = $%d", value)
}

func (c *conditions) gte(column string, value any) {
	c.add(column+" >= $%d", value)
}

func (c *conditions) lte(column string, value any) {
	c.add(column+" <= $%d", value)
}

func (c *conditions) add(expr string, value any) {
	c.args = append(c.args, value)
	c.exprs = append(c.exprs, fmt.Sprintf(expr, len(c.args)))
}

// where returns the rendered clause with a leading " WHERE ", or the empty
// string when no condition was added.
func (c *conditions) where() string {
	if len(c.exprs) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.exprs, " AND ")
}

// next returns the placeholder index for an argument appended after the
// conditions, e.g. LIMIT/OFFSET.
func (c *conditions) next() int {
	return len(c.args) + 1
}
