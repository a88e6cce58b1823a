package sqlbind

import (
	"strings"

	"github.com/syssam/sqlbind/dialect"
)

// ParamCounter hands out the sequential 1-based positions placeholders
// receive while a single statement is generated. The SET, WHERE and HAVING
// fragments of one statement share one counter, in the order those clauses
// appear in the final SQL text, so the printed numbers rise monotonically
// left to right and always match the order the bound values are supplied
// in at call time.
type ParamCounter struct {
	current int
}

// NewParamCounter returns a counter positioned at 1.
func NewParamCounter() *ParamCounter {
	return &ParamCounter{current: 1}
}

// Next returns the current position and advances the counter. Every
// placeholder emitted during a generation pass consumes exactly one
// position.
func (c *ParamCounter) Next() int {
	n := c.current
	c.current++
	return n
}

// Current returns the position the next placeholder will receive, without
// consuming it.
func (c *ParamCounter) Current() int {
	return c.current
}

// Count returns the number of positions handed out so far, which equals
// the total parameter count once generation completes.
func (c *ParamCounter) Count() int {
	return c.current - 1
}

// numberClause rewrites every bare $ marker in clause with the next
// numbered placeholder for the dialect, consuming one counter position per
// marker in left-to-right scan order. The substitution is purely
// syntactic: the clause is otherwise copied verbatim and field names are
// never inspected. A field appearing twice consumes two distinct
// positions, one per textual occurrence.
func numberClause(clause, d string, c *ParamCounter) string {
	var sb strings.Builder
	sb.Grow(len(clause) + 8)
	for _, r := range clause {
		if r == marker {
			sb.WriteString(dialect.Placeholder(d, c.Next()))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// marker is the unnumbered placeholder character in Where and Having
// fragments. Pre-numbered placeholders are not supported; every marker in
// a clause must be bare.
const marker = '$'
