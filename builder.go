package sqlbind

import (
	"strings"
	"unicode"
)

// Builder assembles a SQL statement piece by piece. It is the only
// identifier-sanitization boundary in the package: table and column names
// pass through a character whitelist before they reach the statement,
// while keywords and pre-validated raw fragments are appended verbatim
// with single-space separation.
//
// Sanitization strips disallowed characters instead of rejecting them. A
// table name with unexpected punctuation therefore yields a different
// identifier, not an error; the statement it produces fails (if at all)
// at execution time, in the driver. Builder itself performs no I/O and
// cannot fail.
type Builder struct {
	sb strings.Builder
}

// Keyword appends a SQL keyword, separated from the preceding content by
// exactly one space.
func (b *Builder) Keyword(kw string) *Builder {
	b.pad()
	b.sb.WriteString(kw)
	return b
}

// Ident sanitizes and appends a single identifier. Every character that
// is not a Unicode letter, a Unicode digit or an underscore is stripped.
func (b *Builder) Ident(name string) *Builder {
	b.pad()
	b.sb.WriteString(sanitizeIdent(name))
	return b
}

// IdentList sanitizes the given identifiers and appends them joined
// with ", ".
func (b *Builder) IdentList(names ...string) *Builder {
	b.pad()
	b.sb.WriteString(identList(names))
	return b
}

// Raw appends a pre-validated fragment, such as an already-numbered WHERE
// clause. No separating space is inserted when the fragment begins with a
// comma or semicolon, so generated lists and statement continuations can
// be appended piecewise.
func (b *Builder) Raw(text string) *Builder {
	if b.sb.Len() > 0 && !strings.HasPrefix(text, ",") && !strings.HasPrefix(text, ";") {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(text)
	return b
}

// String returns the assembled statement with surrounding whitespace
// trimmed.
func (b *Builder) String() string {
	return strings.TrimSpace(b.sb.String())
}

func (b *Builder) pad() {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
}

// sanitizeIdent keeps only letters, digits and underscores, with letters
// and digits classified per Unicode. Applying it to an already-safe
// identifier returns the identifier unchanged.
func sanitizeIdent(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if isIdentRune(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// identList sanitizes and joins identifiers with ", ".
func identList(names []string) string {
	safe := make([]string, len(names))
	for i, n := range names {
		safe[i] = sanitizeIdent(n)
	}
	return strings.Join(safe, ", ")
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
