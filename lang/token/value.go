package token

import gotoken "go/token"

// Position is the source position used for error reporting. It is the
// standard library's go/token.Position so that positions are compatible
// with go/scanner's ErrorList, which the scanner package reuses. Only the
// Filename and Line fields are meaningful for this language.
type Position = gotoken.Position

// Value is the value of a token. Raw is always set to the raw lexeme as it
// appeared in the source (for STRING tokens, including the quotes), Line is
// the 1-based source line the token starts on, and the typed payload fields
// are set based on the token type: Num for NUMBER, Str for STRING (the
// interpreted content, without quotes).
type Value struct {
	Raw  string
	Line int
	Num  float64
	Str  string
}

// Pos returns the value's position in the file named filename. Only the
// line is known.
func (v Value) Pos(filename string) Position {
	return Position{Filename: filename, Line: v.Line}
}

// Literal returns the string representation of the value of a literal token
// (identifier, number or string), and an empty string for any other token.
func (tok Token) Literal(val Value) string {
	switch tok {
	case IDENT, NUMBER, STRING:
		return val.Raw
	}
	return ""
}
