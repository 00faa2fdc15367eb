// token.go — token kinds and the Token carrier produced by the lexer.
package toylang

import "strconv"

// TokenKind represents the kind of token.
type TokenKind int

const (
	// Special
	EOF TokenKind = iota

	// Keywords
	LET
	MUT

	// Punctuation
	LROUND    // "("
	RROUND    // ")"
	LCURLY    // "{"
	RCURLY    // "}"
	COLON     // ":"
	SEMICOLON // ";"

	// Operators
	ASSIGN // "="
	EQ     // "=="
	PLUS
	MINUS
	MULT

	// Literals & identifiers
	ID
	INTEGER
)

var tokenKindNames = map[TokenKind]string{
	EOF:       "EOF",
	LET:       "'let'",
	MUT:       "'mut'",
	LROUND:    "'('",
	RROUND:    "')'",
	LCURLY:    "'{'",
	RCURLY:    "'}'",
	COLON:     "':'",
	SEMICOLON: "';'",
	ASSIGN:    "'='",
	EQ:        "'=='",
	PLUS:      "'+'",
	MINUS:     "'-'",
	MULT:      "'*'",
	ID:        "identifier",
	INTEGER:   "integer",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// keywords maps reserved identifier spellings to their token kinds.
var keywords = map[string]TokenKind{
	"let": LET,
	"mut": MUT,
}

// Token is a lexical token. Offset is the byte offset of the token's first
// character in the original source; for the EOF token it is the source length.
type Token struct {
	Kind   TokenKind
	Lexeme string // raw source text (identifier name, digits, punctuation)
	Int    int64  // parsed payload when Kind == INTEGER
	Offset int
}
