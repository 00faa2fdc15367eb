// lexer.go — tokenizer with single-token lookahead.
//
// TokenStream turns a CharStream into Tokens on demand. It keeps exactly one
// cached lookahead: Peek computes and caches the next token without consuming
// it, Take returns and clears the cache (lexing fresh when the cache is
// empty). A failed lex is cached too, so Peek/Take keep reporting the same
// error for the same position instead of re-scanning a half-consumed stream.
//
// Tokenization rules:
//   - whitespace is skipped and never produces a token
//   - a digit starts a maximal digit run parsed as a signed 64-bit integer;
//     parse failure (overflow) is an InvalidNumber error
//   - a letter or underscore starts a maximal identifier run, checked against
//     the keyword table ('let', 'mut')
//   - single-character punctuation maps 1:1 to a token kind; '=' munches a
//     following '=' into EQ
//   - any other character is an UnknownToken error
//   - end of input yields the EOF token, repeatedly
//
// Errors are structured (*LexError); rendering them is the driver's job
// (see errors.go).
package toylang

import (
	"fmt"
	"strconv"
)

// LexErrorKind discriminates the lexer's error cases.
type LexErrorKind int

const (
	LexUnknownToken LexErrorKind = iota
	LexInvalidNumber
	LexUnterminatedString // reserved: the current grammar has no strings
	LexUnexpectedEOF
)

func (k LexErrorKind) String() string {
	switch k {
	case LexUnknownToken:
		return "unknown token"
	case LexInvalidNumber:
		return "invalid number"
	case LexUnterminatedString:
		return "unterminated string"
	case LexUnexpectedEOF:
		return "unexpected end of input"
	default:
		return "lex error"
	}
}

// LexError is a structured lexer failure. Offset is a byte offset into the
// original source; Text carries the offending slice when there is one.
type LexError struct {
	Kind   LexErrorKind
	Text   string
	Offset int
}

func (e *LexError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s %q at byte %d", e.Kind, e.Text, e.Offset)
	}
	return fmt.Sprintf("%s at byte %d", e.Kind, e.Offset)
}

// TokenStream lexes a source string with one token of lookahead.
type TokenStream struct {
	stream *CharStream

	cached bool
	tok    Token
	err    error
}

// NewTokenStream creates a token stream over src.
func NewTokenStream(src string) *TokenStream {
	return &TokenStream{stream: NewCharStream(src)}
}

// Peek returns the next token without consuming it.
func (ts *TokenStream) Peek() (Token, error) {
	if !ts.cached {
		ts.tok, ts.err = ts.readToken()
		ts.cached = true
	}
	return ts.tok, ts.err
}

// Take consumes and returns the next token. EOF is sticky: taking it leaves
// the stream at EOF, so the next Take yields EOF again.
func (ts *TokenStream) Take() (Token, error) {
	tok, err := ts.Peek()
	if err != nil {
		return tok, err
	}
	ts.cached = false
	return tok, nil
}

// ByteOffset reports the byte offset of the upcoming (uncached) input.
func (ts *TokenStream) ByteOffset() int {
	return ts.stream.ByteOffset()
}

func (ts *TokenStream) readToken() (Token, error) {
	ts.stream.SkipWhitespace()

	offset := ts.stream.ByteOffset()
	if ts.stream.Remaining() == 0 {
		return Token{Kind: EOF, Offset: offset}, nil
	}

	ch, _ := ts.stream.Peek()

	switch ch {
	case '(':
		ts.stream.Advance()
		return Token{Kind: LROUND, Lexeme: "(", Offset: offset}, nil
	case ')':
		ts.stream.Advance()
		return Token{Kind: RROUND, Lexeme: ")", Offset: offset}, nil
	case '{':
		ts.stream.Advance()
		return Token{Kind: LCURLY, Lexeme: "{", Offset: offset}, nil
	case '}':
		ts.stream.Advance()
		return Token{Kind: RCURLY, Lexeme: "}", Offset: offset}, nil
	case ':':
		ts.stream.Advance()
		return Token{Kind: COLON, Lexeme: ":", Offset: offset}, nil
	case ';':
		ts.stream.Advance()
		return Token{Kind: SEMICOLON, Lexeme: ";", Offset: offset}, nil
	case '+':
		ts.stream.Advance()
		return Token{Kind: PLUS, Lexeme: "+", Offset: offset}, nil
	case '-':
		ts.stream.Advance()
		return Token{Kind: MINUS, Lexeme: "-", Offset: offset}, nil
	case '*':
		ts.stream.Advance()
		return Token{Kind: MULT, Lexeme: "*", Offset: offset}, nil
	case '=':
		ts.stream.Advance()
		if next, ok := ts.stream.Peek(); ok && next == '=' {
			ts.stream.Advance()
			return Token{Kind: EQ, Lexeme: "==", Offset: offset}, nil
		}
		return Token{Kind: ASSIGN, Lexeme: "=", Offset: offset}, nil
	}

	if isDigit(ch) {
		return ts.readNumber(offset)
	}
	if isIdentFirst(ch) {
		return ts.readKeywordOrIdentifier(offset)
	}

	ts.stream.Advance()
	return Token{}, &LexError{Kind: LexUnknownToken, Text: string(ch), Offset: offset}
}

func (ts *TokenStream) readNumber(offset int) (Token, error) {
	digits := ts.stream.TakeWhile(isDigit)
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Token{}, &LexError{Kind: LexInvalidNumber, Text: digits, Offset: offset}
	}
	return Token{Kind: INTEGER, Lexeme: digits, Int: value, Offset: offset}, nil
}

func (ts *TokenStream) readKeywordOrIdentifier(offset int) (Token, error) {
	name := ts.stream.TakeWhile(isIdentPart)
	if kind, ok := keywords[name]; ok {
		return Token{Kind: kind, Lexeme: name, Offset: offset}, nil
	}
	return Token{Kind: ID, Lexeme: name, Offset: offset}, nil
}
