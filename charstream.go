// charstream.go — UTF-8 aware character cursor with byte-offset tracking.
//
// CharStream wraps an immutable source string and hands out codepoints one at
// a time. It is the only layer that touches raw bytes; everything above it
// (lexer, parser) works in terms of runes and byte offsets.
//
// End of input is a valid terminal state, not an error: Peek/Take report it
// with a false second return, and the Take*/Skip* helpers simply stop.
// Multi-byte codepoints are never split; ByteOffset always lands on a rune
// boundary.
package toylang

import "unicode/utf8"

// CharStream is a forward-only cursor over an immutable UTF-8 buffer.
type CharStream struct {
	src string
	pos int // byte offset of the next unread rune
}

// NewCharStream returns a cursor positioned at the start of src.
func NewCharStream(src string) *CharStream {
	return &CharStream{src: src}
}

// Peek returns the next codepoint without consuming it.
// The second return is false once the stream is exhausted.
func (cs *CharStream) Peek() (rune, bool) {
	if cs.pos >= len(cs.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(cs.src[cs.pos:])
	return r, true
}

// Take consumes and returns the next codepoint.
func (cs *CharStream) Take() (rune, bool) {
	if cs.pos >= len(cs.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(cs.src[cs.pos:])
	cs.pos += size
	return r, true
}

// Advance consumes one codepoint, if any, discarding it.
func (cs *CharStream) Advance() {
	cs.Take()
}

// TakeUntil consumes codepoints until pred holds (or the stream ends) and
// returns the consumed slice. The rune that satisfied pred is not consumed.
func (cs *CharStream) TakeUntil(pred func(rune) bool) string {
	start := cs.pos
	for {
		r, ok := cs.Peek()
		if !ok || pred(r) {
			return cs.src[start:cs.pos]
		}
		cs.Take()
	}
}

// TakeWhile consumes codepoints while pred holds and returns the consumed slice.
func (cs *CharStream) TakeWhile(pred func(rune) bool) string {
	return cs.TakeUntil(func(r rune) bool { return !pred(r) })
}

// SkipUntil consumes codepoints until pred holds, discarding them.
func (cs *CharStream) SkipUntil(pred func(rune) bool) {
	cs.TakeUntil(pred)
}

// SkipWhile consumes codepoints while pred holds, discarding them.
func (cs *CharStream) SkipWhile(pred func(rune) bool) {
	cs.TakeWhile(pred)
}

// SkipWhitespace discards a run of whitespace characters.
func (cs *CharStream) SkipWhitespace() {
	cs.SkipWhile(isWhitespace)
}

// ByteOffset reports the byte offset of the next unread rune, counted from
// the start of the buffer. At exhaustion it equals the buffer length.
func (cs *CharStream) ByteOffset() int {
	return cs.pos
}

// Remaining reports how many unread bytes are left.
func (cs *CharStream) Remaining() int {
	return len(cs.src) - cs.pos
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentFirst(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentFirst(r) || isDigit(r)
}
