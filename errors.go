// errors.go — caret-snippet rendering for pipeline errors.
//
// The pipeline phases return structured error values carrying byte offsets;
// they never format human-readable diagnostics themselves. This file is the
// rendering half, used by drivers: WrapErrorWithSource recognizes the four
// phase error families, derives a 1-based line/column from the byte offset,
// and returns a new error whose message is a multi-line snippet with a caret
// under the offending column:
//
//	PARSE ERROR at 1:10: unexpected EOF at byte 9 (expected ';')
//
//	   1 | let x = 9
//	     |          ^
//
// The snippet shows up to one line of context before and after. Foreign
// errors are returned unchanged. This utility is independent of the
// interpreter and safe to use anywhere lex/parse/resolve/type errors surface.
package toylang

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet of
// src. Errors that are not pipeline phase errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName renders like WrapErrorWithSource, labeling the snippet
// with a source name ("in <name>") when one is given.
func WrapErrorWithName(err error, srcName string, src string) error {
	offset, ok := ErrorOffset(err)
	if !ok {
		return err
	}
	header := strings.ToUpper(ErrorPhase(err)) + " ERROR"
	line, col := lineColAtByte(src, offset)
	return fmt.Errorf("%s", snippetString(src, header, srcName, line, col, err.Error()))
}

// lineColAtByte converts a byte offset into 1-based (line, col). The column
// counts bytes from the start of the line, which is exact for the ASCII
// grammar this language lexes.
func lineColAtByte(src string, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := 1 + strings.Count(before, "\n")
	lastNL := strings.LastIndex(before, "\n")
	return line, offset - lastNL // lastNL is -1 on the first line
}

// snippetString builds the snippet with a header and a caret. It shows at
// most one previous and one next line; out-of-range coordinates are clamped
// so the caret always renders.
func snippetString(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
