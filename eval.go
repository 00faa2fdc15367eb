// eval.go — the pipeline front door.
//
// Eval runs the four phases in order — lex+parse, resolve, type-check,
// execute — short-circuiting on the first failure. A later phase is never
// invoked once an earlier one has failed, so exactly one of the four
// structured error families can come back: *LexError, *ParseError,
// *ResolveError or *TypeError, each carrying byte offsets into the original
// source. The pipeline is synchronous and re-entrant: every call owns all of
// its state, so concurrent evaluations of independent sources need nothing
// more than independent calls.
package toylang

// Version of the toylang pipeline, surfaced by the REPL banner.
const Version = "0.1.0"

// Eval lexes, parses, resolves, type-checks and executes src. On success the
// returned Interpreter holds the final environment; no statement surfaces a
// result value. On failure it returns one structured phase error.
func Eval(src string) (*Interpreter, error) {
	program, err := Parse(src)
	if err != nil {
		return nil, err
	}

	ctx, rast, err := Resolve(program)
	if err != nil {
		return nil, err
	}

	if err := Check(ctx, rast); err != nil {
		return nil, err
	}

	ip := NewInterpreter(ctx)
	ip.Run(rast)
	return ip, nil
}

// ErrorPhase names the pipeline phase an error came from: "lex", "parse",
// "resolve" or "type". Unknown errors report "error".
func ErrorPhase(err error) string {
	switch err.(type) {
	case *LexError:
		return "lex"
	case *ParseError:
		return "parse"
	case *ResolveError:
		return "resolve"
	case *TypeError:
		return "type"
	default:
		return "error"
	}
}

// ErrorOffset extracts the byte offset carried by a structured phase error.
// The boolean is false for foreign errors.
func ErrorOffset(err error) (int, bool) {
	switch e := err.(type) {
	case *LexError:
		return e.Offset, true
	case *ParseError:
		return e.Offset, true
	case *ResolveError:
		return e.Offset, true
	case *TypeError:
		return e.Offset, true
	default:
		return 0, false
	}
}
