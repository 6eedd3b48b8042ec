package css

import "fmt"

// SyntaxError is the single error type this package returns. Every fatal
// condition in the lexer or parser — lexical, token-mismatch, or grammar —
// becomes one of these; there is no local recovery and no warning channel.
//
// CSS 2.1 parsers vary widely in how tolerant they are of malformed input;
// this one is deliberately not tolerant past the first error inside a rule,
// matching the source this package imitates.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css syntax error: %s (%s:%d)", e.Msg, e.File, e.Line)
}

func newSyntaxError(file string, line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
