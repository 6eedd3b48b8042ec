package css

// tokenStream wraps a lexer with a single buffered token of lookahead.
// CSS 2.1 §4.1.1-style tokenization, adapted to the one-token-lookahead
// discipline the parser relies on throughout.
type tokenStream struct {
	lex  *lexer
	kind Kind
	text string
}

func newTokenStream(file string, src []byte) (*tokenStream, error) {
	ts := &tokenStream{lex: newLexer(file, src)}
	if err := ts.advance(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (ts *tokenStream) advance() error {
	if err := ts.lex.next(); err != nil {
		return err
	}
	ts.kind = ts.lex.Kind
	ts.text = ts.lex.Text
	traceToken(ts.kind, ts.text)
	return nil
}

func (ts *tokenStream) line() int {
	return ts.lex.line
}

func (ts *tokenStream) file() string {
	return ts.lex.file
}

// accept advances and returns true if the lookahead token matches kind,
// otherwise it leaves the stream untouched and returns false.
func (ts *tokenStream) accept(kind Kind) (bool, error) {
	if ts.kind != kind {
		return false, nil
	}
	if err := ts.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expect is accept, but a mismatch is a fatal "unexpected token" error.
func (ts *tokenStream) expect(kind Kind) (string, error) {
	if ts.kind != kind {
		return "", ts.errorf("unexpected token")
	}
	text := ts.text
	if err := ts.advance(); err != nil {
		return "", err
	}
	return text, nil
}

func (ts *tokenStream) errorf(format string, args ...interface{}) error {
	return newSyntaxError(ts.file(), ts.line(), format, args...)
}
