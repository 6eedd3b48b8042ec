package css

import "fmt"

// Kind identifies a token produced by the lexer. Single-character tokens
// (punctuation the parser consumes literally, such as '{', ':', ',') use
// their own byte value as the Kind, matching the condition/combinator/value
// type codes used elsewhere in this package. Multi-character token classes
// use the negative constants below so they can never collide with a byte
// value.
type Kind int

const (
	KEOF     Kind = -1
	KKeyword Kind = -2
	KNumber  Kind = -3
	KLength  Kind = -4
	KPercent Kind = -5
	KString  Kind = -6
	KColor   Kind = -7
	KURI     Kind = -8
)

func (k Kind) String() string {
	switch k {
	case KEOF:
		return "end of file"
	case KKeyword:
		return "keyword"
	case KNumber:
		return "number"
	case KLength:
		return "length"
	case KPercent:
		return "percentage"
	case KString:
		return "string"
	case KColor:
		return "color"
	case KURI:
		return "URI"
	}
	return fmt.Sprintf("%q", string(rune(k)))
}

// scratchSize bounds the lexer's token-payload buffer. Exceeding it is a
// fatal lexical error ("token too long"), matching the 1024-byte scratch
// buffer described for this lexer.
const scratchSize = 1024

// lexer owns a cursor over a NUL-terminated byte slice and accumulates the
// payload of the token currently being produced into a bounded scratch
// buffer. It has one externally meaningful operation: next, which produces
// the next token kind; the token's text lives in the scratch buffer (Text)
// until the next call to next.
type lexer struct {
	file string
	src  []byte
	pos  int  // offset of the current byte c
	c    byte // current byte; 0 at end of input
	line int  // 1-based

	scratch [scratchSize]byte
	n       int // length of text accumulated in scratch for the current token

	Kind Kind
	Text string
}

func newLexer(file string, src []byte) *lexer {
	if len(src) == 0 || src[len(src)-1] != 0 {
		src = append(append([]byte{}, src...), 0)
	}
	l := &lexer{file: file, src: src, line: 1}
	l.c = l.src[0]
	return l
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(c byte) bool {
	return c == '\\' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 128
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}

// advance consumes the current byte and loads the next one.
func (l *lexer) advance() {
	if l.c == '\n' {
		l.line++
	}
	l.pos++
	if l.pos >= len(l.src) {
		l.c = 0
		return
	}
	l.c = l.src[l.pos]
}

// peekByte returns the byte after the current one without consuming
// anything, or 0 past the end.
func (l *lexer) peekByte() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *lexer) resetScratch() {
	l.n = 0
}

func (l *lexer) push(c byte) error {
	if l.n >= scratchSize-1 {
		return newSyntaxError(l.file, l.line, "token too long")
	}
	l.scratch[l.n] = c
	l.n++
	return nil
}

func (l *lexer) pushAdvance() error {
	if err := l.push(l.c); err != nil {
		return err
	}
	l.advance()
	return nil
}

func (l *lexer) text() string {
	return string(l.scratch[:l.n])
}

func (l *lexer) fail(format string, args ...interface{}) error {
	return newSyntaxError(l.file, l.line, format, args...)
}

// next produces the next token into l.Kind/l.Text, skipping whitespace,
// comments, and CDO/CDC markers along the way.
func (l *lexer) next() error {
	for {
		for isWhitespace(l.c) {
			l.advance()
		}
		l.resetScratch()

		switch {
		case l.c == 0:
			l.Kind = KEOF
			l.Text = ""
			return nil

		case l.c == '/':
			l.advance()
			if l.c == '*' {
				l.advance()
				if err := l.consumeComment(); err != nil {
					return err
				}
				continue
			}
			l.Kind = Kind('/')
			l.Text = "/"
			return nil

		case l.c == '<':
			if l.peekByte() == '!' {
				l.advance() // '!'
				l.advance()
				if l.c == '-' && l.peekByte() == '-' {
					l.advance()
					l.advance()
					continue // CDO consumed and discarded
				}
				return l.fail("unexpected character")
			}
			l.advance()
			l.Kind = Kind('<')
			l.Text = "<"
			return nil

		case l.c == '-':
			if l.peekAt(1) == '-' && l.peekAt(2) == '>' {
				l.advance()
				l.advance()
				l.advance()
				continue // CDC consumed and discarded
			}
			if isDigit(l.peekByte()) || (l.peekByte() == '.' && isDigit(l.peekAt(2))) {
				if err := l.push('-'); err != nil {
					return err
				}
				l.advance()
				return l.lexNumber()
			}
			if isNameStart(l.peekByte()) || l.peekByte() == '-' {
				if err := l.push('-'); err != nil {
					return err
				}
				l.advance()
				return l.lexKeyword()
			}
			l.advance()
			l.Kind = Kind('-')
			l.Text = "-"
			return nil

		case l.c == '+':
			if isDigit(l.peekByte()) || (l.peekByte() == '.' && isDigit(l.peekAt(2))) {
				if err := l.push('+'); err != nil {
					return err
				}
				l.advance()
				return l.lexNumber()
			}
			l.advance()
			l.Kind = Kind('+')
			l.Text = "+"
			return nil

		case l.c == '.':
			if isDigit(l.peekByte()) {
				if err := l.push('.'); err != nil {
					return err
				}
				l.advance()
				return l.lexNumberFraction()
			}
			l.advance()
			l.Kind = Kind('.')
			l.Text = "."
			return nil

		case l.c == '#':
			return l.lexHash()

		case l.c == '"' || l.c == '\'':
			return l.lexString()

		case isDigit(l.c):
			return l.lexNumber()

		case l.c == 'u':
			return l.lexURLOrKeyword()

		case isNameStart(l.c):
			return l.lexKeyword()

		default:
			c := l.c
			l.advance()
			l.Kind = Kind(c)
			l.Text = string(c)
			return nil
		}
	}
}

// peekAt returns the byte n positions ahead of the current one (peekAt(0)
// is the current byte itself), or 0 past the end.
func (l *lexer) peekAt(n int) byte {
	idx := l.pos + n
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *lexer) consumeComment() error {
	for {
		if l.c == 0 {
			return l.fail("unterminated comment")
		}
		if l.c == '*' && l.peekByte() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
}

func (l *lexer) lexHash() error {
	l.advance() // consume '#'
	var nibbles [6]int
	count := 0
	for count < 6 && isHexDigit(l.c) {
		nibbles[count] = hexValue(l.c)
		count++
		l.advance()
	}
	if count != 3 && count != 6 {
		return l.fail("invalid color")
	}
	var value int
	if count == 3 {
		value = (nibbles[0] << 20) | (nibbles[1] << 12) | (nibbles[2] << 4)
	} else {
		value = (nibbles[0] << 20) | (nibbles[1] << 16) | (nibbles[2] << 12) |
			(nibbles[3] << 8) | (nibbles[4] << 4) | nibbles[5]
	}
	l.resetScratch()
	hex := fmt.Sprintf("%06x", value)
	for i := 0; i < len(hex); i++ {
		if err := l.push(hex[i]); err != nil {
			return err
		}
	}
	l.Kind = KColor
	l.Text = l.text()
	return nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func (l *lexer) lexString() error {
	quote := l.c
	l.advance()
	for {
		switch {
		case l.c == quote:
			l.advance()
			l.Kind = KString
			l.Text = l.text()
			return nil
		case l.c == 0:
			return l.fail("unterminated string")
		case l.c == '\\':
			l.advance()
			switch l.c {
			case 'n':
				if err := l.push('\n'); err != nil {
					return err
				}
				l.advance()
			case 'r':
				if err := l.push('\r'); err != nil {
					return err
				}
				l.advance()
			case 'f':
				if err := l.push('\f'); err != nil {
					return err
				}
				l.advance()
			case '\n':
				l.advance() // line continuation, produces nothing
			case '\r':
				l.advance()
				if l.c == '\n' {
					l.advance()
				}
			case '\f':
				l.advance()
			case 0:
				return l.fail("unterminated string")
			default:
				if err := l.pushAdvance(); err != nil {
					return err
				}
			}
		default:
			if err := l.pushAdvance(); err != nil {
				return err
			}
		}
	}
}

func (l *lexer) lexNumber() error {
	for isDigit(l.c) {
		if err := l.pushAdvance(); err != nil {
			return err
		}
	}
	if l.c == '.' && isDigit(l.peekByte()) {
		if err := l.pushAdvance(); err != nil {
			return err
		}
		return l.lexNumberFraction()
	}
	return l.finishNumber()
}

// lexNumberFraction continues a number whose integer part (and the
// decimal point) is already in the scratch buffer.
func (l *lexer) lexNumberFraction() error {
	for isDigit(l.c) {
		if err := l.pushAdvance(); err != nil {
			return err
		}
	}
	return l.finishNumber()
}

func (l *lexer) finishNumber() error {
	if l.c == '%' {
		if err := l.pushAdvance(); err != nil {
			return err
		}
		l.Kind = KPercent
		l.Text = l.text()
		return nil
	}
	if isNameStart(l.c) {
		for isNameChar(l.c) {
			if err := l.pushAdvance(); err != nil {
				return err
			}
		}
		l.Kind = KLength
		l.Text = l.text()
		return nil
	}
	l.Kind = KNumber
	l.Text = l.text()
	return nil
}

// lexURLOrKeyword speculatively consumes "url(" and, on success, discards
// the URI payload up to and including the first ')'. On failure it falls
// back to lexing a plain keyword starting with the bytes already consumed.
func (l *lexer) lexURLOrKeyword() error {
	start := l.pos
	startLine := l.line
	if err := l.pushAdvance(); err != nil { // 'u'
		return err
	}
	if l.c == 'r' {
		if err := l.pushAdvance(); err != nil {
			return err
		}
		if l.c == 'l' {
			if err := l.pushAdvance(); err != nil {
				return err
			}
			if l.c == '(' {
				l.advance()
				for l.c != ')' {
					if l.c == 0 {
						return l.fail("unterminated url")
					}
					l.advance()
				}
				l.advance()
				l.resetScratch()
				l.Kind = KURI
				l.Text = ""
				return nil
			}
		}
	}
	// Not a url(...): rewind to the start of the would-be "url(" and lex
	// a plain keyword instead.
	l.pos = start
	l.line = startLine
	l.c = l.src[l.pos]
	l.resetScratch()
	return l.lexKeyword()
}

func (l *lexer) lexKeyword() error {
	for isNameChar(l.c) {
		if l.c == '\\' {
			return l.fail("unexpected character")
		}
		if err := l.pushAdvance(); err != nil {
			return err
		}
	}
	l.Kind = KKeyword
	l.Text = l.text()
	return nil
}
