package css

import "testing"

func TestSyntaxErrorMessageFormat(t *testing.T) {
	err := newSyntaxError("style.css", 42, "expected %s", "value")
	want := "css syntax error: expected value (style.css:42)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tooLong := make([]byte, 1024)
	for i := range tooLong {
		tooLong[i] = 'a'
	}

	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated comment", "/* never closes", "unterminated comment"},
		{"unterminated string", `p { x: "abc }`, "unterminated string"},
		{"invalid color", "p { x: #zz }", "invalid color"},
		{"token too long", string(tooLong), "token too long"},
		{"unexpected token on missing brace", "p {", "unexpected token"},
		{"expected keyword in property", "p { : red }", "expected keyword in property"},
		{"expected value", "p { color: : }", "expected value"},
		{"expected selector", "> b { }", "expected selector"},
		{"expected attribute value", "p[href=] { }", "expected attribute value"},
		{"expected condition", "p[href !] { }", "expected condition"},
		{"expected keyword after colon", "p:{ }", "expected keyword after ':'"},
		{"expected keyword after dot", "p.{ }", "expected keyword after '.'"},
		{"invalid color as id condition", "p#{ }", "invalid color"},
		{"expected keyword after bracket", "p[1] { }", "expected keyword after '['"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSS(nil, []byte(tt.src), "t.css")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.msg)
			}
			se, ok := err.(*SyntaxError)
			if !ok {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if se.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", se.Msg, tt.msg)
			}
		})
	}
}

func TestPropertiesErrorTaxonomy(t *testing.T) {
	_, err := ParseCSSProperties([]byte("color"), "t.css")
	if err == nil {
		t.Fatal("expected error for missing ':'")
	}
}
