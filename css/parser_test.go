package css

import (
	"sync"
	"testing"
)

func TestParseEmptyInput(t *testing.T) {
	rules, err := ParseCSS(nil, []byte(""), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS(\"\") error = %v", err)
	}
	if rules != nil {
		t.Fatalf("ParseCSS(\"\") = %+v, want nil chain", rules)
	}
}

func TestParseAtRuleSkippedWithSemicolon(t *testing.T) {
	rules, err := ParseCSS(nil, []byte(`@import "foo.css"; p { color: red }`), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	if rules == nil || rules.Selector.Name != "p" || rules.Next != nil {
		t.Fatalf("rules = %+v, want a single rule 'p'", rules)
	}
}

func TestParseAtRuleSkippedWithBlock(t *testing.T) {
	rule := parseOneRule(t, `@media print { p { x: y } } q { z: w }`)
	if rule.Selector.Name != "q" {
		t.Fatalf("Selector.Name = %q, want 'q'", rule.Selector.Name)
	}
	decl := firstDecl(t, rule)
	if decl.Name != "z" || decl.Value.Data != "w" {
		t.Fatalf("decl = %+v, want z:w", decl)
	}
}

func TestParseAtRuleNestedBraces(t *testing.T) {
	rules, err := ParseCSS(nil, []byte(`@media screen { p { x: y } a { b: c } } q { z: w }`), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	if rules == nil || rules.Selector.Name != "q" || rules.Next != nil {
		t.Fatalf("rules = %+v, want single rule 'q', nested @media block fully skipped", rules)
	}
}

func TestParseAtRuleUnterminatedAtEOF(t *testing.T) {
	rules, err := ParseCSS(nil, []byte(`@media screen { p { x: y }`), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v, want silent EOF end of skip", err)
	}
	if rules != nil {
		t.Fatalf("rules = %+v, want nil (no rules follow the unterminated block)", rules)
	}
}

func TestParseCDOAndCDCElided(t *testing.T) {
	rule := parseOneRule(t, `<!-- p { x: y } -->`)
	if rule.Selector.Name != "p" {
		t.Fatalf("Selector.Name = %q, want 'p'", rule.Selector.Name)
	}
	decl := firstDecl(t, rule)
	if decl.Name != "x" || decl.Value.Data != "y" {
		t.Fatalf("decl = %+v, want x:y", decl)
	}
}

func TestParseUnclosedRuleFails(t *testing.T) {
	_, err := ParseCSS(nil, []byte("p {"), "t.css")
	if err == nil {
		t.Fatal("expected a syntax error for unclosed rule")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if se.Line != 1 {
		t.Errorf("Line = %d, want 1", se.Line)
	}
}

func TestParseErrorFormat(t *testing.T) {
	_, err := ParseCSS(nil, []byte("p {"), "test.css")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `css syntax error: unexpected token (test.css:1)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseErrorLineNumber(t *testing.T) {
	src := "p {\n  color: red;\n  bogus\n}"
	_, err := ParseCSS(nil, []byte(src), "t.css")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	se := err.(*SyntaxError)
	if se.Line != 4 {
		t.Errorf("Line = %d, want 4 (the unexpected '}')", se.Line)
	}
}

func TestChainConcatenationP3(t *testing.T) {
	a := []byte("p { color: red }")
	b := []byte("q { color: blue }")

	chain, err := ParseCSS(nil, a, "a.css")
	if err != nil {
		t.Fatalf("ParseCSS(A) error = %v", err)
	}
	chain, err = ParseCSS(chain, b, "b.css")
	if err != nil {
		t.Fatalf("ParseCSS(A+B) error = %v", err)
	}

	direct, err := ParseCSS(nil, append(append([]byte{}, a...), append([]byte(" "), b...)...), "ab.css")
	if err != nil {
		t.Fatalf("ParseCSS(A B) error = %v", err)
	}

	x, y := chain, direct
	for x != nil && y != nil {
		if x.Selector.Name != y.Selector.Name {
			t.Fatalf("selector name mismatch: %q vs %q", x.Selector.Name, y.Selector.Name)
		}
		x, y = x.Next, y.Next
	}
	if x != nil || y != nil {
		t.Fatal("chain lengths differ")
	}
}

func TestChainConcatenationPreservesHead(t *testing.T) {
	first, err := ParseCSS(nil, []byte("p { }"), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	combined, err := ParseCSS(first, []byte("q { }"), "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	if combined != first {
		t.Fatal("expected the original head to be returned unchanged")
	}
	if combined.Next == nil || combined.Next.Selector.Name != "q" {
		t.Fatalf("combined.Next = %+v, want appended rule 'q'", combined.Next)
	}
}

func TestParseDeterminismP5(t *testing.T) {
	src := []byte(`a.x, a.y > b + c:hover { color: red; font: 12pt/1.5 "Times", serif; }`)
	r1, err := ParseCSS(nil, src, "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	r2, err := ParseCSS(nil, src, "t.css")
	if err != nil {
		t.Fatalf("ParseCSS error = %v", err)
	}
	if describeSelector(r1.Selector) != describeSelector(r2.Selector) {
		t.Fatalf("selectors differ across runs: %q vs %q", describeSelector(r1.Selector), describeSelector(r2.Selector))
	}
}

func TestParseConcurrentDisjointInputs(t *testing.T) {
	inputs := []string{
		"p { color: red }",
		"q { color: blue }",
		"r.x { color: green }",
		"s > t { color: yellow }",
	}
	var wg sync.WaitGroup
	errs := make([]error, len(inputs))
	for i, src := range inputs {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			_, err := ParseCSS(nil, []byte(src), "t.css")
			errs[i] = err
		}(i, src)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("input %d: unexpected error: %v", i, err)
		}
	}
}

func TestParseScenarioOne(t *testing.T) {
	rule := parseOneRule(t, "p { color: red; }")
	if rule.Selector.Combine != CombineNone || rule.Selector.Name != "p" {
		t.Fatalf("selector = %+v, want leaf 'p'", rule.Selector)
	}
	decl := firstDecl(t, rule)
	if decl.Name != "color" || decl.Next != nil {
		t.Fatalf("decl chain = %+v, want single 'color'", decl)
	}
	if decl.Value.Type != ValKeyword || decl.Value.Data != "red" {
		t.Fatalf("value = %+v, want keyword 'red'", decl.Value)
	}
}
