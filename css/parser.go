package css

// parser is a recursive-descent builder of selectors, conditions, values,
// declarations, and rules over a tokenStream. It never peeks more than one
// token ahead; data flows one way, bytes -> tokens -> AST.
type parser struct {
	ts *tokenStream
}

// ParseCSS parses a full stylesheet and appends its rules to chain (which
// may be nil). It returns the head of the combined chain, preserving
// document order, so repeated calls -
//
//	rules, err := ParseCSS(nil, userAgentCSS, "ua.css")
//	rules, err = ParseCSS(rules, documentCSS, "doc.css")
//
// - load multiple stylesheets into one ordered chain.
//
// CSS 2.1 §4 Syntax and basic data types; spec.md §6.
func ParseCSS(chain *Rule, source []byte, file string) (*Rule, error) {
	ts, err := newTokenStream(file, source)
	if err != nil {
		return nil, err
	}
	p := &parser{ts: ts}

	head, tail := chain, chain
	for tail != nil && tail.Next != nil {
		tail = tail.Next
	}

	for p.ts.kind != KEOF {
		if p.ts.kind == Kind('@') {
			if err := p.skipAtRule(); err != nil {
				return nil, err
			}
			continue
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = rule
		} else {
			tail.Next = rule
		}
		tail = rule
	}
	return head, nil
}

// ParseCSSProperties parses a bare declaration list with no surrounding
// braces, for inline "style" attributes.
//
// CSS 2.1 §6.1.2 Inline style information; spec.md §6.
func ParseCSSProperties(source []byte, file string) (*Property, error) {
	ts, err := newTokenStream(file, source)
	if err != nil {
		return nil, err
	}
	p := &parser{ts: ts}
	return p.parseDeclarationList(KEOF)
}

// parseRule parses one "selector_list { declaration_list }" block.
//
// CSS 2.1 §4.1.7 Rule sets, declaration blocks, and selectors
func (p *parser) parseRule() (*Rule, error) {
	sel, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.expect(Kind('{')); err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationList(Kind('}'))
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.expect(Kind('}')); err != nil {
		return nil, err
	}
	rule := &Rule{Selector: sel, Decls: decls}
	traceRule(rule)
	return rule, nil
}

// skipAtRule consumes "@" keyword ... and discards it wholesale: either up
// to a top-level ";" or through a brace-matched "{ ... }" block. EOF during
// the block silently ends the skip.
//
// CSS 2.1 §4.1.5 At-rules (unrecognized at-rules are not respecified here)
func (p *parser) skipAtRule() error {
	if _, err := p.ts.expect(Kind('@')); err != nil {
		return err
	}
	if _, err := p.ts.expect(KKeyword); err != nil {
		return err
	}
	for {
		switch p.ts.kind {
		case Kind(';'):
			return p.ts.advance()
		case Kind('{'):
			return p.skipBlock()
		case KEOF:
			return nil
		default:
			if err := p.ts.advance(); err != nil {
				return err
			}
		}
	}
}

// skipBlock consumes a brace-delimited block, tracking nesting depth so
// inner "{ ... }" blocks (e.g. nested rules inside @media) are matched
// correctly.
func (p *parser) skipBlock() error {
	depth := 0
	for {
		switch p.ts.kind {
		case Kind('{'):
			depth++
			if err := p.ts.advance(); err != nil {
				return err
			}
		case Kind('}'):
			depth--
			if err := p.ts.advance(); err != nil {
				return err
			}
			if depth == 0 {
				return nil
			}
		case KEOF:
			return nil
		default:
			if err := p.ts.advance(); err != nil {
				return err
			}
		}
	}
}

// parseDeclarationList parses a possibly empty, ";"-separated sequence of
// declarations, stopping at stop (KEOF for a bare property list, '}' for a
// rule body). A trailing ";" before the terminator is tolerated.
//
// CSS 2.1 §4.1.8 Declarations and properties
func (p *parser) parseDeclarationList(stop Kind) (*Property, error) {
	var head, tail *Property
	for p.ts.kind != stop && p.ts.kind != KEOF {
		if ok, err := p.ts.accept(Kind(';')); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = decl
		} else {
			tail.Next = decl
		}
		tail = decl
		if ok, err := p.ts.accept(Kind(';')); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return head, nil
}

// parseDeclaration parses "keyword : value_list ( ! keyword )?".
// The "!important" marker (or any other "!<keyword>") is accepted and
// discarded; the declaration is retained but not flagged, per spec.md §9.
func (p *parser) parseDeclaration() (*Property, error) {
	if p.ts.kind != KKeyword {
		return nil, newSyntaxError(p.ts.file(), p.ts.line(), "expected keyword in property")
	}
	name, err := p.ts.expect(KKeyword)
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.expect(Kind(':')); err != nil {
		return nil, err
	}
	values, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	if ok, err := p.ts.accept(Kind('!')); err != nil {
		return nil, err
	} else if ok {
		if _, err := p.ts.expect(KKeyword); err != nil {
			return nil, newSyntaxError(p.ts.file(), p.ts.line(), "expected keyword after '!'")
		}
	}
	return &Property{Name: name, Value: values}, nil
}
