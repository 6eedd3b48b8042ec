package css

import "github.com/lukehoban/cssdoc/log"

// Trace hooks are diagnostic-only scaffolding: when the shared logger's
// level is raised to log.DebugLevel, ParseCSS narrates each token it
// consumes and each rule it completes. They never affect parse results,
// and at the default Warn level they cost a single level comparison per
// call inside the logger itself.
func traceToken(kind Kind, text string) {
	if log.GetLevel() > log.DebugLevel {
		return
	}
	log.Debugf("token %s %q", kind, text)
}

func traceRule(rule *Rule) {
	if log.GetLevel() > log.DebugLevel {
		return
	}
	log.Debugf("rule complete: %s", describeSelector(rule.Selector))
}

// describeSelector renders a short one-line label for trace output; it is
// not a canonical serialization and is not used anywhere but logging.
func describeSelector(sel *Selector) string {
	if sel == nil {
		return "<empty>"
	}
	switch sel.Combine {
	case CombineDescendant:
		return describeSelector(sel.Left) + " " + describeSelector(sel.Right)
	case CombineChild:
		return describeSelector(sel.Left) + " > " + describeSelector(sel.Right)
	case CombineAdjacent:
		return describeSelector(sel.Left) + " + " + describeSelector(sel.Right)
	}
	name := sel.Name
	if name == "" {
		name = "*"
	}
	for c := sel.Cond; c != nil; c = c.Next {
		name += string(byte(c.Type))
		if c.Val != "" {
			name += c.Val
		}
	}
	return name
}
