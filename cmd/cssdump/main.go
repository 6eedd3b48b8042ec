// Command cssdump parses a CSS file (or, with -inline, a bare declaration
// list) and prints the resulting rule tree as indented text. It is a
// developer utility for inspecting parse trees during development, not a
// production entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lukehoban/cssdoc/css"
	"github.com/lukehoban/cssdoc/log"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug tracing")
	inline := flag.Bool("inline", false, "treat the file's contents as a bare declaration list")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() < 1 {
		fmt.Println("Usage: cssdump [-v] [-inline] <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	filename := flag.Arg(0)
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	if *inline {
		decls, err := css.ParseCSSProperties(content, filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		printDeclarations(decls, 1)
		return
	}

	rules, err := css.ParseCSS(nil, content, filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	count := 0
	for r := rules; r != nil; r = r.Next {
		count++
		fmt.Printf("rule %d: %s\n", count, describeSelector(r.Selector))
		printDeclarations(r.Decls, 1)
	}
	fmt.Printf("%d rule(s)\n", count)
}

func describeSelector(sel *css.Selector) string {
	if sel == nil {
		return "<empty>"
	}
	var b strings.Builder
	writeSelector(&b, sel)
	if sel.Next != nil {
		b.WriteString(", ")
		b.WriteString(describeSelector(sel.Next))
	}
	return b.String()
}

func writeSelector(b *strings.Builder, sel *css.Selector) {
	switch sel.Combine {
	case css.CombineDescendant:
		writeSelector(b, sel.Left)
		b.WriteString(" ")
		writeSelector(b, sel.Right)
		return
	case css.CombineChild:
		writeSelector(b, sel.Left)
		b.WriteString(" > ")
		writeSelector(b, sel.Right)
		return
	case css.CombineAdjacent:
		writeSelector(b, sel.Left)
		b.WriteString(" + ")
		writeSelector(b, sel.Right)
		return
	}
	name := sel.Name
	if name == "" {
		name = "*"
	}
	b.WriteString(name)
	for c := sel.Cond; c != nil; c = c.Next {
		b.WriteString(fmt.Sprintf("[%c %s=%s]", byte(c.Type), c.Key, c.Val))
	}
}

func printDeclarations(decls *css.Property, indent int) {
	prefix := strings.Repeat("  ", indent)
	for d := decls; d != nil; d = d.Next {
		fmt.Printf("%s%s: %s\n", prefix, d.Name, describeValues(d.Value))
	}
}

func describeValues(vals *css.Value) string {
	var parts []string
	for v := vals; v != nil; v = v.Next {
		if v.Type == css.ValCall {
			parts = append(parts, v.Data+"("+describeValues(v.Args)+")")
			continue
		}
		parts = append(parts, v.Data)
	}
	return strings.Join(parts, " ")
}
