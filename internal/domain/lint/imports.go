package lint

import (
	"regexp"
	"strings"
)

var (
	reImportStart  = regexp.MustCompile(`^\s*import(?:\s|\{|\*)`)
	reSideEffect   = regexp.MustCompile(`^\s*import\s*['"]`)
	reFromClause   = regexp.MustCompile(`\bfrom\s*['"]`)
	reImportSource = regexp.MustCompile(`(?:\bfrom\s*|^\s*import\s*)['"]([^'"]+)['"]`)
	reNamespace    = regexp.MustCompile(`\*\s*as\s+([A-Za-z_$][\w$]*)`)
	reNamedBlock   = regexp.MustCompile(`\{([^}]*)\}`)
	reIdentifier   = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// importStmt is one import statement, possibly spanning several lines.
type importStmt struct {
	start  int // 0-based
	end    int // 0-based, inclusive
	source string
	names  []string
}

// parseImports collects import statements. A statement continues onto the
// following lines until its "from" clause appears; a statement that never
// finds one runs to the end of the file.
func parseImports(lines []string) []importStmt {
	var out []importStmt
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !reImportStart.MatchString(line) && !reSideEffect.MatchString(line) {
			continue
		}
		if reSideEffect.MatchString(line) {
			st := importStmt{start: i, end: i}
			if m := reImportSource.FindStringSubmatch(line); m != nil {
				st.source = m[1]
			}
			out = append(out, st)
			continue
		}

		end := i
		stmt := line
		for !reFromClause.MatchString(stmt) && end < len(lines)-1 {
			end++
			stmt += "\n" + lines[end]
		}
		st := importStmt{start: i, end: end, names: importedNames(stmt)}
		if m := reImportSource.FindStringSubmatch(stmt); m != nil {
			st.source = m[1]
		}
		out = append(out, st)
		i = end
	}
	return out
}

// importedNames extracts the local bindings of one import statement:
// default, namespace and named (aliases resolve to the alias).
func importedNames(stmt string) []string {
	clause := stmt[strings.Index(stmt, "import")+len("import"):]
	if loc := reFromClause.FindStringIndex(clause); loc != nil {
		clause = clause[:loc[0]]
	}
	clause = strings.TrimSpace(clause)
	clause = strings.TrimSpace(strings.TrimPrefix(clause, "type "))

	var names []string
	if m := reNamespace.FindStringSubmatch(clause); m != nil {
		names = append(names, m[1])
	}
	if m := reNamedBlock.FindStringSubmatch(clause); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(part)
			name = strings.TrimSpace(strings.TrimPrefix(name, "type "))
			if idx := strings.Index(name, " as "); idx >= 0 {
				name = strings.TrimSpace(name[idx+len(" as "):])
			}
			if reIdentifier.MatchString(name) {
				names = append(names, name)
			}
		}
	}

	rest := reNamedBlock.ReplaceAllString(clause, "")
	rest = reNamespace.ReplaceAllString(rest, "")
	rest = strings.TrimSpace(rest)
	if idx := strings.IndexByte(rest, ','); idx >= 0 {
		rest = strings.TrimSpace(rest[:idx])
	}
	if rest != "" && reIdentifier.MatchString(rest) {
		// Default binding goes first to follow source order.
		names = append([]string{rest}, names...)
	}
	return names
}

// containsWord reports whether word occurs in text with no identifier
// character on either side.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; ; {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(word)
		if (start == 0 || !isIdentByte(text[start-1])) && (end == len(text) || !isIdentByte(text[end])) {
			return true
		}
		from = start + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// checkUnusedImports flags imported names that never appear as a whole
// word after their import statement. Mentions inside comments or strings
// count as uses.
func checkUnusedImports(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for _, st := range parseImports(f.Lines) {
		if len(st.names) == 0 {
			continue
		}
		remaining := ""
		if st.end+1 < len(f.Lines) {
			remaining = strings.Join(f.Lines[st.end+1:], "\n")
		}
		for _, name := range st.names {
			if containsWord(remaining, name) {
				continue
			}
			line := st.start
			for k := st.start; k <= st.end; k++ {
				if containsWord(f.Lines[k], name) {
					line = k
					break
				}
			}
			items = append(items, finding{line: line + 1, name: name, detail: "from " + quoteSource(st.source)})
		}
	}
	return consolidate(rule, f, "Unused imports: remove them.", items)
}

func quoteSource(src string) string {
	if src == "" {
		return "unknown module"
	}
	return "'" + src + "'"
}
