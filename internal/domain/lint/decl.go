package lint

import (
	"path"
	"regexp"
	"strings"
)

var (
	reFuncDecl  = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*[(<]`)
	reArrowDecl = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]*)?=\s*(?:React\.)?(?:memo|forwardRef|useCallback)?(?:<[^>]*>)?\(?\s*(?:async\s+)?(?:function\b|\(|[A-Za-z_$][\w$]*\s*=>)`)
	reWrapper   = regexp.MustCompile(`^\s*(?:React\.)?(?:memo|forwardRef|useCallback)(?:<[^>]*>)?\(`)
	reFuncWord  = regexp.MustCompile(`\bfunction\b`)
	reJSXLine   = regexp.MustCompile(`^\s*(?:return\s*\(?\s*)?<(?:[A-Za-z][\w.]*|>|/)|=>\s*\(?\s*<[A-Za-z>]`)
	reHookName  = regexp.MustCompile(`^use[A-Z0-9]`)
)

// arrowLookahead bounds how far a "const x = (" declaration may run before
// its "=>" appears.
const arrowLookahead = 8

// funcDecl is a named function found by the declaration scanner.
type funcDecl struct {
	name     string
	line     int  // 0-based declaration line
	body     span // 0-based, includes the declaration line
	params   int
	arrow    bool
	topLevel bool
}

// isPascalCase reports whether name looks like a component name: an upper
// case initial and at least one lower case letter (so API_URL is not one).
func isPascalCase(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	return strings.ContainsAny(name, "abcdefghijklmnopqrstuvwxyz")
}

// isHookName reports whether name follows the useXxx convention.
func isHookName(name string) bool {
	return reHookName.MatchString(name)
}

// isTopLevel reports whether a line starts at column zero.
func isTopLevel(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

// functionDecls finds named function declarations and arrow-function
// constants, with the extent of each body.
func functionDecls(lines []string) []funcDecl {
	var decls []funcDecl
	for i, line := range lines {
		if isCommentLine(line) {
			continue
		}
		if m := reFuncDecl.FindStringSubmatch(line); m != nil {
			d, ok := functionDecl(lines, i, m[1])
			if ok {
				decls = append(decls, d)
			}
			continue
		}
		if m := reArrowDecl.FindStringSubmatch(line); m != nil {
			d, ok := arrowDecl(lines, i, m[1])
			if ok {
				decls = append(decls, d)
			}
		}
	}
	return decls
}

func functionDecl(lines []string, i int, name string) (funcDecl, bool) {
	header := lines[i]
	nameAt := strings.Index(header, name)
	paren := strings.IndexByte(header[nameAt:], '(')
	parenEnd := FindBlockEnd(lines, i, '(')
	// An overload signature has no body.
	if strings.HasSuffix(strings.TrimSpace(lines[parenEnd]), ";") {
		return funcDecl{}, false
	}
	open := openerLine(lines, parenEnd, arrowLookahead, '{')
	if open < 0 {
		return funcDecl{}, false
	}
	var params string
	if paren >= 0 {
		text := strings.Join(lines[i:parenEnd+1], "\n")
		params = enclosedText(text[nameAt+paren:], '(', ')')
	}
	return funcDecl{
		name:     name,
		line:     i,
		body:     span{start: i, end: FindBlockEnd(lines, open, '{')},
		params:   countParams(params),
		topLevel: isTopLevel(lines[i]),
	}, true
}

func arrowDecl(lines []string, i int, name string) (funcDecl, bool) {
	arrowLine := -1
	isFunctionExpr := false
	for j := i; j < len(lines) && j < i+arrowLookahead; j++ {
		if strings.Contains(lines[j], "=>") {
			arrowLine = j
			break
		}
		if j == i && reFuncWord.MatchString(lines[j]) {
			arrowLine = j
			isFunctionExpr = true
			break
		}
		if strings.HasSuffix(strings.TrimSpace(lines[j]), ";") {
			break
		}
	}
	if arrowLine < 0 {
		return funcDecl{}, false
	}

	// Text between "=" and "=>" holds the parameter list.
	head := strings.Join(lines[i:arrowLine+1], "\n")
	eq := strings.Index(head, "=")
	rhs := head[eq+1:]
	if idx := strings.Index(rhs, "=>"); idx >= 0 && !isFunctionExpr {
		rhs = rhs[:idx]
	}
	rhs = reWrapper.ReplaceAllString(rhs, "")
	rhs = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rhs), "async"))
	var params int
	switch {
	case isFunctionExpr:
		if p := strings.IndexByte(rhs, '('); p >= 0 {
			params = countParams(enclosedText(rhs[p:], '(', ')'))
		}
	case strings.HasPrefix(rhs, "(") || strings.HasPrefix(rhs, "<"):
		if p := strings.IndexByte(rhs, '('); p >= 0 {
			params = countParams(enclosedText(rhs[p:], '(', ')'))
		}
	case rhs != "":
		params = 1
	}

	return funcDecl{
		name:     name,
		line:     i,
		body:     span{start: i, end: arrowBodyEnd(lines, arrowLine, isFunctionExpr)},
		params:   params,
		arrow:    true,
		topLevel: isTopLevel(lines[i]),
	}, true
}

// arrowBodyEnd finds the last line of an arrow function whose "=>" sits on
// lines[a]. Block bodies and parenthesized bodies are delimited by the
// boundary finder; an expression body ends on the arrow line.
func arrowBodyEnd(lines []string, a int, functionExpr bool) int {
	if functionExpr {
		if open := openerLine(lines, a, arrowLookahead, '{'); open >= 0 {
			return FindBlockEnd(lines, open, '{')
		}
		return a
	}
	line := lines[a]
	rest := strings.TrimSpace(line[strings.Index(line, "=>")+2:])
	at := a
	if rest == "" {
		for j := a + 1; j < len(lines); j++ {
			if t := strings.TrimSpace(lines[j]); t != "" {
				rest, at = t, j
				break
			}
		}
	}
	switch {
	case strings.HasPrefix(rest, "{"):
		return FindBlockEnd(lines, at, '{')
	case strings.HasPrefix(rest, "("):
		return FindBlockEnd(lines, at, '(')
	default:
		return a
	}
}

// enclosedText returns the text between the first opener in s and its
// matching closer. Unbalanced input returns everything after the opener.
func enclosedText(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start+1 : i]
			}
		}
	}
	return s[start+1:]
}

// countParams counts top-level, comma-separated parameters. A destructured
// object or array counts as one parameter.
func countParams(params string) int {
	p := strings.TrimSpace(params)
	if p == "" {
		return 0
	}
	depth := 0
	n := 1
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '{', '[', '(', '<':
			depth++
		case '}', ']', ')':
			depth--
		case '>':
			if i > 0 && p[i-1] == '=' {
				continue
			}
			depth--
		case ',':
			if depth == 0 && strings.TrimSpace(p[i+1:]) != "" {
				n++
			}
		}
	}
	return n
}

// bodyHasJSX reports whether any line of the span looks like JSX markup.
func bodyHasJSX(lines []string, s span) bool {
	for i := s.start; i <= s.end && i < len(lines); i++ {
		if !isCommentLine(lines[i]) && reJSXLine.MatchString(lines[i]) {
			return true
		}
	}
	return false
}

// componentDecls returns the function declarations that look like
// components: PascalCase names whose bodies render JSX.
func componentDecls(lines []string, decls []funcDecl) []funcDecl {
	var out []funcDecl
	for _, d := range decls {
		if isPascalCase(d.name) && bodyHasJSX(lines, d.body) {
			out = append(out, d)
		}
	}
	return out
}

// isComponentFile reports whether the file holds component code: a .tsx or
// .jsx extension, or JSX markup anywhere in the text.
func isComponentFile(f *SourceFile) bool {
	switch strings.ToLower(path.Ext(f.Path)) {
	case ".tsx", ".jsx":
		return true
	}
	for _, line := range f.Lines {
		if !isCommentLine(line) && reJSXLine.MatchString(line) {
			return true
		}
	}
	return false
}

// pathSegments splits a slash or backslash separated path.
func pathSegments(p string) []string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.Split(p, "/")
}

// inFolder reports whether any directory component of p equals dir.
func inFolder(p, dir string) bool {
	segs := pathSegments(p)
	for _, s := range segs[:len(segs)-1] {
		if s == dir {
			return true
		}
	}
	return false
}
