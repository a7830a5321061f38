package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reTypeDecl        = regexp.MustCompile(`^\s*(?:export\s+)?(?:declare\s+)?(?:type\s+([A-Za-z_$][\w$]*)\s*(?:<[^>]*>)?\s*=|interface\s+([A-Za-z_$][\w$]*))`)
	reInlineParamType = regexp.MustCompile(`\}\s*:\s*\{`)
	reUpperConst      = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Z][A-Z0-9_]+)\s*(?::[^=]*)?=`)
	reSupabaseQuery   = regexp.MustCompile(`\bsupabase\s*\.\s*from\s*\(`)
	reDirectFetch     = regexp.MustCompile(`(?:^|[^\w$.])fetch\s*\(`)
)

// maxComponentTypes is how many short type declarations a component file
// may keep before they should move out.
const maxComponentTypes = 2

// checkMultipleComponents reports files declaring more than one top-level
// component.
func checkMultipleComponents(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for _, d := range componentDecls(f.Lines, functionDecls(f.Lines)) {
		if d.topLevel {
			items = append(items, finding{line: d.line + 1, name: d.name})
		}
	}
	if len(items) < 2 {
		return nil
	}
	title := fmt.Sprintf("File declares %d components: keep one component per file.", len(items))
	return consolidate(rule, f, title, items)
}

// checkInlineTypes reports type declarations that belong in the types or
// interfaces folder. Any file outside those folders is reported when it
// declares a type longer than MaxTypeLines. Failing that, a component file
// is reported when it holds more than maxComponentTypes declarations,
// counting inline object types on parameters.
func checkInlineTypes(f *SourceFile, cfg Config, rule Rule) []Issue {
	if inFolder(f.Path, cfg.TypesDir) || inFolder(f.Path, cfg.InterfacesDir) ||
		strings.HasSuffix(f.Path, ".d.ts") || strings.HasSuffix(f.Path, ".types.ts") {
		return nil
	}
	decls := typeDecls(f.Lines)

	var long []finding
	for _, d := range decls {
		if n := d.endLine - d.line + 1; n > cfg.MaxTypeLines {
			d.detail = fmt.Sprintf("%s, %d lines", d.detail, n)
			long = append(long, d)
		}
	}
	if len(long) > 0 {
		title := fmt.Sprintf("Types longer than %d lines declared inline: move them to the %s/ or %s/ folder.",
			cfg.MaxTypeLines, cfg.TypesDir, cfg.InterfacesDir)
		return consolidate(rule, f, title, long)
	}

	if !isComponentFile(f) {
		return nil
	}
	for i := range decls {
		decls[i].endLine = 0
	}
	decls = append(decls, inlineParamTypes(f.Lines)...)
	if len(decls) <= maxComponentTypes {
		return nil
	}
	title := fmt.Sprintf("%d types declared in a component file: move them to the %s/ or %s/ folder.",
		len(decls), cfg.TypesDir, cfg.InterfacesDir)
	return consolidate(rule, f, title, decls)
}

// typeDecls finds type aliases and interfaces with the line their body
// closes on. A body opening on the line after "type X =" is followed.
func typeDecls(lines []string) []finding {
	var out []finding
	for i, line := range lines {
		if isCommentLine(line) {
			continue
		}
		m := reTypeDecl.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, kind := m[1], "type"
		if name == "" {
			name, kind = m[2], "interface"
		}
		end := i
		switch {
		case strings.Contains(line, "{"):
			end = FindBlockEnd(lines, i, '{')
		case strings.HasSuffix(strings.TrimSpace(line), "="):
			if open := openerLine(lines, i+1, 0, '{'); open >= 0 {
				end = FindBlockEnd(lines, open, '{')
			}
		}
		it := finding{line: i + 1, name: name, detail: kind}
		if end > i {
			it.endLine = end + 1
		}
		out = append(out, it)
	}
	return out
}

// inlineParamTypes finds functions destructuring a parameter typed with an
// object literal, as in "({ a }: { a: string })". Only declarations whose
// first line opens the parameter list are inspected.
func inlineParamTypes(lines []string) []finding {
	var out []finding
	for _, d := range functionDecls(lines) {
		if !strings.Contains(lines[d.line], "(") {
			continue
		}
		headerEnd := FindBlockEnd(lines, d.line, '(')
		for k := d.line; k <= headerEnd; k++ {
			if reInlineParamType.MatchString(lines[k]) {
				out = append(out, finding{line: k + 1, name: d.name, detail: "inline parameter type"})
				break
			}
		}
	}
	return out
}

// checkScatteredConstants reports files outside the constants folder that
// declare more than MaxConstants SCREAMING_CASE constants. A file already
// flagged for large constants is left to that check.
func checkScatteredConstants(f *SourceFile, cfg Config, rule Rule) []Issue {
	if inConstantsFolder(f.Path, cfg) || len(largeConstants(f, cfg)) > 0 {
		return nil
	}
	var items []finding
	for i, line := range f.Lines {
		if m := reUpperConst.FindStringSubmatch(line); m != nil {
			items = append(items, finding{line: i + 1, name: m[1]})
		}
	}
	if len(items) <= cfg.MaxConstants {
		return nil
	}
	rule.FileLevel = true
	title := fmt.Sprintf("%d constants scattered in this file (max %d).", len(items), cfg.MaxConstants)
	return consolidate(rule, f, title, items,
		fmt.Sprintf("Centralize them in a %s/ module shared by the feature.", cfg.ConstantsDir))
}

// checkDataAccess reports Supabase queries and direct fetch calls in
// component files. Data access lives in the lib folder or a custom hook.
func checkDataAccess(f *SourceFile, cfg Config, rule Rule) []Issue {
	if inFolder(f.Path, cfg.LibDir) || inFolder(f.Path, cfg.HooksDir) || !isComponentFile(f) {
		return nil
	}
	var items []finding
	for i, line := range f.Lines {
		if isCommentLine(line) {
			continue
		}
		if reSupabaseQuery.MatchString(line) {
			items = append(items, finding{line: i + 1, name: "supabase.from", detail: "database query"})
		}
		if reDirectFetch.MatchString(line) {
			items = append(items, finding{line: i + 1, name: "fetch", detail: "direct API call"})
		}
	}
	return consolidate(rule, f, "Data access inside a component.", items,
		fmt.Sprintf("Move queries and API calls to %s/ functions or a custom hook in %s/.", cfg.LibDir, cfg.HooksDir))
}
