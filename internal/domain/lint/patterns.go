package lint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reHandlerName = regexp.MustCompile(`^(?:handle|on)[A-Z]`)
	reSetterCall  = regexp.MustCompile(`\bset[A-Z]\w*\(`)
	reRemoteCall  = regexp.MustCompile(`(?i)fetch|supabase|axios|api`)
	reTryOpen     = regexp.MustCompile(`\btry\s*\{`)
)

// minHandlers is how many handle*/on* functions a file needs before their
// bodies are compared, and minRepeated how many of them must share the
// load-then-set shape.
const (
	minHandlers = 3
	minRepeated = 2
)

// checkRepetitiveHandlers reports files with several event handlers that
// each call a remote API and then store the result with a state setter.
func checkRepetitiveHandlers(f *SourceFile, cfg Config, rule Rule) []Issue {
	var handlers []funcDecl
	for _, d := range functionDecls(f.Lines) {
		if reHandlerName.MatchString(d.name) {
			handlers = append(handlers, d)
		}
	}
	if len(handlers) < minHandlers {
		return nil
	}

	var items []finding
	repeated := 0
	for _, h := range handlers {
		body := strings.Join(f.Lines[h.body.start:h.body.end+1], "\n")
		it := finding{line: h.line + 1, name: h.name}
		if reSetterCall.MatchString(body) && reRemoteCall.MatchString(body) {
			it.detail = "loads data and sets state"
			repeated++
		}
		items = append(items, it)
	}
	if repeated < minRepeated {
		return nil
	}
	title := fmt.Sprintf("%d handlers repeat the same load-then-set logic.", repeated)
	return consolidate(rule, f, title, items,
		"Abstract it into a custom hook or one generic handler.")
}

// checkTryBlocks reports files with more than MaxTryBlocks try blocks. A
// try and its catch count once; blocks nested inside are not counted.
func checkTryBlocks(f *SourceFile, cfg Config, rule Rule) []Issue {
	var items []finding
	for i := 0; i < len(f.Lines); i++ {
		line := f.Lines[i]
		if isCommentLine(line) || !reTryOpen.MatchString(line) {
			continue
		}
		items = append(items, finding{line: i + 1})
		i = FindBlockEnd(f.Lines, i, '{')
	}
	if len(items) <= cfg.MaxTryBlocks {
		return nil
	}
	rule.FileLevel = true
	title := fmt.Sprintf("%d try/catch blocks in one file (max %d).", len(items), cfg.MaxTryBlocks)
	return consolidate(rule, f, title, items,
		"Share the error handling through a helper such as safeExecute() that reports the failure to the user.")
}
