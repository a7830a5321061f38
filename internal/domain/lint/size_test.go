package lint

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatLines(format string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, i)
	}
	return out
}

func TestFileLength(t *testing.T) {
	rule := Rule{Category: CatFileSize, FileLevel: true}
	cfg := DefaultConfig()

	ok := NewSourceFile("a.ts", strings.Join(repeatLines("const a%d = 1", 150), "\n"))
	assert.Empty(t, checkFileLength(ok, cfg, rule))

	long := NewSourceFile("a.ts", strings.Join(repeatLines("const a%d = 1", 151), "\n"))
	issues := checkFileLength(long, cfg, rule)
	require.Len(t, issues, 1)
	assert.Equal(t, FileLine, issues[0].Line)
	assert.True(t, issues[0].FileLevel)
	assert.Contains(t, issues[0].Message, "151 lines (max 150)")
}

func TestFunctionLength(t *testing.T) {
	lines := []string{"function big() {"}
	lines = append(lines, repeatLines("  step%d()", 101)...)
	lines = append(lines, "}", "function small() {", "  return 1", "}")
	f := NewSourceFile("a.ts", strings.Join(lines, "\n"))

	issues := checkFunctionLength(f, DefaultConfig(), Rule{Category: CatLongFunction})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 103, issues[0].EndLine)
	assert.Contains(t, issues[0].Message, "lines 1-103: `big` (103 lines)")
	assert.NotContains(t, issues[0].Message, "`small`")
}

func TestParams(t *testing.T) {
	src := strings.Join([]string{
		"function f(a, b, c, d) {}",
		"const g = ({ a, b, c, d }) => {",
		"  return a",
		"}",
		"const h = (a, b) => a + b",
		"const k = async (a, b, c, d) => a",
		"export function typed(a: Map<string, number>, b: number, c = [1, 2], d?: string) {",
		"}",
	}, "\n")
	f := NewSourceFile("a.ts", src)

	issues := checkParams(f, DefaultConfig(), Rule{Category: CatTooManyParams})
	require.Len(t, issues, 1)
	msg := issues[0].Message
	assert.Equal(t, 1, issues[0].Line)
	assert.Contains(t, msg, "line 1: `f` (4 parameters)")
	assert.Contains(t, msg, "line 6: `k` (4 parameters)")
	assert.Contains(t, msg, "line 7: `typed` (4 parameters)")
	assert.NotContains(t, msg, "`g`")
	assert.NotContains(t, msg, "`h`")
	assert.Contains(t, msg, "options object")
}

func TestCountParams(t *testing.T) {
	assert.Equal(t, 0, countParams(""))
	assert.Equal(t, 1, countParams("{ a, b }"))
	assert.Equal(t, 2, countParams("a, b,"))
	assert.Equal(t, 2, countParams("cb = (x) => x, y"))
	assert.Equal(t, 2, countParams("a: Record<string, number>, b"))
}

func TestLargeConstants(t *testing.T) {
	lines := []string{"export const ROUTES = {"}
	lines = append(lines, repeatLines("  r%d: '/path',", 18)...)
	lines = append(lines, "}", "const SMALL = [1, 2, 3]", "function f() {", "  const inner = {", "  }", "}")
	f := NewSourceFile("routes.ts", strings.Join(lines, "\n"))

	issues := checkLargeConstants(f, DefaultConfig(), Rule{Category: CatLargeConstant})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 20, issues[0].EndLine)
	assert.Contains(t, issues[0].Message, "`ROUTES` (20 lines)")
	assert.NotContains(t, issues[0].Message, "SMALL")
}

func TestJSXLength(t *testing.T) {
	lines := []string{"export function Page() {", "  return ("}
	lines = append(lines, "    <div>")
	lines = append(lines, repeatLines("      <p>%d</p>", 60)...)
	lines = append(lines, "    </div>", "  )", "}")
	lines = append(lines,
		"export const Short = () => (",
		"  <span>short</span>",
		")",
	)
	f := NewSourceFile("src/Page.tsx", strings.Join(lines, "\n"))

	issues := checkJSXLength(f, DefaultConfig(), Rule{Category: CatLargeJSX})
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, 65, issues[0].EndLine)
	assert.Contains(t, issues[0].Message, "`Page` (64 lines of markup)")
	assert.NotContains(t, issues[0].Message, "Short")
}
