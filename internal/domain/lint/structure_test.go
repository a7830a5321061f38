package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipleComponents(t *testing.T) {
	src := strings.Join([]string{
		"export function Header() {",
		"  return <header />",
		"}",
		"export const Footer = () => (",
		"  <footer />",
		")",
		"function formatDate(d) {",
		"  return d.toISOString()",
		"}",
	}, "\n")
	f := NewSourceFile("src/components/organisms/Layout.tsx", src)

	issues := checkMultipleComponents(f, DefaultConfig(), Rule{Category: CatMultipleComponent})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Line)
	assert.Contains(t, issues[0].Message, "declares 2 components")
	assert.Contains(t, issues[0].Message, "line 1: `Header`")
	assert.Contains(t, issues[0].Message, "line 4: `Footer`")
	assert.NotContains(t, issues[0].Message, "formatDate")
}

func TestMultipleComponents_SingleComponent(t *testing.T) {
	src := "export function Header() {\n  return <header />\n}\nconst API_URL = '/api'\n"
	f := NewSourceFile("src/components/organisms/Header.tsx", src)
	assert.Empty(t, checkMultipleComponents(f, DefaultConfig(), Rule{Category: CatMultipleComponent}))
}

const inlineTypesSrc = `type ButtonProps = {
  label: string
}
interface Theme {
  color: string
}
export function Button({ label }: { label: string }) {
  return <button>{label}</button>
}
`

func TestInlineTypes_ComponentWithSeveralTypes(t *testing.T) {
	f := NewSourceFile("src/components/atoms/Button.tsx", inlineTypesSrc)
	issues := checkInlineTypes(f, DefaultConfig(), Rule{Category: CatInlineType})
	require.Len(t, issues, 1)
	msg := issues[0].Message
	assert.Equal(t, 1, issues[0].Line)
	assert.Contains(t, msg, "3 types declared in a component file")
	assert.Contains(t, msg, "line 1: `ButtonProps` (type)")
	assert.Contains(t, msg, "line 4: `Theme` (interface)")
	assert.Contains(t, msg, "line 7: `Button` (inline parameter type)")
	assert.Contains(t, msg, "types/ or interfaces/ folder")
}

func TestInlineTypes_SingleShortTypeInComponentAllowed(t *testing.T) {
	src := "type Props = { title: string }\nexport const Card = ({ title }: Props) => <div>{title}</div>\n"
	f := NewSourceFile("src/components/atoms/Card.tsx", src)
	assert.Empty(t, checkInlineTypes(f, DefaultConfig(), Rule{Category: CatInlineType}))
}

func TestInlineTypes_LongTypeInAnyFile(t *testing.T) {
	src := strings.Join([]string{
		"export interface Big {",
		"  a: string",
		"  b: string",
		"  c: string",
		"  d: string",
		"  e: string",
		"  f: string",
		"}",
		"type Small = { x: number }",
		"export async function load(): Promise<Big> {",
		"  return {} as Big",
		"}",
	}, "\n")
	f := NewSourceFile("src/lib/api.ts", src)
	issues := checkInlineTypes(f, DefaultConfig(), Rule{Category: CatInlineType})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 8, issues[0].EndLine)
	assert.Contains(t, issues[0].Message, "longer than 5 lines")
	assert.Contains(t, issues[0].Message, "lines 1-8: `Big` (interface, 8 lines)")
	assert.NotContains(t, issues[0].Message, "Small")
}

func TestInlineTypes_BodyOnNextLine(t *testing.T) {
	lines := []string{"type Options =", "  {"}
	lines = append(lines, repeatLines("    k%d: string", 5)...)
	lines = append(lines, "  }")
	f := NewSourceFile("src/util.ts", strings.Join(lines, "\n"))
	issues := checkInlineTypes(f, DefaultConfig(), Rule{Category: CatInlineType})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "`Options` (type, 8 lines)")
}

func TestInlineTypes_ParenlessArrowNotBlamed(t *testing.T) {
	src := strings.Join([]string{
		"type A = { a: string }",
		"type B = { b: string }",
		"const double = x => {",
		"  return x * 2",
		"}",
		"export function Card({ title }: { title: string }) {",
		"  return <div>{title}</div>",
		"}",
	}, "\n")
	f := NewSourceFile("src/components/atoms/Card.tsx", src)
	issues := checkInlineTypes(f, DefaultConfig(), Rule{Category: CatInlineType})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "line 6: `Card` (inline parameter type)")
	assert.NotContains(t, issues[0].Message, "`double`")
}

func TestInlineTypes_ExemptLocations(t *testing.T) {
	rule := Rule{Category: CatInlineType}
	long := "interface Window {\n  a: 1\n  b: 2\n  c: 3\n  d: 4\n  e: 5\n}\n"
	for _, p := range []string{
		"src/types/button.tsx",
		"src/interfaces/button.tsx",
		"src/components/atoms/Button.types.ts",
		"src/env.d.ts",
	} {
		assert.Empty(t, checkInlineTypes(NewSourceFile(p, inlineTypesSrc+long), DefaultConfig(), rule), p)
	}
}

func TestScatteredConstants(t *testing.T) {
	lines := []string{
		"const API_URL = 'x'",
		"const MAX_ITEMS = 3",
		"const TIMEOUT_MS: number = 100",
		"export const DEFAULT_NAME = 'y'",
		"export function load() {",
		"  return API_URL",
		"}",
	}
	rule := Rule{Category: CatScatteredConstant}

	f := NewSourceFile("src/lib/api.ts", strings.Join(lines, "\n"))
	issues := checkScatteredConstants(f, DefaultConfig(), rule)
	require.Len(t, issues, 1)
	assert.True(t, issues[0].FileLevel)
	assert.Contains(t, issues[0].Message, "4 constants scattered")
	assert.Contains(t, issues[0].Message, "`DEFAULT_NAME`")

	three := NewSourceFile("src/components/atoms/A.tsx", strings.Join(lines[1:], "\n"))
	issues = checkScatteredConstants(three, DefaultConfig(), rule)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "3 constants scattered in this file (max 2)")

	two := NewSourceFile("src/components/atoms/A.tsx", strings.Join(lines[2:], "\n"))
	assert.Empty(t, checkScatteredConstants(two, DefaultConfig(), rule))

	for _, dir := range []string{"src/constants/A.ts", "src/consts/A.ts"} {
		assert.Empty(t, checkScatteredConstants(NewSourceFile(dir, strings.Join(lines, "\n")), DefaultConfig(), rule), dir)
	}
}

func TestScatteredConstants_LeftToLargeConstantCheck(t *testing.T) {
	lines := []string{"export const ROUTES = {"}
	lines = append(lines, repeatLines("  r%d: '/path',", 18)...)
	lines = append(lines, "}", "const A_B = 1", "const C_D = 2", "const E_F = 3")
	f := NewSourceFile("src/routes.ts", strings.Join(lines, "\n"))
	assert.Empty(t, checkScatteredConstants(f, DefaultConfig(), Rule{Category: CatScatteredConstant}))
	assert.NotEmpty(t, checkLargeConstants(f, DefaultConfig(), Rule{Category: CatLargeConstant}))
}

func TestDataAccess(t *testing.T) {
	src := strings.Join([]string{
		"export function Orders() {",
		"  useEffect(() => {",
		"    supabase.from('orders').select('*').then(setOrders)",
		"    fetch('/api/totals').then(setTotals)",
		"    refetch()",
		"    // fetch('/old')",
		"  }, [])",
		"  return <div />",
		"}",
	}, "\n")
	rule := Rule{Category: CatDataAccess}

	issues := checkDataAccess(NewSourceFile("src/components/organisms/Orders.tsx", src), DefaultConfig(), rule)
	require.Len(t, issues, 1)
	msg := issues[0].Message
	assert.Equal(t, 3, issues[0].Line)
	assert.Contains(t, msg, "line 3: `supabase.from` (database query)")
	assert.Contains(t, msg, "line 4: `fetch` (direct API call)")
	assert.NotContains(t, msg, "line 5")
	assert.NotContains(t, msg, "line 6")
	assert.Contains(t, msg, "lib/")

	assert.Empty(t, checkDataAccess(NewSourceFile("src/lib/orders.tsx", src), DefaultConfig(), rule))
	assert.Empty(t, checkDataAccess(NewSourceFile("src/hooks/useOrders.tsx", src), DefaultConfig(), rule))
	assert.Empty(t, checkDataAccess(NewSourceFile("src/api.ts", "export const load = () => fetch('/x')\n"), DefaultConfig(), rule))
}

func TestIsPascalCase(t *testing.T) {
	assert.True(t, isPascalCase("Button"))
	assert.True(t, isPascalCase("A1b"))
	assert.False(t, isPascalCase("API_URL"))
	assert.False(t, isPascalCase("button"))
	assert.False(t, isPascalCase(""))
}
