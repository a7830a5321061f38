package ahocorasick

import (
	"strings"
	"testing"

	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/stretchr/testify/assert"
)

var _ lint.Prefilter = (*Matcher)(nil)

// =============================================================================
// Registry parity: skipping classifiers whose triggers are absent never
// changes what the registry reports.
// =============================================================================

var paritySources = map[string]string{
	"src/components/SampleReview.tsx": strings.Join([]string{
		"// TODO: remove after the review run",
		"import { useState, useEffect } from 'react'",
		"import type { FC } from 'react' // unused",
		"export function SampleReview() {",
		"  const [count, setCount] = useState(0)",
		"  console.log('debug', count)",
		"  useEffect(() => {",
		"    setCount((c) => c + 1)",
		"  }, [])",
		"  // const old = count * 2",
		"  return <div>{count}</div>",
		"}",
	}, "\n"),
	"src/components/organisms/Orders.tsx": strings.Join([]string{
		"const API_URL = '/api'",
		"const PAGE_SIZE = 20",
		"const RETRIES = 3",
		"type Order = { id: string }",
		"export function Orders() {",
		"  const [orders, setOrders] = useState([])",
		"  const handleLoad = async () => {",
		"    try { setOrders(await fetch(API_URL)) } catch (e) { console.error(e) }",
		"  }",
		"  const handleMore = async () => {",
		"    try { setOrders(await api.next(PAGE_SIZE)) } catch (e) { console.error(e) }",
		"  }",
		"  const onRefresh = async () => {",
		"    try { setOrders(await supabase.from('orders').select()) } catch (e) { console.error(e) }",
		"  }",
		"  return <List items={orders} onMore={handleMore} />",
		"}",
	}, "\n"),
	"src/hooks/useThing.ts":             "export function useThing() {\n  return useMemo(() => 1, [])\n}\n",
	"src/util.ts":                       "export const add = (a, b) => a + b\n",
	"src/components/molecules/Empty.ts": "",
}

func TestMatcher_RegistryPrefilterParity(t *testing.T) {
	reg := lint.DefaultRegistry()
	filtered := reg.WithPrefilter(NewMatcher(reg.Triggers()))

	for path, src := range paritySources {
		f := lint.NewSourceFile(path, src)
		want := reg.Analyze(f, lint.DefaultConfig())
		assert.Equal(t, want, filtered.Analyze(f, lint.DefaultConfig()), path)
	}
}

func TestMatcher_RegistryPrefilterSkipsAbsentTriggers(t *testing.T) {
	reg := lint.DefaultRegistry()
	m := NewMatcher(reg.Triggers())

	got := m.Match(paritySources["src/util.ts"])
	assert.Contains(t, got, "const")
	assert.NotContains(t, got, "console")
	assert.NotContains(t, got, "import")
}
