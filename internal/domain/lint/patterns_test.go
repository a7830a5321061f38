package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlersSrc = `export function Orders() {
  const [orders, setOrders] = useState([])
  const handleLoad = async () => {
    const res = await fetch('/api/orders')
    setOrders(await res.json())
  }
  const handleArchive = async (id) => {
    await api.archive(id)
    setOrders((o) => o.filter((x) => x.id !== id))
  }
  const onSelect = (id) => {
    select(id)
  }
  return <List items={orders} onSelect={onSelect} />
}
`

func TestRepetitiveHandlers(t *testing.T) {
	f := NewSourceFile("src/components/organisms/Orders.tsx", handlersSrc)
	issues := checkRepetitiveHandlers(f, DefaultConfig(), Rule{Category: CatRepetitivePattern})
	require.Len(t, issues, 1)
	msg := issues[0].Message
	assert.Equal(t, 3, issues[0].Line)
	assert.Contains(t, msg, "2 handlers repeat")
	assert.Contains(t, msg, "line 3: `handleLoad` (loads data and sets state)")
	assert.Contains(t, msg, "line 7: `handleArchive` (loads data and sets state)")
	assert.Contains(t, msg, "line 11: `onSelect`\n")
}

func TestRepetitiveHandlers_NeedsThreeHandlersAndTwoRepeats(t *testing.T) {
	rule := Rule{Category: CatRepetitivePattern}

	two := strings.Replace(handlersSrc, "  const onSelect = (id) => {\n    select(id)\n  }\n", "", 1)
	assert.Empty(t, checkRepetitiveHandlers(NewSourceFile("src/components/organisms/Orders.tsx", two), DefaultConfig(), rule))

	oneRepeat := strings.Replace(handlersSrc, "await api.archive(id)", "archive(id)", 1)
	assert.Empty(t, checkRepetitiveHandlers(NewSourceFile("src/components/organisms/Orders.tsx", oneRepeat), DefaultConfig(), rule))
}

func TestTryBlocks(t *testing.T) {
	src := strings.Join([]string{
		"async function a() {",
		"  try {",
		"    await one()",
		"    try { nested() } catch {}",
		"  } catch (e) {",
		"    toast(e)",
		"  }",
		"}",
		"async function b() {",
		"  try { await two() } catch (e) { toast(e) }",
		"}",
		"async function c() {",
		"  try {",
		"    await three()",
		"  } finally {",
		"    done()",
		"  }",
		"}",
	}, "\n")
	rule := Rule{Category: CatDuplicatePattern}
	f := NewSourceFile("src/lib/sync.ts", src)

	issues := checkTryBlocks(f, DefaultConfig(), rule)
	require.Len(t, issues, 1)
	is := issues[0]
	assert.True(t, is.FileLevel)
	assert.Contains(t, is.Message, "3 try/catch blocks in one file (max 2)")
	for _, want := range []string{"line 2", "line 10", "line 13"} {
		assert.Contains(t, is.Message, want)
	}
	assert.NotContains(t, is.Message, "line 4", "nested try is part of the outer block")
	assert.Contains(t, is.Message, "safeExecute()")

	cfg := DefaultConfig()
	cfg.MaxTryBlocks = 3
	assert.Empty(t, checkTryBlocks(f, cfg, rule))
}
