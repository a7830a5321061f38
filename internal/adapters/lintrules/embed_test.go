package lintrules

import (
	"testing"

	"github.com/corey/reviewbot/internal/domain/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_MatchBuiltins(t *testing.T) {
	cfg, err := lint.LoadConfig(FS, DefaultsFile, lint.Config{})
	require.NoError(t, err)
	assert.Equal(t, lint.DefaultConfig(), cfg)
}
