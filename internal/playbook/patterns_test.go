package playbook_test

import (
	"testing"

	"github.com/dionysius/docweave/internal/playbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPatternsUnmarshalCommaSeparatedString(t *testing.T) {
	var p playbook.Patterns
	require.NoError(t, yaml.Unmarshal([]byte(`"v1.*, v2.*"`), &p))
	assert.Equal(t, playbook.Patterns{"v1.*", "v2.*"}, p)
}

func TestPatternsUnmarshalSequence(t *testing.T) {
	var p playbook.Patterns
	require.NoError(t, yaml.Unmarshal([]byte("- main\n- release/*\n"), &p))
	assert.Equal(t, playbook.Patterns{"main", "release/*"}, p)
}

func TestPatternsMatchesCurrentBranch(t *testing.T) {
	assert.True(t, playbook.Patterns{"HEAD"}.MatchesCurrentBranch())
	assert.True(t, playbook.Patterns{"."}.MatchesCurrentBranch())
	assert.False(t, playbook.Patterns{"main"}.MatchesCurrentBranch())
}
