package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStreakNudge(t *testing.T) {
	body, err := RenderStreakNudge("ana", []string{"Water Intake", "Meditation <daily>"})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi ana")
	assert.Contains(t, body, "<li>Water Intake</li>")
	assert.Contains(t, body, "Meditation &lt;daily&gt;")
}
