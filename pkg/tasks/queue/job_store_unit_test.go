package queue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateError(t *testing.T) {
	assert.Equal(t, "short", truncateError("short"))

	long := strings.Repeat("ñ", MaxErrorLength+10)
	truncated := truncateError(long)
	assert.Equal(t, MaxErrorLength, len([]rune(truncated)))
	assert.True(t, strings.HasPrefix(long, truncated))
}

func TestEnqueueOutcomeChanged(t *testing.T) {
	assert.True(t, EnqueueCreated.Changed())
	assert.True(t, EnqueueRequeued.Changed())
	assert.False(t, EnqueueAlreadyPending.Changed())
	assert.False(t, EnqueueAlreadyProvisioned.Changed())
}
