package client

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTempID_UniqueWithinSameMillisecond(t *testing.T) {
	now := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := nextTempID(now)
		assert.True(t, strings.HasPrefix(id, tempIDPrefix))
		_, dup := seen[id]
		assert.False(t, dup, "duplicate temp id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsTempID(t *testing.T) {
	assert.True(t, IsTempID("temp_1741600000000"))
	assert.False(t, IsTempID("9b2e8a34-1c2d-4e7f-a1b2-0c3d4e5f6a7b"))
	assert.False(t, IsTempID(""))
}
