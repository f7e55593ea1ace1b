package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHandler_healthCheck(t *testing.T) {
	log := slog.Default()
	handler := NewHandler(log, nil)

	output, err := handler.healthCheck(context.Background(), &Input{})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "ok", output.Body.Status)

	_, parseErr := time.Parse(time.RFC3339, output.Body.Timestamp)
	assert.NoError(t, parseErr)
}

func TestNewHandler(t *testing.T) {
	handler := NewHandler(slog.Default(), nil)

	assert.NotNil(t, handler)
	assert.NotNil(t, handler.log)
}
