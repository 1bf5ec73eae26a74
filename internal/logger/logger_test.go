package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "prod", "")
	l.Debug("hidden")
	l.Info("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "dev", "warn")
	l.Info("quiet")
	l.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud")
}

func TestContextRoundTrip(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := NewWithWriter(&bytes.Buffer{}, "dev", "")
	assert.Same(t, l, FromContext(IntoContext(context.Background(), l)))
}
