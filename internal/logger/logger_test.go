package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	), &buf
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	log, buf := newBufferLogger(logger.WARN)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN ")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	log.WithPrefix("quiz").
		WithFields(map[string]any{"zeta": 2, "alpha": "a"}).
		WithField("mid", true).
		Info("generated")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[quiz]")
	assert.True(t, strings.HasSuffix(line, "generated alpha=a mid=true zeta=2"), line)
}

func TestLogger_DerivedLoggersDoNotShareFields(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	a := log.WithField("who", "a")
	_ = a.WithField("extra", 1)
	a.Info("msg")

	assert.NotContains(t, buf.String(), "extra=1")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("ERROR"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))

	assert.True(t, logger.ValidLevel("warn"))
	assert.False(t, logger.ValidLevel("verbose"))
}

func TestContextRoundTrip(t *testing.T) {
	log, _ := newBufferLogger(logger.DEBUG)

	ctx := logger.NewContext(context.Background(), log)
	require.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
