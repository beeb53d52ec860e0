package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashstudy/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{" error ", logger.ERROR},
		{"nonsense", logger.INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("study").
		WithFields(map[string]any{"zeta": 1, "alpha": "x"}).
		WithField("mid", true)

	log.Info("session started")

	line := buf.String()
	assert.Contains(t, line, "[study]")
	assert.Contains(t, line, "session started")
	assert.True(t, strings.HasSuffix(line, "alpha=x mid=true zeta=1\n"), line)
}

func TestLogger_DerivedDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = base.WithField("session_id", "abc")

	base.Info("plain")
	assert.NotContains(t, buf.String(), "session_id")
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithPrefix("req"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
