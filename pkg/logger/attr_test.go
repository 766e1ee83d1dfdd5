package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authportal/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestVisitorID(t *testing.T) {
	attr := logger.VisitorID("v-1")
	require.Equal(t, "visitor_id", attr.Key)
	assert.Equal(t, "v-1", attr.Value.String())

	assert.True(t, logger.VisitorID("").Equal(slog.Attr{}))
}

func TestScalarAttrs(t *testing.T) {
	assert.Equal(t, "status", logger.Status(401).Key)
	assert.Equal(t, int64(401), logger.Status(401).Value.Int64())
	assert.Equal(t, "/dashboard", logger.Path("/dashboard").Value.String())
	assert.Equal(t, "authapi", logger.Component("authapi").Value.String())
	assert.Equal(t, "login", logger.Event("login").Value.String())
	assert.Equal(t, "j***@example.com", logger.Email("j***@example.com").Value.String())
}
