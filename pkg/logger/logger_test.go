package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	custom := zap.NewNop().With(zap.String("k", "v"))
	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}

func TestMiddleware_HandsErrorsToEcho(t *testing.T) {
	e := echo.New()
	var handled error
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handled = err
		_ = c.NoContent(http.StatusTeapot)
	}
	e.Use(Middleware())

	var fromRequest, fromEcho *zap.Logger
	e.GET("/fail", func(c echo.Context) error {
		fromRequest = FromContext(c.Request().Context())
		fromEcho = FromEcho(c)
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Error(t, handled)
	assert.Equal(t, "boom", handled.Error())
	assert.Same(t, fromEcho, fromRequest)
}

func TestInitLogger_RotatingFile(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	require.NoError(t, InitLogger(&LogConfig{
		Level:       "debug",
		Environment: "production",
		ServiceName: "sareecatalog",
		File:        t.TempDir() + "/catalog.log",
		MaxSizeMB:   1,
	}))
	assert.True(t, GetLogger().Core().Enabled(zap.DebugLevel))
}
