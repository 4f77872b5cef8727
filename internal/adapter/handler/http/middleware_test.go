package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestRequestContext_JoinsCallerTrace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	var got trace.SpanContext
	var deadline bool
	router := gin.New()
	router.Use(requestContext(time.Second))
	router.GET("/ping", func(ctx *gin.Context) {
		got = trace.SpanContextFromContext(ctx.Request.Context())
		_, deadline = ctx.Request.Context().Deadline()
		ctx.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, got.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", got.TraceID().String())
	assert.True(t, got.IsSampled())
	assert.True(t, deadline)
}

func TestRequestContext_NoTraceparent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline bool
	router := gin.New()
	router.Use(requestContext(0))
	router.GET("/ping", func(ctx *gin.Context) {
		_, deadline = ctx.Request.Context().Deadline()
		assert.NoError(t, context.Cause(ctx.Request.Context()))
		ctx.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, deadline)
}
