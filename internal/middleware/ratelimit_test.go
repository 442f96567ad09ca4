package middleware_test

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/doughlab/doughcalc/internal/middleware"
	"github.com/doughlab/doughcalc/internal/ratelimit"
	"github.com/doughlab/doughcalc/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	testHostAddr  = "192.168.1.1:12345"
	testUserAgent = "TestAgent/1.0"
)

var (
	errMultipartNotSupported = errors.New("multipart not supported in mock")
	errStore                 = errors.New("store error")

	defaultCfg = ratelimit.Config{Interval: time.Minute, Limit: 3}
)

func newTestAPI() huma.API {
	return humachi.New(chi.NewMux(), huma.DefaultConfig("Test", "1.0.0"))
}

// mockHumaContext implements huma.Context for testing.
type mockHumaContext struct {
	headers    map[string]string
	setHeaders map[string]string
	host       string
	remoteAddr string
	written    []byte
	statusCode int
	method     string
	operation  *huma.Operation
}

func newMockHumaContext() *mockHumaContext {
	return &mockHumaContext{
		headers:    make(map[string]string),
		setHeaders: make(map[string]string),
		method:     "GET",
	}
}

func (m *mockHumaContext) Operation() *huma.Operation {
	return m.operation
}
func (m *mockHumaContext) Context() context.Context              { return context.Background() }
func (m *mockHumaContext) TLS() *tls.ConnectionState             { return nil }
func (m *mockHumaContext) Method() string                        { return m.method }
func (m *mockHumaContext) Host() string                          { return m.host }
func (m *mockHumaContext) RemoteAddr() string                    { return m.remoteAddr }
func (m *mockHumaContext) URL() url.URL                          { return url.URL{} }
func (m *mockHumaContext) Param(_ string) string                 { return "" }
func (m *mockHumaContext) Query(_ string) string                 { return "" }
func (m *mockHumaContext) Header(name string) string             { return m.headers[name] }
func (m *mockHumaContext) EachHeader(_ func(name, value string)) {}
func (m *mockHumaContext) BodyReader() io.Reader                 { return nil }
func (m *mockHumaContext) GetMultipartForm() (*multipart.Form, error) {
	return nil, errMultipartNotSupported
}
func (m *mockHumaContext) SetReadDeadline(_ time.Time) error { return nil }
func (m *mockHumaContext) SetStatus(code int)                { m.statusCode = code }
func (m *mockHumaContext) Status() int                       { return m.statusCode }
func (m *mockHumaContext) AppendHeader(_, _ string)          {}
func (m *mockHumaContext) SetHeader(name, value string)      { m.setHeaders[name] = value }
func (m *mockHumaContext) BodyWriter() io.Writer             { return &mockBodyWriter{ctx: m} }

type mockBodyWriter struct {
	ctx *mockHumaContext
}

func (w *mockBodyWriter) Write(p []byte) (n int, err error) {
	w.ctx.written = append(w.ctx.written, p...)

	return len(p), nil
}

// capturingStore records INCR keys on its way to the wrapped store.
type capturingStore struct {
	inner ratelimit.CounterStore
	keys  []string
}

func (c *capturingStore) Incr(ctx context.Context, key string) (int64, error) {
	c.keys = append(c.keys, key)

	return c.inner.Incr(ctx, key)
}

func (c *capturingStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.inner.Expire(ctx, key, ttl)
}

func (c *capturingStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.inner.TTL(ctx, key)
}

// failingStore errors on every call.
type failingStore struct{}

func (failingStore) Incr(_ context.Context, _ string) (int64, error) { return 0, errStore }
func (failingStore) Expire(_ context.Context, _ string, _ time.Duration) error {
	return errStore
}
func (failingStore) TTL(_ context.Context, _ string) (time.Duration, error) { return 0, errStore }

func testContext() *mockHumaContext {
	ctx := newMockHumaContext()
	ctx.host = testHostAddr
	ctx.headers["User-Agent"] = testUserAgent

	return ctx
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the default window", func(t *testing.T) {
		api := newTestAPI()
		limiter := ratelimit.NewFixedWindowLimiter(store.NewMemoryCounterStore())
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		for i := 0; i < 3; i++ {
			ctx := testContext()
			nextCalled := false

			mw(ctx, func(_ huma.Context) {
				nextCalled = true
			})

			assert.True(t, nextCalled, "request %d should be allowed", i+1)
		}
	})

	t.Run("returns 429 with Retry-After once the window is spent", func(t *testing.T) {
		api := newTestAPI()
		limiter := ratelimit.NewFixedWindowLimiter(store.NewMemoryCounterStore())
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		for n := 0; n < 3; n++ {
			mw(testContext(), func(_ huma.Context) {})
		}

		ctx := testContext()
		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled, "next should not be called when rate limited")
		assert.Equal(t, 429, ctx.statusCode)
		assert.Contains(t, string(ctx.written), "rate limit exceeded")
		assert.NotEmpty(t, ctx.setHeaders["Retry-After"])
	})

	t.Run("returns 500 when the counter store fails", func(t *testing.T) {
		api := newTestAPI()
		limiter := ratelimit.NewFixedWindowLimiter(failingStore{})
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		ctx := testContext()
		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled, "next should not be called when the store errors")
		assert.Equal(t, 500, ctx.statusCode)
	})

	t.Run("skips the check when disabled via metadata", func(t *testing.T) {
		api := newTestAPI()
		limiter := ratelimit.NewFixedWindowLimiter(store.NewMemoryCounterStore())
		mw := middleware.RateLimiter(api, limiter, ratelimit.Config{Interval: time.Minute, Limit: 1}, zap.NewNop())

		operation := &huma.Operation{
			Path: "/limits",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
			},
		}

		for i := 0; i < 5; i++ {
			ctx := testContext()
			ctx.operation = operation

			nextCalled := false

			mw(ctx, func(_ huma.Context) {
				nextCalled = true
			})

			assert.True(t, nextCalled, "request %d should bypass the limiter", i+1)
		}
	})

	t.Run("applies per-endpoint window from metadata", func(t *testing.T) {
		api := newTestAPI()
		limiter := ratelimit.NewFixedWindowLimiter(store.NewMemoryCounterStore())
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		operation := &huma.Operation{
			Path: "/calculate",
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{
					Config: ratelimit.Config{Interval: time.Minute, Limit: 2},
				},
			},
		}

		for i := 0; i < 2; i++ {
			ctx := testContext()
			ctx.operation = operation

			nextCalled := false

			mw(ctx, func(_ huma.Context) {
				nextCalled = true
			})

			assert.True(t, nextCalled, "request %d should be allowed", i+1)
		}

		ctx := testContext()
		ctx.operation = operation

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled, "third request should be denied by the endpoint window")
		assert.Equal(t, 429, ctx.statusCode)
	})

	t.Run("keys requests by IP and User-Agent", func(t *testing.T) {
		api := newTestAPI()
		capture := &capturingStore{inner: store.NewMemoryCounterStore()}
		limiter := ratelimit.NewFixedWindowLimiter(capture)
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		mw(testContext(), func(_ huma.Context) {})
		mw(testContext(), func(_ huma.Context) {})

		otherAgent := testContext()
		otherAgent.headers["User-Agent"] = "DifferentAgent/2.0"
		mw(otherAgent, func(_ huma.Context) {})

		assert.Len(t, capture.keys, 3)
		assert.Equal(t, capture.keys[0], capture.keys[1], "same IP and User-Agent share a key")
		assert.NotEqual(t, capture.keys[0], capture.keys[2], "different User-Agent gets its own key")
	})

	t.Run("prefers the first X-Forwarded-For address", func(t *testing.T) {
		api := newTestAPI()
		capture := &capturingStore{inner: store.NewMemoryCounterStore()}
		limiter := ratelimit.NewFixedWindowLimiter(capture)
		mw := middleware.RateLimiter(api, limiter, defaultCfg, zap.NewNop())

		ctx1 := testContext()
		ctx1.host = "10.0.0.1:12345"
		ctx1.headers["X-Forwarded-For"] = "203.0.113.195, 70.41.3.18, 150.172.238.178"
		mw(ctx1, func(_ huma.Context) {})

		ctx2 := testContext()
		ctx2.host = "10.0.0.2:54321"
		ctx2.headers["X-Forwarded-For"] = "203.0.113.195"
		mw(ctx2, func(_ huma.Context) {})

		assert.Equal(t, capture.keys[0], capture.keys[1], "should use first IP from X-Forwarded-For")
	})
}
