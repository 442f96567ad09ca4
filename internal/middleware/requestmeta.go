package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/doughlab/doughcalc/internal/handlers"
)

// RequestMeta captures client IP, user-agent and referrer once per request
// and stores them in the request context. The rate limiters key on the IP and
// the analytics events carry all three.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}

// extractClientIP resolves the originating client address. Proxy headers win
// over the connection address: X-Forwarded-For may hold a chain, in which
// case the first hop is the client.
func extractClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()
	if ip, _, err := net.SplitHostPort(host); err == nil {
		return ip
	}

	return host
}
