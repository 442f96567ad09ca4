package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/doughlab/doughcalc/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware that applies the distributed
// fixed-window limiter to every request. The per-endpoint window can be
// overridden (or the check disabled) via ratelimit.EndpointConfig in
// operation metadata; everything else uses defaultCfg.
//
// Rejections become 429 responses carrying a Retry-After header with the
// counter's remaining TTL. Counter store failures become 500s: the store is
// the authority on quota and requests are not waved through without it.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.FixedWindowLimiter,
	defaultCfg ratelimit.Config,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := defaultCfg

		if epCfg := ratelimit.GetEndpointConfig(ctx); epCfg != nil {
			if epCfg.Disabled {
				next(ctx)

				return
			}

			if epCfg.Config.Limit > 0 {
				cfg = epCfg.Config
			}
		}

		rejection, err := limiter.Check(ctx.Context(), clientKey(ctx), cfg)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", getOperationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, 500, "internal server error", err)

			return
		}

		if rejection != nil {
			logger.Warn("rate limit exceeded",
				zap.String("path", getOperationPath(ctx)),
				zap.String("method", ctx.Method()),
				zap.Duration("retryAfter", rejection.RetryAfter),
				zap.String("client_ip", extractClientIP(ctx)),
			)

			ctx.SetHeader("Retry-After", strconv.Itoa(retryAfterSeconds(rejection)))
			_ = huma.WriteErr(api, ctx, rejection.Status, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

// clientKey generates a rate limiting identity from IP and User-Agent.
func clientKey(ctx huma.Context) string {
	ip := extractClientIP(ctx)
	ua := ctx.Header("User-Agent")

	hash := sha256.Sum256([]byte(ip + "|" + ua))

	return hex.EncodeToString(hash[:])
}

// retryAfterSeconds rounds the rejection's TTL up to whole seconds, with a
// floor of one so clients never retry immediately.
func retryAfterSeconds(rejection *ratelimit.Rejection) int {
	secs := int(math.Ceil(rejection.RetryAfter.Seconds()))
	if secs < 1 {
		return 1
	}

	return secs
}

func getOperationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
