package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/doughlab/doughcalc/internal/analytics"
	analyticsstore "github.com/doughlab/doughcalc/internal/analytics/store"
	"github.com/doughlab/doughcalc/internal/dough"
	"github.com/doughlab/doughcalc/internal/handlers"
	"github.com/doughlab/doughcalc/internal/health"
	"github.com/doughlab/doughcalc/internal/messaging"
	"github.com/doughlab/doughcalc/internal/middleware"
	"github.com/doughlab/doughcalc/internal/ratelimit"
	"github.com/doughlab/doughcalc/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds the service configuration, parsed by humacli from flags and
// environment variables.
type Options struct {
	Port            int    `default:"8888"           help:"Port to listen on"                                    short:"p"`
	BaseURL         string `default:""               help:"Public base URL for share links (defaults to localhost)"`
	RedisAddr       string `default:"localhost:6379" help:"Redis server address"                                 short:"r"`
	PostgresDSN     string `default:""               help:"Postgres DSN for saved recipes and analytics (empty = in-memory)"`
	ShareCodeLength int    `default:"8"              help:"Length of generated recipe share codes"               short:"c"`
	LogFormat       string `default:"console"        help:"Log format: console or json"`
}

func (o *Options) baseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})
}

// PostgresPackage provides the pgx pool. Invoked only when a DSN is
// configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return pgxpool.New(ctx, options.PostgresDSN)
	})
}

// RepositoryPackage provides the recipe repository: Postgres when a DSN is
// configured, in-memory otherwise.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (dough.Repository, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresDSN == "" {
			return store.NewMemoryStore(), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)

		return store.NewPostgresStore(pool), nil
	})
}

// RateLimitPackage provides both limiters: the Redis-backed fixed-window
// limiter shared across instances, and the per-process local limiter guarding
// the calculator.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.FixedWindowLimiter, error) {
		client := do.MustInvoke[*redis.Client](i)

		return ratelimit.NewFixedWindowLimiter(store.NewRedisCounterStore(client)), nil
	})

	do.Provide(injector, func(_ *do.Injector) (*ratelimit.LocalLimiter, error) {
		return ratelimit.NewLocalLimiter(), nil
	})
}

// PublisherGroupPackage provides the Redis Streams publisher and the typed
// publish functions for analytics events.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.RecipeCalculatedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.RecipeCalculatedEvent](
			group.Publisher(), analytics.TopicRecipeCalculated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.RecipeSavedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.RecipeSavedEvent](
			group.Publisher(), analytics.TopicRecipeSaved), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group for the
// consumer binary.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.PostgresDSN == "" {
			return analyticsstore.NewNoop(logger), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)

		return analyticsstore.NewPostgres(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[analytics.Store](i)
		client := do.MustInvoke[*redis.Client](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "analytics",
			},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicRecipeCalculated,
			analytics.NewRecipeCalculatedHandler(eventStore),
			logger,
		))
		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicRecipeSaved,
			analytics.NewRecipeSavedHandler(eventStore),
			logger,
		))

		return group, nil
	})
}

// HTTPPackage provides the chi router and the huma API with all middleware
// and routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		fixedLimiter := do.MustInvoke[*ratelimit.FixedWindowLimiter](i)
		localLimiter := do.MustInvoke[*ratelimit.LocalLimiter](i)
		repository := do.MustInvoke[dough.Repository](i)
		redisClient := do.MustInvoke[*redis.Client](i)
		publishCalculated := do.MustInvoke[messaging.Publish[analytics.RecipeCalculatedEvent]](i)
		publishSaved := do.MustInvoke[messaging.Publish[analytics.RecipeSavedEvent]](i)

		api := humachi.New(router, huma.DefaultConfig("Pizza Dough Calculator", "1.0.0"))

		defaultWindow := ratelimit.Config{Interval: time.Minute, Limit: 60}
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, fixedLimiter, defaultWindow, logger),
		)

		codeGenerator, err := nanoid.Standard(options.ShareCodeLength)
		if err != nil {
			return nil, err
		}

		calcHandler := handlers.NewCalcHandler(localLimiter, publishCalculated, logger)
		recipeHandler := handlers.NewRecipeHandler(
			repository, codeGenerator, options.baseURL(), publishSaved, logger)

		checkers := []health.Checker{health.NewRedisChecker(redisClient)}
		if options.PostgresDSN != "" {
			pool := do.MustInvoke[*pgxpool.Pool](i)
			checkers = append(checkers, health.NewPostgresChecker(pool))
		}

		handlers.RegisterRoutes(api, calcHandler, recipeHandler)
		health.RegisterRoutes(api, health.NewHandler(checkers...))

		return api, nil
	})
}
