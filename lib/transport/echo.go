package transport

import (
	"fmt"

	"github.com/getAlby/assethub.go/lib"
	"github.com/getAlby/assethub.go/lib/responses"
	"github.com/getAlby/assethub.go/lib/service"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v3"
	"golang.org/x/time/rate"
)

func InitEcho(c *service.Config, logger *lecho.Logger) (e *echo.Echo) {
	e = echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: lib.NewValidator()}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(c.BodyLimit))
	// the default rate limit defines the overall max requests/second per IP
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(c.DefaultRateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: c.CORSAllowOrigins,
	}))

	e.Logger = logger
	e.Use(middleware.RequestID())

	// sentry.Init has to run before this middleware is added
	if c.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	return e
}

func CreateLoggingMiddleware(logger *lecho.Logger) echo.MiddlewareFunc {
	return lecho.Middleware(lecho.Config{
		Logger: logger,
		Enricher: func(c echo.Context, logger zerolog.Context) zerolog.Context {
			return logger.Str("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
		},
	})
}

func CreateRateLimitMiddleware(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(requestsPerSecond), Burst: burst},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

// StartPrometheusEcho scrapes e and serves the metrics on a separate port.
// The server runs in the background; the returned instance is for shutdown.
func StartPrometheusEcho(logger *lecho.Logger, c *service.Config, e *echo.Echo) *echo.Echo {
	echoPrometheus := echo.New()
	echoPrometheus.HideBanner = true
	prom := prometheus.NewPrometheus("echo", nil)
	e.Use(prom.HandlerFunc)
	prom.SetMetricsPath(echoPrometheus)
	echoPrometheus.Logger = logger
	go func() {
		echoPrometheus.Logger.Infof("Starting prometheus on port %d", c.PrometheusPort)
		if err := echoPrometheus.Start(fmt.Sprintf(":%d", c.PrometheusPort)); err != nil {
			echoPrometheus.Logger.Info(err)
		}
	}()
	return echoPrometheus
}
