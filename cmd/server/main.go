package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getAlby/assethub.go/db"
	"github.com/getAlby/assethub.go/db/migrations"
	"github.com/getAlby/assethub.go/lib/logging"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/getAlby/assethub.go/lib/transport"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun/migrate"
	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// @title        AssetHub
// @version      0.1.0
// @description  Asset tracking service with QR code identity labels.

// @BasePath  /
// @schemes   https http
func main() {
	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	c, err := service.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	if err = migrator.Init(startupCtx); err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	group, err := migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	cancelStartup()
	if !group.IsZero() {
		logger.Infof("Migrated database to %s", group)
	}

	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Without RABBITMQ_URI no asset events are published.
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, logger)
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithAssetExchange(c.RabbitMQAssetExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	svc := &service.AssetService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		QRCodec:        service.NewQRCodec(c),
		RabbitMQClient: rabbitmqClient,
	}
	if !svc.QRCodec.CanDecode() {
		logger.Warn("QR scanning is disabled, POST /assets/scan will answer 500")
	}

	e := transport.InitEcho(c, logger)
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("assethub.go")))
	}

	var echoPrometheus *echo.Echo
	if c.EnablePrometheus {
		echoPrometheus = transport.StartPrometheusEcho(logger, c, e)
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	transport.RegisterSystemEndpoints(e)
	transport.RegisterAssetEndpoints(svc, e.Group("", logMw), strictRateLimitMiddleware)
	transport.RegisterAssetEndpoints(svc, e.Group("/api/v1", logMw), strictRateLimitMiddleware)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("Serving AssetHub at %s", c.Host)
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}
	logger.Info("AssetHub exiting gracefully. Goodbye.")
}
