package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/laundry-payment-service/config"
	"github.com/alimikegami/laundry-payment-service/internal/controller"
	"github.com/alimikegami/laundry-payment-service/internal/infrastructure/database/postgres"
	paymentgateway "github.com/alimikegami/laundry-payment-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/laundry-payment-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/laundry-payment-service/internal/middleware"
	"github.com/alimikegami/laundry-payment-service/internal/repository"
	"github.com/alimikegami/laundry-payment-service/internal/service"
	"github.com/alimikegami/laundry-payment-service/pkg/httpclient"
	"github.com/alimikegami/laundry-payment-service/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "laundry-payment-service"

type App struct {
	Config  *config.Config
	Server  *echo.Echo
	Metrics *echo.Echo
	Service service.PaymentService

	traceProvider *trace.TracerProvider
}

// InitLogger points the global and context loggers at stdout.
func InitLogger() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}

// Setup wires the record store, the gateway and the HTTP routes without
// listening on any port.
func (app *App) Setup() error {
	traceProvider, err := tracing.InitTracing(serviceName, app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider

	tracer := traceProvider.Tracer(serviceName)

	repo, err := app.createRepository()
	if err != nil {
		return err
	}

	client := httpclient.NewClient()
	gateway := paymentgateway.CreateMidtransClient(app.Config.MidtransConfig, client)
	app.Service = service.CreatePaymentService(repo, gateway, app.Config)

	e := echo.New()
	e.Pre(localmiddleware.CORS)
	e.Use(middleware.Recover())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			// add the context to the request
			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	controller.CreatePaymentController(g, app.Service)

	app.Server = e

	return nil
}

func (app *App) createRepository() (repository.PaymentRepository, error) {
	conf := app.Config.RecordStoreConfig
	if !conf.IsConfigured() {
		log.Warn().Str("component", "createRepository").Msg("SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY is not set, webhook will be rejected")
		return nil, nil
	}

	if conf.IsPostgres() {
		db, err := postgres.GetDBInstance(conf.URL, conf.ServiceKey)
		if err != nil {
			return nil, err
		}
		return repository.CreatePostgresPaymentRepository(db), nil
	}

	return repository.CreateRestPaymentRepository(conf, httpclient.NewClient()), nil
}

// Start serves the API and the metrics endpoint until StopServer is called.
func (app *App) Start() error {
	if app.Server == nil {
		if err := app.Setup(); err != nil {
			return err
		}
	}

	app.Metrics = echo.New()
	app.Metrics.HideBanner = true
	app.Metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := app.Metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// StopServer drains in-flight requests and background reconciliations.
func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error

	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.Metrics != nil {
		errList = append(errList, app.Metrics.Shutdown(ctx))
	}
	if app.Service != nil {
		app.Service.Wait()
	}
	if app.traceProvider != nil {
		errList = append(errList, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
