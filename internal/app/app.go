package app

import (
	"context"
	"fmt"

	"github.com/csuvajit/web-login/config"
	accountRepoMongo "github.com/csuvajit/web-login/internal/accountrepo/mongo"
	accountRepoPostgres "github.com/csuvajit/web-login/internal/accountrepo/postgres"
	"github.com/csuvajit/web-login/internal/authservice"
	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/routes"
	"github.com/csuvajit/web-login/internal/server"
	"github.com/csuvajit/web-login/internal/session"
	"github.com/csuvajit/web-login/internal/views"
	"github.com/csuvajit/web-login/pkg/databases/mongo"
	"github.com/csuvajit/web-login/pkg/databases/postgres"
	"github.com/csuvajit/web-login/pkg/metrics"
	"github.com/csuvajit/web-login/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App represents the main application, containing server and configuration.
// It initializes with a config file, validates settings, and manages routes.
type App struct {
	Server interfaces.Server
	Config *config.ServiceConfig
	Logger interfaces.Logger
}

// NewApp creates and configures a new App instance: config, logger,
// metrics, store client, repository, auth service, sessions and routes are
// all constructed here and injected explicitly.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Validate the configuration
	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	serverInstance := server.NewServer(cfg.Host, cfg.Port, logger)
	app.Server = serverInstance

	metricsInstance := app.initializeMetrics()

	dbClient, err := app.initializeDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database client: %v", err)
	}

	accountRepo, err := app.initializeAccountRepo(dbClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account repository: %v", err)
	}

	authService := authservice.NewAuthService(accountRepo, logger)

	sessions := session.NewManager(cfg.Session)

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize views: %v", err)
	}

	route := routes.NewRoute(metricsInstance, authService, sessions, renderer, logger, validator)

	metricsHandler := promhttp.HandlerFor(
		metricsInstance.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, routes.MetricsRoute)

	err = app.Server.AddRoute(routes.MetricsRoute, tracedMetricsHandler.ServeHTTP)
	if err != nil {
		return nil, fmt.Errorf("failed to add metrics route: %v", err)
	}

	if err := app.Server.AddRoute(routes.HomeRoute, route.Home); err != nil {
		return nil, fmt.Errorf("failed to add home route: %v", err)
	}
	if err := app.Server.AddRoute(routes.DashboardRoute, route.Dashboard); err != nil {
		return nil, fmt.Errorf("failed to add dashboard route: %v", err)
	}
	if err := app.Server.AddRoute(routes.LoginRoute, route.Login); err != nil {
		return nil, fmt.Errorf("failed to add login route: %v", err)
	}
	if err := app.Server.AddRoute(routes.SignupRoute, route.Signup); err != nil {
		return nil, fmt.Errorf("failed to add signup route: %v", err)
	}
	if err := app.Server.AddRoute(routes.LogoutRoute, route.Logout); err != nil {
		return nil, fmt.Errorf("failed to add logout route: %v", err)
	}
	if err := app.Server.AddRoute(routes.DownloadRoute, route.Download); err != nil {
		return nil, fmt.Errorf("failed to add download route: %v", err)
	}
	if err := app.Server.AddRoute(routes.DeleteRoute, route.Delete); err != nil {
		return nil, fmt.Errorf("failed to add delete route: %v", err)
	}

	// Session middleware wraps every route so each handler sees the
	// loaded session and writes the cookie on the way out.
	app.Server.AddMiddleware(sessions.LoadAndSave)

	return app, nil
}

func (app *App) Run() error {
	// start the server
	if err := app.Server.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %v", err)
	}

	return nil
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)
	appMetrics.RegisterCounter(routes.SignupRequestsTotal, routes.SignupRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.SignupSuccessTotal, routes.SignupSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.SignupErrorsTotal, routes.SignupErrorsTotalHelp)
	appMetrics.RegisterHistogram(
		routes.SignupDurationSeconds,
		routes.SignupDurationSecondsHelp,
		routes.SignupDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.LoginRequestsTotal, routes.LoginRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.LoginSuccessTotal, routes.LoginSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.LoginFailedTotal, routes.LoginFailedTotalHelp)
	appMetrics.RegisterHistogram(
		routes.LoginDurationSeconds,
		routes.LoginDurationSecondsHelp,
		routes.LoginDurationSecondsBuckets)

	appMetrics.RegisterCounter(routes.DownloadRequestsTotal, routes.DownloadRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.DeleteRequestsTotal, routes.DeleteRequestsTotalHelp)
	appMetrics.RegisterCounter(routes.DeleteSuccessTotal, routes.DeleteSuccessTotalHelp)
	appMetrics.RegisterCounter(routes.StoreErrorsTotal, routes.StoreErrorsTotalHelp)

	return appMetrics
}

func (app *App) initializeDBClient() (interfaces.DBClient, error) {
	var dbClient interfaces.DBClient
	var err error

	switch app.Config.Database.Type {
	case "mongo":
		// Initialize MongoDB client
		dbClient, err = mongo.NewMongoDB(&app.Config.Database.MongoDB, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %v", err)
		}

		// Ensure the MongoDB client is connected
		if err = dbClient.Connect(context.Background(), app.Config.Database.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
		}

	case "postgres":
		// Create PostgreSQL database client
		pgOpts := app.Config.Database.Postgres.Options
		dbClient = postgres.NewPostgresDatabaseClient(
			pgOpts.MaxOpenConns,
			pgOpts.MaxIdleConns,
			pgOpts.ConnMaxLifetime,
			config.ListToMap(app.Config.Database.Postgres.ValidTables),
			app.Logger,
		)

		if err = dbClient.Connect(context.Background(), app.Config.Database.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	return dbClient, nil
}

func (app *App) initializeAccountRepo(dbClient interfaces.DBClient) (interfaces.AccountRepository, error) {
	var accountRepo interfaces.AccountRepository
	var err error

	switch app.Config.Database.Type {
	case "mongo":
		// Initialize MongoDB repository
		accountRepo, err = accountRepoMongo.NewMongoAccountRepository(dbClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB repository: %v", err)
		}

	case "postgres":
		// Initialize PostgreSQL repository
		accountRepo, err = accountRepoPostgres.NewPostgresAccountRepository(dbClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL repository: %v", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database type: %s", app.Config.Database.Type)
	}

	// Ensure the unique username index/constraint exists before serving.
	if err = accountRepo.EnsureIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure indices: %v", err)
	}

	return accountRepo, nil
}
