package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"pathoai-backend/internal/analyses"
	"pathoai-backend/internal/llm"
	"pathoai-backend/internal/llm/gemini"
	"pathoai-backend/internal/llm/openai"
	"pathoai-backend/internal/services/health"
	"pathoai-backend/internal/shared/config"
	"pathoai-backend/internal/shared/server"
	"pathoai-backend/internal/shared/storage/mongodb"
	"pathoai-backend/internal/usagelimits"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	Mongo              *mongodb.Client
	UsageLimitsRepo    usagelimits.Repo
	AnalysesRepo       analyses.Repo
	UsageLimitsService *usagelimits.Service
	AnalysesService    *analyses.Service
	HealthService      *health.Service
	UsageLimitsHandler *usagelimits.Handler
	AnalysesHandler    *analyses.Handler
}

// Build prepares app dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	mongoClient, err := buildMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Mongo = mongoClient

	if err := buildServices(app); err != nil {
		if app.Mongo != nil {
			_ = app.Mongo.Close(ctx)
		}
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		Health:             app.HealthService,
		UsageLimitsHandler: app.UsageLimitsHandler,
		AnalysesHandler:    app.AnalysesHandler,
	})

	return app, nil
}

// Close releases held resources, including the database connection.
func (a *App) Close(ctx context.Context) error {
	if a == nil || a.Mongo == nil {
		return nil
	}
	return a.Mongo.Close(ctx)
}

func buildMongo(ctx context.Context, cfg config.Config) (*mongodb.Client, error) {
	if strings.TrimSpace(cfg.MongoURI) == "" {
		if cfg.Debug {
			log.Printf("bootstrap: MONGODB_URI empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	// A configured database that cannot be reached is a startup failure,
	// even in debug mode.
	opts := mongodb.OptionsFromEnv(mongodb.DefaultServerOptions())
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return client, nil
}

func buildServices(app *App) error {
	var usageRepo usagelimits.Repo
	var analysisRepo analyses.Repo

	if app.Mongo != nil {
		db, err := app.Mongo.Database()
		if err != nil {
			return err
		}
		usageRepo = &usagelimits.MongoRepo{DB: db}
		analysisRepo = &analyses.MongoRepo{DB: db}
	} else {
		usageRepo = usagelimits.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	usageSvc := usagelimits.NewService(usageRepo)

	jrClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.OpenAIToken != "" {
		client, err := openai.NewClient(app.Config.OpenAIToken, app.Config.OpenAIModel)
		if err != nil {
			return err
		}
		jrClient = client
	}

	srClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.GeminiToken != "" {
		client, err := gemini.NewClient(app.Config.GeminiToken, app.Config.GeminiModel)
		if err != nil {
			return err
		}
		srClient = client
	}

	analysisSvc := &analyses.Service{
		Repo:     analysisRepo,
		Usage:    usageSvc,
		JRClient: jrClient,
		SRClient: srClient,
	}

	app.UsageLimitsRepo = usageRepo
	app.AnalysesRepo = analysisRepo
	app.UsageLimitsService = usageSvc
	app.AnalysesService = analysisSvc
	app.HealthService = health.NewService()
	app.UsageLimitsHandler = usagelimits.NewHandler(usageSvc)
	app.AnalysesHandler = analyses.NewHandler(analysisSvc)

	return nil
}
