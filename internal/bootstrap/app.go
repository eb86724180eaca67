package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/advisor"
	"career-advisor/internal/internships"
	"career-advisor/internal/llm"
	"career-advisor/internal/llm/gemini"
	"career-advisor/internal/plans"
	"career-advisor/internal/sessions"
	"career-advisor/internal/shared/config"
	"career-advisor/internal/shared/server"
	"career-advisor/internal/shared/storage/db"
	"career-advisor/web"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	LLM            llm.Client
	AdvisorService *advisor.Service
	SessionService *sessions.Service
	PlanService    *plans.Service
}

// Build prepares shared dependencies and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	advisorSvc := &advisor.Service{LLM: llmClient, Retries: cfg.RoadmapRetries}

	sessionSvc := &sessions.Service{
		Repo:    sessions.NewMemoryRepo(),
		Advisor: advisorSvc,
	}

	var planRepo plans.Repo
	if sqlDB != nil {
		planRepo = &plans.PGRepo{DB: sqlDB}
	} else {
		planRepo = plans.NewMemoryRepo()
	}
	planSvc := &plans.Service{
		Repo:     planRepo,
		Sessions: sessionSvc,
		Advisor:  advisorSvc,
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		LLM:            llmClient,
		AdvisorService: advisorSvc,
		SessionService: sessionSvc,
		PlanService:    planSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		SessionHandler:    sessions.NewHandler(sessionSvc),
		PlanHandler:       plans.NewHandler(planSvc),
		InternshipHandler: internships.NewHandler(),
		StaticFS:          web.Static(),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory plan history: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory plan history: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "gemini" {
		log.Printf("bootstrap: unknown LLM provider %q; generative features disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}, nil
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, time.Duration(cfg.GeminiTimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("build gemini client: %w", err)
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
