package cmd

import (
	"context"
	"database/sql"
	"edustocks/api"
	"edustocks/internal/db"
	"edustocks/internal/logger"
	"edustocks/internal/repository"
	l1_service "edustocks/internal/service/l1"
	l2_service "edustocks/internal/service/l2"
	l3_service "edustocks/internal/service/l3"
	"edustocks/internal/util"
	"fmt"
	"log"
	"strings"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Close == nil {
		return
	}
	if err := handler.Close(); err != nil {
		log.Fatalf("failed to close dependencies: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return InitializeDependenciesFromSecrets(context.Background(), secrets)
}

func InitializeDependenciesFromSecrets(ctx context.Context, secrets *util.Secrets) (*api.ApiHandler, error) {
	log := logger.New()

	var dbConn *sql.DB
	portfolioRepository := repository.NewMemoryPortfolioRepository()
	userProgressRepository := repository.NewMemoryUserProgressRepository()
	switch secrets.Store.Backend {
	case util.StoreBackendMemory:
	case util.StoreBackendPostgres:
		if secrets.Store.DatabaseUrl == "" {
			return nil, fmt.Errorf("store backend %s requires a database url", secrets.Store.Backend)
		}
		conn, err := db.Open(secrets.Store.DatabaseUrl)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn); err != nil {
			conn.Close()
			return nil, err
		}
		dbConn = conn
		portfolioRepository = repository.NewPortfolioRepository(dbConn)
		userProgressRepository = repository.NewUserProgressRepository(dbConn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", secrets.Store.Backend)
	}

	quoteProvider, err := newQuoteProvider(secrets)
	if err != nil {
		return nil, err
	}
	if quoteProvider == nil {
		log.Warnf("no credential for quote provider %s, serving fallback quotes", secrets.Stock.Provider)
	}

	textGenerationRepository, err := newTextGenerationRepository(ctx, secrets)
	if err != nil {
		return nil, err
	}
	if textGenerationRepository == nil {
		log.Warnf("no credential for ai provider %s, tutor is disabled", secrets.Ai.Provider)
	}

	lessonRepository, err := repository.NewLessonRepository()
	if err != nil {
		return nil, err
	}

	quoteService := l1_service.NewQuoteService(quoteProvider)
	lessonService := l1_service.NewLessonService(lessonRepository)
	tutorService := l1_service.NewTutorService(textGenerationRepository, repository.NewMemoryTutorQuestionRepository())
	ledgerService := l2_service.NewLedgerService(portfolioRepository, quoteService)
	progressService, err := l2_service.NewProgressService(userProgressRepository, lessonService, secrets.XpFormula)
	if err != nil {
		return nil, err
	}
	userService := l3_service.NewUserService(ledgerService, progressService)

	apiHandler := &api.ApiHandler{
		QuoteService:    quoteService,
		LessonService:   lessonService,
		TutorService:    tutorService,
		LedgerService:   ledgerService,
		ProgressService: progressService,
		UserService:     userService,
		TokenVerifier:   api.NewTokenVerifier(secrets.Jwt, secrets.JwksUrl),
		Logger:          log,
		Close: func() error {
			_ = log.Sync()
			if dbConn != nil {
				return dbConn.Close()
			}
			return nil
		},
	}

	return apiHandler, nil
}

// newQuoteProvider returns nil when the selected provider has no credential.
func newQuoteProvider(secrets *util.Secrets) (repository.QuoteProvider, error) {
	switch strings.ToLower(secrets.Stock.Provider) {
	case util.QuoteProviderAlphaVantage:
		return repository.NewAlphaVantageRepository(secrets.Stock.ApiKey, secrets.Stock.BaseUrl, secrets.QuoteTimeout()), nil
	case util.QuoteProviderYahoo:
		return repository.NewYahooRepository(), nil
	case util.QuoteProviderAlpaca:
		return repository.NewAlpacaRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, secrets.Alpaca.Endpoint), nil
	}
	return nil, fmt.Errorf("unknown quote provider %q", secrets.Stock.Provider)
}

// newTextGenerationRepository returns nil when the selected provider has no
// credential.
func newTextGenerationRepository(ctx context.Context, secrets *util.Secrets) (repository.TextGenerationRepository, error) {
	switch strings.ToLower(secrets.Ai.Provider) {
	case util.AiProviderOpenAI:
		if secrets.Ai.OpenAiKey == "" {
			return nil, nil
		}
		return repository.NewGptRepository(secrets.Ai.OpenAiKey)
	case util.AiProviderGemini:
		if secrets.Ai.GeminiKey == "" {
			return nil, nil
		}
		return repository.NewGeminiRepository(ctx, secrets.Ai.GeminiKey)
	}
	return nil, fmt.Errorf("unknown ai provider %q", secrets.Ai.Provider)
}
