package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/ai/gemini"
	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/extraction"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/secrets"
	"github.com/spigell/resume-ranker/internal/session"
)

const providerGemini = "gemini"

// bootstrap builds the logger, reads the config and wires a ranking session.
// Failures here are startup failures and terminate the process.
func bootstrap(ctx context.Context) (*zap.Logger, *session.Session) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	gateway, err := newGateway(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building extraction gateway",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file in the configuration file"),
		)
	}

	extractor := extraction.NewExtractor(gateway, logger, config.AI.Gemini.MaxLogLength)

	sess := session.New(extractor, document.NewFileReader(),
		session.WithLogger(logger),
		session.WithConcurrency(config.Ingest.Concurrency),
	)

	return logger, sess
}

func newGateway(ctx context.Context, cfg *AIConfig, baseLogger *zap.Logger) (ai.Gateway, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithFields(baseLogger, logger.CommonFields(providerGemini, cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		aiLogger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	return gemini.NewGateway(generator, aiLogger, gemini.Options{
		MaxLogLength: cfg.Gemini.MaxLogLength,
		Timeout:      cfg.Gemini.Timeout,
	}), nil
}
