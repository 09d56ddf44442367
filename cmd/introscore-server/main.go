package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"introscore/internal/config"
	"introscore/internal/domain"
	"introscore/internal/embedding/openai"
	"introscore/internal/embedding/tfidf"
	"introscore/internal/oracle"
	"introscore/internal/rubric"
	"introscore/internal/scoring"
	"introscore/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, rubricPath, addr string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&rubricPath, "rubric", "", "Path to rubric file (overrides config)")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if rubricPath != "" {
		cfg.Rubric.Path = rubricPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	criteria, err := rubric.Load(cfg.Rubric.Path)
	if err != nil {
		logger.Error("failed to load rubric", "error", err)
		os.Exit(1)
	}

	orc, err := buildOracle(cfg)
	if err != nil {
		logger.Error("oracle init failed", "error", err)
		os.Exit(1)
	}
	// Fail at boot rather than at the first scoring request.
	if err := oracle.Probe(context.Background(), orc); err != nil {
		logger.Error("oracle not ready", "error", err)
		os.Exit(1)
	}

	engine := scoring.NewEngine(criteria, orc)
	srv := server.New(engine, logger)

	logger.Info("introscore server listening",
		"addr", cfg.Server.Addr, "criteria", len(criteria), "oracle", cfg.Oracle.Type)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Router()); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func buildOracle(cfg *config.AppConfig) (domain.SimilarityOracle, error) {
	switch cfg.Oracle.Type {
	case "tfidf", "":
		return oracle.NewPairwiseOracle(func() domain.Embedder { return tfidf.NewEmbedder() }), nil
	case "openai":
		occfg := cfg.Oracle.OpenAI
		if occfg == nil {
			occfg = &config.OpenAIOracleConfig{}
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   occfg.BaseURL,
			APIKeyEnv: occfg.APIKeyEnv,
			Model:     occfg.Model,
			Timeout:   time.Duration(occfg.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return oracle.NewEmbedderOracle(client), nil
	default:
		return nil, fmt.Errorf("unknown oracle type: %s", cfg.Oracle.Type)
	}
}
