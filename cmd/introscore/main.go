package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"introscore/internal/config"
	"introscore/internal/domain"
	"introscore/internal/embedding/openai"
	"introscore/internal/embedding/tfidf"
	"introscore/internal/oracle"
	"introscore/internal/rubric"
	"introscore/internal/scoring"
	"introscore/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, rubricPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/introscore/config.yaml if not provided)")
	flag.StringVar(&rubricPath, "rubric", "", "Path to rubric file (overrides config)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if rubricPath != "" {
		cfg.Rubric.Path = rubricPath
	}

	criteria, err := rubric.Load(cfg.Rubric.Path)
	if err != nil {
		log.Fatalf("failed to load rubric: %v", err)
	}

	orc, err := buildOracle(cfg)
	if err != nil {
		log.Fatalf("oracle init failed: %v", err)
	}
	if err := oracle.Probe(context.Background(), orc); err != nil {
		log.Fatalf("oracle not ready: %v", err)
	}

	engine := scoring.NewEngine(criteria, orc)
	if _, err := tea.NewProgram(tui.New(engine)).Run(); err != nil {
		log.Fatal(err)
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
