package app

import (
	"fmt"
	"strings"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/embedding"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/platform/openai"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
)

type Clients struct {
	// OpenAI is nil when no key is configured; generation then runs on Gemini alone.
	OpenAI   openai.Client
	Gemini   openai.Client
	Embedder embedding.Embedder
	Bus      bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	gemini, err := openai.NewClient(log, openai.GeminiConfig(
		cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.EmbedModel, cfg.Gemini.Timeout(),
	))
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client (GEMINI_API_KEY): %w", err)
	}

	var primary openai.Client
	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		primary, err = openai.NewClient(log, openai.OpenAIConfig(
			cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout(),
		))
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, generation has no fallback tier")
	}

	// Redis when configured, otherwise events stay in process.
	var eventBus bus.Bus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		eventBus, err = bus.NewRedisBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis event bus: %w", err)
		}
	} else {
		eventBus = bus.NewMemoryBus(log)
	}

	return Clients{
		OpenAI:   primary,
		Gemini:   gemini,
		Embedder: embedding.NewAdapter(gemini, types.EmbeddingDim),
		Bus:      eventBus,
	}, nil
}

func (c Clients) Close() {
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
}
