package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/modules/ai/generation"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
	quizmod "github.com/yungbote/brainsync-backend/internal/modules/quiz"
	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Notes     services.NoteService
	Assistant services.AssistantService
	Quiz      services.QuizService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, metrics *observability.Metrics, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	var gen *generation.Orchestrator
	if clients.OpenAI != nil {
		gen = generation.NewDualProvider(log, clients.OpenAI, clients.Gemini)
	} else {
		gen = generation.New(log, generation.Attempt{Provider: clients.Gemini, Framing: generation.AsIs})
	}
	gen = gen.WithMetrics(metrics)

	var retriever retrieval.Retriever
	switch mode := cfg.Retriever(); mode {
	case retrieval.ModePGVector:
		retriever = retrieval.NewPGVectorRetriever(db, cfg.RetrievalTopK, log)
	case retrieval.ModeScan:
		retriever = retrieval.NewScanRetriever(reposet.Note, cfg.RetrievalTopK, log)
	default:
		return Services{}, fmt.Errorf("unknown retriever mode %q", mode)
	}

	events := bus.NewPublisher(clients.Bus, log, metrics)

	return Services{
		Auth: services.NewAuthService(log, reposet.User, services.AuthConfig{
			JWTSecret:  cfg.JWTSecret,
			AccessTTL:  cfg.AccessTTL(),
			BcryptCost: cfg.BcryptCost,
		}),
		Notes: services.NewNoteService(log, reposet.Note, clients.Embedder, events, metrics),
		Assistant: services.NewAssistantService(services.AssistantDeps{
			Log:       log,
			Notes:     reposet.Note,
			Embedder:  clients.Embedder,
			Retriever: retriever,
			Generator: gen,
			TopK:      cfg.RetrievalTopK,
		}),
		Quiz: services.NewQuizService(services.QuizDeps{
			Log:     log,
			Notes:   reposet.Note,
			Quizzes: reposet.Quiz,
			Scorer: quizmod.NewScorer(quizmod.ScorerDeps{
				DB:        db,
				Log:       log,
				Quizzes:   reposet.Quiz,
				Questions: reposet.Question,
			}),
			Generator: gen,
			Events:    events,
		}),
	}, nil
}
