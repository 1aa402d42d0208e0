package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/aitest"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/generation"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
	quizmod "github.com/yungbote/brainsync-backend/internal/modules/quiz"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
)

type env struct {
	ctx       context.Context
	db        *gorm.DB
	log       *logger.Logger
	users     repos.UserRepo
	notes     repos.NoteRepo
	quizzes   repos.QuizRepo
	embedder  *aitest.Embedder
	primary   *aitest.Provider
	secondary *aitest.Provider
	events    *recorder

	auth      AuthService
	noteSvc   NoteService
	assistant AssistantService
	quizSvc   QuizService
}

// recorder is a bus that keeps every published event.
type recorder struct {
	bus.Bus
	got chan realtime.Event
}

func (r *recorder) Publish(ctx context.Context, ev realtime.Event) error {
	r.got <- ev
	return nil
}

func (r *recorder) emitted() []realtime.EventType {
	var out []realtime.EventType
	for {
		select {
		case ev := <-r.got:
			out = append(out, ev.Type)
		default:
			return out
		}
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		ctx:       context.Background(),
		db:        testutil.DB(t),
		log:       testutil.Logger(t),
		embedder:  aitest.NewEmbedder(types.EmbeddingDim),
		primary:   aitest.Answering("openai", "primary answer"),
		secondary: aitest.Answering("gemini", "secondary answer"),
		events:    &recorder{got: make(chan realtime.Event, 64)},
	}
	e.users = repos.NewUserRepo(e.db, e.log)
	e.notes = repos.NewNoteRepo(e.db, e.log)
	e.quizzes = repos.NewQuizRepo(e.db, e.log)
	e.rebuild()
	return e
}

// rebuild wires the services again, picking up replaced fakes.
func (e *env) rebuild() {
	pub := bus.NewPublisher(e.events, e.log, nil)
	gen := generation.NewDualProvider(e.log, e.primary, e.secondary)
	e.auth = NewAuthService(e.log, e.users, AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost})
	e.noteSvc = NewNoteService(e.log, e.notes, e.embedder, pub, nil)
	e.assistant = NewAssistantService(AssistantDeps{
		Log:       e.log,
		Notes:     e.notes,
		Embedder:  e.embedder,
		Retriever: retrieval.NewScanRetriever(e.notes, retrieval.DefaultK, e.log),
		Generator: gen,
	})
	e.quizSvc = NewQuizService(QuizDeps{
		Log:     e.log,
		Notes:   e.notes,
		Quizzes: e.quizzes,
		Scorer: quizmod.NewScorer(quizmod.ScorerDeps{
			DB:        e.db,
			Log:       e.log,
			Quizzes:   e.quizzes,
			Questions: repos.NewQuestionRepo(e.db, e.log),
		}),
		Generator: gen,
		Events:    pub,
	})
}
