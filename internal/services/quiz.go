package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/generation"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/prompts"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/structured"
	quizmod "github.com/yungbote/brainsync-backend/internal/modules/quiz"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/realtime"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
)

// latestNotesForQuiz is how many recent notes feed a quiz when no note is named.
const latestNotesForQuiz = 3

type QuizService interface {
	// Generate builds a quiz from noteID, or from the latest notes when noteID is nil.
	Generate(ctx context.Context, ownerID uuid.UUID, noteID *uuid.UUID) (*types.Quiz, error)
	Submit(ctx context.Context, ownerID, quizID uuid.UUID, answers map[string]string) (*types.Quiz, error)
	// Chat explains a quiz's results in answer to a follow-up question.
	Chat(ctx context.Context, ownerID, quizID uuid.UUID, question string) (*Answer, error)
	Get(ctx context.Context, ownerID, quizID uuid.UUID) (*types.Quiz, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*types.Quiz, error)
	Delete(ctx context.Context, ownerID, quizID uuid.UUID) error
}

type QuizDeps struct {
	Log       *logger.Logger
	Notes     repos.NoteRepo
	Quizzes   repos.QuizRepo
	Scorer    *quizmod.Scorer
	Generator *generation.Orchestrator
	Events    *bus.Publisher
}

type quizService struct {
	log     *logger.Logger
	notes   repos.NoteRepo
	quizzes repos.QuizRepo
	scorer  *quizmod.Scorer
	gen     *generation.Orchestrator
	events  *bus.Publisher
}

func NewQuizService(deps QuizDeps) QuizService {
	return &quizService{
		log:     deps.Log.With("service", "QuizService"),
		notes:   deps.Notes,
		quizzes: deps.Quizzes,
		scorer:  deps.Scorer,
		gen:     deps.Generator,
		events:  deps.Events,
	}
}

func (s *quizService) Generate(ctx context.Context, ownerID uuid.UUID, noteID *uuid.UUID) (*types.Quiz, error) {
	const op = "quiz.Generate"
	content, err := s.sourceContent(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.EmptyInput(op, "no note content available to build a quiz")
	}

	payload, resp, err := generation.GenerateStructured(ctx, s.gen, prompts.Quiz(content), structured.ParseQuizPayload)
	if err != nil {
		return nil, err
	}

	q := &types.Quiz{UserID: ownerID, Title: payload.Title}
	for _, pq := range payload.Questions {
		q.Questions = append(q.Questions, types.Question{
			QuestionText:  pq.QuestionText,
			Options:       pq.Options,
			CorrectAnswer: pq.CorrectAnswer,
		})
	}
	created, err := s.quizzes.Create(ctx, nil, q)
	if err != nil {
		return nil, fmt.Errorf("%s: persist: %w", op, err)
	}
	s.log.Info("quiz generated", "quiz_id", created.ID, "questions", created.Total, "provider", resp.Provider)
	s.events.Emit(ctx, realtime.NewEvent(realtime.EventQuizCreated, ownerID, created.ID, map[string]any{"total": created.Total}))
	return created, nil
}

func (s *quizService) sourceContent(ctx context.Context, ownerID uuid.UUID, noteID *uuid.UUID) (string, error) {
	if noteID != nil {
		note, err := s.notes.GetByIDForUser(ctx, nil, ownerID, *noteID)
		if err != nil {
			return "", err
		}
		return note.Content, nil
	}
	latest, err := s.notes.LatestByUser(ctx, nil, ownerID, latestNotesForQuiz)
	if err != nil {
		return "", fmt.Errorf("quiz.Generate: load notes: %w", err)
	}
	parts := make([]string, 0, len(latest))
	for _, n := range latest {
		parts = append(parts, n.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (s *quizService) Submit(ctx context.Context, ownerID, quizID uuid.UUID, answers map[string]string) (*types.Quiz, error) {
	q, err := s.scorer.Score(ctx, quizID, ownerID, answers)
	if err != nil {
		return nil, err
	}
	data := map[string]any{"total": q.Total}
	if q.Score != nil {
		data["score"] = *q.Score
	}
	s.events.Emit(ctx, realtime.NewEvent(realtime.EventQuizSubmitted, ownerID, q.ID, data))
	return q, nil
}

func (s *quizService) Chat(ctx context.Context, ownerID, quizID uuid.UUID, question string) (*Answer, error) {
	const op = "quiz.Chat"
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.EmptyInput(op, "question is required")
	}
	q, err := s.Get(ctx, ownerID, quizID)
	if err != nil {
		return nil, err
	}
	resp, err := s.gen.GenerateText(ctx, prompts.QuizChat(q, question))
	if err != nil {
		return nil, err
	}
	return &Answer{Text: resp.Text, Provider: resp.Provider}, nil
}

func (s *quizService) Get(ctx context.Context, ownerID, quizID uuid.UUID) (*types.Quiz, error) {
	q, err := s.quizzes.GetByIDWithQuestions(ctx, nil, quizID)
	if err != nil {
		return nil, err
	}
	if q.UserID != ownerID {
		return nil, apperrors.NotFound("quiz.Get", "quiz")
	}
	return q, nil
}

func (s *quizService) List(ctx context.Context, ownerID uuid.UUID) ([]*types.Quiz, error) {
	return s.quizzes.ListByUser(ctx, nil, ownerID)
}

func (s *quizService) Delete(ctx context.Context, ownerID, quizID uuid.UUID) error {
	return s.quizzes.DeleteForUser(ctx, nil, ownerID, quizID)
}
