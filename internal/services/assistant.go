package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/embedding"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/generation"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/prompts"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type Answer struct {
	Text     string
	Provider string
	Sources  retrieval.Result
}

// AssistantService answers questions grounded in the caller's notes and writes note summaries.
type AssistantService interface {
	Ask(ctx context.Context, ownerID uuid.UUID, question string) (*Answer, error)
	Summarize(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error)
}

type AssistantDeps struct {
	Log       *logger.Logger
	Notes     repos.NoteRepo
	Embedder  embedding.Embedder
	Retriever retrieval.Retriever
	Generator *generation.Orchestrator
	TopK      int
}

type assistantService struct {
	log       *logger.Logger
	notes     repos.NoteRepo
	embedder  embedding.Embedder
	retriever retrieval.Retriever
	gen       *generation.Orchestrator
	topK      int
}

func NewAssistantService(deps AssistantDeps) AssistantService {
	return &assistantService{
		log:       deps.Log.With("service", "AssistantService"),
		notes:     deps.Notes,
		embedder:  deps.Embedder,
		retriever: deps.Retriever,
		gen:       deps.Generator,
		topK:      deps.TopK,
	}
}

func (s *assistantService) Ask(ctx context.Context, ownerID uuid.UUID, question string) (*Answer, error) {
	const op = "assistant.Ask"
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.EmptyInput(op, "question is required")
	}

	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%s: embed question: %w", op, err)
	}
	hits, err := s.retriever.Retrieve(ctx, vec, ownerID, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%s: retrieve: %w", op, err)
	}
	if len(hits) == 0 {
		s.log.Debug("no notes to ground on", "owner_id", ownerID)
		return &Answer{Text: prompts.NoRelevantNotesAnswer}, nil
	}

	resp, err := s.gen.GenerateText(ctx, prompts.QA(question, hits))
	if err != nil {
		return nil, err
	}
	return &Answer{Text: resp.Text, Provider: resp.Provider, Sources: hits}, nil
}

func (s *assistantService) Summarize(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error) {
	const op = "assistant.Summarize"
	note, err := s.notes.GetByIDForUser(ctx, nil, ownerID, noteID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(note.Content) == "" {
		return nil, apperrors.EmptyInput(op, "note has no content to summarize")
	}

	resp, err := s.gen.GenerateText(ctx, prompts.Summary(note.Title, note.Content))
	if err != nil {
		return nil, err
	}
	if err := s.notes.UpdateSummary(ctx, nil, note.ID, resp.Text); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	note.AISummary = &resp.Text
	s.log.Info("note summarized", "note_id", note.ID, "provider", resp.Provider)
	return note, nil
}
