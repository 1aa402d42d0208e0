package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/embedding"
	"github.com/yungbote/brainsync-backend/internal/observability"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/platform/textutil"
	"github.com/yungbote/brainsync-backend/internal/realtime"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
)

const (
	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type CreateNoteInput struct {
	Title    string
	Content  string
	IsPinned bool
	Tags     []string
}

// UpdateNoteInput leaves nil fields untouched. Tags replace the current set when SetTags is true.
type UpdateNoteInput struct {
	Title    *string
	Content  *string
	IsPinned *bool
	Tags     []string
	SetTags  bool
}

type NotePage struct {
	Notes []*types.Note
	Total int64
	Page  int
	Limit int
}

type ReindexReport struct {
	Scanned  int
	Embedded int
	Failed   int
}

type NoteService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateNoteInput) (*types.Note, error)
	// List returns a page of ownerID's notes newest first. page and limit of zero take the defaults.
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*NotePage, error)
	Get(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error)
	Update(ctx context.Context, ownerID, noteID uuid.UUID, in UpdateNoteInput) (*types.Note, error)
	Delete(ctx context.Context, ownerID, noteID uuid.UUID) error
	// Reindex embeds up to limit notes that have no embedding yet.
	Reindex(ctx context.Context, limit, concurrency int) (ReindexReport, error)
}

type noteService struct {
	log      *logger.Logger
	notes    repos.NoteRepo
	embedder embedding.Embedder
	events   *bus.Publisher
	metrics  *observability.Metrics
}

func NewNoteService(log *logger.Logger, notes repos.NoteRepo, embedder embedding.Embedder, events *bus.Publisher, metrics *observability.Metrics) NoteService {
	return &noteService{
		log:      log.With("service", "NoteService"),
		notes:    notes,
		embedder: embedder,
		events:   events,
		metrics:  metrics,
	}
}

func (s *noteService) Create(ctx context.Context, ownerID uuid.UUID, in CreateNoteInput) (*types.Note, error) {
	const op = "notes.Create"
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "content is required")
	}

	note, err := s.notes.Create(ctx, nil, &types.Note{
		UserID:   ownerID,
		Title:    title,
		Content:  in.Content,
		IsPinned: in.IsPinned,
	}, in.Tags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.embed(ctx, note)

	s.events.Emit(ctx, realtime.NewEvent(realtime.EventNoteCreated, ownerID, note.ID, map[string]any{"title": note.Title}))
	return note, nil
}

func (s *noteService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*NotePage, error) {
	const op = "notes.List"
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, "page must be at least 1")
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, apperrors.New(apperrors.KindInvalidArgument, op, fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit))
	}

	out := &NotePage{Page: page, Limit: limit}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.notes.ListByUser(gctx, nil, ownerID, page, limit)
		if err != nil {
			return err
		}
		out.Notes = rows
		return nil
	})
	g.Go(func() error {
		total, err := s.notes.CountByUser(gctx, nil, ownerID)
		if err != nil {
			return err
		}
		out.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *noteService) Get(ctx context.Context, ownerID, noteID uuid.UUID) (*types.Note, error) {
	return s.notes.GetByIDForUser(ctx, nil, ownerID, noteID)
}

func (s *noteService) Update(ctx context.Context, ownerID, noteID uuid.UUID, in UpdateNoteInput) (*types.Note, error) {
	const op = "notes.Update"
	upd := repos.NoteUpdate{IsPinned: in.IsPinned, Tags: in.Tags, SetTags: in.SetTags}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.New(apperrors.KindInvalidArgument, op, "title cannot be empty")
		}
		upd.Title = &title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, apperrors.New(apperrors.KindInvalidArgument, op, "content cannot be empty")
		}
		upd.Content = in.Content
	}

	note, err := s.notes.Update(ctx, nil, ownerID, noteID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Title != nil || upd.Content != nil {
		// A stale vector is worse than none: retrieval skips NULL embeddings.
		if !s.embed(ctx, note) {
			if err := s.notes.ClearEmbedding(ctx, nil, note.ID); err != nil {
				s.log.Warn("clear stale embedding failed", "note_id", note.ID, "error", err)
			}
		}
	}

	s.events.Emit(ctx, realtime.NewEvent(realtime.EventNoteUpdated, ownerID, note.ID, nil))
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	if err := s.notes.DeleteForUser(ctx, nil, ownerID, noteID); err != nil {
		return fmt.Errorf("notes.Delete: %w", err)
	}
	s.events.Emit(ctx, realtime.NewEvent(realtime.EventNoteDeleted, ownerID, noteID, nil))
	return nil
}

func (s *noteService) Reindex(ctx context.Context, limit, concurrency int) (ReindexReport, error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	pending, err := s.notes.ListMissingEmbedding(ctx, nil, limit)
	if err != nil {
		return ReindexReport{}, fmt.Errorf("notes.Reindex: %w", err)
	}

	var embedded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, note := range pending {
		note := note
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if s.embed(gctx, note) {
				embedded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReindexReport{}, err
	}
	report := ReindexReport{Scanned: len(pending), Embedded: int(embedded.Load()), Failed: int(failed.Load())}
	s.log.Info("reindex finished", "scanned", report.Scanned, "embedded", report.Embedded, "failed", report.Failed)
	return report, nil
}

// embed computes and stores the note's embedding. Failures are logged, never returned.
func (s *noteService) embed(ctx context.Context, note *types.Note) bool {
	if s.embedder == nil {
		return false
	}
	vec, err := s.embedder.Embed(ctx, textutil.EmbeddingInput(note.Title, note.Content))
	if err != nil {
		s.metrics.IncEmbedding("error")
		s.log.Warn("embed note failed, saved without embedding", "note_id", note.ID, "error", err)
		return false
	}
	if err := s.notes.UpdateEmbedding(ctx, nil, note.ID, vec); err != nil {
		s.metrics.IncEmbedding("error")
		s.log.Warn("store note embedding failed", "note_id", note.ID, "error", err)
		return false
	}
	s.metrics.IncEmbedding("ok")
	return true
}
