package notes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

// NoteUpdate carries the mutable fields of a note; nil pointers are left untouched.
type NoteUpdate struct {
	Title    *string
	Content  *string
	IsPinned *bool
	Tags     []string
	SetTags  bool
}

type NoteRepo interface {
	// Create inserts the note and links it to the named tags, creating missing tags.
	Create(ctx context.Context, tx *gorm.DB, note *types.Note, tagNames []string) (*types.Note, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID) (*types.Note, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, limit int) ([]*types.Note, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, n int) ([]*types.Note, error)
	ListEmbeddedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Note, error)
	ListMissingEmbedding(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Note, error)
	Update(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID, upd NoteUpdate) (*types.Note, error)
	UpdateSummary(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, summary string) error
	UpdateEmbedding(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, vec []float32) error
	ClearEmbedding(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error
	DeleteForUser(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID) error
}

type noteRepo struct {
	db   *gorm.DB
	tags TagRepo
	log  *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{
		db:   db,
		tags: NewTagRepo(db, baseLog),
		log:  baseLog.With("repo", "NoteRepo"),
	}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.Note, tagNames []string) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if note == nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "NoteRepo.Create", "note required")
	}
	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		tags, err := r.tags.UpsertByNames(ctx, txx, tagNames)
		if err != nil {
			return err
		}
		note.Tags = tags
		return txx.Create(note).Error
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n types.Note
	err := transaction.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND user_id = ?", noteID, userID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("NoteRepo.GetByIDForUser", "note")
		}
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, page, limit int) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var out []*types.Note
	err := transaction.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, n int) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if n <= 0 {
		return []*types.Note{}, nil
	}
	var out []*types.Note
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Limit(n).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) ListEmbeddedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Note
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND embedding IS NOT NULL", userID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) ListMissingEmbedding(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).
		Where("embedding IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.Note
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) Update(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID, upd NoteUpdate) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out *types.Note
	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		existing, err := r.GetByIDForUser(ctx, txx, userID, noteID)
		if err != nil {
			return err
		}
		updates := map[string]any{}
		if upd.Title != nil {
			updates["title"] = *upd.Title
		}
		if upd.Content != nil {
			updates["content"] = *upd.Content
		}
		if upd.IsPinned != nil {
			updates["is_pinned"] = *upd.IsPinned
		}
		if len(updates) > 0 {
			if err := txx.Model(&types.Note{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if upd.SetTags {
			tags, err := r.tags.UpsertByNames(ctx, txx, upd.Tags)
			if err != nil {
				return err
			}
			if err := txx.Model(existing).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		out, err = r.GetByIDForUser(ctx, txx, userID, noteID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) UpdateSummary(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, summary string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", noteID).
		UpdateColumn("ai_summary", summary)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("NoteRepo.UpdateSummary", "note")
	}
	return nil
}

func (r *noteRepo) UpdateEmbedding(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, vec []float32) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	v := pgvector.NewVector(vec)
	return transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", noteID).
		UpdateColumn("embedding", &v).Error
}

func (r *noteRepo) ClearEmbedding(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Note{}).
		Where("id = ?", noteID).
		UpdateColumn("embedding", gorm.Expr("NULL")).Error
}

func (r *noteRepo) DeleteForUser(ctx context.Context, tx *gorm.DB, userID, noteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		existing, err := r.GetByIDForUser(ctx, txx, userID, noteID)
		if err != nil {
			return err
		}
		if err := txx.Model(existing).Association("Tags").Clear(); err != nil {
			return err
		}
		return txx.Delete(&types.Note{}, "id = ?", existing.ID).Error
	})
}
