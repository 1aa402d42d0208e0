package quiz

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type QuestionRepo interface {
	// UpdateResult records the user's answer and its correctness together; a nil answer
	// clears the stored one.
	UpdateResult(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, answer *string, correct bool) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) UpdateResult(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, answer *string, correct bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Updates(map[string]any{
			"user_answer": answer,
			"is_correct":  correct,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("QuestionRepo.UpdateResult", "question")
	}
	return nil
}
