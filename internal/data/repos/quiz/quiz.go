package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type QuizRepo interface {
	// Create inserts the quiz together with its questions.
	Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error)
	// GetForUpdate loads the quiz with a row lock where the driver supports one.
	GetForUpdate(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Quiz, error)
	UpdateScore(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, score int) error
	DeleteForUser(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if quiz == nil {
		return nil, apperrors.New(apperrors.KindInvalidArgument, "QuizRepo.Create", "quiz required")
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Position = i
	}
	quiz.Total = len(quiz.Questions)
	if err := transaction.WithContext(ctx).Create(quiz).Error; err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *quizRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.load(ctx, transaction, quizID, "QuizRepo.GetByIDWithQuestions")
}

func (r *quizRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if transaction.Dialector != nil && transaction.Dialector.Name() == "postgres" {
		transaction = transaction.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.load(ctx, transaction, quizID, "QuizRepo.GetForUpdate")
}

func (r *quizRepo) load(ctx context.Context, transaction *gorm.DB, quizID uuid.UUID, op string) (*types.Quiz, error) {
	var q types.Quiz
	err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", quizID).
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(op, "quiz")
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Quiz
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *quizRepo) UpdateScore(ctx context.Context, tx *gorm.DB, quizID uuid.UUID, score int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Quiz{}).
		Where("id = ?", quizID).
		Update("score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("QuizRepo.UpdateScore", "quiz")
	}
	return nil
}

// DeleteForUser removes the quiz and its questions; questions are deleted explicitly so the
// result does not depend on the driver enforcing foreign keys.
func (r *quizRepo) DeleteForUser(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		var q types.Quiz
		if err := txx.Where("id = ? AND user_id = ?", quizID, userID).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("QuizRepo.DeleteForUser", "quiz")
			}
			return err
		}
		if err := txx.Where("quiz_id = ?", q.ID).Delete(&types.Question{}).Error; err != nil {
			return err
		}
		return txx.Delete(&types.Quiz{}, "id = ?", q.ID).Error
	})
}
