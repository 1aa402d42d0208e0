// Package quiz scores submitted quiz answers.
package quiz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type ScorerDeps struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Quizzes   repos.QuizRepo
	Questions repos.QuestionRepo
}

type Scorer struct {
	db        *gorm.DB
	log       *logger.Logger
	quizzes   repos.QuizRepo
	questions repos.QuestionRepo
}

func NewScorer(deps ScorerDeps) *Scorer {
	return &Scorer{
		db:        deps.DB,
		log:       deps.Log.With("service", "QuizScorer"),
		quizzes:   deps.Quizzes,
		questions: deps.Questions,
	}
}

// Score grades answers (question ID -> chosen option) against ownerID's quiz and returns the
// quiz as stored afterwards. A quiz owned by someone else is reported as not found.
// Questions without an answer are stored as unanswered and incorrect. Everything happens in
// one transaction, so a resubmission fully replaces the previous result.
func (s *Scorer) Score(ctx context.Context, quizID, ownerID uuid.UUID, answers map[string]string) (*types.Quiz, error) {
	const op = "quiz.Score"
	byID := normalizeAnswers(answers)

	var out *types.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := s.quizzes.GetForUpdate(ctx, tx, quizID)
		if err != nil {
			return err
		}
		if q.UserID != ownerID {
			return apperrors.NotFound(op, "quiz")
		}

		score := 0
		for _, question := range q.Questions {
			answer, answered := byID[question.ID]
			correct := answered && answer == strings.TrimSpace(question.CorrectAnswer)
			var stored *string
			if answered {
				stored = &answer
			}
			if err := s.questions.UpdateResult(ctx, tx, question.ID, stored, correct); err != nil {
				return err
			}
			if correct {
				score++
			}
		}
		if err := s.quizzes.UpdateScore(ctx, tx, q.ID, score); err != nil {
			return err
		}

		out, err = s.quizzes.GetByIDWithQuestions(ctx, tx, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("quiz scored", "quiz_id", quizID, "owner_id", ownerID, "score", *out.Score, "total", out.Total)
	return out, nil
}

// normalizeAnswers keys answers by parsed question ID and trims them. Unparseable keys and
// blank answers are dropped, so those questions count as unanswered.
func normalizeAnswers(answers map[string]string) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(answers))
	for k, v := range answers {
		id, err := uuid.Parse(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		out[id] = v
	}
	return out
}
