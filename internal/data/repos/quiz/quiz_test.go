package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/brainsync-backend/internal/data/repos/testutil"
	types "github.com/yungbote/brainsync-backend/internal/domain"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

func TestQuizRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	log := testutil.Logger(t)
	quizzes := NewQuizRepo(db, log)
	questions := NewQuestionRepo(db, log)

	owner := testutil.SeedUser(t, ctx, db, "quiz@example.com")
	other := testutil.SeedUser(t, ctx, db, "quiz-other@example.com")

	created, err := quizzes.Create(ctx, nil, &types.Quiz{
		UserID: owner.ID,
		Title:  "Basics",
		Questions: []types.Question{
			{QuestionText: "first", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{QuestionText: "second", Options: []string{"c", "d"}, CorrectAnswer: "d"},
			{QuestionText: "third", Options: []string{"e", "f"}, CorrectAnswer: "e"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Total != 3 || created.Score != nil {
		t.Fatalf("Create: unexpected quiz %+v", created)
	}

	got, err := quizzes.GetByIDWithQuestions(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByIDWithQuestions: %v", err)
	}
	if len(got.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got.Questions))
	}
	for i, q := range got.Questions {
		if q.Position != i {
			t.Fatalf("questions out of order: %+v", got.Questions)
		}
	}
	if got.Questions[1].Options[1] != "d" {
		t.Fatalf("options did not round-trip: %+v", got.Questions[1].Options)
	}

	answer := "a"
	if err := questions.UpdateResult(ctx, nil, got.Questions[0].ID, &answer, true); err != nil {
		t.Fatalf("UpdateResult: %v", err)
	}
	if err := quizzes.UpdateScore(ctx, nil, created.ID, 1); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}
	got, err = quizzes.GetForUpdate(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if got.Score == nil || *got.Score != 1 {
		t.Fatalf("score not stored: %v", got.Score)
	}
	if q := got.Questions[0]; q.UserAnswer == nil || *q.UserAnswer != "a" || q.IsCorrect == nil || !*q.IsCorrect {
		t.Fatalf("result not stored: %+v", q)
	}

	list, err := quizzes.ListByUser(ctx, nil, owner.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUser: %v %+v", err, list)
	}

	if err := quizzes.DeleteForUser(ctx, nil, other.ID, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("DeleteForUser(foreign): expected not found, got %v", err)
	}
	if err := quizzes.DeleteForUser(ctx, nil, owner.ID, created.ID); err != nil {
		t.Fatalf("DeleteForUser: %v", err)
	}
	var remaining int64
	if err := db.Model(&types.Question{}).Where("quiz_id = ?", created.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected questions deleted, %d remain", remaining)
	}
	if _, err := quizzes.GetByIDWithQuestions(ctx, nil, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByIDWithQuestions(deleted): expected not found, got %v", err)
	}
}
