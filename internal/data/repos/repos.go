package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/data/repos/notes"
	"github.com/yungbote/brainsync-backend/internal/data/repos/quiz"
	"github.com/yungbote/brainsync-backend/internal/data/repos/user"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type NoteRepo = notes.NoteRepo
type NoteUpdate = notes.NoteUpdate
type TagRepo = notes.TagRepo

type QuizRepo = quiz.QuizRepo
type QuestionRepo = quiz.QuestionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return notes.NewNoteRepo(db, baseLog)
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return notes.NewTagRepo(db, baseLog)
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return quiz.NewQuizRepo(db, baseLog)
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return quiz.NewQuestionRepo(db, baseLog)
}
