package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/data/repos"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type Repos struct {
	User     repos.UserRepo
	Note     repos.NoteRepo
	Quiz     repos.QuizRepo
	Question repos.QuestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Note:     repos.NewNoteRepo(db, log),
		Quiz:     repos.NewQuizRepo(db, log),
		Question: repos.NewQuestionRepo(db, log),
	}
}
