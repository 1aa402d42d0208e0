// Package domain re-exports the persisted entities so callers can import a single package
// (conventionally as types).
package domain

import (
	"github.com/yungbote/brainsync-backend/internal/domain/notes"
	"github.com/yungbote/brainsync-backend/internal/domain/quiz"
	"github.com/yungbote/brainsync-backend/internal/domain/user"
)

const EmbeddingDim = notes.EmbeddingDim

type (
	User     = user.User
	Note     = notes.Note
	Tag      = notes.Tag
	Quiz     = quiz.Quiz
	Question = quiz.Question
)

// Models lists every entity in migration order.
func Models() []any {
	return []any{
		&User{},
		&Tag{},
		&Note{},
		&Quiz{},
		&Question{},
	}
}
