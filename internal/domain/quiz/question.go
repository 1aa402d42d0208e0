package quiz

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question.IsCorrect is only ever written together with UserAnswer.
type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID                   `gorm:"type:uuid;not null;index" json:"quizId"`
	Position      int                         `gorm:"not null;column:position" json:"position"`
	QuestionText  string                      `gorm:"type:text;not null;column:question_text" json:"questionText"`
	Options       datatypes.JSONSlice[string] `gorm:"column:options" json:"options"`
	CorrectAnswer string                      `gorm:"not null;column:correct_answer" json:"correctAnswer"`
	UserAnswer    *string                     `gorm:"column:user_answer" json:"userAnswer"`
	IsCorrect     *bool                       `gorm:"column:is_correct" json:"isCorrect"`
}

func (Question) TableName() string { return "question" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
