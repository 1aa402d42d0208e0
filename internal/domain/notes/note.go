package notes

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/yungbote/brainsync-backend/internal/domain/user"
)

// EmbeddingDim is the dimensionality of every stored note embedding (Gemini
// text-embedding-004). The column type below must agree with it.
const EmbeddingDim = 768

type Note struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title     string     `gorm:"not null;column:title" json:"title"`
	Content   string     `gorm:"type:text;not null;column:content" json:"content"`
	AISummary *string    `gorm:"type:text;column:ai_summary" json:"aiSummary"`
	IsPinned  bool       `gorm:"not null;default:false;column:is_pinned" json:"isPinned"`
	Tags      []Tag      `gorm:"many2many:note_tag;" json:"tags"`

	// Embedding is derived from Title and Content; NULL until the embedder succeeds.
	Embedding *pgvector.Vector `gorm:"type:vector(768);column:embedding" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Note) TableName() string { return "note" }

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
