package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

// PGVectorRetriever ranks inside Postgres with the pgvector cosine operator.
type PGVectorRetriever struct {
	db       *gorm.DB
	defaultK int
	log      *logger.Logger
}

func NewPGVectorRetriever(db *gorm.DB, defaultK int, baseLog *logger.Logger) *PGVectorRetriever {
	return &PGVectorRetriever{db: db, defaultK: defaultK, log: baseLog.With("retriever", ModePGVector)}
}

type pgHitRow struct {
	ID       uuid.UUID
	Title    string
	Content  string
	Distance float64
}

func (r *PGVectorRetriever) Retrieve(ctx context.Context, query []float32, ownerID uuid.UUID, k int) (Result, error) {
	k = effectiveK(k, r.defaultK)
	var rows []pgHitRow
	err := r.db.WithContext(ctx).
		Model(&types.Note{}).
		Select("id, title, content, embedding <=> ? AS distance", pgvector.NewVector(query)).
		Where("user_id = ? AND embedding IS NOT NULL", ownerID).
		Order("distance ASC").
		Order("id ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("retrieval (pgvector): %w", err)
	}
	out := make(Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, Hit{NoteID: row.ID, Title: row.Title, Content: row.Content, Distance: row.Distance})
	}
	r.log.Debug("retrieved notes", "owner_id", ownerID, "k", k, "hits", len(out))
	return out, nil
}
