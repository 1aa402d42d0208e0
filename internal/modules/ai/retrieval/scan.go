package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

// NoteSource lists an owner's notes that have an embedding.
type NoteSource interface {
	ListEmbeddedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Note, error)
}

// ScanRetriever loads the owner's embedded notes and ranks them in process. It is used
// where the database has no vector operator (SQLite).
type ScanRetriever struct {
	notes    NoteSource
	defaultK int
	log      *logger.Logger
}

func NewScanRetriever(notes NoteSource, defaultK int, baseLog *logger.Logger) *ScanRetriever {
	return &ScanRetriever{notes: notes, defaultK: defaultK, log: baseLog.With("retriever", ModeScan)}
}

func (r *ScanRetriever) Retrieve(ctx context.Context, query []float32, ownerID uuid.UUID, k int) (Result, error) {
	k = effectiveK(k, r.defaultK)
	notes, err := r.notes.ListEmbeddedByUser(ctx, nil, ownerID)
	if err != nil {
		return nil, fmt.Errorf("retrieval (scan): %w", err)
	}

	out := make(Result, 0, len(notes))
	skipped := 0
	for _, n := range notes {
		// The source already filters by owner; the check keeps a faulty source from leaking.
		if n == nil || n.UserID != ownerID || n.Embedding == nil {
			continue
		}
		vec := n.Embedding.Slice()
		if len(vec) != len(query) {
			skipped++
			continue
		}
		out = append(out, Hit{
			NoteID:   n.ID,
			Title:    n.Title,
			Content:  n.Content,
			Distance: CosineDistance(query, vec),
		})
	}
	if skipped > 0 {
		r.log.Warn("skipped notes with mismatched embedding dimension", "owner_id", ownerID, "count", skipped)
	}

	Rank(out)
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// Rank sorts hits by ascending distance, then note ID.
func Rank(hits Result) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].NoteID.String() < hits[j].NoteID.String()
	})
}

// CosineDistance is 1 - cos(a, b). A zero vector is treated as orthogonal to everything.
func CosineDistance(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
