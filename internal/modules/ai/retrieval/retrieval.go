// Package retrieval ranks one owner's notes against a query embedding.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	ModePGVector = "pgvector"
	ModeScan     = "scan"

	DefaultK = 3
)

// Hit is one ranked note. Distance is cosine distance, 0 meaning identical direction.
type Hit struct {
	NoteID   uuid.UUID `json:"noteId"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Distance float64   `json:"distance"`
}

// Result is ordered by ascending Distance, ties broken by NoteID.
type Result []Hit

// Retriever returns at most k of ownerID's embedded notes closest to query. Notes of other
// owners and notes without an embedding are never considered.
type Retriever interface {
	Retrieve(ctx context.Context, query []float32, ownerID uuid.UUID, k int) (Result, error)
}

func ParseMode(s string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case ModePGVector, ModeScan:
		return m, nil
	default:
		return "", fmt.Errorf("unknown retriever mode %q", s)
	}
}

func effectiveK(k, def int) int {
	if k > 0 {
		return k
	}
	if def > 0 {
		return def
	}
	return DefaultK
}
