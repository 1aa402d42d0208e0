// Package embedding turns text into fixed-dimension vectors through a provider client.
package embedding

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

// Client is the subset of the provider client the adapter needs.
type Client interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// Embedder is what retrieval and the note service depend on.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
}

type Adapter struct {
	client Client
	dim    int
}

func NewAdapter(client Client, dim int) *Adapter {
	return &Adapter{client: client, dim: dim}
}

func (a *Adapter) Dim() int { return a.dim }

// Embed sends text as-is. There is no chunking, truncation or retry; a client error is
// returned with its chain intact.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "embedding.Embed"
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.EmptyInput(op, "text to embed is empty")
	}
	if a.client == nil {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, op, "no embedding client configured")
	}

	vecs, err := a.client.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(vecs) != 1 {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, op,
			fmt.Sprintf("expected 1 embedding, got %d", len(vecs)))
	}
	if len(vecs[0]) != a.dim {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, op,
			fmt.Sprintf("unexpected embedding dimension %d, want %d", len(vecs[0]), a.dim))
	}
	return vecs[0], nil
}
