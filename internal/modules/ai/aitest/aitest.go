// Package aitest provides scripted providers and a deterministic embedder for tests of the
// AI modules and the services built on them.
package aitest

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

// Reply is one scripted provider outcome.
type Reply struct {
	Text string
	Err  error
}

// Call records one Complete invocation.
type Call struct {
	Prompt     string
	Structured bool
}

// Provider replays Replies in order; once exhausted it repeats the last one.
type Provider struct {
	ProviderName string
	Replies      []Reply

	mu    sync.Mutex
	calls []Call
}

func NewProvider(name string, replies ...Reply) *Provider {
	return &Provider{ProviderName: name, Replies: replies}
}

// Failing returns a provider whose every call fails with a provider_unavailable error.
func Failing(name, reason string) *Provider {
	return NewProvider(name, Reply{Err: apperrors.New(apperrors.KindProviderUnavailable, name+".Complete", reason)})
}

// Answering returns a provider that always answers text.
func Answering(name, text string) *Provider {
	return NewProvider(name, Reply{Text: text})
}

func (p *Provider) Name() string { return p.ProviderName }

func (p *Provider) Complete(ctx context.Context, prompt string, structured bool) (string, error) {
	p.mu.Lock()
	idx := len(p.calls)
	p.calls = append(p.calls, Call{Prompt: prompt, Structured: structured})
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.Replies) == 0 {
		return "", errors.New("aitest: no scripted reply")
	}
	if idx >= len(p.Replies) {
		idx = len(p.Replies) - 1
	}
	r := p.Replies[idx]
	return r.Text, r.Err
}

func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// Embedder maps text to a unit vector derived from its words, so texts sharing words are
// close under cosine distance. Vectors placed in Fixed override the derived ones.
type Embedder struct {
	Dimension int
	Fixed     map[string][]float32
	Err       error

	mu    sync.Mutex
	calls []string
}

func NewEmbedder(dim int) *Embedder {
	return &Embedder{Dimension: dim, Fixed: map[string][]float32{}}
}

func (e *Embedder) Dim() int { return e.Dimension }

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls = append(e.calls, text)
	e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.EmptyInput("aitest.Embed", "text to embed is empty")
	}
	if v, ok := e.Fixed[text]; ok {
		return append([]float32(nil), v...), nil
	}
	return WordVector(text, e.Dimension), nil
}

func (e *Embedder) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// WordVector hashes each lower-cased word into one of dim buckets and normalizes.
func WordVector(text string, dim int) []float32 {
	v := make([]float32, dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if w == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		v[int(h.Sum32()%uint32(dim))]++
	}
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v
	}
	n := float32(math.Sqrt(norm))
	for i := range v {
		v[i] /= n
	}
	return v
}

// BatchClient adapts a func to the embedding.Client interface.
type BatchClient func(ctx context.Context, inputs []string) ([][]float32, error)

func (f BatchClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	return f(ctx, inputs)
}
