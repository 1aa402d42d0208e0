// Package generation runs a prompt through an ordered list of provider attempts and returns
// the first acceptable answer.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/brainsync-backend/internal/modules/ai/prompts"
	"github.com/yungbote/brainsync-backend/internal/observability"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

// Provider is one LLM backend. Complete must honor ctx cancellation.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, structured bool) (string, error)
}

type Framing int

const (
	// AsIs sends the prompt unchanged.
	AsIs Framing = iota
	// Strict appends the strict output instruction for the call's mode.
	Strict
)

type Attempt struct {
	Provider Provider
	Framing  Framing
}

type Response struct {
	Text     string
	Provider string
}

const (
	modeText       = "text"
	modeStructured = "structured"
)

type Orchestrator struct {
	attempts []Attempt
	log      *logger.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

func New(log *logger.Logger, attempts ...Attempt) *Orchestrator {
	return &Orchestrator{
		attempts: attempts,
		log:      log.With("service", "GenerationOrchestrator"),
		tracer:   observability.Tracer(),
	}
}

// NewDualProvider is the default plan: primary as-is, then secondary with strict framing.
func NewDualProvider(log *logger.Logger, primary, secondary Provider) *Orchestrator {
	return New(log,
		Attempt{Provider: primary, Framing: AsIs},
		Attempt{Provider: secondary, Framing: Strict},
	)
}

func (o *Orchestrator) WithMetrics(m *observability.Metrics) *Orchestrator {
	o.metrics = m
	return o
}

func (o *Orchestrator) Providers() []string {
	out := make([]string, 0, len(o.attempts))
	for _, a := range o.attempts {
		out = append(out, providerName(a.Provider))
	}
	return out
}

func (o *Orchestrator) GenerateText(ctx context.Context, prompt string) (Response, error) {
	_, resp, err := run(ctx, o, modeText, prompt, func(s string) (string, error) {
		return strings.TrimSpace(s), nil
	})
	if err != nil {
		return Response{}, err
	}
	resp.Text = strings.TrimSpace(resp.Text)
	return resp, nil
}

// GenerateStructured asks for JSON and accepts the first attempt whose output parse accepts.
// A parse error moves on to the next attempt like a provider error does.
func GenerateStructured[T any](ctx context.Context, o *Orchestrator, prompt string, parse func(string) (T, error)) (T, Response, error) {
	return run(ctx, o, modeStructured, prompt, parse)
}

func run[T any](ctx context.Context, o *Orchestrator, mode, prompt string, parse func(string) (T, error)) (T, Response, error) {
	var zero T
	structured := mode == modeStructured

	ctx, span := o.tracer.Start(ctx, "generation."+mode)
	defer span.End()

	failures := make([]AttemptError, 0, len(o.attempts))
	for i, a := range o.attempts {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
			return zero, Response{}, fmt.Errorf("generation: %w", err)
		}
		name := providerName(a.Provider)
		tier := i + 1

		text := prompt
		if a.Framing == Strict {
			text = prompts.Frame(prompt, structured)
		}

		start := time.Now()
		val, raw, err := attempt(ctx, a.Provider, name, text, structured, parse)
		dur := time.Since(start)
		if err == nil {
			o.metrics.IncGenerationAttempt(mode, tier, name, "ok")
			o.metrics.IncGeneration(mode, "ok")
			o.metrics.ObserveLLMRequest(name, "ok", dur, 0, 0)
			span.SetAttributes(
				attribute.String("generation.provider", name),
				attribute.Int("generation.tier", tier),
			)
			if tier > 1 {
				o.log.Info("generation served by fallback", "provider", name, "tier", tier, "mode", mode)
			}
			return val, Response{Text: raw, Provider: name}, nil
		}

		reason := string(apperrors.KindOf(err))
		if reason == "" {
			reason = "error"
		}
		o.metrics.IncGenerationAttempt(mode, tier, name, reason)
		o.metrics.ObserveLLMRequest(name, reason, dur, 0, 0)
		o.log.Warn("generation attempt failed",
			"provider", name,
			"tier", tier,
			"mode", mode,
			"reason", reason,
			"error", err,
			"duration", dur,
		)
		span.AddEvent("attempt_failed", trace.WithAttributes(
			attribute.String("generation.provider", name),
			attribute.Int("generation.tier", tier),
			attribute.String("generation.reason", reason),
		))
		failures = append(failures, AttemptError{Provider: name, Tier: tier, Err: err})
	}

	uerr := &UnavailableError{Mode: mode, Attempts: failures}
	o.metrics.IncGeneration(mode, "unavailable")
	o.log.Error("generation unavailable", "mode", mode, "providers", strings.Join(uerr.Providers(), ","))
	span.RecordError(uerr)
	span.SetStatus(codes.Error, "generation unavailable")
	return zero, Response{}, uerr
}

func attempt[T any](ctx context.Context, p Provider, name, prompt string, structured bool, parse func(string) (T, error)) (T, string, error) {
	var zero T
	if p == nil {
		return zero, "", apperrors.New(apperrors.KindProviderUnavailable, name, "provider not configured")
	}
	raw, err := p.Complete(ctx, prompt, structured)
	if err != nil {
		return zero, "", err
	}
	if strings.TrimSpace(raw) == "" {
		return zero, "", apperrors.New(apperrors.KindProviderUnavailable, name+".Complete", "empty response")
	}
	val, err := parse(raw)
	if err != nil {
		return zero, raw, err
	}
	return val, raw, nil
}

func providerName(p Provider) string {
	if p == nil {
		return "unconfigured"
	}
	return p.Name()
}

// AttemptError is one failed tier.
type AttemptError struct {
	Provider string
	Tier     int
	Err      error
}

// UnavailableError means every attempt failed. It names each provider with its cause.
type UnavailableError struct {
	Mode     string
	Attempts []AttemptError
}

func (e *UnavailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "generation unavailable: no providers configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Provider, a.Err))
	}
	return "generation unavailable: " + strings.Join(parts, "; ")
}

func (e *UnavailableError) ErrorKind() apperrors.Kind { return apperrors.KindGenerationUnavailable }

func (e *UnavailableError) Is(target error) bool {
	return target == apperrors.ErrGenerationUnavailable
}

func (e *UnavailableError) Unwrap() []error {
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Err)
	}
	return out
}

func (e *UnavailableError) Providers() []string {
	out := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Provider)
	}
	return out
}

// AsUnavailable reports whether err carries an *UnavailableError.
func AsUnavailable(err error) (*UnavailableError, bool) {
	var ue *UnavailableError
	ok := errors.As(err, &ue)
	return ue, ok
}
