package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/brainsync-backend/internal/modules/ai/aitest"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/structured"
	"github.com/yungbote/brainsync-backend/internal/observability"
	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

const quizJSON = `{"title":"Sky","questions":[{"questionText":"Color?","options":["Blue","Red"],"correctAnswer":"Blue"}]}`

func TestPrimarySuccessSkipsSecondary(t *testing.T) {
	primary := aitest.Answering("openai", "  The answer.  ")
	secondary := aitest.Answering("gemini", "unused")
	o := NewDualProvider(logger.NewNop(), primary, secondary)

	resp, err := o.GenerateText(context.Background(), "The sky is blue.")
	require.NoError(t, err)
	assert.Equal(t, "The answer.", resp.Text)
	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, 1, primary.CallCount())
	assert.Zero(t, secondary.CallCount())
	assert.Equal(t, "The sky is blue.", primary.Calls()[0].Prompt)
}

func TestFallbackUsesStrictFraming(t *testing.T) {
	primary := aitest.Failing("openai", "429 rate limited")
	secondary := aitest.Answering("gemini", quizJSON)
	o := NewDualProvider(logger.NewNop(), primary, secondary)

	payload, resp, err := GenerateStructured(context.Background(), o, "The sky is blue.", structured.ParseQuizPayload)
	require.NoError(t, err)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "Sky", payload.Title)

	calls := secondary.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Structured)
	assert.Contains(t, calls[0].Prompt, "The sky is blue.")
	assert.Contains(t, calls[0].Prompt, "no code blocks")
	assert.NotContains(t, primary.Calls()[0].Prompt, "no code blocks")
}

func TestInvalidShapeOnPrimaryFallsBack(t *testing.T) {
	primary := aitest.Answering("openai", `{"title":"T","questions":[{"questionText":"Q","options":["A","B","C","D"],"correctAnswer":"E"}]}`)
	secondary := aitest.Answering("gemini", "```json\n"+quizJSON+"\n```")
	o := NewDualProvider(logger.NewNop(), primary, secondary)

	payload, resp, err := GenerateStructured(context.Background(), o, "content", structured.ParseQuizPayload)
	require.NoError(t, err)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "Blue", payload.Questions[0].CorrectAnswer)
}

func TestEmptyOutputCountsAsProviderFailure(t *testing.T) {
	primary := aitest.Answering("openai", "   ")
	secondary := aitest.Answering("gemini", "ok")
	o := NewDualProvider(logger.NewNop(), primary, secondary)

	resp, err := o.GenerateText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Contains(t, secondary.Calls()[0].Prompt, "plain text only")
}

func TestAllAttemptsFailingNamesEveryProvider(t *testing.T) {
	primary := aitest.Failing("openai", "timeout")
	secondary := aitest.Failing("gemini", "quota")
	m := observability.NewMetrics()
	o := NewDualProvider(logger.NewNop(), primary, secondary).WithMetrics(m)

	_, _, err := GenerateStructured(context.Background(), o, "The sky is blue.", structured.ParseQuizPayload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
	assert.Equal(t, apperrors.KindGenerationUnavailable, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "gemini")

	ue, ok := AsUnavailable(err)
	require.True(t, ok)
	assert.Equal(t, []string{"openai", "gemini"}, ue.Providers())
	assert.Equal(t, 1, primary.CallCount())
	assert.Equal(t, 1, secondary.CallCount())
}

func TestAttemptOrderIsData(t *testing.T) {
	a := aitest.Failing("a", "down")
	b := aitest.Answering("b", "from b")
	c := aitest.Answering("c", "from c")
	o := New(logger.NewNop(), Attempt{Provider: a}, Attempt{Provider: b}, Attempt{Provider: c, Framing: Strict})

	resp, err := o.GenerateText(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Provider)
	assert.Zero(t, c.CallCount())
	assert.Equal(t, []string{"a", "b", "c"}, o.Providers())
}

func TestCanceledContextStopsBeforeNextAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	primary := aitest.Answering("openai", "x")
	secondary := aitest.Answering("gemini", "y")
	cancel()

	o := NewDualProvider(logger.NewNop(), primary, secondary)
	_, err := o.GenerateText(ctx, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, primary.CallCount())
	assert.Zero(t, secondary.CallCount())
}

func TestNoAttemptsIsUnavailable(t *testing.T) {
	_, err := New(logger.NewNop()).GenerateText(context.Background(), "q")
	assert.True(t, errors.Is(err, apperrors.ErrGenerationUnavailable))
}
