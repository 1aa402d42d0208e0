package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/brainsync-backend/internal/domain"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
)

func TestQAEmbedsNotesVerbatimInOrder(t *testing.T) {
	hits := retrieval.Result{
		{Title: "Sky", Content: "The sky is blue."},
		{Title: "Grass", Content: "Grass is {{green}}."},
	}
	p := QA("What color is the sky?", hits)

	assert.Contains(t, p, "ONLY on the context")
	assert.Contains(t, p, "Title: Sky\nContent: The sky is blue.\n\nTitle: Grass\nContent: Grass is {{green}}.")
	assert.Contains(t, p, "User Question: What color is the sky?")
	assert.Less(t, strings.Index(p, "Title: Sky"), strings.Index(p, "User Question:"))
}

func TestQuizPromptNamesFieldsAndContent(t *testing.T) {
	p := Quiz("Photosynthesis converts light.")
	for _, want := range []string{"exactly 5", `"title"`, `"questionText"`, `"options"`, `"correctAnswer"`, "no code blocks", "Photosynthesis converts light."} {
		assert.Contains(t, p, want)
	}
}

func TestQuizChatSerializesPositionOrder(t *testing.T) {
	a := "Paris"
	yes, no := true, false
	wrong := "Lyon"
	q := &types.Quiz{Questions: []types.Question{
		{QuestionText: "Capital of France?", CorrectAnswer: "Paris", UserAnswer: &a, IsCorrect: &yes},
		{QuestionText: "Largest French city after Paris?", CorrectAnswer: "Marseille", UserAnswer: &wrong, IsCorrect: &no},
		{QuestionText: "River in Paris?", CorrectAnswer: "Seine"},
	}}
	p := QuizChat(q, "Why was Q2 wrong?")

	require.Contains(t, p, "Q1: Capital of France?\nMy Answer: Paris\nCorrect Answer: Paris\nResult: Correct")
	require.Contains(t, p, "Q2: Largest French city after Paris?\nMy Answer: Lyon\nCorrect Answer: Marseille\nResult: Wrong")
	require.Contains(t, p, "Q3: River in Paris?\nMy Answer: (no answer)\nCorrect Answer: Seine\nResult: Wrong")
	assert.Contains(t, p, "User Question: Why was Q2 wrong?")
	assert.Less(t, strings.Index(p, "Q1:"), strings.Index(p, "Q3:"))
}

func TestFrame(t *testing.T) {
	s := Frame("Return JSON.", true)
	assert.True(t, strings.HasPrefix(s, "Return JSON."))
	assert.Contains(t, s, "no code blocks")
	assert.Contains(t, s, "valid JSON only")
	assert.Contains(t, Frame("Say hi.", false), "plain text only")
}

func TestMakeTemplateRejectsBadDefinitions(t *testing.T) {
	_, err := MakeTemplate(Definition{Name: "", Version: 1})
	assert.Error(t, err)
	_, err = MakeTemplate(Definition{Name: "x", Version: 0})
	assert.Error(t, err)
	_, err = MakeTemplate(Definition{Name: "x", Version: 1, Body: "{{.Missing"})
	assert.Error(t, err)
}
