package structured

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

const validQuiz = `{
  "title": "Sky Facts",
  "questions": [
    {"questionText": "What color is the sky?", "options": ["Blue", "Green", "Red", "Black"], "correctAnswer": "Blue"},
    {"questionText": "Is air visible?", "options": ["Yes", "No"], "correctAnswer": " No "}
  ]
}`

const compactQuiz = `{"title":"Sky Facts","questions":[{"questionText":"What color is the sky?","options":["Blue","Green","Red","Black"],"correctAnswer":"Blue"},{"questionText":"Is air visible?","options":["Yes","No"],"correctAnswer":" No "}]}`

func TestParseQuizPayloadValid(t *testing.T) {
	p, err := ParseQuizPayload(validQuiz)
	require.NoError(t, err)
	assert.Equal(t, "Sky Facts", p.Title)
	require.Len(t, p.Questions, 2)
	assert.Equal(t, "No", p.Questions[1].CorrectAnswer)
	assert.Equal(t, []string{"Blue", "Green", "Red", "Black"}, p.Questions[0].Options)
}

func TestFencedAndUnfencedParseIdentically(t *testing.T) {
	plain, err := ParseQuizPayload(validQuiz)
	require.NoError(t, err)

	for _, fenced := range []string{
		"```json\n" + validQuiz + "\n```",
		"```\n" + validQuiz + "\n```",
		"  ```JSON\n" + validQuiz + "\n```  \n",
		"```json " + compactQuiz + "```",
		"```" + compactQuiz + "```",
		"```json " + compactQuiz + " ```",
	} {
		got, err := ParseQuizPayload(fenced)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestParseQuizPayloadRejectsAnswerOutsideOptions(t *testing.T) {
	raw := `{"title":"T","questions":[{"questionText":"Pick","options":["A","B","C","D"],"correctAnswer":"E"}]}`
	_, err := ParseQuizPayload(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidGenerationShape))
	assert.Contains(t, err.Error(), "questions[0].correctAnswer")
}

func TestParseQuizPayloadRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"prose":            "The sky is blue.",
		"empty":            "   ",
		"array":            `[{"title":"T"}]`,
		"missing title":    `{"questions":[{"questionText":"Q","options":["A"],"correctAnswer":"A"}]}`,
		"blank title":      `{"title":"  ","questions":[{"questionText":"Q","options":["A"],"correctAnswer":"A"}]}`,
		"no questions":     `{"title":"T","questions":[]}`,
		"missing options":  `{"title":"T","questions":[{"questionText":"Q","correctAnswer":"A"}]}`,
		"blank option":     `{"title":"T","questions":[{"questionText":"Q","options":["A"," "],"correctAnswer":"A"}]}`,
		"missing answer":   `{"title":"T","questions":[{"questionText":"Q","options":["A"]}]}`,
		"blank question":   `{"title":"T","questions":[{"questionText":"","options":["A"],"correctAnswer":"A"}]}`,
		"trailing prose":   `{"title":"T","questions":[{"questionText":"Q","options":["A"],"correctAnswer":"A"}]} hope this helps`,
		"leading prose":    "Here is your quiz:\n" + validQuiz,
		"wrong field type": `{"title":"T","questions":[{"questionText":"Q","options":"A","correctAnswer":"A"}]}`,
	}
	for name, raw := range cases {
		_, err := ParseQuizPayload(raw)
		if assert.Error(t, err, name) {
			assert.Equal(t, apperrors.KindInvalidGenerationShape, apperrors.KindOf(err), name)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("  {\"a\":1}  "))
	assert.Equal(t, "```json {\"a\":1}", StripCodeFences("```json {\"a\":1}"))
	assert.Equal(t, "```json\n{\"a\":1}", StripCodeFences("```json\n{\"a\":1}"))

	// single-line fences
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json {\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripCodeFences("```{\"a\":1}```"))
	assert.Equal(t, `[1,2]`, StripCodeFences("  ```JSON [1,2] ```  "))
	assert.Equal(t, `{"a":1}`, StripCodeFences("````json\n{\"a\":1}\n````"))

	// text after the closing fence is not a fence
	assert.Equal(t, "```json {\"a\":1}``` thanks", StripCodeFences("```json {\"a\":1}``` thanks"))
}

func TestSingleLineFenceKeepsTrailingTextRule(t *testing.T) {
	_, err := ParseQuizPayload("```json " + compactQuiz + " hope this helps```")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidGenerationShape, apperrors.KindOf(err))
}

func TestSchemaErrorsNameTheField(t *testing.T) {
	_, err := ParseQuizPayload(`{"title":"T","questions":[{"questionText":"Q","options":"A","correctAnswer":"A"}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions[0].options")

	_, err = ParseQuizPayload(`{"title":"T","questions":[{"questionText":"Q","options":["A"]}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correctAnswer")
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "questions[2].options[0]", fieldPath("questions.2.options.0"))
	assert.Equal(t, "title", fieldPath("title"))
}
