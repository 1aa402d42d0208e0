package structured

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

// QuizSchema is the JSON shape the quiz prompt asks for. Blank strings and answer membership
// are checked after the schema passes.
const QuizSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"questionText": {"type": "string"},
					"options": {"type": "array", "minItems": 1, "items": {"type": "string"}},
					"correctAnswer": {"type": "string"}
				},
				"required": ["questionText", "options", "correctAnswer"]
			}
		}
	},
	"required": ["title", "questions"]
}`

var quizSchema = mustSchema(QuizSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("structured: compile schema: %v", err))
	}
	return s
}

func checkSchema(doc []byte) error {
	res, err := quizSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &apperrors.Error{Kind: apperrors.KindInvalidGenerationShape, Op: op, Msg: "output is not valid JSON", Err: err}
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, fieldPath(e.Field())+": "+e.Description())
	}
	return apperrors.InvalidShape(op, strings.Join(msgs, "; "))
}

var indexSegment = regexp.MustCompile(`\.(\d+)`)

// fieldPath renders gojsonschema's "questions.0.options" as "questions[0].options".
func fieldPath(f string) string {
	if f == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
		return "(root)"
	}
	return indexSegment.ReplaceAllString(f, "[$1]")
}
